package proto

import (
	"bytes"
	"errors"
	"testing"
)

func TestCommandRoundTrip(t *testing.T) {
	commands := map[string]Command{
		"get":              NewGetCommand("answer"),
		"set":              NewSetCommand("answer", []byte("42")),
		"set empty value":  NewSetCommand("answer", nil),
		"set with newline": NewSetCommand("answer", []byte("line1\nline2")),
		"delete":           NewDeleteCommand("answer"),
		"dump":             NewDumpCommand(),
		"quit":             NewQuitCommand(),
	}

	for name, cmd := range commands {
		t.Run(name, func(t *testing.T) {
			encoded := cmd.Encode()

			decoded, err := ParseCommand(encoded)
			if err != nil {
				t.Fatalf("Failed to decode %q: %v", encoded, err)
			}
			if decoded.Op != cmd.Op {
				t.Errorf("Expected op %v, got %v", cmd.Op, decoded.Op)
			}
			if decoded.Key != cmd.Key {
				t.Errorf("Expected key %q, got %q", cmd.Key, decoded.Key)
			}
			if !decoded.Value.Equal(cmd.Value) {
				t.Errorf("Expected value %q, got %q", cmd.Value.Bytes(), decoded.Value.Bytes())
			}
		})
	}
}

func TestCommandEncoding(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"get", NewGetCommand("k"), "GET k"},
		{"set", NewSetCommand("k", []byte("v")), "SET k VAL 1 v"},
		{"set empty", NewSetCommand("k", nil), "SET k VAL 0"},
		{"delete", NewDeleteCommand("k"), "DEL k"},
		{"dump", NewDumpCommand(), "DMP"},
		{"quit", NewQuitCommand(), "EXT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(tt.cmd.Encode()); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCommandParseErrors(t *testing.T) {
	frames := map[string]string{
		"empty frame":        "",
		"too short":          "GE",
		"unknown op":         "FOO k",
		"lowercase op":       "get k",
		"get without key":    "GET",
		"get no separator":   "GETk",
		"set without value":  "SET k",
		"set bad value":      "SET k VAL x abc",
		"set junk after 0":   "SET k VAL 0junk",
		"del without key":    "DEL",
		"dump with garbage":  "DMP now",
		"quit with garbage":  "EXT please",
		"bare value":         "VAL 3 abc",
		"response as input":  "OK",
	}

	for name, frame := range frames {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseCommand([]byte(frame)); !errors.Is(err, ErrParse) {
				t.Errorf("Expected ErrParse for %q, got %v", frame, err)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	valid := []string{"k", "answer", "with-dash", "with_underscore", "42", "véry:unicode"}
	for _, key := range valid {
		if err := ValidateKey(key); err != nil {
			t.Errorf("Expected key %q to be valid, got %v", key, err)
		}
	}

	invalid := []string{"with space", "with\nnewline", " ", "\n"}
	for _, key := range invalid {
		if err := ValidateKey(key); err == nil {
			t.Errorf("Expected key %q to be rejected", key)
		}
	}
}

// TestSetValueBoundary tests that the key ends at the first space and
// everything after it belongs to the value field
func TestSetValueBoundary(t *testing.T) {
	cmd, err := ParseCommand([]byte("SET k VAL 7 a b c d"))
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if cmd.Key != "k" {
		t.Errorf("Expected key %q, got %q", "k", cmd.Key)
	}
	if !bytes.Equal(cmd.Value.Bytes(), []byte("a b c d")) {
		t.Errorf("Expected value %q, got %q", "a b c d", cmd.Value.Bytes())
	}
}
