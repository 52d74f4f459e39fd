package proto

import (
	"bytes"
	"errors"
	"testing"
)

// TestValueRoundTrip tests that payloads survive encode/decode unchanged
func TestValueRoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"empty":            nil,
		"simple":           []byte("hello"),
		"single byte":      []byte("x"),
		"spaces":           []byte("a b c"),
		"embedded newline": []byte("line1\nline2"),
		"only newlines":    []byte("\n\n\n"),
		"binary":           {0x00, 0x0A, 0xFF, 0x0A, 0x00},
		"looks like VAL":   []byte("VAL 3 abc"),
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			encoded := NewValue(payload).Encode()

			decoded, err := ParseValue(encoded)
			if err != nil {
				t.Fatalf("Failed to decode %q: %v", encoded, err)
			}
			if !bytes.Equal(decoded.Bytes(), payload) {
				t.Errorf("Payload doesn't match after round trip:\nOriginal: %q\nResult: %q", payload, decoded.Bytes())
			}
			if decoded.Len() != len(payload) {
				t.Errorf("Expected length %d, got %d", len(payload), decoded.Len())
			}
		})
	}
}

func TestValueEncoding(t *testing.T) {
	tests := []struct {
		name  string
		value WrappedValue
		want  string
	}{
		{"empty via constructor", EmptyValue(), "VAL 0"},
		{"empty via nil payload", NewValue(nil), "VAL 0"},
		{"empty via empty slice", NewValue([]byte{}), "VAL 0"},
		{"empty via string", ValueOf(""), "VAL 0"},
		{"hello", ValueOf("hello"), "VAL 5 hello"},
		{"with newline", ValueOf("a\nb"), "VAL 3 a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(tt.value.Encode()); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValueParseErrors(t *testing.T) {
	frames := map[string]string{
		"empty field":       "",
		"short field":       "VAL",
		"wrong prefix":      "VAX 3 abc",
		"no length":         "VAL  abc",
		"bad length":        "VAL x abc",
		"negative length":   "VAL -1 abc",
		"missing separator": "VAL 3abc",
		"length too large":  "VAL 10 abc",
		"length too small":  "VAL 2 abc",
		"junk after zero":   "VAL 0junk",
	}

	for name, frame := range frames {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseValue([]byte(frame)); !errors.Is(err, ErrParse) {
				t.Errorf("Expected ErrParse for %q, got %v", frame, err)
			}
		})
	}
}

// TestValueEmptyNormalization tests that a zero length always means an
// absent payload, whatever the backing buffer looked like
func TestValueEmptyNormalization(t *testing.T) {
	for _, v := range []WrappedValue{EmptyValue(), NewValue(nil), NewValue([]byte{}), ValueOf("")} {
		if !v.IsEmpty() {
			t.Errorf("Expected empty value, got %+v", v)
		}
		if v.Bytes() != nil {
			t.Errorf("Expected nil payload for empty value, got %q", v.Bytes())
		}
		if !v.Equal(EmptyValue()) {
			t.Errorf("Expected all empty values to be equal")
		}
	}
}
