package proto

import (
	"errors"
	"testing"
)

func TestResponseRoundTrip(t *testing.T) {
	responses := map[string]Response{
		"ok":            NewOkResponse(),
		"err":           NewErrResponse("something broke"),
		"value":         NewValueResponse(ValueOf("payload")),
		"empty value":   NewValueResponse(EmptyValue()),
		"value newline": NewValueResponse(ValueOf("a\nb")),
	}

	for name, resp := range responses {
		t.Run(name, func(t *testing.T) {
			encoded := resp.Encode()

			decoded, err := ParseResponse(encoded)
			if err != nil {
				t.Fatalf("Failed to decode %q: %v", encoded, err)
			}
			if decoded.Kind != resp.Kind {
				t.Errorf("Expected kind %v, got %v", resp.Kind, decoded.Kind)
			}
			if decoded.Err != resp.Err {
				t.Errorf("Expected error %q, got %q", resp.Err, decoded.Err)
			}
			if !decoded.Value.Equal(resp.Value) {
				t.Errorf("Expected value %q, got %q", resp.Value.Bytes(), decoded.Value.Bytes())
			}
		})
	}
}

func TestResponseEncoding(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{"ok", NewOkResponse(), "OK"},
		{"err", NewErrResponse("no such thing"), "ERR no such thing"},
		{"value", NewValueResponse(ValueOf("v")), "VAL 1 v"},
		{"empty value", NewValueResponse(EmptyValue()), "VAL 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(tt.resp.Encode()); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestResponseParseErrors(t *testing.T) {
	frames := map[string]string{
		"empty frame":     "",
		"too short":       "O",
		"ok with garbage": "OK then",
		"bare err":        "ERR",
		"unknown kind":    "NOPE",
		"bad value":       "VAL x abc",
		"command as input": "GET k",
	}

	for name, frame := range frames {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseResponse([]byte(frame)); !errors.Is(err, ErrParse) {
				t.Errorf("Expected ErrParse for %q, got %v", frame, err)
			}
		})
	}
}

// TestErrResponseEmptyMessage tests that an error reply with an empty
// message still round trips; the frame is "ERR " with a trailing space
func TestErrResponseEmptyMessage(t *testing.T) {
	decoded, err := ParseResponse(NewErrResponse("").Encode())
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if decoded.Kind != RespErr || decoded.Err != "" {
		t.Errorf("Expected empty error reply, got %+v", decoded)
	}
}
