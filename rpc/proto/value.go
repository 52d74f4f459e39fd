package proto

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// ErrParse is the sentinel for every malformed frame: unknown discriminator,
// missing separator or an unparsable length. Concrete parse failures wrap it,
// so callers test with errors.Is.
var ErrParse = errors.New("proto: malformed frame")

const valPrefix = "VAL "

// WrappedValue carries an opaque byte payload with an explicit length.
// The zero value is the empty value. A zero length always means "no payload"
// regardless of the backing buffer; the constructors normalize this, so an
// inconsistent state (non-zero length, nil buffer) cannot be built.
type WrappedValue struct {
	buf    []byte
	length int
}

// EmptyValue returns the empty value ("VAL 0" on the wire).
func EmptyValue() WrappedValue {
	return WrappedValue{}
}

// NewValue wraps the given payload. The slice is not copied.
func NewValue(b []byte) WrappedValue {
	if len(b) == 0 {
		return WrappedValue{}
	}
	return WrappedValue{buf: b, length: len(b)}
}

// ValueOf wraps a string payload.
func ValueOf(s string) WrappedValue {
	if len(s) == 0 {
		return WrappedValue{}
	}
	return WrappedValue{buf: []byte(s), length: len(s)}
}

// Len returns the payload length in bytes.
func (v WrappedValue) Len() int { return v.length }

// IsEmpty reports whether the value carries no payload.
func (v WrappedValue) IsEmpty() bool { return v.length == 0 }

// Bytes returns the raw payload, nil for the empty value.
func (v WrappedValue) Bytes() []byte {
	if v.length == 0 {
		return nil
	}
	return v.buf[:v.length]
}

// String returns the payload interpreted as text, "" for the empty value.
func (v WrappedValue) String() string {
	return string(v.Bytes())
}

// Equal reports whether two values carry the same payload.
func (v WrappedValue) Equal(o WrappedValue) bool {
	return v.length == o.length && bytes.Equal(v.Bytes(), o.Bytes())
}

// appendWire appends the wire form of the value to dst.
func (v WrappedValue) appendWire(dst []byte) []byte {
	if v.length == 0 {
		return append(dst, "VAL 0"...)
	}
	dst = append(dst, valPrefix...)
	dst = strconv.AppendInt(dst, int64(v.length), 10)
	dst = append(dst, ' ')
	return append(dst, v.buf[:v.length]...)
}

// Encode returns the wire form of the value without a frame terminator.
func (v WrappedValue) Encode() []byte {
	return v.appendWire(nil)
}

// ParseValue decodes a complete VAL field. The declared length is
// authoritative: surplus bytes after the declared count are a parse error,
// and a field holding fewer bytes than declared is rejected rather than
// yielding a value whose length lies about its buffer.
func ParseValue(field []byte) (WrappedValue, error) {
	if len(field) < 5 || string(field[:4]) != valPrefix {
		return WrappedValue{}, fmt.Errorf("%w: expected %q field, got %q", ErrParse, "VAL", preview(field))
	}
	if field[4] == '0' && len(field) == 5 {
		return EmptyValue(), nil
	}

	inner := field[4:]
	sep := bytes.IndexByte(inner, ' ')
	if sep < 0 {
		return WrappedValue{}, fmt.Errorf("%w: value field without length separator", ErrParse)
	}
	length, err := strconv.Atoi(string(inner[:sep]))
	if err != nil || length < 0 {
		return WrappedValue{}, fmt.Errorf("%w: bad value length %q", ErrParse, inner[:sep])
	}

	raw := inner[sep+1:]
	if len(raw) != length {
		return WrappedValue{}, fmt.Errorf("%w: value declares %d bytes, field holds %d", ErrParse, length, len(raw))
	}
	return NewValue(raw), nil
}

// preview shortens a frame for inclusion in error messages.
func preview(frame []byte) string {
	const max = 16
	if len(frame) <= max {
		return string(frame)
	}
	return string(frame[:max]) + "..."
}
