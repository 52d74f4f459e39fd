package proto

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Response Type Definition
// --------------------------------------------------------------------------

// RespKind identifies a server reply.
type RespKind uint8

const (
	RespUnknown RespKind = iota
	RespOk               // Bare acknowledgement
	RespErr              // Failure with a message
	RespValue            // Payload reply, possibly empty
)

// String returns a readable name for the response kind.
func (k RespKind) String() string {
	switch k {
	case RespOk:
		return "ok"
	case RespErr:
		return "err"
	case RespValue:
		return "value"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Response Structure
// --------------------------------------------------------------------------

// Response represents the single reply sent for every command. Value is set
// for RespValue, Err for RespErr.
type Response struct {
	Kind  RespKind
	Value WrappedValue
	Err   string
}

// NewOkResponse creates a bare acknowledgement.
func NewOkResponse() Response {
	return Response{Kind: RespOk}
}

// NewErrResponse creates a failure reply. The message must not contain a
// newline byte; the server formats its own messages accordingly.
func NewErrResponse(msg string) Response {
	return Response{Kind: RespErr, Err: msg}
}

// NewValueResponse creates a payload reply.
func NewValueResponse(v WrappedValue) Response {
	return Response{Kind: RespValue, Value: v}
}

// --------------------------------------------------------------------------
// Encoding / Decoding
// --------------------------------------------------------------------------

// Encode returns the wire form of the response without a frame terminator.
// A value response is the bare VAL field: the VAL prefix is self-identifying,
// so it needs no discriminator of its own.
func (r Response) Encode() []byte {
	switch r.Kind {
	case RespOk:
		return []byte("OK")
	case RespErr:
		return []byte("ERR " + r.Err)
	case RespValue:
		return r.Value.appendWire(nil)
	default:
		return nil
	}
}

// ParseResponse decodes a complete response frame by its two byte
// discriminator.
func ParseResponse(frame []byte) (Response, error) {
	if len(frame) < 2 {
		return Response{}, fmt.Errorf("%w: response frame too short: %q", ErrParse, frame)
	}

	switch string(frame[:2]) {
	case "OK":
		if len(frame) != 2 {
			return Response{}, fmt.Errorf("%w: OK takes no arguments", ErrParse)
		}
		return NewOkResponse(), nil

	case "ER":
		if len(frame) < 4 || string(frame[:4]) != "ERR " {
			return Response{}, fmt.Errorf("%w: bad error frame %q", ErrParse, preview(frame))
		}
		return NewErrResponse(string(frame[4:])), nil

	case "VA":
		v, err := ParseValue(frame)
		if err != nil {
			return Response{}, err
		}
		return NewValueResponse(v), nil

	default:
		return Response{}, fmt.Errorf("%w: unknown response %q", ErrParse, preview(frame))
	}
}
