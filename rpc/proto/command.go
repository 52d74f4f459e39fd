package proto

import (
	"bytes"
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Command Type Definition
// --------------------------------------------------------------------------

// OpCode identifies a client request.
type OpCode uint8

const (
	OpUnknown OpCode = iota
	OpGet            // Read the value for a key
	OpSet            // Insert or overwrite a key-value pair
	OpDelete         // Remove a key-value pair
	OpDump           // Snapshot the whole store as text
	OpQuit           // Ask the worker to terminate
)

// Wire discriminators, all exactly three bytes.
const (
	wireGet  = "GET"
	wireSet  = "SET"
	wireDel  = "DEL"
	wireDump = "DMP"
	wireQuit = "EXT"
)

// String returns the wire discriminator for the op code.
func (o OpCode) String() string {
	switch o {
	case OpGet:
		return wireGet
	case OpSet:
		return wireSet
	case OpDelete:
		return wireDel
	case OpDump:
		return wireDump
	case OpQuit:
		return wireQuit
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Command Structure
// --------------------------------------------------------------------------

// Command represents a single client request. Key is set for Get, Set and
// Delete; Value only for Set.
type Command struct {
	Op    OpCode
	Key   string
	Value WrappedValue
}

// NewGetCommand creates a Get request.
func NewGetCommand(key string) Command {
	return Command{Op: OpGet, Key: key}
}

// NewSetCommand creates a Set request carrying the given payload.
func NewSetCommand(key string, value []byte) Command {
	return Command{Op: OpSet, Key: key, Value: NewValue(value)}
}

// NewDeleteCommand creates a Delete request.
func NewDeleteCommand(key string) Command {
	return Command{Op: OpDelete, Key: key}
}

// NewDumpCommand creates a Dump request.
func NewDumpCommand() Command {
	return Command{Op: OpDump}
}

// NewQuitCommand creates a Quit request.
func NewQuitCommand() Command {
	return Command{Op: OpQuit}
}

// --------------------------------------------------------------------------
// Encoding / Decoding
// --------------------------------------------------------------------------

// Encode returns the wire form of the command without a frame terminator.
func (c Command) Encode() []byte {
	switch c.Op {
	case OpGet, OpDelete:
		return []byte(c.Op.String() + " " + c.Key)
	case OpSet:
		dst := append([]byte(wireSet+" "), c.Key...)
		dst = append(dst, ' ')
		return c.Value.appendWire(dst)
	case OpDump, OpQuit:
		return []byte(c.Op.String())
	default:
		return nil
	}
}

// ParseCommand decodes a complete command frame. The three byte
// discriminator is length-checked before comparison, so a short frame is a
// parse error and never an out-of-range access.
func ParseCommand(frame []byte) (Command, error) {
	if len(frame) < 3 {
		return Command{}, fmt.Errorf("%w: command frame too short: %q", ErrParse, frame)
	}

	switch string(frame[:3]) {
	case wireGet:
		key, err := commandKey(frame)
		if err != nil {
			return Command{}, err
		}
		return NewGetCommand(key), nil

	case wireDel:
		key, err := commandKey(frame)
		if err != nil {
			return Command{}, err
		}
		return NewDeleteCommand(key), nil

	case wireSet:
		rest, err := commandKey(frame)
		if err != nil {
			return Command{}, err
		}
		sep := bytes.IndexByte([]byte(rest), ' ')
		if sep < 0 {
			return Command{}, fmt.Errorf("%w: SET without value field", ErrParse)
		}
		value, err := ParseValue(frame[4+sep+1:])
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpSet, Key: rest[:sep], Value: value}, nil

	case wireDump:
		if len(frame) != 3 {
			return Command{}, fmt.Errorf("%w: DMP takes no arguments", ErrParse)
		}
		return NewDumpCommand(), nil

	case wireQuit:
		if len(frame) != 3 {
			return Command{}, fmt.Errorf("%w: EXT takes no arguments", ErrParse)
		}
		return NewQuitCommand(), nil

	default:
		return Command{}, fmt.Errorf("%w: unknown command %q", ErrParse, preview(frame))
	}
}

// ValidateKey rejects keys the codec cannot carry. A space would mis-split
// SET frames on decode and a newline would end the frame early; the codec
// itself does not check, so encoding callers must.
func ValidateKey(key string) error {
	if strings.ContainsAny(key, " \n") {
		return fmt.Errorf("key %q must not contain a space or newline", key)
	}
	return nil
}

// commandKey returns everything after the discriminator and its separating
// space. An empty remainder is legal (the empty key exists, if unwise).
func commandKey(frame []byte) (string, error) {
	if len(frame) < 4 || frame[3] != ' ' {
		return "", fmt.Errorf("%w: %s without key", ErrParse, frame[:3])
	}
	return string(frame[4:]), nil
}
