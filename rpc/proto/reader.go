package proto

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// The stream codec below is the length-aware half of the protocol. Frames
// are newline-terminated, but a VAL field's declared length wins over the
// delimiter: when a payload contains 0x0A the header line ends early, the
// consumed terminator is really a payload byte, and the rest of the payload
// is read verbatim before the true terminator is required. Naive
// line-splitting would truncate such payloads.

// WriteCommand writes c to w as a single frame.
func WriteCommand(w io.Writer, c Command) error {
	_, err := w.Write(append(c.Encode(), '\n'))
	return err
}

// WriteResponse writes r to w as a single frame.
func WriteResponse(w io.Writer, r Response) error {
	_, err := w.Write(append(r.Encode(), '\n'))
	return err
}

// ReadCommand reads and decodes exactly one command frame. I/O failures
// (including io.EOF on a closed peer) are returned verbatim; malformed
// frames wrap ErrParse.
func ReadCommand(br *bufio.Reader) (Command, error) {
	line, err := readFrameLine(br)
	if err != nil {
		return Command{}, err
	}

	// Only SET carries a value field and may span the line boundary. All
	// other commands are complete lines.
	if len(line) >= 4 && string(line[:4]) == wireSet+" " {
		rest := line[4:]
		sep := bytes.IndexByte(rest, ' ')
		if sep < 0 {
			return Command{}, fmt.Errorf("%w: SET without value field", ErrParse)
		}
		value, err := readValueField(br, rest[sep+1:])
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpSet, Key: string(rest[:sep]), Value: value}, nil
	}

	return ParseCommand(line)
}

// ReadResponse reads and decodes exactly one response frame.
func ReadResponse(br *bufio.Reader) (Response, error) {
	line, err := readFrameLine(br)
	if err != nil {
		return Response{}, err
	}

	if len(line) >= 2 && string(line[:2]) == "VA" {
		v, err := readValueField(br, line)
		if err != nil {
			return Response{}, err
		}
		return NewValueResponse(v), nil
	}

	return ParseResponse(line)
}

// readFrameLine reads up to and including the next newline and returns the
// line without it.
func readFrameLine(br *bufio.Reader) ([]byte, error) {
	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	return line[:len(line)-1], nil
}

// readValueField decodes a VAL field whose leading bytes arrived in the
// already-read header line. field is the portion of the line from the VAL
// discriminator onward; br supplies continuation bytes when the declared
// length reaches past the line.
func readValueField(br *bufio.Reader, field []byte) (WrappedValue, error) {
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
	switch {
	case len(raw) == length:
		// Payload fit in the line; its terminator was already consumed.
		return NewValue(raw), nil

	case len(raw) > length:
		return WrappedValue{}, fmt.Errorf("%w: value declares %d bytes, frame holds %d", ErrParse, length, len(raw))

	default:
		// The line terminator was a payload byte. Take what the line held,
		// restore the newline and read the remainder verbatim.
		payload := make([]byte, length)
		n := copy(payload, raw)
		payload[n] = '\n'
		if _, err := io.ReadFull(br, payload[n+1:]); err != nil {
			return WrappedValue{}, err
		}
		term, err := br.ReadByte()
		if err != nil {
			return WrappedValue{}, err
		}
		if term != '\n' {
			return WrappedValue{}, fmt.Errorf("%w: value not followed by frame terminator", ErrParse)
		}
		return NewValue(payload), nil
	}
}
