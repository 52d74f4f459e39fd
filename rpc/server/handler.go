package server

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/VictoriaMetrics/metrics"

	"github.com/stash-kv/stash/rpc/proto"
)

// handleConnection serves exactly one request/response pair. There is no
// pipelining: the connection is closed as soon as the response is written.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	cmd, err := proto.ReadCommand(bufio.NewReader(conn))
	if err != nil {
		// A malformed frame still gets a well-formed reply; only transport
		// failures drop the connection without one.
		if errors.Is(err, proto.ErrParse) {
			s.reply(conn, proto.NewErrResponse(errLine(err)))
		} else {
			Logger.Errorf("Failed to read request: %v", err)
		}
		return
	}

	s.reply(conn, s.apply(cmd))

	Logger.Debugf("State: requests=%d keys=%d terminate=%v",
		s.requests.Load(), s.kv.Len(), s.terminate)
}

// apply executes one command against the store and produces its response.
// Runs with exclusive access to the store (see package docu).
func (s *Server) apply(cmd proto.Command) proto.Response {
	s.countRequest(cmd.Op)

	switch cmd.Op {
	case proto.OpGet:
		// An absent key answers with the empty value; absence and an empty
		// value are indistinguishable on the wire.
		value, _ := s.kv.Get(cmd.Key)
		return proto.NewValueResponse(proto.ValueOf(value))

	case proto.OpSet:
		s.kv.Set(cmd.Key, cmd.Value.String())
		return proto.NewOkResponse()

	case proto.OpDelete:
		s.kv.Delete(cmd.Key)
		return proto.NewOkResponse()

	case proto.OpDump:
		return proto.NewValueResponse(proto.ValueOf(s.kv.Dump()))

	case proto.OpQuit:
		// The serve loop observes the flag only after this connection's
		// response has been written.
		s.terminate = true
		return proto.NewOkResponse()

	default:
		return proto.NewErrResponse(fmt.Sprintf("unsupported command: %s", cmd.Op))
	}
}

func (s *Server) reply(conn net.Conn, resp proto.Response) {
	if err := proto.WriteResponse(conn, resp); err != nil {
		Logger.Errorf("Failed to write response: %v", err)
	}
}

func (s *Server) countRequest(op proto.OpCode) {
	s.requests.Add(1)
	metrics.GetOrCreateCounter(fmt.Sprintf(`stash_requests_total{op=%q}`, op.String())).Inc()
}

// errLine flattens an error into a single-line ERR payload.
func errLine(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", " ")
}
