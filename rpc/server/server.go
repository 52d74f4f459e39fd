package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"

	"github.com/stash-kv/stash/lib/store"
	"github.com/stash-kv/stash/rpc/common"
	"github.com/stash-kv/stash/rpc/transport"

	_ "net/http/pprof"
)

var Logger = logger.GetLogger("server")

// Server runs the worker's sequential accept loop over a single store.
type Server struct {
	config    common.ServerConfig
	connector transport.IServerConnector
	kv        store.KV

	// requests counts processed commands. Diagnostic only; wraps on
	// overflow rather than panicking.
	requests atomic.Uint64

	// terminate is set by processing an EXT command and read by the serve
	// loop after the handling connection completed. Both happen on the
	// accepting goroutine, so no synchronization is needed.
	terminate bool

	mu       sync.Mutex
	listener net.Listener
}

// New creates a worker server over the given connector and store.
//
// Usage:
//
//	s := server.New(config, unix.NewUnixServerConnector(), memstore.New())
//	if err := s.Serve(); err != nil {
//		// the endpoint could not be bound, or the loop failed hard
//	}
func New(config common.ServerConfig, connector transport.IServerConnector, kv store.KV) *Server {
	return &Server{
		config:    config,
		connector: connector,
		kv:        kv,
	}
}

// Serve binds the rendezvous endpoint and accepts clients until an EXT
// command is processed or Shutdown closes the listener. A bind failure is
// fatal and leaves no partial state; accept failures are logged and the
// loop keeps listening.
func (s *Server) Serve() error {
	listener, err := s.connector.Listen(s.config)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	s.setListener(listener)

	// The endpoint must be released on every exit path, including a panic
	// unwinding out of a handler.
	defer s.cleanup(listener)

	if s.config.MetricsEndpoint != "" {
		s.serveMetrics()
	}

	Logger.Infof("Worker listening on %s (%s)", s.config.Endpoint, s.connector.GetName())

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				Logger.Infof("Listener closed, worker shutting down")
				return nil
			}
			Logger.Errorf("Unable to accept connection: %v", err)
			continue
		}

		Logger.Debugf("Got connection from %v", conn.RemoteAddr())
		s.handleConnection(conn)

		if s.terminate {
			Logger.Infof("Termination requested, worker shutting down")
			return nil
		}
	}
}

// Shutdown closes the listener, unblocking a pending accept. Safe to call
// from another goroutine (signal handling) and more than once.
func (s *Server) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		_ = s.listener.Close()
	}
}

// Requests returns the number of commands processed so far.
func (s *Server) Requests() uint64 {
	return s.requests.Load()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (s *Server) setListener(listener net.Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = listener
}

// cleanup releases the rendezvous endpoint. Closing a unix listener unlinks
// the socket file; the explicit remove covers a listener torn down some
// other way. Runs exactly once per Serve call.
func (s *Server) cleanup(listener net.Listener) {
	_ = listener.Close()
	if s.connector.GetName() == "unix" {
		if err := os.Remove(s.config.Endpoint); err != nil && !os.IsNotExist(err) {
			Logger.Errorf("Failed to remove socket %s: %v", s.config.Endpoint, err)
		}
	}
}

// serveMetrics exposes /metrics (and pprof via the default mux) on the
// configured endpoint.
func (s *Server) serveMetrics() {
	http.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		metrics.WritePrometheus(w, true)
	})

	go func() {
		Logger.Infof("Metrics listening on http://%s/metrics", s.config.MetricsEndpoint)
		if err := http.ListenAndServe(s.config.MetricsEndpoint, nil); err != nil {
			Logger.Errorf("Metrics listener failed: %v", err)
		}
	}()
}
