package common

import (
	"fmt"
	"strings"
)

// DefaultEndpoint is the well-known rendezvous socket shared by client and
// worker when no endpoint is configured.
const DefaultEndpoint = "/tmp/stash.sock"

// --------------------------------------------------------------------------
// Worker (server) configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for the worker process.
type ServerConfig struct {
	// Transport names the connector to listen with ("unix" or "tcp")
	Transport string
	// Endpoint is the rendezvous address: a socket path for unix,
	// host:port for tcp
	Endpoint string

	// MetricsEndpoint, when non-empty, is an HTTP address exposing
	// /metrics and pprof for the running worker
	MetricsEndpoint string

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration.
func (c *ServerConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Worker")
	addField("Transport", c.Transport)
	addField("Endpoint", c.Endpoint)
	if c.MetricsEndpoint != "" {
		addField("Metrics Endpoint", c.MetricsEndpoint)
	}

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds all configuration parameters for a one-shot client call.
type ClientConfig struct {
	// Transport names the connector to dial with ("unix" or "tcp")
	Transport string
	// Endpoint is the rendezvous address of the worker
	Endpoint string
	// TimeoutSecond bounds the whole request/response exchange
	// (0 = no deadline)
	TimeoutSecond int
}

// String returns a formatted string representation of the client configuration.
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Transport", c.Transport)
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	return sb.String()
}
