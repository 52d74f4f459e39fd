package transport

import (
	"net"

	"github.com/stash-kv/stash/rpc/common"
)

// --------------------------------------------------------------------------
// Server Connector
// --------------------------------------------------------------------------

// IServerConnector defines the interface for transport-specific listener
// creation. The serve loop owns the returned listener and closes it exactly
// once; a connector whose endpoint leaves an artifact behind (the unix
// socket file) must arrange for Close to remove it.
type IServerConnector interface {
	// Listen binds the rendezvous endpoint and returns the listener
	Listen(config common.ServerConfig) (net.Listener, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string
}

// --------------------------------------------------------------------------
// Client Connector
// --------------------------------------------------------------------------

// IClientConnector defines the interface for transport-specific dialing.
type IClientConnector interface {
	// Connect establishes a single connection to the worker's endpoint
	Connect(config common.ClientConfig) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string
}
