package unix

import (
	"net"
	"time"

	"github.com/stash-kv/stash/rpc/common"
	"github.com/stash-kv/stash/rpc/transport"
)

// clientConnector implements the IClientConnector interface for Unix sockets
type clientConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) GetName() string {
	return "unix"
}

func (c *clientConnector) Connect(config common.ClientConfig) (net.Conn, error) {
	if config.TimeoutSecond > 0 {
		timeout := time.Duration(config.TimeoutSecond) * time.Second
		return net.DialTimeout("unix", config.Endpoint, timeout)
	}
	return net.Dial("unix", config.Endpoint)
}

// --------------------------------------------------------------------------
// Client Connector Factory Method
// --------------------------------------------------------------------------

// NewUnixClientConnector creates the dialing side of the unix transport
func NewUnixClientConnector() transport.IClientConnector {
	return &clientConnector{}
}
