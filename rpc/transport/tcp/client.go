package tcp

import (
	"net"
	"time"

	"github.com/stash-kv/stash/rpc/common"
	"github.com/stash-kv/stash/rpc/transport"
)

// clientConnector implements the IClientConnector interface for TCP sockets
type clientConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) GetName() string {
	return "tcp"
}

func (c *clientConnector) Connect(config common.ClientConfig) (net.Conn, error) {
	var conn net.Conn
	var err error

	if config.TimeoutSecond > 0 {
		timeout := time.Duration(config.TimeoutSecond) * time.Second
		conn, err = net.DialTimeout("tcp", config.Endpoint, timeout)
	} else {
		conn, err = net.Dial("tcp", config.Endpoint)
	}
	if err != nil {
		return nil, err
	}

	// One small frame each way, latency beats batching
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}

	return conn, nil
}

// --------------------------------------------------------------------------
// Client Connector Factory Method
// --------------------------------------------------------------------------

// NewTCPClientConnector creates the dialing side of the tcp transport
func NewTCPClientConnector() transport.IClientConnector {
	return &clientConnector{}
}
