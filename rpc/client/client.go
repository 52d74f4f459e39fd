package client

import (
	"bufio"
	"fmt"
	"time"

	"github.com/lni/dragonboat/v4/logger"

	"github.com/stash-kv/stash/rpc/common"
	"github.com/stash-kv/stash/rpc/proto"
	"github.com/stash-kv/stash/rpc/transport"
)

var Logger = logger.GetLogger("client")

// Client performs one-shot calls against a stash worker.
type Client struct {
	config    common.ClientConfig
	connector transport.IClientConnector
}

// New creates a client for the given endpoint and connector.
func New(config common.ClientConfig, connector transport.IClientConnector) *Client {
	return &Client{
		config:    config,
		connector: connector,
	}
}

// Call opens a connection, sends one command and reads exactly one
// response. The connection is released on every return path.
func (c *Client) Call(cmd proto.Command) (proto.Response, error) {
	conn, err := c.connector.Connect(c.config)
	if err != nil {
		return proto.Response{}, fmt.Errorf("client: failed to connect to %s: %w", c.config.Endpoint, err)
	}
	defer conn.Close()

	if c.config.TimeoutSecond > 0 {
		timeout := time.Duration(c.config.TimeoutSecond) * time.Second
		if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
			return proto.Response{}, fmt.Errorf("client: failed to set deadline: %w", err)
		}
	}

	if err := proto.WriteCommand(conn, cmd); err != nil {
		return proto.Response{}, fmt.Errorf("client: failed to send %s: %w", cmd.Op, err)
	}

	Logger.Debugf("Sent %s, awaiting response", cmd.Op)

	resp, err := proto.ReadResponse(bufio.NewReader(conn))
	if err != nil {
		return proto.Response{}, fmt.Errorf("client: failed to read response: %w", err)
	}
	return resp, nil
}

// --------------------------------------------------------------------------
// Typed Operation Helpers
// --------------------------------------------------------------------------

// Get returns the value stored under key. An absent key yields the empty
// value; the protocol does not distinguish the two.
func (c *Client) Get(key string) (proto.WrappedValue, error) {
	if err := proto.ValidateKey(key); err != nil {
		return proto.WrappedValue{}, err
	}
	resp, err := c.invoke(proto.NewGetCommand(key), proto.RespValue)
	if err != nil {
		return proto.WrappedValue{}, err
	}
	return resp.Value, nil
}

// Set stores value under key, overwriting any previous value.
func (c *Client) Set(key string, value []byte) error {
	if err := proto.ValidateKey(key); err != nil {
		return err
	}
	_, err := c.invoke(proto.NewSetCommand(key, value), proto.RespOk)
	return err
}

// Delete removes key from the worker's store. Deleting an absent key is
// not an error.
func (c *Client) Delete(key string) error {
	if err := proto.ValidateKey(key); err != nil {
		return err
	}
	_, err := c.invoke(proto.NewDeleteCommand(key), proto.RespOk)
	return err
}

// Dump returns the worker's textual snapshot of its whole store.
func (c *Client) Dump() (string, error) {
	resp, err := c.invoke(proto.NewDumpCommand(), proto.RespValue)
	if err != nil {
		return "", err
	}
	return resp.Value.String(), nil
}

// Quit asks the worker to terminate. The worker acknowledges before it
// stops accepting.
func (c *Client) Quit() error {
	_, err := c.invoke(proto.NewQuitCommand(), proto.RespOk)
	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// invoke sends the command and checks that the reply is of the expected
// kind, surfacing worker-side ERR replies as errors.
func (c *Client) invoke(cmd proto.Command, want proto.RespKind) (proto.Response, error) {
	resp, err := c.Call(cmd)
	if err != nil {
		return resp, err
	}
	if resp.Kind == proto.RespErr {
		return resp, fmt.Errorf("client: worker error: %s", resp.Err)
	}
	if resp.Kind != want {
		return resp, fmt.Errorf("client: unexpected %s response to %s", resp.Kind, cmd.Op)
	}
	return resp, nil
}
