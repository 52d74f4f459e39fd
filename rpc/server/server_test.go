package server_test

import (
	"bufio"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stash-kv/stash/lib/store"
	"github.com/stash-kv/stash/lib/store/memstore"
	"github.com/stash-kv/stash/rpc/client"
	"github.com/stash-kv/stash/rpc/common"
	"github.com/stash-kv/stash/rpc/proto"
	"github.com/stash-kv/stash/rpc/server"
	"github.com/stash-kv/stash/rpc/transport/unix"
)

func TestMain(m *testing.M) {
	common.InitLoggers("error")
	os.Exit(m.Run())
}

// startWorker runs a server over a unix socket in a temp dir and returns a
// client for it plus the channel Serve's result arrives on.
func startWorker(t *testing.T, kv store.KV) (*server.Server, *client.Client, string, chan error) {
	t.Helper()

	endpoint := filepath.Join(t.TempDir(), "stash.sock")
	srv := server.New(common.ServerConfig{
		Transport: "unix",
		Endpoint:  endpoint,
	}, unix.NewUnixServerConnector(), kv)

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- nil
			}
		}()
		done <- srv.Serve()
	}()
	waitForSocket(t, endpoint)
	t.Cleanup(srv.Shutdown)

	cli := client.New(common.ClientConfig{
		Transport:     "unix",
		Endpoint:      endpoint,
		TimeoutSecond: 5,
	}, unix.NewUnixClientConnector())

	return srv, cli, endpoint, done
}

func waitForSocket(t *testing.T, endpoint string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(endpoint); err == nil {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Worker did not bind %s in time", endpoint)
}

func waitForExit(t *testing.T, done chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not exit in time")
		return nil
	}
}

// TestWorkerEndToEnd drives the full command set through real one-shot
// connections
func TestWorkerEndToEnd(t *testing.T) {
	srv, cli, _, _ := startWorker(t, memstore.New())

	// Reading an unset key yields the empty value
	value, err := cli.Get("answer")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if !value.IsEmpty() {
		t.Errorf("Expected empty value for unset key, got %q", value.Bytes())
	}

	if err := cli.Set("answer", []byte("42")); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	value, err = cli.Get("answer")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if value.String() != "42" {
		t.Errorf("Expected %q, got %q", "42", value.Bytes())
	}

	// Overwrite with a payload the line delimiter would cut apart
	binary := []byte("line1\nline2\n")
	if err := cli.Set("answer", binary); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	value, err = cli.Get("answer")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if value.String() != string(binary) {
		t.Errorf("Expected %q, got %q", binary, value.Bytes())
	}

	if err := cli.Set("other", []byte("x")); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	dump, err := cli.Dump()
	if err != nil {
		t.Fatalf("Failed to dump: %v", err)
	}
	want := "answer => line1\nline2\n\nother => x"
	if dump != want {
		t.Errorf("Expected dump %q, got %q", want, dump)
	}

	if err := cli.Delete("answer"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	value, err = cli.Get("answer")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if !value.IsEmpty() {
		t.Errorf("Expected empty value after delete, got %q", value.Bytes())
	}

	// Deleting an absent key is still acknowledged
	if err := cli.Delete("never-set"); err != nil {
		t.Errorf("Expected delete of absent key to succeed, got %v", err)
	}

	if got := srv.Requests(); got != 10 {
		t.Errorf("Expected 10 processed requests, got %d", got)
	}
}

// TestWorkerTermination tests that EXT is acknowledged on its own
// connection before the worker stops accepting
func TestWorkerTermination(t *testing.T) {
	_, cli, endpoint, done := startWorker(t, memstore.New())

	if err := cli.Quit(); err != nil {
		t.Fatalf("Expected OK for quit, got %v", err)
	}

	if err := waitForExit(t, done); err != nil {
		t.Errorf("Expected clean exit, got %v", err)
	}

	// The rendezvous endpoint is gone and no further client can connect
	if _, err := os.Stat(endpoint); !os.IsNotExist(err) {
		t.Errorf("Expected socket %s to be removed, stat returned %v", endpoint, err)
	}
	if _, err := cli.Get("k"); err == nil {
		t.Error("Expected connecting to a terminated worker to fail")
	}
}

// TestWorkerShutdown tests Shutdown from another goroutine while the
// worker is blocked in accept
func TestWorkerShutdown(t *testing.T) {
	srv, _, endpoint, done := startWorker(t, memstore.New())

	srv.Shutdown()

	if err := waitForExit(t, done); err != nil {
		t.Errorf("Expected clean exit, got %v", err)
	}
	if _, err := os.Stat(endpoint); !os.IsNotExist(err) {
		t.Errorf("Expected socket %s to be removed, stat returned %v", endpoint, err)
	}
}

// TestWorkerMalformedCommand tests that a garbage frame is answered with a
// well-formed ERR reply instead of a dropped connection
func TestWorkerMalformedCommand(t *testing.T) {
	tests := []string{
		"BOGUS stuff\n",
		"get lowercase\n",
		"SET key\n",
		"SET key VAL nope x\n",
		"DMP now\n",
	}

	_, _, endpoint, _ := startWorker(t, memstore.New())

	for _, raw := range tests {
		conn, err := net.Dial("unix", endpoint)
		if err != nil {
			t.Fatalf("Failed to connect: %v", err)
		}
		if _, err := conn.Write([]byte(raw)); err != nil {
			t.Fatalf("Failed to write: %v", err)
		}

		resp, err := proto.ReadResponse(bufio.NewReader(conn))
		_ = conn.Close()
		if err != nil {
			t.Fatalf("Failed to read reply for %q: %v", raw, err)
		}
		if resp.Kind != proto.RespErr {
			t.Errorf("Expected ERR reply for %q, got %+v", raw, resp)
		}
	}
}

// panicStore blows up on read to simulate a handler failure.
type panicStore struct{}

func (panicStore) Set(string, string)        {}
func (panicStore) Get(string) (string, bool) { panic("store corrupted") }
func (panicStore) Delete(string)             {}
func (panicStore) Len() int                  { return 0 }
func (panicStore) Dump() string              { return "" }

// TestWorkerCleanupAfterPanic tests that the socket file is released even
// when a handler panics out of the serve loop
func TestWorkerCleanupAfterPanic(t *testing.T) {
	_, cli, endpoint, done := startWorker(t, panicStore{})

	// The panic tears down the connection before a reply is written, so the
	// call must fail.
	if _, err := cli.Get("k"); err == nil {
		t.Error("Expected the call to fail when the handler panics")
	}

	waitForExit(t, done)
	if _, err := os.Stat(endpoint); !os.IsNotExist(err) {
		t.Errorf("Expected socket %s to be removed after panic, stat returned %v", endpoint, err)
	}
}
