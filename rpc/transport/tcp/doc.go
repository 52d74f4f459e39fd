// Package tcp implements the stash transport over TCP sockets. It exists
// for setups where a socket file is inconvenient (containers, tests on
// platforms without unix socket support); the worker is still meant to be
// reached locally, so endpoints are normally on the loopback interface.
//
// Unlike the unix transport there is no filesystem artifact to clean up;
// closing the listener releases the port.
package tcp
