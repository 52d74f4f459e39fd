// Package rpc provides the communication layer between the stash CLI and the
// background worker: a one-request-per-connection exchange over a local
// byte-stream socket.
//
// The package is organized into several subpackages:
//
//   - common: configuration structures and logging shared by client and server.
//
//   - proto: the text wire protocol (Command, Response, length-prefixed
//     values) together with the length-aware stream codec.
//
//   - transport: socket abstractions with pluggable connectors (Unix sockets,
//     TCP) for reaching the worker's rendezvous endpoint.
//
//   - client: the one-shot caller used by the CLI subcommands.
//
//   - server: the worker's sequential accept loop and request handler.
package rpc
