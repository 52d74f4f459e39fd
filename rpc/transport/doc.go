// Package transport defines the socket abstractions used to reach a stash
// worker. A connector pair per transport type creates the server-side
// listener and dials client-side connections; the framing on top of the
// resulting byte stream always belongs to rpc/proto.
//
// Two transports are provided:
//
//   - unix: the default. The rendezvous endpoint is a socket file with a
//     well-known path, removed again when the worker's serve loop exits.
//
//   - tcp: the same framing over a (normally loopback) TCP listener, for
//     setups where a socket file is inconvenient.
package transport
