// Package server implements the stash worker's serve loop: it owns the
// rendezvous endpoint, accepts one client at a time, applies the decoded
// command to the store and writes back the single response.
//
// The loop is deliberately sequential. One accepted connection is fully
// drained before the next accept, so commands are totally ordered by
// arrival and the store needs no locking of its own. There are no
// read/write deadlines on accepted connections: a silent peer blocks the
// worker. That trade-off is acceptable for a local single-user tool and
// keeps the state machine trivial (Listening -> Handling -> Listening ...
// -> Terminated).
//
// Lifecycle: the endpoint's backing resource (the unix socket file) is
// bound once at loop start and released by a deferred cleanup that also
// runs when a handler panic unwinds through the loop. Termination happens
// either through the EXT command - observed only after its own response has
// been written - or through Shutdown, which closes the listener and lets
// the accept loop exit cleanly.
package server
