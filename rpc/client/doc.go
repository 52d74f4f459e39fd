// Package client implements the calling side of the stash protocol. Every
// call is one-shot: open a connection to the worker's rendezvous endpoint,
// send a single command, read the single response and close the connection
// again. The per-operation helpers (Get, Set, Delete, Dump, Quit) wrap Call
// with response-kind checking and key validation.
package client
