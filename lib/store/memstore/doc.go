// Package memstore provides the default in-memory engine for the worker's
// key-value state, backed by an xsync.MapOf. Dump output is sorted by key
// so snapshots are stable for diffing and tests.
package memstore
