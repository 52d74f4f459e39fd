// Package store defines the key-value state held by a stash worker for its
// lifetime. The worker owns exactly one KV instance, created empty at
// startup and discarded when the serve loop exits; nothing is persisted
// across restarts.
//
// The serve loop drains one connection completely before accepting the
// next, so implementations are never mutated concurrently. They may still
// be internally thread-safe (memstore is), but callers must not rely on it.
package store
