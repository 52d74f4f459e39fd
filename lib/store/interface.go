package store

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Factory creates a new empty KV instance. It is used to abstract the
// engine choice away from the server and the shared test suite.
type Factory func() KV

// KV is the interface for the worker's in-memory key-value state.
// Keys are unique; no iteration order is guaranteed.
type KV interface {
	// Set inserts or updates a key-value pair. Overwriting is not an error.
	Set(key, value string)
	// Get returns the value for a key. The boolean return value indicates
	// whether the key was present.
	Get(key string) (value string, loaded bool)
	// Delete removes a key-value pair. Deleting an absent key is a no-op.
	Delete(key string)
	// Len returns the number of stored pairs.
	Len() int
	// Dump renders a human-readable snapshot of the whole mapping. The
	// format is diagnostic output, not a serialization, and does not
	// round-trip.
	Dump() string
}
