// Package testing provides a reusable conformance suite for store.KV
// implementations. Engine packages run it from their own tests so every
// engine is held to the same semantics.
package testing
