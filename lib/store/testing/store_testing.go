package testing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stash-kv/stash/lib/store"
)

// RunKVTests runs the conformance suite for a store.KV implementation.
func RunKVTests(t *testing.T, name string, factory store.Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, factory())
		})

		t.Run("Idempotence", func(t *testing.T) {
			testIdempotence(t, factory())
		})

		t.Run("Len", func(t *testing.T) {
			testLen(t, factory())
		})

		t.Run("Dump", func(t *testing.T) {
			testDump(t, factory())
		})

		t.Run("BinaryValues", func(t *testing.T) {
			testBinaryValues(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, kv store.KV) {
	kv.Set("a", "1")

	value, loaded := kv.Get("a")
	if !loaded {
		t.Errorf("Expected key %q to exist after Set", "a")
	}
	if value != "1" {
		t.Errorf("Expected value %q, got %q", "1", value)
	}

	// Overwrite
	kv.Set("a", "2")
	value, loaded = kv.Get("a")
	if !loaded || value != "2" {
		t.Errorf("Expected overwritten value %q, got %q (loaded=%v)", "2", value, loaded)
	}

	if _, loaded = kv.Get("nonexistent"); loaded {
		t.Errorf("Expected nonexistent key to return loaded=false")
	}

	// Empty value is a valid, present value
	kv.Set("empty", "")
	value, loaded = kv.Get("empty")
	if !loaded || value != "" {
		t.Errorf("Expected empty value to be stored, got %q (loaded=%v)", value, loaded)
	}
}

func testDelete(t *testing.T, kv store.KV) {
	kv.Set("a", "1")
	kv.Delete("a")

	if _, loaded := kv.Get("a"); loaded {
		t.Errorf("Expected key %q to be gone after Delete", "a")
	}

	// Deleting an absent key must be a no-op, not an error
	kv.Delete("never-set")
}

func testIdempotence(t *testing.T, kv store.KV) {
	for i := 0; i < 3; i++ {
		kv.Set("a", "1")
	}
	if value, loaded := kv.Get("a"); !loaded || value != "1" {
		t.Errorf("Expected repeated Set to yield %q, got %q (loaded=%v)", "1", value, loaded)
	}

	for i := 0; i < 3; i++ {
		kv.Delete("a")
	}
	if _, loaded := kv.Get("a"); loaded {
		t.Errorf("Expected key to stay deleted after repeated Delete")
	}
}

func testLen(t *testing.T, kv store.KV) {
	if kv.Len() != 0 {
		t.Errorf("Expected empty store, got %d entries", kv.Len())
	}

	for i := 0; i < 10; i++ {
		kv.Set(fmt.Sprintf("key-%d", i), "v")
	}
	if kv.Len() != 10 {
		t.Errorf("Expected 10 entries, got %d", kv.Len())
	}

	kv.Set("key-0", "overwritten")
	if kv.Len() != 10 {
		t.Errorf("Expected overwrite to keep 10 entries, got %d", kv.Len())
	}

	kv.Delete("key-0")
	if kv.Len() != 9 {
		t.Errorf("Expected 9 entries after delete, got %d", kv.Len())
	}
}

func testDump(t *testing.T, kv store.KV) {
	if kv.Dump() != "" {
		t.Errorf("Expected empty dump for empty store, got %q", kv.Dump())
	}

	kv.Set("b", "2")
	kv.Set("a", "1")

	dump := kv.Dump()
	for _, want := range []string{"a", "b", "1", "2"} {
		if !strings.Contains(dump, want) {
			t.Errorf("Expected dump to mention %q, got %q", want, dump)
		}
	}
	if strings.Index(dump, "a") > strings.Index(dump, "b") {
		t.Errorf("Expected deterministic key order in dump, got %q", dump)
	}
}

func testBinaryValues(t *testing.T, kv store.KV) {
	value := "line1\nline2\x00\xffend"
	kv.Set("bin", value)

	got, loaded := kv.Get("bin")
	if !loaded || got != value {
		t.Errorf("Expected binary value to survive verbatim, got %q (loaded=%v)", got, loaded)
	}
}
