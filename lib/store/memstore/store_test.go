package memstore

import (
	"testing"

	storetesting "github.com/stash-kv/stash/lib/store/testing"
)

func Test(t *testing.T) {
	storetesting.RunKVTests(t, "MemStore", New)
}
