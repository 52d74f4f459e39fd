package memstore

import (
	"sort"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/stash-kv/stash/lib/store"
)

// storeImpl implements store.KV on top of an xsync map.
type storeImpl struct {
	entries *xsync.MapOf[string, string]
}

// New creates a new empty in-memory store.
func New() store.KV {
	return &storeImpl{
		entries: xsync.NewMapOf[string, string](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Set(key, value string) {
	s.entries.Store(key, value)
}

func (s *storeImpl) Get(key string) (string, bool) {
	return s.entries.Load(key)
}

func (s *storeImpl) Delete(key string) {
	s.entries.Delete(key)
}

func (s *storeImpl) Len() int {
	return s.entries.Size()
}

func (s *storeImpl) Dump() string {
	keys := make([]string, 0, s.entries.Size())
	s.entries.Range(func(key string, _ string) bool {
		keys = append(keys, key)
		return true
	})
	sort.Strings(keys)

	var sb strings.Builder
	for i, key := range keys {
		if i > 0 {
			sb.WriteByte('\n')
		}
		value, _ := s.entries.Load(key)
		sb.WriteString(key)
		sb.WriteString(" => ")
		sb.WriteString(value)
	}
	return sb.String()
}
