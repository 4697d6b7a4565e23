package store

import (
	"iter"

	"github.com/jacentio/roster/internal/trie"
)

// NameIndex is a prefix tree over record names.
//
// It holds references to records owned by a Store and copies no record data.
// The index reflects the names inserted so far; records added to the store
// afterwards are not visible until the index is rebuilt. Each name maps to at
// most one record; inserting the same name again replaces the earlier record.
type NameIndex struct {
	names *trie.Trie[*Record]
}

// NewNameIndex creates an empty NameIndex.
func NewNameIndex() *NameIndex {
	return &NameIndex{names: trie.New[*Record]()}
}

// Insert associates name with r, replacing any record already indexed under name.
func (x *NameIndex) Insert(name string, r *Record) {
	x.names.Put(name, r)
}

// Lookup returns the record indexed under exactly name.
func (x *NameIndex) Lookup(name string) (*Record, bool) {
	return x.names.Get(name)
}

// Len returns the number of distinct names indexed.
func (x *NameIndex) Len() int { return x.names.Len() }

// All yields the indexed records in ascending byte order of their names.
// Each call starts a fresh traversal.
func (x *NameIndex) All() iter.Seq[*Record] {
	return x.names.All()
}

// WithPrefix yields, in name order, the records whose name starts with prefix.
func (x *NameIndex) WithPrefix(prefix string) iter.Seq[*Record] {
	return x.names.Prefix(prefix)
}

// Summaries returns the listing of every indexed record in name order.
func (x *NameIndex) Summaries() []Summary {
	out := make([]Summary, 0, x.names.Len())
	for r := range x.names.All() {
		out = append(out, r.Summary())
	}
	return out
}

// Reset drops every indexed name.
func (x *NameIndex) Reset() {
	x.names.Reset()
}
