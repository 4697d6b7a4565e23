package store

import (
	"iter"
)

// Store owns a growing collection of records with unique keys.
//
// Records are kept in a positional array. Appends never reorder existing
// records; only SortByKey and SortByScore do. A Store is not safe for
// concurrent use.
type Store struct {
	config  Config
	records []*Record
}

// New creates a new Store instance.
func New(config Config) *Store {
	config.validate()
	return &Store{
		config:  config,
		records: make([]*Record, 0, config.InitialCapacity),
	}
}

// Len returns the number of stored records.
func (s *Store) Len() int { return len(s.records) }

// Cap returns the number of record slots currently allocated.
func (s *Store) Cap() int { return cap(s.records) }

// Append takes ownership of r. It fails with DuplicateKey, leaving the store
// unchanged, when a record with the same key is already stored.
func (s *Store) Append(r *Record) error {
	if r == nil {
		return newError(InvalidKey, "nil record")
	}
	if _, err := s.Lookup(r.key); err == nil {
		return newError(DuplicateKey, "%q", r.key)
	}
	s.ensureCapacity()
	s.records = append(s.records, r)
	return nil
}

// Add validates a new record and appends it.
func (s *Store) Add(key, name, branch string, level Level, scores []int) (*Record, error) {
	r, err := NewRecord(key, name, branch, level, scores)
	if err != nil {
		return nil, err
	}
	if err := s.Append(r); err != nil {
		return nil, err
	}
	return r, nil
}

// ensureCapacity doubles the backing array when it is full.
func (s *Store) ensureCapacity() {
	if len(s.records) < cap(s.records) {
		return
	}
	newCap := cap(s.records) * 2
	if newCap == 0 {
		newCap = s.config.InitialCapacity
	}
	grown := make([]*Record, len(s.records), newCap)
	copy(grown, s.records)
	s.records = grown
}

// Lookup returns the record stored under key.
func (s *Store) Lookup(key string) (*Record, error) {
	for _, r := range s.records {
		if r.key == key {
			return r, nil
		}
	}
	return nil, newError(NotFound, "key %q", key)
}

// At returns the record at position pos.
func (s *Store) At(pos int) (*Record, error) {
	if pos < 0 || pos >= len(s.records) {
		return nil, newError(NotFound, "position %d of %d", pos, len(s.records))
	}
	return s.records[pos], nil
}

// SetScore replaces one score of the record stored under key.
func (s *Store) SetScore(key string, idx, value int) error {
	r, err := s.Lookup(key)
	if err != nil {
		return err
	}
	return r.SetScore(idx, value)
}

// All yields every record with its position.
func (s *Store) All() iter.Seq2[int, *Record] {
	return func(yield func(int, *Record) bool) {
		for i, r := range s.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Summaries returns the listing of every record in position order.
func (s *Store) Summaries() []Summary {
	out := make([]Summary, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.Summary())
	}
	return out
}

// SortByKey orders records by key, byte-wise ascending.
func (s *Store) SortByKey() {
	quicksort(s.records, keyLE)
}

// SortByScore orders records by the score of component idx, ascending.
//
// idx must be a valid component of every stored record; otherwise the store
// is left untouched and IndexOutOfRange is returned. An empty store is a no-op.
func (s *Store) SortByScore(idx int) error {
	if len(s.records) == 0 {
		return nil
	}
	if n := s.records[0].Components(); idx < 0 || idx >= n {
		return newError(IndexOutOfRange, "component %d of %d", idx, n)
	}
	for _, r := range s.records[1:] {
		if idx >= r.Components() {
			return newError(IndexOutOfRange, "component %d missing from %q", idx, r.key)
		}
	}
	quicksort(s.records, scoreLE(idx))
	return nil
}

// BuildNameIndex indexes every stored record by name.
// When two records share a name the one at the later position wins.
func (s *Store) BuildNameIndex() *NameIndex {
	idx := NewNameIndex()
	for _, r := range s.records {
		idx.Insert(r.name, r)
	}
	return idx
}
