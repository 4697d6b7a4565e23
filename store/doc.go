// Package store provides an in-memory store for academic records with a
// secondary name index.
//
// A [Store] owns every [Record] appended to it and guarantees that no two
// records share a key. Records can be reordered in place by key or by one
// score component, and a [NameIndex] built from the store walks the records
// in name order.
//
// # Records
//
// Records are created with [NewRecord] (or [NewRecordN] for an explicit
// component count), which validates before anything is stored:
//
//   - key: 1..15 bytes from [A-Za-z0-9_-]
//   - name: 1..63 bytes with a second, alphabetic, space-separated token
//   - branch: truncated to 7 bytes, "N/A" when empty
//   - level: [Undergraduate], [Graduate] or [Doctoral]
//
// Total and average are computed on demand. The grade comes from the level's
// threshold table:
//
//	Undergraduate  A >= 85  B >= 70  C >= 50
//	Graduate       A >= 80  B >= 65  C >= 50
//	Doctoral       A >= 90  B >= 75  C >= 60
//
// # Usage
//
//	s := store.New(store.DefaultConfig())
//	if _, err := s.Add("CS101", "Alice Smith", "CSE", store.Undergraduate, []int{90, 80, 70}); err != nil {
//	    // errors.Is(err, store.ErrDuplicateKey), store.KindOf(err), ...
//	}
//	s.SortByKey()
//	for r := range s.BuildNameIndex().All() {
//	    fmt.Println(r.Name(), r.Grade())
//	}
//
// # Sorting
//
// [Store.SortByKey] and [Store.SortByScore] use a recursive quicksort with a
// last-element pivot. They are not stable, and already sorted input is the
// quadratic worst case.
//
// # Name index
//
// A [NameIndex] references records without copying them. It is a snapshot:
// build a new one after appending to the store. Two records with the same
// full name cannot both be indexed; the later insert wins.
//
// # Errors
//
// Every fallible operation returns an [*Error] carrying a [Kind]. Each kind
// has a sentinel usable with errors.Is:
//
//   - [ErrInvalidKey] - bad key length or character
//   - [ErrInvalidNameFormat] - name empty, too long, or missing a second token
//   - [ErrInvalidNameChars] - non-alphabetic byte in the second token
//   - [ErrInvalidLevel] - level outside the three defined levels
//   - [ErrDuplicateKey] - key already stored
//   - [ErrIndexOutOfRange] - score or sort component out of bounds
//   - [ErrNotFound] - no record for the key or position
package store
