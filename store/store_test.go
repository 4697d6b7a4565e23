package store_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jacentio/roster/store"
)

func mustAdd(t *testing.T, s *store.Store, key, name string, scores ...int) *store.Record {
	t.Helper()
	r, err := s.Add(key, name, "CSE", store.Undergraduate, scores)
	if err != nil {
		t.Fatalf("Add(%q): %v", key, err)
	}
	return r
}

func keys(s *store.Store) []string {
	var out []string
	for _, r := range s.All() {
		out = append(out, r.Key())
	}
	return out
}

func TestDefaultConfig(t *testing.T) {
	cfg := store.DefaultConfig()
	if cfg.InitialCapacity != 16 {
		t.Errorf("expected InitialCapacity 16, got %d", cfg.InitialCapacity)
	}
}

func TestNew_NonPositiveCapacity(t *testing.T) {
	for _, c := range []int{0, -4} {
		s := store.New(store.Config{InitialCapacity: c})
		if s.Cap() != 16 {
			t.Errorf("capacity %d: expected default 16, got %d", c, s.Cap())
		}
	}
}

func TestAdd_Scenario(t *testing.T) {
	s := store.New(store.DefaultConfig())

	if _, err := s.Add("CS101", "Alice Smith", "CSE", store.Undergraduate, []int{90, 80, 70}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := s.Add("CS101", "Bob Lee", "ECE", store.Graduate, []int{1})
	if !errors.Is(err, store.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
	if store.KindOf(err) != store.DuplicateKey {
		t.Errorf("expected kind DuplicateKey, got %v", store.KindOf(err))
	}
	if s.Len() != 1 {
		t.Errorf("expected size 1, got %d", s.Len())
	}

	err = s.SortByScore(5)
	if !errors.Is(err, store.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}

	r, err := s.Lookup("CS101")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Name() != "Alice Smith" || r.Total() != 240 || r.Average() != 80 || r.Grade() != store.GradeB {
		t.Errorf("unexpected record %+v", r.Summary())
	}
}

func TestAdd_LookupReturnsSameFields(t *testing.T) {
	s := store.New(store.DefaultConfig())
	r, err := s.Add("EE-7", "Cy Fox", "", store.Doctoral, []int{91, 95})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.Lookup("EE-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != r {
		t.Error("expected Lookup to return the stored record")
	}
	if diff := cmp.Diff(r.Summary(), got.Summary()); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestAdd_ValidationLeavesStoreUnchanged(t *testing.T) {
	s := store.New(store.DefaultConfig())
	mustAdd(t, s, "A1", "Ann Ray")

	tests := []struct {
		name    string
		key     string
		display string
		want    error
	}{
		{"bad key", "A 1", "Bob Lee", store.ErrInvalidKey},
		{"no second name", "B1", "Alice", store.ErrInvalidNameFormat},
		{"bad second name", "B1", "Alice S2", store.ErrInvalidNameChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := s.Add(tt.key, tt.display, "", store.Undergraduate, nil)
			if r != nil {
				t.Error("expected nil record")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if s.Len() != 1 {
				t.Errorf("expected size 1, got %d", s.Len())
			}
		})
	}
}

func TestAppend_Nil(t *testing.T) {
	s := store.New(store.DefaultConfig())
	if err := s.Append(nil); err == nil {
		t.Error("expected error for nil record")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
}

func TestAppend_NeverDuplicates(t *testing.T) {
	s := store.New(store.Config{InitialCapacity: 2})
	rng := rand.New(rand.NewSource(7))

	accepted := map[string]bool{}
	for i := 0; i < 200; i++ {
		key := fmt.Sprintf("K%d", rng.Intn(40))
		before := s.Len()
		_, err := s.Add(key, "Ann Ray", "", store.Undergraduate, []int{i})
		if accepted[key] {
			if !errors.Is(err, store.ErrDuplicateKey) {
				t.Fatalf("expected duplicate for %q, got %v", key, err)
			}
			if s.Len() != before {
				t.Fatalf("size changed on rejected append: %d -> %d", before, s.Len())
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		accepted[key] = true
	}

	seen := map[string]bool{}
	for _, k := range keys(s) {
		if seen[k] {
			t.Fatalf("duplicate key %q in store", k)
		}
		seen[k] = true
	}
	if len(seen) != len(accepted) {
		t.Errorf("expected %d records, got %d", len(accepted), len(seen))
	}
}

func TestAppend_GrowthPreservesOrder(t *testing.T) {
	s := store.New(store.Config{InitialCapacity: 2})

	var added []*store.Record
	for i := 0; i < 9; i++ {
		added = append(added, mustAdd(t, s, fmt.Sprintf("K%d", i), "Ann Ray", i))
	}

	if s.Cap() != 16 {
		t.Errorf("expected capacity 16 after doubling 2->4->8->16, got %d", s.Cap())
	}
	for i, want := range added {
		got, err := s.At(i)
		if err != nil {
			t.Fatalf("At(%d): %v", i, err)
		}
		if got != want {
			t.Errorf("position %d: expected %q, got %q", i, want.Key(), got.Key())
		}
	}
}

func TestLookup_NotFound(t *testing.T) {
	s := store.New(store.DefaultConfig())
	mustAdd(t, s, "A1", "Ann Ray")

	r, err := s.Lookup("Z9")
	if r != nil || !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected (nil, ErrNotFound), got (%v, %v)", r, err)
	}
}

func TestAt_Bounds(t *testing.T) {
	s := store.New(store.DefaultConfig())
	mustAdd(t, s, "A1", "Ann Ray")

	for _, pos := range []int{-1, 1, 100} {
		if _, err := s.At(pos); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("At(%d): expected ErrNotFound, got %v", pos, err)
		}
	}
}

func TestSetScore(t *testing.T) {
	s := store.New(store.DefaultConfig())
	mustAdd(t, s, "A1", "Ann Ray", 10, 20, 30)

	if err := s.SetScore("A1", 2, 90); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, _ := s.Lookup("A1")
	if diff := cmp.Diff([]int{10, 20, 90}, r.Scores()); diff != "" {
		t.Errorf("scores mismatch (-want +got):\n%s", diff)
	}

	if err := s.SetScore("Z9", 0, 1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.SetScore("A1", 3, 1); !errors.Is(err, store.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if diff := cmp.Diff([]int{10, 20, 90}, r.Scores()); diff != "" {
		t.Errorf("failed SetScore changed scores (-want +got):\n%s", diff)
	}
}

func TestSortByKey(t *testing.T) {
	s := store.New(store.DefaultConfig())
	for _, k := range []string{"m", "B", "a", "Z", "b", "A", "a_", "a-", "0"} {
		mustAdd(t, s, k, "Ann Ray")
	}

	s.SortByKey()

	want := []string{"0", "A", "B", "Z", "a", "a-", "a_", "b", "m"}
	if diff := cmp.Diff(want, keys(s)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByKey_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		s := store.New(store.Config{InitialCapacity: 1})
		n := rng.Intn(50)
		perm := rng.Perm(n)
		for _, p := range perm {
			mustAdd(t, s, fmt.Sprintf("K%03d", p), "Ann Ray")
		}

		s.SortByKey()

		got := keys(s)
		for i := 1; i < len(got); i++ {
			if got[i-1] > got[i] {
				t.Fatalf("round %d: keys out of order at %d: %q > %q", round, i, got[i-1], got[i])
			}
		}
		if len(got) != n {
			t.Fatalf("round %d: expected %d records, got %d", round, n, len(got))
		}
	}
}

func TestSortByKey_SmallStores(t *testing.T) {
	s := store.New(store.DefaultConfig())
	s.SortByKey()
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}

	mustAdd(t, s, "A1", "Ann Ray")
	s.SortByKey()
	if diff := cmp.Diff([]string{"A1"}, keys(s)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByScore(t *testing.T) {
	s := store.New(store.DefaultConfig())
	mustAdd(t, s, "A", "Ann Ray", 5, 70)
	mustAdd(t, s, "B", "Bob Lee", 9, 10)
	mustAdd(t, s, "C", "Cy Fox", 1, 40)
	mustAdd(t, s, "D", "Di Roe", 7, 40)

	if err := s.SortByScore(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []int
	for _, r := range s.All() {
		v, _ := r.ScoreAt(1)
		got = append(got, v)
	}
	if diff := cmp.Diff([]int{10, 40, 40, 70}, got); diff != "" {
		t.Errorf("scores mismatch (-want +got):\n%s", diff)
	}

	if err := s.SortByScore(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"C", "A", "D", "B"}, keys(s)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByScore_InvalidIndex(t *testing.T) {
	s := store.New(store.DefaultConfig())
	mustAdd(t, s, "B", "Bob Lee", 9, 10)
	mustAdd(t, s, "A", "Ann Ray", 5, 70)
	before := keys(s)

	for _, idx := range []int{-1, 2, 5} {
		err := s.SortByScore(idx)
		if !errors.Is(err, store.ErrIndexOutOfRange) {
			t.Errorf("index %d: expected ErrIndexOutOfRange, got %v", idx, err)
		}
		if diff := cmp.Diff(before, keys(s)); diff != "" {
			t.Errorf("index %d: order changed (-want +got):\n%s", idx, diff)
		}
	}
}

func TestSortByScore_ShortRecordRejected(t *testing.T) {
	s := store.New(store.DefaultConfig())
	mustAdd(t, s, "B", "Bob Lee", 9, 10, 3)
	mustAdd(t, s, "A", "Ann Ray", 5)
	before := keys(s)

	if err := s.SortByScore(2); !errors.Is(err, store.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if diff := cmp.Diff(before, keys(s)); diff != "" {
		t.Errorf("order changed (-want +got):\n%s", diff)
	}
}

func TestSortByScore_Empty(t *testing.T) {
	s := store.New(store.DefaultConfig())
	if err := s.SortByScore(3); err != nil {
		t.Errorf("expected no-op on empty store, got %v", err)
	}
}

func TestSummaries(t *testing.T) {
	s := store.New(store.DefaultConfig())
	mustAdd(t, s, "B", "Bob Lee", 60)
	if _, err := s.Add("A", "Ann Ray", "", store.Doctoral, []int{95, 85}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []store.Summary{
		{Key: "B", Name: "Bob Lee", Branch: "CSE", Level: store.Undergraduate, Total: 60, Average: 60, Grade: store.GradeC},
		{Key: "A", Name: "Ann Ray", Branch: "N/A", Level: store.Doctoral, Total: 180, Average: 90, Grade: store.GradeA},
	}
	if diff := cmp.Diff(want, s.Summaries()); diff != "" {
		t.Errorf("summaries mismatch (-want +got):\n%s", diff)
	}
}

func TestAll_StopsEarly(t *testing.T) {
	s := store.New(store.DefaultConfig())
	for i := 0; i < 5; i++ {
		mustAdd(t, s, fmt.Sprintf("K%d", i), "Ann Ray")
	}

	count := 0
	for range s.All() {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("expected to stop after 2, got %d", count)
	}
}
