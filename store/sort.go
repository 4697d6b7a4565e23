package store

// quicksort orders recs in place so that le(recs[i], recs[i+1]) holds.
// Lomuto partition with the last element as pivot; elements for which
// le(x, pivot) is true end up left of the pivot. Not stable.
func quicksort(recs []*Record, le func(a, b *Record) bool) {
	if len(recs) < 2 {
		return
	}
	p := partition(recs, le)
	quicksort(recs[:p], le)
	quicksort(recs[p+1:], le)
}

func partition(recs []*Record, le func(a, b *Record) bool) int {
	last := len(recs) - 1
	pivot := recs[last]
	i := 0
	for j := 0; j < last; j++ {
		if le(recs[j], pivot) {
			recs[i], recs[j] = recs[j], recs[i]
			i++
		}
	}
	recs[i], recs[last] = recs[last], recs[i]
	return i
}

func keyLE(a, b *Record) bool {
	return a.key <= b.key
}

func scoreLE(idx int) func(a, b *Record) bool {
	return func(a, b *Record) bool {
		return a.scores[idx] <= b.scores[idx]
	}
}
