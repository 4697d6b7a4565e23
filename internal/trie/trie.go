// Package trie provides a byte-keyed prefix tree whose nodes live in a single arena.
//
// Nodes are addressed by int32 index into one backing slice and children are
// kept as edges sorted by byte, so a depth-first walk visits keys in ascending
// byte-lexicographic order. Dropping the Trie (or calling Reset) releases
// every node at once.
package trie

import (
	"iter"
	"sort"
)

const root int32 = 0

type edge struct {
	b     byte
	child int32
}

type node[V any] struct {
	edges []edge
	value V
	set   bool
}

// Trie maps byte strings to values of type V.
// A Trie is not safe for concurrent use, and must not be modified while an
// iterator returned by All or Prefix is running.
type Trie[V any] struct {
	nodes []node[V]
	count int
}

// New creates an empty Trie.
func New[V any]() *Trie[V] {
	return &Trie[V]{nodes: make([]node[V], 1)}
}

// Put stores v under key, replacing any value already stored there.
// It reports whether key was already present.
func (t *Trie[V]) Put(key string, v V) bool {
	cur := root
	for i := 0; i < len(key); i++ {
		cur = t.childOrCreate(cur, key[i])
	}
	n := &t.nodes[cur]
	replaced := n.set
	n.value = v
	n.set = true
	if !replaced {
		t.count++
	}
	return replaced
}

// Get returns the value stored under exactly key.
func (t *Trie[V]) Get(key string) (V, bool) {
	idx, ok := t.find(key)
	if !ok || !t.nodes[idx].set {
		var zero V
		return zero, false
	}
	return t.nodes[idx].value, true
}

// Len returns the number of keys holding a value.
func (t *Trie[V]) Len() int { return t.count }

// Nodes returns the number of arena nodes, including the root.
func (t *Trie[V]) Nodes() int { return len(t.nodes) }

// Reset drops every node.
func (t *Trie[V]) Reset() {
	t.nodes = make([]node[V], 1)
	t.count = 0
}

// All yields every stored value in ascending key order.
func (t *Trie[V]) All() iter.Seq[V] {
	return t.Prefix("")
}

// Prefix yields the values whose key starts with prefix, in ascending key order.
func (t *Trie[V]) Prefix(prefix string) iter.Seq[V] {
	return func(yield func(V) bool) {
		start, ok := t.find(prefix)
		if !ok {
			return
		}
		t.walk(start, yield)
	}
}

func (t *Trie[V]) walk(idx int32, yield func(V) bool) bool {
	n := &t.nodes[idx]
	if n.set && !yield(n.value) {
		return false
	}
	for _, e := range n.edges {
		if !t.walk(e.child, yield) {
			return false
		}
	}
	return true
}

func (t *Trie[V]) find(key string) (int32, bool) {
	cur := root
	for i := 0; i < len(key); i++ {
		next, ok := t.child(cur, key[i])
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

func (t *Trie[V]) child(idx int32, b byte) (int32, bool) {
	edges := t.nodes[idx].edges
	pos := sort.Search(len(edges), func(i int) bool { return edges[i].b >= b })
	if pos < len(edges) && edges[pos].b == b {
		return edges[pos].child, true
	}
	return 0, false
}

func (t *Trie[V]) childOrCreate(idx int32, b byte) int32 {
	edges := t.nodes[idx].edges
	pos := sort.Search(len(edges), func(i int) bool { return edges[i].b >= b })
	if pos < len(edges) && edges[pos].b == b {
		return edges[pos].child
	}

	child := int32(len(t.nodes))
	t.nodes = append(t.nodes, node[V]{})

	edges = append(edges, edge{})
	copy(edges[pos+1:], edges[pos:])
	edges[pos] = edge{b: b, child: child}
	t.nodes[idx].edges = edges
	return child
}
