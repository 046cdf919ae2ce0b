package chunker

// orderedMap is a minimal insertion-ordered map. None of the retrieved
// example repositories import an ecosystem ordered-map library, so this is
// a small hand-rolled stand-in for the indexmap::IndexMap the original
// Rust source uses - every bucketing step in this package needs stable
// first-seen order for deterministic chunk output (spec invariant: chunks
// appear in the order they are emitted, buckets are processed in insertion
// order of first appearance).
type orderedMap[V any] struct {
	index map[string]int
	keys  []string
	vals  []V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{index: make(map[string]int)}
}

// getOrInsert returns the existing value for key, or inserts zero and
// returns it, reporting whether the key was newly inserted.
func (m *orderedMap[V]) getOrInsert(key string, zero V) (*V, bool) {
	if i, ok := m.index[key]; ok {
		return &m.vals[i], false
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, zero)
	return &m.vals[len(m.vals)-1], true
}

func (m *orderedMap[V]) len() int {
	return len(m.keys)
}

// each calls fn for every entry in insertion order.
func (m *orderedMap[V]) each(fn func(key string, val V)) {
	for i, k := range m.keys {
		fn(k, m.vals[i])
	}
}

// first returns the single entry of a one-element map. Caller must ensure
// len() == 1.
func (m *orderedMap[V]) first() (string, V) {
	return m.keys[0], m.vals[0]
}
