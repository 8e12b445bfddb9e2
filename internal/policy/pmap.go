package policy

// pmap is a small persistent (copy-on-write) map keyed by string, used to
// back Policy.strategy/best_ancestors/worst_ancestors so that Extend never
// copies the parent map (spec.md §9's structural-sharing design note). A
// child built with with() only allocates a thin overlay layer (after one
// lookup along the chain to keep the key count) and a lookup that misses
// the overlay chains to the parent; nothing a
// child does is ever visible to its parent or siblings, matching the
// value semantics required by spec.md §5.
type pmap[V any] struct {
	parent *pmap[V]
	key    string
	value  V
	size   int
}

// newPMap returns the empty map.
func newPMap[V any]() *pmap[V] { return nil }

// with returns a new map equal to m plus key -> value (overwriting any
// existing entry for key). m itself is unchanged.
func (m *pmap[V]) with(key string, value V) *pmap[V] {
	size := 1
	if m != nil {
		size = m.size + 1
		if _, ok := m.get(key); ok {
			size = m.size
		}
	}
	return &pmap[V]{parent: m, key: key, value: value, size: size}
}

// get looks up key, chaining through overlay layers until found or the
// chain is exhausted. The most recently written layer wins.
func (m *pmap[V]) get(key string) (V, bool) {
	for n := m; n != nil; n = n.parent {
		if n.key == key {
			return n.value, true
		}
	}
	var zero V
	return zero, false
}

// has reports whether key is present.
func (m *pmap[V]) has(key string) bool {
	_, ok := m.get(key)
	return ok
}

// len returns the number of distinct keys reachable from m: with() counts
// an overwritten key once, even though each write adds a layer.
func (m *pmap[V]) len() int {
	if m == nil {
		return 0
	}
	return m.size
}

// each calls fn once per distinct key, most-recently-written value only,
// in unspecified order. It stops early if fn returns false.
func (m *pmap[V]) each(fn func(key string, value V) bool) {
	seen := make(map[string]bool, m.len())
	for n := m; n != nil; n = n.parent {
		if seen[n.key] {
			continue
		}
		seen[n.key] = true
		if !fn(n.key, n.value) {
			return
		}
	}
}

// keys returns the distinct keys reachable from m.
func (m *pmap[V]) keys() []string {
	out := make([]string, 0, m.len())
	m.each(func(k string, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}
