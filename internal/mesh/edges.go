package mesh

import "fmt"

// EdgeMap stores directed boundary edges keyed by their start vertex.
// Each vertex has at most one outgoing edge. First returns the oldest
// remaining key, which keeps wall output stable across runs.
type EdgeMap struct {
	next  map[int]int
	order []int
	head  int
}

// NewEdgeMap returns an empty edge map.
func NewEdgeMap() *EdgeMap {
	return &EdgeMap{next: make(map[int]int)}
}

// Add records the edge from -> to.
func (m *EdgeMap) Add(from, to int) error {
	if existing, ok := m.next[from]; ok {
		return fmt.Errorf("%w: vertex %d already has boundary edge to %d, adding %d",
			ErrInvariantViolation, from, existing, to)
	}
	m.next[from] = to
	m.order = append(m.order, from)
	return nil
}

// Next returns the end vertex of the edge starting at from.
func (m *EdgeMap) Next(from int) (int, bool) {
	to, ok := m.next[from]
	return to, ok
}

// Has reports whether an edge starts at from.
func (m *EdgeMap) Has(from int) bool {
	_, ok := m.next[from]
	return ok
}

// Remove deletes the edge starting at from.
func (m *EdgeMap) Remove(from int) {
	delete(m.next, from)
}

// Len returns the number of edges left.
func (m *EdgeMap) Len() int {
	return len(m.next)
}

// First returns the earliest added start vertex still in the map.
func (m *EdgeMap) First() (int, bool) {
	for m.head < len(m.order) {
		key := m.order[m.head]
		if _, ok := m.next[key]; ok {
			return key, true
		}
		m.head++
	}
	return 0, false
}
