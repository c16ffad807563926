package densemap

// Iterator is a forward iterator over a Map's entries, in storage-index
// order (unrelated to insertion or key order, spec.md §4.7). Any mutating
// operation on the parent Map invalidates every outstanding Iterator.
type Iterator[K comparable, V any] struct {
	m   *Map[K, V]
	idx int
}

// Valid reports whether it does not equal End().
func (it Iterator[K, V]) Valid() bool { return it.idx != it.m.t.End() }

// Key returns the entry's key. On an iterator equal to End() it does not
// panic: it reads the table's unused trailing sentinel cell, and the key
// it returns is meaningless.
func (it Iterator[K, V]) Key() K { return it.m.t.CellAt(it.idx).Key }

// Value returns the entry's value.
func (it Iterator[K, V]) Value() V { return it.m.t.CellAt(it.idx).Value }

// Next returns the iterator advanced to the next occupied entry.
func (it Iterator[K, V]) Next() Iterator[K, V] {
	return Iterator[K, V]{m: it.m, idx: it.m.t.Advance(it.idx)}
}
