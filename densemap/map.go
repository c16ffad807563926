// Package densemap provides Map[K, V], a dense open-addressed hash map
// built on the internal/table engine (see SPEC_FULL.md). It is a
// general-purpose replacement for a plain Go map where insertion, lookup
// and deletion throughput at scale matter more than ordered iteration —
// iteration here is in storage-index order, unrelated to insertion or key
// order (spec.md §4.7).
package densemap

import (
	"github.com/db47h/densehash/internal/alloc"
	"github.com/db47h/densehash/internal/cell"
	"github.com/db47h/densehash/internal/table"
)

// Re-exported error sentinels (spec.md §7). Compare with errors.Is.
var (
	ErrInvalidArgument  = table.ErrInvalidArgument
	ErrCapacityOverflow = table.ErrCapacityOverflow
	ErrNotFound         = table.ErrNotFound
	ErrAllocatorFailure = table.ErrAllocatorFailure
)

// Option configures a Map at construction time.
type Option[K comparable, V any] = table.Option[K, V]

// WithHasher overrides the hash function used for keys of type K.
func WithHasher[K comparable, V any](h func(K) uint64) Option[K, V] {
	return table.WithHasher[K, V](h)
}

// WithEqual overrides the key-equality predicate.
func WithEqual[K comparable, V any](eq func(a, b K) bool) Option[K, V] {
	return table.WithEqual[K, V](eq)
}

// WithMaxLoadFactor sets the load factor that triggers growth; must be in
// (0, 1].
func WithMaxLoadFactor[K comparable, V any](f float64) Option[K, V] {
	return table.WithMaxLoadFactor[K, V](f)
}

// WithGrowthFactor sets the capacity multiplier used on growth; must be > 1.
func WithGrowthFactor[K comparable, V any](growth int) Option[K, V] {
	return table.WithGrowthFactor[K, V](growth)
}

// WithHashableRatio overrides alpha, the fraction of capacity assigned to
// the primary region; must be in [0.70, 0.82].
func WithHashableRatio[K comparable, V any](alpha float64) Option[K, V] {
	return table.WithHashableRatio[K, V](alpha)
}

// WithAllocator overrides the node-cell allocator.
func WithAllocator[K comparable, V any](a alloc.Allocator[cell.Cell[K, V]]) Option[K, V] {
	return table.WithAllocator[K, V](a)
}

// Map is a dense hash map from K to V.
type Map[K comparable, V any] struct {
	t *table.Table[K, V]
}

// New constructs a Map with the given initial bucket count. It fails with
// ErrInvalidArgument if capacity < 1 or a tuning option is out of range,
// and with ErrCapacityOverflow if capacity is at the representable limit.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Map[K, V], error) {
	t, err := table.New[K, V](capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &Map[K, V]{t: t}, nil
}

// Size returns the number of key/value pairs stored.
func (m *Map[K, V]) Size() int { return m.t.Size() }

// Empty reports whether the map has no entries.
func (m *Map[K, V]) Empty() bool { return m.t.Empty() }

// BucketCount returns the total capacity C.
func (m *Map[K, V]) BucketCount() int { return m.t.BucketCount() }

// MaxBucketCount returns the allocator-defined upper bound on capacity.
func (m *Map[K, V]) MaxBucketCount() int { return m.t.MaxBucketCount() }

// LoadFactor returns Size()/BucketCount().
func (m *Map[K, V]) LoadFactor() float64 { return m.t.LoadFactor() }

// MaxLoadFactor returns the configured max load factor.
func (m *Map[K, V]) MaxLoadFactor() float64 { return m.t.MaxLoadFactor() }

// SetMaxLoadFactor changes the max load factor; f must be in (0, 1].
func (m *Map[K, V]) SetMaxLoadFactor(f float64) error { return m.t.SetMaxLoadFactor(f) }

// HashFunc returns the configured hash function.
func (m *Map[K, V]) HashFunc() func(K) uint64 { return m.t.HashFunc() }

// KeyEq returns the configured key-equality predicate.
func (m *Map[K, V]) KeyEq() func(a, b K) bool { return m.t.KeyEq() }

// Allocator returns the configured node-cell allocator.
func (m *Map[K, V]) Allocator() alloc.Allocator[cell.Cell[K, V]] { return m.t.Allocator() }

// Clear empties the map without shrinking its capacity.
func (m *Map[K, V]) Clear() { m.t.Clear() }

// Insert adds key/value if key is absent. It returns whether a new entry
// was created; if key was already present, the map is unchanged.
func (m *Map[K, V]) Insert(key K, value V) (inserted bool, err error) {
	_, inserted, err = m.t.Insert(key, value)
	return inserted, err
}

// Emplace is an alias for Insert: the engine constructs the value in
// place either way since Go has no separate placement-construction step.
func (m *Map[K, V]) Emplace(key K, value V) (inserted bool, err error) {
	return m.Insert(key, value)
}

// Set inserts or overwrites the value for key, mirroring a plain Go map's
// m[key] = value.
func (m *Map[K, V]) Set(key K, value V) error {
	idx, inserted, err := m.t.Insert(key, value)
	if err != nil {
		return err
	}
	if !inserted {
		m.t.CellAt(idx).Value = value
	}
	return nil
}

// Get returns the value for key and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	idx := m.t.Find(key)
	if idx == m.t.End() {
		var zero V
		return zero, false
	}
	return m.t.CellAt(idx).Value, true
}

// GetOrInsert returns the value for key, inserting the given default value
// first if absent. This is the operator[] equivalent from spec.md §4.6.
func (m *Map[K, V]) GetOrInsert(key K, def V) (V, error) {
	idx, _, err := m.t.Insert(key, def)
	if err != nil {
		var zero V
		return zero, err
	}
	return m.t.CellAt(idx).Value, nil
}

// At returns the value for key, or ErrNotFound if absent.
func (m *Map[K, V]) At(key K) (V, error) { return m.t.At(key) }

// Find returns an Iterator positioned at key, or End() if absent.
func (m *Map[K, V]) Find(key K) Iterator[K, V] {
	return Iterator[K, V]{m: m, idx: m.t.Find(key)}
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool { return m.t.Contains(key) }

// Count returns 1 if key is present, 0 otherwise (no duplicate keys).
func (m *Map[K, V]) Count(key K) int {
	if m.t.Contains(key) {
		return 1
	}
	return 0
}

// Erase removes key. It returns 1 if removed, 0 if absent.
func (m *Map[K, V]) Erase(key K) int {
	if m.t.Erase(key) {
		return 1
	}
	return 0
}

// EraseIterator removes the entry at it and returns the iterator advanced
// to the next entry.
func (m *Map[K, V]) EraseIterator(it Iterator[K, V]) Iterator[K, V] {
	next := m.t.Advance(it.idx)
	m.t.EraseIndex(it.idx)
	// Erasing a chain head moves its not-yet-visited successor into it.idx.
	if m.t.CellAt(it.idx).Occupied() {
		return it
	}
	return Iterator[K, V]{m: m, idx: next}
}

// EraseRange removes every entry from first up to but not including last,
// and returns the updated position of last (spec.md §6 erase(range)).
func (m *Map[K, V]) EraseRange(first, last Iterator[K, V]) Iterator[K, V] {
	it := first
	for it.idx != last.idx {
		it = m.EraseIterator(it)
	}
	return it
}

// Merge inserts every entry of other that is absent from m. other is left
// unchanged.
func (m *Map[K, V]) Merge(other *Map[K, V]) error { return m.t.Merge(other.t) }

// Rehash rebuilds the map with at least n buckets (and enough to hold the
// current size at the configured max load factor, whichever is larger).
func (m *Map[K, V]) Rehash(n int) error { return m.t.Rehash(n) }

// Reserve is a hint that the map should be able to hold n entries without
// rehashing; it only rehashes if n exceeds current headroom.
func (m *Map[K, V]) Reserve(n int) error { return m.t.Reserve(n) }

// Clone returns an independent copy of m.
func (m *Map[K, V]) Clone() (*Map[K, V], error) {
	clone, err := New[K, V](m.t.BucketCount(),
		table.WithHasher[K, V](m.t.HashFunc()),
		table.WithEqual[K, V](m.t.KeyEq()),
		table.WithAllocator[K, V](m.t.Allocator()),
	)
	if err != nil {
		return nil, err
	}
	if err := clone.t.SetMaxLoadFactor(m.t.MaxLoadFactor()); err != nil {
		return nil, err
	}
	if err := clone.Merge(m); err != nil {
		return nil, err
	}
	return clone, nil
}

// Swap exchanges the contents of m and other.
func (m *Map[K, V]) Swap(other *Map[K, V]) { m.t, other.t = other.t, m.t }

// ForEach visits every entry in index order until yield returns false.
func (m *Map[K, V]) ForEach(yield func(K, V) bool) {
	for i := m.t.Begin(); i != m.t.End(); i = m.t.Advance(i) {
		c := m.t.CellAt(i)
		if !yield(c.Key, c.Value) {
			return
		}
	}
}

// Keys returns an iterator function suitable for range-over-func (Go
// 1.23+), matching the idiom of the teacher's lru.Map.Keys.
func (m *Map[K, V]) Keys() func(yield func(K) bool) {
	return func(yield func(K) bool) {
		for i := m.t.Begin(); i != m.t.End(); i = m.t.Advance(i) {
			if !yield(m.t.CellAt(i).Key) {
				return
			}
		}
	}
}

// Values returns an iterator function over values in index order.
func (m *Map[K, V]) Values() func(yield func(V) bool) {
	return func(yield func(V) bool) {
		for i := m.t.Begin(); i != m.t.End(); i = m.t.Advance(i) {
			if !yield(m.t.CellAt(i).Value) {
				return
			}
		}
	}
}

// All returns an iterator function over key/value pairs in index order.
func (m *Map[K, V]) All() func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		for i := m.t.Begin(); i != m.t.End(); i = m.t.Advance(i) {
			c := m.t.CellAt(i)
			if !yield(c.Key, c.Value) {
				return
			}
		}
	}
}

// Begin returns an iterator at the first occupied entry.
func (m *Map[K, V]) Begin() Iterator[K, V] { return Iterator[K, V]{m: m, idx: m.t.Begin()} }

// End returns the past-the-end iterator.
func (m *Map[K, V]) End() Iterator[K, V] { return Iterator[K, V]{m: m, idx: m.t.End()} }
