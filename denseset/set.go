// Package denseset provides Set[K], a key-only view over the same dense
// open-addressed engine densemap uses, with a zero-size value marker
// (spec.md §4.6 "Set") and no indexed-access operator.
package denseset

import (
	"github.com/db47h/densehash/internal/alloc"
	"github.com/db47h/densehash/internal/cell"
	"github.com/db47h/densehash/internal/table"
)

// marker is the zero-size value every cell carries; Go structs with no
// fields already occupy zero space, so no packing trick is needed here
// (contrast with spec.md's note that some languages need an explicit
// "zero logical size" value type).
type marker = struct{}

// Re-exported error sentinels (spec.md §7). Compare with errors.Is.
var (
	ErrInvalidArgument  = table.ErrInvalidArgument
	ErrCapacityOverflow = table.ErrCapacityOverflow
	ErrNotFound         = table.ErrNotFound
	ErrAllocatorFailure = table.ErrAllocatorFailure
)

// Option configures a Set at construction time.
type Option[K comparable] = table.Option[K, marker]

// WithHasher overrides the hash function used for keys of type K.
func WithHasher[K comparable](h func(K) uint64) Option[K] {
	return table.WithHasher[K, marker](h)
}

// WithEqual overrides the key-equality predicate.
func WithEqual[K comparable](eq func(a, b K) bool) Option[K] {
	return table.WithEqual[K, marker](eq)
}

// WithMaxLoadFactor sets the load factor that triggers growth; must be in
// (0, 1].
func WithMaxLoadFactor[K comparable](f float64) Option[K] {
	return table.WithMaxLoadFactor[K, marker](f)
}

// WithGrowthFactor sets the capacity multiplier used on growth; must be > 1.
func WithGrowthFactor[K comparable](growth int) Option[K] {
	return table.WithGrowthFactor[K, marker](growth)
}

// WithHashableRatio overrides alpha, the fraction of capacity assigned to
// the primary region; must be in [0.70, 0.82].
func WithHashableRatio[K comparable](alpha float64) Option[K] {
	return table.WithHashableRatio[K, marker](alpha)
}

// WithAllocator overrides the node-cell allocator.
func WithAllocator[K comparable](a alloc.Allocator[cell.Cell[K, marker]]) Option[K] {
	return table.WithAllocator[K, marker](a)
}

// Set is a dense hash set of keys.
type Set[K comparable] struct {
	t *table.Table[K, marker]
}

// New constructs a Set with the given initial bucket count. It fails with
// ErrInvalidArgument if capacity < 1 or a tuning option is out of range,
// and with ErrCapacityOverflow if capacity is at the representable limit.
func New[K comparable](capacity int, opts ...Option[K]) (*Set[K], error) {
	t, err := table.New[K, marker](capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &Set[K]{t: t}, nil
}

// Size returns the number of keys stored.
func (s *Set[K]) Size() int { return s.t.Size() }

// Empty reports whether the set has no keys.
func (s *Set[K]) Empty() bool { return s.t.Empty() }

// BucketCount returns the total capacity C.
func (s *Set[K]) BucketCount() int { return s.t.BucketCount() }

// MaxBucketCount returns the allocator-defined upper bound on capacity.
func (s *Set[K]) MaxBucketCount() int { return s.t.MaxBucketCount() }

// LoadFactor returns Size()/BucketCount().
func (s *Set[K]) LoadFactor() float64 { return s.t.LoadFactor() }

// MaxLoadFactor returns the configured max load factor.
func (s *Set[K]) MaxLoadFactor() float64 { return s.t.MaxLoadFactor() }

// SetMaxLoadFactor changes the max load factor; f must be in (0, 1].
func (s *Set[K]) SetMaxLoadFactor(f float64) error { return s.t.SetMaxLoadFactor(f) }

// HashFunc returns the configured hash function.
func (s *Set[K]) HashFunc() func(K) uint64 { return s.t.HashFunc() }

// KeyEq returns the configured key-equality predicate.
func (s *Set[K]) KeyEq() func(a, b K) bool { return s.t.KeyEq() }

// Allocator returns the configured node-cell allocator.
func (s *Set[K]) Allocator() alloc.Allocator[cell.Cell[K, marker]] { return s.t.Allocator() }

// Clear empties the set without shrinking its capacity.
func (s *Set[K]) Clear() { s.t.Clear() }

// Insert adds key if absent. It returns whether a new entry was created.
func (s *Set[K]) Insert(key K) (inserted bool, err error) {
	_, inserted, err = s.t.Insert(key, marker{})
	return inserted, err
}

// Find returns an Iterator positioned at key, or End() if absent.
func (s *Set[K]) Find(key K) Iterator[K] {
	return Iterator[K]{s: s, idx: s.t.Find(key)}
}

// Contains reports whether key is present.
func (s *Set[K]) Contains(key K) bool { return s.t.Contains(key) }

// Count returns 1 if key is present, 0 otherwise (no duplicate keys).
func (s *Set[K]) Count(key K) int {
	if s.t.Contains(key) {
		return 1
	}
	return 0
}

// Erase removes key. It returns 1 if removed, 0 if absent.
func (s *Set[K]) Erase(key K) int {
	if s.t.Erase(key) {
		return 1
	}
	return 0
}

// EraseIterator removes the entry at it and returns the iterator advanced
// to the next entry.
func (s *Set[K]) EraseIterator(it Iterator[K]) Iterator[K] {
	next := s.t.Advance(it.idx)
	s.t.EraseIndex(it.idx)
	// Erasing a chain head moves its not-yet-visited successor into it.idx.
	if s.t.CellAt(it.idx).Occupied() {
		return it
	}
	return Iterator[K]{s: s, idx: next}
}

// EraseRange removes every entry from first up to but not including last,
// and returns the updated position of last (spec.md §6 erase(range)).
func (s *Set[K]) EraseRange(first, last Iterator[K]) Iterator[K] {
	it := first
	for it.idx != last.idx {
		it = s.EraseIterator(it)
	}
	return it
}

// Merge inserts every key of other that is absent from s. other is left
// unchanged.
func (s *Set[K]) Merge(other *Set[K]) error { return s.t.Merge(other.t) }

// Rehash rebuilds the set with at least n buckets.
func (s *Set[K]) Rehash(n int) error { return s.t.Rehash(n) }

// Reserve is a hint that the set should be able to hold n entries without
// rehashing.
func (s *Set[K]) Reserve(n int) error { return s.t.Reserve(n) }

// Clone returns an independent copy of s.
func (s *Set[K]) Clone() (*Set[K], error) {
	clone, err := New[K](s.t.BucketCount(),
		table.WithHasher[K, marker](s.t.HashFunc()),
		table.WithEqual[K, marker](s.t.KeyEq()),
		table.WithAllocator[K, marker](s.t.Allocator()),
	)
	if err != nil {
		return nil, err
	}
	if err := clone.t.SetMaxLoadFactor(s.t.MaxLoadFactor()); err != nil {
		return nil, err
	}
	if err := clone.Merge(s); err != nil {
		return nil, err
	}
	return clone, nil
}

// Swap exchanges the contents of s and other.
func (s *Set[K]) Swap(other *Set[K]) { s.t, other.t = other.t, s.t }

// ForEach visits every key in index order until yield returns false.
func (s *Set[K]) ForEach(yield func(K) bool) {
	for i := s.t.Begin(); i != s.t.End(); i = s.t.Advance(i) {
		if !yield(s.t.CellAt(i).Key) {
			return
		}
	}
}

// Keys returns an iterator function over keys in index order, matching the
// range-over-func idiom densemap.Map.Keys uses.
func (s *Set[K]) Keys() func(yield func(K) bool) {
	return func(yield func(K) bool) {
		for i := s.t.Begin(); i != s.t.End(); i = s.t.Advance(i) {
			if !yield(s.t.CellAt(i).Key) {
				return
			}
		}
	}
}

// Begin returns an iterator at the first occupied entry.
func (s *Set[K]) Begin() Iterator[K] { return Iterator[K]{s: s, idx: s.t.Begin()} }

// End returns the past-the-end iterator.
func (s *Set[K]) End() Iterator[K] { return Iterator[K]{s: s, idx: s.t.End()} }
