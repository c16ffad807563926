package table

import (
	"github.com/db47h/densehash/internal/alloc"
	"github.com/db47h/densehash/internal/cell"
)

// alphaMin and alphaMax bound the hashable-region ratio per SPEC_FULL.md
// (spec.md §3: "H = floor(alpha*C) for a fixed ratio alpha (0.7-0.82)").
const (
	alphaMin = 0.70
	alphaMax = 0.82

	defaultAlpha       = 0.75
	defaultMaxLoad     = 1.0
	defaultGrowth      = 2
	minInitialCapacity = 1
)

// Option configures a Table at construction time, following the same
// functional-options shape as the teacher's lru.Option (an unexported
// interface plus an optFn adapter).
type Option[K comparable, V any] interface {
	set(*config[K, V])
}

type optFn[K comparable, V any] func(*config[K, V])

func (f optFn[K, V]) set(c *config[K, V]) { f(c) }

type config[K comparable, V any] struct {
	hashFn  func(K) uint64
	equal   func(a, b K) bool
	alloc   alloc.Allocator[cell.Cell[K, V]]
	maxLoad float64
	growth  int
	alpha   float64
}

// WithAllocator overrides the node-cell allocator. The default is
// alloc.NewSlice[cell.Cell[K,V]](0) (an unbounded make()-backed allocator).
func WithAllocator[K comparable, V any](a alloc.Allocator[cell.Cell[K, V]]) Option[K, V] {
	return optFn[K, V](func(c *config[K, V]) { c.alloc = a })
}

// WithHasher overrides the hash function used for keys of type K.
func WithHasher[K comparable, V any](hashFn func(K) uint64) Option[K, V] {
	return optFn[K, V](func(c *config[K, V]) { c.hashFn = hashFn })
}

// WithEqual overrides the key-equality predicate. The default uses Go's
// built-in == operator on the comparable key type.
func WithEqual[K comparable, V any](equal func(a, b K) bool) Option[K, V] {
	return optFn[K, V](func(c *config[K, V]) { c.equal = equal })
}

// WithMaxLoadFactor sets the load factor that triggers growth. f must be in
// (0, 1]; validated at New time (ErrInvalidArgument).
func WithMaxLoadFactor[K comparable, V any](f float64) Option[K, V] {
	return optFn[K, V](func(c *config[K, V]) { c.maxLoad = f })
}

// WithGrowthFactor sets the multiplier applied to capacity on rehash-driven
// growth. Must be > 1; validated at New time (ErrInvalidArgument).
func WithGrowthFactor[K comparable, V any](growth int) Option[K, V] {
	return optFn[K, V](func(c *config[K, V]) { c.growth = growth })
}

// WithHashableRatio overrides alpha, the fraction of capacity assigned to
// the hashable (primary) region. Must be in [0.70, 0.82].
func WithHashableRatio[K comparable, V any](alpha float64) Option[K, V] {
	return optFn[K, V](func(c *config[K, V]) { c.alpha = alpha })
}

func defaultConfig[K comparable, V any]() config[K, V] {
	return config[K, V]{
		equal:   func(a, b K) bool { return a == b },
		maxLoad: defaultMaxLoad,
		growth:  defaultGrowth,
		alpha:   defaultAlpha,
	}
}
