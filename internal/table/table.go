// Package table implements the dense, open-addressed associative container
// engine shared by densemap.Map and denseset.Set: a contiguous array of
// node cells split into a hashable (primary) region and a collision region,
// with collisions absorbed by an embedded singly linked chain and a FIFO
// free list threaded through reclaimed collision cells.
//
// The public API (densemap, denseset) is generated glue around this single
// engine, the same way the teacher's lru.Map[K,V] is one generic engine
// reused for every key/value instantiation (spec.md §2, §4.6).
package table

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/db47h/densehash/internal/alloc"
	"github.com/db47h/densehash/internal/cell"
	"github.com/db47h/densehash/hash"
)

// maxCapacity is the "maximum representable size" spec.md §6/§7 refers to:
// one less than math.MaxInt so that capacity+1 (the trailing sentinel
// cell) never overflows int.
const maxCapacity = math.MaxInt - 1

// Table is the generic engine. K must be comparable (a Go map key
// constraint matching "keys... default-constructible" from spec.md §4.6,
// since Go's zero value already serves as the default construction).
type Table[K comparable, V any] struct {
	cells []cell.Cell[K, V]

	capacity int // C
	hashable int // H = max(1, floor(alpha*C))

	size int

	head uint64 // free-list head, in [H, C]
	tail uint64 // free-list tail, in [H, C]

	maxLoad float64
	growth  int
	alpha   float64

	hashFn func(K) uint64
	equal  func(a, b K) bool
	alloc  alloc.Allocator[cell.Cell[K, V]]
}

// New constructs a Table with the given initial capacity. It fails with
// ErrInvalidArgument if capacity < 1, with ErrCapacityOverflow if capacity
// would reach the maximum representable size, and with ErrInvalidArgument
// if an option sets an out-of-range max load factor, growth factor, or
// hashable ratio.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Table[K, V], error) {
	cfg := defaultConfig[K, V]()
	for _, o := range opts {
		o.set(&cfg)
	}
	if cfg.hashFn == nil {
		cfg.hashFn = hash.Generic[K]()
	}
	if cfg.alloc == nil {
		cfg.alloc = alloc.NewSlice[cell.Cell[K, V]](0)
	}
	if err := validateTuning(cfg.maxLoad, cfg.growth, cfg.alpha); err != nil {
		return nil, err
	}

	t := &Table[K, V]{
		maxLoad: cfg.maxLoad,
		growth:  cfg.growth,
		alpha:   cfg.alpha,
		hashFn:  cfg.hashFn,
		equal:   cfg.equal,
		alloc:   cfg.alloc,
	}
	if err := t.allocate(capacity); err != nil {
		return nil, err
	}
	return t, nil
}

func validateTuning(maxLoad float64, growth int, alpha float64) error {
	if maxLoad <= 0 || maxLoad > 1 {
		return fmt.Errorf("%w: max load factor %v must be in (0, 1]", ErrInvalidArgument, maxLoad)
	}
	if growth <= 1 {
		return fmt.Errorf("%w: growth factor %d must be > 1", ErrInvalidArgument, growth)
	}
	if alpha < alphaMin || alpha > alphaMax {
		return fmt.Errorf("%w: hashable ratio %v must be in [%v, %v]", ErrInvalidArgument, alpha, alphaMin, alphaMax)
	}
	return nil
}

// allocate builds t.cells and resets all size/free-list state for the
// given capacity. It does not touch hashFn/equal/maxLoad/growth/alpha.
func (t *Table[K, V]) allocate(capacity int) error {
	if capacity < minInitialCapacity {
		return fmt.Errorf("%w: capacity %d must be >= 1", ErrInvalidArgument, capacity)
	}
	if capacity >= maxCapacity {
		return fmt.Errorf("%w: capacity %d reaches the maximum representable size", ErrCapacityOverflow, capacity)
	}
	cells, err := t.alloc.Alloc(capacity + 1)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAllocatorFailure, err)
	}
	hashable := int(math.Floor(t.alpha * float64(capacity)))
	if hashable < 1 {
		hashable = 1
	}
	if hashable > capacity {
		hashable = capacity
	}
	t.cells = cells
	t.capacity = capacity
	t.hashable = hashable
	t.size = 0
	t.head = uint64(hashable)
	t.tail = uint64(hashable)
	return nil
}

// Size returns the number of occupied cells.
func (t *Table[K, V]) Size() int { return t.size }

// Empty reports whether the table has no occupied cells.
func (t *Table[K, V]) Empty() bool { return t.size == 0 }

// BucketCount returns the total capacity C.
func (t *Table[K, V]) BucketCount() int { return t.capacity }

// MaxBucketCount returns the allocator-defined upper bound on capacity.
func (t *Table[K, V]) MaxBucketCount() int {
	m := t.alloc.MaxSize()
	if m <= 0 || m > maxCapacity {
		return maxCapacity
	}
	return m
}

// HashableCount returns H, the number of primary slots.
func (t *Table[K, V]) HashableCount() int { return t.hashable }

// LoadFactor returns size/capacity.
func (t *Table[K, V]) LoadFactor() float64 {
	if t.capacity == 0 {
		return 0
	}
	return float64(t.size) / float64(t.capacity)
}

// MaxLoadFactor returns the configured max load factor.
func (t *Table[K, V]) MaxLoadFactor() float64 { return t.maxLoad }

// SetMaxLoadFactor changes the max load factor. f must be in (0, 1].
func (t *Table[K, V]) SetMaxLoadFactor(f float64) error {
	if f <= 0 || f > 1 {
		return fmt.Errorf("%w: max load factor %v must be in (0, 1]", ErrInvalidArgument, f)
	}
	t.maxLoad = f
	return nil
}

// HashFunc returns the configured hash function observer.
func (t *Table[K, V]) HashFunc() func(K) uint64 { return t.hashFn }

// KeyEq returns the configured key-equality predicate observer.
func (t *Table[K, V]) KeyEq() func(a, b K) bool { return t.equal }

// Allocator returns the configured allocator observer.
func (t *Table[K, V]) Allocator() alloc.Allocator[cell.Cell[K, V]] { return t.alloc }

// Clear marks every cell empty and resets the free list. Capacity is
// unchanged.
func (t *Table[K, V]) Clear() {
	for i := range t.cells {
		t.cells[i].Reset()
	}
	t.size = 0
	t.head = uint64(t.hashable)
	t.tail = uint64(t.hashable)
}

// primarySlot implements spec.md §4.1: keep the low ceil(log2(H)) bits of h,
// then fold indices >= H back into [0, H). bits.Len64(H-1) gives
// ceil(log2(H)) for H >= 1 without reading undefined leading-zero state
// when H == 1 (bits.Len64(0) == 0).
func primarySlot(h uint64, hashable int) int {
	shift := bits.Len64(uint64(hashable - 1))
	mask := uint64(1)<<shift - 1
	i := h & mask
	if i >= uint64(hashable) {
		i -= uint64(hashable)
	}
	return int(i)
}

// noPrev marks "no predecessor seen yet" (the ⟂ sentinel in spec.md §4.2).
// locate returns it as prev only when the key sits in its own primary slot,
// where eraseAt never reads prev; a not-found return always carries a real
// index. It keeps the zero value of an uninitialized prev from being
// mistaken for index 0.
const noPrev = -1

// locate implements spec.md §4.2 (Find). It returns the key's hash, the
// index of the occupied cell holding key (or capacity, meaning "not
// present"), and the chain predecessor needed by erase to rewire links
// without a back-pointer.
func (t *Table[K, V]) locate(key K) (h uint64, found int, prev int) {
	h = t.hashFn(key)
	fp := h >> 1
	p := primarySlot(h, t.hashable)
	prev = noPrev
	cur := p
	for {
		c := &t.cells[cur]
		if c.Occupied() && c.Fingerprint() == fp && t.equal(c.Key, key) {
			return h, cur, prev
		}
		prev = cur
		next := c.Next
		if next == 0 {
			return h, t.capacity, prev
		}
		cur = int(next)
	}
}

// Find implements the find(key) observer (spec.md §4.2, §6). The returned
// index equals BucketCount() when the key is absent.
func (t *Table[K, V]) Find(key K) int {
	_, found, _ := t.locate(key)
	return found
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool { return t.Find(key) != t.capacity }

// At returns the value at key, or ErrNotFound if absent (spec.md §6, §7).
func (t *Table[K, V]) At(key K) (V, error) {
	idx := t.Find(key)
	if idx == t.capacity {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrNotFound, key)
	}
	return t.cells[idx].Value, nil
}

// CellAt returns a pointer to the cell at idx. Used by the public
// iterator and by operator[]-style default-insertion.
func (t *Table[K, V]) CellAt(idx int) *cell.Cell[K, V] { return &t.cells[idx] }

// Insert implements spec.md §4.3. It returns the index of the (possibly
// pre-existing) entry and whether a new entry was created.
func (t *Table[K, V]) Insert(key K, value V) (int, bool, error) {
	for {
		h, found, prev := t.locate(key)
		if found != t.capacity {
			return found, false, nil
		}
		if t.size+1 > int(t.maxLoad*float64(t.capacity)) {
			if err := t.growAndRetry(); err != nil {
				return 0, false, err
			}
			continue
		}
		fp := h >> 1
		p := primarySlot(h, t.hashable)
		var insertIdx int
		if !t.cells[p].Occupied() {
			insertIdx = p
		} else {
			idx, ok := t.acquireCollisionCell()
			if !ok {
				if err := t.growAndRetry(); err != nil {
					return 0, false, err
				}
				continue
			}
			insertIdx = idx
			t.cells[prev].Next = uint64(insertIdx)
		}
		t.cells[insertIdx].Occupy(fp, key, value)
		t.size++
		return insertIdx, true, nil
	}
}

// acquireCollisionCell implements the free-list allocator of spec.md §4.4.
func (t *Table[K, V]) acquireCollisionCell() (int, bool) {
	if t.head == t.tail {
		if int(t.head) == t.capacity {
			return 0, false
		}
		i := t.head
		t.head++
		t.tail++
		return int(i), true
	}
	i := t.cells[t.head].Next
	if i == t.tail {
		t.tail = t.head
	} else {
		t.cells[t.head].Next = t.cells[i].Next
	}
	return int(i), true
}

// releaseCollisionCell returns index e (already vacated) to the free list.
func (t *Table[K, V]) releaseCollisionCell(e uint64) {
	t.cells[t.tail].Next = e
	t.tail = e
}

// Erase implements spec.md §4.5. It returns true if key was present and
// removed.
func (t *Table[K, V]) Erase(key K) bool {
	_, found, prev := t.locate(key)
	if found == t.capacity {
		return false
	}
	return t.eraseAt(found, prev)
}

// eraseAt performs the erase algorithm once the target index and its
// chain predecessor are known, shared by Erase(key) and iterator-based
// erase.
func (t *Table[K, V]) eraseAt(i, prev int) bool {
	n := t.cells[i].Next
	var freed uint64
	if i < t.hashable {
		if n == 0 {
			t.cells[i].Vacate()
			t.size--
			return true
		}
		// Swap contents so the successor becomes head of the chain,
		// preserving invariant I2; the vacated former-successor cell is
		// what gets freed.
		t.cells[i], t.cells[n] = t.cells[n], t.cells[i]
		freed = n
	} else {
		t.cells[prev].Next = n
		freed = uint64(i)
	}
	t.cells[freed].Vacate()
	t.releaseCollisionCell(freed)
	t.size--
	return true
}

// growAndRetry rehashes into a larger table sized by the growth factor.
// Callers restart their operation from the top after this returns nil.
func (t *Table[K, V]) growAndRetry() error {
	if t.capacity > maxCapacity/t.growth {
		return fmt.Errorf("%w: capacity %d cannot grow further", ErrCapacityOverflow, t.capacity)
	}
	return t.Rehash(t.growth * t.capacity)
}

// Rehash implements spec.md §4.8: builds a fresh table sized to
// max(n, ceil(size/maxLoad)), re-inserts every occupied entry, then swaps
// state into t. On allocator failure the original table is left intact.
func (t *Table[K, V]) Rehash(n int) error {
	target := n
	if need := int(math.Ceil(float64(t.size) / t.maxLoad)); need > target {
		target = need
	}
	if target < minInitialCapacity {
		target = minInitialCapacity
	}
	replacement := &Table[K, V]{
		maxLoad: t.maxLoad,
		growth:  t.growth,
		alpha:   t.alpha,
		hashFn:  t.hashFn,
		equal:   t.equal,
		alloc:   t.alloc,
	}
	if err := replacement.allocate(target); err != nil {
		return err
	}
	for i := 0; i < t.capacity; i++ {
		c := &t.cells[i]
		if c.Occupied() {
			if _, _, err := replacement.Insert(c.Key, c.Value); err != nil {
				return err
			}
		}
	}
	*t = *replacement
	return nil
}

// Reserve is a hint: it rehashes only if n exceeds the current capacity's
// effective headroom (spec.md §4.8).
func (t *Table[K, V]) Reserve(n int) error {
	if float64(n) <= t.maxLoad*float64(t.capacity) {
		return nil
	}
	return t.Rehash(n)
}

// Merge inserts every entry of other that is absent from t. other is left
// unchanged.
func (t *Table[K, V]) Merge(other *Table[K, V]) error {
	for i := 0; i < other.capacity; i++ {
		c := &other.cells[i]
		if c.Occupied() {
			if _, _, err := t.Insert(c.Key, c.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Begin returns the index of the first occupied cell, or End() if empty.
func (t *Table[K, V]) Begin() int {
	for i := 0; i < t.capacity; i++ {
		if t.cells[i].Occupied() {
			return i
		}
	}
	return t.capacity
}

// End returns the sentinel "past the end" index.
func (t *Table[K, V]) End() int { return t.capacity }

// Advance returns the next occupied index strictly after i, or End().
func (t *Table[K, V]) Advance(i int) int {
	for i++; i < t.capacity; i++ {
		if t.cells[i].Occupied() {
			return i
		}
	}
	return t.capacity
}

// EraseIndex removes the entry at cell index i (obtained from an
// iterator), resolving the chain predecessor by walking from the entry's
// own primary slot, matching the by-iterator erase carve-out in spec.md
// §4.5.
func (t *Table[K, V]) EraseIndex(i int) bool {
	c := &t.cells[i]
	if !c.Occupied() {
		return false
	}
	if i < t.hashable {
		return t.eraseAt(i, noPrev)
	}
	// The fingerprint only preserves the hash's upper 63 bits, so the
	// primary slot cannot be reconstructed from it; re-hash the cell's own
	// key instead.
	h := t.hashFn(c.Key)
	p := primarySlot(h, t.hashable)
	prev := p
	cur := p
	for cur != i {
		nxt := t.cells[cur].Next
		prev = cur
		cur = int(nxt)
	}
	return t.eraseAt(i, prev)
}
