package denseset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/densehash/denseset"
)

func Test_New_rejectsZeroCapacity(t *testing.T) {
	_, err := denseset.New[int](0)
	assert.ErrorIs(t, err, denseset.ErrInvalidArgument)
}

func Test_InsertContainsErase(t *testing.T) {
	s, err := denseset.New[int](16)
	require.NoError(t, err)

	inserted, err := s.Insert(1)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = s.Insert(1)
	require.NoError(t, err)
	assert.False(t, inserted, "no duplicate keys")

	assert.True(t, s.Contains(1))
	assert.Equal(t, 1, s.Count(1))
	assert.Equal(t, 0, s.Count(2))

	assert.Equal(t, 1, s.Erase(1))
	assert.Equal(t, 0, s.Erase(1))
	assert.Equal(t, 0, s.Size())
}

func Test_Find_iteratorLifecycle(t *testing.T) {
	s, err := denseset.New[int](16)
	require.NoError(t, err)
	_, err = s.Insert(1)
	require.NoError(t, err)

	it := s.Find(1)
	assert.True(t, it.Valid())
	assert.Equal(t, 1, it.Key())

	missing := s.Find(2)
	assert.False(t, missing.Valid())
}

func Test_EraseIterator_advancesToNext(t *testing.T) {
	s, err := denseset.New[int](16)
	require.NoError(t, err)
	for _, k := range []int{1, 2, 3} {
		_, err := s.Insert(k)
		require.NoError(t, err)
	}

	it := s.Begin()
	seen := map[int]bool{}
	for it.Valid() {
		k := it.Key()
		if k == 2 {
			it = s.EraseIterator(it)
			continue
		}
		seen[k] = true
		it = it.Next()
	}

	assert.Equal(t, map[int]bool{1: true, 3: true}, seen)
	assert.Equal(t, 2, s.Size())
}

func Test_EraseRange_removesWholeSpan(t *testing.T) {
	s, err := denseset.New[int](16)
	require.NoError(t, err)
	for _, k := range []int{1, 2, 3} {
		_, err := s.Insert(k)
		require.NoError(t, err)
	}

	last := s.EraseRange(s.Begin(), s.End())
	assert.False(t, last.Valid())
	assert.Equal(t, 0, s.Size())
}

func Test_Merge_leavesSourceUnchanged(t *testing.T) {
	a, err := denseset.New[int](8)
	require.NoError(t, err)
	b, err := denseset.New[int](8)
	require.NoError(t, err)

	_, err = a.Insert(1)
	require.NoError(t, err)
	_, err = b.Insert(1)
	require.NoError(t, err)
	_, err = b.Insert(2)
	require.NoError(t, err)

	require.NoError(t, a.Merge(b))
	assert.True(t, a.Contains(1))
	assert.True(t, a.Contains(2))
	assert.Equal(t, 2, b.Size(), "Merge must not mutate its source set")
}

func Test_Clone_isIndependent(t *testing.T) {
	s, err := denseset.New[int](8)
	require.NoError(t, err)
	_, err = s.Insert(1)
	require.NoError(t, err)

	clone, err := s.Clone()
	require.NoError(t, err)
	_, err = clone.Insert(2)
	require.NoError(t, err)

	assert.False(t, s.Contains(2), "mutating a clone must not affect the original")
}

func Test_Swap_exchangesContents(t *testing.T) {
	a, err := denseset.New[int](8)
	require.NoError(t, err)
	b, err := denseset.New[int](8)
	require.NoError(t, err)

	_, err = a.Insert(1)
	require.NoError(t, err)
	_, err = b.Insert(2)
	require.NoError(t, err)

	a.Swap(b)

	assert.True(t, a.Contains(2))
	assert.True(t, b.Contains(1))
}

func Test_Keys_visitsEveryMember(t *testing.T) {
	s, err := denseset.New[int](8)
	require.NoError(t, err)
	want := map[int]bool{1: true, 2: true, 3: true}
	for k := range want {
		_, err := s.Insert(k)
		require.NoError(t, err)
	}

	got := map[int]bool{}
	for k := range s.Keys() {
		got[k] = true
	}
	assert.Equal(t, want, got)
}

func Test_ForEach_stopsOnFalse(t *testing.T) {
	s, err := denseset.New[int](8)
	require.NoError(t, err)
	for _, k := range []int{1, 2, 3} {
		_, err := s.Insert(k)
		require.NoError(t, err)
	}

	count := 0
	s.ForEach(func(int) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func Test_Rehash_growsAndPreservesMembers(t *testing.T) {
	s, err := denseset.New[int](4)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		_, err := s.Insert(i)
		require.NoError(t, err)
	}

	require.NoError(t, s.Rehash(1024))
	assert.Equal(t, 1024, s.BucketCount())
	for i := 0; i < 50; i++ {
		assert.True(t, s.Contains(i))
	}
}
