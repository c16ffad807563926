package densemap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/densehash/densemap"
)

func Test_New_rejectsZeroCapacity(t *testing.T) {
	_, err := densemap.New[string, int](0)
	assert.ErrorIs(t, err, densemap.ErrInvalidArgument)
}

func Test_InsertGetErase(t *testing.T) {
	m, err := densemap.New[string, int](16)
	require.NoError(t, err)

	inserted, err := m.Insert("a", 1)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = m.Insert("a", 2)
	require.NoError(t, err)
	assert.False(t, inserted, "Insert must not overwrite an existing key")

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, 1, m.Erase("a"))
	assert.Equal(t, 0, m.Erase("a"))
	assert.Equal(t, 0, m.Size())
}

func Test_Set_overwritesExistingValue(t *testing.T) {
	m, err := densemap.New[string, int](16)
	require.NoError(t, err)

	require.NoError(t, m.Set("a", 1))
	require.NoError(t, m.Set("a", 2))

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, m.Size())
}

func Test_GetOrInsert(t *testing.T) {
	m, err := densemap.New[string, int](16)
	require.NoError(t, err)

	v, err := m.GetOrInsert("a", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	v, err = m.GetOrInsert("a", 999)
	require.NoError(t, err)
	assert.Equal(t, 5, v, "GetOrInsert must not replace an existing value")
}

func Test_At_errNotFound(t *testing.T) {
	m, err := densemap.New[string, int](16)
	require.NoError(t, err)

	_, err = m.At("missing")
	assert.True(t, errors.Is(err, densemap.ErrNotFound))
}

func Test_Find_iteratorLifecycle(t *testing.T) {
	m, err := densemap.New[string, int](16)
	require.NoError(t, err)
	require.NoError(t, m.Set("a", 1))

	it := m.Find("a")
	assert.True(t, it.Valid())
	assert.Equal(t, "a", it.Key())
	assert.Equal(t, 1, it.Value())

	missing := m.Find("missing")
	assert.False(t, missing.Valid())
}

func Test_EraseIterator_advancesToNext(t *testing.T) {
	m, err := densemap.New[string, int](16)
	require.NoError(t, err)
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, m.Set(k, len(k)))
	}

	it := m.Begin()
	seen := map[string]bool{}
	for it.Valid() {
		k := it.Key()
		if k == "b" {
			it = m.EraseIterator(it)
			continue
		}
		seen[k] = true
		it = it.Next()
	}

	assert.Equal(t, map[string]bool{"a": true, "c": true}, seen)
	assert.Equal(t, 2, m.Size())
}

func Test_EraseRange_removesWholeSpan(t *testing.T) {
	m, err := densemap.New[string, int](16)
	require.NoError(t, err)
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, m.Set(k, len(k)))
	}

	last := m.EraseRange(m.Begin(), m.End())
	assert.False(t, last.Valid())
	assert.Equal(t, 0, m.Size())
	assert.False(t, m.Contains("a"))
	assert.False(t, m.Contains("b"))
	assert.False(t, m.Contains("c"))
}

func Test_Merge_leavesSourceUnchanged(t *testing.T) {
	a, err := densemap.New[string, int](8)
	require.NoError(t, err)
	b, err := densemap.New[string, int](8)
	require.NoError(t, err)

	require.NoError(t, a.Set("x", 1))
	require.NoError(t, b.Set("x", 999))
	require.NoError(t, b.Set("y", 2))

	require.NoError(t, a.Merge(b))

	v, _ := a.Get("x")
	assert.Equal(t, 1, v)
	v, _ = a.Get("y")
	assert.Equal(t, 2, v)

	v, _ = b.Get("x")
	assert.Equal(t, 999, v, "Merge must not mutate its source map")
}

func Test_Clone_isIndependent(t *testing.T) {
	m, err := densemap.New[string, int](8)
	require.NoError(t, err)
	require.NoError(t, m.Set("a", 1))

	clone, err := m.Clone()
	require.NoError(t, err)

	require.NoError(t, clone.Set("a", 2))
	v, _ := m.Get("a")
	assert.Equal(t, 1, v, "mutating a clone must not affect the original")
}

func Test_Swap_exchangesContents(t *testing.T) {
	a, err := densemap.New[string, int](8)
	require.NoError(t, err)
	b, err := densemap.New[string, int](8)
	require.NoError(t, err)

	require.NoError(t, a.Set("a", 1))
	require.NoError(t, b.Set("b", 2))

	a.Swap(b)

	_, ok := a.Get("b")
	assert.True(t, ok)
	_, ok = b.Get("a")
	assert.True(t, ok)
}

func Test_ForEach_stopsOnFalse(t *testing.T) {
	m, err := densemap.New[string, int](8)
	require.NoError(t, err)
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, m.Set(k, 1))
	}

	count := 0
	m.ForEach(func(string, int) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func Test_Keys_Values_All_rangeOverFunc(t *testing.T) {
	m, err := densemap.New[string, int](8)
	require.NoError(t, err)
	want := map[string]int{"a": 1, "b": 2, "c": 3}
	for k, v := range want {
		require.NoError(t, m.Set(k, v))
	}

	gotKeys := map[string]bool{}
	for k := range m.Keys() {
		gotKeys[k] = true
	}
	assert.Len(t, gotKeys, 3)

	gotValues := map[int]bool{}
	for v := range m.Values() {
		gotValues[v] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, gotValues)

	gotAll := map[string]int{}
	for k, v := range m.All() {
		gotAll[k] = v
	}
	assert.Equal(t, want, gotAll)
}

func Test_Rehash_growsAndPreservesEntries(t *testing.T) {
	m, err := densemap.New[int, int](4)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		_, err := m.Insert(i, i)
		require.NoError(t, err)
	}

	require.NoError(t, m.Rehash(1024))
	assert.Equal(t, 1024, m.BucketCount())
	for i := 0; i < 50; i++ {
		v, ok := m.Get(i)
		assert.True(t, ok)
		assert.Equal(t, i, v)
	}
}
