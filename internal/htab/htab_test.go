package htab_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ccfront/internal/htab"
)

func TestInsertLookupRemove(t *testing.T) {
	tab := htab.New[string, int](htab.OrderedKeyHash[string]())

	_, inserted := tab.Insert("a", 1)
	require.True(t, inserted)
	require.Equal(t, 1, tab.Len())

	v, ok := tab.Lookup("a")
	require.True(t, ok)
	require.Equal(t, 1, v)

	_, ok = tab.Lookup("missing")
	require.False(t, ok)

	require.True(t, tab.Remove("a"))
	require.False(t, tab.Remove("a"))
	_, ok = tab.Lookup("a")
	require.False(t, ok)
}

func TestInsertExistingReturnsOldValue(t *testing.T) {
	tab := htab.New[string, int](htab.OrderedKeyHash[string]())
	tab.Insert("a", 1)

	existing, inserted := tab.Insert("a", 2)
	require.False(t, inserted)
	require.Equal(t, 1, existing, "insert must not overwrite the existing value")

	v, _ := tab.Lookup("a")
	require.Equal(t, 1, v, "second insert must not overwrite")
}

func TestManyKeysSurviveHashCollisionBuckets(t *testing.T) {
	tab := htab.New[int, string](htab.OrderedKeyHash[int]())
	for i := 0; i < 500; i++ {
		tab.Insert(i, "v")
	}
	require.Equal(t, 500, tab.Len())
	for i := 0; i < 500; i++ {
		_, ok := tab.Lookup(i)
		require.True(t, ok, "key %d must still be found", i)
	}
}

func TestHashStringUsesPointerIdentity(t *testing.T) {
	a := "same"
	b := "same"
	require.NotEqual(t, htab.HashString(&a), htab.HashString(&b), "distinct pointers hash distinctly even with equal contents")
	require.Equal(t, htab.HashString(&a), htab.HashString(&a))
}
