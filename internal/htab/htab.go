// Package htab is a generic open-hashing table with chaining, used as the
// symbol table's scope-frame storage: a fixed top-level bucket count,
// insert-or-return-existing semantics, and lookup/remove by key.
package htab

import (
	"golang.org/x/exp/constraints"
)

const defaultCapacity = 64

// Table is a generic chained hash table. K must be hashable in the sense
// that hashFn(k) is stable and Go's == can compare two K values.
type Table[K comparable, V any] struct {
	buckets [][]entry[K, V]
	hashFn  func(K) uint64
	size    int
}

type entry[K comparable, V any] struct {
	key K
	val V
}

// New builds a table with the default bucket count.
func New[K comparable, V any](hashFn func(K) uint64) *Table[K, V] {
	return &Table[K, V]{
		buckets: make([][]entry[K, V], defaultCapacity),
		hashFn:  hashFn,
	}
}

func (t *Table[K, V]) bucketFor(k K) int {
	return int(t.hashFn(k) % uint64(len(t.buckets)))
}

// Insert adds key->val if key is absent, or returns the existing value if
// present.
func (t *Table[K, V]) Insert(k K, v V) (existing V, inserted bool) {
	b := t.bucketFor(k)
	for i := range t.buckets[b] {
		if t.buckets[b][i].key == k {
			return t.buckets[b][i].val, false
		}
	}
	t.buckets[b] = append(t.buckets[b], entry[K, V]{key: k, val: v})
	t.size++
	return v, true
}

// Lookup finds a key, innermost semantics left to the caller (symtab layers
// one Table per scope frame rather than asking this table to do scoping).
func (t *Table[K, V]) Lookup(k K) (V, bool) {
	b := t.bucketFor(k)
	for _, e := range t.buckets[b] {
		if e.key == k {
			return e.val, true
		}
	}
	var zero V
	return zero, false
}

// Remove deletes a key, reporting whether it was present.
func (t *Table[K, V]) Remove(k K) bool {
	b := t.bucketFor(k)
	for i, e := range t.buckets[b] {
		if e.key == k {
			t.buckets[b] = append(t.buckets[b][:i], t.buckets[b][i+1:]...)
			t.size--
			return true
		}
	}
	return false
}

func (t *Table[K, V]) Len() int { return t.size }

// HashString is the default key-hash for the common case of interned
// *string keys, hashed by their (stable, interned) pointer address.
func HashString(p *string) uint64 {
	return hashPointer(p)
}

// OrderedKeyHash builds a hash function for any ordered scalar key, used by
// tables keyed on something other than interned strings.
func OrderedKeyHash[K constraints.Ordered]() func(K) uint64 {
	return func(k K) uint64 {
		return hashAny(k)
	}
}
