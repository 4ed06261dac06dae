package tst

import (
	"iter"
	"net/url"
)

// Tree is a self-balancing ternary search tree keyed by segmented keys.
//
// A Tree is not safe for concurrent use: every operation resets the
// KeyIterator the tree was built with. The tree must not be modified from a
// ForEach callback or while ranging over a sequence returned by All or
// FindSuperstr.
type Tree[K any, V any] interface {
	// Set stores value under key and returns the value it replaced, if any.
	Set(key K, value V) (V, bool)
	Get(key K) (V, bool)
	// Has reports whether key holds a value or is a segment prefix of a
	// stored key.
	Has(key K) bool
	// Delete removes the value stored under key and returns it.
	Delete(key K) (V, bool)
	// DeleteSuperstr removes every entry whose key strictly extends key and
	// returns how many were removed. The value of key itself is kept.
	DeleteSuperstr(key K) int
	// FindSubstr returns the value of the longest stored key that is a
	// segment prefix of key.
	FindSubstr(key K) (V, bool)
	// FindSuperstr returns the entries whose key strictly extends key.
	FindSuperstr(key K) (iter.Seq2[K, V], bool)
	HasElementOrSubtree(key K) bool

	Fill(value V, keys ...K)
	FillEntries(entries ...Entry[K, V])
	Clear()
	Size() int

	ForEach(callback Callback[K, V])
	All() iter.Seq2[K, V]
	Iterator() Iterator[K, V]
	String() string
}

// Iterator walks the entries of a tree in order.
type Iterator[K any, V any] interface {
	HasNext() bool
	Next() (K, V, error)
}

// KeyIterator splits a key into segments. Cmp returns the ordering of seg
// relative to the current segment: negative if seg sorts before it,
// positive if after, zero if equal.
type KeyIterator[K any] interface {
	Reset(key K) KeyIterator[K]
	Next() KeyIterator[K]
	HasNext() bool
	Cmp(seg string) int
	Value() string
}

// New returns an empty tree that segments keys with it.
func New[K any, V any](it KeyIterator[K]) Tree[K, V] {
	return newTree[K, V](it)
}

// NewStringTree returns a tree keyed by strings, one segment per character.
func NewStringTree[V any](opts ...StringOption) Tree[string, V] {
	return New[string, V](NewStringIterator(opts...))
}

// NewPathTree returns a tree keyed by filesystem-style paths.
func NewPathTree[V any](opts ...PathOption) Tree[string, V] {
	return New[string, V](NewPathIterator(opts...))
}

// NewConfigKeyTree returns a tree keyed by dotted configuration keys such as
// "editor.font.size".
func NewConfigKeyTree[V any](opts ...ConfigKeyOption) Tree[string, V] {
	return New[string, V](NewConfigKeyIterator(opts...))
}

// NewURITree returns a tree keyed by URIs.
func NewURITree[V any](opts ...URIOption) Tree[*url.URL, V] {
	return New[*url.URL, V](NewURIIterator(opts...))
}

var (
	_ Tree[string, any]     = (*tree[string, any])(nil)
	_ KeyIterator[string]   = (*StringIterator)(nil)
	_ KeyIterator[string]   = (*PathIterator)(nil)
	_ KeyIterator[string]   = (*ConfigKeyIterator)(nil)
	_ KeyIterator[*url.URL] = (*URIIterator)(nil)
)
