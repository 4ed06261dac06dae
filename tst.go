package tst

import (
	"errors"
)

const (
	dirLeft direction = iota - 1
	dirMid
	dirRight
)

var (
	ErrNoMoreEntries = errors.New("There are no more entries in the tree")

	// ErrNoSegment is raised (as a panic) when a KeyIterator is asked for a
	// segment while it has none.
	ErrNoSegment = errors.New("tst: key iterator has no current segment")
	// ErrBadRotation is raised (as a panic) when rebalancing meets a
	// direction pair it cannot resolve.
	ErrBadRotation = errors.New("tst: unexpected rotation directions")
)

type (
	tree[K any, V any] struct {
		size int
		root *node[K, V]
		iter KeyIterator[K]
	}

	Entry[K any, V any] struct {
		Key   K
		Value V
	}

	Callback[K any, V any] func(key K, value V) bool

	direction int

	// node holds one segment. left and right order the sibling segments of
	// the same depth, mid continues the key. key and value are only set on
	// nodes that end a stored key.
	node[K any, V any] struct {
		segment  string
		key      K
		value    V
		hasValue bool
		// 1 + max(height(left), height(right)); mid is not counted
		height int

		left, mid, right *node[K, V]
	}

	// step records the direction taken out of node during a descent.
	step[K any, V any] struct {
		dir  direction
		node *node[K, V]
	}

	iterLevel[K any, V any] struct {
		node     *node[K, V]
		expanded bool
	}

	iterator[K any, V any] struct {
		stack []iterLevel[K, V]
		next  *node[K, V]
	}
)

func (d direction) String() string {
	return []string{"Left", "Mid", "Right"}[d+1]
}

func newNode[K any, V any](segment string) *node[K, V] {
	return &node[K, V]{segment: segment, height: 1}
}

func newTree[K any, V any](it KeyIterator[K]) *tree[K, V] {
	return &tree[K, V]{iter: it}
}
