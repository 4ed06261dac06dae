package tst

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(seg string) *node[string, int] {
	return newNode[string, int](seg)
}

func TestNodeHeights(t *testing.T) {
	n := leaf("b")
	assert.Equal(t, 1, n.height)
	assert.Equal(t, 0, n.heightLeft())
	assert.Equal(t, 0, n.heightRight())
	assert.Equal(t, 0, n.balanceFactor())

	n.right = leaf("c")
	n.right.right = leaf("d")
	n.right.updateHeight()
	n.updateHeight()
	assert.Equal(t, 3, n.height)
	assert.Equal(t, 2, n.balanceFactor())

	// mid does not count
	n.mid = leaf("x")
	n.mid.right = leaf("y")
	n.mid.updateHeight()
	n.updateHeight()
	assert.Equal(t, 3, n.height)
}

func TestNodeRotateLeft(t *testing.T) {
	a := leaf("a")
	a.right = leaf("b")
	a.right.left = leaf("ab")
	a.right.right = leaf("c")
	a.right.updateHeight()
	a.updateHeight()
	require.Equal(t, 3, a.height)

	root := a.rotateLeft()
	assert.Equal(t, "b", root.segment)
	assert.Equal(t, "a", root.left.segment)
	assert.Equal(t, "ab", root.left.right.segment)
	assert.Equal(t, "c", root.right.segment)
	assert.Equal(t, 2, root.left.height)
	assert.Equal(t, 3, root.height)
}

func TestNodeRotateRight(t *testing.T) {
	c := leaf("c")
	c.left = leaf("b")
	c.left.left = leaf("a")
	c.left.updateHeight()
	c.updateHeight()

	root := c.rotateRight()
	assert.Equal(t, "b", root.segment)
	assert.Equal(t, "a", root.left.segment)
	assert.Equal(t, "c", root.right.segment)
	assert.Nil(t, root.right.left)
	assert.Equal(t, 2, root.height)
	assert.Equal(t, 0, root.balanceFactor())
}

func TestNodeEmptyAndCount(t *testing.T) {
	n := leaf("a")
	assert.True(t, n.isEmpty())
	assert.Equal(t, 0, n.count())

	n.setValue("a", 1)
	assert.False(t, n.isEmpty())
	assert.Equal(t, 1, n.count())

	n.mid = leaf("b")
	n.mid.setValue("ab", 2)
	n.left = leaf("0")
	n.left.setValue("0", 3)
	assert.Equal(t, 3, n.count())

	n.clearValue()
	assert.False(t, n.isEmpty())
	assert.Equal(t, "", n.key)
	assert.Equal(t, 2, n.count())
}

func TestNodeMinimum(t *testing.T) {
	n := leaf("c")
	n.left = leaf("b")
	n.left.left = leaf("a")

	succ, stack := n.minimum(nil)
	assert.Equal(t, "a", succ.segment)
	require.Len(t, stack, 2)
	assert.Equal(t, dirLeft, stack[0].dir)
	assert.Equal(t, "c", stack[0].node.segment)
	assert.Equal(t, "b", stack[1].node.segment)
}

func TestNodeChildBadDirection(t *testing.T) {
	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrBadRotation))
	}()
	leaf("a").child(direction(7))
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "Left", dirLeft.String())
	assert.Equal(t, "Mid", dirMid.String())
	assert.Equal(t, "Right", dirRight.String())
}
