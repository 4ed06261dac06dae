package tst

import (
	"fmt"
	"iter"

	"github.com/xlab/treeprint"
)

func (t *tree[K, V]) Size() int {
	if t == nil || t.root == nil {
		return 0
	}
	return t.size
}

func (t *tree[K, V]) Clear() {
	t.root, t.size = nil, 0
}

func (t *tree[K, V]) Fill(value V, keys ...K) {
	for _, k := range keys {
		t.Set(k, value)
	}
}

func (t *tree[K, V]) FillEntries(entries ...Entry[K, V]) {
	for _, e := range entries {
		t.Set(e.Key, e.Value)
	}
}

func (t *tree[K, V]) Set(key K, value V) (V, bool) {
	it := t.iter.Reset(key)
	if t.root == nil {
		t.root = newNode[K, V](it.Value())
	}

	var stack []step[K, V]
	curr := t.root
descend:
	for {
		var d direction
		switch c := it.Cmp(curr.segment); {
		case c > 0:
			d = dirLeft
		case c < 0:
			d = dirRight
		case it.HasNext():
			it.Next()
			d = dirMid
		default:
			break descend
		}
		next := curr.child(d)
		if *next == nil {
			replaceRef(next, newNode[K, V](it.Value()))
		}
		stack = append(stack, step[K, V]{d, curr})
		curr = *next
	}

	old, replaced := curr.value, curr.hasValue
	curr.setValue(key, value)
	if !replaced {
		t.size++
	}
	t.balanceInsert(stack)
	return old, replaced
}

// balanceInsert walks the insertion path bottom-up. An insertion only grows
// the subtree it went into, so the two directions taken below an unbalanced
// node tell which rotation restores it.
func (t *tree[K, V]) balanceInsert(stack []step[K, V]) {
	for i := len(stack) - 1; i >= 0; i-- {
		curr := stack[i].node
		curr.updateHeight()
		if bf := curr.balanceFactor(); bf >= -1 && bf <= 1 {
			continue
		}
		if i+1 >= len(stack) {
			panic(badRotation(stack[i].dir))
		}

		switch d1, d2 := stack[i].dir, stack[i+1].dir; {
		case d1 == dirRight && d2 == dirRight:
			stack[i].node = curr.rotateLeft()
		case d1 == dirLeft && d2 == dirLeft:
			stack[i].node = curr.rotateRight()
		case d1 == dirRight && d2 == dirLeft:
			curr.right = curr.right.rotateRight()
			stack[i+1].node = curr.right
			stack[i].node = curr.rotateLeft()
		case d1 == dirLeft && d2 == dirRight:
			curr.left = curr.left.rotateLeft()
			stack[i+1].node = curr.left
			stack[i].node = curr.rotateRight()
		default:
			panic(badRotation(d1, d2))
		}

		if i > 0 {
			parent := stack[i-1]
			replaceRef(parent.node.child(parent.dir), stack[i].node)
		} else {
			t.root = stack[0].node
		}
	}
}

// balance restores the AVL property along stack after a removal and returns
// the (possibly new) node at the top of the stack.
func (t *tree[K, V]) balance(stack []step[K, V]) *node[K, V] {
	for i := len(stack) - 1; i >= 0; i-- {
		curr := stack[i].node
		curr.updateHeight()

		switch bf := curr.balanceFactor(); {
		case bf > 1:
			if curr.right.balanceFactor() < 0 {
				curr.right = curr.right.rotateRight()
			}
			stack[i].node = curr.rotateLeft()
		case bf < -1:
			if curr.left.balanceFactor() > 0 {
				curr.left = curr.left.rotateLeft()
			}
			stack[i].node = curr.rotateRight()
		}

		if i > 0 {
			parent := stack[i-1]
			replaceRef(parent.node.child(parent.dir), stack[i].node)
		}
	}
	if len(stack) == 0 {
		return nil
	}
	return stack[0].node
}

// link makes n the child of the last node on stack, or the root.
func (t *tree[K, V]) link(stack []step[K, V], n *node[K, V]) {
	if len(stack) == 0 {
		t.root = n
		return
	}
	parent := stack[len(stack)-1]
	replaceRef(parent.node.child(parent.dir), n)
}

// lookup returns the node that ends key, or nil.
func (t *tree[K, V]) lookup(key K) *node[K, V] {
	it := t.iter.Reset(key)
	curr := t.root
	for curr != nil {
		switch c := it.Cmp(curr.segment); {
		case c > 0:
			curr = curr.left
		case c < 0:
			curr = curr.right
		case it.HasNext():
			it.Next()
			curr = curr.mid
		default:
			return curr
		}
	}
	return nil
}

// lookupPath is lookup that also records the path taken.
func (t *tree[K, V]) lookupPath(key K) (*node[K, V], []step[K, V]) {
	it := t.iter.Reset(key)
	var stack []step[K, V]
	curr := t.root
	for curr != nil {
		var d direction
		switch c := it.Cmp(curr.segment); {
		case c > 0:
			d = dirLeft
		case c < 0:
			d = dirRight
		case it.HasNext():
			it.Next()
			d = dirMid
		default:
			return curr, stack
		}
		stack = append(stack, step[K, V]{d, curr})
		curr = *curr.child(d)
	}
	return nil, stack
}

func (t *tree[K, V]) Get(key K) (V, bool) {
	if n := t.lookup(key); n != nil && n.hasValue {
		return n.value, true
	}
	var zero V
	return zero, false
}

func (t *tree[K, V]) Has(key K) bool {
	n := t.lookup(key)
	return n != nil && (n.hasValue || n.mid != nil)
}

func (t *tree[K, V]) Delete(key K) (V, bool) {
	var zero V
	curr, stack := t.lookupPath(key)
	if curr == nil {
		return zero, false
	}

	old, deleted := curr.value, curr.hasValue
	curr.clearValue()
	if deleted {
		t.size--
	}
	t.remove(curr, stack)
	if !deleted {
		return zero, false
	}
	return old, true
}

func (t *tree[K, V]) DeleteSuperstr(key K) int {
	curr, stack := t.lookupPath(key)
	if curr == nil {
		return 0
	}

	// left and right hold sibling keys, only mid extends key
	removed := curr.mid.count()
	curr.mid = nil
	t.size -= removed
	t.remove(curr, stack)
	return removed
}

// remove unlinks curr if it neither stores a value nor continues any key,
// then rebalances the path that led to it. A parent left without a value
// and without a mid child is unlinked as well.
func (t *tree[K, V]) remove(curr *node[K, V], stack []step[K, V]) {
	for curr.mid == nil && !curr.hasValue {
		if curr.left != nil && curr.right != nil {
			// take over the in-order successor, which has no left child
			succ, succStack := curr.right.minimum([]step[K, V]{{dirRight, curr}})
			curr.segment = succ.segment
			curr.key, curr.value, curr.hasValue = succ.key, succ.value, succ.hasValue
			curr.mid = succ.mid

			last := succStack[len(succStack)-1]
			replaceRef(last.node.child(last.dir), succ.right)
			t.link(stack, t.balance(succStack))
			break
		}

		child := curr.left
		if child == nil {
			child = curr.right
		}
		t.link(stack, child)
		if child != nil || len(stack) == 0 || stack[len(stack)-1].dir != dirMid {
			break
		}
		curr, stack = stack[len(stack)-1].node, stack[:len(stack)-1]
	}

	if root := t.balance(stack); root != nil {
		t.root = root
	}
}

func (t *tree[K, V]) FindSubstr(key K) (V, bool) {
	it := t.iter.Reset(key)
	var candidate *node[K, V]
	curr := t.root
	for curr != nil {
		switch c := it.Cmp(curr.segment); {
		case c > 0:
			curr = curr.left
		case c < 0:
			curr = curr.right
		case it.HasNext():
			it.Next()
			if curr.hasValue {
				candidate = curr
			}
			curr = curr.mid
		default:
			if curr.hasValue {
				return curr.value, true
			}
			curr = nil
		}
	}

	if candidate != nil {
		return candidate.value, true
	}
	var zero V
	return zero, false
}

func (t *tree[K, V]) FindSuperstr(key K) (iter.Seq2[K, V], bool) {
	n := t.lookup(key)
	if n == nil || n.mid == nil {
		return nil, false
	}
	return entries(n.mid), true
}

func (t *tree[K, V]) HasElementOrSubtree(key K) bool {
	n := t.lookup(key)
	if n == nil {
		return false
	}
	if n.mid == nil {
		return n.hasValue
	}
	return newIterator(n.mid).HasNext()
}

func (t *tree[K, V]) ForEach(callback Callback[K, V]) {
	if callback == nil {
		return
	}
	for k, v := range t.All() {
		if !callback(k, v) {
			return
		}
	}
}

func (t *tree[K, V]) All() iter.Seq2[K, V] {
	return entries(t.root)
}

func (t *tree[K, V]) Iterator() Iterator[K, V] {
	return newIterator(t.root)
}

// entries yields every stored entry below and including root, in order.
// Each range over the result starts a fresh traversal.
func entries[K any, V any](root *node[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := newIterator(root); it.HasNext(); {
			k, v, _ := it.Next()
			if !yield(k, v) {
				return
			}
		}
	}
}

func newIterator[K any, V any](root *node[K, V]) *iterator[K, V] {
	it := &iterator[K, V]{}
	if root != nil {
		it.stack = append(it.stack, iterLevel[K, V]{root, false})
	}
	it.advance()
	return it
}

func (it *iterator[K, V]) HasNext() bool {
	return it != nil && it.next != nil
}

func (it *iterator[K, V]) Next() (K, V, error) {
	if !it.HasNext() {
		var (
			key   K
			value V
		)
		return key, value, ErrNoMoreEntries
	}
	cur := it.next
	it.advance()
	return cur.key, cur.value, nil
}

// advance moves to the next node holding a value. A node is visited as
// left, itself, mid, right, so its parts are pushed in reverse.
func (it *iterator[K, V]) advance() {
	it.next = nil
	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		curr := top.node
		if top.expanded {
			it.next = curr
			return
		}
		if curr.right != nil {
			it.stack = append(it.stack, iterLevel[K, V]{curr.right, false})
		}
		if curr.mid != nil {
			it.stack = append(it.stack, iterLevel[K, V]{curr.mid, false})
		}
		if curr.hasValue {
			it.stack = append(it.stack, iterLevel[K, V]{curr, true})
		}
		if curr.left != nil {
			it.stack = append(it.stack, iterLevel[K, V]{curr.left, false})
		}
	}
}

// String renders the node structure, one line per segment.
func (t *tree[K, V]) String() string {
	root := treeprint.NewWithRoot(fmt.Sprintf("size=%d", t.Size()))
	printNode(root, t.root, "")
	return root.String()
}

func printNode[K any, V any](branch treeprint.Tree, n *node[K, V], edge string) {
	if n == nil {
		return
	}
	text := fmt.Sprintf("%s%q h=%d", edge, n.segment, n.height)
	if n.hasValue {
		text += fmt.Sprintf(" => %v", n.value)
	}
	if n.left == nil && n.mid == nil && n.right == nil {
		branch.AddNode(text)
		return
	}
	sub := branch.AddBranch(text)
	printNode(sub, n.left, "L ")
	printNode(sub, n.mid, "M ")
	printNode(sub, n.right, "R ")
}

func (t *tree[K, V]) isBalanced() bool {
	return isBalanced(t.root)
}

func isBalanced[K any, V any](n *node[K, V]) bool {
	if n == nil {
		return true
	}
	if bf := n.balanceFactor(); bf < -1 || bf > 1 {
		return false
	}
	return isBalanced(n.left) && isBalanced(n.mid) && isBalanced(n.right)
}

func badRotation(dirs ...direction) error {
	return fmt.Errorf("%w: %v", ErrBadRotation, dirs)
}
