package tst

func (n *node[K, V]) heightLeft() int {
	if n.left == nil {
		return 0
	}
	return n.left.height
}

func (n *node[K, V]) heightRight() int {
	if n.right == nil {
		return 0
	}
	return n.right.height
}

func (n *node[K, V]) updateHeight() {
	n.height = 1 + max(n.heightLeft(), n.heightRight())
}

func (n *node[K, V]) balanceFactor() int {
	return n.heightRight() - n.heightLeft()
}

// isEmpty reports whether n neither stores a value nor routes to any child.
func (n *node[K, V]) isEmpty() bool {
	return n.left == nil && n.mid == nil && n.right == nil && !n.hasValue
}

// rotateLeft promotes the right child and returns it as the new subtree root.
func (n *node[K, V]) rotateLeft() *node[K, V] {
	tmp := n.right
	n.right = tmp.left
	tmp.left = n
	n.updateHeight()
	tmp.updateHeight()
	return tmp
}

// rotateRight promotes the left child and returns it as the new subtree root.
func (n *node[K, V]) rotateRight() *node[K, V] {
	tmp := n.left
	n.left = tmp.right
	tmp.right = n
	n.updateHeight()
	tmp.updateHeight()
	return tmp
}

// minimum follows left links down from n, pushing every step onto stack.
func (n *node[K, V]) minimum(stack []step[K, V]) (*node[K, V], []step[K, V]) {
	for n.left != nil {
		stack = append(stack, step[K, V]{dirLeft, n})
		n = n.left
	}
	return n, stack
}

func (n *node[K, V]) setValue(key K, value V) {
	n.key, n.value, n.hasValue = key, value, true
}

func (n *node[K, V]) clearValue() {
	var (
		key   K
		value V
	)
	n.key, n.value, n.hasValue = key, value, false
}

// child returns the link of n in direction d.
func (n *node[K, V]) child(d direction) **node[K, V] {
	switch d {
	case dirLeft:
		return &n.left
	case dirMid:
		return &n.mid
	case dirRight:
		return &n.right
	}
	panic(badRotation(d))
}

// count returns the number of values stored in n and everything below it.
func (n *node[K, V]) count() int {
	if n == nil {
		return 0
	}
	c := n.left.count() + n.mid.count() + n.right.count()
	if n.hasValue {
		c++
	}
	return c
}

// modify parent ptr, ** means ref to pointer
func replaceRef[K any, V any](ref **node[K, V], n *node[K, V]) {
	*ref = n
}
