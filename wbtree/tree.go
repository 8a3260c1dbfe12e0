package wbtree

import (
	"fmt"
	"strings"
)

const (
	connectorLeft     = " ╭── "
	connectorRight    = " ╰── "
	connectorVertical = " │   "
	connectorSpace    = "     "
)

// Traits is supplied by the caller to order items of type T.
type Traits[T any] interface {
	Less(a, b *T) bool
}

// Options configures behavior orthogonal to the balance parameters.
type Options struct {
	AllowMultiple    bool
	ConstantTimeSize bool
}

// Observer is notified of structural changes to a Tree.
type Observer[T any] interface {
	BeforeRotate(top, pivot *T)
	AfterRotate(oldTop, newTop *T)
	BeforeInsert(n *T)
	AfterInsert(n *T)
	BeforeRemove(n *T)
	AfterRemove(n *T)
}

// NopObserver is a zero-cost [Observer] that does nothing.
type NopObserver[T any] struct{}

func (NopObserver[T]) BeforeRotate(_, _ *T) {}
func (NopObserver[T]) AfterRotate(_, _ *T)  {}
func (NopObserver[T]) BeforeInsert(_ *T)    {}
func (NopObserver[T]) AfterInsert(_ *T)     {}
func (NopObserver[T]) BeforeRemove(_ *T)    {}
func (NopObserver[T]) AfterRemove(_ *T)     {}

// Tree is an intrusive Weight-Balanced Tree over items of type *T.
type Tree[T any] struct {
	root     *Node
	nilNode  Node
	traits   Traits[T]
	opts     Options
	balance  WBTOptions
	observer Observer[T]
	size     int
}

// New creates an empty Weight-Balanced Tree ordered by traits and rebalanced
// according to balance.
func New[T any](traits Traits[T], opts Options, balance WBTOptions) *Tree[T] {
	t := &Tree[T]{
		traits:   traits,
		opts:     opts,
		balance:  balance,
		observer: NopObserver[T]{},
	}
	t.nilNode.parent = &t.nilNode
	t.root = &t.nilNode
	return t
}

// SetObserver installs o as the tree's structural-change observer. A nil o
// resets to a no-op observer.
func (t *Tree[T]) SetObserver(o Observer[T]) {
	if o == nil {
		o = NopObserver[T]{}
	}
	t.observer = o
}

func (t *Tree[T]) isNilNode(n *Node) bool { return n == &t.nilNode }

func (t *Tree[T]) toItem(n *Node) *T {
	if n == nil || t.isNilNode(n) {
		return nil
	}
	return itemOf[T](n)
}

func (t *Tree[T]) sizeOf(n *Node) int {
	if t.isNilNode(n) {
		return 0
	}
	return n.size
}

func (t *Tree[T]) recomputeSize(n *Node) {
	if !t.isNilNode(n) {
		n.size = t.sizeOf(n.left) + t.sizeOf(n.right) + 1
	}
}

// Size returns the number of items currently in the tree.
func (t *Tree[T]) Size() int {
	if t.opts.ConstantTimeSize {
		return t.size
	}
	if t.root == &t.nilNode {
		return 0
	}
	return t.root.size
}

// Empty reports whether the tree holds no items.
func (t *Tree[T]) Empty() bool { return t.root == &t.nilNode }

// Clear empties the tree.
func (t *Tree[T]) Clear() {
	t.root = &t.nilNode
	t.size = 0
}

func (t *Tree[T]) rotateLeft(node *Node) {
	t.observer.BeforeRotate(t.toItem(node), t.toItem(node.right))

	pivot := node.right
	node.right = pivot.left
	if pivot.left != &t.nilNode {
		pivot.left.parent = node
	}
	pivot.parent = node.parent
	if node.parent == &t.nilNode {
		t.root = pivot
	} else if node.parent.left == node {
		node.parent.left = pivot
	} else {
		node.parent.right = pivot
	}
	pivot.left = node
	node.parent = pivot

	t.recomputeSize(node)
	t.recomputeSize(pivot)

	t.observer.AfterRotate(t.toItem(node), t.toItem(pivot))
}

func (t *Tree[T]) rotateRight(node *Node) {
	t.observer.BeforeRotate(t.toItem(node), t.toItem(node.left))

	pivot := node.left
	node.left = pivot.right
	if pivot.right != &t.nilNode {
		pivot.right.parent = node
	}
	pivot.parent = node.parent
	if node.parent == &t.nilNode {
		t.root = pivot
	} else if node.parent.left == node {
		node.parent.left = pivot
	} else {
		node.parent.right = pivot
	}
	pivot.right = node
	node.parent = pivot

	t.recomputeSize(node)
	t.recomputeSize(pivot)

	t.observer.AfterRotate(t.toItem(node), t.toItem(pivot))
}

// isSingleRotation decides, given the displaced grandchildren's sizes,
// whether restoring balance needs a single or a double rotation, per the
// γ = GammaNum/GammaDen predicate.
func (t *Tree[T]) isSingleRotation(nearSize, farSize int) bool {
	lhs := (nearSize + 1) * t.balance.GammaDen
	rhs := (farSize + 1) * t.balance.GammaNum
	if t.balance.Branchless {
		diff := lhs - rhs
		// arithmetic-select: true iff diff < 0, read off the sign bit
		// instead of branching on a comparison.
		return (diff>>63)&1 == 1
	}
	return lhs < rhs
}

// balanced reports whether node's two children satisfy the Δ =
// DeltaNum/DeltaDen weight-balance condition against each other.
func (t *Tree[T]) balanced(node *Node) bool {
	ls, rs := t.sizeOf(node.left), t.sizeOf(node.right)
	return (ls+1)*t.balance.DeltaNum >= (rs+1)*t.balance.DeltaDen &&
		(rs+1)*t.balance.DeltaNum >= (ls+1)*t.balance.DeltaDen
}

// rebalance restores the weight-balance condition at node, which is known
// to hold everywhere below node's immediate children.
func (t *Tree[T]) rebalance(node *Node) {
	if t.isNilNode(node) || t.balanced(node) {
		return
	}
	ls, rs := t.sizeOf(node.left), t.sizeOf(node.right)
	if rs > ls {
		right := node.right
		if t.isSingleRotation(t.sizeOf(right.left), t.sizeOf(right.right)) {
			t.rotateLeft(node)
		} else {
			t.rotateRight(right)
			t.rotateLeft(node)
		}
	} else {
		left := node.left
		if t.isSingleRotation(t.sizeOf(left.right), t.sizeOf(left.left)) {
			t.rotateRight(node)
		} else {
			t.rotateLeft(left)
			t.rotateRight(node)
		}
	}
}

// Insert links item into the tree.
//
// Precondition: item is not currently a member of this or any other Tree
// of this variant.
func (t *Tree[T]) Insert(item *T) (*T, bool) {
	n := nodeOf(item)
	n.left, n.right = &t.nilNode, &t.nilNode
	n.size = 1

	if t.root == &t.nilNode {
		t.observer.BeforeInsert(item)
		n.parent = &t.nilNode
		t.root = n
		t.size++
		t.observer.AfterInsert(item)
		return item, true
	}

	var path []*Node
	cur := t.root
	for {
		path = append(path, cur)
		existing := itemOf[T](cur)
		var goLeft bool
		switch {
		case t.traits.Less(item, existing):
			goLeft = true
		case t.traits.Less(existing, item):
			goLeft = false
		default:
			if !t.opts.AllowMultiple {
				return existing, false
			}
			goLeft = false
		}

		var next *Node
		if goLeft {
			next = cur.left
		} else {
			next = cur.right
		}
		if next == &t.nilNode {
			t.observer.BeforeInsert(item)
			n.parent = cur
			if goLeft {
				cur.left = n
			} else {
				cur.right = n
			}
			break
		}
		if t.balance.Policy == SinglePass {
			// Check (and fix) balance at cur using sizes as they stand
			// before descending further, rather than waiting for the
			// ascending pass used by TwoPass.
			t.rebalance(cur)
		}
		cur = next
	}

	for i := len(path) - 1; i >= 0; i-- {
		t.recomputeSize(path[i])
		if t.balance.Policy == TwoPass {
			t.rebalance(path[i])
		}
	}
	t.size++
	t.observer.AfterInsert(item)
	return item, true
}

func (t *Tree[T]) transplant(oldNode, newNode *Node) {
	if oldNode.parent == &t.nilNode {
		t.root = newNode
	} else if oldNode == oldNode.parent.left {
		oldNode.parent.left = newNode
	} else {
		oldNode.parent.right = newNode
	}
	if newNode != &t.nilNode {
		newNode.parent = oldNode.parent
	}
}

func (t *Tree[T]) minNode(n *Node) *Node {
	for n.left != &t.nilNode {
		n = n.left
	}
	return n
}

func (t *Tree[T]) maxNode(n *Node) *Node {
	for n.right != &t.nilNode {
		n = n.right
	}
	return n
}

// Remove unlinks item from the tree.
//
// Precondition: item is currently a member of this tree.
func (t *Tree[T]) Remove(item *T) {
	z := nodeOf(item)
	t.observer.BeforeRemove(item)

	var fixupStart *Node

	switch {
	case z.left == &t.nilNode:
		fixupStart = z.parent
		t.transplant(z, z.right)
	case z.right == &t.nilNode:
		fixupStart = z.parent
		t.transplant(z, z.left)
	default:
		y := t.minNode(z.right)
		fixupStart = y.parent
		if y.parent == z {
			fixupStart = y
		}
		if y.parent != z {
			t.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		t.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		t.recomputeSize(y)
	}

	for n := fixupStart; n != &t.nilNode; n = n.parent {
		t.recomputeSize(n)
		t.rebalance(n)
	}

	z.parent, z.left, z.right = nil, nil, nil
	t.size--
	t.observer.AfterRemove(item)
}

// Find returns the first item comparing equal to key, if any.
func (t *Tree[T]) Find(key *T) (*T, bool) {
	cur := t.root
	for cur != &t.nilNode {
		existing := itemOf[T](cur)
		switch {
		case t.traits.Less(key, existing):
			cur = cur.left
		case t.traits.Less(existing, key):
			cur = cur.right
		default:
			return existing, true
		}
	}
	return nil, false
}

// LowerBound returns the first item not less than key, or nil if none.
func (t *Tree[T]) LowerBound(key *T) *T {
	cur := t.root
	var result *Node
	for cur != &t.nilNode {
		existing := itemOf[T](cur)
		if !t.traits.Less(existing, key) {
			result = cur
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	return t.toItem(result)
}

// UpperBound returns the first item strictly greater than key, or nil if none.
func (t *Tree[T]) UpperBound(key *T) *T {
	cur := t.root
	var result *Node
	for cur != &t.nilNode {
		existing := itemOf[T](cur)
		if t.traits.Less(key, existing) {
			result = cur
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	return t.toItem(result)
}

// Erase removes the first item comparing equal to key, if any, and reports
// whether a removal occurred.
func (t *Tree[T]) Erase(key *T) bool {
	n, found := t.Find(key)
	if !found {
		return false
	}
	t.Remove(n)
	return true
}

// Min returns the smallest item in the tree, or nil if empty.
func (t *Tree[T]) Min() *T {
	if t.root == &t.nilNode {
		return nil
	}
	return t.toItem(t.minNode(t.root))
}

// Max returns the largest item in the tree, or nil if empty.
func (t *Tree[T]) Max() *T {
	if t.root == &t.nilNode {
		return nil
	}
	return t.toItem(t.maxNode(t.root))
}

func (t *Tree[T]) successor(n *Node) *Node {
	if n.right != &t.nilNode {
		return t.minNode(n.right)
	}
	p := n.parent
	for p != &t.nilNode && n == p.right {
		n = p
		p = p.parent
	}
	return p
}

func (t *Tree[T]) predecessor(n *Node) *Node {
	if n.left != &t.nilNode {
		return t.maxNode(n.left)
	}
	p := n.parent
	for p != &t.nilNode && n == p.left {
		n = p
		p = p.parent
	}
	return p
}

// Successor returns the in-order successor of item, or nil if none.
func (t *Tree[T]) Successor(item *T) *T { return t.toItem(t.successor(nodeOf(item))) }

// Predecessor returns the in-order predecessor of item, or nil if none.
func (t *Tree[T]) Predecessor(item *T) *T { return t.toItem(t.predecessor(nodeOf(item))) }

// TraverseInOrder visits every item in ascending order, stopping early if f
// returns false.
func (t *Tree[T]) TraverseInOrder(f func(*T) bool) bool {
	return t.traverse(t.root, f)
}

func (t *Tree[T]) traverse(n *Node, f func(*T) bool) bool {
	if n == &t.nilNode {
		return true
	}
	if !t.traverse(n.left, f) {
		return false
	}
	if !f(itemOf[T](n)) {
		return false
	}
	return t.traverse(n.right, f)
}

// Iterator is a position in a Tree's in-order sequence. The zero value
// represents the end/rend sentinel position.
type Iterator[T any] struct {
	tree *Tree[T]
	node *Node
}

// Valid reports whether it refers to a real item.
func (it Iterator[T]) Valid() bool { return it.node != nil }

// Item returns the item at it, or nil if !it.Valid().
func (it Iterator[T]) Item() *T {
	if it.node == nil {
		return nil
	}
	return itemOf[T](it.node)
}

// Next advances to the in-order successor.
func (it Iterator[T]) Next() Iterator[T] {
	if it.node == nil {
		return it
	}
	n := it.tree.successor(it.node)
	if it.tree.isNilNode(n) {
		n = nil
	}
	return Iterator[T]{it.tree, n}
}

// Prev moves to the in-order predecessor.
func (it Iterator[T]) Prev() Iterator[T] {
	if it.node == nil {
		return it
	}
	n := it.tree.predecessor(it.node)
	if it.tree.isNilNode(n) {
		n = nil
	}
	return Iterator[T]{it.tree, n}
}

// Begin returns an iterator at the smallest item.
func (t *Tree[T]) Begin() Iterator[T] {
	if t.root == &t.nilNode {
		return Iterator[T]{t, nil}
	}
	return Iterator[T]{t, t.minNode(t.root)}
}

// End returns the past-the-end iterator.
func (t *Tree[T]) End() Iterator[T] { return Iterator[T]{t, nil} }

// RBegin returns an iterator at the largest item.
func (t *Tree[T]) RBegin() Iterator[T] {
	if t.root == &t.nilNode {
		return Iterator[T]{t, nil}
	}
	return Iterator[T]{t, t.maxNode(t.root)}
}

// REnd returns the before-the-beginning iterator.
func (t *Tree[T]) REnd() Iterator[T] { return Iterator[T]{t, nil} }

// IsTreeValid enforces BST ordering, parent/child symmetry, accurate
// subtree sizes, and the Δ weight-balance condition at every node.
func (t *Tree[T]) IsTreeValid() error {
	if t.root != &t.nilNode && t.root.parent != &t.nilNode {
		return fmt.Errorf("root parent is not sentinel")
	}

	var err error
	var prev *T
	first := true

	var walk func(n *Node) int
	walk = func(n *Node) int {
		if n == &t.nilNode || err != nil {
			return 0
		}
		leftSize := walk(n.left)
		if err != nil {
			return 0
		}
		item := itemOf[T](n)
		if !first {
			if t.traits.Less(item, prev) {
				err = fmt.Errorf("traversal out of order")
				return 0
			}
			if !t.traits.Less(prev, item) && !t.opts.AllowMultiple {
				err = fmt.Errorf("duplicate key found with AllowMultiple disabled")
				return 0
			}
		}
		first = false
		prev = item

		if n.parent != &t.nilNode && n.parent.left != n && n.parent.right != n {
			err = fmt.Errorf("parent/child mismatch")
			return 0
		}
		rightSize := walk(n.right)
		total := leftSize + rightSize + 1
		if n.size != total {
			err = fmt.Errorf("size field mismatch: node.size=%d actual=%d", n.size, total)
			return 0
		}
		if !t.balanced(n) {
			err = fmt.Errorf("weight-balance condition violated")
			return 0
		}
		return total
	}
	walk(t.root)
	if err != nil {
		return err
	}

	if t.opts.ConstantTimeSize {
		n := 0
		t.TraverseInOrder(func(*T) bool { n++; return true })
		if n != t.size {
			return fmt.Errorf("size counter mismatch: counter=%d actual=%d", t.size, n)
		}
	}
	return nil
}

// String renders the tree's shape for debugging, using Stringer on T when
// available, annotated with each node's subtree size.
func (t *Tree[T]) String() string {
	if t.root == &t.nilNode {
		return "Empty Tree"
	}

	builder := strings.Builder{}
	verticalLineHeights := make(map[int]bool)

	depth := func(n *Node) int {
		h := 0
		for n.parent != &t.nilNode {
			h++
			n = n.parent
		}
		return h
	}

	var walk func(n *Node)
	walk = func(n *Node) {
		if n == &t.nilNode {
			return
		}
		walk(n.left)

		h := depth(n)
		for j := 0; j < h-1; j++ {
			if verticalLineHeights[j+1] {
				builder.WriteString(connectorVertical)
			} else {
				builder.WriteString(connectorSpace)
			}
		}
		if n.parent != &t.nilNode && n.parent.left == n {
			builder.WriteString(connectorLeft)
		} else if n.parent != &t.nilNode && n.parent.right == n {
			builder.WriteString(connectorRight)
		}

		item := itemOf[T](n)
		if s, ok := any(item).(fmt.Stringer); ok {
			builder.WriteString(s.String())
		} else {
			builder.WriteString(fmt.Sprintf("%v", item))
		}
		fmt.Fprintf(&builder, " (size=%d)\n", n.size)

		if n.parent != &t.nilNode && n.parent.left == n {
			verticalLineHeights[h] = true
		}
		if n.parent != &t.nilNode && n.parent.right == n {
			verticalLineHeights[h] = false
		}
		verticalLineHeights[h+1] = n.right != &t.nilNode

		walk(n.right)
	}
	walk(t.root)
	return builder.String()
}
