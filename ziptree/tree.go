package ziptree

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

// Options configures behavior orthogonal to rank assignment.
type Options struct {
	AllowMultiple    bool
	ConstantTimeSize bool
}

// Observer is notified of every structural event a Tree produces while
// zipping and unzipping, named after the corresponding phase of the
// operation. dst (see package dst) implements Observer to keep augmenting
// combiners consistent as intervals are inserted and removed. All methods
// are called with real items; a nil item argument marks a spine that
// never got started (see [Observer.UnzipDone]).
type Observer[T any] interface {
	InitUnzipping(newNode *T)
	UnzipToLeft(n *T)
	UnzipToRight(n *T)
	UnzipDone(newNode, leftSpineTop, rightSpineTop *T)

	InitZipping(oldRoot *T)
	BeforeZipFromLeft(n *T)
	BeforeZipFromRight(n *T)
	BeforeZipTreeFromLeft(n *T)
	BeforeZipTreeFromRight(n *T)
	ZippingEndedLeftWithoutTree(n *T)
	ZippingEndedRightWithoutTree(n *T)
	ZippingDone(newRoot, lastNode *T)
	DeleteWithoutZipping(n *T)

	BeforeInsert(n *T)
	AfterInsert(n *T)
	BeforeRemove(n *T)
	AfterRemove(n *T)

	// Resync is called once per Insert/Remove, after the tree has reached
	// its final shape, with the lowest node whose subtree composition may
	// have changed. Augmenting structures recombine from here up through
	// Parent() to the root. from is nil when the tree is now empty.
	Resync(from *T)
}

// NopObserver is a zero-cost [Observer] that does nothing.
type NopObserver[T any] struct{}

func (NopObserver[T]) InitUnzipping(_ *T)                {}
func (NopObserver[T]) UnzipToLeft(_ *T)                  {}
func (NopObserver[T]) UnzipToRight(_ *T)                 {}
func (NopObserver[T]) UnzipDone(_, _, _ *T)              {}
func (NopObserver[T]) InitZipping(_ *T)                  {}
func (NopObserver[T]) BeforeZipFromLeft(_ *T)             {}
func (NopObserver[T]) BeforeZipFromRight(_ *T)            {}
func (NopObserver[T]) BeforeZipTreeFromLeft(_ *T)         {}
func (NopObserver[T]) BeforeZipTreeFromRight(_ *T)        {}
func (NopObserver[T]) ZippingEndedLeftWithoutTree(_ *T)   {}
func (NopObserver[T]) ZippingEndedRightWithoutTree(_ *T)  {}
func (NopObserver[T]) ZippingDone(_, _ *T)                {}
func (NopObserver[T]) DeleteWithoutZipping(_ *T)          {}
func (NopObserver[T]) BeforeInsert(_ *T)                  {}
func (NopObserver[T]) AfterInsert(_ *T)                   {}
func (NopObserver[T]) BeforeRemove(_ *T)                  {}
func (NopObserver[T]) AfterRemove(_ *T)                   {}
func (NopObserver[T]) Resync(_ *T)                        {}

// Tree is an intrusive Zip Tree over items of type *T.
//
// Unlike [github.com/mikenye/ygg/rbtree] and
// [github.com/mikenye/ygg/wbtree], Tree has no sentinel node: the zip/unzip
// algorithms are naturally expressed against plain nil children, exactly
// as the node-ranked BST they implement.
type Tree[T any] struct {
	root       *Node
	traits     Traits[T]
	rankSource RankSource[T]
	opts       Options
	observer   Observer[T]
	size       int
}

// New creates an empty Zip Tree ordered by traits, drawing new node ranks
// from rankSource.
func New[T any](traits Traits[T], rankSource RankSource[T], opts Options) *Tree[T] {
	return &Tree[T]{
		traits:     traits,
		rankSource: rankSource,
		opts:       opts,
		observer:   NopObserver[T]{},
	}
}

// SetObserver installs o as the tree's structural-change observer. A nil o
// resets to a no-op observer.
func (t *Tree[T]) SetObserver(o Observer[T]) {
	if o == nil {
		o = NopObserver[T]{}
	}
	t.observer = o
}

func (t *Tree[T]) toItem(n *Node) *T {
	if n == nil {
		return nil
	}
	return itemOf[T](n)
}

// Size returns the number of items currently in the tree.
func (t *Tree[T]) Size() int {
	if t.opts.ConstantTimeSize {
		return t.size
	}
	n := 0
	t.TraverseInOrder(func(*T) bool { n++; return true })
	return n
}

// Empty reports whether the tree holds no items.
func (t *Tree[T]) Empty() bool { return t.root == nil }

// Clear empties the tree.
func (t *Tree[T]) Clear() {
	t.root = nil
	t.size = 0
}

// Insert links item into the tree, drawing its rank from the tree's
// RankSource.
//
// If Options.AllowMultiple is false and an item comparing equal to item
// already exists, Insert does not modify the tree and returns the
// existing item together with false.
//
// Precondition: item is not currently a member of this or any other Tree
// of this variant.
func (t *Tree[T]) Insert(item *T) (*T, bool) {
	if !t.opts.AllowMultiple {
		if existing, ok := t.Find(item); ok {
			return existing, false
		}
	}

	n := nodeOf(item)
	n.parent, n.left, n.right = nil, nil, nil
	n.rank = t.rankSource.Rank(item)

	t.observer.BeforeInsert(item)
	t.size++

	if t.root == nil {
		t.root = n
		t.observer.AfterInsert(item)
		t.observer.Resync(item)
		return item, true
	}

	if n.rank > t.root.rank {
		oldRoot := t.root
		t.root = n
		t.unzip(oldRoot, n)
		t.observer.AfterInsert(item)
		t.observer.Resync(item)
		return item, true
	}

	current := t.root
	for {
		goesAfter := t.traits.Less(itemOf[T](current), item)
		if !goesAfter && current.left != nil && current.left.rank >= n.rank {
			current = current.left
		} else if goesAfter && current.right != nil && current.right.rank >= n.rank {
			current = current.right
		} else {
			break
		}
	}

	var displaced *Node
	n.parent = current
	if !t.traits.Less(itemOf[T](current), item) {
		displaced = current.left
		current.left = n
	} else {
		displaced = current.right
		current.right = n
	}

	if displaced != nil {
		t.unzip(displaced, n)
	}
	t.observer.AfterInsert(item)
	t.observer.Resync(item)
	return item, true
}

// unzip splits the subtree rooted at oldn into two spines, one entirely
// less than newn and one entirely greater, and hangs them as newn's left
// and right children. Ported as a direct three-phase state machine
// (neither spine started, one spine started, both spines started) from
// the reference zip tree implementation.
func (t *Tree[T]) unzip(oldn, newn *Node) {
	leftHead := newn
	rightHead := newn
	cur := oldn

	newItem := itemOf[T](newn)
	t.observer.InitUnzipping(newItem)

	less := func(n *Node) bool { return t.traits.Less(newItem, itemOf[T](n)) }

	if less(cur) {
		t.observer.UnzipToRight(itemOf[T](cur))
		rightHead.right = cur
		cur.parent = rightHead
		rightHead = cur
		cur = cur.left

		for cur != nil {
			if less(cur) {
				t.observer.UnzipToRight(itemOf[T](cur))
				rightHead.left = cur
				cur.parent = rightHead
				rightHead = cur
				cur = cur.left
				continue
			}

			t.observer.UnzipToLeft(itemOf[T](cur))
			leftHead.left = cur
			cur.parent = leftHead
			leftHead = cur
			cur = cur.right

			for cur != nil {
				if less(cur) {
					t.observer.UnzipToRight(itemOf[T](cur))
					rightHead.left = cur
					cur.parent = rightHead
					rightHead = cur
					cur = cur.left
				} else {
					t.observer.UnzipToLeft(itemOf[T](cur))
					leftHead.right = cur
					cur.parent = leftHead
					leftHead = cur
					cur = cur.right
				}
			}
			break
		}
	} else {
		t.observer.UnzipToLeft(itemOf[T](cur))
		leftHead.left = cur
		cur.parent = leftHead
		leftHead = cur
		cur = cur.right

		for cur != nil {
			if less(cur) {
				t.observer.UnzipToRight(itemOf[T](cur))
				rightHead.right = cur
				cur.parent = rightHead
				rightHead = cur
				cur = cur.left

				for cur != nil {
					if less(cur) {
						t.observer.UnzipToRight(itemOf[T](cur))
						rightHead.left = cur
						cur.parent = rightHead
						rightHead = cur
						cur = cur.left
					} else {
						t.observer.UnzipToLeft(itemOf[T](cur))
						leftHead.right = cur
						cur.parent = leftHead
						leftHead = cur
						cur = cur.right
					}
				}
				break
			}

			t.observer.UnzipToLeft(itemOf[T](cur))
			leftHead.right = cur
			cur.parent = leftHead
			leftHead = cur
			cur = cur.right
		}
	}

	if leftHead != newn {
		leftHead.right = nil
	} else {
		leftHead.left = nil
	}
	if rightHead != newn {
		rightHead.left = nil
	} else {
		rightHead.right = nil
	}

	t.observer.UnzipDone(newItem, t.toItem(newn.left), t.toItem(newn.right))
}

// zip merges old root's left and right children back into a single
// subtree by priority (rank), replacing oldRoot in its parent.
func (t *Tree[T]) zip(oldRoot *Node) {
	item := itemOf[T](oldRoot)
	leftHead := oldRoot.left
	rightHead := oldRoot.right
	var newHead *Node
	cur := oldRoot.parent
	var lastFromLeft bool

	if rightHead == nil || (leftHead != nil && leftHead.rank >= rightHead.rank) {
		if leftHead == nil {
			t.observer.DeleteWithoutZipping(item)
			parent := cur
			t.detach(cur, oldRoot, nil)
			t.observer.Resync(t.toItem(parent))
			return
		}

		t.observer.InitZipping(item)
		t.observer.BeforeZipFromLeft(itemOf[T](leftHead))
		lastFromLeft = true
		newHead = leftHead
		t.detach(cur, oldRoot, leftHead)
		cur = leftHead
		leftHead = leftHead.right
	} else {
		t.observer.InitZipping(item)
		lastFromLeft = false
		t.observer.BeforeZipFromRight(itemOf[T](rightHead))
		newHead = rightHead
		t.detach(cur, oldRoot, rightHead)
		cur = rightHead
		rightHead = rightHead.left
	}

	for leftHead != nil && rightHead != nil {
		if leftHead.rank >= rightHead.rank {
			t.observer.BeforeZipFromLeft(itemOf[T](leftHead))
			if !lastFromLeft {
				cur.left = leftHead
				leftHead.parent = cur
			}
			cur = leftHead
			leftHead = leftHead.right
			lastFromLeft = true
		} else {
			t.observer.BeforeZipFromRight(itemOf[T](rightHead))
			if lastFromLeft {
				cur.right = rightHead
				rightHead.parent = cur
			}
			cur = rightHead
			rightHead = rightHead.left
			lastFromLeft = false
		}
	}

	switch {
	case leftHead != nil:
		if !lastFromLeft {
			t.observer.BeforeZipTreeFromLeft(itemOf[T](leftHead))
			cur.left = leftHead
			leftHead.parent = cur
			cur = leftHead
		} else {
			t.observer.ZippingEndedLeftWithoutTree(itemOf[T](cur))
		}
	case rightHead != nil:
		if lastFromLeft {
			t.observer.BeforeZipTreeFromRight(itemOf[T](rightHead))
			cur.right = rightHead
			rightHead.parent = cur
			cur = rightHead
		} else {
			t.observer.ZippingEndedRightWithoutTree(itemOf[T](cur))
		}
	default:
		if lastFromLeft {
			t.observer.ZippingEndedLeftWithoutTree(itemOf[T](cur))
		} else {
			t.observer.ZippingEndedRightWithoutTree(itemOf[T](cur))
		}
	}

	t.observer.ZippingDone(t.toItem(newHead), itemOf[T](cur))
	t.observer.Resync(itemOf[T](cur))
}

// detach replaces oldNode (a child of parent, or the root if parent is
// nil) with replacement.
func (t *Tree[T]) detach(parent, oldNode, replacement *Node) {
	if parent == nil {
		t.root = replacement
		if replacement != nil {
			replacement.parent = nil
		}
		return
	}
	if parent.left == oldNode {
		parent.left = replacement
	} else {
		parent.right = replacement
	}
	if replacement != nil {
		replacement.parent = parent
	}
}

// Remove unlinks item from the tree.
//
// Precondition: item is currently a member of this tree.
func (t *Tree[T]) Remove(item *T) {
	t.observer.BeforeRemove(item)
	t.zip(nodeOf(item))
	n := nodeOf(item)
	n.parent, n.left, n.right = nil, nil, nil
	t.size--
	t.observer.AfterRemove(item)
}

// Erase removes the first item comparing equal to key, if any, and reports
// whether a removal occurred. Per this package's documented design
// decision, Erase always performs a confirming Find before Remove, so its
// reported bool is accurate without the caller needing a separate
// membership check.
func (t *Tree[T]) Erase(key *T) bool {
	found, ok := t.Find(key)
	if !ok {
		return false
	}
	t.Remove(found)
	return true
}

// Find returns the first item comparing equal to key, if any.
func (t *Tree[T]) Find(key *T) (*T, bool) {
	cur := t.root
	var lastLeft *Node
	for cur != nil {
		if t.traits.Less(itemOf[T](cur), key) {
			cur = cur.right
		} else {
			lastLeft = cur
			cur = cur.left
		}
	}
	if lastLeft != nil && !t.traits.Less(key, itemOf[T](lastLeft)) {
		return itemOf[T](lastLeft), true
	}
	return nil, false
}

// LowerBound returns the first item not less than key, or nil if none.
func (t *Tree[T]) LowerBound(key *T) *T {
	cur := t.root
	var lastLeft *Node
	for cur != nil {
		if t.traits.Less(itemOf[T](cur), key) {
			cur = cur.right
		} else {
			lastLeft = cur
			cur = cur.left
		}
	}
	return t.toItem(lastLeft)
}

// UpperBound returns the first item strictly greater than key, or nil if none.
func (t *Tree[T]) UpperBound(key *T) *T {
	cur := t.root
	var lastLeft *Node
	for cur != nil {
		if t.traits.Less(key, itemOf[T](cur)) {
			lastLeft = cur
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	return t.toItem(lastLeft)
}

// Min returns the smallest item in the tree, or nil if empty.
func (t *Tree[T]) Min() *T {
	if t.root == nil {
		return nil
	}
	n := t.root
	for n.left != nil {
		n = n.left
	}
	return itemOf[T](n)
}

// Max returns the largest item in the tree, or nil if empty.
func (t *Tree[T]) Max() *T {
	if t.root == nil {
		return nil
	}
	n := t.root
	for n.right != nil {
		n = n.right
	}
	return itemOf[T](n)
}

func (t *Tree[T]) successor(n *Node) *Node {
	if n.right != nil {
		n = n.right
		for n.left != nil {
			n = n.left
		}
		return n
	}
	p := n.parent
	for p != nil && n == p.right {
		n = p
		p = p.parent
	}
	return p
}

func (t *Tree[T]) predecessor(n *Node) *Node {
	if n.left != nil {
		n = n.left
		for n.right != nil {
			n = n.right
		}
		return n
	}
	p := n.parent
	for p != nil && n == p.left {
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
	if n == nil {
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
	return Iterator[T]{it.tree, it.tree.successor(it.node)}
}

// Prev moves to the in-order predecessor.
func (it Iterator[T]) Prev() Iterator[T] {
	if it.node == nil {
		return it
	}
	return Iterator[T]{it.tree, it.tree.predecessor(it.node)}
}

// Begin returns an iterator at the smallest item.
func (t *Tree[T]) Begin() Iterator[T] {
	if t.root == nil {
		return Iterator[T]{t, nil}
	}
	n := t.root
	for n.left != nil {
		n = n.left
	}
	return Iterator[T]{t, n}
}

// End returns the past-the-end iterator.
func (t *Tree[T]) End() Iterator[T] { return Iterator[T]{t, nil} }

// RBegin returns an iterator at the largest item.
func (t *Tree[T]) RBegin() Iterator[T] {
	if t.root == nil {
		return Iterator[T]{t, nil}
	}
	n := t.root
	for n.right != nil {
		n = n.right
	}
	return Iterator[T]{t, n}
}

// REnd returns the before-the-beginning iterator.
func (t *Tree[T]) REnd() Iterator[T] { return Iterator[T]{t, nil} }

// DbgRankHistogram returns a count of items per rank, indexed by rank.
// Intended for diagnosing rank-source quality, not production use.
func (t *Tree[T]) DbgRankHistogram() []int {
	var hist []int
	t.TraverseInOrder(func(item *T) bool {
		r := nodeOf(item).rank
		for len(hist) <= r {
			hist = append(hist, 0)
		}
		hist[r]++
		return true
	})
	return hist
}

// IsTreeValid enforces BST ordering, parent/child symmetry, and the zip
// tree's rank-heap property (a node's rank is >= both of its children's
// ranks). It is intended for tests, not production hot paths.
func (t *Tree[T]) IsTreeValid() error {
	if t.root != nil && t.root.parent != nil {
		return fmt.Errorf("root parent is not nil")
	}

	var err error
	var walk func(n, lowerBound, upperBound *Node)
	walk = func(n, lowerBound, upperBound *Node) {
		if n == nil || err != nil {
			return
		}
		if lowerBound != nil && !t.traits.Less(itemOf[T](lowerBound), itemOf[T](n)) {
			err = fmt.Errorf("lower bound violated")
			return
		}
		if upperBound != nil && t.traits.Less(itemOf[T](upperBound), itemOf[T](n)) {
			err = fmt.Errorf("upper bound violated")
			return
		}
		if n.right != nil {
			if n.right.rank > n.rank {
				err = fmt.Errorf("rank-heap property violated on the right")
				return
			}
			if n.right.parent != n {
				err = fmt.Errorf("right child parent mismatch")
				return
			}
			walk(n.right, n, upperBound)
			if err != nil {
				return
			}
		}
		if n.left != nil {
			if n.left.rank > n.rank {
				err = fmt.Errorf("rank-heap property violated on the left")
				return
			}
			if n.left.parent != n {
				err = fmt.Errorf("left child parent mismatch")
				return
			}
			walk(n.left, lowerBound, n)
		}
	}
	walk(t.root, nil, nil)
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
// available, annotated with each node's rank.
func (t *Tree[T]) String() string {
	if t.root == nil {
		return "Empty Tree"
	}

	builder := strings.Builder{}
	verticalLineHeights := make(map[int]bool)

	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		walk(n.left)

		h := n.Depth()
		for j := 0; j < h-1; j++ {
			if verticalLineHeights[j+1] {
				builder.WriteString(connectorVertical)
			} else {
				builder.WriteString(connectorSpace)
			}
		}
		if n.parent != nil && n.parent.left == n {
			builder.WriteString(connectorLeft)
		} else if n.parent != nil && n.parent.right == n {
			builder.WriteString(connectorRight)
		}

		item := itemOf[T](n)
		if s, ok := any(item).(fmt.Stringer); ok {
			builder.WriteString(s.String())
		} else {
			builder.WriteString(fmt.Sprintf("%v", item))
		}
		fmt.Fprintf(&builder, " (rank=%d)\n", n.rank)

		if n.parent != nil && n.parent.left == n {
			verticalLineHeights[h] = true
		}
		if n.parent != nil && n.parent.right == n {
			verticalLineHeights[h] = false
		}
		verticalLineHeights[h+1] = n.right != nil

		walk(n.right)
	}
	walk(t.root)
	return builder.String()
}
