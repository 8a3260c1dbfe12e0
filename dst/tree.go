package dst

import (
	"cmp"
	"unsafe"

	"github.com/google/uuid"
	"github.com/mikenye/ygg/rbtree"
)

// nodeToEvent recovers the owning *eventNode from a *rbtree.Node returned by
// that package's Parent/Left/Right accessors. It relies on eventNode
// embedding rbtree.Node as its first field, the same offset-zero contract
// rbtree itself documents for its own nodeOf/itemOf.
func nodeToEvent[T any, V Numeric, P cmp.Ordered](n *rbtree.Node) *eventNode[T, V, P] {
	if n == nil {
		return nil
	}
	return (*eventNode[T, V, P])(unsafe.Pointer(n))
}

func leftChild[T any, V Numeric, P cmp.Ordered](n *eventNode[T, V, P]) *eventNode[T, V, P] {
	return nodeToEvent[T, V, P](n.Node.Left())
}

func rightChild[T any, V Numeric, P cmp.Ordered](n *eventNode[T, V, P]) *eventNode[T, V, P] {
	return nodeToEvent[T, V, P](n.Node.Right())
}

func aggOf[T any, V Numeric, P cmp.Ordered](n *eventNode[T, V, P]) aggregate[V, P] {
	if n == nil {
		return identity[V, P]()
	}
	return n.agg
}

// combinerObserver keeps every event node's aggregate consistent as the
// underlying rbtree.Tree rotates, inserts, and removes nodes. AfterRotate
// recomputes the two nodes each rotation relinks, the lower one first, so
// that nodes a rotation moves off the Resync path are current; Resync,
// called once per structural operation, then lets recombine walk up from
// its anchor to the root via Node.Parent(), recomputing each level's
// aggregate from its (already current) children.
type combinerObserver[T any, V Numeric, P cmp.Ordered] struct {
	rbtree.NopObserver[eventNode[T, V, P]]
	tree *Tree[T, V, P]
}

func (o *combinerObserver[T, V, P]) AfterRotate(oldTop, newTop *eventNode[T, V, P]) {
	for _, n := range []*eventNode[T, V, P]{oldTop, newTop} {
		n.agg = combine(n.point, n.delta, aggOf(leftChild(n)), aggOf(rightChild(n)))
	}
}

func (o *combinerObserver[T, V, P]) Resync(from *eventNode[T, V, P]) {
	o.tree.recombine(from)
}

// Tree is a dynamic segment tree over intervals of type T: each inserted
// item contributes a weighted interval [Lower, Upper) (or any combination
// of open/closed bounds per Traits), and Tree answers point and range
// aggregate queries over the sum of values of every interval currently
// covering a point.
//
// Internally, every interval is realized as two event nodes (one at its
// lower bound, one at its upper bound) living in a single ordered
// rbtree.Tree; T itself carries no tree linkage and is never mutated by
// Tree.
type Tree[T any, V Numeric, P cmp.Ordered] struct {
	traits Traits[T, V, P]
	inner  *rbtree.Tree[eventNode[T, V, P]]
	index  map[*T]eventPair[T, V, P]
}

// New creates an empty Tree, describing intervals of type T via traits.
func New[T any, V Numeric, P cmp.Ordered](traits Traits[T, V, P]) *Tree[T, V, P] {
	t := &Tree[T, V, P]{
		traits: traits,
		index:  make(map[*T]eventPair[T, V, P]),
	}
	t.inner = rbtree.New[eventNode[T, V, P]](
		eventTraits[T, V, P]{},
		rbtree.Options{AllowMultiple: true, ConstantTimeSize: true},
	)
	t.inner.SetObserver(&combinerObserver[T, V, P]{tree: t})
	return t
}

// recombine recomputes the aggregate of from and every ancestor up to the
// root, using each node's already-current children. nil is a no-op.
func (t *Tree[T, V, P]) recombine(from *eventNode[T, V, P]) {
	for from != nil {
		from.agg = combine(from.point, from.delta, aggOf(leftChild(from)), aggOf(rightChild(from)))
		from = nodeToEvent[T, V, P](from.Node.Parent())
	}
}

// Size returns the number of intervals currently held.
func (t *Tree[T, V, P]) Size() int { return len(t.index) }

// Empty reports whether the tree holds no intervals.
func (t *Tree[T, V, P]) Empty() bool { return len(t.index) == 0 }

// Insert adds item's interval to the tree.
//
// Precondition: item has not already been inserted (without an
// intervening Remove).
func (t *Tree[T, V, P]) Insert(item *T) {
	lo, hi := t.traits.GetLower(item), t.traits.GetUpper(item)
	val := t.traits.GetValue(item)
	loClosed, hiClosed := t.traits.IsLowerClosed(item), t.traits.IsUpperClosed(item)
	id := uuid.New()

	start := &eventNode[T, V, P]{
		owner: item, id: id, point: lo, delta: val,
		isStart: true, closed: loClosed, inclusiveAtPoint: loClosed,
	}
	end := &eventNode[T, V, P]{
		owner: item, id: id, point: hi, delta: -val,
		isStart: false, closed: hiClosed, inclusiveAtPoint: !hiClosed,
	}

	t.inner.Insert(start)
	t.inner.Insert(end)
	t.index[item] = eventPair[T, V, P]{start: start, end: end}
}

// Remove unlinks item's interval from the tree and reports whether it was
// present.
func (t *Tree[T, V, P]) Remove(item *T) bool {
	pair, ok := t.index[item]
	if !ok {
		return false
	}
	t.inner.Remove(pair.start)
	t.inner.Remove(pair.end)
	delete(t.index, item)
	return true
}

// Contains reports whether item is currently present.
func (t *Tree[T, V, P]) Contains(item *T) bool {
	_, ok := t.index[item]
	return ok
}

// Query returns the sum of the values of every interval covering point x.
func (t *Tree[T, V, P]) Query(x P) V {
	var acc V
	cur := t.inner.Root()
	for cur != nil {
		less := cur.point < x
		eq := !less && !(x < cur.point)
		if less || (eq && cur.inclusiveAtPoint) {
			acc += aggOf(leftChild(cur)).total + cur.delta
			cur = rightChild(cur)
		} else {
			cur = leftChild(cur)
		}
	}
	return acc
}

// prefixBefore sums the delta of every event that is excluded by a lower
// bound of x with the given closedness, i.e. every event strictly before x,
// plus (if x itself is not to be included) every event exactly at x.
func (t *Tree[T, V, P]) prefixBefore(x P, closed bool) V {
	var acc V
	cur := t.inner.Root()
	for cur != nil {
		include := cur.point < x || (cur.point == x && !closed)
		if include {
			acc += aggOf(leftChild(cur)).total + cur.delta
			cur = rightChild(cur)
		} else {
			cur = leftChild(cur)
		}
	}
	return acc
}

func passesLo[P cmp.Ordered](p, lo P, loClosed bool) bool {
	if lo < p {
		return true
	}
	if lo == p {
		return loClosed
	}
	return false
}

func passesHi[P cmp.Ordered](p, hi P, hiClosed bool) bool {
	if p < hi {
		return true
	}
	if p == hi {
		return hiClosed
	}
	return false
}

// combineRange returns the aggregate of every event node within [lo,hi]
// (per loClosed/hiClosed) rooted at n, treating the value just before
// entering the range as zero. Callers that need the true covering value
// add in Tree.prefixBefore(lo, loClosed) themselves.
func (t *Tree[T, V, P]) combineRange(n *eventNode[T, V, P], lo, hi P, loClosed, hiClosed bool) aggregate[V, P] {
	if n == nil {
		return identity[V, P]()
	}
	if !passesLo(n.point, lo, loClosed) {
		return t.combineRange(rightChild(n), lo, hi, loClosed, hiClosed)
	}
	if !passesHi(n.point, hi, hiClosed) {
		return t.combineRange(leftChild(n), lo, hi, loClosed, hiClosed)
	}

	left := leftChild(n)
	var leftAgg aggregate[V, P]
	switch {
	case left == nil:
		leftAgg = identity[V, P]()
	case passesLo(left.agg.minPoint, lo, loClosed):
		leftAgg = left.agg
	default:
		leftAgg = t.combineRange(left, lo, hi, loClosed, hiClosed)
	}

	right := rightChild(n)
	var rightAgg aggregate[V, P]
	switch {
	case right == nil:
		rightAgg = identity[V, P]()
	case passesHi(right.agg.maxPoint, hi, hiClosed):
		rightAgg = right.agg
	default:
		rightAgg = t.combineRange(right, lo, hi, loClosed, hiClosed)
	}

	return combine(n.point, n.delta, leftAgg, rightAgg)
}

// rootAgg returns the whole-tree aggregate, or the identity element when
// empty. It backs both the convenience Max/RangedMax methods and the
// generic GetCombined/GetCombiner functions.
func (t *Tree[T, V, P]) rootAgg() aggregate[V, P] {
	root := t.inner.Root()
	if root == nil {
		return identity[V, P]()
	}
	return root.agg
}

// rangeAgg returns the aggregate restricted to [lo,hi] (per loClosed,
// hiClosed), corrected for the running value carried in from before the
// range begins. It backs MaxInRange/RangedMaxInRange and the ranged
// GetCombined/GetCombiner functions.
func (t *Tree[T, V, P]) rangeAgg(lo, hi P, loClosed, hiClosed bool) aggregate[V, P] {
	baseline := t.prefixBefore(lo, loClosed)
	agg := t.combineRange(t.inner.Root(), lo, hi, loClosed, hiClosed)
	agg.total += baseline
	agg.maxVal += baseline
	if !agg.empty && !agg.hiKnown {
		// The span runs past the last event inside the range; the range's
		// own upper bound closes it.
		agg.hi, agg.hiKnown = hi, true
	}
	return agg
}

// Max returns the greatest sum of active interval values found anywhere,
// in O(1): the MaxCombiner of the original library, read straight off the
// root.
func (t *Tree[T, V, P]) Max() V { return t.rootAgg().maxVal }

// RangedMax is Max, plus the span of points over which that maximum holds:
// the RangedMaxCombiner of the original library.
func (t *Tree[T, V, P]) RangedMax() MaxReport[V, P] { return toMaxReport(t.rootAgg()) }

// MaxInRange returns the greatest sum of active interval values over any
// point in [lo,hi] (per loClosed/hiClosed), in O(log n).
func (t *Tree[T, V, P]) MaxInRange(lo, hi P, loClosed, hiClosed bool) V {
	return t.rangeAgg(lo, hi, loClosed, hiClosed).maxVal
}

// RangedMaxInRange is MaxInRange, plus the span of points over which that
// maximum holds.
func (t *Tree[T, V, P]) RangedMaxInRange(lo, hi P, loClosed, hiClosed bool) MaxReport[V, P] {
	return toMaxReport(t.rangeAgg(lo, hi, loClosed, hiClosed))
}

// Event describes one of the two boundary events an interval contributes.
type Event[T any, P cmp.Ordered] struct {
	Point    P
	IsStart  bool
	Closed   bool
	Interval *T
}

// Events visits every event in ascending point order (at equal points,
// events that count at the point itself first, then end events before
// start events), stopping early if f returns false.
func (t *Tree[T, V, P]) Events(f func(Event[T, P]) bool) {
	t.inner.TraverseInOrder(func(n *eventNode[T, V, P]) bool {
		return f(Event[T, P]{Point: n.point, IsStart: n.isStart, Closed: n.closed, Interval: n.owner})
	})
}
