package dst

import (
	"cmp"

	"github.com/google/uuid"
	"github.com/mikenye/ygg/rbtree"
)

// eventNode is one of the two inner nodes a Tree realizes for every
// inserted interval: a start event at the interval's lower bound and an
// end event at its upper bound. The tree of event nodes is ordered by
// point (ties broken by whether the event counts at its own point, then
// by kind, then by id), and is what actually sits
// inside the underlying rbtree.Tree; the caller's own interval value
// (type T) is referenced, never embedded.
type eventNode[T any, V Numeric, P cmp.Ordered] struct {
	rbtree.Node

	owner *T
	id    uuid.UUID

	point   P
	delta   V // +Value(owner) for a start event, -Value(owner) for an end event
	isStart bool
	closed  bool // closedness of *this* boundary (Lower/UpperClosed)

	// inclusiveAtPoint says whether this event's delta counts towards
	// Query(point) exactly, as opposed to only for points strictly past it.
	inclusiveAtPoint bool

	agg aggregate[V, P]
}

// eventPair is the bookkeeping Tree keeps per inserted interval, letting
// Remove locate the two event nodes an item produced without requiring T
// to embed any tree linkage itself.
type eventPair[T any, V Numeric, P cmp.Ordered] struct {
	start *eventNode[T, V, P]
	end   *eventNode[T, V, P]
}

// eventTraits orders event nodes by point; at equal points, events whose
// delta counts at the point itself (inclusiveAtPoint) sort first, so every
// prefix of the order is exactly the set of events counted at or before
// some point. Among the rest, end events sort before start events (the
// standard sweep-line convention, so two back-to-back intervals are never
// transiently counted as simultaneously active), and any remaining tie is
// broken by the interval's id so that distinct intervals sharing both a
// point and a kind still get a stable order.
type eventTraits[T any, V Numeric, P cmp.Ordered] struct{}

func (eventTraits[T, V, P]) Less(a, b *eventNode[T, V, P]) bool {
	if a.point != b.point {
		return a.point < b.point
	}
	if a.inclusiveAtPoint != b.inclusiveAtPoint {
		return a.inclusiveAtPoint
	}
	if a.isStart != b.isStart {
		return b.isStart // end (isStart=false) sorts first
	}
	return a.id.String() < b.id.String()
}
