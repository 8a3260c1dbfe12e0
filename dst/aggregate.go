package dst

import "cmp"

// Numeric is the value-type constraint a Tree's combiners require: any
// signed integer or floating-point type, so an interval's value can be
// added in when it becomes active and subtracted back out when it ends.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// MaxReport is the result of a RangedMaxCombiner query: the greatest
// "active value" found (the sum of every interval's value overlapping some
// point) together with the narrowest span of points that contains every
// point at which that value holds.
//
// UpperBound is only meaningful when UpperBoundKnown is true. A report
// whose maximum is the zero/no-coverage baseline anchors LowerBound at the
// nearest real event rather than the true start of the queried span; the
// reported Value is still exact.
type MaxReport[V Numeric, P cmp.Ordered] struct {
	Value           V
	LowerBound      P
	UpperBound      P
	UpperBoundKnown bool
}

// aggregate is the augmenting payload cached at every event node. It
// combines what the original ygg library calls a MaxCombiner (the plain
// running total) and a RangedMaxCombiner (the running total's maximum,
// with borders) into one structure, since both are derived from the same
// bottom-up fold over event deltas.
type aggregate[V Numeric, P cmp.Ordered] struct {
	empty bool // true only for the identity element of an absent child

	total    V
	minPoint P // smallest point in this subtree; valid iff !empty
	maxPoint P // largest point in this subtree; valid iff !empty

	maxVal    V
	hasBorder bool // false only for the synthetic zero-coverage candidate
	lo, hi    P
	hiKnown   bool
}

// identity is the aggregate of an empty (absent) subtree.
func identity[V Numeric, P cmp.Ordered]() aggregate[V, P] {
	return aggregate[V, P]{empty: true}
}

// combine folds a node's own point and signed delta together with its
// left and right children's cached aggregates into that node's aggregate.
// This is the one place that knows how the combiners are maintained;
// rbtree rotations and insert/remove splices all recompute through it, via
// Tree.recombine and Tree.rangeAggregate.
func combine[V Numeric, P cmp.Ordered](point P, delta V, left, right aggregate[V, P]) aggregate[V, P] {
	selfVal := left.total + delta
	total := selfVal
	if !right.empty {
		total += right.total
	}

	minPoint := point
	if !left.empty {
		minPoint = left.minPoint
	}
	maxPoint := point
	if !right.empty {
		maxPoint = right.maxPoint
	}

	type candidate struct {
		val       V
		lo, hi    P
		hiKnown   bool
		hasBorder bool
	}
	var best candidate
	have := false
	consider := func(c candidate) {
		switch {
		case !have || c.val > best.val:
			best, have = c, true
		case c.val == best.val:
			// Candidates arrive in point order: a later tie extends the
			// span so it covers every point where the maximum holds.
			best.hi, best.hiKnown = c.hi, c.hiKnown
			best.hasBorder = best.hasBorder || c.hasBorder
		}
	}

	if left.empty {
		// No left subtree: the value before this node's own event fires
		// is the zero/no-coverage baseline, anchored at this node's point.
		var zero V
		consider(candidate{zero, point, point, true, false})
	} else {
		hi, hiKnown := left.hi, left.hiKnown
		if left.hasBorder && !hiKnown {
			hi, hiKnown = point, true
		}
		consider(candidate{left.maxVal, left.lo, hi, hiKnown, left.hasBorder})
	}

	var selfHi P
	selfHiKnown := false
	if !right.empty {
		selfHi, selfHiKnown = right.minPoint, true
	}
	consider(candidate{selfVal, point, selfHi, selfHiKnown, true})

	if !right.empty {
		consider(candidate{right.maxVal + selfVal, right.lo, right.hi, right.hiKnown, right.hasBorder})
	}

	return aggregate[V, P]{
		total:     total,
		minPoint:  minPoint,
		maxPoint:  maxPoint,
		maxVal:    best.val,
		hasBorder: best.hasBorder,
		lo:        best.lo,
		hi:        best.hi,
		hiKnown:   best.hiKnown,
	}
}

func toMaxReport[V Numeric, P cmp.Ordered](agg aggregate[V, P]) MaxReport[V, P] {
	return MaxReport[V, P]{
		Value:           agg.maxVal,
		LowerBound:      agg.lo,
		UpperBound:      agg.hi,
		UpperBoundKnown: agg.hiKnown,
	}
}
