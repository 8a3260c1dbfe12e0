package dst

import "cmp"

// Combiner is a per-subtree aggregate that can be rebuilt from a node's own
// point and value together with its two children's combiners of the same
// concrete type. This is the "combiner type" contract the original ygg
// library bakes into C++ template parameters; here it is an ordinary Go
// interface, satisfied by value types, with identical subtrees recombined
// bottom-up exactly as rbtree.Observer.Resync drives the rest of the tree.
type Combiner[V Numeric, P cmp.Ordered] interface {
	// Identity returns the neutral element: the combiner value of an
	// absent (empty) subtree.
	Identity() Combiner[V, P]
	// CombineWith folds point/value together with the left and right
	// children's combiners into this subtree's combiner.
	CombineWith(point P, value V, left, right Combiner[V, P]) Combiner[V, P]
	// Aggregated returns this combiner's whole-subtree value.
	Aggregated() V
}

// unwrap recovers the shared aggregate backing any canonical combiner
// value, or the identity aggregate for any other Combiner implementation.
// Both MaxCombiner and RangedMaxCombiner are projections of the one fold
// in combine, so neither needs its own recursive arithmetic.
func unwrap[V Numeric, P cmp.Ordered](c Combiner[V, P]) aggregate[V, P] {
	switch v := c.(type) {
	case MaxCombiner[V, P]:
		return v.agg
	case RangedMaxCombiner[V, P]:
		return v.agg
	default:
		return identity[V, P]()
	}
}

// MaxCombiner tracks the greatest sum of active interval values reached
// anywhere in a subtree, with no border bookkeeping.
type MaxCombiner[V Numeric, P cmp.Ordered] struct{ agg aggregate[V, P] }

func (MaxCombiner[V, P]) Identity() Combiner[V, P] {
	return MaxCombiner[V, P]{agg: identity[V, P]()}
}

func (MaxCombiner[V, P]) CombineWith(point P, value V, left, right Combiner[V, P]) Combiner[V, P] {
	return MaxCombiner[V, P]{agg: combine(point, value, unwrap[V, P](left), unwrap[V, P](right))}
}

func (c MaxCombiner[V, P]) Aggregated() V { return c.agg.maxVal }

// RangedMaxCombiner is MaxCombiner plus the narrowest span of points that
// contains every point at which the maximum holds.
type RangedMaxCombiner[V Numeric, P cmp.Ordered] struct{ agg aggregate[V, P] }

func (RangedMaxCombiner[V, P]) Identity() Combiner[V, P] {
	return RangedMaxCombiner[V, P]{agg: identity[V, P]()}
}

func (RangedMaxCombiner[V, P]) CombineWith(point P, value V, left, right Combiner[V, P]) Combiner[V, P] {
	return RangedMaxCombiner[V, P]{agg: combine(point, value, unwrap[V, P](left), unwrap[V, P](right))}
}

func (c RangedMaxCombiner[V, P]) Aggregated() V { return c.agg.maxVal }

// Borders reports the span over which Aggregated's maximum holds. known is
// false only when the maximum is the zero/no-coverage baseline and no real
// event anchors its upper edge.
func (c RangedMaxCombiner[V, P]) Borders() (lo, hi P, known bool) {
	return c.agg.lo, c.agg.hi, c.agg.hiKnown
}

// CombinerPack is the ordered set of combiner kinds a Tree exposes through
// GetCombined/GetCombiner. Both canonical combiners fold from the same
// underlying aggregate, so the pack does not change how a Tree computes
// anything; it documents which typed views a caller intends to request.
type CombinerPack[V Numeric, P cmp.Ordered] []Combiner[V, P]

// DefaultCombiners is the canonical pack every Tree supports:
// MaxCombiner and RangedMaxCombiner.
func DefaultCombiners[V Numeric, P cmp.Ordered]() CombinerPack[V, P] {
	return CombinerPack[V, P]{MaxCombiner[V, P]{}, RangedMaxCombiner[V, P]{}}
}

func wrapAs[C any, V Numeric, P cmp.Ordered](proto C, agg aggregate[V, P]) Combiner[V, P] {
	switch any(proto).(type) {
	case RangedMaxCombiner[V, P]:
		return RangedMaxCombiner[V, P]{agg: agg}
	default:
		return MaxCombiner[V, P]{agg: agg}
	}
}

// GetCombined returns the whole-tree combined value of combiner C, in
// O(1). Go has no generic methods, so this is a free function parametrized
// on C rather than a method with its own type parameter.
func GetCombined[T any, V Numeric, P cmp.Ordered, C Combiner[V, P]](t *Tree[T, V, P]) V {
	var proto C
	return wrapAs[C, V, P](proto, t.rootAgg()).Aggregated()
}

// GetCombiner returns the combiner object of type C itself, exposing any
// auxiliary fields (such as RangedMaxCombiner.Borders), for the whole tree.
func GetCombiner[T any, V Numeric, P cmp.Ordered, C Combiner[V, P]](t *Tree[T, V, P]) C {
	var proto C
	wrapped := wrapAs[C, V, P](proto, t.rootAgg())
	typed, _ := wrapped.(C)
	return typed
}

// GetCombinedRange is GetCombined restricted to [lo,hi] (per loClosed,
// hiClosed), in O(log n).
func GetCombinedRange[T any, V Numeric, P cmp.Ordered, C Combiner[V, P]](t *Tree[T, V, P], lo, hi P, loClosed, hiClosed bool) V {
	var proto C
	return wrapAs[C, V, P](proto, t.rangeAgg(lo, hi, loClosed, hiClosed)).Aggregated()
}

// GetCombinerRange is GetCombiner restricted to [lo,hi].
func GetCombinerRange[T any, V Numeric, P cmp.Ordered, C Combiner[V, P]](t *Tree[T, V, P], lo, hi P, loClosed, hiClosed bool) C {
	var proto C
	wrapped := wrapAs[C, V, P](proto, t.rangeAgg(lo, hi, loClosed, hiClosed))
	typed, _ := wrapped.(C)
	return typed
}
