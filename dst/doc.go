// Package dst provides a Dynamic Segment Tree: an augmenting layer over
// [github.com/mikenye/ygg/rbtree] that tracks a dynamic set of weighted
// intervals and answers point and range aggregate queries over them in
// O(log n), without rebuilding anything when an interval is added or
// removed.
//
// Each interval is split into two boundary events (one at its lower bound,
// one at its upper bound) that live as ordinary nodes in a single ordered
// rbtree.Tree. [rbtree.Observer.Resync] lets dst recompute the affected
// combiner values bottom-up after every structural change, the same way
// rotations keep the tree's color invariants intact.
//
// # Key Features
//
//   - Query: the sum of every interval's value covering a single point.
//   - Max / RangedMax: the greatest sum reached anywhere, in O(1), plus the
//     span of points over which it holds.
//   - MaxInRange / RangedMaxInRange: the same maximum restricted to a
//     queried sub-range, in O(log n).
//   - Insert and Remove run in O(log n) and leave every cached combiner
//     consistent; the caller's own interval value is never mutated.
//
// # Usage Example
//
//	type Interval struct {
//		Lo, Hi int
//		Weight int
//	}
//
//	type intervalTraits struct{}
//
//	func (intervalTraits) GetLower(i *Interval) int      { return i.Lo }
//	func (intervalTraits) GetUpper(i *Interval) int      { return i.Hi }
//	func (intervalTraits) GetValue(i *Interval) int      { return i.Weight }
//	func (intervalTraits) IsLowerClosed(i *Interval) bool { return true }
//	func (intervalTraits) IsUpperClosed(i *Interval) bool { return false }
//
//	tree := dst.New[Interval, int, int](intervalTraits{})
//	tree.Insert(&Interval{Lo: 0, Hi: 10, Weight: 1})
//	tree.Insert(&Interval{Lo: 5, Hi: 15, Weight: 2})
//	tree.Query(7) // 3: both intervals cover 7
//
//	dst.GetCombined[Interval, int, int, dst.RangedMaxCombiner[int, int]](tree) // 3, the whole tree's maximum
//	borders := dst.GetCombiner[Interval, int, int, dst.RangedMaxCombiner[int, int]](tree)
//	borders.Borders() // (5, 10, true): the span over which that maximum holds
//
// # Limitations
//
//   - Not thread-safe; requires external synchronization for concurrent use.
//   - Built concretely on rbtree only. ziptree also exposes the
//     Parent/Left/Right and Resync hooks an augmenting layer needs, but no
//     ziptree backend is built; wbtree exposes neither.
package dst
