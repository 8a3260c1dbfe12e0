package dst_test

import (
	"fmt"

	"github.com/mikenye/ygg/dst"
)

type weightedInterval struct {
	Lo, Hi float64
	Weight int
}

type weightedTraits struct{}

func (weightedTraits) GetLower(i *weightedInterval) float64     { return i.Lo }
func (weightedTraits) GetUpper(i *weightedInterval) float64     { return i.Hi }
func (weightedTraits) GetValue(i *weightedInterval) int         { return i.Weight }
func (weightedTraits) IsLowerClosed(i *weightedInterval) bool   { return true }
func (weightedTraits) IsUpperClosed(i *weightedInterval) bool   { return false }

func ExampleTree_query() {
	tree := dst.New[weightedInterval, int, float64](weightedTraits{})
	tree.Insert(&weightedInterval{Lo: 0, Hi: 10, Weight: 1})
	tree.Insert(&weightedInterval{Lo: 0.5, Hi: 10, Weight: 2})
	tree.Insert(&weightedInterval{Lo: 10, Hi: 15, Weight: 3})
	tree.Insert(&weightedInterval{Lo: 12, Hi: 20, Weight: 8})

	fmt.Println(tree.Query(0))
	fmt.Println(tree.Query(5))
	fmt.Println(tree.Query(14))
	// Output:
	// 1
	// 3
	// 11
}

func ExampleTree_max() {
	tree := dst.New[weightedInterval, int, float64](weightedTraits{})
	tree.Insert(&weightedInterval{Lo: 0, Hi: 10, Weight: 1})
	tree.Insert(&weightedInterval{Lo: 10, Hi: 15, Weight: 3})
	tree.Insert(&weightedInterval{Lo: 12, Hi: 20, Weight: 8})

	report := tree.RangedMax()
	fmt.Println(report.Value, report.LowerBound, report.UpperBound)
	// Output:
	// 11 12 15
}

func ExampleGetCombiner() {
	tree := dst.New[weightedInterval, int, float64](weightedTraits{})
	tree.Insert(&weightedInterval{Lo: 0, Hi: 10, Weight: 1})
	tree.Insert(&weightedInterval{Lo: 10, Hi: 15, Weight: 3})
	tree.Insert(&weightedInterval{Lo: 12, Hi: 20, Weight: 8})

	combiner := dst.GetCombiner[weightedInterval, int, float64, dst.RangedMaxCombiner[int, float64]](tree)
	lo, hi, known := combiner.Borders()
	fmt.Println(combiner.Aggregated(), lo, hi, known)
	// Output:
	// 11 12 15 true
}

func ExampleTree_remove() {
	tree := dst.New[weightedInterval, int, float64](weightedTraits{})
	a := &weightedInterval{Lo: 0, Hi: 10, Weight: 5}
	b := &weightedInterval{Lo: 3, Hi: 7, Weight: 2}
	tree.Insert(a)
	tree.Insert(b)

	fmt.Println(tree.Query(5))
	tree.Remove(b)
	fmt.Println(tree.Query(5))
	// Output:
	// 7
	// 5
}
