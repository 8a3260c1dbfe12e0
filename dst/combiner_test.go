package dst

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDefaultCombiners_ListsCanonicalKinds exercises CombinerPack as the
// original contract's heterogeneous tuple of combiner instances: a caller
// can range over the pack to discover which combiner kinds a Tree supports
// without hardcoding both type names itself.
func TestDefaultCombiners_ListsCanonicalKinds(t *testing.T) {
	pack := DefaultCombiners[int, float64]()
	require.Len(t, pack, 2)

	var sawMax, sawRangedMax bool
	for _, c := range pack {
		switch c.(type) {
		case MaxCombiner[int, float64]:
			sawMax = true
		case RangedMaxCombiner[int, float64]:
			sawRangedMax = true
		}
	}
	require.True(t, sawMax)
	require.True(t, sawRangedMax)
}

// TestDefaultCombiners_EachKindAgreesWithGetCombined confirms that every
// kind named in the pack can drive GetCombined/GetCombiner to the same
// whole-tree maximum, since both canonical combiners fold from one shared
// aggregate.
func TestDefaultCombiners_EachKindAgreesWithGetCombined(t *testing.T) {
	tree := buildExampleTree()

	require.Equal(t, 11, GetCombined[interval, int, float64, MaxCombiner[int, float64]](tree))
	require.Equal(t, 11, GetCombined[interval, int, float64, RangedMaxCombiner[int, float64]](tree))

	ranged := GetCombiner[interval, int, float64, RangedMaxCombiner[int, float64]](tree)
	require.Equal(t, 11, ranged.Aggregated())
	lo, hi, known := ranged.Borders()
	require.True(t, known)
	require.Equal(t, 12.0, lo)
	require.Equal(t, 15.0, hi)
}
