package ziptree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

type intItem struct {
	Node
	Key int
}

type intTraits struct{}

func (intTraits) Less(a, b *intItem) bool { return a.Key < b.Key }

func newRandomTree(seed int64, opts Options) *Tree[intItem] {
	rng := rand.New(rand.NewSource(seed))
	return New[intItem](intTraits{}, NewRandomRankSource[intItem](rng), opts)
}

// fixedRankSource assigns each key the rank found in ranks, letting a test
// pin down the exact tree shape an insertion sequence produces.
type fixedRankSource struct {
	ranks map[int]int
}

func (s fixedRankSource) Rank(item *intItem) int { return s.ranks[item.Key] }

func TestTree_InsertAndFind(t *testing.T) {
	tr := newRandomTree(1, Options{ConstantTimeSize: true})
	values := rand.New(rand.NewSource(99)).Perm(300)
	for _, v := range values {
		_, inserted := tr.Insert(&intItem{Key: v})
		require.True(t, inserted)
	}
	require.Equal(t, 300, tr.Size())
	require.NoError(t, tr.IsTreeValid())

	for _, v := range values {
		found, ok := tr.Find(&intItem{Key: v})
		require.True(t, ok)
		require.Equal(t, v, found.Key)
	}
	_, ok := tr.Find(&intItem{Key: 99999})
	require.False(t, ok)
}

func TestTree_DuplicateRejectedWithoutAllowMultiple(t *testing.T) {
	tr := newRandomTree(2, Options{})
	first, inserted := tr.Insert(&intItem{Key: 10})
	require.True(t, inserted)
	second, inserted := tr.Insert(&intItem{Key: 10})
	require.False(t, inserted)
	require.Same(t, first, second)
}

func TestTree_RemoveMaintainsInvariants(t *testing.T) {
	tr := newRandomTree(3, Options{ConstantTimeSize: true})
	rng := rand.New(rand.NewSource(4))

	values := rng.Perm(250)
	items := make(map[int]*intItem, len(values))
	for _, v := range values {
		it := &intItem{Key: v}
		tr.Insert(it)
		items[v] = it
	}
	require.NoError(t, tr.IsTreeValid())

	order := rng.Perm(250)
	for i, v := range order {
		tr.Remove(items[v])
		if i%17 == 0 {
			require.NoError(t, tr.IsTreeValid())
		}
	}
	require.True(t, tr.Empty())
	require.Equal(t, 0, tr.Size())
}

func TestTree_RemoveZipTiesPreferLeft(t *testing.T) {
	src := fixedRankSource{ranks: map[int]int{10: 100, 5: 50, 15: 50}}
	tr := New[intItem](intTraits{}, src, Options{ConstantTimeSize: true})

	parent := &intItem{Key: 10}
	left := &intItem{Key: 5}
	right := &intItem{Key: 15}
	tr.Insert(parent)
	tr.Insert(left)
	tr.Insert(right)
	require.NoError(t, tr.IsTreeValid())

	tr.Remove(parent)
	require.NoError(t, tr.IsTreeValid())
	require.Equal(t, 2, tr.Size())

	require.Equal(t, 5, itemOf[intItem](tr.root).Key)
	require.Nil(t, tr.root.left)
	require.NotNil(t, tr.root.right)
	require.Equal(t, 15, itemOf[intItem](tr.root.right).Key)
}

func TestTree_Erase(t *testing.T) {
	tr := newRandomTree(5, Options{ConstantTimeSize: true})
	tr.Insert(&intItem{Key: 1})
	tr.Insert(&intItem{Key: 2})

	require.True(t, tr.Erase(&intItem{Key: 1}))
	require.False(t, tr.Erase(&intItem{Key: 1}))
	require.Equal(t, 1, tr.Size())
}

func TestTree_LowerUpperBound(t *testing.T) {
	tr := newRandomTree(6, Options{})
	for _, v := range []int{10, 20, 30, 40} {
		tr.Insert(&intItem{Key: v})
	}
	require.Equal(t, 30, tr.LowerBound(&intItem{Key: 25}).Key)
	require.Equal(t, 30, tr.UpperBound(&intItem{Key: 20}).Key)
	require.Nil(t, tr.LowerBound(&intItem{Key: 999}))
	require.Nil(t, tr.UpperBound(&intItem{Key: 40}))
}

func TestTree_Iteration(t *testing.T) {
	tr := newRandomTree(7, Options{})
	values := []int{5, 3, 8, 1, 4, 7, 9}
	for _, v := range values {
		tr.Insert(&intItem{Key: v})
	}
	var forward []int
	for it := tr.Begin(); it.Valid(); it = it.Next() {
		forward = append(forward, it.Item().Key)
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	require.Equal(t, sorted, forward)

	var backward []int
	for it := tr.RBegin(); it.Valid(); it = it.Prev() {
		backward = append(backward, it.Item().Key)
	}
	reversed := make([]int, len(sorted))
	for i, v := range sorted {
		reversed[len(sorted)-1-i] = v
	}
	require.Equal(t, reversed, backward)
}

func TestTree_HashedRankSourceIsDeterministic(t *testing.T) {
	keyBytes := func(i *intItem) []byte {
		b := make([]byte, 8)
		v := uint64(i.Key)
		for j := 0; j < 8; j++ {
			b[j] = byte(v >> (8 * j))
		}
		return b
	}
	src := &HashedRankSource[intItem]{KeyBytes: keyBytes, Coefficient: 0x9E3779B97F4A7C15, Modulus: 1 << 61}

	values := rand.New(rand.NewSource(8)).Perm(100)
	a := New[intItem](intTraits{}, src, Options{})
	b := New[intItem](intTraits{}, src, Options{})
	for _, v := range values {
		a.Insert(&intItem{Key: v})
		b.Insert(&intItem{Key: v})
	}
	require.NoError(t, a.IsTreeValid())
	require.NoError(t, b.IsTreeValid())

	var ranksA, ranksB []int
	a.TraverseInOrder(func(it *intItem) bool {
		ranksA = append(ranksA, nodeOf(it).rank)
		return true
	})
	b.TraverseInOrder(func(it *intItem) bool {
		ranksB = append(ranksB, nodeOf(it).rank)
		return true
	})
	require.Equal(t, ranksA, ranksB)
}

func TestTree_HashedRankSourceEightBitWidthScenario(t *testing.T) {
	keyBytes := func(i *intItem) []byte {
		b := make([]byte, 8)
		v := uint64(i.Key)
		for j := 0; j < 8; j++ {
			b[j] = byte(v >> (8 * j))
		}
		return b
	}
	src := &HashedRankSource[intItem]{KeyBytes: keyBytes, Coefficient: 3445358421, RankWidth: 8}
	tr := New[intItem](intTraits{}, src, Options{ConstantTimeSize: true})

	for _, v := range []int{10, 20, 30, 40, 50} {
		tr.Insert(&intItem{Key: v})
	}
	require.NoError(t, tr.IsTreeValid())

	toRemove, ok := tr.Find(&intItem{Key: 30})
	require.True(t, ok)
	tr.Remove(toRemove)

	_, ok = tr.Find(&intItem{Key: 30})
	require.False(t, ok)
	found, ok := tr.Find(&intItem{Key: 20})
	require.True(t, ok)
	require.Equal(t, 20, found.Key)
	require.NoError(t, tr.IsTreeValid())
}

type countingObserver struct {
	NopObserver[intItem]
	unzips, zips, inserts, removes int
}

func (o *countingObserver) UnzipToLeft(_ *intItem)        { o.unzips++ }
func (o *countingObserver) UnzipToRight(_ *intItem)       { o.unzips++ }
func (o *countingObserver) BeforeZipFromLeft(_ *intItem)  { o.zips++ }
func (o *countingObserver) BeforeZipFromRight(_ *intItem) { o.zips++ }
func (o *countingObserver) AfterInsert(_ *intItem)        { o.inserts++ }
func (o *countingObserver) AfterRemove(_ *intItem)        { o.removes++ }

func TestTree_ObserverNotified(t *testing.T) {
	tr := newRandomTree(9, Options{})
	obs := &countingObserver{}
	tr.SetObserver(obs)

	rng := rand.New(rand.NewSource(10))
	for _, v := range rng.Perm(40) {
		tr.Insert(&intItem{Key: v})
	}
	require.Equal(t, 40, obs.inserts)

	first, _ := tr.Find(&intItem{Key: 1})
	tr.Remove(first)
	require.Equal(t, 1, obs.removes)
}

func FuzzTree_InsertRemove(f *testing.F) {
	f.Add(uint8(3), uint8(1), uint8(9))
	f.Fuzz(func(t *testing.T, a, b, c uint8) {
		tr := newRandomTree(11, Options{AllowMultiple: true, ConstantTimeSize: true})
		keys := []int{int(a), int(b), int(c)}
		var items []*intItem
		for _, k := range keys {
			it := &intItem{Key: k}
			tr.Insert(it)
			items = append(items, it)
		}
		if err := tr.IsTreeValid(); err != nil {
			t.Fatalf("invalid after insert: %v", err)
		}
		for _, it := range items {
			tr.Remove(it)
		}
		if err := tr.IsTreeValid(); err != nil {
			t.Fatalf("invalid after remove: %v", err)
		}
	})
}
