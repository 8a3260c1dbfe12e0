package rbtree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intItem struct {
	Node
	Key int
}

func (i *intItem) String() string { return "" }

type intTraits struct{}

func (intTraits) Less(a, b *intItem) bool { return a.Key < b.Key }

func newIntTree(opts Options) *Tree[intItem] {
	return New[intItem](intTraits{}, opts)
}

func TestTree_InsertFindEmpty(t *testing.T) {
	tr := newIntTree(Options{})
	require.True(t, tr.Empty())
	require.Nil(t, findByKey(tr, 5))
}

// findByKey is a tiny test helper wrapping Find by raw key value.
func findByKey(tr *Tree[intItem], k int) *intItem {
	item, ok := tr.Find(&intItem{Key: k})
	if !ok {
		return nil
	}
	return item
}

func TestTree_InsertAndFind(t *testing.T) {
	tr := newIntTree(Options{ConstantTimeSize: true})
	values := []int{50, 20, 80, 10, 30, 70, 90, 5, 15, 25, 35}
	for _, v := range values {
		item, inserted := tr.Insert(&intItem{Key: v})
		require.True(t, inserted)
		require.Equal(t, v, item.Key)
	}
	require.Equal(t, len(values), tr.Size())
	require.NoError(t, tr.IsTreeValid())

	for _, v := range values {
		found, ok := tr.Find(&intItem{Key: v})
		require.True(t, ok)
		require.Equal(t, v, found.Key)
	}
	_, ok := tr.Find(&intItem{Key: 999})
	require.False(t, ok)
}

func TestTree_DuplicateRejectedWithoutAllowMultiple(t *testing.T) {
	tr := newIntTree(Options{})
	first, inserted := tr.Insert(&intItem{Key: 10})
	require.True(t, inserted)

	second, inserted := tr.Insert(&intItem{Key: 10})
	require.False(t, inserted)
	require.Same(t, first, second)
}

func TestTree_AllowMultiple(t *testing.T) {
	tr := newIntTree(Options{AllowMultiple: true, ConstantTimeSize: true})
	for i := 0; i < 3; i++ {
		_, inserted := tr.Insert(&intItem{Key: 7})
		require.True(t, inserted)
	}
	require.Equal(t, 3, tr.Size())
	require.NoError(t, tr.IsTreeValid())
}

func TestTree_RemoveMaintainsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := newIntTree(Options{ConstantTimeSize: true})

	values := rng.Perm(200)
	items := make(map[int]*intItem, len(values))
	for _, v := range values {
		it := &intItem{Key: v}
		_, inserted := tr.Insert(it)
		require.True(t, inserted)
		items[v] = it
	}
	require.NoError(t, tr.IsTreeValid())

	order := rng.Perm(200)
	for i, v := range order {
		tr.Remove(items[v])
		if i%17 == 0 {
			require.NoError(t, tr.IsTreeValid())
		}
	}
	require.True(t, tr.Empty())
	require.Equal(t, 0, tr.Size())
}

func TestTree_Erase(t *testing.T) {
	tr := newIntTree(Options{ConstantTimeSize: true})
	tr.Insert(&intItem{Key: 1})
	tr.Insert(&intItem{Key: 2})

	require.True(t, tr.Erase(&intItem{Key: 1}))
	require.False(t, tr.Erase(&intItem{Key: 1}))
	require.Equal(t, 1, tr.Size())
}

func TestTree_LowerUpperBound(t *testing.T) {
	tr := newIntTree(Options{})
	for _, v := range []int{10, 20, 30, 40} {
		tr.Insert(&intItem{Key: v})
	}

	lb := tr.LowerBound(&intItem{Key: 25})
	require.NotNil(t, lb)
	assert.Equal(t, 30, lb.Key)

	ub := tr.UpperBound(&intItem{Key: 20})
	require.NotNil(t, ub)
	assert.Equal(t, 30, ub.Key)

	assert.Nil(t, tr.LowerBound(&intItem{Key: 999}))
	assert.Nil(t, tr.UpperBound(&intItem{Key: 40}))
}

func TestTree_MinMaxSuccessorPredecessor(t *testing.T) {
	tr := newIntTree(Options{})
	values := []int{15, 10, 20, 8, 12, 17, 25}
	var items []*intItem
	for _, v := range values {
		it := &intItem{Key: v}
		tr.Insert(it)
		items = append(items, it)
	}

	require.Equal(t, 8, tr.Min().Key)
	require.Equal(t, 25, tr.Max().Key)

	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	for i, it := range sortedByKey(items) {
		if i > 0 {
			pred := tr.Predecessor(it)
			require.Equal(t, sorted[i-1], pred.Key)
		}
		if i < len(sorted)-1 {
			succ := tr.Successor(it)
			require.Equal(t, sorted[i+1], succ.Key)
		}
	}
}

func sortedByKey(items []*intItem) []*intItem {
	out := append([]*intItem(nil), items...)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func TestTree_Iteration(t *testing.T) {
	tr := newIntTree(Options{})
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

func TestTree_Clear(t *testing.T) {
	tr := newIntTree(Options{ConstantTimeSize: true})
	for i := 0; i < 10; i++ {
		tr.Insert(&intItem{Key: i})
	}
	tr.Clear()
	require.True(t, tr.Empty())
	require.Equal(t, 0, tr.Size())
}

type countingObserver struct {
	NopObserver[intItem]
	rotations, inserts, removes int
}

func (o *countingObserver) BeforeRotate(_, _ *intItem) { o.rotations++ }
func (o *countingObserver) AfterInsert(_ *intItem)     { o.inserts++ }
func (o *countingObserver) AfterRemove(_ *intItem)     { o.removes++ }

func TestTree_ObserverNotified(t *testing.T) {
	tr := newIntTree(Options{})
	obs := &countingObserver{}
	tr.SetObserver(obs)

	for _, v := range []int{1, 2, 3, 4, 5, 6, 7} {
		tr.Insert(&intItem{Key: v})
	}
	require.Equal(t, 7, obs.inserts)
	require.Greater(t, obs.rotations, 0)

	first, _ := tr.Find(&intItem{Key: 1})
	tr.Remove(first)
	require.Equal(t, 1, obs.removes)
}

func TestTree_ContainsDistinguishesEqualKeys(t *testing.T) {
	tr := newIntTree(Options{})
	a := &intItem{Key: 1}
	tr.Insert(a)
	b := &intItem{Key: 1}
	require.True(t, tr.Contains(a))
	require.False(t, tr.Contains(b))
}

func FuzzTree_InsertRemove(f *testing.F) {
	f.Add(uint8(3), uint8(1), uint8(9))
	f.Fuzz(func(t *testing.T, a, b, c uint8) {
		tr := newIntTree(Options{AllowMultiple: true, ConstantTimeSize: true})
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
		if !tr.Empty() {
			t.Fatalf("tree not empty after removing all items")
		}
	})
}
