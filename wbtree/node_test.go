package wbtree

import "testing"

type rawItem struct {
	Node
	Key int
}

func TestNodeItemRoundTrip(t *testing.T) {
	item := &rawItem{Key: 42}
	n := nodeOf(item)
	back := itemOf[rawItem](n)
	if back != item {
		t.Fatalf("itemOf(nodeOf(item)) = %p, want %p", back, item)
	}
}
