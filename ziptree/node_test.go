package ziptree

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

func TestNodeDepth(t *testing.T) {
	root := &rawItem{Key: 1}
	child := &rawItem{Key: 2}
	nodeOf(child).parent = nodeOf(root)
	if nodeOf(root).Depth() != 0 {
		t.Fatalf("root depth = %d, want 0", nodeOf(root).Depth())
	}
	if nodeOf(child).Depth() != 1 {
		t.Fatalf("child depth = %d, want 1", nodeOf(child).Depth())
	}
}
