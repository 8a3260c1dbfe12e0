package rbtree

import "testing"

func TestColorString(t *testing.T) {
	if Black.String() != "⬛" {
		t.Errorf("Black.String() = %q, want ⬛", Black.String())
	}
	if Red.String() != "🟥" {
		t.Errorf("Red.String() = %q, want 🟥", Red.String())
	}
}

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
	if back.Key != 42 {
		t.Fatalf("back.Key = %d, want 42", back.Key)
	}
}
