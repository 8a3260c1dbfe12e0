package wbtree

import "unsafe"

// Node is the intrusive linkage a caller embeds, by value, as the *first*
// field of its own item type to give that type membership in a Tree:
//
//	type Interval struct {
//		wbtree.Node
//		Lo, Hi float64
//	}
//
// size is the number of real nodes in the subtree rooted at this node
// (including the node itself); it is the weight-balance metadata that
// drives rebalancing.
//
// Embedding Node anywhere other than as the first field is undefined
// behavior: the tree recovers the owning item from a *Node (and vice
// versa) with an unsafe, offset-zero pointer cast.
type Node struct {
	parent, left, right *Node
	size                int
}

// nodeOf recovers the intrusive *Node embedded in item. item must not be nil.
func nodeOf[T any](item *T) *Node {
	return (*Node)(unsafe.Pointer(item))
}

// itemOf recovers the owning *T from one of its intrusive *Node links. n must
// not be nil and must not be a tree's sentinel.
func itemOf[T any](n *Node) *T {
	return (*T)(unsafe.Pointer(n))
}
