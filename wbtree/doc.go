// Package wbtree provides a generic, intrusive, self-balancing
// Weight-Balanced Binary Search Tree (Hirai & Yamamoto).
//
// Like [github.com/mikenye/ygg/rbtree], wbtree does not allocate or own
// node storage: callers embed [Node] as the first field of their own item
// type and pass pointers to that type to [Tree]. Balance is tracked by
// subtree size rather than color, and is governed by a configurable (Δ, γ)
// parameter pair rather than a fixed rule; see [WBTOptions] and the preset
// values ([LaiWood31], [Balanced], [SuperBalanced], [Integral]).
//
// # Usage Example
//
//	type Item struct {
//		wbtree.Node
//		Key int
//	}
//
//	type itemTraits struct{}
//
//	func (itemTraits) Less(a, b *Item) bool { return a.Key < b.Key }
//
//	tree := wbtree.New[Item](itemTraits{}, wbtree.Options{}, wbtree.LaiWood31)
//	tree.Insert(&Item{Key: 10})
//
// # Limitations
//
// Not thread-safe. Ordering ties resolve consistently (descend right) but
// are otherwise unspecified unless Options.AllowMultiple is false.
package wbtree
