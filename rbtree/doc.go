// Package rbtree provides a generic, intrusive, self-balancing Red-Black
// Binary Search Tree.
//
// Unlike a key-value store, rbtree does not allocate or own node storage.
// Callers embed [Node] as the first field of their own item type and pass
// pointers to that type directly to [Tree]. The tree links and unlinks the
// caller's existing structs; it never copies or frees them. This matches
// the "intrusive container" contract: the caller guarantees an item
// outlives its membership in the tree.
//
// # Key Features
//
//   - Self-balancing: O(log n) insertions, deletions, and lookups, enforced
//     via the classic CLRS Red-Black rules (no two consecutive red nodes,
//     equal black-height on every root-to-leaf path).
//   - Intrusive: zero node allocation; the tree borrows the caller's memory
//     for the duration of membership.
//   - Observable: an optional [Observer] is notified of every rotation and
//     insert/remove, which [github.com/mikenye/ygg/dst] uses to keep
//     augmenting combiners consistent.
//
// # Usage Example
//
//	type Item struct {
//		rbtree.Node
//		Key int
//	}
//
//	type itemTraits struct{}
//
//	func (itemTraits) Less(a, b *Item) bool { return a.Key < b.Key }
//
//	tree := rbtree.New[Item](itemTraits{}, rbtree.Options{})
//	tree.Insert(&Item{Key: 10})
//	node, found := tree.Find(&Item{Key: 10})
//
// # Limitations
//
//   - Not thread-safe; requires external synchronization for concurrent use.
//   - Ordering ties are broken consistently (new nodes compare equal
//     descend right) but are otherwise undefined unless Options.AllowMultiple
//     is false, in which case equal keys are rejected by Insert.
package rbtree
