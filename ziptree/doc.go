// Package ziptree provides a generic, intrusive Zip Tree: a randomized
// balanced binary search tree (Tarjan, Levy & Timmel) that maintains
// balance via per-node ranks instead of explicit rotations or color bits.
//
// Like [github.com/mikenye/ygg/rbtree] and
// [github.com/mikenye/ygg/wbtree], ziptree does not allocate or own node
// storage: callers embed [Node] as the first field of their own item type.
// Each node's rank is drawn once at insertion by a [RankSource] — either
// [RandomRankSource] (expected O(log n) height, like treaps) or
// [HashedRankSource] (deterministic shape for a given insertion sequence, useful
// when multiple trees must agree on shape). Insertion "unzips" the
// existing subtree the new node displaces into two spines; removal "zips"
// a removed node's two children back together by rank priority.
//
// # Usage Example
//
//	type Item struct {
//		ziptree.Node
//		Key int
//	}
//
//	type itemTraits struct{}
//
//	func (itemTraits) Less(a, b *Item) bool { return a.Key < b.Key }
//
//	rng := rand.New(rand.NewSource(1))
//	tree := ziptree.New[Item](itemTraits{}, ziptree.NewRandomRankSource[Item](rng), ziptree.Options{})
//	tree.Insert(&Item{Key: 10})
//
// # Design decisions
//
// Rank ties on insert keep the existing node on top: descending past a
// node with a rank equal to the node being inserted is allowed (not just
// strictly greater ranks), at the root as well as below it, so the new
// node lands beneath every equal-rank node on its path, on whichever side
// its key selects. On removal, zip breaks a rank tie
// between the two candidate spines by merging in the left one first.
// Erase always performs a confirming Find before Remove, so its reported
// bool is never a guess.
package ziptree
