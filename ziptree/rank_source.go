package ziptree

import (
	"math/rand"

	"github.com/mikenye/ygg/internal/rank"
)

// RankSource assigns a zip rank to an item when it is inserted.
type RankSource[T any] interface {
	Rank(item *T) int
}

// RandomRankSource draws ranks from a geometric distribution via rng,
// matching a classic randomized zip tree.
type RandomRankSource[T any] struct {
	rng *rand.Rand
}

// NewRandomRankSource wraps rng (or a freshly seeded generator, if rng is
// nil) as a [RankSource].
func NewRandomRankSource[T any](rng *rand.Rand) *RandomRankSource[T] {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &RandomRankSource[T]{rng: rng}
}

func (s *RandomRankSource[T]) Rank(_ *T) int { return rank.Random(s.rng) }

// HashedRankSource derives a deterministic rank from an item's key bytes,
// making tree shape reproducible across runs for the same insertion
// sequence (useful for tests and for multiple trees over the same keys
// that must agree on shape).
type HashedRankSource[T any] struct {
	// KeyBytes extracts the bytes to hash for item.
	KeyBytes func(item *T) []byte
	// Coefficient, if nonzero, universalizes the hash via a multiply-mod
	// step before reducing it to a rank; see [rank.Hashed]. Must be odd
	// when nonzero.
	Coefficient uint64
	// Modulus is the modulus used with Coefficient; ignored when
	// Coefficient is 0.
	Modulus uint64
	// RankWidth clamps every derived rank to [0, RankWidth] by counting
	// leading zero bits within only that many low bits of the hash,
	// instead of the full 64-bit word. Zero (or a value above 64) means
	// the full 64-bit word.
	RankWidth int
}

func (s *HashedRankSource[T]) Rank(item *T) int {
	return rank.Hashed(s.KeyBytes(item), s.Coefficient, s.Modulus, s.RankWidth)
}
