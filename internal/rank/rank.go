// Package rank computes zip-tree node ranks, either by drawing from a
// geometric distribution or by hashing a node's key deterministically.
package rank

import (
	"math/bits"
	"math/rand"

	"github.com/zeebo/xxh3"
)

// Random draws a rank via repeated coin flips: the rank starts at 0 and
// increments for every consecutive "heads" toss, giving the geometric
// distribution a zip tree's ranks need to behave like a random BST's
// insertion order (expected O(log n) height).
func Random(rng *rand.Rand) int {
	r := 0
	for rng.Uint32()&1 == 1 {
		r++
	}
	return r
}

// Hashed derives a deterministic rank from data by hashing it with xxh3.
// When coefficient is nonzero, the hash is first "universalized" by
// multiplying it with the odd coefficient (a degree-1 multiply-mod
// universal hash family), guarding against adversarial key sequences
// that might otherwise correlate with xxh3's internal structure; when
// modulus is also nonzero the product is additionally reduced modulo
// it, otherwise the multiply's natural 64-bit wraparound serves as the
// modulus. The universalized (or raw) hash is then reduced to a rank
// via its count of leading zero bits, matching the shape of Random's
// output: smaller ranks are far more common than large ones.
//
// width clamps the hash to that many low bits before counting leading
// zeros, bounding every rank to [0, width]; width <= 0 or width > 64
// is treated as the full 64-bit word.
func Hashed(data []byte, coefficient, modulus uint64, width int) int {
	h := xxh3.Hash(data)
	if coefficient != 0 {
		h *= coefficient
		if modulus != 0 {
			h %= modulus
		}
	}
	if width <= 0 || width > 64 {
		width = 64
	}
	h &= (uint64(1) << uint(width)) - 1
	return bits.LeadingZeros64(h) - (64 - width)
}
