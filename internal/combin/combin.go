// Package combin provides the small arithmetic/combinatorics helpers the
// bridge core treats as an external collaborator: popcount, trailing-zero,
// and binomial coefficients. None of this is bridge-specific.
package combin

// PopCount returns the number of set bits in x.
func PopCount(x uint64) int {
	count := 0
	for x != 0 {
		x &= x - 1
		count++
	}
	return count
}

// TrailingZero returns the index of the lowest set bit of x.
// The result is undefined for x == 0.
func TrailingZero(x uint64) int {
	if x == 0 {
		return 64
	}
	n := 0
	for x&1 == 0 {
		x >>= 1
		n++
	}
	return n
}

// Binomial returns C(n, k), the number of ways to choose k items from n.
// Used by the sampler for diagnostic deal-space-size estimates, never on
// the legality/move-generation hot path; n stays within the deck size (at
// most 52), so the standard multiplicative Pascal's-triangle computation
// below never risks uint64 overflow and needs no big-integer support.
func Binomial(n, k int) uint64 {
	if k < 0 || k > n || n < 0 {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := uint64(1)
	for i := 0; i < k; i++ {
		result = result * uint64(n-i) / uint64(i+1)
	}
	return result
}
