package dixonops

// Copyright (c) 2025 Colin McRae

import (
	"math/big"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// A Relation records a sampled integer z together with the exponent vector
// of z^2 mod n over a factor base: z^2 mod n = prod primes[i]^Exponents[i].
// Exponents is indexed in the ascending prime order of the factor base.
type Relation struct {
	Z         *big.Int
	Exponents []int
}

// ParityVector returns the exponent vector reduced coordinate-wise mod 2.
// It is used only for the dependency search, never to rebuild magnitudes.
func (r *Relation) ParityVector() []int {
	parity := make([]int, len(r.Exponents))
	for i, e := range r.Exponents {
		parity[i] = e % 2
	}
	return parity
}

// AllEven reports whether every exponent of the relation is even. A single
// such relation already yields a congruence of squares without any linear
// algebra.
func (r *Relation) AllEven() bool {
	for _, e := range r.Exponents {
		if e%2 != 0 {
			return false
		}
	}
	return true
}

// TestSmoothness computes t = z^2 mod n and attempts to factor t completely
// over the factor base, dividing out each prime from the largest downward
// while it divides t. On success it returns the exponent vector of t; if
// the primes are exhausted while t > 1 it reports non-smoothness. The case
// t == 0 (n divides z^2) is also reported non-smooth: no exponent vector
// over the base reconstructs zero.
//
// This is a single descending pass over the factor base, not trial division
// against all primes below sqrt(t). It is a pure function.
func TestSmoothness(z, n *big.Int, fb *FactorBase) ([]int, bool) {
	t := new(big.Int).Mul(z, z)
	t.Mod(t, n)
	if t.Sign() == 0 {
		return nil, false
	}
	if t.IsUint64() {
		return testSmoothnessUint64(t.Uint64(), fb)
	}

	exponents := make([]int, fb.Size())
	quotient, remainder, p := new(big.Int), new(big.Int), new(big.Int)
	for i := fb.Size() - 1; (0 <= i) && (t.Cmp(one) > 0); i-- {
		p.SetUint64(uint64(fb.Primes[i]))
		for {
			quotient.QuoRem(t, p, remainder)
			if remainder.Sign() != 0 {
				break
			}
			t.Set(quotient)
			exponents[i]++

			// Once t fits in a word, finish with native divisions.
			if t.IsUint64() {
				tail, smooth := testSmoothnessTailUint64(t.Uint64(), fb, i)
				if !smooth {
					return nil, false
				}
				for j := 0; j <= i; j++ {
					exponents[j] += tail[j]
				}
				return exponents, true
			}
		}
	}
	if t.Cmp(one) != 0 {
		return nil, false
	}
	return exponents, true
}

// testSmoothnessUint64 is TestSmoothness for a residue already known to fit
// in a word, which is the common case for the input sizes this module
// targets.
func testSmoothnessUint64(t uint64, fb *FactorBase) ([]int, bool) {
	exponents, smooth := testSmoothnessTailUint64(t, fb, fb.Size()-1)
	if !smooth {
		return nil, false
	}
	return exponents, true
}

// testSmoothnessTailUint64 divides t by the primes at indices from..0 of the
// factor base, largest first, returning the exponents it recorded and
// whether t reached 1.
func testSmoothnessTailUint64(t uint64, fb *FactorBase, from int) ([]int, bool) {
	exponents := make([]int, fb.Size())
	for i := from; (0 <= i) && (t > 1); i-- {
		p := uint64(fb.Primes[i])
		for t%p == 0 {
			t /= p
			exponents[i]++
		}
	}
	if t != 1 {
		return nil, false
	}
	return exponents, true
}
