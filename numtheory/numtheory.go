// Package numtheory supplies the integer primitives the Dixon core consumes:
// probable primality, gcd, prime generation up to a bound, uniform random
// sampling in a range, integer roots, and a bounded trial-division fallback
// for residues too small to be worth a factor base.
package numtheory

// Copyright (c) 2025 Colin McRae

import (
	"crypto/rand"
	"math"
	"math/big"

	"github.com/cznic/mathutil"
	"github.com/pkg/errors"
)

// millerRabinRounds is the number of Miller-Rabin rounds behind
// IsProbablePrime. At 40 rounds the error probability is below 4^-40,
// negligible for the input sizes this module targets.
const millerRabinRounds = 40

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// IsProbablePrime reports whether x is prime. The answer is exact for
// x < 2^64 and probabilistic (with negligible error) above that.
func IsProbablePrime(x *big.Int) bool {
	return x.ProbablyPrime(millerRabinRounds)
}

// GCD returns the non-negative greatest common divisor of a and b,
// with GCD(0, n) = |n|.
func GCD(a, b *big.Int) *big.Int {
	absA := new(big.Int).Abs(a)
	absB := new(big.Int).Abs(b)
	if absA.Sign() == 0 {
		return absB
	}
	if absB.Sign() == 0 {
		return absA
	}
	return new(big.Int).GCD(nil, nil, absA, absB)
}

// PrimesUpTo returns all primes p with p <= bound, in ascending order.
// The returned slice is empty for bound < 2.
func PrimesUpTo(bound uint32) []uint32 {
	if bound < 2 {
		return nil
	}
	primes := []uint32{2}
	for p, ok := mathutil.NextPrime(2); ok && p <= bound; p, ok = mathutil.NextPrime(p) {
		primes = append(primes, p)
	}
	return primes
}

// RandomInRange returns a uniform random integer z with lo <= z < hi.
func RandomInRange(lo, hi *big.Int) (*big.Int, error) {
	width := new(big.Int).Sub(hi, lo)
	if width.Sign() <= 0 {
		return nil, errors.Errorf(
			"numtheory: RandomInRange called with empty range [%v, %v)", lo, hi,
		)
	}
	offset, err := rand.Int(rand.Reader, width)
	if err != nil {
		return nil, errors.WithMessage(err, "numtheory: could not draw a random integer")
	}
	return offset.Add(offset, lo), nil
}

// FloorSqrt returns the largest x with x*x <= n. n must be non-negative.
func FloorSqrt(n *big.Int) *big.Int {
	return mathutil.SqrtBig(n)
}

// CeilSqrt returns the smallest x with x*x >= n. n must be non-negative.
func CeilSqrt(n *big.Int) *big.Int {
	x := mathutil.SqrtBig(n)
	square := new(big.Int).Mul(x, x)
	if square.Cmp(n) < 0 {
		x.Add(x, one)
	}
	return x
}

// PerfectPower reports whether n = m^e for some integer m and exponent
// e >= 2, returning the smallest such exponent's base. n must be >= 2.
func PerfectPower(n *big.Int) (*big.Int, int, bool) {
	maxExponent := n.BitLen() // 2^BitLen > n, so larger exponents cannot work
	for e := 2; e <= maxExponent; e++ {
		root, exact := iroot(n, e)
		if root.Cmp(two) < 0 {
			break
		}
		if exact {
			return root, e, true
		}
	}
	return nil, 0, false
}

// iroot returns the floor of the e-th root of n, and whether the root is
// exact, by binary search. n must be >= 1 and e >= 1.
func iroot(n *big.Int, e int) (*big.Int, bool) {
	if e == 1 {
		return new(big.Int).Set(n), true
	}
	if e == 2 {
		root := mathutil.SqrtBig(n)
		square := new(big.Int).Mul(root, root)
		return root, square.Cmp(n) == 0
	}
	bigE := big.NewInt(int64(e))
	lo := big.NewInt(1)
	hi := new(big.Int).Lsh(one, uint(n.BitLen()/e)+1) // hi^e > n
	mid, power := new(big.Int), new(big.Int)
	for new(big.Int).Sub(hi, lo).Cmp(one) > 0 {
		mid.Add(lo, hi)
		mid.Rsh(mid, 1)
		power.Exp(mid, bigE, nil)
		switch power.Cmp(n) {
		case 0:
			return new(big.Int).Set(mid), true
		case -1:
			lo.Set(mid)
		default:
			hi.Set(mid)
		}
	}
	power.Exp(lo, bigE, nil)
	return new(big.Int).Set(lo), power.Cmp(n) == 0
}

// TrialDivide factors n >= 2 completely by trial division, returning its
// prime factors in ascending order with multiplicity. Word-sized inputs are
// delegated to mathutil; the cost is O(sqrt(n)) divisions otherwise, so
// callers reserve this for residues no factor base can serve.
func TrialDivide(n *big.Int) ([]*big.Int, error) {
	if n.Cmp(two) < 0 {
		return nil, errors.Errorf("numtheory: TrialDivide called with %v < 2", n)
	}
	if n.IsUint64() && n.Uint64() <= math.MaxUint32 {
		var factors []*big.Int
		for _, term := range mathutil.FactorInt(uint32(n.Uint64())) {
			for i := uint32(0); i < term.Power; i++ {
				factors = append(factors, new(big.Int).SetUint64(uint64(term.Prime)))
			}
		}
		return factors, nil
	}

	var factors []*big.Int
	residue := new(big.Int).Set(n)
	divisor := big.NewInt(2)
	quotient, remainder := new(big.Int), new(big.Int)
	for !IsProbablePrime(residue) {
		limit := FloorSqrt(residue)
		for divisor.Cmp(limit) <= 0 {
			quotient.QuoRem(residue, divisor, remainder)
			if remainder.Sign() == 0 {
				break
			}
			if divisor.Bit(0) == 0 {
				divisor.Add(divisor, one)
			} else {
				divisor.Add(divisor, two)
			}
		}
		factors = append(factors, new(big.Int).Set(divisor))
		residue.Set(quotient)
	}
	factors = append(factors, residue)
	return factors, nil
}
