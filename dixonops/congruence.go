package dixonops

// Copyright (c) 2025 Colin McRae

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/predrag3141/dixon/numtheory"
)

// A Congruence is a pair of integers x, y with x^2 = y^2 (mod n), the raw
// material for divisor candidates gcd(x+y, n) and gcd(x-y, n).
type Congruence struct {
	X, Y *big.Int
}

// ExtractCongruence combines the selected relations of the set into a
// congruence of squares mod n: x is the product of the selected z values
// and y is the product of primes[i]^(sum of exponents / 2), both reduced
// mod n. The selection must come from FindDependency on the set's parity
// vectors (or be the single relation of an all-even set), which is what
// makes every summed exponent even; an odd sum is reported as an error
// because it means the selection and the set do not belong together.
func ExtractCongruence(set *RelationSet, selection []int, fb *FactorBase, n *big.Int) (*Congruence, error) {
	if len(selection) == 0 {
		return nil, errors.Errorf("dixonops: cannot extract a congruence from an empty selection")
	}

	x := big.NewInt(1)
	summedExponents := make([]int, fb.Size())
	for _, index := range selection {
		if (index < 0) || (len(set.Relations) <= index) {
			return nil, errors.Errorf(
				"dixonops: selection index %d is not in {0,...,%d}", index, len(set.Relations)-1,
			)
		}
		relation := set.Relations[index]
		x.Mul(x, relation.Z)
		x.Mod(x, n)
		for j, e := range relation.Exponents {
			summedExponents[j] += e
		}
	}

	y := big.NewInt(1)
	p, power := new(big.Int), new(big.Int)
	for j, e := range summedExponents {
		if e%2 != 0 {
			return nil, errors.Errorf(
				"dixonops: combined exponent %d of prime %d is odd; the selection is not a dependency",
				e, fb.Primes[j],
			)
		}
		if e == 0 {
			continue
		}
		p.SetUint64(uint64(fb.Primes[j]))
		power.Exp(p, big.NewInt(int64(e/2)), n)
		y.Mul(y, power)
		y.Mod(y, n)
	}
	return &Congruence{X: x, Y: y}, nil
}

// ProperDivisors tests gcd(x+y, n) and gcd(x-y, n) and returns those that
// are proper divisors of n, strictly between 1 and n. The result has 0, 1
// or 2 elements; an empty result is the trivial-congruence outcome, a
// signal to retry with different relations rather than an error.
func (c *Congruence) ProperDivisors(n *big.Int) []*big.Int {
	sum := new(big.Int).Add(c.X, c.Y)
	difference := new(big.Int).Sub(c.X, c.Y)

	var divisors []*big.Int
	for _, candidate := range []*big.Int{sum, difference} {
		d := numtheory.GCD(candidate, n)
		if (d.Cmp(one) <= 0) || (d.Cmp(n) >= 0) {
			continue
		}
		if (len(divisors) == 1) && (divisors[0].Cmp(d) == 0) {
			continue
		}
		divisors = append(divisors, d)
	}
	return divisors
}
