package dixonops

// Copyright (c) 2025 Colin McRae

import (
	"math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/predrag3141/dixon/numtheory"
)

// A FactorBase is the ascending list of distinct primes up to a smoothness
// bound, fixed for one factorization attempt on a given residue. It is
// immutable once built.
type FactorBase struct {
	Bound  uint32
	Primes []uint32
}

// NewFactorBase builds the factor base for n. A zero bound selects
// DefaultBound(n); callers pass a nonzero bound to override the heuristic
// or to escalate after relation collection fails.
func NewFactorBase(n *big.Int, bound uint32) (*FactorBase, error) {
	if n == nil || n.Cmp(two) < 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "cannot build a factor base for %v", n)
	}
	if bound == 0 {
		var err error
		bound, err = DefaultBound(n)
		if err != nil {
			return nil, err
		}
	}
	return &FactorBase{Bound: bound, Primes: numtheory.PrimesUpTo(bound)}, nil
}

// Size returns the number of primes in the factor base.
func (fb *FactorBase) Size() int {
	return len(fb.Primes)
}

// DefaultBound returns the smoothness bound ceil(exp(sqrt(ln n * ln ln n))),
// the standard sub-exponential heuristic balancing factor-base size against
// relation-collection cost. For very small n the returned bound can be
// below 2, which makes the factor base empty; callers fall back to trial
// division in that case.
func DefaultBound(n *big.Int) (uint32, error) {
	lnN := lnBig(n)
	if lnN <= 1 {
		// ln ln n is zero or negative; no bound balances anything here.
		return 1, nil
	}
	bound := math.Ceil(math.Exp(math.Sqrt(lnN * math.Log(lnN))))
	if bound >= math.MaxUint32 {
		return 0, errors.Errorf(
			"dixonops: smoothness bound %g for a %d-bit input exceeds the supported range",
			bound, n.BitLen(),
		)
	}
	return uint32(bound), nil
}

// lnBig returns the natural logarithm of n, remaining accurate past the
// float64 range by falling back to the bit length.
func lnBig(n *big.Int) float64 {
	f, _ := new(big.Float).SetInt(n).Float64()
	if !math.IsInf(f, 1) {
		return math.Log(f)
	}
	return float64(n.BitLen()) * math.Ln2
}
