package dixonops

// Copyright (c) 2025 Colin McRae

import (
	"math"
	"math/big"
	"sort"

	"github.com/pkg/errors"

	"github.com/predrag3141/dixon/conf"
	"github.com/predrag3141/dixon/numtheory"
)

// Factorize factors n >= 2 into primes using Dixon's random-squares method
// with default parameters, returning the prime factors in ascending order
// with multiplicity.
func Factorize(n *big.Int) ([]*big.Int, error) {
	params := conf.DefaultParams()
	return FactorizeWithParams(n, &params, nil)
}

// FactorizeWithParams is Factorize with explicit parameters and an optional
// observer. A nil params selects the defaults; a nil observer disables
// observation. On terminal failure the returned error is an
// *ExhaustedError carrying the factors found so far and the residue that
// could not be resolved.
func FactorizeWithParams(n *big.Int, params *conf.Params, obs Observer) ([]*big.Int, error) {
	if n == nil {
		return nil, errors.Wrap(ErrInvalidInput, "got nil")
	}
	if n.Cmp(two) < 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "got %v", n)
	}
	if params == nil {
		defaults := conf.DefaultParams()
		params = &defaults
	}
	f := &factorizer{params: params, obs: obs}
	factors, err := f.factorResidue(new(big.Int).Set(n))
	if err != nil {
		return nil, err
	}
	sort.Slice(factors, func(i, j int) bool { return factors[i].Cmp(factors[j]) < 0 })
	return factors, nil
}

// A factorizer carries the run-wide configuration through the recursion.
// All per-residue state (factor base, relation set) is local to one
// findDivisor call; sibling residues share nothing.
type factorizer struct {
	params *conf.Params
	obs    Observer
}

// factorResidue reduces one residue completely to primes, recursing on the
// two sides of each divisor it finds.
func (f *factorizer) factorResidue(residue *big.Int) ([]*big.Int, error) {
	if residue.Cmp(one) == 0 {
		return nil, nil
	}
	if numtheory.IsProbablePrime(residue) {
		return []*big.Int{new(big.Int).Set(residue)}, nil
	}

	// Dixon's method cannot split a prime power: mod p^k every congruence
	// of squares with p not dividing y has x = +/-y, so the gcd candidates
	// are always 1 or n. Peel perfect powers off here instead.
	if base, exponent, ok := numtheory.PerfectPower(residue); ok {
		baseFactors, err := f.factorResidue(base)
		if err != nil {
			remaining := new(big.Int).Exp(base, big.NewInt(int64(exponent-1)), nil)
			return nil, foldUnresolved(err, remaining)
		}
		factors := make([]*big.Int, 0, exponent*len(baseFactors))
		for i := 0; i < exponent; i++ {
			for _, factor := range baseFactors {
				factors = append(factors, new(big.Int).Set(factor))
			}
		}
		return factors, nil
	}

	divisor, err := f.findDivisor(residue)
	if err != nil {
		return nil, err
	}
	cofactor := new(big.Int).Quo(residue, divisor)

	left, err := f.factorResidue(divisor)
	if err != nil {
		return nil, foldUnresolved(err, cofactor)
	}
	right, err := f.factorResidue(cofactor)
	if err != nil {
		return nil, foldFound(err, left)
	}
	return append(left, right...), nil
}

// findDivisor produces one proper divisor of a composite, non-power
// residue, escalating the smoothness bound when relation collection runs
// dry.
func (f *factorizer) findDivisor(residue *big.Int) (*big.Int, error) {
	bound := f.params.SmoothnessBound
	var lastErr error
	for escalation := 0; escalation <= f.params.BoundEscalations; escalation++ {
		fb, err := NewFactorBase(residue, bound)
		if err != nil {
			return nil, err
		}
		bound = fb.Bound
		if escalation > 0 {
			emit(f.obs, Event{Kind: BoundEscalated, Residue: residue, Bound: bound})
		}

		if fb.Size() == 0 {
			// Degenerate factor base: the bound produced no primes at
			// all, which only happens for tiny residues. Bounded trial
			// division settles those.
			factors, err := numtheory.TrialDivide(residue)
			if err != nil {
				return nil, err
			}
			return factors[0], nil
		}

		divisor, err := f.findDivisorWithBase(residue, fb)
		if err == nil {
			return divisor, nil
		}
		if !errors.Is(err, ErrRelationExhaustion) {
			return nil, err
		}
		lastErr = err
		if bound > math.MaxUint32/2 {
			break
		}
		bound *= 2
	}
	return nil, &ExhaustedError{Residue: new(big.Int).Set(residue), Reason: lastErr}
}

// findDivisorWithBase runs the collect / solve / extract cycle over one
// factor base until a congruence yields a proper divisor or the
// trivial-congruence retry budget runs out.
func (f *factorizer) findDivisorWithBase(residue *big.Int, fb *FactorBase) (*big.Int, error) {
	for attempt := 0; attempt <= f.params.TrivialRetries; attempt++ {
		set, err := CollectRelations(residue, fb, f.params, f.obs)
		if err != nil {
			return nil, err
		}

		var selection []int
		if set.AllEven {
			// One relation with an all-even exponent vector is already a
			// congruence of squares; skip the linear algebra.
			selection = []int{0}
		} else {
			parityVectors := make([][]int, len(set.Relations))
			for i := range set.Relations {
				parityVectors[i] = set.Relations[i].ParityVector()
			}
			selection, err = FindDependency(parityVectors)
			if err != nil {
				return nil, err
			}
			emit(f.obs, Event{Kind: DependencyFound, Residue: residue, Selection: selection})
		}

		congruence, err := ExtractCongruence(set, selection, fb, residue)
		if err != nil {
			return nil, err
		}
		emit(f.obs, Event{
			Kind: CongruenceExtracted, Residue: residue, X: congruence.X, Y: congruence.Y,
		})

		divisors := congruence.ProperDivisors(residue)
		if len(divisors) > 0 {
			emit(f.obs, Event{Kind: DivisorFound, Residue: residue, Divisor: divisors[0]})
			return divisors[0], nil
		}
		emit(f.obs, Event{Kind: TrivialCongruence, Residue: residue})
	}
	return nil, &ExhaustedError{
		Residue: new(big.Int).Set(residue),
		Reason: errors.Wrapf(
			ErrTrivialCongruence, "%d consecutive attempts", f.params.TrivialRetries+1,
		),
	}
}

// foldUnresolved multiplies an unfactored sibling residue into a terminal
// failure, preserving the invariant that the error's Factors times its
// Residue equals the original input.
func foldUnresolved(err error, sibling *big.Int) error {
	var exhausted *ExhaustedError
	if errors.As(err, &exhausted) {
		exhausted.Residue = new(big.Int).Mul(exhausted.Residue, sibling)
	}
	return err
}

// foldFound appends already-discovered prime factors into a terminal
// failure on the way up the recursion.
func foldFound(err error, factors []*big.Int) error {
	var exhausted *ExhaustedError
	if errors.As(err, &exhausted) {
		exhausted.Factors = append(exhausted.Factors, factors...)
	}
	return err
}
