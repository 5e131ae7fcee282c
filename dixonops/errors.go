package dixonops

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidInput reports an input outside the domain of the
	// factorizer: nil, or an integer below 2. It is fatal and never
	// retried.
	ErrInvalidInput = errors.New("dixonops: input must be an integer >= 2")

	// ErrRelationExhaustion reports that relation collection could not
	// find a new smooth candidate within its attempt budget. The
	// orchestrator recovers by doubling the smoothness bound until its
	// escalation budget runs out.
	ErrRelationExhaustion = errors.New("dixonops: relation collection exhausted its attempt budget")

	// ErrTrivialCongruence reports that every congruence of squares
	// attempted on a residue yielded only the divisors 1 and n. Single
	// trivial congruences are expected and retried; this error surfaces
	// only once the retry budget is spent.
	ErrTrivialCongruence = errors.New("dixonops: congruence extraction yielded only trivial divisors")
)

// An ExhaustedError is the terminal failure of a factorization run: every
// retry budget was spent on some residue. It carries the prime factors
// already discovered and the residue that could not be resolved; the product
// of Factors and Residue (with multiplicity) equals the original input.
type ExhaustedError struct {
	Residue *big.Int
	Factors []*big.Int
	Reason  error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf(
		"dixonops: could not resolve residue %v (%d factors found): %v",
		e.Residue, len(e.Factors), e.Reason,
	)
}

// Unwrap exposes the budget that ran out, so callers can test the failure
// kind with errors.Is.
func (e *ExhaustedError) Unwrap() error {
	return e.Reason
}
