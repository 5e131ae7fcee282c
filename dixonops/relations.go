package dixonops

// Copyright (c) 2025 Colin McRae

import (
	"context"
	"math/big"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/predrag3141/dixon/conf"
	"github.com/predrag3141/dixon/numtheory"
)

// attemptsPerRelation scales the default sampling budget: collection may
// spend this many candidates per relation it needs before giving up.
const attemptsPerRelation = 1000

// A RelationSet holds the relations accepted for one residue, in insertion
// order. Each sampled z contributes at most one relation. When AllEven is
// set, the set holds exactly one relation whose exponent vector is entirely
// even -- the fast path that needs no linear algebra.
type RelationSet struct {
	Relations []Relation
	AllEven   bool
}

// relationPool is the mutex-guarded state shared by the sampling workers.
// The duplicate-z check, the all-even short circuit and the size check are
// atomic with respect to insertion, so exactly one worker wins each of
// those races.
type relationPool struct {
	mu        sync.Mutex
	relations []Relation
	seen      map[string]struct{}
	target    int
	allEven   int // index of an all-even relation, or -1
	attempts  int64
	budget    int64
	done      bool
}

// spendAttempt consumes one unit of the sampling budget, returning false
// once the pool is complete and an error once the budget is gone.
func (pool *relationPool) spendAttempt() (bool, error) {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	if pool.done {
		return false, nil
	}
	if pool.attempts >= pool.budget {
		return false, errors.Wrapf(
			ErrRelationExhaustion,
			"%d of %d relations found within %d attempts",
			len(pool.relations), pool.target, pool.budget,
		)
	}
	pool.attempts++
	return true, nil
}

// add inserts a relation unless its z is already present, and marks the
// pool done when the relation is all-even or the target count is reached.
// It reports whether the relation was inserted, along with the resulting
// relation count.
func (pool *relationPool) add(relation Relation) (bool, int) {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	if pool.done {
		return false, len(pool.relations)
	}
	key := relation.Z.String()
	if _, duplicate := pool.seen[key]; duplicate {
		return false, len(pool.relations)
	}
	pool.seen[key] = struct{}{}
	pool.relations = append(pool.relations, relation)
	if relation.AllEven() {
		pool.allEven = len(pool.relations) - 1
		pool.done = true
	} else if len(pool.relations) >= pool.target {
		pool.done = true
	}
	return true, len(pool.relations)
}

// CollectRelations samples candidates z uniformly from [ceil(sqrt(n)), n)
// and tests each for smoothness over fb until either one relation with an
// all-even exponent vector appears, or the set holds fb.Size()+1 relations,
// enough to guarantee a GF(2) dependency by pigeonhole. Sampling runs on
// params.SampleWorkers goroutines.
//
// CollectRelations returns an error wrapping ErrRelationExhaustion when no
// completing relation appears within the attempt budget, which prevents an
// infinite loop on inputs whose smooth candidates are too rare for the
// current bound.
func CollectRelations(n *big.Int, fb *FactorBase, params *conf.Params, obs Observer) (*RelationSet, error) {
	if fb.Size() == 0 {
		return nil, errors.Errorf(
			"dixonops: cannot collect relations over an empty factor base (bound %d)", fb.Bound,
		)
	}
	lower := numtheory.CeilSqrt(n)
	if lower.Cmp(n) >= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "sampling range [%v, %v) is empty", lower, n)
	}

	target := fb.Size() + 1
	budget := params.RelationAttempts
	if budget <= 0 {
		budget = attemptsPerRelation * int64(target)
	}
	pool := &relationPool{
		seen:    make(map[string]struct{}),
		target:  target,
		allEven: -1,
		budget:  budget,
	}

	workers := params.SampleWorkers
	if workers < 1 {
		workers = 1
	}
	group, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		group.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				default:
				}
				ok, err := pool.spendAttempt()
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				z, err := numtheory.RandomInRange(lower, n)
				if err != nil {
					return err
				}
				exponents, smooth := TestSmoothness(z, n, fb)
				if !smooth {
					continue
				}
				if inserted, count := pool.add(Relation{Z: z, Exponents: exponents}); inserted {
					emit(obs, Event{
						Kind:      RelationAccepted,
						Residue:   n,
						Z:         z,
						Relations: count,
					})
				}
			}
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	set := &RelationSet{}
	if pool.allEven >= 0 {
		set.Relations = []Relation{pool.relations[pool.allEven]}
		set.AllEven = true
	} else {
		set.Relations = pool.relations
	}
	emit(obs, Event{Kind: CollectionFinished, Residue: n, Relations: len(set.Relations)})
	return set, nil
}
