package dixonops

// Copyright (c) 2025 Colin McRae

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/predrag3141/dixon/conf"
	"github.com/predrag3141/dixon/util"
)

func TestCollectRelations(t *testing.T) {
	n := big.NewInt(13195)
	fb, err := NewFactorBase(n, 0)
	require.NoError(t, err)
	params := conf.DefaultParams()

	set, err := CollectRelations(n, fb, &params, nil)
	require.NoError(t, err)

	if set.AllEven {
		require.Len(t, set.Relations, 1)
	} else {
		require.Len(t, set.Relations, fb.Size()+1)
	}

	lower := big.NewInt(115) // ceil(sqrt(13195))
	seen := make(map[string]bool)
	for _, relation := range set.Relations {
		// Sampled from [ceil(sqrt(n)), n), each z at most once.
		require.True(t, lower.Cmp(relation.Z) <= 0)
		require.True(t, relation.Z.Cmp(n) < 0)
		require.False(t, seen[relation.Z.String()], "duplicate z = %v", relation.Z)
		seen[relation.Z.String()] = true

		// Each relation reconstructs z^2 mod n exactly.
		expected := new(big.Int).Mul(relation.Z, relation.Z)
		expected.Mod(expected, n)
		actual, err := util.PrimePowerProduct(fb.Primes, relation.Exponents)
		require.NoError(t, err)
		require.Equal(t, expected.String(), actual.String())
	}
}

func TestCollectRelationsSingleWorker(t *testing.T) {
	n := big.NewInt(13195)
	fb, err := NewFactorBase(n, 0)
	require.NoError(t, err)
	params := conf.DefaultParams()
	params.SampleWorkers = 1

	set, err := CollectRelations(n, fb, &params, nil)
	require.NoError(t, err)
	require.NotEmpty(t, set.Relations)
}

func TestCollectRelationsExhaustion(t *testing.T) {
	// With a factor base of {2, 3} and a semiprime of two 7-digit primes,
	// smooth candidates are essentially nonexistent, so a small attempt
	// budget must exhaust rather than loop.
	n := new(big.Int).Mul(big.NewInt(1000003), big.NewInt(1000033))
	fb, err := NewFactorBase(n, 3)
	require.NoError(t, err)
	params := conf.DefaultParams()
	params.RelationAttempts = 50

	_, err = CollectRelations(n, fb, &params, nil)
	require.True(t, errors.Is(err, ErrRelationExhaustion), "got %v", err)
}

func TestCollectRelationsEmptyBase(t *testing.T) {
	n := big.NewInt(13195)
	fb := &FactorBase{Bound: 1}
	params := conf.DefaultParams()
	_, err := CollectRelations(n, fb, &params, nil)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrRelationExhaustion))
}

func TestRelationParityVector(t *testing.T) {
	relation := Relation{Z: big.NewInt(7), Exponents: []int{2, 1, 0, 3}}
	require.Equal(t, []int{0, 1, 0, 1}, relation.ParityVector())
	require.False(t, relation.AllEven())

	relation = Relation{Z: big.NewInt(4), Exponents: []int{2, 0, 4, 0}}
	require.Equal(t, []int{0, 0, 0, 0}, relation.ParityVector())
	require.True(t, relation.AllEven())
}
