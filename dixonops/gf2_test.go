package dixonops

// Copyright (c) 2025 Colin McRae

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/predrag3141/dixon/util"
)

func TestFindDependencyKnownCases(t *testing.T) {
	// Two equal rows cancel; the third is never needed.
	selection, err := FindDependency([][]int{
		{1, 0},
		{1, 0},
		{0, 1},
	})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, selection)

	// A zero row is a dependency by itself.
	selection, err = FindDependency([][]int{
		{1, 1, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)
	require.Equal(t, []int{1}, selection)

	// Rows 0, 1, 2 sum to zero; row 3 is untouched.
	selection, err = FindDependency([][]int{
		{1, 1, 0},
		{0, 1, 1},
		{1, 0, 1},
		{1, 1, 1},
	})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, selection)

	// Exponent vectors are accepted as-is: only parity matters.
	selection, err = FindDependency([][]int{
		{3, 2},
		{1, 4},
	})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, selection)

	// Zero-length vectors are vacuously dependent.
	selection, err = FindDependency([][]int{{}})
	require.NoError(t, err)
	require.Equal(t, []int{0}, selection)
}

func TestFindDependencyErrors(t *testing.T) {
	_, err := FindDependency(nil)
	require.Error(t, err)

	// Independent rows with m <= k have no dependency.
	_, err = FindDependency([][]int{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})
	require.Error(t, err)

	// Mismatched vector lengths are rejected.
	_, err = FindDependency([][]int{
		{1, 0},
		{1, 0, 1},
	})
	require.Error(t, err)
}

// TestFindDependencyGuarantee checks the pigeonhole property: any k+1
// vectors of length k yield a nonempty dependency, verified independently
// by multiplying the selection vector against the parity matrix over GF(2).
func TestFindDependencyGuarantee(t *testing.T) {
	const (
		numTests = 200
		maxK     = 70
		seed     = 24601
	)

	rng := rand.New(rand.NewSource(seed))
	for test := 0; test < numTests; test++ {
		k := 1 + rng.Intn(maxK)
		m := k + 1
		parityVectors := make([][]int, m)
		flat := make([]int, 0, m*k)
		for i := 0; i < m; i++ {
			parityVectors[i] = make([]int, k)
			for j := 0; j < k; j++ {
				parityVectors[i][j] = rng.Intn(2)
			}
			flat = append(flat, parityVectors[i]...)
		}

		selection, err := FindDependency(parityVectors)
		require.NoError(t, err)
		require.NotEmpty(t, selection)

		selectionRow, err := util.SelectionVector(selection, m)
		require.NoError(t, err)
		combined, err := util.MultiplyGF2(selectionRow, flat, m)
		require.NoError(t, err)
		for j := 0; j < k; j++ {
			require.Zerof(
				t, combined[j],
				"test %d: selected rows do not cancel in column %d", test, j,
			)
		}
	}
}

// TestFindDependencyDeterministic checks that the same vectors in the same
// order always yield the same dependency.
func TestFindDependencyDeterministic(t *testing.T) {
	const (
		numRepeats = 10
		k          = 40
		seed       = 1729
	)

	rng := rand.New(rand.NewSource(seed))
	parityVectors := make([][]int, k+1)
	for i := range parityVectors {
		parityVectors[i] = make([]int, k)
		for j := 0; j < k; j++ {
			parityVectors[i][j] = rng.Intn(2)
		}
	}

	first, err := FindDependency(parityVectors)
	require.NoError(t, err)
	for repeat := 0; repeat < numRepeats; repeat++ {
		again, err := FindDependency(parityVectors)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}
