package util

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math/big"
)

// CopyIntToParity converts an exponent vector to its parity vector,
// reducing each coordinate mod 2.
func CopyIntToParity(input []int) []int {
	retVal := make([]int, len(input))
	for i := 0; i < len(input); i++ {
		retVal[i] = ((input[i] % 2) + 2) % 2
	}
	return retVal
}

// MultiplyGF2 returns the matrix product, x * y, over GF(2) for row-major
// bit matrices x and y with entries 0 or 1. n must equal the number of
// columns in x and the number of rows in y.
func MultiplyGF2(x []int, y []int, n int) ([]int, error) {
	// x is mxn, y is nxp and xy is mxp.
	m, p, err := getDimensions(len(x), len(y), n, "MultiplyGF2")
	if err != nil {
		return nil, err
	}
	xy := make([]int, m*p)
	for i := 0; i < m; i++ {
		for j := 0; j < p; j++ {
			xyEntry := x[i*n] & y[j] // x[i][0] * y[0][j]
			for k := 1; k < n; k++ {
				xyEntry ^= x[i*n+k] & y[k*p+j] // x[i][k] * y[k][j]
			}
			xy[i*p+j] = xyEntry
		}
	}
	return xy, nil
}

// SelectionVector returns the m-long 0/1 column vector with ones exactly at
// the given indices. An index outside {0,...,m-1} is an error.
func SelectionVector(indices []int, m int) ([]int, error) {
	retVal := make([]int, m)
	for _, index := range indices {
		if (index < 0) || (m <= index) {
			return nil, fmt.Errorf(
				"SelectionVector: index %d is not in {0,...,%d}", index, m-1,
			)
		}
		retVal[index] = 1
	}
	return retVal, nil
}

// PrimePowerProduct returns the product of primes[i]^exponents[i] as a
// big integer. The slices must have equal length.
func PrimePowerProduct(primes []uint32, exponents []int) (*big.Int, error) {
	if len(primes) != len(exponents) {
		return nil, fmt.Errorf(
			"PrimePowerProduct: %d primes but %d exponents", len(primes), len(exponents),
		)
	}
	product := big.NewInt(1)
	p := new(big.Int)
	for i := 0; i < len(primes); i++ {
		if exponents[i] < 0 {
			return nil, fmt.Errorf(
				"PrimePowerProduct: exponent %d of prime %d is negative", exponents[i], primes[i],
			)
		}
		p.SetUint64(uint64(primes[i]))
		for j := 0; j < exponents[i]; j++ {
			product.Mul(product, p)
		}
	}
	return product, nil
}

// Product returns the product of the given factors, or 1 for an empty list.
func Product(factors []*big.Int) *big.Int {
	product := big.NewInt(1)
	for _, factor := range factors {
		product.Mul(product, factor)
	}
	return product
}

// getDimensions returns the dimensions m and p for a matrix multiply
// xy where x has mn entries, y has np entries, and the number of columns
// in x (= the number of rows in y) is n.
func getDimensions(mn, np, n int, caller string) (int, int, error) {
	caller = fmt.Sprintf("%s-getDimensions", caller)
	if mn%n != 0 {
		return 0, 0, fmt.Errorf(
			"%s: non-integer number of rows %d / %d in x", caller, mn, n,
		)
	}
	if np%n != 0 {
		return 0, 0, fmt.Errorf(
			"%s: non-integer number of columns %d / %d in y", caller, np, n,
		)
	}
	return mn / n, np / n, nil
}
