package dixonops

// Copyright (c) 2025 Colin McRae

import (
	"github.com/pkg/errors"
)

const wordBits = 64

// gf2Vector is a bit vector over GF(2), packed little-endian into 64-bit
// words. Addition is XOR.
type gf2Vector []uint64

func newGF2Vector(bits int) gf2Vector {
	return make(gf2Vector, (bits+wordBits-1)/wordBits)
}

func (v gf2Vector) setBit(i int) {
	v[i/wordBits] |= 1 << uint(i%wordBits)
}

// xor adds other into v coordinate-wise.
func (v gf2Vector) xor(other gf2Vector) {
	for w := range v {
		v[w] ^= other[w]
	}
}

// firstSet returns the index of the lowest set bit, or -1 for the zero
// vector.
func (v gf2Vector) firstSet() int {
	for w, word := range v {
		if word == 0 {
			continue
		}
		bit := 0
		for word&1 == 0 {
			word >>= 1
			bit++
		}
		return w*wordBits + bit
	}
	return -1
}

// setBits returns the indices of all set bits below max, ascending.
func (v gf2Vector) setBits(max int) []int {
	var indices []int
	for i := 0; i < max; i++ {
		if v[i/wordBits]&(1<<uint(i%wordBits)) != 0 {
			indices = append(indices, i)
		}
	}
	return indices
}

// gf2Row pairs a working parity vector with the combination of original
// rows that produced it, so a row that reduces to zero names its
// dependency directly.
type gf2Row struct {
	vector gf2Vector // length k: current parity bits
	combo  gf2Vector // length m: original rows XORed into vector
}

// FindDependency finds a nonempty subset of the given parity vectors whose
// coordinate-wise sum over GF(2) is zero, returning the ascending row
// indices of that subset. With m vectors of length k and m > k, such a
// dependency always exists: the row rank is at most k, so Gaussian
// elimination must reduce some row to zero.
//
// Rows are reduced in order against the pivots recorded so far, and the
// first row to reduce to zero wins, so the result is deterministic given
// the same vector ordering. The cost is O(m*k^2) bit operations, packed 64
// to the word.
func FindDependency(parityVectors [][]int) ([]int, error) {
	m := len(parityVectors)
	if m == 0 {
		return nil, errors.Errorf("dixonops: no parity vectors to search for a dependency")
	}
	k := len(parityVectors[0])

	pivotForColumn := make([]*gf2Row, k)
	for i := 0; i < m; i++ {
		if len(parityVectors[i]) != k {
			return nil, errors.Errorf(
				"dixonops: parity vector %d has length %d but vector 0 has length %d",
				i, len(parityVectors[i]), k,
			)
		}
		row := &gf2Row{vector: newGF2Vector(k), combo: newGF2Vector(m)}
		for j, bit := range parityVectors[i] {
			if bit%2 != 0 {
				row.vector.setBit(j)
			}
		}
		row.combo.setBit(i)

		for {
			lead := row.vector.firstSet()
			if lead < 0 {
				// The row vanished: the tracked combination of original
				// rows sums to zero.
				return row.combo.setBits(m), nil
			}
			if pivotForColumn[lead] == nil {
				pivotForColumn[lead] = row
				break
			}
			row.vector.xor(pivotForColumn[lead].vector)
			row.combo.xor(pivotForColumn[lead].combo)
		}
	}
	return nil, errors.Errorf(
		"dixonops: no dependency among %d parity vectors of length %d; %d or more are needed to guarantee one",
		m, k, k+1,
	)
}
