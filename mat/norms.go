// SPDX-License-Identifier: MIT
// Package mat: norm computation as a pluggable strategy.
//
// Purpose:
//   - Provide Frobenius, one- and infinity-norms over matrices and vectors
//     behind one NormComputer interface so numeric consumers can pick a
//     policy without branching on norm kinds themselves.
//
// Determinism & Performance:
//   - Fixed i→j traversal; *Dense fast-paths walk the flat buffer once.

package mat

import "math"

// NormType selects a norm strategy for NewNormComputer.
type NormType int

const (
	// Frobenius is sqrt(ΣΣ a[i,j]^2); for vectors the Euclidean norm.
	Frobenius NormType = iota

	// One is the maximum absolute column sum; for vectors Σ|x[i]|.
	One

	// Infinity is the maximum absolute row sum; for vectors max|x[i]|.
	Infinity
)

// NormComputer computes matrix and vector norms under one fixed policy.
// Implementations are stateless and safe for concurrent use.
type NormComputer interface {
	// Type reports the strategy this computer implements.
	Type() NormType

	// Norm computes the matrix norm of m.
	// Errors: ErrNilMatrix.
	Norm(m Matrix) (float64, error)

	// NormVec computes the vector norm of x.
	// Errors: ErrNilMatrix for a nil slice.
	NormVec(x []float64) (float64, error)
}

// NewNormComputer returns the NormComputer for the requested strategy.
// Errors: ErrUnknownNorm for an unrecognized NormType. Complexity: O(1).
func NewNormComputer(t NormType) (NormComputer, error) {
	switch t {
	case Frobenius:
		return frobeniusNorm{}, nil
	case One:
		return oneNorm{}, nil
	case Infinity:
		return infNorm{}, nil
	default:
		return nil, ErrUnknownNorm
	}
}

type frobeniusNorm struct{}

func (frobeniusNorm) Type() NormType { return Frobenius }

// Norm sums the squares in one deterministic pass and returns the root.
// Complexity: O(r*c).
func (frobeniusNorm) Norm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, err
	}
	var acc float64
	if d, ok := m.(*Dense); ok {
		for _, v := range d.data {
			acc += v * v
		}

		return math.Sqrt(acc), nil
	}
	var v float64
	var err error
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err = m.At(i, j)
			if err != nil {
				return 0, err
			}
			acc += v * v
		}
	}

	return math.Sqrt(acc), nil
}

func (frobeniusNorm) NormVec(x []float64) (float64, error) {
	if x == nil {
		return 0, ErrNilMatrix
	}
	var acc float64
	for _, v := range x {
		acc += v * v
	}

	return math.Sqrt(acc), nil
}

type oneNorm struct{}

func (oneNorm) Type() NormType { return One }

// Norm computes max_j Σ_i |a[i,j]| with one pass and a per-column accumulator.
// Complexity: O(r*c), Space O(c).
func (oneNorm) Norm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, err
	}
	rows, cols := m.Rows(), m.Cols()
	colSum := make([]float64, cols)
	if d, ok := m.(*Dense); ok {
		for i := 0; i < rows; i++ {
			base := i * cols
			for j := 0; j < cols; j++ {
				colSum[j] += math.Abs(d.data[base+j])
			}
		}
	} else {
		var v float64
		var err error
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				v, err = m.At(i, j)
				if err != nil {
					return 0, err
				}
				colSum[j] += math.Abs(v)
			}
		}
	}
	var max float64
	for _, s := range colSum {
		if s > max {
			max = s
		}
	}

	return max, nil
}

func (oneNorm) NormVec(x []float64) (float64, error) {
	if x == nil {
		return 0, ErrNilMatrix
	}
	var acc float64
	for _, v := range x {
		acc += math.Abs(v)
	}

	return acc, nil
}

type infNorm struct{}

func (infNorm) Type() NormType { return Infinity }

// Norm computes max_i Σ_j |a[i,j]| row by row.
// Complexity: O(r*c), Space O(1).
func (infNorm) Norm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, err
	}
	rows, cols := m.Rows(), m.Cols()
	var max, rowSum float64
	if d, ok := m.(*Dense); ok {
		for i := 0; i < rows; i++ {
			rowSum = 0
			base := i * cols
			for j := 0; j < cols; j++ {
				rowSum += math.Abs(d.data[base+j])
			}
			if rowSum > max {
				max = rowSum
			}
		}

		return max, nil
	}
	var v float64
	var err error
	for i := 0; i < rows; i++ {
		rowSum = 0
		for j := 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return 0, err
			}
			rowSum += math.Abs(v)
		}
		if rowSum > max {
			max = rowSum
		}
	}

	return max, nil
}

func (infNorm) NormVec(x []float64) (float64, error) {
	if x == nil {
		return 0, ErrNilMatrix
	}
	var max float64
	for _, v := range x {
		if a := math.Abs(v); a > max {
			max = a
		}
	}

	return max, nil
}
