// SPDX-License-Identifier: MIT
// Package decomp: LU decomposition with partial (row) pivoting.
//
// For an m-by-n matrix A with m >= n, the factorization takes the form
// P*A = L*U where L is an m-by-n unit lower trapezoidal matrix, U is an
// n-by-n upper triangular matrix and P records the row exchanges chosen
// by partial pivoting. The factorization always completes; exact
// singularity surfaces later through IsSingular, Det and Solve.
//
// Implementation
//
//	Stage 1. Column sweep: locate the largest remaining magnitude in the
//	         current column, swap that row to the pivot position and
//	         flip the permutation sign.
//	Stage 2. Elimination: store each multiplier in place of the entry it
//	         annihilates, so L and U share one m-by-n array.
//
// Complexity: O(m·n²) flops, O(m·n) extra memory for the packed factors.

package decomp

import (
	"math"

	"github.com/katalvlaran/matfact/mat"
)

// LU holds the packed factors of a partial-pivoting LU decomposition.
// The zero value is unusable; construct with NewLU.
type LU struct {
	state
	lu      []float64 // m×n packed L (below diagonal) and U (on/above)
	piv     []int     // piv[i] = original row now in position i
	pivSign float64   // +1 for an even number of swaps, -1 for odd
	m, n    int
}

// NewLU returns an empty LU decomposer.
func NewLU() *LU { return &LU{} }

// NewLUOf is a convenience constructor that sets the input immediately.
func NewLUOf(m mat.Matrix) (*LU, error) {
	d := NewLU()
	if err := d.SetMatrix(m); err != nil {
		return nil, err
	}
	return d, nil
}

// SetMatrix installs a new input. The matrix must be non-nil with at
// least as many rows as columns; any previously computed factors are
// discarded.
//
// Errors: mat.ErrNilMatrix, mat.ErrDimensionMismatch.
func (d *LU) SetMatrix(m mat.Matrix) error {
	if err := mat.ValidateNotNil(m); err != nil {
		return decompErrorf(opSetMatrix, err)
	}
	if m.Rows() < m.Cols() {
		return decompErrorf(opSetMatrix, mat.ErrDimensionMismatch)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setInput(m)
	d.lu, d.piv = nil, nil
	return nil
}

// Decompose computes the pivoted factorization of the configured input.
// It may be called repeatedly; re-running on an unchanged input
// reproduces the factors exactly.
//
// Errors: ErrNoInput.
func (d *LU) Decompose() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireInput(); err != nil {
		return decompErrorf(opDecompose, err)
	}
	lu, m, n, err := cloneToFlat(d.input)
	if err != nil {
		return decompErrorf(opDecompose, err)
	}
	piv := make([]int, m)
	for i := range piv {
		piv[i] = i
	}
	sign := 1.0

	for k := 0; k < n; k++ {
		// Stage 1: pivot search over rows k..m-1 of column k.
		p := k
		for i := k + 1; i < m; i++ {
			if math.Abs(lu[i*n+k]) > math.Abs(lu[p*n+k]) {
				p = i
			}
		}
		if p != k {
			for j := 0; j < n; j++ {
				lu[p*n+j], lu[k*n+j] = lu[k*n+j], lu[p*n+j]
			}
			piv[p], piv[k] = piv[k], piv[p]
			sign = -sign
		}
		// Stage 2: eliminate below the pivot, storing multipliers in place.
		// A zero pivot leaves the column untouched; the defect is reported
		// by IsSingular/Det/Solve rather than here.
		if akk := lu[k*n+k]; akk != 0 {
			for i := k + 1; i < m; i++ {
				f := lu[i*n+k] / akk
				lu[i*n+k] = f
				for j := k + 1; j < n; j++ {
					lu[i*n+j] -= f * lu[k*n+j]
				}
			}
		}
	}

	d.lu, d.piv, d.pivSign, d.m, d.n = lu, piv, sign, m, n
	d.available = true
	return nil
}

// PivotedL returns the m-by-n unit lower trapezoidal factor L such that
// P*A = L*U, where P is the permutation reported by Pivot.
//
// Errors: ErrNotAvailable.
func (d *LU) PivotedL() (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opL, err)
	}
	out, _ := mat.NewDense(d.m, d.n)
	raw := out.Raw()
	for i := 0; i < d.m; i++ {
		for j := 0; j < d.n && j <= i; j++ {
			if j == i {
				raw[i*d.n+j] = 1
			} else {
				raw[i*d.n+j] = d.lu[i*d.n+j]
			}
		}
	}
	return out, nil
}

// L returns the lower trapezoidal factor with its rows restored to the
// original ordering, so that A = L*U without any permutation.
//
// Errors: ErrNotAvailable.
func (d *LU) L() (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opL, err)
	}
	out, _ := mat.NewDense(d.m, d.n)
	raw := out.Raw()
	for i := 0; i < d.m; i++ {
		row := d.piv[i] * d.n
		for j := 0; j < d.n && j <= i; j++ {
			if j == i {
				raw[row+j] = 1
			} else {
				raw[row+j] = d.lu[i*d.n+j]
			}
		}
	}
	return out, nil
}

// U returns the n-by-n upper triangular factor.
//
// Errors: ErrNotAvailable.
func (d *LU) U() (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opU, err)
	}
	out, _ := mat.NewDense(d.n, d.n)
	raw := out.Raw()
	for i := 0; i < d.n; i++ {
		for j := i; j < d.n; j++ {
			raw[i*d.n+j] = d.lu[i*d.n+j]
		}
	}
	return out, nil
}

// Pivot returns the row permutation as a slice: entry i holds the index
// of the original row occupying position i after pivoting.
//
// Errors: ErrNotAvailable.
func (d *LU) Pivot() ([]int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opPivot, err)
	}
	out := make([]int, len(d.piv))
	copy(out, d.piv)
	return out, nil
}

// IsSingular reports whether any pivot magnitude falls at or below the
// given threshold. A zero threshold tests exact singularity.
//
// Errors: ErrNotAvailable, ErrInvalidThreshold.
func (d *LU) IsSingular(threshold float64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return false, decompErrorf(opIsSingular, err)
	}
	if err := validateThreshold(threshold); err != nil {
		return false, decompErrorf(opIsSingular, err)
	}
	return d.singularLocked(threshold), nil
}

func (d *LU) singularLocked(threshold float64) bool {
	for j := 0; j < d.n; j++ {
		if math.Abs(d.lu[j*d.n+j]) <= threshold {
			return true
		}
	}
	return false
}

// Det returns the determinant of a square input as the signed product of
// the pivots. A singular matrix yields 0 without error.
//
// Errors: ErrNotAvailable, mat.ErrNonSquare.
func (d *LU) Det() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return 0, decompErrorf(opDet, err)
	}
	if d.m != d.n {
		return 0, decompErrorf(opDet, mat.ErrNonSquare)
	}
	det := d.pivSign
	for j := 0; j < d.n; j++ {
		det *= d.lu[j*d.n+j]
	}
	return det, nil
}

// Solve returns X such that A*X = B for a square decomposed input, using
// the pivoted forward/back substitution pair. B may carry any number of
// right-hand-side columns.
//
// Errors: ErrNotAvailable, mat.ErrNilMatrix, mat.ErrNonSquare,
// mat.ErrDimensionMismatch, ErrInvalidThreshold, ErrSingular.
func (d *LU) Solve(b mat.Matrix, threshold float64) (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if err := mat.ValidateNotNil(b); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if d.m != d.n {
		return nil, decompErrorf(opSolve, mat.ErrNonSquare)
	}
	if b.Rows() != d.m {
		return nil, decompErrorf(opSolve, mat.ErrDimensionMismatch)
	}
	if err := validateThreshold(threshold); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if d.singularLocked(threshold) {
		return nil, decompErrorf(opSolve, ErrSingular)
	}

	rhs, _, nb, err := cloneToFlat(b)
	if err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	n := d.n
	// Apply the permutation to the snapshot of B.
	x := make([]float64, n*nb)
	for i := 0; i < n; i++ {
		copy(x[i*nb:(i+1)*nb], rhs[d.piv[i]*nb:(d.piv[i]+1)*nb])
	}
	// Forward substitution with the unit lower factor.
	for k := 0; k < n; k++ {
		for i := k + 1; i < n; i++ {
			f := d.lu[i*n+k]
			if f == 0 {
				continue
			}
			for j := 0; j < nb; j++ {
				x[i*nb+j] -= f * x[k*nb+j]
			}
		}
	}
	// Back substitution with the upper factor.
	for k := n - 1; k >= 0; k-- {
		akk := d.lu[k*n+k]
		for j := 0; j < nb; j++ {
			x[k*nb+j] /= akk
		}
		for i := 0; i < k; i++ {
			f := d.lu[i*n+k]
			if f == 0 {
				continue
			}
			for j := 0; j < nb; j++ {
				x[i*nb+j] -= f * x[k*nb+j]
			}
		}
	}
	return flatToDense(x, n, nb), nil
}
