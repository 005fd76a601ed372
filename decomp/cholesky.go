// SPDX-License-Identifier: MIT
// Package decomp: Cholesky decomposition.
//
// For a symmetric positive definite n-by-n matrix A, the factorization
// takes the form A = L*Lᵀ where L is lower triangular with strictly
// positive diagonal. Decompose never fails on a matrix that merely is
// not SPD: the sweep runs to completion and IsSPD reports whether every
// pivot stayed positive and the input was symmetric, so callers probe
// definiteness without an error path.
//
// Complexity: O(n³/3) flops, O(n²) extra memory for the factor.

package decomp

import (
	"math"

	"github.com/katalvlaran/matfact/mat"
)

// Cholesky holds the lower triangular factor together with the SPD
// verdict. The zero value is unusable; construct with NewCholesky.
type Cholesky struct {
	state
	l   []float64 // n×n, lower triangle populated
	n   int
	spd bool
}

// NewCholesky returns an empty Cholesky decomposer.
func NewCholesky() *Cholesky { return &Cholesky{} }

// NewCholeskyOf is a convenience constructor that sets the input
// immediately.
func NewCholeskyOf(m mat.Matrix) (*Cholesky, error) {
	d := NewCholesky()
	if err := d.SetMatrix(m); err != nil {
		return nil, err
	}
	return d, nil
}

// SetMatrix installs a new square input; any previously computed factor
// is discarded.
//
// Errors: mat.ErrNilMatrix, mat.ErrNonSquare.
func (d *Cholesky) SetMatrix(m mat.Matrix) error {
	if err := mat.ValidateSquareNonNil(m); err != nil {
		return decompErrorf(opSetMatrix, err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setInput(m)
	d.l = nil
	return nil
}

// Decompose runs the elimination sweep. It succeeds even when the input
// is not SPD; inspect IsSPD afterwards.
//
// Errors: ErrNoInput.
func (d *Cholesky) Decompose() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireInput(); err != nil {
		return decompErrorf(opDecompose, err)
	}
	a, n, _, err := cloneToFlat(d.input)
	if err != nil {
		return decompErrorf(opDecompose, err)
	}
	l := make([]float64, n*n)
	spd := true

	for j := 0; j < n; j++ {
		dd := 0.0
		for k := 0; k < j; k++ {
			s := 0.0
			for i := 0; i < k; i++ {
				s += l[k*n+i] * l[j*n+i]
			}
			if lkk := l[k*n+k]; lkk != 0 {
				s = (a[j*n+k] - s) / lkk
			} else {
				s = 0
				spd = false
			}
			l[j*n+k] = s
			dd += s * s
			spd = spd && a[k*n+j] == a[j*n+k]
		}
		dd = a[j*n+j] - dd
		spd = spd && dd > 0
		l[j*n+j] = math.Sqrt(math.Max(dd, 0))
	}

	d.l, d.n, d.spd = l, n, spd
	d.available = true
	return nil
}

// IsSPD reports whether the input was symmetric and every pivot stayed
// strictly positive, i.e. whether A = L*Lᵀ holds exactly in the model.
//
// Errors: ErrNotAvailable.
func (d *Cholesky) IsSPD() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return false, decompErrorf(opIsSPD, err)
	}
	return d.spd, nil
}

// L returns the n-by-n lower triangular factor.
//
// Errors: ErrNotAvailable.
func (d *Cholesky) L() (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opL, err)
	}
	return flatToDense(d.l, d.n, d.n), nil
}

// Solve returns X such that A*X = B using two triangular substitutions
// against the stored factor. Valid only for an SPD input.
//
// Errors: ErrNotAvailable, mat.ErrNilMatrix, mat.ErrDimensionMismatch,
// ErrNotSPD.
func (d *Cholesky) Solve(b mat.Matrix) (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if err := mat.ValidateNotNil(b); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if b.Rows() != d.n {
		return nil, decompErrorf(opSolve, mat.ErrDimensionMismatch)
	}
	if !d.spd {
		return nil, decompErrorf(opSolve, ErrNotSPD)
	}

	x, _, nb, err := cloneToFlat(b)
	if err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	n := d.n
	// L*Y = B.
	for k := 0; k < n; k++ {
		for j := 0; j < nb; j++ {
			for i := 0; i < k; i++ {
				x[k*nb+j] -= x[i*nb+j] * d.l[k*n+i]
			}
			x[k*nb+j] /= d.l[k*n+k]
		}
	}
	// Lᵀ*X = Y.
	for k := n - 1; k >= 0; k-- {
		for j := 0; j < nb; j++ {
			for i := k + 1; i < n; i++ {
				x[k*nb+j] -= x[i*nb+j] * d.l[i*n+k]
			}
			x[k*nb+j] /= d.l[k*n+k]
		}
	}
	return flatToDense(x, n, nb), nil
}
