// SPDX-License-Identifier: MIT
// Package decomp: RQ decomposition.
//
// For an m-by-n matrix A with m <= n, the factorization takes the form
// A = R*Q where R is an m-by-n upper triangular matrix (right justified
// when m < n) and Q is an n-by-n orthogonal matrix.
//
// Implementation
//
// The factors are obtained from the QR machinery by a permutation trick
// rather than a second reflector kernel. With J the anti-identity
// (row-reversal) permutation:
//
//	Stage 1. Form B = (J·A)ᵀ, an n-by-m matrix, and run the Householder
//	         sweep on it: B = Q̃·R̃.
//	Stage 2. Undo the permutations: R = J·R̃ᵀ·J and Q = J·Q̃ᵀ, which
//	         gives A = R·Q with Q orthogonal and R upper triangular.
//
// Complexity: O(n·m²) flops for the sweep, O(n²) for the full Q.

package decomp

import "github.com/katalvlaran/matfact/mat"

// RQ holds the factors of an RQ decomposition. The zero value is
// unusable; construct with NewRQ.
type RQ struct {
	state
	r    []float64 // m×n upper triangular factor
	q    []float64 // n×n orthogonal factor
	m, n int
}

// NewRQ returns an empty RQ decomposer.
func NewRQ() *RQ { return &RQ{} }

// NewRQOf is a convenience constructor that sets the input immediately.
func NewRQOf(m mat.Matrix) (*RQ, error) {
	d := NewRQ()
	if err := d.SetMatrix(m); err != nil {
		return nil, err
	}
	return d, nil
}

// SetMatrix installs a new input. The matrix must be non-nil with at
// most as many rows as columns; any previously computed factors are
// discarded.
//
// Errors: mat.ErrNilMatrix, mat.ErrDimensionMismatch.
func (d *RQ) SetMatrix(m mat.Matrix) error {
	if err := mat.ValidateNotNil(m); err != nil {
		return decompErrorf(opSetMatrix, err)
	}
	if m.Rows() > m.Cols() {
		return decompErrorf(opSetMatrix, mat.ErrDimensionMismatch)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setInput(m)
	d.r, d.q = nil, nil
	return nil
}

// Decompose computes both factors of the configured input.
//
// Errors: ErrNoInput.
func (d *RQ) Decompose() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireInput(); err != nil {
		return decompErrorf(opDecompose, err)
	}
	a, m, n, err := cloneToFlat(d.input)
	if err != nil {
		return decompErrorf(opDecompose, err)
	}

	// Stage 1: B = (J·A)ᵀ, n rows by m columns.
	b := make([]float64, n*m)
	for i := 0; i < m; i++ {
		src := (m - 1 - i) * n
		for j := 0; j < n; j++ {
			b[j*m+i] = a[src+j]
		}
	}
	rdiag := make([]float64, m)
	householderFactor(b, n, m, rdiag)
	qt := accumulateQ(b, n, m, n)

	// Stage 2: R = J·R̃ᵀ·J where R̃ is the n-by-m upper factor of B.
	r := make([]float64, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			row, col := n-1-j, m-1-i
			switch {
			case row > col:
				// below the diagonal of R̃
			case row == col:
				r[i*n+j] = rdiag[row]
			default:
				r[i*n+j] = b[row*m+col]
			}
		}
	}
	// Q = J·Q̃ᵀ.
	q := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			q[i*n+j] = qt[j*n+(n-1-i)]
		}
	}

	d.r, d.q, d.m, d.n = r, q, m, n
	d.available = true
	return nil
}

// R returns the m-by-n upper triangular factor.
//
// Errors: ErrNotAvailable.
func (d *RQ) R() (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opR, err)
	}
	return flatToDense(d.r, d.m, d.n), nil
}

// Q returns the n-by-n orthogonal factor.
//
// Errors: ErrNotAvailable.
func (d *RQ) Q() (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opQ, err)
	}
	return flatToDense(d.q, d.n, d.n), nil
}
