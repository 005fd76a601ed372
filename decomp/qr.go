// SPDX-License-Identifier: MIT
// Package decomp: Householder QR decomposition.
//
// For an m-by-n matrix A with m >= n, the factorization takes the form
// A = Q*R where Q is an m-by-m orthogonal matrix and R is an m-by-n
// upper triangular matrix. The reflectors are stored in packed form:
// each column of the work array holds one Householder vector below the
// diagonal, the upper triangle holds R, and a separate slice carries the
// R diagonal.
//
// Implementation
//
//	Stage 1. Sweep the columns left to right; for each column build the
//	         reflector that annihilates everything below the diagonal
//	         and apply it to the trailing submatrix.
//	Stage 2. Accumulate Q (on demand) by applying the reflectors in
//	         reverse to an identity block.
//
// Complexity: O(m·n²) flops for the sweep, O(m²·n) extra for a full Q.

package decomp

import (
	"math"

	"github.com/katalvlaran/matfact/mat"
)

// householderFactor runs the reflector sweep over a packed m-by-n
// row-major array, leaving reflector vectors below the diagonal, the
// strict upper triangle of R above it and the R diagonal in rdiag.
func householderFactor(qr []float64, m, n int, rdiag []float64) {
	for k := 0; k < n; k++ {
		nrm := 0.0
		for i := k; i < m; i++ {
			nrm = math.Hypot(nrm, qr[i*n+k])
		}
		if nrm != 0 {
			// Orient the reflector away from cancellation.
			if qr[k*n+k] < 0 {
				nrm = -nrm
			}
			for i := k; i < m; i++ {
				qr[i*n+k] /= nrm
			}
			qr[k*n+k] += 1
			for j := k + 1; j < n; j++ {
				s := 0.0
				for i := k; i < m; i++ {
					s += qr[i*n+k] * qr[i*n+j]
				}
				s = -s / qr[k*n+k]
				for i := k; i < m; i++ {
					qr[i*n+j] += s * qr[i*n+k]
				}
			}
		}
		rdiag[k] = -nrm
	}
}

// accumulateQ expands the packed reflectors into the first nu columns of
// Q, returned as an m-by-nu row-major array. nu == n yields the economy
// factor, nu == m the full orthogonal matrix.
func accumulateQ(qr []float64, m, n, nu int) []float64 {
	q := make([]float64, m*nu)
	for j := n; j < nu; j++ {
		q[j*nu+j] = 1
	}
	for k := n - 1; k >= 0; k-- {
		for i := 0; i < m; i++ {
			q[i*nu+k] = 0
		}
		q[k*nu+k] = 1
		if qr[k*n+k] == 0 {
			continue
		}
		for j := k; j < nu; j++ {
			s := 0.0
			for i := k; i < m; i++ {
				s += qr[i*n+k] * q[i*nu+j]
			}
			s = -s / qr[k*n+k]
			for i := k; i < m; i++ {
				q[i*nu+j] += s * qr[i*n+k]
			}
		}
	}
	return q
}

// QR holds the packed reflectors of a full Householder QR decomposition.
// The zero value is unusable; construct with NewQR.
type QR struct {
	state
	qr    []float64 // m×n packed reflectors and strict upper triangle
	rdiag []float64 // diagonal of R
	m, n  int
}

// NewQR returns an empty QR decomposer.
func NewQR() *QR { return &QR{} }

// NewQROf is a convenience constructor that sets the input immediately.
func NewQROf(m mat.Matrix) (*QR, error) {
	d := NewQR()
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
func (d *QR) SetMatrix(m mat.Matrix) error {
	if err := mat.ValidateNotNil(m); err != nil {
		return decompErrorf(opSetMatrix, err)
	}
	if m.Rows() < m.Cols() {
		return decompErrorf(opSetMatrix, mat.ErrDimensionMismatch)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setInput(m)
	d.qr, d.rdiag = nil, nil
	return nil
}

// Decompose runs the reflector sweep on the configured input.
//
// Errors: ErrNoInput.
func (d *QR) Decompose() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireInput(); err != nil {
		return decompErrorf(opDecompose, err)
	}
	qr, m, n, err := cloneToFlat(d.input)
	if err != nil {
		return decompErrorf(opDecompose, err)
	}
	rdiag := make([]float64, n)
	householderFactor(qr, m, n, rdiag)
	d.qr, d.rdiag, d.m, d.n = qr, rdiag, m, n
	d.available = true
	return nil
}

// Q returns the full m-by-m orthogonal factor.
//
// Errors: ErrNotAvailable.
func (d *QR) Q() (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opQ, err)
	}
	return flatToDense(accumulateQ(d.qr, d.m, d.n, d.m), d.m, d.m), nil
}

// R returns the m-by-n upper triangular factor, zero below the diagonal.
//
// Errors: ErrNotAvailable.
func (d *QR) R() (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opR, err)
	}
	return d.upperLocked(d.m), nil
}

// upperLocked assembles the first rows×n rows of R. Caller must hold mu.
func (d *QR) upperLocked(rows int) *mat.Dense {
	out, _ := mat.NewDense(rows, d.n)
	raw := out.Raw()
	for i := 0; i < rows && i < d.n; i++ {
		raw[i*d.n+i] = d.rdiag[i]
		for j := i + 1; j < d.n; j++ {
			raw[i*d.n+j] = d.qr[i*d.n+j]
		}
	}
	return out
}

// IsFullRank reports whether every diagonal magnitude of R exceeds the
// given threshold, i.e. whether the input has full column rank.
//
// Errors: ErrNotAvailable, ErrInvalidThreshold.
func (d *QR) IsFullRank(threshold float64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return false, decompErrorf(opIsFullRank, err)
	}
	if err := validateThreshold(threshold); err != nil {
		return false, decompErrorf(opIsFullRank, err)
	}
	return d.fullRankLocked(threshold), nil
}

func (d *QR) fullRankLocked(threshold float64) bool {
	for j := 0; j < d.n; j++ {
		if math.Abs(d.rdiag[j]) <= threshold {
			return false
		}
	}
	return true
}

// Solve returns the least-squares solution X minimizing ||A*X - B||,
// computed by applying the stored reflectors to B and back-substituting
// through R. Requires full column rank at the given threshold. B may
// carry any number of right-hand-side columns.
//
// Errors: ErrNotAvailable, mat.ErrNilMatrix, mat.ErrDimensionMismatch,
// ErrInvalidThreshold, ErrRankDeficient.
func (d *QR) Solve(b mat.Matrix, threshold float64) (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if err := mat.ValidateNotNil(b); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if b.Rows() != d.m {
		return nil, decompErrorf(opSolve, mat.ErrDimensionMismatch)
	}
	if err := validateThreshold(threshold); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if !d.fullRankLocked(threshold) {
		return nil, decompErrorf(opSolve, ErrRankDeficient)
	}

	x, _, nb, err := cloneToFlat(b)
	if err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	m, n := d.m, d.n
	// Y = Qᵀ*B, one reflector at a time.
	for k := 0; k < n; k++ {
		if d.qr[k*n+k] == 0 {
			continue
		}
		for j := 0; j < nb; j++ {
			s := 0.0
			for i := k; i < m; i++ {
				s += d.qr[i*n+k] * x[i*nb+j]
			}
			s = -s / d.qr[k*n+k]
			for i := k; i < m; i++ {
				x[i*nb+j] += s * d.qr[i*n+k]
			}
		}
	}
	// Back substitution through R; only the first n rows survive.
	for k := n - 1; k >= 0; k-- {
		for j := 0; j < nb; j++ {
			x[k*nb+j] /= d.rdiag[k]
		}
		for i := 0; i < k; i++ {
			f := d.qr[i*n+k]
			for j := 0; j < nb; j++ {
				x[i*nb+j] -= x[k*nb+j] * f
			}
		}
	}
	return flatToDense(x[:n*nb], n, nb), nil
}
