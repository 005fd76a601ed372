// SPDX-License-Identifier: MIT
// Package decomp: one-shot convenience facade.
//
// The functions in this file wrap the stateful decomposers behind plain
// calls for callers that need a single answer (a determinant, an
// inverse, a solution) rather than reusable factors. Each function
// builds the appropriate decomposer internally, dispatching on shape:
//
//	square        -> LU with partial pivoting
//	rows > cols   -> economy QR least squares
//	rank queries  -> SVD
//
// All results are freshly allocated; inputs are never mutated.

package decomp

import (
	"math"

	"github.com/katalvlaran/matfact/mat"
)

// DefaultThreshold is the pivot/rank cutoff used by the facade functions
// that do not take an explicit threshold.
const DefaultThreshold = 1e-11

// Facade operation tags.
const (
	opInverse = "Inverse"
	opPinv    = "PseudoInverse"
	opSkew    = "Skew"
	opCross   = "Cross"
	opSchurc  = "SchurComplement"
	opOrtho   = "IsOrthogonal"
)

// Det returns the determinant of a square matrix via pivoted LU.
// A singular matrix yields 0 without error.
//
// Errors: mat.ErrNilMatrix, mat.ErrNonSquare.
func Det(m mat.Matrix) (float64, error) {
	if err := mat.ValidateSquareNonNil(m); err != nil {
		return 0, decompErrorf(opDet, err)
	}
	lu, err := NewLUOf(m)
	if err != nil {
		return 0, err
	}
	if err = lu.Decompose(); err != nil {
		return 0, err
	}
	return lu.Det()
}

// Inverse returns the inverse of a square matrix by solving A*X = I
// through pivoted LU. Non-square inputs are routed to PseudoInverse.
//
// Errors: mat.ErrNilMatrix, ErrRankDeficient.
func Inverse(m mat.Matrix) (*mat.Dense, error) {
	if err := mat.ValidateNotNil(m); err != nil {
		return nil, decompErrorf(opInverse, err)
	}
	if m.Rows() != m.Cols() {
		return PseudoInverse(m)
	}
	lu, err := NewLUOf(m)
	if err != nil {
		return nil, err
	}
	if err = lu.Decompose(); err != nil {
		return nil, err
	}
	eye, err := mat.NewIdentity(m.Rows())
	if err != nil {
		return nil, decompErrorf(opInverse, err)
	}
	x, err := lu.Solve(eye, DefaultThreshold)
	if err != nil {
		// A singular square matrix has no inverse at all.
		return nil, decompErrorf(opInverse, ErrRankDeficient)
	}
	return x, nil
}

// PseudoInverse returns the Moore-Penrose pseudo-inverse A⁺. Tall
// full-rank inputs go through economy QR; everything else (wide or
// rank-deficient) falls back to the SVD form V·Σ⁺·Uᵀ.
//
// Errors: mat.ErrNilMatrix, ErrNotConverged.
func PseudoInverse(m mat.Matrix) (*mat.Dense, error) {
	if err := mat.ValidateNotNil(m); err != nil {
		return nil, decompErrorf(opPinv, err)
	}
	if m.Rows() >= m.Cols() {
		qr, err := NewEconomyQROf(m)
		if err != nil {
			return nil, err
		}
		if err = qr.Decompose(); err != nil {
			return nil, err
		}
		eye, err := mat.NewIdentity(m.Rows())
		if err != nil {
			return nil, decompErrorf(opPinv, err)
		}
		if x, err := qr.Solve(eye, DefaultThreshold); err == nil {
			return x, nil
		}
		// Rank deficient: only the SVD form is defined.
	}
	svd, err := NewSVDOf(m)
	if err != nil {
		return nil, err
	}
	if err = svd.Decompose(); err != nil {
		return nil, err
	}
	sv, err := svd.SingularValues()
	if err != nil {
		return nil, err
	}
	tol := float64(maxInt(m.Rows(), m.Cols())) * svdEps * sv[0]
	eye, err := mat.NewIdentity(m.Rows())
	if err != nil {
		return nil, decompErrorf(opPinv, err)
	}
	return svd.Solve(eye, tol)
}

// Solve returns X such that A*X = B, dispatching on the shape of A:
// square systems through pivoted LU, tall systems through economy QR
// least squares. Wide systems are rejected.
//
// Errors: mat.ErrNilMatrix, mat.ErrDimensionMismatch,
// ErrInvalidThreshold, ErrSingular, ErrRankDeficient.
func Solve(a, b mat.Matrix, threshold float64) (*mat.Dense, error) {
	if err := mat.ValidateNotNil(a); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if err := mat.ValidateNotNil(b); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	switch {
	case a.Rows() == a.Cols():
		lu, err := NewLUOf(a)
		if err != nil {
			return nil, err
		}
		if err = lu.Decompose(); err != nil {
			return nil, err
		}
		return lu.Solve(b, threshold)
	case a.Rows() > a.Cols():
		qr, err := NewEconomyQROf(a)
		if err != nil {
			return nil, err
		}
		if err = qr.Decompose(); err != nil {
			return nil, err
		}
		return qr.Solve(b, threshold)
	default:
		return nil, decompErrorf(opSolve, mat.ErrDimensionMismatch)
	}
}

// Rank returns the numerical rank at the SVD default cutoff.
//
// Errors: mat.ErrNilMatrix, ErrNotConverged.
func Rank(m mat.Matrix) (int, error) {
	svd, err := NewSVDOf(m)
	if err != nil {
		return 0, err
	}
	if err = svd.Decompose(); err != nil {
		return 0, err
	}
	return svd.Rank()
}

// Cond returns the 2-norm condition number σ₁/σ_min.
//
// Errors: mat.ErrNilMatrix, ErrNotConverged.
func Cond(m mat.Matrix) (float64, error) {
	svd, err := NewSVDOf(m)
	if err != nil {
		return 0, err
	}
	if err = svd.Decompose(); err != nil {
		return 0, err
	}
	return svd.ConditionNumber()
}

// IsSymmetric reports whether m equals its transpose within tol.
//
// Errors: mat.ErrNilMatrix, mat.ErrNonSquare, mat.ErrNaNInf,
// mat.ErrNegativeThreshold.
func IsSymmetric(m mat.Matrix, tol float64) (bool, error) {
	return mat.IsSymmetric(m, tol)
}

// IsOrthogonal reports whether the columns of m are pairwise orthogonal
// within tol, i.e. the off-diagonal of AᵀA is negligible.
//
// Errors: mat.ErrNilMatrix, ErrInvalidThreshold.
func IsOrthogonal(m mat.Matrix, tol float64) (bool, error) {
	g, err := gram(m, tol)
	if err != nil {
		return false, err
	}
	n := g.Cols()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v, _ := g.At(i, j)
			if math.Abs(v) > tol {
				return false, nil
			}
		}
	}
	return true, nil
}

// IsOrthonormal reports whether the columns of m are pairwise orthogonal
// and of unit length within tol, i.e. AᵀA is the identity.
//
// Errors: mat.ErrNilMatrix, ErrInvalidThreshold.
func IsOrthonormal(m mat.Matrix, tol float64) (bool, error) {
	ok, err := IsOrthogonal(m, tol)
	if err != nil || !ok {
		return false, err
	}
	g, err := gram(m, tol)
	if err != nil {
		return false, err
	}
	for i := 0; i < g.Cols(); i++ {
		v, _ := g.At(i, i)
		if math.Abs(v-1) > tol {
			return false, nil
		}
	}
	return true, nil
}

// gram computes AᵀA after validating the facade arguments.
func gram(m mat.Matrix, tol float64) (*mat.Dense, error) {
	if err := mat.ValidateNotNil(m); err != nil {
		return nil, decompErrorf(opOrtho, err)
	}
	if err := validateThreshold(tol); err != nil {
		return nil, decompErrorf(opOrtho, err)
	}
	mt, err := mat.Transpose(m)
	if err != nil {
		return nil, err
	}
	return mat.Mul(mt, m)
}

// Skew returns the 3x3 skew-symmetric cross-product matrix [v]× such
// that [v]×·w = v×w for any w.
//
// Errors: mat.ErrDimensionMismatch.
func Skew(v []float64) (*mat.Dense, error) {
	if err := mat.ValidateVecLen(v, 3); err != nil {
		return nil, decompErrorf(opSkew, err)
	}
	return mat.NewDenseData(3, 3, []float64{
		0, -v[2], v[1],
		v[2], 0, -v[0],
		-v[1], v[0], 0,
	})
}

// SkewWithJacobian returns [v]× together with the 9x3 Jacobian of its
// column-major vectorization with respect to v.
//
// Errors: mat.ErrDimensionMismatch.
func SkewWithJacobian(v []float64) (*mat.Dense, *mat.Dense, error) {
	s, err := Skew(v)
	if err != nil {
		return nil, nil, err
	}
	jac, err := mat.NewDenseData(9, 3, []float64{
		0, 0, 0,
		0, 0, 1,
		0, -1, 0,
		0, 0, -1,
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		-1, 0, 0,
		0, 0, 0,
	})
	if err != nil {
		return nil, nil, decompErrorf(opSkew, err)
	}
	return s, jac, nil
}

// Cross returns the cross product a×b of two 3-vectors.
//
// Errors: mat.ErrDimensionMismatch.
func Cross(a, b []float64) ([]float64, error) {
	if err := mat.ValidateVecLen(a, 3); err != nil {
		return nil, decompErrorf(opCross, err)
	}
	if err := mat.ValidateVecLen(b, 3); err != nil {
		return nil, decompErrorf(opCross, err)
	}
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}, nil
}

// CrossWithJacobians returns a×b together with its Jacobians with
// respect to each operand: ∂(a×b)/∂a = -[b]× and ∂(a×b)/∂b = [a]×.
//
// Errors: mat.ErrDimensionMismatch.
func CrossWithJacobians(a, b []float64) ([]float64, *mat.Dense, *mat.Dense, error) {
	c, err := Cross(a, b)
	if err != nil {
		return nil, nil, nil, err
	}
	sb, err := Skew(b)
	if err != nil {
		return nil, nil, nil, err
	}
	ja, err := mat.Scale(sb, -1)
	if err != nil {
		return nil, nil, nil, decompErrorf(opCross, err)
	}
	jb, err := Skew(a)
	if err != nil {
		return nil, nil, nil, err
	}
	return c, ja, jb, nil
}

// SchurComplement eliminates the leading pos×pos block A of the square
// matrix M = [[A, B], [Bᵀ-like, C]] and returns the complement
// S = C - M₂₁·A⁻¹·B together with A⁻¹. pos must satisfy 0 < pos < n.
//
// Errors: mat.ErrNilMatrix, mat.ErrNonSquare, mat.ErrOutOfRange,
// ErrRankDeficient.
func SchurComplement(m mat.Matrix, pos int) (*mat.Dense, *mat.Dense, error) {
	if err := mat.ValidateSquareNonNil(m); err != nil {
		return nil, nil, decompErrorf(opSchurc, err)
	}
	n := m.Rows()
	if pos <= 0 || pos >= n {
		return nil, nil, decompErrorf(opSchurc, mat.ErrOutOfRange)
	}
	flat, _, _, err := cloneToFlat(m)
	if err != nil {
		return nil, nil, decompErrorf(opSchurc, err)
	}
	full := flatToDense(flat, n, n)
	a, err := full.Submatrix(0, pos-1, 0, pos-1)
	if err != nil {
		return nil, nil, decompErrorf(opSchurc, err)
	}
	b, err := full.Submatrix(0, pos-1, pos, n-1)
	if err != nil {
		return nil, nil, decompErrorf(opSchurc, err)
	}
	lower, err := full.Submatrix(pos, n-1, 0, pos-1)
	if err != nil {
		return nil, nil, decompErrorf(opSchurc, err)
	}
	c, err := full.Submatrix(pos, n-1, pos, n-1)
	if err != nil {
		return nil, nil, decompErrorf(opSchurc, err)
	}
	invA, err := Inverse(a)
	if err != nil {
		return nil, nil, decompErrorf(opSchurc, ErrRankDeficient)
	}
	t, err := mat.Mul(lower, invA)
	if err != nil {
		return nil, nil, decompErrorf(opSchurc, err)
	}
	t, err = mat.Mul(t, b)
	if err != nil {
		return nil, nil, decompErrorf(opSchurc, err)
	}
	s, err := mat.Sub(c, t)
	if err != nil {
		return nil, nil, decompErrorf(opSchurc, err)
	}
	return s, invA, nil
}

// SchurComplementSqrt returns the lower Cholesky factor of the Schur
// complement together with A⁻¹. The complement must be symmetric
// positive definite.
//
// Errors: mat.ErrNilMatrix, mat.ErrNonSquare, mat.ErrOutOfRange,
// ErrRankDeficient, ErrNotSPD.
func SchurComplementSqrt(m mat.Matrix, pos int) (*mat.Dense, *mat.Dense, error) {
	s, invA, err := SchurComplement(m, pos)
	if err != nil {
		return nil, nil, err
	}
	// Rounding in the elimination leaves the complement asymmetric at the
	// last bit; restore exact symmetry before factoring.
	if s, err = mat.Symmetrize(s); err != nil {
		return nil, nil, decompErrorf(opSchurc, err)
	}
	ch, err := NewCholeskyOf(s)
	if err != nil {
		return nil, nil, err
	}
	if err = ch.Decompose(); err != nil {
		return nil, nil, err
	}
	spd, err := ch.IsSPD()
	if err != nil {
		return nil, nil, err
	}
	if !spd {
		return nil, nil, decompErrorf(opSchurc, ErrNotSPD)
	}
	l, err := ch.L()
	if err != nil {
		return nil, nil, err
	}
	return l, invA, nil
}
