// SPDX-License-Identifier: MIT
// Package mat: universal operations on any Matrix implementation —
// element-wise addition, subtraction, Hadamard product, matrix
// multiplication, transpose, scalar scaling, matrix-vector product and
// symmetrization. All functions perform strict fail-fast validation and
// return clear errors on dimension mismatches.
//
// Every operation exists in exactly one implementation: a destination-writing
// kernel. The value-returning form allocates a fresh Dense and delegates; the
// in-place form passes an operand as the destination. No logic is duplicated
// between the two surfaces.

package mat

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd        = "Add"
	opSub        = "Sub"
	opMul        = "Mul"
	opHadamard   = "Hadamard"
	opScale      = "Scale"
	opTranspose  = "Transpose"
	opMatVec     = "MatVec"
	opSymmetrize = "Symmetrize"
)

// matErrorf wraps err with an operation tag, preserving the original error
// via %w so callers can still match sentinels with errors.Is.
// Use only when err != nil.
func matErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSubInto computes dst = a + sign*b element-wise for sign ∈ {+1, -1}.
// All three shapes must already match (callers validate). dst may alias a
// or b — the kernel is a pure element-wise map, so in-place use is safe.
//
// Implementation:
//   - Stage 1: Fast-path when all operands are *Dense — single flat loop.
//   - Stage 2: Fallback At/Set with fixed i→j order.
//
// Complexity: Time O(r*c), Space O(1).
func addSubInto(dst *Dense, a, b Matrix, sign float64, opTag string) error {
	rows, cols := a.Rows(), a.Cols()

	// Fast path: *Dense with *Dense → single flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			length := rows * cols
			for idx := 0; idx < length; idx++ { // deterministic 0..n-1
				dst.data[idx] = da.data[idx] + sign*db.data[idx]
			}

			return nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var i, j int
	var av, bv float64
	var err error
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			av, err = a.At(i, j)
			if err != nil {
				return matErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			bv, err = b.At(i, j)
			if err != nil {
				return matErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			dst.data[i*cols+j] = av + sign*bv
		}
	}

	return nil
}

// addSub validates, allocates a fresh result and runs the shared kernel.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matErrorf(opTag, err)
	}
	res, err := NewDense(a.Rows(), a.Cols())
	if err != nil {
		return nil, matErrorf(opTag, err)
	}
	if err = addSubInto(res, a, b, sign, opTag); err != nil {
		return nil, err
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B into a fresh Dense.
// Inputs are never mutated.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A − B into a fresh Dense.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// AddInPlace accumulates dst += b using the shared kernel (no extra buffer).
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func AddInPlace(dst *Dense, b Matrix) error {
	if err := ValidateBinarySameShape(dst, b); err != nil {
		return matErrorf(opAdd, err)
	}

	return addSubInto(dst, dst, b, +1, opAdd)
}

// SubInPlace computes dst -= b using the shared kernel.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func SubInPlace(dst *Dense, b Matrix) error {
	if err := ValidateBinarySameShape(dst, b); err != nil {
		return matErrorf(opSub, err)
	}

	return addSubInto(dst, dst, b, -1, opSub)
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: If A and B are *Dense, use i→k→j with row-major strides and
//     skip zeros; otherwise use i→j→k with a fixed order.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matErrorf(opMul, err)
	}
	var (
		i, j, k         int
		av, bv, current float64
	)

	// Fast-path for two Dense matrices: row-major i→k→j accumulation.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var rowOffsetA, rowOffsetB, rowOffsetR int
			for i = 0; i < aRows; i++ {
				rowOffsetA = i * aCols
				rowOffsetR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowOffsetA+k]
					if av == 0 {
						continue // skip zero for performance
					}
					rowOffsetB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
					}
				}
			}

			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k).
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = 0
			for k = 0; k < aCols; k++ {
				av, err = a.At(i, k)
				if err != nil {
					return nil, matErrorf(opMul, fmt.Errorf("At(%d,%d): %w", i, k, err))
				}
				if av == 0 {
					continue
				}
				bv, err = b.At(k, j)
				if err != nil {
					return nil, matErrorf(opMul, fmt.Errorf("At(%d,%d): %w", k, j, err))
				}
				current += av * bv
			}
			res.data[i*bCols+j] = current
		}
	}

	return res, nil
}

// Hadamard computes the element-wise product (a ⊙ b) into a fresh Dense.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func Hadamard(a, b Matrix) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matErrorf(opHadamard, err)
	}
	res, err := NewDense(a.Rows(), a.Cols())
	if err != nil {
		return nil, matErrorf(opHadamard, err)
	}
	if err = hadamardInto(res, a, b); err != nil {
		return nil, err
	}

	return res, nil
}

// HadamardInPlace computes dst ⊙= b using the shared kernel.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func HadamardInPlace(dst *Dense, b Matrix) error {
	if err := ValidateBinarySameShape(dst, b); err != nil {
		return matErrorf(opHadamard, err)
	}

	return hadamardInto(dst, dst, b)
}

// hadamardInto writes a ⊙ b into dst (shapes already validated; dst may
// alias a or b — pure element-wise map). Complexity: O(r*c).
func hadamardInto(dst *Dense, a, b Matrix) error {
	rows, cols := a.Rows(), a.Cols()
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			n := rows * cols
			for idx := 0; idx < n; idx++ {
				dst.data[idx] = da.data[idx] * db.data[idx]
			}

			return nil
		}
	}

	var av, bv float64
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			av, err = a.At(i, j)
			if err != nil {
				return matErrorf(opHadamard, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			bv, err = b.At(i, j)
			if err != nil {
				return matErrorf(opHadamard, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			dst.data[i*cols+j] = av * bv
		}
	}

	return nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
// Errors: ErrNilMatrix. Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matErrorf(opScale, err)
	}
	res, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, matErrorf(opScale, err)
	}
	if err = scaleInto(res, m, alpha); err != nil {
		return nil, err
	}

	return res, nil
}

// ScaleInPlace multiplies every element of dst by alpha.
// Errors: ErrNilMatrix. Complexity: O(r*c).
func ScaleInPlace(dst *Dense, alpha float64) error {
	if dst == nil {
		return matErrorf(opScale, ErrNilMatrix)
	}

	return scaleInto(dst, dst, alpha)
}

// scaleInto writes alpha*m into dst (shapes equal by construction).
func scaleInto(dst *Dense, m Matrix, alpha float64) error {
	rows, cols := m.Rows(), m.Cols()
	if dm, ok := m.(*Dense); ok {
		n := rows * cols
		for idx := 0; idx < n; idx++ {
			dst.data[idx] = dm.data[idx] * alpha
		}

		return nil
	}

	var v float64
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return matErrorf(opScale, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			dst.data[i*cols+j] = v * alpha
		}
	}

	return nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// The original matrix is never mutated.
// Errors: ErrNilMatrix. Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matErrorf(opTranspose, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows) // dims flipped
	if err != nil {
		return nil, matErrorf(opTranspose, err)
	}

	// Fast-path for Dense → Dense: data[i*cols+j] → res.data[j*rows+i].
	var i, j int
	if dm, ok := m.(*Dense); ok {
		var baseSrc int
		for i = 0; i < rows; i++ {
			baseSrc = i * cols
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = dm.data[baseSrc+j]
			}
		}

		return res, nil
	}

	// Fallback: generic interface loop.
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return nil, matErrorf(opTranspose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// Symmetrize produces 0.5*(M + Mᵀ) for a square input.
// Errors: ErrNilMatrix, ErrNonSquare. Complexity: O(n^2).
func Symmetrize(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matErrorf(opSymmetrize, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matErrorf(opSymmetrize, err)
	}
	n := m.Rows()
	res, err := NewDense(n, n)
	if err != nil {
		return nil, matErrorf(opSymmetrize, err)
	}

	// Fast path: average mirrored pairs once over the upper triangle.
	if dm, ok := m.(*Dense); ok {
		var i, j int
		var avg float64
		for i = 0; i < n; i++ {
			res.data[i*n+i] = dm.data[i*n+i]
			for j = i + 1; j < n; j++ {
				avg = 0.5 * (dm.data[i*n+j] + dm.data[j*n+i])
				res.data[i*n+j], res.data[j*n+i] = avg, avg
			}
		}

		return res, nil
	}

	// Fallback: interface path.
	var aij, aji, avg float64
	for i := 0; i < n; i++ {
		aij, err = m.At(i, i)
		if err != nil {
			return nil, matErrorf(opSymmetrize, err)
		}
		res.data[i*n+i] = aij
		for j := i + 1; j < n; j++ {
			aij, err = m.At(i, j)
			if err != nil {
				return nil, matErrorf(opSymmetrize, err)
			}
			aji, err = m.At(j, i)
			if err != nil {
				return nil, matErrorf(opSymmetrize, err)
			}
			avg = 0.5 * (aij + aji)
			res.data[i*n+j], res.data[j*n+i] = avg, avg
		}
	}

	return res, nil
}

// SymmetrizeInPlace overwrites a square dst with 0.5*(dst + dstᵀ).
// Errors: ErrNilMatrix, ErrNonSquare. Complexity: O(n^2), Space O(1).
func SymmetrizeInPlace(dst *Dense) error {
	if dst == nil {
		return matErrorf(opSymmetrize, ErrNilMatrix)
	}
	if err := ValidateSquare(dst); err != nil {
		return matErrorf(opSymmetrize, err)
	}
	n := dst.r
	var i, j int
	var avg float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			avg = 0.5 * (dst.data[i*n+j] + dst.data[j*n+i])
			dst.data[i*n+j], dst.data[j*n+i] = avg, avg
		}
	}

	return nil
}

// MatVec computes y = m * x for a column vector x.
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	// Fast-path: *Dense allows flat, row-major dot-products.
	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc, xv float64
		for i = 0; i < d.r; i++ {
			acc = 0
			base = i * d.c
			for j = 0; j < d.c; j++ {
				xv = x[j]
				if xv != 0 { // skip zero multiplications
					acc += d.data[base+j] * xv
				}
			}
			y[i] = acc
		}

		return y, nil
	}

	// Fallback: interface-based dot-products via At.
	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		y[i] = 0
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return nil, matErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// IsSymmetric reports whether |A[i,j]-A[j,i]| ≤ tol for all i<j.
// Errors: ErrNilMatrix, ErrNonSquare, threshold sentinels.
// Complexity: O(n^2), scanning only the strict upper triangle.
func IsSymmetric(m Matrix, tol float64) (bool, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return false, err
	}
	if err := ValidateThreshold(tol); err != nil {
		return false, err
	}
	n := m.Rows()
	if n <= 1 {
		return true, nil
	}
	var aij, aji float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			aij, _ = m.At(i, j) // bounds are valid after shape validation
			aji, _ = m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return false, nil
			}
		}
	}

	return true, nil
}
