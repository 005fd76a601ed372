// SPDX-License-Identifier: MIT

// Package mat provides core linear algebra primitives for array-based
// computations. Dense is the concrete, row-major implementation of the
// Matrix interface, storing elements in a flat slice for performance and
// cache friendliness. A Dense value owns its backing buffer exclusively:
// distinct instances never alias, and submatrix extraction always copies.
package mat

import (
	"fmt"
	"math"
	"math/rand"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
// Invariants: r >= 1, c >= 1, len(data) == r*c.
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Stage 3 (Finalize): return new Dense or ErrInvalidDimensions.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	data := make([]float64, rows*cols)

	return &Dense{r: rows, c: cols, data: data}, nil
}

// NewDenseData creates an r×c Dense from a row-major data slice.
// Stage 1 (Validate): shape > 0, finite content, len(data) == rows*cols.
// Stage 2 (Prepare): copy the slice — the caller keeps ownership of data.
// Errors: ErrInvalidDimensions, ErrBadData, ErrNaNInf.
// Complexity: O(r*c).
func NewDenseData(rows, cols int, data []float64) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(data) != rows*cols {
		return nil, ErrBadData
	}
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrNaNInf
		}
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Dense{r: rows, c: cols, data: buf}, nil
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Determinism: fixed i-loop; single write per diagonal cell.
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ { // fixed i order guarantees reproducibility
		m.data[i*n+i] = 1.0
	}

	return m, nil
}

// NewDiagonal builds a square matrix with d on the main diagonal.
// Errors: ErrInvalidDimensions for an empty slice, ErrNilMatrix for nil.
// Complexity: O(n^2).
func NewDiagonal(d []float64) (*Dense, error) {
	if d == nil {
		return nil, ErrNilMatrix
	}
	n := len(d)
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = d[i]
	}

	return m, nil
}

// NewUniformRandom fills an r×c matrix with uniform samples from [lo, hi).
// Stage 1 (Validate): shape, rng non-nil, lo < hi and both finite.
// Stage 2 (Execute): one rng draw per element in flat order (deterministic
// for a seeded source).
// Errors: ErrInvalidDimensions, ErrNilRand, ErrNaNInf, ErrInvalidInterval.
// Complexity: O(r*c).
func NewUniformRandom(rows, cols int, lo, hi float64, rng *rand.Rand) (*Dense, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) {
		return nil, ErrNaNInf
	}
	if lo >= hi {
		return nil, ErrInvalidInterval
	}
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	span := hi - lo
	for i := range m.data {
		m.data[i] = lo + span*rng.Float64()
	}

	return m, nil
}

// NewGaussianRandom fills an r×c matrix with N(mean, sd²) samples.
// Errors: ErrInvalidDimensions, ErrNilRand, ErrNaNInf, ErrInvalidStdDev.
// Complexity: O(r*c).
func NewGaussianRandom(rows, cols int, mean, sd float64, rng *rand.Rand) (*Dense, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if math.IsNaN(mean) || math.IsInf(mean, 0) || math.IsNaN(sd) || math.IsInf(sd, 0) {
		return nil, ErrNaNInf
	}
	if sd <= 0 {
		return nil, ErrInvalidStdDev
	}
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range m.data {
		m.data[i] = mean + sd*rng.NormFloat64()
	}

	return m, nil
}

// Rows returns the number of rows in the matrix. Complexity: O(1).
func (m *Dense) Rows() int {
	return m.r
}

// Cols returns the number of columns in the matrix. Complexity: O(1).
func (m *Dense) Cols() int {
	return m.c
}

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}
	if col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Errors: ErrOutOfRange. Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Errors: ErrOutOfRange. Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// linearToFlat translates a linear index under the given Order into the
// row-major flat offset used by the backing buffer.
// ColumnMajor: idx = col*rows + row (the package default convention).
// RowMajor:    idx = row*cols + col (identical to the storage layout).
func (m *Dense) linearToFlat(method string, idx int, order Order) (int, error) {
	if idx < 0 || idx >= m.r*m.c {
		return 0, denseErrorf(method, idx, -1, ErrOutOfRange)
	}
	if order == RowMajor {
		return idx, nil
	}
	row := idx % m.r
	col := idx / m.r

	return row*m.c + col, nil
}

// AtLinear retrieves the element at a linear index under the given Order.
// The ColumnMajor convention (idx = col*rows + row) is the package default;
// pass RowMajor to address the storage layout directly.
// Errors: ErrOutOfRange. Complexity: O(1).
func (m *Dense) AtLinear(idx int, order Order) (float64, error) {
	flat, err := m.linearToFlat("AtLinear", idx, order)
	if err != nil {
		return 0, err
	}

	return m.data[flat], nil
}

// SetLinear assigns v at a linear index under the given Order.
// Errors: ErrOutOfRange. Complexity: O(1).
func (m *Dense) SetLinear(idx int, v float64, order Order) error {
	flat, err := m.linearToFlat("SetLinear", idx, order)
	if err != nil {
		return err
	}
	m.data[flat] = v

	return nil
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() Matrix {
	copyData := make([]float64, len(m.data))
	copy(copyData, m.data)

	return &Dense{r: m.r, c: m.c, data: copyData}
}

// CloneDense is Clone with a concrete return type for callers that need
// direct buffer access without a type assertion.
func (m *Dense) CloneDense() *Dense {
	copyData := make([]float64, len(m.data))
	copy(copyData, m.data)

	return &Dense{r: m.r, c: m.c, data: copyData}
}

// CopyFrom overwrites m with a deep value copy of src.
// Shapes must match exactly; nothing is mutated on error (atomic failure).
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func (m *Dense) CopyFrom(src Matrix) error {
	if err := ValidateNotNil(src); err != nil {
		return err
	}
	if src.Rows() != m.r || src.Cols() != m.c {
		return ErrDimensionMismatch
	}
	if d, ok := src.(*Dense); ok {
		copy(m.data, d.data)

		return nil
	}
	var v float64
	var err error
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			v, err = src.At(i, j)
			if err != nil {
				return err
			}
			m.data[i*m.c+j] = v
		}
	}

	return nil
}

// Resize reallocates the backing buffer for the new shape, zero-filling all
// elements. This is the only way to change a Dense's dimensions; every other
// operation preserves shape. Atomic: on error the receiver is untouched.
// Errors: ErrInvalidDimensions. Complexity: O(rows*cols).
func (m *Dense) Resize(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return ErrInvalidDimensions
	}
	m.r, m.c = rows, cols
	m.data = make([]float64, rows*cols)

	return nil
}

// Submatrix extracts the block [r0..r1]×[c0..c1] (both endpoints included)
// into a freshly allocated Dense. Extraction always copies — the result
// never aliases the source buffer.
// Errors: ErrOutOfRange when the bounds violate start ≤ end, end < extent.
// Complexity: O(block).
func (m *Dense) Submatrix(r0, r1, c0, c1 int) (*Dense, error) {
	if err := ValidateSubmatrixRange(m.r, m.c, r0, r1, c0, c1); err != nil {
		return nil, err
	}
	out := &Dense{r: r1 - r0 + 1, c: c1 - c0 + 1}
	out.data = make([]float64, out.r*out.c)
	for i := 0; i < out.r; i++ {
		copy(out.data[i*out.c:(i+1)*out.c], m.data[(r0+i)*m.c+c0:(r0+i)*m.c+c1+1])
	}

	return out, nil
}

// SetSubmatrix writes src into m starting at (r0, c0).
// The whole block must fit: r0+src.Rows ≤ Rows, c0+src.Cols ≤ Cols.
// Atomic: bounds are validated before the first write.
// Errors: ErrNilMatrix, ErrOutOfRange. Complexity: O(block).
func (m *Dense) SetSubmatrix(r0, c0 int, src Matrix) error {
	if err := ValidateNotNil(src); err != nil {
		return err
	}
	sr, sc := src.Rows(), src.Cols()
	if err := ValidateSubmatrixRange(m.r, m.c, r0, r0+sr-1, c0, c0+sc-1); err != nil {
		return err
	}
	if d, ok := src.(*Dense); ok {
		for i := 0; i < sr; i++ {
			copy(m.data[(r0+i)*m.c+c0:(r0+i)*m.c+c0+sc], d.data[i*sc:(i+1)*sc])
		}

		return nil
	}
	var v float64
	var err error
	for i := 0; i < sr; i++ {
		for j := 0; j < sc; j++ {
			v, err = src.At(i, j)
			if err != nil {
				return err
			}
			m.data[(r0+i)*m.c+c0+j] = v
		}
	}

	return nil
}

// Raw exposes the live row-major backing slice. Mutating it mutates the
// matrix. Intended for kernel fast-paths (decomposers, norms); everyday
// callers should prefer At/Set.
func (m *Dense) Raw() []float64 {
	return m.data
}

// Equals reports element-wise equality |a[i,j]-b[i,j]| ≤ threshold.
// A zero threshold demands exact equality. Shapes must match. A NaN
// element never compares equal to anything, itself included.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf/ErrNegativeThreshold
// for a malformed threshold. Complexity: O(r*c).
func Equals(a, b Matrix, threshold float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, err
	}
	if err := ValidateThreshold(threshold); err != nil {
		return false, err
	}

	// Fast path: both *Dense → single flat comparison loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range da.data {
				// Negated form so a NaN difference reports unequal.
				if !(math.Abs(da.data[idx]-db.data[idx]) <= threshold) {
					return false, nil
				}
			}

			return true, nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var av, bv float64
	var err error
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			av, err = a.At(i, j)
			if err != nil {
				return false, err
			}
			bv, err = b.At(i, j)
			if err != nil {
				return false, err
			}
			if !(math.Abs(av-bv) <= threshold) {
				return false, nil
			}
		}
	}

	return true, nil
}

// EqualsExact is Equals with a zero threshold.
func EqualsExact(a, b Matrix) (bool, error) {
	return Equals(a, b, 0)
}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(r*c) for string construction.
func (m *Dense) String() string {
	var s string
	var i, j int
	for i = 0; i < m.r; i++ {
		s += "["
		for j = 0; j < m.c; j++ {
			s += fmt.Sprintf("%g", m.data[i*m.c+j])
			if j < m.c-1 {
				s += ", "
			}
		}
		s += "]\n"
	}

	return s
}
