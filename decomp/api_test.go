// SPDX-License-Identifier: MIT
// Package decomp_test contains unit tests for the one-shot facade.

package decomp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matfact/decomp"
	"github.com/katalvlaran/matfact/mat"
)

func TestDet(t *testing.T) {
	t.Parallel()
	det, err := decomp.Det(MustDenseData(t, 2, 2, []float64{4, 3, 6, 3}))
	require.NoError(t, err)
	require.InDelta(t, -6.0, det, 1e-12)

	det, err = decomp.Det(scenarioSingular(t))
	require.NoError(t, err)
	require.InDelta(t, 0.0, det, 1e-12)

	_, err = decomp.Det(scenarioTall(t))
	require.ErrorIs(t, err, mat.ErrNonSquare)
	_, err = decomp.Det(nil)
	require.ErrorIs(t, err, mat.ErrNilMatrix)
}

func TestInverse(t *testing.T) {
	t.Parallel()
	a := MustDenseData(t, 2, 2, []float64{4, 7, 2, 6})
	inv, err := decomp.Inverse(a)
	require.NoError(t, err)
	requireAllClose(t, MustDenseData(t, 2, 2, []float64{0.6, -0.7, -0.2, 0.4}), inv, 1e-12)
	requireAllClose(t, MustIdentity(t, 2), MustMul(t, a, inv), 1e-12)

	// Singular square input has no inverse.
	_, err = decomp.Inverse(scenarioSingular(t))
	require.ErrorIs(t, err, decomp.ErrRankDeficient)

	_, err = decomp.Inverse(nil)
	require.ErrorIs(t, err, mat.ErrNilMatrix)
}

// A⁺·A = I for a full-column-rank tall input, and A·A⁺·A = A always.
func TestPseudoInverse(t *testing.T) {
	t.Parallel()
	a := scenarioTall(t)
	pinv, err := decomp.PseudoInverse(a)
	require.NoError(t, err)
	require.Equal(t, 3, pinv.Rows())
	require.Equal(t, 4, pinv.Cols())
	requireAllClose(t, MustIdentity(t, 3), MustMul(t, pinv, a), 1e-9)

	// Wide input: A·A⁺ = I this time.
	w := MustDenseData(t, 2, 3, []float64{1, 0, 2, -1, 3, 1})
	pw, err := decomp.PseudoInverse(w)
	require.NoError(t, err)
	requireAllClose(t, MustIdentity(t, 2), MustMul(t, w, pw), 1e-9)

	// Rank-deficient square input: Penrose identity A·A⁺·A = A.
	s := scenarioSingular(t)
	ps, err := decomp.PseudoInverse(s)
	require.NoError(t, err)
	requireAllClose(t, s, MustMul(t, MustMul(t, s, ps), s), 1e-8)
}

func TestSolveDispatch(t *testing.T) {
	t.Parallel()
	// Square: exact solve.
	a := MustDenseData(t, 3, 3, []float64{
		2, 1, 1,
		4, -6, 0,
		-2, 7, 2,
	})
	b := MustDenseData(t, 3, 1, []float64{5, -2, 9})
	x, err := decomp.Solve(a, b, decomp.DefaultThreshold)
	require.NoError(t, err)
	requireAllClose(t, b, MustMul(t, a, x), 1e-9)

	// Tall: least squares through economy QR, normal equations hold.
	ta := scenarioTall(t)
	tb := MustDenseData(t, 4, 1, []float64{1, 2, 3, 4})
	tx, err := decomp.Solve(ta, tb, decomp.DefaultThreshold)
	require.NoError(t, err)
	at := MustTranspose(t, ta)
	requireAllClose(t, MustMul(t, at, tb), MustMul(t, MustMul(t, at, ta), tx), 1e-8)

	// Wide systems are not dispatched.
	wa := MustDenseData(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	wb := MustDenseData(t, 2, 1, []float64{1, 2})
	_, err = decomp.Solve(wa, wb, decomp.DefaultThreshold)
	require.ErrorIs(t, err, mat.ErrDimensionMismatch)

	_, err = decomp.Solve(nil, b, decomp.DefaultThreshold)
	require.ErrorIs(t, err, mat.ErrNilMatrix)
	_, err = decomp.Solve(a, nil, decomp.DefaultThreshold)
	require.ErrorIs(t, err, mat.ErrNilMatrix)
}

func TestRankAndCond(t *testing.T) {
	t.Parallel()
	rank, err := decomp.Rank(scenarioSingular(t))
	require.NoError(t, err)
	require.Equal(t, 2, rank)

	rank, err = decomp.Rank(scenarioTall(t))
	require.NoError(t, err)
	require.Equal(t, 3, rank)

	cond, err := decomp.Cond(MustIdentity(t, 5))
	require.NoError(t, err)
	require.InDelta(t, 1.0, cond, 1e-12)
}

func TestOrthogonalityPredicates(t *testing.T) {
	t.Parallel()
	eye := MustIdentity(t, 3)
	ok, err := decomp.IsOrthogonal(eye, 1e-12)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = decomp.IsOrthonormal(eye, 1e-12)
	require.NoError(t, err)
	require.True(t, ok)

	// Scaled identity: orthogonal columns, but not unit length.
	scaled, err := mat.Scale(eye, 2)
	require.NoError(t, err)
	ok, err = decomp.IsOrthogonal(scaled, 1e-12)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = decomp.IsOrthonormal(scaled, 1e-12)
	require.NoError(t, err)
	require.False(t, ok)

	// A generic matrix is neither.
	ok, err = decomp.IsOrthogonal(scenarioSingular(t), 1e-12)
	require.NoError(t, err)
	require.False(t, ok)

	// Rotation by 30 degrees stays orthonormal.
	rot := MustDenseData(t, 2, 2, []float64{
		0.8660254037844387, -0.5,
		0.5, 0.8660254037844387,
	})
	ok, err = decomp.IsOrthonormal(rot, 1e-12)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = decomp.IsOrthogonal(nil, 1e-12)
	require.ErrorIs(t, err, mat.ErrNilMatrix)
	_, err = decomp.IsOrthogonal(eye, -1)
	require.ErrorIs(t, err, decomp.ErrInvalidThreshold)
}

func TestSkew(t *testing.T) {
	t.Parallel()
	s, err := decomp.Skew([]float64{1, 2, 3})
	require.NoError(t, err)
	requireAllClose(t, MustDenseData(t, 3, 3, []float64{
		0, -3, 2,
		3, 0, -1,
		-2, 1, 0,
	}), s, 0)

	// [v]×·w equals v×w.
	w := []float64{4, 5, 6}
	sw, err := mat.MatVec(s, w)
	require.NoError(t, err)
	cross, err := decomp.Cross([]float64{1, 2, 3}, w)
	require.NoError(t, err)
	require.Equal(t, cross, sw)

	_, err = decomp.Skew([]float64{1, 2})
	require.ErrorIs(t, err, mat.ErrDimensionMismatch)
	_, err = decomp.Skew(nil)
	require.ErrorIs(t, err, mat.ErrNilMatrix)
}

func TestSkewWithJacobian(t *testing.T) {
	t.Parallel()
	v := []float64{2, -1, 3}
	s, jac, err := decomp.SkewWithJacobian(v)
	require.NoError(t, err)
	require.Equal(t, 9, jac.Rows())
	require.Equal(t, 3, jac.Cols())

	// Column k of the Jacobian is the column-major vectorization of
	// d[v]×/dv_k; verify against finite differences with exact arithmetic
	// (entries of the skew matrix are linear in v).
	for k := 0; k < 3; k++ {
		bumped := append([]float64(nil), v...)
		bumped[k]++
		sb, serr := decomp.Skew(bumped)
		require.NoError(t, serr)
		diff, derr := mat.Sub(sb, s)
		require.NoError(t, derr)
		for idx := 0; idx < 9; idx++ {
			want, aerr := diff.AtLinear(idx, mat.ColumnMajor)
			require.NoError(t, aerr)
			got, gerr := jac.At(idx, k)
			require.NoError(t, gerr)
			require.Equal(t, want, got)
		}
	}
}

// Concrete check: [1,4,2] × [4,2,3] = [8,5,-14].
func TestCross(t *testing.T) {
	t.Parallel()
	c, err := decomp.Cross([]float64{1, 4, 2}, []float64{4, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []float64{8, 5, -14}, c)

	_, err = decomp.Cross([]float64{1, 2}, []float64{1, 2, 3})
	require.ErrorIs(t, err, mat.ErrDimensionMismatch)
	_, err = decomp.Cross([]float64{1, 2, 3}, []float64{1, 2})
	require.ErrorIs(t, err, mat.ErrDimensionMismatch)
}

func TestCrossWithJacobians(t *testing.T) {
	t.Parallel()
	a := []float64{1, 4, 2}
	b := []float64{4, 2, 3}
	c, ja, jb, err := decomp.CrossWithJacobians(a, b)
	require.NoError(t, err)
	require.Equal(t, []float64{8, 5, -14}, c)

	// d(a×b)/da = -[b]×, d(a×b)/db = [a]×.
	sb, err := decomp.Skew(b)
	require.NoError(t, err)
	negSb, err := mat.Scale(sb, -1)
	require.NoError(t, err)
	requireAllClose(t, negSb, ja, 0)

	sa, err := decomp.Skew(a)
	require.NoError(t, err)
	requireAllClose(t, sa, jb, 0)
}

func TestSchurComplement(t *testing.T) {
	t.Parallel()
	// SPD block matrix with pos = 2.
	m := MustDenseData(t, 4, 4, []float64{
		4, 1, 0, 1,
		1, 3, 1, 0,
		0, 1, 5, 1,
		1, 0, 1, 4,
	})
	s, invA, err := decomp.SchurComplement(m, 2)
	require.NoError(t, err)
	require.Equal(t, 2, s.Rows())
	require.Equal(t, 2, invA.Rows())

	// invA inverts the leading block.
	a, err := m.Submatrix(0, 1, 0, 1)
	require.NoError(t, err)
	requireAllClose(t, MustIdentity(t, 2), MustMul(t, a, invA), 1e-12)

	// S = C − M21·A⁻¹·B elementwise.
	bBlk, err := m.Submatrix(0, 1, 2, 3)
	require.NoError(t, err)
	lower, err := m.Submatrix(2, 3, 0, 1)
	require.NoError(t, err)
	cBlk, err := m.Submatrix(2, 3, 2, 3)
	require.NoError(t, err)
	want, err := mat.Sub(cBlk, MustMul(t, MustMul(t, lower, invA), bBlk))
	require.NoError(t, err)
	requireAllClose(t, want, s, 1e-12)

	// Argument validation.
	_, _, err = decomp.SchurComplement(m, 0)
	require.ErrorIs(t, err, mat.ErrOutOfRange)
	_, _, err = decomp.SchurComplement(m, 4)
	require.ErrorIs(t, err, mat.ErrOutOfRange)
	_, _, err = decomp.SchurComplement(scenarioTall(t), 1)
	require.ErrorIs(t, err, mat.ErrNonSquare)

	// Singular eliminated block.
	sing := MustDenseData(t, 3, 3, []float64{
		1, 2, 1,
		2, 4, 0,
		1, 0, 3,
	})
	_, _, err = decomp.SchurComplement(sing, 2)
	require.ErrorIs(t, err, decomp.ErrRankDeficient)
}

func TestSchurComplementSqrt(t *testing.T) {
	t.Parallel()
	m := MustDenseData(t, 4, 4, []float64{
		4, 1, 0, 1,
		1, 3, 1, 0,
		0, 1, 5, 1,
		1, 0, 1, 4,
	})
	l, invA, err := decomp.SchurComplementSqrt(m, 2)
	require.NoError(t, err)
	require.NotNil(t, invA)

	s, _, err := decomp.SchurComplement(m, 2)
	require.NoError(t, err)
	requireAllClose(t, s, MustMul(t, l, MustTranspose(t, l)), 1e-10)

	// An indefinite complement has no square root.
	ind := MustDenseData(t, 2, 2, []float64{
		1, 3,
		3, 1,
	})
	_, _, err = decomp.SchurComplementSqrt(ind, 1)
	require.ErrorIs(t, err, decomp.ErrNotSPD)
}
