// SPDX-License-Identifier: MIT
// Package decomp_test contains unit tests for the pivoted LU decomposer.

package decomp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matfact/decomp"
	"github.com/katalvlaran/matfact/mat"
)

func TestLULifecycle(t *testing.T) {
	t.Parallel()
	d := decomp.NewLU()
	require.False(t, d.IsReady())
	require.False(t, d.IsAvailable())

	require.ErrorIs(t, d.Decompose(), decomp.ErrNoInput)
	_, err := d.U()
	require.ErrorIs(t, err, decomp.ErrNotAvailable)

	a := MustDenseData(t, 2, 2, []float64{4, 3, 6, 3})
	require.NoError(t, d.SetMatrix(a))
	require.True(t, d.IsReady())
	require.False(t, d.IsAvailable())

	require.NoError(t, d.Decompose())
	require.True(t, d.IsAvailable())

	// Replacing the input invalidates the previous result.
	require.NoError(t, d.SetMatrix(a))
	require.False(t, d.IsAvailable())
	_, err = d.Det()
	require.ErrorIs(t, err, decomp.ErrNotAvailable)
}

func TestLURejectsWideAndNil(t *testing.T) {
	t.Parallel()
	d := decomp.NewLU()
	require.ErrorIs(t, d.SetMatrix(nil), mat.ErrNilMatrix)
	wide := MustDenseData(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.ErrorIs(t, d.SetMatrix(wide), mat.ErrDimensionMismatch)
}

// P·A = PL·U, equivalently A = L·U with L in natural row order.
func TestLUReconstruction(t *testing.T) {
	t.Parallel()
	for name, a := range map[string]*mat.Dense{
		"square": MustDenseData(t, 3, 3, []float64{
			2, 1, 1,
			4, -6, 0,
			-2, 7, 2,
		}),
		"tall": scenarioTall(t),
	} {
		a := a
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			d, err := decomp.NewLUOf(a)
			require.NoError(t, err)
			require.NoError(t, d.Decompose())

			l, err := d.L()
			require.NoError(t, err)
			u, err := d.U()
			require.NoError(t, err)
			requireAllClose(t, a, MustMul(t, l, u), 1e-10)

			// Pivoted form: row piv[i] of A equals row i of PL·U.
			pl, err := d.PivotedL()
			require.NoError(t, err)
			piv, err := d.Pivot()
			require.NoError(t, err)
			plu := MustMul(t, pl, u)
			for i := range piv {
				for j := 0; j < a.Cols(); j++ {
					want, aerr := a.At(piv[i], j)
					require.NoError(t, aerr)
					got, gerr := plu.At(i, j)
					require.NoError(t, gerr)
					require.InDelta(t, want, got, 1e-10)
				}
			}

			// piv is a permutation of 0..m-1.
			seen := make(map[int]bool, len(piv))
			for _, p := range piv {
				require.GreaterOrEqual(t, p, 0)
				require.Less(t, p, a.Rows())
				require.False(t, seen[p])
				seen[p] = true
			}
		})
	}
}

func TestLUUnitLowerAndUpperShape(t *testing.T) {
	t.Parallel()
	d, err := decomp.NewLUOf(scenarioTall(t))
	require.NoError(t, err)
	require.NoError(t, d.Decompose())

	pl, err := d.PivotedL()
	require.NoError(t, err)
	for i := 0; i < pl.Rows(); i++ {
		for j := 0; j < pl.Cols(); j++ {
			v, aerr := pl.At(i, j)
			require.NoError(t, aerr)
			if i == j {
				require.Equal(t, 1.0, v)
			}
			if j > i {
				require.Zero(t, v)
			}
		}
	}

	u, err := d.U()
	require.NoError(t, err)
	for i := 0; i < u.Rows(); i++ {
		for j := 0; j < i; j++ {
			v, aerr := u.At(i, j)
			require.NoError(t, aerr)
			require.Zero(t, v)
		}
	}
}

func TestLUDeterminant(t *testing.T) {
	t.Parallel()
	d, err := decomp.NewLUOf(MustDenseData(t, 2, 2, []float64{4, 3, 6, 3}))
	require.NoError(t, err)
	require.NoError(t, d.Decompose())
	det, err := d.Det()
	require.NoError(t, err)
	require.InDelta(t, -6.0, det, 1e-12)

	// Rectangular inputs have no determinant.
	d2, err := decomp.NewLUOf(scenarioTall(t))
	require.NoError(t, err)
	require.NoError(t, d2.Decompose())
	_, err = d2.Det()
	require.ErrorIs(t, err, mat.ErrNonSquare)
}

func TestLUSingular(t *testing.T) {
	t.Parallel()
	d, err := decomp.NewLUOf(scenarioSingular(t))
	require.NoError(t, err)
	require.NoError(t, d.Decompose())

	sing, err := d.IsSingular(0)
	require.NoError(t, err)
	require.True(t, sing)

	det, err := d.Det()
	require.NoError(t, err)
	require.InDelta(t, 0.0, det, 1e-12)

	b := MustDenseData(t, 3, 1, []float64{1, 2, 3})
	_, err = d.Solve(b, decomp.DefaultThreshold)
	require.ErrorIs(t, err, decomp.ErrSingular)

	_, err = d.IsSingular(math.NaN())
	require.ErrorIs(t, err, decomp.ErrInvalidThreshold)
	_, err = d.IsSingular(-1)
	require.ErrorIs(t, err, decomp.ErrInvalidThreshold)
}

func TestLUSolve(t *testing.T) {
	t.Parallel()
	a := MustDenseData(t, 3, 3, []float64{
		2, 1, 1,
		4, -6, 0,
		-2, 7, 2,
	})
	b := MustDenseData(t, 3, 2, []float64{
		5, 1,
		-2, 0,
		9, 3,
	})
	d, err := decomp.NewLUOf(a)
	require.NoError(t, err)
	require.NoError(t, d.Decompose())

	x, err := d.Solve(b, decomp.DefaultThreshold)
	require.NoError(t, err)
	requireAllClose(t, b, MustMul(t, a, x), 1e-9)

	badRows := MustDenseData(t, 2, 1, []float64{1, 2})
	_, err = d.Solve(badRows, decomp.DefaultThreshold)
	require.ErrorIs(t, err, mat.ErrDimensionMismatch)
	_, err = d.Solve(nil, decomp.DefaultThreshold)
	require.ErrorIs(t, err, mat.ErrNilMatrix)
}

// Decompose is idempotent: re-running on an unchanged input reproduces
// the factors bit for bit.
func TestLUDecomposeIdempotent(t *testing.T) {
	t.Parallel()
	d, err := decomp.NewLUOf(scenarioTall(t))
	require.NoError(t, err)
	require.NoError(t, d.Decompose())
	u1, err := d.U()
	require.NoError(t, err)

	require.NoError(t, d.Decompose())
	u2, err := d.U()
	require.NoError(t, err)

	same, err := mat.EqualsExact(u1, u2)
	require.NoError(t, err)
	require.True(t, same)
}

// The interface snapshot path must agree with the *Dense fast path.
func TestLUFallbackMatchesFastPath(t *testing.T) {
	t.Parallel()
	a := scenarioTall(t)

	fast, err := decomp.NewLUOf(a)
	require.NoError(t, err)
	require.NoError(t, fast.Decompose())
	uf, err := fast.U()
	require.NoError(t, err)

	slow, err := decomp.NewLUOf(hide{a})
	require.NoError(t, err)
	require.NoError(t, slow.Decompose())
	us, err := slow.U()
	require.NoError(t, err)

	same, err := mat.EqualsExact(uf, us)
	require.NoError(t, err)
	require.True(t, same)
}
