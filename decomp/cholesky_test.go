// SPDX-License-Identifier: MIT
// Package decomp_test contains unit tests for the Cholesky decomposer.

package decomp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matfact/decomp"
	"github.com/katalvlaran/matfact/mat"
)

func TestCholeskyLifecycle(t *testing.T) {
	t.Parallel()
	d := decomp.NewCholesky()
	require.ErrorIs(t, d.Decompose(), decomp.ErrNoInput)
	_, err := d.IsSPD()
	require.ErrorIs(t, err, decomp.ErrNotAvailable)

	require.ErrorIs(t, d.SetMatrix(nil), mat.ErrNilMatrix)
	rect := MustDenseData(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.ErrorIs(t, d.SetMatrix(rect), mat.ErrNonSquare)
}

func TestCholeskyKnownFactor(t *testing.T) {
	t.Parallel()
	a := MustDenseData(t, 2, 2, []float64{
		4, 2,
		2, 3,
	})
	d, err := decomp.NewCholeskyOf(a)
	require.NoError(t, err)
	require.NoError(t, d.Decompose())

	spd, err := d.IsSPD()
	require.NoError(t, err)
	require.True(t, spd)

	l, err := d.L()
	require.NoError(t, err)
	want := MustDenseData(t, 2, 2, []float64{
		2, 0,
		1, math.Sqrt(2),
	})
	requireAllClose(t, want, l, 1e-12)
	requireAllClose(t, a, MustMul(t, l, MustTranspose(t, l)), 1e-12)
}

func TestCholeskyReconstruction(t *testing.T) {
	t.Parallel()
	a := MustDenseData(t, 3, 3, []float64{
		25, 15, -5,
		15, 18, 0,
		-5, 0, 11,
	})
	d, err := decomp.NewCholeskyOf(a)
	require.NoError(t, err)
	require.NoError(t, d.Decompose())

	spd, err := d.IsSPD()
	require.NoError(t, err)
	require.True(t, spd)

	l, err := d.L()
	require.NoError(t, err)
	// Strictly lower triangular with positive diagonal.
	for i := 0; i < 3; i++ {
		di, aerr := l.At(i, i)
		require.NoError(t, aerr)
		require.Greater(t, di, 0.0)
		for j := i + 1; j < 3; j++ {
			v, aerr := l.At(i, j)
			require.NoError(t, aerr)
			require.Zero(t, v)
		}
	}
	requireAllClose(t, a, MustMul(t, l, MustTranspose(t, l)), 1e-10)
}

// Decompose never fails on a non-SPD input; the verdict moves to IsSPD.
func TestCholeskyNonSPD(t *testing.T) {
	t.Parallel()
	for name, a := range map[string]*mat.Dense{
		"indefinite": MustDenseData(t, 2, 2, []float64{
			1, 2,
			2, 1,
		}),
		"negative": MustDenseData(t, 2, 2, []float64{
			-4, 0,
			0, -9,
		}),
		"asymmetric": MustDenseData(t, 2, 2, []float64{
			4, 1,
			2, 3,
		}),
	} {
		a := a
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			d, err := decomp.NewCholeskyOf(a)
			require.NoError(t, err)
			require.NoError(t, d.Decompose())
			spd, err := d.IsSPD()
			require.NoError(t, err)
			require.False(t, spd)

			b := MustDenseData(t, 2, 1, []float64{1, 1})
			_, err = d.Solve(b)
			require.ErrorIs(t, err, decomp.ErrNotSPD)
		})
	}
}

func TestCholeskySolve(t *testing.T) {
	t.Parallel()
	a := MustDenseData(t, 3, 3, []float64{
		25, 15, -5,
		15, 18, 0,
		-5, 0, 11,
	})
	b := MustDenseData(t, 3, 2, []float64{
		1, 0,
		2, 1,
		3, -1,
	})
	d, err := decomp.NewCholeskyOf(a)
	require.NoError(t, err)
	require.NoError(t, d.Decompose())

	x, err := d.Solve(b)
	require.NoError(t, err)
	requireAllClose(t, b, MustMul(t, a, x), 1e-9)

	bad := MustDenseData(t, 2, 1, []float64{1, 2})
	_, err = d.Solve(bad)
	require.ErrorIs(t, err, mat.ErrDimensionMismatch)
}
