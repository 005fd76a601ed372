// SPDX-License-Identifier: MIT
// Package decomp_test contains shared test fixtures and utilities.
//
// Purpose:
//   - Provide deterministic matrix fixtures and reconstruction checks
//     used by every decomposer suite.
//   - Keep all data finite and well-conditioned unless a test explicitly
//     probes a degenerate case.

package decomp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matfact/mat"
)

// hide wraps any Matrix to mask its concrete type, forcing the
// decomposers onto the interface snapshot path instead of the *Dense
// fast path.
type hide struct{ mat.Matrix }

// MustDenseData builds an r×c *Dense from row-major data or aborts.
func MustDenseData(t *testing.T, r, c int, data []float64) *mat.Dense {
	t.Helper()
	m, err := mat.NewDenseData(r, c, data)
	require.NoError(t, err)
	return m
}

// MustIdentity allocates the n×n identity or aborts.
func MustIdentity(t *testing.T, n int) *mat.Dense {
	t.Helper()
	m, err := mat.NewIdentity(n)
	require.NoError(t, err)
	return m
}

// MustMul multiplies or aborts.
func MustMul(t *testing.T, a, b mat.Matrix) *mat.Dense {
	t.Helper()
	p, err := mat.Mul(a, b)
	require.NoError(t, err)
	return p
}

// MustTranspose transposes or aborts.
func MustTranspose(t *testing.T, a mat.Matrix) *mat.Dense {
	t.Helper()
	at, err := mat.Transpose(a)
	require.NoError(t, err)
	return at
}

// requireAllClose asserts element-wise closeness within tol.
func requireAllClose(t *testing.T, want, got mat.Matrix, tol float64) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows())
	require.Equal(t, want.Cols(), got.Cols())
	for i := 0; i < want.Rows(); i++ {
		for j := 0; j < want.Cols(); j++ {
			w, err := want.At(i, j)
			require.NoError(t, err)
			g, err := got.At(i, j)
			require.NoError(t, err)
			require.InDeltaf(t, w, g, tol, "element (%d,%d)", i, j)
		}
	}
}

// requireOrthonormalCols asserts QᵀQ ≈ I within tol.
func requireOrthonormalCols(t *testing.T, q mat.Matrix, tol float64) {
	t.Helper()
	g := MustMul(t, MustTranspose(t, q), q)
	requireAllClose(t, MustIdentity(t, q.Cols()), g, tol)
}

// scenarioTall is the 4×3 fixture used across the QR and SVD suites.
func scenarioTall(t *testing.T) *mat.Dense {
	t.Helper()
	return MustDenseData(t, 4, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		6, 5, 4,
		3, 2, 1,
	})
}

// scenarioSingular has two identical rows, hence rank 2.
func scenarioSingular(t *testing.T) *mat.Dense {
	t.Helper()
	return MustDenseData(t, 3, 3, []float64{
		1, 2, 3,
		1, 2, 3,
		4, 5, 6,
	})
}
