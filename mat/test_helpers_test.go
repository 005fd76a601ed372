// SPDX-License-Identifier: MIT
// Package mat_test contains shared test fixtures and utilities.
//
// Purpose:
//   - Provide small, deterministic helpers for building matrices and
//     comparing results.
//   - Keep all data finite and well-formed to avoid numeric-policy
//     interference.

package mat_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matfact/mat"
)

// hide wraps any Matrix to mask its concrete type from type assertions,
// forcing code under test onto the interface fallback path instead of
// the *Dense fast path.
type hide struct{ mat.Matrix }

// MustDense allocates an r×c *Dense or aborts the test.
func MustDense(t *testing.T, r, c int) *mat.Dense {
	t.Helper()
	m, err := mat.NewDense(r, c)
	require.NoError(t, err)
	return m
}

// MustDenseData builds an r×c *Dense from row-major data or aborts.
func MustDenseData(t *testing.T, r, c int, data []float64) *mat.Dense {
	t.Helper()
	m, err := mat.NewDenseData(r, c, data)
	require.NoError(t, err)
	return m
}

// MustAt reads one element or aborts the test.
func MustAt(t *testing.T, m mat.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)
	return v
}

// requireAllClose asserts element-wise closeness within tol.
func requireAllClose(t *testing.T, want, got mat.Matrix, tol float64) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows())
	require.Equal(t, want.Cols(), got.Cols())
	for i := 0; i < want.Rows(); i++ {
		for j := 0; j < want.Cols(); j++ {
			w, g := MustAt(t, want, i, j), MustAt(t, got, i, j)
			require.InDeltaf(t, w, g, tol, "element (%d,%d)", i, j)
		}
	}
}

// requireVecClose asserts element-wise closeness of two vectors.
func requireVecClose(t *testing.T, want, got []float64, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDeltaf(t, want[i], got[i], tol, "element %d", i)
	}
}

// almostEqual is a scalar helper for table-driven cases.
func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
