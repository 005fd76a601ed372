// SPDX-License-Identifier: MIT
// Package stats_test contains unit tests for the Gaussian distribution.

package stats_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matfact/mat"
	"github.com/katalvlaran/matfact/stats"
)

func TestNewNormalValidation(t *testing.T) {
	t.Parallel()
	_, err := stats.NewNormal(0, 0)
	require.ErrorIs(t, err, mat.ErrInvalidStdDev)
	_, err = stats.NewNormal(0, -1)
	require.ErrorIs(t, err, mat.ErrInvalidStdDev)
	_, err = stats.NewNormal(math.NaN(), 1)
	require.ErrorIs(t, err, mat.ErrNaNInf)
	_, err = stats.NewNormal(0, math.Inf(1))
	require.ErrorIs(t, err, mat.ErrNaNInf)
}

func TestNormalMoments(t *testing.T) {
	t.Parallel()
	n, err := stats.NewNormal(2, 3)
	require.NoError(t, err)
	require.Equal(t, 2.0, n.Mean())
	require.Equal(t, 3.0, n.StdDev())
	require.Equal(t, 9.0, n.Variance())
	require.Equal(t, 0.0, n.Standardize(2))
	require.Equal(t, 1.0, n.Standardize(5))
}

func TestNormalPdf(t *testing.T) {
	t.Parallel()
	n, err := stats.NewNormal(0, 1)
	require.NoError(t, err)
	// Peak of the standard normal: 1/sqrt(2π).
	require.InDelta(t, 0.3989422804014327, n.Pdf(0), 1e-15)
	// Symmetry about the mean.
	require.InDelta(t, n.Pdf(-1.3), n.Pdf(1.3), 1e-15)
}

func TestNormalCdf(t *testing.T) {
	t.Parallel()
	n, err := stats.NewNormal(5, 2)
	require.NoError(t, err)
	require.InDelta(t, 0.5, n.Cdf(5), 1e-15)
	// One sigma: ~0.8413.
	require.InDelta(t, 0.8413447460685429, n.Cdf(7), 1e-12)
	// Complement symmetry.
	require.InDelta(t, 1.0, n.Cdf(3)+n.Cdf(7), 1e-12)
}

func TestNormalInvCdfRoundtrip(t *testing.T) {
	t.Parallel()
	n, err := stats.NewNormal(-1, 0.5)
	require.NoError(t, err)
	for _, p := range []float64{0.01, 0.25, 0.5, 0.9, 0.999} {
		x, qerr := n.InvCdf(p)
		require.NoError(t, qerr)
		require.InDelta(t, p, n.Cdf(x), 1e-12)
	}
	require.Equal(t, -1.0, mustQuantile(t, n, 0.5))

	for _, p := range []float64{0, 1, -0.5, 2, math.NaN()} {
		_, qerr := n.InvCdf(p)
		require.ErrorIs(t, qerr, stats.ErrInvalidProbability)
	}
}

func mustQuantile(t *testing.T, n *stats.Normal, p float64) float64 {
	t.Helper()
	x, err := n.InvCdf(p)
	require.NoError(t, err)
	return x
}

func TestNormalSample(t *testing.T) {
	t.Parallel()
	n, err := stats.NewNormal(10, 0.1)
	require.NoError(t, err)

	_, err = n.Sample(nil)
	require.ErrorIs(t, err, mat.ErrNilRand)

	// Seeded sampling: the empirical mean of many draws lands near 10.
	rng := rand.New(rand.NewSource(3))
	sum := 0.0
	const draws = 10000
	for i := 0; i < draws; i++ {
		x, serr := n.Sample(rng)
		require.NoError(t, serr)
		sum += x
	}
	require.InDelta(t, 10.0, sum/draws, 0.01)
}
