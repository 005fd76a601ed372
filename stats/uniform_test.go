// SPDX-License-Identifier: MIT
// Package stats_test contains unit tests for the uniform distribution.

package stats_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matfact/mat"
	"github.com/katalvlaran/matfact/stats"
)

func TestNewUniformValidation(t *testing.T) {
	t.Parallel()
	_, err := stats.NewUniform(2, 2)
	require.ErrorIs(t, err, mat.ErrInvalidInterval)
	_, err = stats.NewUniform(5, 1)
	require.ErrorIs(t, err, mat.ErrInvalidInterval)
	_, err = stats.NewUniform(math.NaN(), 1)
	require.ErrorIs(t, err, mat.ErrNaNInf)
	_, err = stats.NewUniform(0, math.Inf(1))
	require.ErrorIs(t, err, mat.ErrNaNInf)
}

func TestUniformMoments(t *testing.T) {
	t.Parallel()
	u, err := stats.NewUniform(-1, 3)
	require.NoError(t, err)
	require.Equal(t, -1.0, u.Lo())
	require.Equal(t, 3.0, u.Hi())
	require.InDelta(t, 1.0, u.Mean(), 1e-15)
	require.InDelta(t, 16.0/12.0, u.Variance(), 1e-15)
}

func TestUniformPdfCdf(t *testing.T) {
	t.Parallel()
	u, err := stats.NewUniform(0, 4)
	require.NoError(t, err)

	require.Zero(t, u.Pdf(-0.1))
	require.Zero(t, u.Pdf(4))
	require.InDelta(t, 0.25, u.Pdf(1.5), 1e-15)

	require.Zero(t, u.Cdf(-1))
	require.Equal(t, 1.0, u.Cdf(5))
	require.InDelta(t, 0.5, u.Cdf(2), 1e-15)
}

func TestUniformInvCdfRoundtrip(t *testing.T) {
	t.Parallel()
	u, err := stats.NewUniform(-2, 6)
	require.NoError(t, err)
	for _, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
		x, qerr := u.InvCdf(p)
		require.NoError(t, qerr)
		require.InDelta(t, p, u.Cdf(x), 1e-12)
	}
	_, err = u.InvCdf(-0.1)
	require.ErrorIs(t, err, stats.ErrInvalidProbability)
	_, err = u.InvCdf(1.1)
	require.ErrorIs(t, err, stats.ErrInvalidProbability)
	_, err = u.InvCdf(math.NaN())
	require.ErrorIs(t, err, stats.ErrInvalidProbability)
}

func TestUniformSample(t *testing.T) {
	t.Parallel()
	u, err := stats.NewUniform(10, 11)
	require.NoError(t, err)

	_, err = u.Sample(nil)
	require.ErrorIs(t, err, mat.ErrNilRand)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x, serr := u.Sample(rng)
		require.NoError(t, serr)
		require.GreaterOrEqual(t, x, 10.0)
		require.Less(t, x, 11.0)
	}
}
