// SPDX-License-Identifier: MIT
// Package stats: univariate Gaussian distribution.

package stats

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/matfact/mat"
)

const opNewNormal = "NewNormal"

// sqrt2 keeps the Cdf/InvCdf pair exactly inverse of each other.
const sqrt2 = math.Sqrt2

// Normal is the Gaussian distribution N(mean, sd²). The zero value is
// unusable; construct with NewNormal.
type Normal struct {
	mean, sd float64
}

// NewNormal returns the Gaussian distribution with the given mean and
// standard deviation.
//
// Errors: mat.ErrNaNInf, mat.ErrInvalidStdDev (sd <= 0).
func NewNormal(mean, sd float64) (*Normal, error) {
	if math.IsNaN(mean) || math.IsInf(mean, 0) || math.IsNaN(sd) || math.IsInf(sd, 0) {
		return nil, statsErrorf(opNewNormal, mat.ErrNaNInf)
	}
	if sd <= 0 {
		return nil, statsErrorf(opNewNormal, mat.ErrInvalidStdDev)
	}
	return &Normal{mean: mean, sd: sd}, nil
}

// Mean returns the location parameter.
func (n *Normal) Mean() float64 { return n.mean }

// StdDev returns the scale parameter.
func (n *Normal) StdDev() float64 { return n.sd }

// Variance returns sd².
func (n *Normal) Variance() float64 { return n.sd * n.sd }

// Pdf returns the density at x.
func (n *Normal) Pdf(x float64) float64 {
	z := (x - n.mean) / n.sd
	return math.Exp(-z*z/2) / (n.sd * math.Sqrt(2*math.Pi))
}

// Cdf returns P(X <= x) through the error function.
func (n *Normal) Cdf(x float64) float64 {
	return 0.5 * (1 + math.Erf((x-n.mean)/(n.sd*sqrt2)))
}

// InvCdf returns the quantile x with Cdf(x) = p.
//
// Errors: ErrInvalidProbability (p outside the open interval (0, 1)).
func (n *Normal) InvCdf(p float64) (float64, error) {
	if !(p > 0 && p < 1) {
		return 0, statsErrorf(opInvCdf, ErrInvalidProbability)
	}
	return n.mean + n.sd*sqrt2*math.Erfinv(2*p-1), nil
}

// Standardize maps x to its z-score (x-mean)/sd.
func (n *Normal) Standardize(x float64) float64 {
	return (x - n.mean) / n.sd
}

// Sample draws one variate using the supplied source.
//
// Errors: mat.ErrNilRand.
func (n *Normal) Sample(rng *rand.Rand) (float64, error) {
	if rng == nil {
		return 0, statsErrorf(opSample, mat.ErrNilRand)
	}
	return n.mean + n.sd*rng.NormFloat64(), nil
}
