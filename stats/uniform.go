// SPDX-License-Identifier: MIT
// Package stats: continuous uniform distribution on [lo, hi).

package stats

import (
	"math/rand"

	"github.com/katalvlaran/matfact/mat"
)

// Operation name constants for unified error wrapping.
const (
	opNewUniform = "NewUniform"
	opInvCdf     = "InvCdf"
	opSample     = "Sample"
)

// Uniform is the continuous uniform distribution on the half-open
// interval [Lo, Hi). The zero value is unusable; construct with
// NewUniform.
type Uniform struct {
	lo, hi float64
}

// NewUniform returns the uniform distribution on [lo, hi).
//
// Errors: mat.ErrNaNInf, mat.ErrInvalidInterval (lo >= hi).
func NewUniform(lo, hi float64) (*Uniform, error) {
	if err := mat.ValidateInterval(lo, hi); err != nil {
		return nil, statsErrorf(opNewUniform, err)
	}
	return &Uniform{lo: lo, hi: hi}, nil
}

// Lo returns the inclusive lower bound.
func (u *Uniform) Lo() float64 { return u.lo }

// Hi returns the exclusive upper bound.
func (u *Uniform) Hi() float64 { return u.hi }

// Mean returns (lo+hi)/2.
func (u *Uniform) Mean() float64 { return (u.lo + u.hi) / 2 }

// Variance returns (hi-lo)²/12.
func (u *Uniform) Variance() float64 {
	w := u.hi - u.lo
	return w * w / 12
}

// Pdf returns the density at x: 1/(hi-lo) inside the interval, 0 outside.
func (u *Uniform) Pdf(x float64) float64 {
	if x < u.lo || x >= u.hi {
		return 0
	}
	return 1 / (u.hi - u.lo)
}

// Cdf returns P(X <= x), clamped to [0, 1].
func (u *Uniform) Cdf(x float64) float64 {
	switch {
	case x < u.lo:
		return 0
	case x >= u.hi:
		return 1
	default:
		return (x - u.lo) / (u.hi - u.lo)
	}
}

// InvCdf returns the quantile x with Cdf(x) = p.
//
// Errors: ErrInvalidProbability (p outside [0, 1] or NaN).
func (u *Uniform) InvCdf(p float64) (float64, error) {
	if !(p >= 0 && p <= 1) {
		return 0, statsErrorf(opInvCdf, ErrInvalidProbability)
	}
	return u.lo + p*(u.hi-u.lo), nil
}

// Sample draws one variate using the supplied source.
//
// Errors: mat.ErrNilRand.
func (u *Uniform) Sample(rng *rand.Rand) (float64, error) {
	if rng == nil {
		return 0, statsErrorf(opSample, mat.ErrNilRand)
	}
	return u.lo + rng.Float64()*(u.hi-u.lo), nil
}
