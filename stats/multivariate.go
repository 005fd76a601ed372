// SPDX-License-Identifier: MIT
// Package stats: multivariate Gaussian distribution.
//
// Implementation
//
//	Stage 1. Validation: the covariance must be square, match the mean
//	         dimension and pass the Cholesky SPD probe.
//	Stage 2. Precomputation: the lower Cholesky factor drives sampling
//	         (x = mean + L·z with z standard normal), while the inverse
//	         and determinant of the covariance drive the density.
//
// All derived factors are computed once at construction; the value is
// immutable afterwards and safe for concurrent reads.

package stats

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/matfact/decomp"
	"github.com/katalvlaran/matfact/mat"
)

const opNewMultivariate = "NewMultivariateNormal"

// MultivariateNormal is the k-dimensional Gaussian N(mean, cov) with a
// symmetric positive definite covariance. Construct with
// NewMultivariateNormal.
type MultivariateNormal struct {
	mean   []float64
	cov    *mat.Dense
	chol   *mat.Dense // lower Cholesky factor of cov
	invCov *mat.Dense
	basis  *mat.Dense // V from cov = V·Σ·Vᵀ; columns are independent axes
	vars   []float64  // per-axis variances, descending
	norm   float64    // (2π)^(-k/2) · det(cov)^(-1/2)
}

// NewMultivariateNormal validates the parameters and precomputes the
// factors used by Pdf and Sample.
//
// Errors: mat.ErrNilMatrix, mat.ErrNonSquare, ErrDimensionMismatch,
// decomp.ErrNotSPD.
func NewMultivariateNormal(mean []float64, cov mat.Matrix) (*MultivariateNormal, error) {
	if err := mat.ValidateSquareNonNil(cov); err != nil {
		return nil, statsErrorf(opNewMultivariate, err)
	}
	k := cov.Rows()
	if len(mean) != k {
		return nil, statsErrorf(opNewMultivariate, ErrDimensionMismatch)
	}

	ch, err := decomp.NewCholeskyOf(cov)
	if err != nil {
		return nil, err
	}
	if err = ch.Decompose(); err != nil {
		return nil, err
	}
	spd, err := ch.IsSPD()
	if err != nil {
		return nil, err
	}
	if !spd {
		return nil, statsErrorf(opNewMultivariate, decomp.ErrNotSPD)
	}
	l, err := ch.L()
	if err != nil {
		return nil, err
	}
	invCov, err := decomp.Inverse(cov)
	if err != nil {
		return nil, err
	}
	det, err := decomp.Det(cov)
	if err != nil {
		return nil, err
	}

	// An SPD covariance factors as V·Σ·Vᵀ, so the right singular vectors
	// rotate the space into independent axes with variances Σ.
	sv, err := decomp.NewSVDOf(cov)
	if err != nil {
		return nil, err
	}
	if err = sv.Decompose(); err != nil {
		return nil, err
	}
	basis, err := sv.V()
	if err != nil {
		return nil, err
	}
	vars, err := sv.SingularValues()
	if err != nil {
		return nil, err
	}

	d := &MultivariateNormal{
		mean:   append([]float64(nil), mean...),
		chol:   l,
		invCov: invCov,
		basis:  basis,
		vars:   vars,
		norm:   math.Pow(2*math.Pi, -float64(k)/2) / math.Sqrt(det),
	}
	if d.cov, err = snapshotDense(cov); err != nil {
		return nil, statsErrorf(opNewMultivariate, err)
	}
	return d, nil
}

// Dim returns the dimension k of the distribution.
func (d *MultivariateNormal) Dim() int { return len(d.mean) }

// Mean returns a copy of the mean vector.
func (d *MultivariateNormal) Mean() []float64 {
	return append([]float64(nil), d.mean...)
}

// Covariance returns a copy of the covariance matrix.
func (d *MultivariateNormal) Covariance() *mat.Dense {
	return d.cov.CloneDense()
}

// CholeskyFactor returns a copy of the lower factor L with cov = L·Lᵀ.
func (d *MultivariateNormal) CholeskyFactor() *mat.Dense {
	return d.chol.CloneDense()
}

// Pdf returns the density at x.
//
// Errors: ErrDimensionMismatch.
func (d *MultivariateNormal) Pdf(x []float64) (float64, error) {
	k := len(d.mean)
	if err := mat.ValidateVecLen(x, k); err != nil {
		return 0, statsErrorf("Pdf", ErrDimensionMismatch)
	}
	diff := make([]float64, k)
	for i := range diff {
		diff[i] = x[i] - d.mean[i]
	}
	w, err := mat.MatVec(d.invCov, diff)
	if err != nil {
		return 0, err
	}
	q := 0.0
	for i := range diff {
		q += diff[i] * w[i]
	}
	return d.norm * math.Exp(-q/2), nil
}

// Cdf evaluates the distribution function at x in the independent-variance
// basis: x is centered, rotated by Vᵀ and the per-axis Gaussian factors are
// multiplied. Exact when the covariance is diagonal in that basis, which the
// factorization guarantees.
//
// Errors: ErrDimensionMismatch.
func (d *MultivariateNormal) Cdf(x []float64) (float64, error) {
	k := len(d.mean)
	if err := mat.ValidateVecLen(x, k); err != nil {
		return 0, statsErrorf("Cdf", ErrDimensionMismatch)
	}
	diff := make([]float64, k)
	for i := range diff {
		diff[i] = x[i] - d.mean[i]
	}
	v := d.basis.Raw()
	p := 1.0
	for i := 0; i < k; i++ {
		y := 0.0
		for j := 0; j < k; j++ {
			y += v[j*k+i] * diff[j]
		}
		p *= 0.5 * (1 + math.Erf(y/math.Sqrt(2*d.vars[i])))
	}
	return p, nil
}

// InvCdf maps per-axis probabilities back through the independent-variance
// basis: each component is inverted along its axis, then the point is rotated
// by V and shifted by the mean.
//
// Errors: ErrDimensionMismatch, ErrInvalidProbability (any component outside
// the open interval (0, 1)).
func (d *MultivariateNormal) InvCdf(p []float64) ([]float64, error) {
	k := len(d.mean)
	if err := mat.ValidateVecLen(p, k); err != nil {
		return nil, statsErrorf(opInvCdf, ErrDimensionMismatch)
	}
	y := make([]float64, k)
	for i, pi := range p {
		if !(pi > 0 && pi < 1) {
			return nil, statsErrorf(opInvCdf, ErrInvalidProbability)
		}
		y[i] = math.Sqrt(2*d.vars[i]) * math.Erfinv(2*pi-1)
	}
	vy, err := mat.MatVec(d.basis, y)
	if err != nil {
		return nil, err
	}
	out := make([]float64, k)
	for i := range out {
		out[i] = d.mean[i] + vy[i]
	}
	return out, nil
}

// Sample draws one variate as mean + L·z with z standard normal.
//
// Errors: mat.ErrNilRand.
func (d *MultivariateNormal) Sample(rng *rand.Rand) ([]float64, error) {
	if rng == nil {
		return nil, statsErrorf(opSample, mat.ErrNilRand)
	}
	k := len(d.mean)
	z := make([]float64, k)
	for i := range z {
		z[i] = rng.NormFloat64()
	}
	lz, err := mat.MatVec(d.chol, z)
	if err != nil {
		return nil, err
	}
	out := make([]float64, k)
	for i := range out {
		out[i] = d.mean[i] + lz[i]
	}
	return out, nil
}

// snapshotDense deep-copies any Matrix into a Dense.
func snapshotDense(m mat.Matrix) (*mat.Dense, error) {
	if dd, ok := m.(*mat.Dense); ok {
		return dd.CloneDense(), nil
	}
	out, err := mat.NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	if err = out.CopyFrom(m); err != nil {
		return nil, err
	}
	return out, nil
}
