// SPDX-License-Identifier: MIT

// Package stats provides a small set of probability distributions built
// on top of the mat and decomp packages: the continuous uniform and
// Gaussian distributions with density, CDF, quantile and sampling
// methods, and the multivariate Gaussian whose sampler and density are
// driven by the Cholesky factor and inverse of its covariance, with CDF
// and quantile evaluation in the independent-variance basis obtained by
// diagonalizing the covariance.
//
// Distribution values are immutable after construction; sampling takes
// an explicit *rand.Rand so that seeded sources give reproducible
// streams. Invalid parameters are rejected at construction with the
// sentinel errors of this package and of packages mat and decomp,
// matched via errors.Is.
package stats
