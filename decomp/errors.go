// SPDX-License-Identifier: MIT
// Package decomp: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the
// decomposers and the Utils facade. All operations MUST return these
// sentinels (or the shape sentinels of package mat) and tests MUST check
// them via errors.Is. No decomposer panics on user-triggered conditions.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil/shape (mat sentinels) -> not-ready -> not-available -> invalid
// argument -> numerical (singular / rank-deficient / non-convergence).

package decomp

import "errors"

var (
	// ErrNoInput is returned when Decompose (or any operation requiring a
	// configured input) is invoked before SetMatrix.
	ErrNoInput = errors.New("decomp: no input matrix set")

	// ErrNotAvailable indicates that a decomposition output was queried
	// before Decompose completed successfully for the current input.
	// It also reports empty range/null-space bases (rank zero / full rank).
	ErrNotAvailable = errors.New("decomp: decomposition not available")

	// ErrSingular is returned when an exact solve or inverse is requested
	// against a square matrix judged singular at the given threshold.
	ErrSingular = errors.New("decomp: matrix is singular")

	// ErrRankDeficient is returned when a solve/inverse requires full rank
	// but some diagonal magnitude falls at or below the threshold.
	ErrRankDeficient = errors.New("decomp: matrix is rank deficient")

	// ErrNotConverged indicates the SVD iteration exceeded its budget.
	// Never silently truncated: the failure is always reported.
	ErrNotConverged = errors.New("decomp: iteration did not converge")

	// ErrInvalidThreshold rejects a negative, NaN or infinite threshold.
	ErrInvalidThreshold = errors.New("decomp: invalid threshold")

	// ErrInvalidIterations rejects a non-positive iteration cap.
	ErrInvalidIterations = errors.New("decomp: iterations must be > 0")

	// ErrNotSPD signals that a symmetric-positive-definite matrix was
	// required (square-root forms, covariance validation) but the input
	// failed the Cholesky SPD test.
	ErrNotSPD = errors.New("decomp: matrix is not symmetric positive definite")
)
