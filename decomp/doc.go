// SPDX-License-Identifier: MIT

// Package decomp provides dense matrix decompositions over the mat
// abstraction: LU with partial pivoting, full and economy-size
// Householder QR, RQ, Cholesky and the Golub-Reinsch singular value
// decomposition, plus a one-shot facade (Det, Inverse, Solve, Rank and
// friends) for callers that do not need reusable factors.
//
// # Lifecycle
//
// Every decomposer is a small state machine:
//
//	d := decomp.NewLU()
//	_ = d.SetMatrix(a) // input held by reference, results invalidated
//	_ = d.Decompose()  // factors computed
//	u, _ := d.U()      // read-only queries, deep copies
//
// SetMatrix validates shape up front, so an ill-shaped input is rejected
// before any work happens. Getters and solvers answer only after a
// successful Decompose; querying earlier yields ErrNotAvailable, and
// replacing the input resets availability. Re-running Decompose on an
// unchanged input reproduces the factors bit for bit.
//
// # Errors
//
// All failures are reported through package-level sentinels (ErrNoInput,
// ErrNotAvailable, ErrSingular, ErrRankDeficient, ErrNotConverged, ...)
// or the shape sentinels of package mat, matched via errors.Is. Nothing
// in this package panics on user input, and the SVD never returns a
// silently truncated spectrum: exceeding the iteration budget is a hard
// ErrNotConverged.
//
// # Concurrency
//
// A decomposer value serializes its public methods on an internal mutex
// and is safe for concurrent use. Distinct decomposer values are fully
// independent.
package decomp
