// SPDX-License-Identifier: MIT
// Package mat: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the mat
// package. All kernels MUST return these sentinels and tests MUST check them
// via errors.Is. No kernel should panic on user-triggered error conditions.
// Panics are reserved for programmer errors in private helpers (if any).

package mat

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "mat: ..." for consistency and to allow
// easy grepping across logs. DO NOT %w wrap these sentinels when returning
// directly; if context is essential, wrap with fmt.Errorf("ctx: %w", ErrX)
// at the outer boundary — callers will still use errors.Is to match.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	// Constructors must validate before allocation.
	ErrInvalidDimensions = errors.New("mat: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row, column, linear index or a
	// submatrix bound) is outside valid bounds. Public indexers MUST return
	// this, not panic.
	ErrOutOfRange = errors.New("mat: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Add/Sub with different shapes, or Mul where a.Cols != b.Rows.
	// Shapes are never silently truncated or padded.
	ErrDimensionMismatch = errors.New("mat: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("mat: matrix is not square")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("mat: nil matrix")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required (thresholds, ingestion data).
	ErrNaNInf = errors.New("mat: NaN or Inf encountered")

	// ErrNegativeThreshold rejects comparison thresholds below zero.
	ErrNegativeThreshold = errors.New("mat: threshold must be >= 0")

	// ErrBadData indicates a data slice whose length does not match rows*cols.
	ErrBadData = errors.New("mat: data length does not match dimensions")

	// ErrUnknownNorm marks an unrecognized NormType passed to NewNormComputer.
	ErrUnknownNorm = errors.New("mat: unknown norm type")

	// ErrNilRand indicates a nil random source passed to a random factory.
	ErrNilRand = errors.New("mat: nil random source")

	// ErrInvalidInterval rejects a sampling interval with lo >= hi.
	ErrInvalidInterval = errors.New("mat: invalid interval")

	// ErrInvalidStdDev rejects a non-positive standard deviation.
	ErrInvalidStdDev = errors.New("mat: standard deviation must be > 0")
)
