// SPDX-License-Identifier: MIT
// Package stats: sentinel error set (unified, consistent).
// Shape and argument failures reuse the sentinels of packages mat and
// decomp (ErrNilRand, ErrInvalidInterval, ErrInvalidStdDev, ErrNotSPD);
// this file adds only the sentinels specific to distributions.

package stats

import (
	"errors"
	"fmt"
)

// statsErrorf wraps a sentinel with the operation tag, preserving
// errors.Is matching through the %w verb.
func statsErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

var (
	// ErrInvalidProbability rejects a probability outside (0, 1) where an
	// inverse CDF is undefined, or outside [0, 1] elsewhere.
	ErrInvalidProbability = errors.New("stats: probability out of range")

	// ErrDimensionMismatch is returned when a sample or mean vector does
	// not match the dimension of the distribution.
	ErrDimensionMismatch = errors.New("stats: vector dimension mismatch")
)
