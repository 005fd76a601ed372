// SPDX-License-Identifier: MIT
// Package decomp: shared decomposer state machine and flat-storage helpers.
//
// Every decomposer embeds state and follows the same lifecycle:
//
//	New*()            -> created, no input
//	SetMatrix(A)      -> input held by reference, any previous result discarded
//	Decompose()       -> factors computed, results become available
//	getters / Solve   -> read-only queries against the stored factors
//
// Re-running Decompose on an unchanged input is permitted and yields
// bit-identical factors. All public methods of a decomposer serialize on
// the embedded mutex, so a single decomposer value is safe for concurrent
// use; callers that mutate the input matrix mid-flight get no such
// guarantee and must re-run SetMatrix/Decompose themselves.

package decomp

import (
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/matfact/mat"
)

// Operation tags used to prefix wrapped errors, mirroring the method names.
const (
	opSetMatrix  = "SetMatrix"
	opDecompose  = "Decompose"
	opSolve      = "Solve"
	opDet        = "Det"
	opPivot      = "Pivot"
	opL          = "L"
	opU          = "U"
	opQ          = "Q"
	opV          = "V"
	opW          = "W"
	opR          = "R"
	opIsSingular = "IsSingular"
	opIsFullRank = "IsFullRank"
	opIsSPD      = "IsSPD"
	opSingValues = "SingularValues"
	opRank       = "Rank"
	opNullity    = "Nullity"
	opCond       = "ConditionNumber"
	opNorm2      = "Norm2"
	opRange      = "Range"
	opNullspace  = "Nullspace"
	opMaxIter    = "SetMaxIterations"
)

// decompErrorf wraps a sentinel with the operation tag, preserving
// errors.Is matching through the %w verb.
func decompErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// state is the record shared by every decomposer in this package.
type state struct {
	mu        sync.Mutex // serializes all public decomposer methods
	input     mat.Matrix // held by reference, never mutated
	available bool       // true only after a successful Decompose
}

// setInput installs a new input and discards any previous result.
// Caller must hold mu.
func (s *state) setInput(m mat.Matrix) {
	s.input = m
	s.available = false
}

// requireInput reports ErrNoInput when SetMatrix has not been called.
// Caller must hold mu.
func (s *state) requireInput() error {
	if s.input == nil {
		return ErrNoInput
	}
	return nil
}

// requireAvailable reports ErrNotAvailable when results were never
// computed for the current input. Caller must hold mu.
func (s *state) requireAvailable() error {
	if !s.available {
		return ErrNotAvailable
	}
	return nil
}

// IsReady reports whether an input matrix has been set.
func (s *state) IsReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input != nil
}

// IsAvailable reports whether decomposition results can be queried.
func (s *state) IsAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

// Input returns the matrix currently configured, or nil.
func (s *state) Input() mat.Matrix {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// validateThreshold accepts any finite value >= 0.
func validateThreshold(tol float64) error {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		return ErrInvalidThreshold
	}
	return nil
}

// cloneToFlat snapshots a matrix into a fresh row-major slice.
// *mat.Dense inputs are copied straight from the backing array; other
// implementations go through the At accessor.
func cloneToFlat(m mat.Matrix) ([]float64, int, int, error) {
	r, c := m.Rows(), m.Cols()
	out := make([]float64, r*c)
	if d, ok := m.(*mat.Dense); ok {
		copy(out, d.Raw())
		return out, r, c, nil
	}
	var v float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, 0, 0, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out[i*c+j] = v
		}
	}
	return out, r, c, nil
}

// flatToDense wraps a row-major slice into a freshly allocated Dense.
// The slice is copied, never aliased.
func flatToDense(data []float64, rows, cols int) *mat.Dense {
	out, _ := mat.NewDense(rows, cols)
	copy(out.Raw(), data)
	return out
}
