// SPDX-License-Identifier: MIT
// Package decomp: economy-size Householder QR decomposition.

package decomp

import "github.com/katalvlaran/matfact/mat"

// EconomyQR shares the reflector sweep of QR but reports the reduced
// factors: Q keeps only its first n columns and R is trimmed to its
// n-by-n upper triangle, so that A = Q*R still holds with far less
// storage when m >> n. Lifecycle, rank test and least-squares Solve are
// identical to QR.
type EconomyQR struct {
	QR
}

// NewEconomyQR returns an empty economy-size QR decomposer.
func NewEconomyQR() *EconomyQR { return &EconomyQR{} }

// NewEconomyQROf is a convenience constructor that sets the input
// immediately.
func NewEconomyQROf(m mat.Matrix) (*EconomyQR, error) {
	d := NewEconomyQR()
	if err := d.SetMatrix(m); err != nil {
		return nil, err
	}
	return d, nil
}

// Q returns the m-by-n factor with orthonormal columns.
//
// Errors: ErrNotAvailable.
func (d *EconomyQR) Q() (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opQ, err)
	}
	return flatToDense(accumulateQ(d.qr, d.m, d.n, d.n), d.m, d.n), nil
}

// R returns the n-by-n upper triangular factor.
//
// Errors: ErrNotAvailable.
func (d *EconomyQR) R() (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opR, err)
	}
	return d.upperLocked(d.n), nil
}
