// SPDX-License-Identifier: MIT

// Package mat implements the dense matrix core of matfact: the Matrix
// interface, the row-major flat-buffer Dense implementation, element and
// submatrix access, elementary arithmetic (with in-place and value-returning
// surfaces sharing one kernel each), symmetrization, equality within an
// absolute threshold, random/identity/diagonal factories and a pluggable
// norm strategy (Frobenius, one, infinity).
//
// Numeric policy:
//   - Dimensions are validated up front; shapes are never truncated or padded.
//   - All user-triggered failures surface as package sentinels matched via
//     errors.Is; kernels never panic.
//   - Linear-index accessors default to the column-major convention
//     (index = col*rows + row); storage itself is row-major.
//
// Concurrency: Dense values carry no internal synchronization; a value must
// not be mutated concurrently with any read or kernel run against it.
package mat
