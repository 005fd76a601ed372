// Package matfact is a dense numerical linear-algebra toolkit: matrix
// storage, elementary operations, the classic factorizations, linear-system
// solving and a small statistics layer built on top of them.
//
// What's inside?
//
//	A deterministic, pure-Go library that brings together:
//		• Dense matrices: flat-buffer storage, element/submatrix access, arithmetic
//		• Factorizations: LU (partial pivoting), QR & economy QR (Householder),
//		  RQ, Cholesky, Golub–Reinsch SVD
//		• Solvers: direct, least-squares and minimum-norm (pseudo-inverse) solves
//		• Queries: determinant, rank, nullity, condition number, range/null bases
//		• Norms: Frobenius, one- and infinity-norms as a pluggable strategy
//		• Statistics: uniform/normal/multivariate-normal distributions and
//		  Gaussian sampling via the Cholesky factor
//
// Why choose matfact?
//
//   - Predictable numerics – fixed loop orders, explicit tolerances, no hidden state
//   - Clear error contracts – sentinel errors matched with errors.Is, never panics
//   - Pure Go – no cgo, no hidden deps
//   - Fast where it counts – flat-slice fast paths for *Dense operands
//
// Everything is organized under three subpackages:
//
//	mat/    — Dense matrix type, element-wise kernels, norms, validators
//	decomp/ — the six decomposers plus the stateless Utils facade
//	stats/  — distributions and random sampling consuming mat/decomp
//
// Quick taste:
//
//	a, _ := mat.NewDenseData(2, 2, []float64{4, 1, 1, 3})
//	d := decomp.NewCholesky()
//	_ = d.SetMatrix(a)
//	_ = d.Decompose()
//	spd, _ := d.IsSPD() // true: a = L·Lᵀ
//
// Dive into the per-package docs for the full API and numeric contracts.
//
//	go get github.com/katalvlaran/matfact
package matfact
