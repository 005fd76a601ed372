// SPDX-License-Identifier: MIT
// Package decomp: singular value decomposition (Golub-Reinsch).
//
// For an m-by-n matrix A the factorization takes the form A = U*S*Vᵀ
// where U is m-by-m orthogonal, V is n-by-n orthogonal and S carries the
// min(m,n) singular values on its diagonal, non-negative and sorted in
// descending order. Both orthogonal factors are accumulated in full so
// that orthonormal bases for the range and the null space fall straight
// out of their columns.
//
// Implementation
//
//	Stage 1. Householder bidiagonalization: alternate column and row
//	         reflectors reduce A to upper bidiagonal form while the
//	         reflectors are accumulated into U and V.
//	Stage 2. Implicit-shift QR iteration on the bidiagonal band: split,
//	         deflate or apply a Wilkinson-shifted sweep of Givens
//	         rotations until every superdiagonal entry is negligible,
//	         then fix signs and sort.
//
// Inputs with m < n are factored through their transpose with U and V
// exchanged, so any shape is accepted. The iteration count per singular
// value is capped; exceeding the cap aborts with ErrNotConverged rather
// than returning a silently truncated spectrum.
//
// Complexity: O(m·n·min(m,n)) flops plus the iterative sweeps, O(m²+n²)
// extra memory for the full bases.

package decomp

import (
	"math"

	"github.com/katalvlaran/matfact/mat"
)

// DefaultMaxIterations caps the implicit-shift QR sweeps spent on any
// single singular value. Well-conditioned inputs converge in a handful
// of sweeps; the cap only trips on pathological data.
const DefaultMaxIterations = 60

// Machine constants of the float64 iteration.
const (
	svdEps  = 2.220446049250313e-16 // 2^-52
	svdTiny = 1.0020841800044864e-292
)

// SVD holds the full factors of a singular value decomposition. The
// zero value is unusable; construct with NewSVD.
type SVD struct {
	state
	maxIter int
	u       []float64 // m×m orthogonal factor
	v       []float64 // n×n orthogonal factor
	sv      []float64 // min(m,n) singular values, descending
	m, n    int
}

// NewSVD returns an empty SVD decomposer with the default iteration cap.
func NewSVD() *SVD { return &SVD{maxIter: DefaultMaxIterations} }

// NewSVDOf is a convenience constructor that sets the input immediately.
func NewSVDOf(m mat.Matrix) (*SVD, error) {
	d := NewSVD()
	if err := d.SetMatrix(m); err != nil {
		return nil, err
	}
	return d, nil
}

// SetMaxIterations replaces the per-value iteration cap.
//
// Errors: ErrInvalidIterations.
func (d *SVD) SetMaxIterations(n int) error {
	if n <= 0 {
		return decompErrorf(opMaxIter, ErrInvalidIterations)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.maxIter = n
	return nil
}

// MaxIterations returns the current per-value iteration cap.
func (d *SVD) MaxIterations() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxIter
}

// SetMatrix installs a new input of any shape; any previously computed
// factors are discarded.
//
// Errors: mat.ErrNilMatrix.
func (d *SVD) SetMatrix(m mat.Matrix) error {
	if err := mat.ValidateNotNil(m); err != nil {
		return decompErrorf(opSetMatrix, err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setInput(m)
	d.u, d.v, d.sv = nil, nil, nil
	return nil
}

// Decompose computes the full factorization of the configured input.
//
// Errors: ErrNoInput, ErrNotConverged.
func (d *SVD) Decompose() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireInput(); err != nil {
		return decompErrorf(opDecompose, err)
	}
	a, m, n, err := cloneToFlat(d.input)
	if err != nil {
		return decompErrorf(opDecompose, err)
	}

	if m >= n {
		u, sv, v, err := golubReinsch(a, m, n, d.maxIter)
		if err != nil {
			return decompErrorf(opDecompose, err)
		}
		d.u, d.sv, d.v = u, sv, v
	} else {
		// Factor the transpose and exchange the bases.
		at := make([]float64, n*m)
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				at[j*m+i] = a[i*n+j]
			}
		}
		ut, sv, vt, err := golubReinsch(at, n, m, d.maxIter)
		if err != nil {
			return decompErrorf(opDecompose, err)
		}
		d.u, d.sv, d.v = vt, sv, ut
	}
	d.m, d.n = m, n
	d.available = true
	return nil
}

// golubReinsch factors a row-major m-by-n array with m >= n, returning
// the full m-by-m U, the n descending singular values and the full
// n-by-n V.
func golubReinsch(a []float64, m, n, maxIter int) (u, sv, v []float64, err error) {
	u = make([]float64, m*m)
	v = make([]float64, n*n)
	sv = make([]float64, n)
	e := make([]float64, n)
	work := make([]float64, m)

	nct := minInt(m-1, n)
	nrt := maxInt(0, minInt(n-2, m))

	// Stage 1: bidiagonalization.
	for k := 0; k < maxInt(nct, nrt); k++ {
		if k < nct {
			nrm := 0.0
			for i := k; i < m; i++ {
				nrm = math.Hypot(nrm, a[i*n+k])
			}
			sv[k] = nrm
			if sv[k] != 0 {
				if a[k*n+k] < 0 {
					sv[k] = -sv[k]
				}
				for i := k; i < m; i++ {
					a[i*n+k] /= sv[k]
				}
				a[k*n+k] += 1
			}
			sv[k] = -sv[k]
		}
		for j := k + 1; j < n; j++ {
			if k < nct && sv[k] != 0 {
				t := 0.0
				for i := k; i < m; i++ {
					t += a[i*n+k] * a[i*n+j]
				}
				t = -t / a[k*n+k]
				for i := k; i < m; i++ {
					a[i*n+j] += t * a[i*n+k]
				}
			}
			e[j] = a[k*n+j]
		}
		if k < nct {
			for i := k; i < m; i++ {
				u[i*m+k] = a[i*n+k]
			}
		}
		if k < nrt {
			nrm := 0.0
			for i := k + 1; i < n; i++ {
				nrm = math.Hypot(nrm, e[i])
			}
			e[k] = nrm
			if e[k] != 0 {
				if e[k+1] < 0 {
					e[k] = -e[k]
				}
				for i := k + 1; i < n; i++ {
					e[i] /= e[k]
				}
				e[k+1] += 1
			}
			e[k] = -e[k]
			if k+1 < m && e[k] != 0 {
				for i := k + 1; i < m; i++ {
					work[i] = 0
				}
				for j := k + 1; j < n; j++ {
					for i := k + 1; i < m; i++ {
						work[i] += e[j] * a[i*n+j]
					}
				}
				for j := k + 1; j < n; j++ {
					t := -e[j] / e[k+1]
					for i := k + 1; i < m; i++ {
						a[i*n+j] += t * work[i]
					}
				}
			}
			for i := k + 1; i < n; i++ {
				v[i*n+k] = e[i]
			}
		}
	}

	// Final bidiagonal band of order p.
	p := minInt(n, m+1)
	if nct < n {
		sv[nct] = a[nct*n+nct]
	}
	if m < p {
		sv[p-1] = 0
	}
	if nrt+1 < p {
		e[nrt] = a[nrt*n+(p-1)]
	}
	e[p-1] = 0

	// Expand U from the stored column reflectors.
	for j := nct; j < m; j++ {
		for i := 0; i < m; i++ {
			u[i*m+j] = 0
		}
		u[j*m+j] = 1
	}
	for k := nct - 1; k >= 0; k-- {
		if sv[k] != 0 {
			for j := k + 1; j < m; j++ {
				t := 0.0
				for i := k; i < m; i++ {
					t += u[i*m+k] * u[i*m+j]
				}
				t = -t / u[k*m+k]
				for i := k; i < m; i++ {
					u[i*m+j] += t * u[i*m+k]
				}
			}
			for i := k; i < m; i++ {
				u[i*m+k] = -u[i*m+k]
			}
			u[k*m+k] = 1 + u[k*m+k]
			for i := 0; i < k-1; i++ {
				u[i*m+k] = 0
			}
		} else {
			for i := 0; i < m; i++ {
				u[i*m+k] = 0
			}
			u[k*m+k] = 1
		}
	}

	// Expand V from the stored row reflectors.
	for k := n - 1; k >= 0; k-- {
		if k < nrt && e[k] != 0 {
			for j := k + 1; j < n; j++ {
				t := 0.0
				for i := k + 1; i < n; i++ {
					t += v[i*n+k] * v[i*n+j]
				}
				t = -t / v[(k+1)*n+k]
				for i := k + 1; i < n; i++ {
					v[i*n+j] += t * v[i*n+k]
				}
			}
		}
		for i := 0; i < n; i++ {
			v[i*n+k] = 0
		}
		v[k*n+k] = 1
	}

	// Stage 2: implicit-shift QR iteration on the band.
	pp := p - 1
	iter := 0
	for p > 0 {
		if iter > maxIter {
			return nil, nil, nil, ErrNotConverged
		}
		var k, kase int
		for k = p - 2; k >= -1; k-- {
			if k == -1 {
				break
			}
			if math.Abs(e[k]) <= svdTiny+svdEps*(math.Abs(sv[k])+math.Abs(sv[k+1])) {
				e[k] = 0
				break
			}
		}
		if k == p-2 {
			kase = 4
		} else {
			var ks int
			for ks = p - 1; ks >= k; ks-- {
				if ks == k {
					break
				}
				t := 0.0
				if ks != p {
					t += math.Abs(e[ks])
				}
				if ks != k+1 {
					t += math.Abs(e[ks-1])
				}
				if math.Abs(sv[ks]) <= svdTiny+svdEps*t {
					sv[ks] = 0
					break
				}
			}
			switch {
			case ks == k:
				kase = 3
			case ks == p-1:
				kase = 1
			default:
				kase = 2
				k = ks
			}
		}
		k++

		switch kase {
		case 1: // deflate the negligible sv[p-1]
			f := e[p-2]
			e[p-2] = 0
			for j := p - 2; j >= k; j-- {
				t := math.Hypot(sv[j], f)
				cs, sn := sv[j]/t, f/t
				sv[j] = t
				if j != k {
					f = -sn * e[j-1]
					e[j-1] = cs * e[j-1]
				}
				for i := 0; i < n; i++ {
					t = cs*v[i*n+j] + sn*v[i*n+(p-1)]
					v[i*n+(p-1)] = -sn*v[i*n+j] + cs*v[i*n+(p-1)]
					v[i*n+j] = t
				}
			}

		case 2: // split at the negligible sv[k-1]
			f := e[k-1]
			e[k-1] = 0
			for j := k; j < p; j++ {
				t := math.Hypot(sv[j], f)
				cs, sn := sv[j]/t, f/t
				sv[j] = t
				f = -sn * e[j]
				e[j] = cs * e[j]
				for i := 0; i < m; i++ {
					t = cs*u[i*m+j] + sn*u[i*m+(k-1)]
					u[i*m+(k-1)] = -sn*u[i*m+j] + cs*u[i*m+(k-1)]
					u[i*m+j] = t
				}
			}

		case 3: // one shifted QR sweep
			scale := math.Max(math.Max(math.Max(math.Max(
				math.Abs(sv[p-1]), math.Abs(sv[p-2])), math.Abs(e[p-2])),
				math.Abs(sv[k])), math.Abs(e[k]))
			sp := sv[p-1] / scale
			spm1 := sv[p-2] / scale
			epm1 := e[p-2] / scale
			sk := sv[k] / scale
			ek := e[k] / scale
			b := ((spm1+sp)*(spm1-sp) + epm1*epm1) / 2
			c := (sp * epm1) * (sp * epm1)
			shift := 0.0
			if b != 0 || c != 0 {
				shift = math.Sqrt(b*b + c)
				if b < 0 {
					shift = -shift
				}
				shift = c / (b + shift)
			}
			f := (sk+sp)*(sk-sp) + shift
			g := sk * ek

			for j := k; j < p-1; j++ {
				t := math.Hypot(f, g)
				cs, sn := f/t, g/t
				if j != k {
					e[j-1] = t
				}
				f = cs*sv[j] + sn*e[j]
				e[j] = cs*e[j] - sn*sv[j]
				g = sn * sv[j+1]
				sv[j+1] = cs * sv[j+1]
				for i := 0; i < n; i++ {
					t = cs*v[i*n+j] + sn*v[i*n+(j+1)]
					v[i*n+(j+1)] = -sn*v[i*n+j] + cs*v[i*n+(j+1)]
					v[i*n+j] = t
				}
				t = math.Hypot(f, g)
				cs, sn = f/t, g/t
				sv[j] = t
				f = cs*e[j] + sn*sv[j+1]
				sv[j+1] = -sn*e[j] + cs*sv[j+1]
				g = sn * e[j+1]
				e[j+1] = cs * e[j+1]
				if j < m-1 {
					for i := 0; i < m; i++ {
						t = cs*u[i*m+j] + sn*u[i*m+(j+1)]
						u[i*m+(j+1)] = -sn*u[i*m+j] + cs*u[i*m+(j+1)]
						u[i*m+j] = t
					}
				}
			}
			e[p-2] = f
			iter++

		case 4: // sv[k] has converged
			if sv[k] <= 0 {
				if sv[k] < 0 {
					sv[k] = -sv[k]
				} else {
					sv[k] = 0
				}
				for i := 0; i <= pp; i++ {
					v[i*n+k] = -v[i*n+k]
				}
			}
			// Bubble into descending order.
			for k < pp {
				if sv[k] >= sv[k+1] {
					break
				}
				sv[k], sv[k+1] = sv[k+1], sv[k]
				if k < n-1 {
					for i := 0; i < n; i++ {
						v[i*n+k], v[i*n+(k+1)] = v[i*n+(k+1)], v[i*n+k]
					}
				}
				if k < m-1 {
					for i := 0; i < m; i++ {
						u[i*m+k], u[i*m+(k+1)] = u[i*m+(k+1)], u[i*m+k]
					}
				}
				k++
			}
			iter = 0
			p--
		}
	}
	return u, sv, v, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// defaultThresholdLocked is the rank cutoff max(m,n)·eps·σ₁.
// Caller must hold mu.
func (d *SVD) defaultThresholdLocked() float64 {
	if len(d.sv) == 0 {
		return 0
	}
	return float64(maxInt(d.m, d.n)) * svdEps * d.sv[0]
}

// SingularValues returns the min(m,n) singular values in descending
// order.
//
// Errors: ErrNotAvailable.
func (d *SVD) SingularValues() ([]float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opSingValues, err)
	}
	out := make([]float64, len(d.sv))
	copy(out, d.sv)
	return out, nil
}

// U returns the full m-by-m left orthogonal factor.
//
// Errors: ErrNotAvailable.
func (d *SVD) U() (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opU, err)
	}
	return flatToDense(d.u, d.m, d.m), nil
}

// V returns the full n-by-n right orthogonal factor (not transposed).
//
// Errors: ErrNotAvailable.
func (d *SVD) V() (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opV, err)
	}
	return flatToDense(d.v, d.n, d.n), nil
}

// W returns the m-by-n diagonal matrix of singular values, so that the
// input equals U*W*Vᵀ.
//
// Errors: ErrNotAvailable.
func (d *SVD) W() (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opW, err)
	}
	out, _ := mat.NewDense(d.m, d.n)
	raw := out.Raw()
	for i := range d.sv {
		raw[i*d.n+i] = d.sv[i]
	}
	return out, nil
}

// Rank returns the number of singular values above the default cutoff
// max(m,n)·eps·σ₁.
//
// Errors: ErrNotAvailable.
func (d *SVD) Rank() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return 0, decompErrorf(opRank, err)
	}
	return d.rankLocked(d.defaultThresholdLocked()), nil
}

// RankWithin returns the number of singular values strictly above the
// given threshold.
//
// Errors: ErrNotAvailable, ErrInvalidThreshold.
func (d *SVD) RankWithin(threshold float64) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return 0, decompErrorf(opRank, err)
	}
	if err := validateThreshold(threshold); err != nil {
		return 0, decompErrorf(opRank, err)
	}
	return d.rankLocked(threshold), nil
}

func (d *SVD) rankLocked(threshold float64) int {
	r := 0
	for _, s := range d.sv {
		if s > threshold {
			r++
		}
	}
	return r
}

// Nullity returns the dimension of the null space, n minus the rank at
// the default cutoff.
//
// Errors: ErrNotAvailable.
func (d *SVD) Nullity() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return 0, decompErrorf(opNullity, err)
	}
	return d.n - d.rankLocked(d.defaultThresholdLocked()), nil
}

// NullityWithin returns n minus the rank at the given threshold.
//
// Errors: ErrNotAvailable, ErrInvalidThreshold.
func (d *SVD) NullityWithin(threshold float64) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return 0, decompErrorf(opNullity, err)
	}
	if err := validateThreshold(threshold); err != nil {
		return 0, decompErrorf(opNullity, err)
	}
	return d.n - d.rankLocked(threshold), nil
}

// ConditionNumber returns σ₁/σ_min. A singular input yields +Inf.
//
// Errors: ErrNotAvailable.
func (d *SVD) ConditionNumber() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return 0, decompErrorf(opCond, err)
	}
	if d.sv[len(d.sv)-1] == 0 {
		return math.Inf(1), nil
	}
	return d.sv[0] / d.sv[len(d.sv)-1], nil
}

// ReciprocalConditionNumber returns σ_min/σ₁, zero for a singular input.
//
// Errors: ErrNotAvailable.
func (d *SVD) ReciprocalConditionNumber() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return 0, decompErrorf(opCond, err)
	}
	if d.sv[0] == 0 {
		return 0, nil
	}
	return d.sv[len(d.sv)-1] / d.sv[0], nil
}

// Norm2 returns the spectral norm σ₁.
//
// Errors: ErrNotAvailable.
func (d *SVD) Norm2() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return 0, decompErrorf(opNorm2, err)
	}
	return d.sv[0], nil
}

// Range returns the first rank columns of U, an orthonormal basis of the
// column space. A zero-rank input has no such basis.
//
// Errors: ErrNotAvailable.
func (d *SVD) Range() (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opRange, err)
	}
	r := d.rankLocked(d.defaultThresholdLocked())
	if r == 0 {
		return nil, decompErrorf(opRange, ErrNotAvailable)
	}
	out, _ := mat.NewDense(d.m, r)
	raw := out.Raw()
	for i := 0; i < d.m; i++ {
		for j := 0; j < r; j++ {
			raw[i*r+j] = d.u[i*d.m+j]
		}
	}
	return out, nil
}

// Nullspace returns the trailing n-rank columns of V, an orthonormal
// basis of the null space. A full-column-rank input has no such basis.
//
// Errors: ErrNotAvailable.
func (d *SVD) Nullspace() (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opNullspace, err)
	}
	r := d.rankLocked(d.defaultThresholdLocked())
	if r == d.n {
		return nil, decompErrorf(opNullspace, ErrNotAvailable)
	}
	w := d.n - r
	out, _ := mat.NewDense(d.n, w)
	raw := out.Raw()
	for i := 0; i < d.n; i++ {
		for j := 0; j < w; j++ {
			raw[i*w+j] = d.v[i*d.n+(r+j)]
		}
	}
	return out, nil
}

// Solve returns the minimum-norm least-squares solution X = V·Σ⁺·Uᵀ·B,
// treating singular values at or below the threshold as zero. B may
// carry any number of right-hand-side columns.
//
// Errors: ErrNotAvailable, mat.ErrNilMatrix, mat.ErrDimensionMismatch,
// ErrInvalidThreshold.
func (d *SVD) Solve(b mat.Matrix, threshold float64) (*mat.Dense, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if err := mat.ValidateNotNil(b); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if b.Rows() != d.m {
		return nil, decompErrorf(opSolve, mat.ErrDimensionMismatch)
	}
	if err := validateThreshold(threshold); err != nil {
		return nil, decompErrorf(opSolve, err)
	}

	rhs, _, nb, err := cloneToFlat(b)
	if err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	m, n, k := d.m, d.n, len(d.sv)
	// Y = Σ⁺·Uᵀ·B, only the k leading rows are nonzero.
	y := make([]float64, k*nb)
	for i := 0; i < k; i++ {
		if d.sv[i] <= threshold {
			continue
		}
		inv := 1 / d.sv[i]
		for j := 0; j < nb; j++ {
			s := 0.0
			for l := 0; l < m; l++ {
				s += d.u[l*m+i] * rhs[l*nb+j]
			}
			y[i*nb+j] = s * inv
		}
	}
	// X = V·Y.
	x := make([]float64, n*nb)
	for i := 0; i < n; i++ {
		for j := 0; j < nb; j++ {
			s := 0.0
			for l := 0; l < k; l++ {
				s += d.v[i*n+l] * y[l*nb+j]
			}
			x[i*nb+j] = s
		}
	}
	return flatToDense(x, n, nb), nil
}
