package linear

import (
	"github.com/YuminosukeSato/basisreg/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// DefaultRcond is the relative cutoff for small singular values: values
// below DefaultRcond·σ_max are treated as zero.
const DefaultRcond = 1e-15

// Pinv returns the Moore–Penrose pseudo-inverse of a, computed from a thin
// SVD. It is defined for singular and non-square matrices.
func Pinv(a mat.Matrix) (*mat.Dense, error) {
	p, _, err := pinvRank(a, DefaultRcond)
	return p, err
}

// pinvRank also returns the numerical rank of a.
func pinvRank(a mat.Matrix, rcond float64) (*mat.Dense, int, error) {
	r, c := a.Dims()
	if r == 0 || c == 0 {
		return nil, 0, errors.NewModelError("linear.Pinv", "empty matrix", errors.ErrEmptyData)
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, 0, errors.NewModelError("linear.Pinv", "SVD factorization failed", errors.ErrSingularMatrix)
	}

	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// singular values are sorted in descending order
	cutoff := rcond * values[0]
	rank := 0
	for j, s := range values {
		if s <= cutoff || s == 0 {
			// drop the direction entirely
			for i := 0; i < c; i++ {
				v.Set(i, j, 0)
			}
			continue
		}
		rank++
		inv := 1 / s
		for i := 0; i < c; i++ {
			v.Set(i, j, v.At(i, j)*inv)
		}
	}

	// A⁺ = V·Σ⁺·Uᵀ
	pinv := mat.NewDense(c, r, nil)
	pinv.Mul(&v, u.T())
	return pinv, rank, nil
}
