package linear

import (
	"github.com/YuminosukeSato/basisreg/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// mleSolution is the result of a maximum-likelihood fit.
type mleSolution struct {
	weights  *mat.VecDense
	variance float64
	rank     int
}

// FitMLE computes the maximum-likelihood weights and noise variance for the
// design matrix phi (N×M) and targets y (length N):
//
//	w  = (ΦᵀΦ)⁺ Φᵀ y
//	σ² = (1/N) Σ (yᵢ − Φᵢ·w)²
//
// The pseudo-inverse keeps the solution well defined when Φ is rank
// deficient (M > N, collinear columns). With a single sample the fit
// interpolates and σ² is exactly 0.
func FitMLE(phi mat.Matrix, y mat.Vector) (*mat.VecDense, float64, error) {
	sol, err := solveMLE(phi, y)
	if err != nil {
		return nil, 0, err
	}
	return sol.weights, sol.variance, nil
}

func solveMLE(phi mat.Matrix, y mat.Vector) (sol *mleSolution, err error) {
	defer errors.Recover(&err, "linear.FitMLE")

	n, m := phi.Dims()
	if n == 0 || m == 0 {
		return nil, errors.NewModelError("linear.FitMLE", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != n {
		return nil, errors.NewDimensionError("linear.FitMLE", n, y.Len(), 0)
	}

	// ΦᵀΦ
	var gram mat.Dense
	gram.Mul(phi.T(), phi)

	gramPinv, rank, err := pinvRank(&gram, DefaultRcond)
	if err != nil {
		return nil, errors.Wrap(err, "linear.FitMLE")
	}

	// Φᵀy
	var phiTy mat.VecDense
	phiTy.MulVec(phi.T(), y)

	weights := mat.NewVecDense(m, nil)
	weights.MulVec(gramPinv, &phiTy)

	if err := errors.CheckNumericalStability("linear.FitMLE weights", weights.RawVector().Data, -1); err != nil {
		return nil, err
	}

	var variance float64
	if n > 1 || rank == 0 {
		var fitted mat.VecDense
		fitted.MulVec(phi, weights)

		var sse float64
		for i := 0; i < n; i++ {
			r := y.AtVec(i) - fitted.AtVec(i)
			sse += r * r
		}
		variance = sse / float64(n)
	}

	if err := errors.CheckScalar("linear.FitMLE variance", variance, -1); err != nil {
		return nil, err
	}

	return &mleSolution{weights: weights, variance: variance, rank: rank}, nil
}
