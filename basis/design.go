// Package basis builds design matrices for one-dimensional inputs.
//
// Column layout is fixed so that weights can be indexed positionally:
//
//	polynomial, degree J:     [1, x, x², …, x^J]                       (J+1 columns)
//	trigonometric, degree J:  [1, sin 2πx, cos 2πx, sin 4πx, cos 4πx, …] (2J+1 columns)
//
// For the trigonometric basis harmonic h (1 ≤ h ≤ J) occupies column 2h-1
// (sine) and column 2h (cosine).
package basis

import (
	"math"

	"github.com/YuminosukeSato/basisreg/core/parallel"
	"github.com/YuminosukeSato/basisreg/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// rows below this are filled on the caller's goroutine
const parallelThreshold = 1000

type fillFunc func(phi *mat.Dense, x []float64, degree, start, end int)

var fillers = [...]fillFunc{
	Polynomial:    fillPolynomial,
	Trigonometric: fillTrigonometric,
}

// DesignMatrix returns the N×M design matrix Φ for x. x is not modified.
func DesignMatrix(x []float64, kind Kind, degree int) (*mat.Dense, error) {
	m, err := NumFeatures(kind, degree)
	if err != nil {
		return nil, err
	}
	n := len(x)
	if n == 0 {
		return nil, errors.NewModelError("basis.DesignMatrix", "empty data", errors.ErrEmptyData)
	}

	phi := mat.NewDense(n, m, nil)
	fill := fillers[kind]
	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		fill(phi, x, degree, start, end)
	})
	if err := errors.CheckMatrix("basis.DesignMatrix", phi, -1); err != nil {
		return nil, err
	}
	return phi, nil
}

// DesignMatrixFrom is DesignMatrix for an N×1 column or a 1×N row.
func DesignMatrixFrom(X mat.Matrix, kind Kind, degree int) (*mat.Dense, error) {
	x, err := Column(X)
	if err != nil {
		return nil, err
	}
	return DesignMatrix(x, kind, degree)
}

// Column copies a single-feature matrix (N×1, or 1×N) into a flat slice.
func Column(X mat.Matrix) ([]float64, error) {
	r, c := X.Dims()
	switch {
	case r == 0 || c == 0:
		return nil, errors.NewModelError("basis.Column", "empty data", errors.ErrEmptyData)
	case c == 1:
		out := make([]float64, r)
		for i := range out {
			out[i] = X.At(i, 0)
		}
		return out, nil
	case r == 1:
		out := make([]float64, c)
		for j := range out {
			out[j] = X.At(0, j)
		}
		return out, nil
	default:
		return nil, errors.NewDimensionError("basis.Column", 1, c, 1)
	}
}

func fillPolynomial(phi *mat.Dense, x []float64, degree, start, end int) {
	for i := start; i < end; i++ {
		p := 1.0
		for j := 0; j <= degree; j++ {
			phi.Set(i, j, p)
			p *= x[i]
		}
	}
}

func fillTrigonometric(phi *mat.Dense, x []float64, degree, start, end int) {
	for i := start; i < end; i++ {
		phi.Set(i, 0, 1)
		for h := 1; h <= degree; h++ {
			s, c := math.Sincos(2 * math.Pi * float64(h) * x[i])
			phi.Set(i, 2*h-1, s)
			phi.Set(i, 2*h, c)
		}
	}
}
