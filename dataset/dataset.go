// Package dataset generates the one-dimensional benchmark data used by the
// command line tool and the examples.
package dataset

import (
	"math"

	"github.com/YuminosukeSato/basisreg/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Benchmark defaults: N samples on [XMin, XMax].
const (
	DefaultSamples = 25
	XMin           = 0.0
	XMax           = 0.9
)

// Linspace returns n evenly spaced values from start to stop inclusive.
// n == 1 yields [start].
func Linspace(start, stop float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, errors.NewValidationError("n", "must be positive", n)
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out, nil
	}
	floats.Span(out, start, stop)
	return out, nil
}

// CosineSineFunc is the noise-free benchmark target cos(10x²) + 0.1·sin(100x).
func CosineSineFunc(x float64) float64 {
	return math.Cos(10*x*x) + 0.1*math.Sin(100*x)
}

// CosineSine returns the benchmark dataset: X = linspace(0, 0.9, n) as an
// n×1 matrix and Y = CosineSineFunc(X).
func CosineSine(n int) (X, Y *mat.Dense, err error) {
	xs, err := Linspace(XMin, XMax, n)
	if err != nil {
		return nil, nil, errors.Wrap(err, "dataset.CosineSine")
	}
	ys := make([]float64, n)
	for i, x := range xs {
		ys[i] = CosineSineFunc(x)
	}
	return mat.NewDense(n, 1, xs), mat.NewDense(n, 1, ys), nil
}
