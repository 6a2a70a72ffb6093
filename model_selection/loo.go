// Package model_selection estimates out-of-sample error by leave-one-out
// cross-validation (LOOCV) and sweeps it over basis degrees.
package model_selection

import (
	"fmt"
	"time"

	"github.com/YuminosukeSato/basisreg/core/model"
	"github.com/YuminosukeSato/basisreg/core/parallel"
	"github.com/YuminosukeSato/basisreg/metrics"
	"github.com/YuminosukeSato/basisreg/pkg/errors"
	"github.com/YuminosukeSato/basisreg/pkg/log"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CVFold represents a single fold in cross-validation
type CVFold struct {
	TrainIndices []int
	TestIndices  []int
}

// LeaveOneOut is the splitter that holds out one sample per fold.
type LeaveOneOut struct{}

// NewLeaveOneOut creates a new leave-one-out splitter
func NewLeaveOneOut() *LeaveOneOut {
	return &LeaveOneOut{}
}

// GetNSplits returns the number of folds for n samples
func (LeaveOneOut) GetNSplits(n int) int {
	return n
}

// Split returns n folds. Fold i tests sample i and trains on every other
// sample in ascending order. At least two samples are required.
func (LeaveOneOut) Split(n int) ([]CVFold, error) {
	if n < 2 {
		return nil, errors.Wrapf(errors.ErrInsufficientSamples, "LeaveOneOut.Split: got %d", n)
	}

	folds := make([]CVFold, n)
	for i := 0; i < n; i++ {
		train := make([]int, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				train = append(train, j)
			}
		}
		folds[i] = CVFold{TrainIndices: train, TestIndices: []int{i}}
	}
	return folds, nil
}

// FoldResult is the outcome of one LOOCV fold.
type FoldResult struct {
	// Index is the held-out sample.
	Index int
	// TestError is the squared prediction error on the held-out sample,
	// summed over target columns.
	TestError float64
	// Variance is the noise variance fitted on the training part.
	Variance float64
}

// LOOResult collects per-fold results and their means.
type LOOResult struct {
	Folds         []FoldResult
	MeanTestError float64
	MeanVariance  float64
}

// TestErrors returns the per-fold test errors in fold order.
func (r *LOOResult) TestErrors() []float64 {
	out := make([]float64, len(r.Folds))
	for i, f := range r.Folds {
		out[i] = f.TestError
	}
	return out
}

// Variances returns the per-fold fitted variances in fold order.
func (r *LOOResult) Variances() []float64 {
	out := make([]float64, len(r.Folds))
	for i, f := range r.Folds {
		out[i] = f.Variance
	}
	return out
}

// CrossValidateLOO runs leave-one-out cross-validation of est on (X, y).
//
// X and y must have the same number of rows N ≥ 2. By default every fold is
// fitted on its own clone of est, so est itself is never modified. See
// WithNJobs and WithSharedModel for the other execution modes; all modes
// return identical numbers.
func CrossValidateLOO(est model.MLERegressor, X, y mat.Matrix, opts ...Option) (*LOOResult, error) {
	cfg := newConfig(opts)
	start := time.Now()

	X, y = sampleRows(X, y)
	n, _ := X.Dims()
	ny, _ := y.Dims()
	if n != ny {
		return nil, errors.NewDimensionError("CrossValidateLOO", n, ny, 0)
	}

	folds, err := NewLeaveOneOut().Split(n)
	if err != nil {
		return nil, errors.Wrap(err, "CrossValidateLOO")
	}

	results := make([]FoldResult, n)
	foldErrs := make([]error, n)

	switch {
	case cfg.shared:
		// one instance, refit in place: strictly sequential
		for i, fold := range folds {
			results[i], foldErrs[i] = runFold(est, X, y, fold)
			if foldErrs[i] != nil {
				break
			}
			cfg.logFold(results[i])
		}
	default:
		parallel.ParallelizeN(n, cfg.nJobs, func(s, e int) {
			for i := s; i < e; i++ {
				results[i], foldErrs[i] = runFold(est.Clone(), X, y, folds[i])
			}
		})
		for i := range results {
			if foldErrs[i] == nil {
				cfg.logFold(results[i])
			}
		}
	}

	for i, err := range foldErrs {
		if err != nil {
			cfg.logger.Error("LOOCV fold failed", err,
				log.OperationKey, log.OperationCrossValidate,
				log.FoldKey, i,
			)
			return nil, errors.Wrapf(err, "CrossValidateLOO fold %d", i)
		}
	}

	res := &LOOResult{Folds: results}
	res.MeanTestError = stat.Mean(res.TestErrors(), nil)
	res.MeanVariance = stat.Mean(res.Variances(), nil)
	if err := errors.CheckNumericalStability("CrossValidateLOO",
		[]float64{res.MeanTestError, res.MeanVariance}, -1); err != nil {
		return nil, err
	}

	_, targets := y.Dims()
	cfg.logger.Info("LOOCV completed",
		log.OperationKey, log.OperationCrossValidate,
		log.PhaseKey, log.PhaseValidation,
		log.FoldsKey, n,
		log.TargetsKey, targets,
		log.JobsKey, cfg.jobsLabel(),
		log.TestErrorKey, res.MeanTestError,
		log.VarianceKey, res.MeanVariance,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return res, nil
}

// LeaveOneOutCV returns the mean held-out squared error and the mean fitted
// noise variance over all N folds.
func LeaveOneOutCV(est model.MLERegressor, X, y mat.Matrix, opts ...Option) (avgTestError, avgVariance float64, err error) {
	res, err := CrossValidateLOO(est, X, y, opts...)
	if err != nil {
		return 0, 0, err
	}
	return res.MeanTestError, res.MeanVariance, nil
}

// runFold fits est on the training rows and scores the held-out row. Panics
// raised by gonum are returned as errors.
func runFold(est model.MLERegressor, X, y mat.Matrix, fold CVFold) (res FoldResult, err error) {
	err = errors.SafeExecute("LOOCV fold", func() error {
		res.Index = fold.TestIndices[0]

		if err := est.Fit(takeRows(X, fold.TrainIndices), takeRows(y, fold.TrainIndices)); err != nil {
			return err
		}

		pred, err := est.Predict(takeRows(X, fold.TestIndices))
		if err != nil {
			return err
		}
		res.TestError, err = metrics.SquaredError(takeRows(y, fold.TestIndices), pred)
		if err != nil {
			return err
		}

		res.Variance, err = est.NoiseVariance()
		return err
	})
	return res, err
}

// sampleRows lays X and y out with one sample per row. A 1×N X is a single
// feature row and is transposed; y is transposed when it is a 1×N row that
// matches the sample count.
func sampleRows(X, y mat.Matrix) (mat.Matrix, mat.Matrix) {
	if r, c := X.Dims(); r == 1 && c > 1 {
		X = X.T()
	}
	n, _ := X.Dims()
	if r, c := y.Dims(); r == 1 && c == n && n > 1 {
		y = y.T()
	}
	return X, y
}

// takeRows copies the given rows of m into a new matrix.
func takeRows(m mat.Matrix, rows []int) *mat.Dense {
	_, c := m.Dims()
	out := mat.NewDense(len(rows), c, nil)
	for i, r := range rows {
		for j := 0; j < c; j++ {
			out.Set(i, j, m.At(r, j))
		}
	}
	return out
}

func (c *config) logFold(r FoldResult) {
	c.logger.Debug("fold evaluated",
		log.OperationKey, log.OperationCrossValidate,
		log.FoldKey, r.Index,
		log.TestErrorKey, r.TestError,
		log.VarianceKey, r.Variance,
	)
}

func (c *config) jobsLabel() string {
	if c.shared {
		return "shared"
	}
	if c.nJobs <= 0 {
		return "all"
	}
	return fmt.Sprint(c.nJobs)
}
