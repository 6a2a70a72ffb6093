package linear

import (
	"context"
	"fmt"
	"time"

	"github.com/YuminosukeSato/basisreg/basis"
	"github.com/YuminosukeSato/basisreg/core/model"
	"github.com/YuminosukeSato/basisreg/metrics"
	"github.com/YuminosukeSato/basisreg/pkg/errors"
	"github.com/YuminosukeSato/basisreg/pkg/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const modelName = "BasisRegression"

var (
	_ model.MLERegressor    = (*BasisRegression)(nil)
	_ model.Scorer          = (*BasisRegression)(nil)
	_ model.ParameterGetter = (*BasisRegression)(nil)
	_ model.RangePredictor  = (*BasisRegression)(nil)
)

// fittedParams is replaced as a whole on every Fit, so weights and variance
// always come from the same (X, y).
type fittedParams struct {
	weights  *mat.VecDense
	variance float64
	rank     int
	nSamples int
}

// BasisRegression is a maximum-likelihood linear regression on a polynomial
// or trigonometric basis expansion of a single input.
//
// The basis kind and degree are fixed at construction; build a new model to
// change them. Fit must not be called concurrently on the same instance.
type BasisRegression struct {
	kind   basis.Kind
	degree int
	logger log.Logger

	fitted *fittedParams
}

// NewBasisRegression creates an unfitted model. The default configuration is
// a polynomial basis of degree 1. An unknown basis or a negative degree is
// rejected here, before any data is seen.
//
//	reg, err := linear.NewBasisRegression(
//	    linear.WithBasis(basis.Trigonometric),
//	    linear.WithDegree(3),
//	)
func NewBasisRegression(opts ...Option) (*BasisRegression, error) {
	cfg := config{kind: basis.Polynomial, degree: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.kindName != "" {
		kind, err := basis.ParseKind(cfg.kindName)
		if err != nil {
			return nil, err
		}
		cfg.kind = kind
	}
	if err := basis.Validate(cfg.kind, cfg.degree); err != nil {
		return nil, err
	}

	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName("linear")
	}

	return &BasisRegression{
		kind:   cfg.kind,
		degree: cfg.degree,
		logger: cfg.logger.With(
			log.ModelNameKey, modelName,
			log.BasisKindKey, cfg.kind.String(),
			log.DegreeKey, cfg.degree,
		),
	}, nil
}

// Fit recomputes Φ from X and stores the maximum-likelihood weights and noise
// variance, replacing any previous fit. X is N×1 (or 1×N); y is N×1, 1×N or
// a mat.Vector of length N. On error the previous fit is left untouched.
func (r *BasisRegression) Fit(X, y mat.Matrix) error {
	start := time.Now()

	x, err := basis.Column(X)
	if err != nil {
		return errors.Wrapf(err, "%s.Fit", modelName)
	}
	targets, err := targetVector(y)
	if err != nil {
		return errors.Wrapf(err, "%s.Fit", modelName)
	}
	if len(x) != targets.Len() {
		return errors.NewDimensionError(modelName+".Fit", len(x), targets.Len(), 0)
	}

	phi, err := basis.DesignMatrix(x, r.kind, r.degree)
	if err != nil {
		return errors.Wrapf(err, "%s.Fit", modelName)
	}

	sol, err := solveMLE(phi, targets)
	if err != nil {
		return errors.Wrapf(err, "%s.Fit", modelName)
	}

	_, m := phi.Dims()
	if sol.rank < m {
		errors.Warn(errors.NewRankWarning(modelName+".Fit", sol.rank, m, len(x)))
	}

	r.fitted = &fittedParams{
		weights:  sol.weights,
		variance: sol.variance,
		rank:     sol.rank,
		nSamples: len(x),
	}

	r.logger.Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, len(x),
		log.FeaturesKey, m,
		log.RankKey, sol.rank,
		log.VarianceKey, sol.variance,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict returns Φ(X)·w as an N×1 matrix.
func (r *BasisRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	fitted := r.fitted
	if fitted == nil {
		return nil, errors.NewNotFittedError(modelName, "Predict")
	}
	phi, err := basis.DesignMatrixFrom(X, r.kind, r.degree)
	if err != nil {
		return nil, errors.Wrapf(err, "%s.Predict", modelName)
	}
	pred := r.project(fitted, phi, log.OperationPredict)
	return mat.NewDense(pred.Len(), 1, pred.RawVector().Data), nil
}

// PredictSlice is Predict for a flat slice of inputs.
func (r *BasisRegression) PredictSlice(x []float64) ([]float64, error) {
	pred, err := r.predict(x, "PredictSlice", log.OperationPredict)
	if err != nil {
		return nil, err
	}
	return pred.RawVector().Data, nil
}

func (r *BasisRegression) predict(x []float64, method, op string) (*mat.VecDense, error) {
	fitted := r.fitted
	if fitted == nil {
		return nil, errors.NewNotFittedError(modelName, method)
	}
	phi, err := basis.DesignMatrix(x, r.kind, r.degree)
	if err != nil {
		return nil, errors.Wrapf(err, "%s.%s", modelName, method)
	}
	return r.project(fitted, phi, op), nil
}

// project returns Φ·w for the given fit.
func (r *BasisRegression) project(fitted *fittedParams, phi *mat.Dense, op string) *mat.VecDense {
	n, _ := phi.Dims()
	pred := mat.NewVecDense(n, nil)
	pred.MulVec(phi, fitted.weights)

	if r.logger.Enabled(context.Background(), log.LevelDebug) {
		r.logger.Debug("predict completed",
			log.OperationKey, op,
			log.PhaseKey, log.PhaseInference,
			log.PredsKey, n,
		)
	}
	return pred
}

// PredictRange predicts at nPoints evenly spaced inputs from xmin to xmax
// inclusive and returns the inputs and the predictions. nPoints == 1 yields
// the single input xmin.
func (r *BasisRegression) PredictRange(nPoints int, xmin, xmax float64) (*mat.VecDense, *mat.VecDense, error) {
	if nPoints < 1 {
		return nil, nil, errors.NewValueError(modelName+".PredictRange",
			fmt.Sprintf("n_points must be positive, got %d", nPoints))
	}
	if r.fitted == nil {
		return nil, nil, errors.NewNotFittedError(modelName, "PredictRange")
	}

	xs := make([]float64, nPoints)
	if nPoints == 1 {
		xs[0] = xmin
	} else {
		floats.Span(xs, xmin, xmax)
	}

	pred, err := r.predict(xs, "PredictRange", log.OperationPredictRange)
	if err != nil {
		return nil, nil, err
	}
	return mat.NewVecDense(nPoints, xs), pred, nil
}

// Weights returns a copy of the fitted weights, or nil before Fit. The
// layout follows package basis: weights[0] is the intercept.
func (r *BasisRegression) Weights() []float64 {
	if r.fitted == nil {
		return nil
	}
	return mat.Col(nil, 0, r.fitted.weights)
}

// NoiseVariance returns the maximum-likelihood noise variance of the last fit.
func (r *BasisRegression) NoiseVariance() (float64, error) {
	if r.fitted == nil {
		return 0, errors.NewNotFittedError(modelName, "NoiseVariance")
	}
	return r.fitted.variance, nil
}

// Rank returns the numerical rank of ΦᵀΦ from the last fit.
func (r *BasisRegression) Rank() (int, error) {
	if r.fitted == nil {
		return 0, errors.NewNotFittedError(modelName, "Rank")
	}
	return r.fitted.rank, nil
}

// Score returns the coefficient of determination R² on (X, y).
func (r *BasisRegression) Score(X, y mat.Matrix) (float64, error) {
	pred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}
	targets, err := targetVector(y)
	if err != nil {
		return 0, errors.Wrapf(err, "%s.Score", modelName)
	}
	return metrics.R2Score(targets, mat.NewVecDense(targets.Len(), mat.Col(nil, 0, pred)))
}

// IsFitted reports whether Fit has succeeded at least once.
func (r *BasisRegression) IsFitted() bool {
	return r.fitted != nil
}

// State returns model.Fitted or model.NotFitted.
func (r *BasisRegression) State() model.EstimatorState {
	if r.fitted == nil {
		return model.NotFitted
	}
	return model.Fitted
}

// Basis returns the configured basis kind.
func (r *BasisRegression) Basis() basis.Kind {
	return r.kind
}

// Degree returns the configured basis degree J.
func (r *BasisRegression) Degree() int {
	return r.degree
}

// NFeatures returns the number of design matrix columns M.
func (r *BasisRegression) NFeatures() int {
	m, _ := basis.NumFeatures(r.kind, r.degree)
	return m
}

// Clone returns a fresh, unfitted model with the same configuration.
func (r *BasisRegression) Clone() model.MLERegressor {
	return &BasisRegression{
		kind:   r.kind,
		degree: r.degree,
		logger: r.logger,
	}
}

// GetParams returns the model configuration.
func (r *BasisRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"basis":  r.kind.String(),
		"degree": r.degree,
	}
}

func (r *BasisRegression) String() string {
	state := "unfitted"
	if r.fitted != nil {
		state = fmt.Sprintf("sigma2=%.6g", r.fitted.variance)
	}
	return fmt.Sprintf("%s(basis=%s, degree=%d, %s)", modelName, r.kind, r.degree, state)
}

// targetVector flattens an N×1 or 1×N target matrix or copies a mat.Vector.
func targetVector(y mat.Matrix) (*mat.VecDense, error) {
	if v, ok := y.(mat.Vector); ok {
		if v.Len() == 0 {
			return nil, errors.NewModelError("targetVector", "empty data", errors.ErrEmptyData)
		}
		out := mat.NewVecDense(v.Len(), nil)
		out.CopyVec(v)
		return out, nil
	}
	col, err := basis.Column(y)
	if err != nil {
		return nil, err
	}
	return mat.NewVecDense(len(col), col), nil
}
