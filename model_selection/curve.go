package model_selection

import (
	"github.com/YuminosukeSato/basisreg/basis"
	"github.com/YuminosukeSato/basisreg/core/model"
	"github.com/YuminosukeSato/basisreg/linear"
	"github.com/YuminosukeSato/basisreg/pkg/errors"
	"github.com/YuminosukeSato/basisreg/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// CurvePoint is the LOOCV outcome for one basis degree.
type CurvePoint struct {
	Degree    int
	TestError float64
	Variance  float64
}

// ValidationCurve runs LOOCV of a BasisRegression of the given kind for each
// degree, in the order given. Options are passed to CrossValidateLOO; see
// WithPipeline to wrap each model.
func ValidationCurve(kind basis.Kind, degrees []int, X, y mat.Matrix, opts ...Option) ([]CurvePoint, error) {
	if len(degrees) == 0 {
		return nil, errors.NewValueError("ValidationCurve", "no degrees given")
	}
	cfg := newConfig(opts)

	curve := make([]CurvePoint, 0, len(degrees))
	for _, degree := range degrees {
		reg, err := linear.NewBasisRegression(linear.WithBasis(kind), linear.WithDegree(degree))
		if err != nil {
			return nil, err
		}

		var est model.MLERegressor = reg
		if cfg.wrap != nil {
			est = cfg.wrap(reg)
		}

		testErr, variance, err := LeaveOneOutCV(est, X, y, opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "ValidationCurve degree %d", degree)
		}

		cfg.logger.Debug("degree evaluated",
			log.OperationKey, log.OperationCurve,
			log.BasisKindKey, kind.String(),
			log.DegreeKey, degree,
			log.TestErrorKey, testErr,
			log.VarianceKey, variance,
		)
		curve = append(curve, CurvePoint{Degree: degree, TestError: testErr, Variance: variance})
	}
	return curve, nil
}

// DegreeRange returns the degrees lo..hi inclusive.
func DegreeRange(lo, hi int) []int {
	if hi < lo {
		return nil
	}
	out := make([]int, 0, hi-lo+1)
	for d := lo; d <= hi; d++ {
		out = append(out, d)
	}
	return out
}

// BestDegree returns the point with the smallest test error. Ties go to the
// smaller degree, whatever the order of curve.
func BestDegree(curve []CurvePoint) (CurvePoint, error) {
	if len(curve) == 0 {
		return CurvePoint{}, errors.NewValueError("BestDegree", "empty curve")
	}
	best := curve[0]
	for _, p := range curve[1:] {
		if p.TestError < best.TestError || (p.TestError == best.TestError && p.Degree < best.Degree) {
			best = p
		}
	}
	return best, nil
}
