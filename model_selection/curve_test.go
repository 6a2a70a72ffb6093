package model_selection

import (
	"testing"

	"github.com/YuminosukeSato/basisreg/basis"
	"github.com/YuminosukeSato/basisreg/core/model"
	"github.com/YuminosukeSato/basisreg/linear"
	"github.com/YuminosukeSato/basisreg/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationCurve_Trigonometric(t *testing.T) {
	X, Y := benchmarkData(t)

	curve, err := ValidationCurve(basis.Trigonometric, DegreeRange(0, 10), X, Y, WithNJobs(0), quietLogger())
	require.NoError(t, err)
	require.Len(t, curve, 11)

	best, err := BestDegree(curve)
	require.NoError(t, err)
	assert.Equal(t, 6, best.Degree)
	assert.InDelta(t, 0.03292972375974735, best.TestError, 1e-6)

	// the error rises again once the model starts to overfit
	assert.Greater(t, curve[10].TestError, 2*best.TestError)

	// nested models: the fitted variance never grows with the degree
	for i := 1; i < len(curve); i++ {
		assert.LessOrEqual(t, curve[i].Variance, curve[i-1].Variance+1e-9,
			"degree %d", curve[i].Degree)
	}
}

func TestValidationCurve_PolynomialDecreasesAtFirst(t *testing.T) {
	X, Y := benchmarkData(t)

	curve, err := ValidationCurve(basis.Polynomial, []int{0, 1, 5}, X, Y, quietLogger())
	require.NoError(t, err)
	require.Len(t, curve, 3)

	assert.Equal(t, []int{0, 1, 5}, []int{curve[0].Degree, curve[1].Degree, curve[2].Degree})
	assert.InDelta(t, 0.46734612867863135, curve[1].TestError, 1e-8)
	assert.Greater(t, curve[0].TestError, curve[1].TestError)
	assert.Greater(t, curve[1].TestError, curve[2].TestError)
}

func TestValidationCurve_Errors(t *testing.T) {
	X, Y := benchmarkData(t)

	_, err := ValidationCurve(basis.Polynomial, nil, X, Y, quietLogger())
	var ve *errors.ValueError
	assert.True(t, errors.As(err, &ve), "%v", err)

	_, err = ValidationCurve(basis.Polynomial, []int{1, -1}, X, Y, quietLogger())
	var vErr *errors.ValidationError
	assert.True(t, errors.As(err, &vErr), "%v", err)
}

func TestBestDegree(t *testing.T) {
	curve := []CurvePoint{
		{Degree: 0, TestError: 0.5},
		{Degree: 1, TestError: 0.2},
		{Degree: 2, TestError: 0.2},
		{Degree: 3, TestError: 0.9},
	}
	best, err := BestDegree(curve)
	require.NoError(t, err)
	assert.Equal(t, 1, best.Degree)

	// descending sweep: the tie still resolves to the smaller degree
	reversed := []CurvePoint{curve[3], curve[2], curve[1], curve[0]}
	best, err = BestDegree(reversed)
	require.NoError(t, err)
	assert.Equal(t, 1, best.Degree)

	_, err = BestDegree(nil)
	assert.Error(t, err)
}

func TestDegreeRange(t *testing.T) {
	assert.Equal(t, []int{2, 3, 4}, DegreeRange(2, 4))
	assert.Equal(t, []int{0}, DegreeRange(0, 0))
	assert.Nil(t, DegreeRange(3, 1))
}

func TestValidationCurve_Pipeline(t *testing.T) {
	X, Y := benchmarkData(t)

	var wrapped []int
	wrap := func(est model.MLERegressor) model.MLERegressor {
		wrapped = append(wrapped, est.(*linear.BasisRegression).Degree())
		return est
	}

	curve, err := ValidationCurve(basis.Polynomial, []int{1, 2}, X, Y, WithPipeline(wrap), quietLogger())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, wrapped)
	assert.InDelta(t, 0.46734612867863135, curve[0].TestError, 1e-8)
}
