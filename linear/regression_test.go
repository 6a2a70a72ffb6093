package linear

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/basisreg/basis"
	"github.com/YuminosukeSato/basisreg/core/model"
	"github.com/YuminosukeSato/basisreg/pkg/errors"
	"github.com/YuminosukeSato/basisreg/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func newModel(t *testing.T, opts ...Option) *BasisRegression {
	t.Helper()
	logger, _ := log.NewTestLogger(log.LevelDebug)
	opts = append([]Option{WithLogger(logger)}, opts...)
	reg, err := NewBasisRegression(opts...)
	require.NoError(t, err)
	return reg
}

func column(values ...float64) *mat.Dense {
	return mat.NewDense(len(values), 1, values)
}

func TestBasisRegression_StraightLine(t *testing.T) {
	// y = 2x + 1
	reg := newModel(t)
	require.NoError(t, reg.Fit(column(0, 1, 2), column(1, 3, 5)))

	w := reg.Weights()
	require.Len(t, w, 2)
	assert.InDelta(t, 1.0, w[0], 1e-9)
	assert.InDelta(t, 2.0, w[1], 1e-9)

	sigma2, err := reg.NoiseVariance()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sigma2, 1e-12)

	pred, err := reg.Predict(column(5, 6))
	require.NoError(t, err)
	r, c := pred.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 1, c)
	assert.InDelta(t, 11.0, pred.At(0, 0), 1e-9)
	assert.InDelta(t, 13.0, pred.At(1, 0), 1e-9)
}

func TestBasisRegression_DefaultConfiguration(t *testing.T) {
	reg := newModel(t)
	assert.Equal(t, basis.Polynomial, reg.Basis())
	assert.Equal(t, 1, reg.Degree())
	assert.Equal(t, 2, reg.NFeatures())
	assert.False(t, reg.IsFitted())
	assert.Equal(t, model.NotFitted, reg.State())
	assert.Nil(t, reg.Weights())
}

func TestBasisRegression_PolynomialRecovery(t *testing.T) {
	xs := make([]float64, 10)
	floats.Span(xs, -1, 1)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 1 - 2*x + 0.5*x*x
	}

	reg := newModel(t, WithDegree(2))
	require.NoError(t, reg.Fit(column(xs...), column(ys...)))

	want := []float64{1, -2, 0.5}
	got := reg.Weights()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-8, "weight %d", i)
	}

	sigma2, err := reg.NoiseVariance()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sigma2, 1e-12)

	rank, err := reg.Rank()
	require.NoError(t, err)
	assert.Equal(t, 3, rank)
}

func TestBasisRegression_TrigonometricRecovery(t *testing.T) {
	xs := make([]float64, 25)
	floats.Span(xs, 0, 0.9)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 0.5 + math.Sin(2*math.Pi*x) - 0.3*math.Cos(4*math.Pi*x)
	}

	reg := newModel(t, WithBasis(basis.Trigonometric), WithDegree(2))
	require.NoError(t, reg.Fit(column(xs...), column(ys...)))

	// [1, sin 2πx, cos 2πx, sin 4πx, cos 4πx]
	want := []float64{0.5, 1, 0, 0, -0.3}
	got := reg.Weights()
	require.Len(t, got, 5)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-8, "weight %d", i)
	}
}

func TestBasisRegression_KnownVariance(t *testing.T) {
	// degree 0 fits the mean 0.5, residuals are ±0.5
	reg := newModel(t, WithDegree(0))
	require.NoError(t, reg.Fit(column(0, 1, 2, 3), column(0, 1, 1, 0)))

	w := reg.Weights()
	require.Len(t, w, 1)
	assert.InDelta(t, 0.5, w[0], 1e-12)

	sigma2, err := reg.NoiseVariance()
	require.NoError(t, err)
	assert.InDelta(t, 0.25, sigma2, 1e-12)
}

func TestBasisRegression_InterpolatesWhenFeaturesMatchSamples(t *testing.T) {
	x := column(0, 0.5, 1)
	y := column(1, -1, 2)

	reg := newModel(t, WithDegree(2))
	require.NoError(t, reg.Fit(x, y))

	pred, err := reg.Predict(x)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, y.At(i, 0), pred.At(i, 0), 1e-8)
	}

	sigma2, err := reg.NoiseVariance()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sigma2, 1e-10)
}

func TestBasisRegression_SingleSample(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	t.Cleanup(func() { errors.SetWarningHandler(func(error) {}) })

	reg := newModel(t, WithDegree(3))
	require.NoError(t, reg.Fit(column(0.5), column(2)))

	sigma2, err := reg.NoiseVariance()
	require.NoError(t, err)
	assert.Equal(t, 0.0, sigma2)

	pred, err := reg.PredictSlice([]float64{0.5})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, pred[0], 1e-6)

	rank, err := reg.Rank()
	require.NoError(t, err)
	assert.Less(t, rank, 4)

	require.NotEmpty(t, warnings)
	var rw *errors.RankWarning
	require.True(t, errors.As(warnings[0], &rw))
	assert.Equal(t, 4, rw.Features)
	assert.Equal(t, 1, rw.Samples)
}

func TestBasisRegression_PredictRange(t *testing.T) {
	reg := newModel(t)
	require.NoError(t, reg.Fit(column(0, 1, 2), column(1, 3, 5)))

	xs, preds, err := reg.PredictRange(5, 0, 1)
	require.NoError(t, err)
	require.Equal(t, 5, xs.Len())
	require.Equal(t, 5, preds.Len())

	wantX := []float64{0, 0.25, 0.5, 0.75, 1}
	for i, want := range wantX {
		assert.InDelta(t, want, xs.AtVec(i), 1e-15)
		assert.InDelta(t, 2*want+1, preds.AtVec(i), 1e-9)
	}
}

func TestBasisRegression_PredictRangeSinglePoint(t *testing.T) {
	reg := newModel(t)
	require.NoError(t, reg.Fit(column(0, 1, 2), column(1, 3, 5)))

	xs, preds, err := reg.PredictRange(1, 0.3, 0.9)
	require.NoError(t, err)
	require.Equal(t, 1, xs.Len())
	assert.Equal(t, 0.3, xs.AtVec(0))
	assert.InDelta(t, 1.6, preds.AtVec(0), 1e-9)
}

func TestBasisRegression_PredictRangeInvalidCount(t *testing.T) {
	reg := newModel(t)
	require.NoError(t, reg.Fit(column(0, 1, 2), column(1, 3, 5)))

	for _, n := range []int{0, -3} {
		_, _, err := reg.PredictRange(n, 0, 1)
		require.Error(t, err)
		var ve *errors.ValueError
		assert.True(t, errors.As(err, &ve), "n=%d: %v", n, err)
	}
}

func TestBasisRegression_NotFitted(t *testing.T) {
	reg := newModel(t)

	_, err := reg.Predict(column(1, 2))
	var nf *errors.NotFittedError
	require.True(t, errors.As(err, &nf), "Predict: %v", err)

	_, _, err = reg.PredictRange(5, 0, 1)
	require.True(t, errors.As(err, &nf), "PredictRange: %v", err)

	_, err = reg.NoiseVariance()
	require.True(t, errors.As(err, &nf), "NoiseVariance: %v", err)

	_, err = reg.Rank()
	require.True(t, errors.As(err, &nf), "Rank: %v", err)
}

func TestBasisRegression_LengthMismatch(t *testing.T) {
	reg := newModel(t)

	err := reg.Fit(column(0, 1, 2), column(1, 3))
	require.Error(t, err)
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de), "%v", err)
	assert.False(t, reg.IsFitted())
}

func TestBasisRegression_MultiColumnInputRejected(t *testing.T) {
	reg := newModel(t)

	X := mat.NewDense(3, 2, []float64{0, 1, 2, 3, 4, 5})
	err := reg.Fit(X, column(1, 2, 3))
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de), "%v", err)
}

func TestBasisRegression_EmptyData(t *testing.T) {
	reg := newModel(t)

	err := reg.Fit(&mat.Dense{}, &mat.Dense{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyData), "%v", err)
}

func TestBasisRegression_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"unknown basis name", []Option{WithBasisName("fourier")}},
		{"unknown basis kind", []Option{WithBasis(basis.Kind(42))}},
		{"negative degree", []Option{WithDegree(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewBasisRegression(tt.opts...)
			require.Error(t, err)
			assert.Nil(t, reg)
			var ve *errors.ValidationError
			assert.True(t, errors.As(err, &ve), "%v", err)
		})
	}
}

func TestBasisRegression_BasisName(t *testing.T) {
	reg := newModel(t, WithBasisName("Trig"), WithDegree(3))
	assert.Equal(t, basis.Trigonometric, reg.Basis())
	assert.Equal(t, 7, reg.NFeatures())
}

func TestBasisRegression_RefitReplacesState(t *testing.T) {
	reg := newModel(t)
	require.NoError(t, reg.Fit(column(0, 1, 2), column(1, 3, 5)))
	require.NoError(t, reg.Fit(column(0, 1, 2), column(0, -1, -2)))

	w := reg.Weights()
	assert.InDelta(t, 0.0, w[0], 1e-9)
	assert.InDelta(t, -1.0, w[1], 1e-9)

	// a failed fit keeps the previous parameters
	require.Error(t, reg.Fit(column(0, 1), column(1)))
	w = reg.Weights()
	assert.InDelta(t, -1.0, w[1], 1e-9)
}

func TestBasisRegression_WeightsAreCopies(t *testing.T) {
	reg := newModel(t)
	require.NoError(t, reg.Fit(column(0, 1, 2), column(1, 3, 5)))

	w := reg.Weights()
	w[0] = 100

	pred, err := reg.PredictSlice([]float64{0})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, pred[0], 1e-9)
}

func TestBasisRegression_Clone(t *testing.T) {
	reg := newModel(t, WithBasis(basis.Trigonometric), WithDegree(2))
	require.NoError(t, reg.Fit(column(0, 0.2, 0.4, 0.6, 0.8, 0.9), column(1, 0, 1, 0, 1, 0)))

	clone, ok := reg.Clone().(*BasisRegression)
	require.True(t, ok)
	assert.False(t, clone.IsFitted())
	assert.Equal(t, reg.Basis(), clone.Basis())
	assert.Equal(t, reg.Degree(), clone.Degree())
	assert.True(t, reg.IsFitted())
}

func TestBasisRegression_Score(t *testing.T) {
	reg := newModel(t)
	require.NoError(t, reg.Fit(column(0, 1, 2, 3), column(1, 3, 5, 7)))

	score, err := reg.Score(column(4, 5), column(9, 11))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestBasisRegression_VectorTargets(t *testing.T) {
	reg := newModel(t)
	require.NoError(t, reg.Fit(column(0, 1, 2), mat.NewVecDense(3, []float64{1, 3, 5})))
	assert.InDelta(t, 2.0, reg.Weights()[1], 1e-9)
}

func TestBasisRegression_String(t *testing.T) {
	reg := newModel(t, WithBasis(basis.Trigonometric), WithDegree(4))
	assert.Equal(t, "BasisRegression(basis=trigonometric, degree=4, unfitted)", reg.String())
	assert.Equal(t, map[string]interface{}{"basis": "trigonometric", "degree": 4}, reg.GetParams())
}

func TestBasisRegression_LogsFit(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	reg, err := NewBasisRegression(WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, reg.Fit(column(0, 1, 2), column(1, 3, 5)))

	assert.True(t, logger.ContainsMessage("fit completed"))
	assert.True(t, logger.ContainsField(log.OperationKey, log.OperationFit))
	assert.True(t, logger.ContainsField(log.ModelNameKey, "BasisRegression"))
}
