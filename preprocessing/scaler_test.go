package preprocessing

import (
	"testing"

	"github.com/YuminosukeSato/basisreg/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 10,
		3, 10,
		4, 10,
	})

	s := NewStandardScaler(true, true)
	Xs, err := s.FitTransform(X)
	require.NoError(t, err)

	assert.InDelta(t, 2.5, s.Offset[0], 1e-12)
	assert.InDelta(t, 1.118033988749895, s.Scale[0], 1e-12)
	// constant column keeps scale 1
	assert.Equal(t, 1.0, s.Scale[1])

	var sum float64
	for i := 0; i < 4; i++ {
		sum += Xs.At(i, 0)
		assert.Equal(t, 0.0, Xs.At(i, 1))
	}
	assert.InDelta(t, 0.0, sum, 1e-12)

	back, err := s.InverseTransform(Xs)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-12))
}

func TestStandardScalerWithoutMean(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{1, 3})
	s := NewStandardScaler(false, true)
	Xs, err := s.FitTransform(X)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, Xs.At(0, 0), 1e-12)
	assert.InDelta(t, 3.0, Xs.At(1, 0), 1e-12)
}

func TestMinMaxScaler(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{0, 0.45, 0.9})

	m := NewMinMaxScalerDefault()
	Xs, err := m.FitTransform(X)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1}, mat.Col(nil, 0, Xs), 1e-12)

	// values outside the training range extrapolate linearly
	out, err := m.Transform(mat.NewDense(1, 1, []float64{1.8}))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, out.At(0, 0), 1e-12)

	back, err := m.InverseTransform(Xs)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-12))
}

func TestMinMaxScalerCustomRange(t *testing.T) {
	m, err := NewMinMaxScaler([2]float64{-1, 1})
	require.NoError(t, err)

	Xs, err := m.FitTransform(mat.NewDense(3, 2, []float64{0, 5, 1, 5, 2, 5}))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-1, 0, 1}, mat.Col(nil, 0, Xs), 1e-12)
	assert.InDeltaSlice(t, []float64{-1, -1, -1}, mat.Col(nil, 1, Xs), 1e-12)

	_, err = NewMinMaxScaler([2]float64{1, 1})
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve), "%v", err)
}

func TestScalerErrors(t *testing.T) {
	for _, s := range []Scaler{NewStandardScaler(true, true), NewMinMaxScalerDefault()} {
		_, err := s.Transform(mat.NewDense(1, 1, []float64{1}))
		var nf *errors.NotFittedError
		assert.True(t, errors.As(err, &nf), "%T: %v", s, err)

		require.NoError(t, s.Fit(mat.NewDense(2, 1, []float64{0, 1})))
		_, err = s.Transform(mat.NewDense(1, 2, []float64{1, 2}))
		var de *errors.DimensionError
		assert.True(t, errors.As(err, &de), "%T: %v", s, err)

		err = s.Fit(&mat.Dense{})
		assert.True(t, errors.Is(err, errors.ErrEmptyData), "%T: %v", s, err)

		clone := s.Clone()
		_, err = clone.Transform(mat.NewDense(1, 1, []float64{1}))
		assert.True(t, errors.As(err, &nf), "clone of %T must be unfitted", s)
	}
}

func TestParseScaler(t *testing.T) {
	s, err := ParseScaler("none")
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = ParseScaler("MinMax")
	require.NoError(t, err)
	assert.IsType(t, &MinMaxScaler{}, s)

	s, err = ParseScaler("standard")
	require.NoError(t, err)
	assert.IsType(t, &StandardScaler{}, s)

	_, err = ParseScaler("robust")
	assert.Error(t, err)
}
