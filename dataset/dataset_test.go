package dataset

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/basisreg/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	got, err := Linspace(0, 1, 5)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 1}, got, 1e-15)

	got, err = Linspace(0.3, 0.9, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3}, got)

	_, err = Linspace(0, 1, 0)
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve), "%v", err)
}

func TestCosineSine(t *testing.T) {
	X, Y, err := CosineSine(DefaultSamples)
	require.NoError(t, err)

	r, c := X.Dims()
	assert.Equal(t, 25, r)
	assert.Equal(t, 1, c)
	r, c = Y.Dims()
	assert.Equal(t, 25, r)
	assert.Equal(t, 1, c)

	assert.Equal(t, 0.0, X.At(0, 0))
	assert.InDelta(t, 0.9, X.At(24, 0), 1e-15)
	assert.InDelta(t, 0.0375, X.At(1, 0), 1e-15)

	// y(0) = cos 0 + 0.1 sin 0
	assert.Equal(t, 1.0, Y.At(0, 0))
	x := X.At(24, 0)
	assert.InDelta(t, math.Cos(10*x*x)+0.1*math.Sin(100*x), Y.At(24, 0), 1e-15)
}

func TestCosineSineInvalid(t *testing.T) {
	_, _, err := CosineSine(0)
	require.Error(t, err)
}
