package plotting

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/basisreg/dataset"
	"github.com/YuminosukeSato/basisreg/model_selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestFitPlotSave(t *testing.T) {
	X, Y, err := dataset.CosineSine(dataset.DefaultSamples)
	require.NoError(t, err)

	xs := mat.NewVecDense(3, []float64{0, 0.45, 0.9})
	ys := mat.NewVecDense(3, []float64{1, 0.5, 0})

	p, err := FitPlot("fit", X, Y, xs, ys)
	require.NoError(t, err)
	AddFunction(p, "truth", dataset.CosineSineFunc, dataset.XMin, dataset.XMax)

	path := filepath.Join(t.TempDir(), "fit.png")
	require.NoError(t, Save(p, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestFitPlotMismatch(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{0, 1, 2})
	Y := mat.NewDense(2, 1, []float64{0, 1})
	xs := mat.NewVecDense(2, []float64{0, 1})

	_, err := FitPlot("fit", X, Y, xs, xs)
	assert.Error(t, err)

	_, err = FitPlot("fit", X, X, xs, mat.NewVecDense(3, nil))
	assert.Error(t, err)
}

func TestCurvePlotRender(t *testing.T) {
	curve := []model_selection.CurvePoint{
		{Degree: 0, TestError: 0.53, Variance: 0.49},
		{Degree: 1, TestError: 0.47, Variance: 0.40},
		{Degree: 2, TestError: 0.30, Variance: 0.21},
	}
	p, err := CurvePlot("LOOCV", curve)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(p, &buf, "svg"))
	assert.Contains(t, buf.String(), "<svg")

	_, err = CurvePlot("LOOCV", nil)
	assert.Error(t, err)
}
