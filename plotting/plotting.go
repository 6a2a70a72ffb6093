// Package plotting renders fitted curves and LOOCV error curves with
// gonum/plot.
package plotting

import (
	"image/color"
	"io"

	"github.com/YuminosukeSato/basisreg/basis"
	"github.com/YuminosukeSato/basisreg/model_selection"
	"github.com/YuminosukeSato/basisreg/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Default figure size.
const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

var (
	fitColor      = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	truthColor    = color.RGBA{R: 127, G: 127, B: 127, A: 255}
	varianceColor = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// FitPlot draws the training data as a scatter and the prediction curve
// (xs, ys) as a line.
func FitPlot(title string, X, Y mat.Matrix, xs, ys mat.Vector) (*plot.Plot, error) {
	x, err := basis.Column(X)
	if err != nil {
		return nil, errors.Wrap(err, "plotting.FitPlot")
	}
	y, err := basis.Column(Y)
	if err != nil {
		return nil, errors.Wrap(err, "plotting.FitPlot")
	}
	if len(x) != len(y) {
		return nil, errors.NewDimensionError("plotting.FitPlot", len(x), len(y), 0)
	}
	if xs.Len() != ys.Len() {
		return nil, errors.NewDimensionError("plotting.FitPlot", xs.Len(), ys.Len(), 0)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	data := make(plotter.XYs, len(x))
	for i := range x {
		data[i].X, data[i].Y = x[i], y[i]
	}
	scatter, err := plotter.NewScatter(data)
	if err != nil {
		return nil, errors.Wrap(err, "plotting.FitPlot")
	}
	scatter.GlyphStyle.Radius = vg.Points(3)

	curve := make(plotter.XYs, xs.Len())
	for i := range curve {
		curve[i].X, curve[i].Y = xs.AtVec(i), ys.AtVec(i)
	}
	line, err := plotter.NewLine(curve)
	if err != nil {
		return nil, errors.Wrap(err, "plotting.FitPlot")
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = fitColor

	p.Add(scatter, line)
	p.Legend.Add("data", scatter)
	p.Legend.Add("fit", line)
	return p, nil
}

// AddFunction overlays f on [xmin, xmax] as a dashed line.
func AddFunction(p *plot.Plot, name string, f func(float64) float64, xmin, xmax float64) {
	fn := plotter.NewFunction(f)
	fn.XMin, fn.XMax = xmin, xmax
	fn.Samples = 200
	fn.Color = truthColor
	fn.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(fn)
	p.Legend.Add(name, fn)
}

// CurvePlot draws the mean LOOCV test error and the mean fitted variance
// against the basis degree.
func CurvePlot(title string, curve []model_selection.CurvePoint) (*plot.Plot, error) {
	if len(curve) == 0 {
		return nil, errors.NewValueError("plotting.CurvePlot", "empty curve")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "degree J"
	p.Y.Label.Text = "mean squared error"
	p.Add(plotter.NewGrid())

	testErr := make(plotter.XYs, len(curve))
	variance := make(plotter.XYs, len(curve))
	for i, pt := range curve {
		testErr[i].X, testErr[i].Y = float64(pt.Degree), pt.TestError
		variance[i].X, variance[i].Y = float64(pt.Degree), pt.Variance
	}

	errLine, errPoints, err := plotter.NewLinePoints(testErr)
	if err != nil {
		return nil, errors.Wrap(err, "plotting.CurvePlot")
	}
	errLine.Color = fitColor
	errPoints.GlyphStyle.Color = fitColor

	varLine, varPoints, err := plotter.NewLinePoints(variance)
	if err != nil {
		return nil, errors.Wrap(err, "plotting.CurvePlot")
	}
	varLine.Color = varianceColor
	varPoints.GlyphStyle.Color = varianceColor

	p.Add(errLine, errPoints, varLine, varPoints)
	p.Legend.Add("LOOCV test error", errLine, errPoints)
	p.Legend.Add("fitted variance", varLine, varPoints)
	p.Legend.Top = true
	return p, nil
}

// Save writes p to path. The format follows the file extension (png, svg,
// pdf, ...).
func Save(p *plot.Plot, path string) error {
	if err := p.Save(Width, Height, path); err != nil {
		return errors.Wrapf(err, "plotting.Save %s", path)
	}
	return nil
}

// Render writes p to w in the given format ("png", "svg", "pdf", ...).
func Render(p *plot.Plot, w io.Writer, format string) error {
	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return errors.Wrapf(err, "plotting.Render %s", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "plotting.Render")
	}
	return nil
}
