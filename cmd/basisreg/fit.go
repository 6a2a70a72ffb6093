package main

import (
	"fmt"

	"github.com/YuminosukeSato/basisreg/core/model"
	"github.com/YuminosukeSato/basisreg/dataset"
	"github.com/YuminosukeSato/basisreg/metrics"
	"github.com/YuminosukeSato/basisreg/pkg/errors"
	"github.com/YuminosukeSato/basisreg/pkg/log"
	"github.com/YuminosukeSato/basisreg/plotting"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

type scores struct {
	r2, rmse, mae float64
}

// trainingScores evaluates est on the data it was fitted on.
func trainingScores(est model.Predictor, X, Y mat.Matrix) (scores, error) {
	pred, err := est.Predict(X)
	if err != nil {
		return scores{}, err
	}
	yTrue := mat.NewVecDense(len(mat.Col(nil, 0, Y)), mat.Col(nil, 0, Y))
	yPred := mat.NewVecDense(yTrue.Len(), mat.Col(nil, 0, pred))

	var s scores
	if s.r2, err = metrics.R2Score(yTrue, yPred); err != nil {
		return scores{}, err
	}
	if s.rmse, err = metrics.RMSE(yTrue, yPred); err != nil {
		return scores{}, err
	}
	if s.mae, err = metrics.MAE(yTrue, yPred); err != nil {
		return scores{}, err
	}
	return s, nil
}

func newFitCmd(a *app) *cobra.Command {
	var (
		mf          modelFlags
		rangePoints int
		plotPath    string
	)

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit one model and print its weights and noise variance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			X, Y, err := loadData(mf.points)
			if err != nil {
				return err
			}
			est, reg, err := a.estimator(&mf)
			if err != nil {
				return err
			}
			if err := est.Fit(X, Y); err != nil {
				return a.fail(log.OperationFit, err)
			}

			sigma2, err := est.NoiseVariance()
			if err != nil {
				return err
			}
			sc, err := trainingScores(est, X, Y)
			if err != nil {
				return err
			}
			a.logger.Info("model fitted",
				log.OperationKey, log.OperationFit,
				log.SamplesKey, mf.points,
				log.VarianceKey, sigma2,
				log.R2ScoreKey, sc.r2,
			)
			fmt.Fprintf(a.out, "model: %s\n", reg)
			if a.scaler != nil {
				fmt.Fprintf(a.out, "scaler: %s\n", a.scaler)
			}
			fmt.Fprintln(a.out, "weights:")
			for i, w := range reg.Weights() {
				fmt.Fprintf(a.out, "  w[%d] = %.10g\n", i, w)
			}
			fmt.Fprintf(a.out, "noise variance: %.10g\n", sigma2)
			fmt.Fprintf(a.out, "training R²: %.6g  RMSE: %.6g  MAE: %.6g\n", sc.r2, sc.rmse, sc.mae)

			if plotPath == "" {
				return nil
			}
			rp, ok := est.(model.RangePredictor)
			if !ok {
				return errors.Newf("%T cannot predict over a range", est)
			}
			xs, ys, err := rp.PredictRange(rangePoints, dataset.XMin, dataset.XMax)
			if err != nil {
				return a.fail(log.OperationPredictRange, err)
			}
			p, err := plotting.FitPlot(reg.String(), X, Y, xs, ys)
			if err != nil {
				return err
			}
			plotting.AddFunction(p, "cos(10x²) + 0.1 sin(100x)", dataset.CosineSineFunc, dataset.XMin, dataset.XMax)
			if err := plotting.Save(p, plotPath); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "plot written to %s\n", plotPath)
			return nil
		},
	}

	addModelFlags(cmd, &mf)
	cmd.Flags().IntVar(&rangePoints, "range-points", 200, "number of points on the plotted curve")
	cmd.Flags().StringVar(&plotPath, "plot", "", "write the data and the fitted curve to this file (png, svg, pdf)")
	return cmd
}
