package main

import (
	"io"

	"github.com/YuminosukeSato/basisreg/core/model"
	"github.com/YuminosukeSato/basisreg/dataset"
	"github.com/YuminosukeSato/basisreg/linear"
	"github.com/YuminosukeSato/basisreg/pkg/errors"
	"github.com/YuminosukeSato/basisreg/pkg/log"
	"github.com/YuminosukeSato/basisreg/preprocessing"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

// GlobalFlags are shared by every subcommand.
type GlobalFlags struct {
	LogLevel  string // debug|info|warn|error
	LogFormat string // json|console
	Scale     string // none|minmax|standard
}

// modelFlags select the model and the dataset size.
type modelFlags struct {
	basis  string
	degree int
	points int
}

type app struct {
	flags  GlobalFlags
	out    io.Writer
	errOut io.Writer
	scaler preprocessing.Scaler
	logger log.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "basisreg",
		Short: "Basis-expanded linear regression with LOOCV",
		Long: `basisreg fits maximum-likelihood linear regressions on a polynomial or
trigonometric basis to the benchmark dataset

  X = linspace(0, 0.9, N),  Y = cos(10·X²) + 0.1·sin(100·X)

and estimates out-of-sample error by leave-one-out cross-validation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := log.SetupLoggerTo(a.errOut, a.flags.LogLevel, a.flags.LogFormat); err != nil {
				return err
			}
			a.logger = log.GetLoggerWithName("cli")

			scaler, err := preprocessing.ParseScaler(a.flags.Scale)
			if err != nil {
				return err
			}
			a.scaler = scaler
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.flags.LogLevel, "log-level", "warn", "log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&a.flags.LogFormat, "log-format", log.FormatConsole, "log format: json|console")
	root.PersistentFlags().StringVar(&a.flags.Scale, "scale", "none", "input scaling: none|minmax|standard")

	root.AddCommand(newFitCmd(a))
	root.AddCommand(newLOOCVCmd(a))
	root.AddCommand(newCurveCmd(a))
	return root
}

func addModelFlags(cmd *cobra.Command, mf *modelFlags) {
	cmd.Flags().StringVar(&mf.basis, "basis", "polynomial", "basis family: polynomial|trigonometric")
	cmd.Flags().IntVar(&mf.degree, "degree", 1, "basis degree J")
	cmd.Flags().IntVar(&mf.points, "points", dataset.DefaultSamples, "number of benchmark samples N")
}

// estimator returns the model to evaluate and the bare regression inside it.
func (a *app) estimator(mf *modelFlags) (model.MLERegressor, *linear.BasisRegression, error) {
	reg, err := linear.NewBasisRegression(linear.WithBasisName(mf.basis), linear.WithDegree(mf.degree))
	if err != nil {
		return nil, nil, err
	}
	return a.wrap(reg), reg, nil
}

// wrap puts the configured scaler, if any, in front of reg.
func (a *app) wrap(reg model.MLERegressor) model.MLERegressor {
	if a.scaler == nil {
		return reg
	}
	p, err := preprocessing.NewScaledRegressor(a.scaler.Clone(), reg)
	if err != nil {
		// both parts are non-nil here
		panic(err)
	}
	return p
}

func loadData(points int) (*mat.Dense, *mat.Dense, error) {
	X, Y, err := dataset.CosineSine(points)
	if err != nil {
		return nil, nil, errors.Wrap(err, "--points")
	}
	return X, Y, nil
}

// fail logs err with a structured error code and returns it.
func (a *app) fail(op string, err error) error {
	if a.logger != nil {
		a.logger.Error("command failed", err,
			log.OperationKey, op,
			log.ErrorCodeKey, errorCode(err),
		)
	}
	return err
}

// errorCode classifies err for the ErrorCodeKey log field.
func errorCode(err error) string {
	var (
		notFitted *errors.NotFittedError
		dimErr    *errors.DimensionError
		valErr    *errors.ValidationError
		valueErr  *errors.ValueError
	)
	switch {
	case errors.As(err, &notFitted):
		return log.ErrorNotFitted
	case errors.As(err, &dimErr):
		return log.ErrorDimensionMismatch
	case errors.Is(err, errors.ErrEmptyData), errors.Is(err, errors.ErrInsufficientSamples):
		return log.ErrorEmptyData
	case errors.Is(err, errors.ErrSingularMatrix):
		return log.ErrorSingularMatrix
	case errors.As(err, &valErr), errors.As(err, &valueErr):
		return log.ErrorInvalidInput
	default:
		return "UNKNOWN"
	}
}
