package main

import (
	"fmt"

	"github.com/YuminosukeSato/basisreg/model_selection"
	"github.com/YuminosukeSato/basisreg/pkg/log"
	"github.com/spf13/cobra"
)

func newLOOCVCmd(a *app) *cobra.Command {
	var (
		mf     modelFlags
		jobs   int
		shared bool
	)

	cmd := &cobra.Command{
		Use:   "loocv",
		Short: "Estimate the out-of-sample error of one model by leave-one-out cross-validation",
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

			opts := []model_selection.Option{model_selection.WithNJobs(jobs)}
			if shared {
				opts = append(opts, model_selection.WithSharedModel())
			}
			testErr, variance, err := model_selection.LeaveOneOutCV(est, X, Y, opts...)
			if err != nil {
				return a.fail(log.OperationCrossValidate, err)
			}

			fmt.Fprintf(a.out, "model: %s\n", reg)
			fmt.Fprintf(a.out, "average test error: %.10g\n", testErr)
			fmt.Fprintf(a.out, "average variance: %.10g\n", variance)
			return nil
		},
	}

	addModelFlags(cmd, &mf)
	cmd.Flags().IntVar(&jobs, "jobs", 1, "parallel fold workers (0 = one per CPU)")
	cmd.Flags().BoolVar(&shared, "shared", false, "refit a single model in place for every fold")
	return cmd
}
