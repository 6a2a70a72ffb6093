package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/YuminosukeSato/basisreg/basis"
	"github.com/YuminosukeSato/basisreg/dataset"
	"github.com/YuminosukeSato/basisreg/model_selection"
	"github.com/YuminosukeSato/basisreg/pkg/log"
	"github.com/YuminosukeSato/basisreg/plotting"
	"github.com/spf13/cobra"
)

func newCurveCmd(a *app) *cobra.Command {
	var (
		basisName string
		minDegree int
		maxDegree int
		points    int
		jobs      int
		plotPath  string
	)

	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Run LOOCV for every degree in a range and report the best one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := basis.ParseKind(basisName)
			if err != nil {
				return err
			}
			X, Y, err := loadData(points)
			if err != nil {
				return err
			}

			curve, err := model_selection.ValidationCurve(kind,
				model_selection.DegreeRange(minDegree, maxDegree), X, Y,
				model_selection.WithNJobs(jobs),
				model_selection.WithPipeline(a.wrap),
			)
			if err != nil {
				return a.fail(log.OperationCurve, err)
			}
			best, err := model_selection.BestDegree(curve)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "degree\ttest error\tvariance")
			for _, p := range curve {
				fmt.Fprintf(tw, "%d\t%.6g\t%.6g\n", p.Degree, p.TestError, p.Variance)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "best degree: %d (test error %.6g)\n", best.Degree, best.TestError)

			if plotPath == "" {
				return nil
			}
			p, err := plotting.CurvePlot(fmt.Sprintf("LOOCV, %s basis", kind), curve)
			if err != nil {
				return err
			}
			if err := plotting.Save(p, plotPath); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "plot written to %s\n", plotPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&basisName, "basis", "polynomial", "basis family: polynomial|trigonometric")
	cmd.Flags().IntVar(&minDegree, "min-degree", 0, "smallest degree J")
	cmd.Flags().IntVar(&maxDegree, "max-degree", 10, "largest degree J")
	cmd.Flags().IntVar(&points, "points", dataset.DefaultSamples, "number of benchmark samples N")
	cmd.Flags().IntVar(&jobs, "jobs", 1, "parallel fold workers (0 = one per CPU)")
	cmd.Flags().StringVar(&plotPath, "plot", "", "write the error curve to this file (png, svg, pdf)")
	return cmd
}
