// Package basisreg fits one-dimensional data with maximum-likelihood linear
// regression on a polynomial or trigonometric basis and estimates
// out-of-sample error by leave-one-out cross-validation (LOOCV).
//
// # Model
//
// For inputs x₁…x_N the design matrix Φ has one row per sample:
//
//   - polynomial, degree J: [1, x, x², …, x^J]
//   - trigonometric, degree J: [1, sin 2πx, cos 2πx, …, sin 2πJx, cos 2πJx]
//
// Fitting computes the maximum-likelihood weights and noise variance
//
//	w  = (ΦᵀΦ)⁺ Φᵀ y
//	σ² = (1/N) Σ (yᵢ − Φᵢ·w)²
//
// with a Moore–Penrose pseudo-inverse, so rank-deficient designs (more
// columns than samples) return the minimum-norm solution and a warning
// instead of failing.
//
// # Quick Start
//
//	X, Y, _ := dataset.CosineSine(25)
//
//	reg, err := linear.NewBasisRegression(
//	    linear.WithBasis(basis.Trigonometric),
//	    linear.WithDegree(6),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := reg.Fit(X, Y); err != nil {
//	    log.Fatal(err)
//	}
//	xs, ys, err := reg.PredictRange(200, 0, 0.9)
//
//	testErr, variance, err := model_selection.LeaveOneOutCV(reg, X, Y,
//	    model_selection.WithNJobs(0),
//	)
//
// # Packages
//
//   - basis: basis kinds and design matrices
//   - linear: BasisRegression and the pseudo-inverse MLE solver
//   - model_selection: LOOCV, validation curves over degrees
//   - metrics: MSE, RMSE, MAE, R², squared error
//   - preprocessing: standard and min-max input scaling
//   - dataset: the cos(10x²) + 0.1·sin(100x) benchmark
//   - plotting: fitted curves and LOOCV error curves (gonum/plot)
//   - core/model: estimator interfaces
//   - core/parallel: chunked worker helper
//   - pkg/errors, pkg/log: structured errors and zerolog logging
//
// The basisreg command (cmd/basisreg) exposes fit, loocv and curve.
package basisreg
