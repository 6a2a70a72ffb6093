// Package log defines standard attribute keys for model fitting and
// evaluation.
//
// Keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so logs from the fitter, the predictor and the LOOCV
// evaluator can be filtered uniformly.
package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "BasisRegression"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "predict_range", "loocv"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	// Examples: "linear", "model_selection", "cli"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the model lifecycle.
	PhaseKey = "ml.phase"
)

// Basis configuration
const (
	// BasisKindKey records the basis family ("polynomial", "trigonometric").
	BasisKindKey = "basis.kind"

	// DegreeKey records the basis degree J.
	DegreeKey = "basis.degree"

	// RankKey records the numerical rank of the design matrix.
	RankKey = "basis.rank"
)

// Data Shape
const (
	// SamplesKey indicates the number of samples (rows).
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of design matrix columns.
	FeaturesKey = "data.features"

	// TargetsKey indicates the number of target columns.
	TargetsKey = "data.targets"
)

// Performance and Results
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// VarianceKey records the maximum-likelihood noise variance.
	VarianceKey = "metrics.mle_variance"

	// TestErrorKey records a (mean) squared held-out error.
	TestErrorKey = "metrics.test_error"

	// R2ScoreKey records the R² coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// FoldKey records the index of the held-out sample in LOOCV.
	FoldKey = "cv.fold"

	// FoldsKey records the total number of folds.
	FoldsKey = "cv.folds"

	// JobsKey records the number of parallel fold workers.
	JobsKey = "cv.jobs"

	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code.
	ErrorCodeKey = "error.code"

	// SuggestionKey provides a hint for resolving the issue.
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationFit           = "fit"
	OperationPredict       = "predict"
	OperationPredictRange  = "predict_range"
	OperationCrossValidate = "loocv"
	OperationCurve         = "validation_curve"

	PhaseTraining   = "training"
	PhaseValidation = "validation"
	PhaseInference  = "inference"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
)
