package model_selection

import (
	"github.com/YuminosukeSato/basisreg/core/model"
	"github.com/YuminosukeSato/basisreg/pkg/log"
)

// Option is a function that configures CrossValidateLOO and ValidationCurve
type Option func(*config)

type config struct {
	nJobs  int
	shared bool
	logger log.Logger
	wrap   func(model.MLERegressor) model.MLERegressor
}

func newConfig(opts []Option) *config {
	cfg := &config{nJobs: 1}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName("model_selection")
	}
	return cfg
}

// WithNJobs evaluates folds on n workers, each fold on its own clone of the
// estimator. n <= 0 uses one worker per CPU core. Default: 1.
func WithNJobs(n int) Option {
	return func(c *config) {
		c.nJobs = n
	}
}

// WithSharedModel refits the caller's estimator in place for every fold,
// sequentially. The estimator is left fitted on the last fold. WithNJobs is
// ignored.
func WithSharedModel() Option {
	return func(c *config) {
		c.shared = true
	}
}

// WithLogger overrides the logger (default: log.GetLoggerWithName("model_selection"))
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithPipeline makes ValidationCurve evaluate wrap(reg) instead of each
// bare BasisRegression, e.g. to put a scaler in front of it. CrossValidateLOO
// ignores it.
func WithPipeline(wrap func(model.MLERegressor) model.MLERegressor) Option {
	return func(c *config) {
		c.wrap = wrap
	}
}
