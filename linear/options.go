package linear

import (
	"github.com/YuminosukeSato/basisreg/basis"
	"github.com/YuminosukeSato/basisreg/pkg/log"
)

// Option is a function that configures BasisRegression
type Option func(*config)

type config struct {
	kind     basis.Kind
	kindName string
	degree   int
	logger   log.Logger
}

// WithBasis sets the basis family
func WithBasis(kind basis.Kind) Option {
	return func(c *config) {
		c.kind = kind
		c.kindName = ""
	}
}

// WithBasisName sets the basis family from its token ("polynomial",
// "trigonometric"). Unknown tokens make NewBasisRegression fail.
func WithBasisName(name string) Option {
	return func(c *config) {
		c.kindName = name
	}
}

// WithDegree sets the basis degree J
func WithDegree(degree int) Option {
	return func(c *config) {
		c.degree = degree
	}
}

// WithLogger overrides the logger (default: log.GetLoggerWithName("linear"))
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
