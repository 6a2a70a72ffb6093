package basis

import (
	"strings"

	"github.com/YuminosukeSato/basisreg/pkg/errors"
)

// Kind selects the basis family used to expand a scalar input.
type Kind int

const (
	// Polynomial expands x into [1, x, x², …, x^J].
	Polynomial Kind = iota
	// Trigonometric expands x into
	// [1, sin(2π·1·x), cos(2π·1·x), …, sin(2π·J·x), cos(2π·J·x)].
	Trigonometric
)

var kindNames = [...]string{
	Polynomial:    "polynomial",
	Trigonometric: "trigonometric",
}

var kindAliases = map[string]Kind{
	"polynomial":    Polynomial,
	"poly":          Polynomial,
	"trigonometric": Trigonometric,
	"trig":          Trigonometric,
}

// Kinds returns every supported basis kind.
func Kinds() []Kind {
	return []Kind{Polynomial, Trigonometric}
}

// String returns the canonical token ("polynomial" or "trigonometric").
func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return k >= Polynomial && k <= Trigonometric
}

// ParseKind parses a basis token. Matching is case-insensitive and accepts
// the short aliases "poly" and "trig".
func ParseKind(s string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, errors.NewValidationError("basis", "must be polynomial or trigonometric", s)
	}
	return k, nil
}

// NumFeatures returns the number of design matrix columns for kind and
// degree: J+1 for polynomial, 2J+1 for trigonometric.
func NumFeatures(kind Kind, degree int) (int, error) {
	if err := Validate(kind, degree); err != nil {
		return 0, err
	}
	if kind == Trigonometric {
		return 2*degree + 1, nil
	}
	return degree + 1, nil
}

// Validate checks a (kind, degree) configuration.
func Validate(kind Kind, degree int) error {
	if !kind.Valid() {
		return errors.NewValidationError("basis", "unknown basis kind", int(kind))
	}
	if degree < 0 {
		return errors.NewValidationError("degree", "must be non-negative", degree)
	}
	return nil
}
