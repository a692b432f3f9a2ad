package topsis

import (
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
)

// Input errors. Each is returned (possibly wrapped with position detail) when
// the raw table, weight list or impact list is malformed.
var (
	ErrShape               = eris.New("topsis: invalid table shape")
	ErrNonNumericCriterion = eris.New("topsis: non-numeric value in criteria columns")
	ErrWeightFormat        = eris.New("topsis: weights must be non-negative numbers, comma-separated")
	ErrWeightCountMismatch = eris.New("topsis: number of weights does not match number of criteria")
	ErrImpactFormat        = eris.New("topsis: impacts must be '+' or '-', comma-separated, one per criterion")
)

// Degenerate data errors. The input is well formed but the result is
// mathematically undefined.
var (
	ErrDegenerateWeights = eris.New("topsis: weights sum to zero")
	ErrZeroNorm          = eris.New("topsis: criterion column has zero norm")
	ErrUndefinedScore    = eris.New("topsis: score undefined (alternative coincides with both ideal points)")
)

// ErrLengthMismatch signals a programming contract violation between the
// engine output and the table it is assembled onto.
var ErrLengthMismatch = eris.New("topsis: result length does not match table")

// CellError reports a criterion cell that failed numeric parsing.
// Row and Col are 1-based positions in the data section (header excluded).
type CellError struct {
	Row    int
	Col    int
	Column string
	Value  string
}

func (e *CellError) Error() string {
	return fmt.Sprintf("%s: row %d, column %d (%q): %q", ErrNonNumericCriterion, e.Row, e.Col, e.Column, e.Value)
}

func (e *CellError) Unwrap() error { return ErrNonNumericCriterion }

// CountMismatchError reports a weight list with the wrong number of entries.
type CountMismatchError struct {
	Got  int
	Want int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("topsis: number of weights (%d) must match number of criteria (%d)", e.Got, e.Want)
}

func (e *CountMismatchError) Unwrap() error { return ErrWeightCountMismatch }

// CriterionError attaches a criterion position to a degenerate data error.
type CriterionError struct {
	Err    error
	Index  int
	Column string
}

func (e *CriterionError) Error() string {
	return fmt.Sprintf("%s: criterion %d (%q)", e.Err, e.Index+1, e.Column)
}

func (e *CriterionError) Unwrap() error { return e.Err }

// RowError attaches an alternative position to a degenerate data error.
type RowError struct {
	Err error
	Row int
	ID  string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: row %d (%q)", e.Err, e.Row+1, e.ID)
}

func (e *RowError) Unwrap() error { return e.Err }

// IsInputError reports whether err stems from malformed input.
func IsInputError(err error) bool {
	for _, target := range []error{ErrShape, ErrNonNumericCriterion, ErrWeightFormat, ErrWeightCountMismatch, ErrImpactFormat} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsDegenerate reports whether err stems from well-formed data whose result is
// mathematically undefined.
func IsDegenerate(err error) bool {
	return errors.Is(err, ErrDegenerateWeights) ||
		errors.Is(err, ErrZeroNorm) ||
		errors.Is(err, ErrUndefinedScore)
}

// Kind returns a short machine-readable name for the error category, or
// "internal" when err is not one of the package errors.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrShape):
		return "shape"
	case errors.Is(err, ErrNonNumericCriterion):
		return "non_numeric_criterion"
	case errors.Is(err, ErrWeightFormat):
		return "weight_format"
	case errors.Is(err, ErrWeightCountMismatch):
		return "weight_count_mismatch"
	case errors.Is(err, ErrImpactFormat):
		return "impact_format"
	case errors.Is(err, ErrDegenerateWeights):
		return "degenerate_weights"
	case errors.Is(err, ErrZeroNorm):
		return "zero_norm"
	case errors.Is(err, ErrUndefinedScore):
		return "undefined_score"
	default:
		return "internal"
	}
}
