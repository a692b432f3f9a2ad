package topsis

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// minColumns is one identifier column plus at least two criteria.
const minColumns = 3

// decimalLiteral matches signed integers and decimals with an optional
// exponent. Hex floats, underscores, NaN and Inf are rejected.
var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Validate checks raw against the table, weight and impact rules and returns
// the validated Problem. Checks run in a fixed order and the first failure is
// returned: shape, criterion cells, weights, impacts. raw is not modified.
func Validate(raw RawTable, weights, impacts string) (*Problem, error) {
	if err := validateShape(raw); err != nil {
		return nil, err
	}

	table, err := parseTable(raw)
	if err != nil {
		return nil, err
	}

	w, err := ParseWeights(weights, table.NumCriteria())
	if err != nil {
		return nil, err
	}

	imp, err := ParseImpacts(impacts, table.NumCriteria())
	if err != nil {
		return nil, err
	}

	return &Problem{Table: table, Weights: w, Impacts: imp}, nil
}

func validateShape(raw RawTable) error {
	if len(raw.Header) < minColumns {
		return eris.Wrapf(ErrShape, "input must contain at least %d columns (got %d)", minColumns, len(raw.Header))
	}
	if len(raw.Rows) == 0 {
		return eris.Wrap(ErrShape, "input has no data rows")
	}
	for i, row := range raw.Rows {
		if len(row) != len(raw.Header) {
			return eris.Wrapf(ErrShape, "row %d has %d columns, header has %d", i+1, len(row), len(raw.Header))
		}
	}
	return nil
}

func parseTable(raw RawTable) (DecisionTable, error) {
	rows := make([]Alternative, len(raw.Rows))
	for i, cells := range raw.Rows {
		values := make([]float64, len(cells)-1)
		for j, cell := range cells[1:] {
			v, ok := parseNumber(cell)
			if !ok {
				return DecisionTable{}, &CellError{
					Row:    i + 1,
					Col:    j + 2,
					Column: raw.Header[j+1],
					Value:  cell,
				}
			}
			values[j] = v
		}
		rows[i] = Alternative{ID: cells[0], Values: values, Cells: cells[1:]}
	}
	return NewDecisionTable(raw.Header, rows), nil
}

// parseNumber parses a decimal literal, tolerating surrounding whitespace.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimalLiteral.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ParseWeights parses a comma-separated weight list. Every token must be a
// finite, non-negative number and the token count must equal criteria.
// Token format is checked before the count.
func ParseWeights(list string, criteria int) ([]float64, error) {
	tokens := strings.Split(list, ",")
	weights := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, ok := parseNumber(tok)
		if !ok {
			return nil, eris.Wrapf(ErrWeightFormat, "weight %d is %q", i+1, strings.TrimSpace(tok))
		}
		if v < 0 {
			return nil, eris.Wrapf(ErrWeightFormat, "weight %d is negative (%s)", i+1, strings.TrimSpace(tok))
		}
		weights[i] = v
	}
	if len(weights) != criteria {
		return nil, &CountMismatchError{Got: len(weights), Want: criteria}
	}
	return weights, nil
}

// ParseImpacts parses a comma-separated impact list of "+" and "-" symbols.
// Tokens are trimmed and case-folded; the count must equal criteria.
func ParseImpacts(list string, criteria int) ([]Impact, error) {
	tokens := strings.Split(list, ",")
	if len(tokens) != criteria {
		return nil, eris.Wrapf(ErrImpactFormat, "got %d impacts for %d criteria", len(tokens), criteria)
	}
	impacts := make([]Impact, len(tokens))
	for i, tok := range tokens {
		switch strings.ToUpper(strings.TrimSpace(tok)) {
		case "+":
			impacts[i] = Maximize
		case "-":
			impacts[i] = Minimize
		default:
			return nil, eris.Wrapf(ErrImpactFormat, "impact %d is %q", i+1, strings.TrimSpace(tok))
		}
	}
	return impacts, nil
}
