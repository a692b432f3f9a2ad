// Package topsis ranks alternatives scored on weighted, directional criteria
// using the Technique for Order Preference by Similarity to Ideal Solution.
//
// The package is pure: Validate turns a raw table and the weight and impact
// lists into a Problem, Rank computes scores and ranks, and Assemble appends
// them to the original table. Run chains the three.
package topsis

// Output column names appended by Assemble.
const (
	ScoreColumn = "Topsis Score"
	RankColumn  = "Rank"
)

// RawTable is a parsed but unvalidated table. Header holds the column names,
// Rows the data cells as read from the source.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Impact is the preferred direction of a criterion.
type Impact int

const (
	// Maximize marks a criterion where more is better ("+").
	Maximize Impact = iota
	// Minimize marks a criterion where less is better ("-").
	Minimize
)

func (i Impact) String() string {
	if i == Minimize {
		return "-"
	}
	return "+"
}

// Alternative is one validated table row.
type Alternative struct {
	ID     string
	Values []float64
	// Cells are the criterion cells exactly as they appeared in the input.
	Cells []string
}

// DecisionTable is a validated table. It is never mutated after Validate
// returns it; accessors hand out copies.
type DecisionTable struct {
	header []string
	rows   []Alternative
}

// NewDecisionTable builds a table from already-parsed alternatives. header
// must hold the identifier column name followed by one name per criterion.
func NewDecisionTable(header []string, rows []Alternative) DecisionTable {
	t := DecisionTable{header: append([]string(nil), header...)}
	t.rows = make([]Alternative, len(rows))
	for i, r := range rows {
		t.rows[i] = Alternative{
			ID:     r.ID,
			Values: append([]float64(nil), r.Values...),
			Cells:  append([]string(nil), r.Cells...),
		}
	}
	return t
}

// Header returns the column names, identifier first.
func (t DecisionTable) Header() []string {
	return append([]string(nil), t.header...)
}

// Criteria returns the criterion column names.
func (t DecisionTable) Criteria() []string {
	if len(t.header) == 0 {
		return nil
	}
	return append([]string(nil), t.header[1:]...)
}

// Len returns the number of alternatives.
func (t DecisionTable) Len() int { return len(t.rows) }

// NumCriteria returns the number of criterion columns.
func (t DecisionTable) NumCriteria() int {
	if len(t.header) == 0 {
		return 0
	}
	return len(t.header) - 1
}

// Row returns a copy of the i-th alternative.
func (t DecisionTable) Row(i int) Alternative {
	r := t.rows[i]
	return Alternative{
		ID:     r.ID,
		Values: append([]float64(nil), r.Values...),
		Cells:  append([]string(nil), r.Cells...),
	}
}

// Column returns a fresh copy of the values of criterion j.
func (t DecisionTable) Column(j int) []float64 {
	col := make([]float64, len(t.rows))
	for i, r := range t.rows {
		col[i] = r.Values[j]
	}
	return col
}

// Problem is a validated ranking problem. Weights are as given by the caller,
// not yet normalized.
type Problem struct {
	Table   DecisionTable
	Weights []float64
	Impacts []Impact
}
