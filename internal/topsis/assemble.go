package topsis

import (
	"math"
	"strconv"

	"github.com/rotisserie/eris"
)

// ScorePrecision is the number of decimal places kept in output scores.
const ScorePrecision = 4

// ResultRow is one alternative with its score and rank appended.
type ResultRow struct {
	ID     string
	Cells  []string
	Values []float64
	// Score is rounded to ScorePrecision places.
	Score float64
	Rank  int
}

// ResultTable is the input table plus the score and rank columns, in the
// original row order.
type ResultTable struct {
	Header  []string
	Rows    []ResultRow
	Outcome *Outcome
}

// Assemble appends the scores and ranks of o to t. It performs no
// computation beyond rounding the scores for output.
func Assemble(t DecisionTable, o *Outcome) (*ResultTable, error) {
	if o == nil || len(o.Scores) != t.Len() || len(o.Ranks) != t.Len() {
		return nil, eris.Wrapf(ErrLengthMismatch, "%d rows", t.Len())
	}

	header := append(t.Header(), ScoreColumn, RankColumn)
	rows := make([]ResultRow, t.Len())
	for i := range rows {
		alt := t.Row(i)
		rows[i] = ResultRow{
			ID:     alt.ID,
			Cells:  alt.Cells,
			Values: alt.Values,
			Score:  RoundScore(o.Scores[i]),
			Rank:   o.Ranks[i],
		}
	}
	return &ResultTable{Header: header, Rows: rows, Outcome: o}, nil
}

// RoundScore rounds s half away from zero to ScorePrecision places.
func RoundScore(s float64) float64 {
	p := math.Pow10(ScorePrecision)
	return math.Round(s*p) / p
}

// FormatScore renders a score with exactly ScorePrecision decimals.
func FormatScore(s float64) string {
	return strconv.FormatFloat(RoundScore(s), 'f', ScorePrecision, 64)
}

// Records returns the table as string records, header first, suitable for a
// delimited-text writer.
func (r *ResultTable) Records() [][]string {
	out := make([][]string, 0, len(r.Rows)+1)
	out = append(out, append([]string(nil), r.Header...))
	for _, row := range r.Rows {
		rec := make([]string, 0, len(row.Cells)+3)
		rec = append(rec, row.ID)
		rec = append(rec, row.Cells...)
		rec = append(rec, FormatScore(row.Score), strconv.Itoa(row.Rank))
		out = append(out, rec)
	}
	return out
}

// Best returns the rank 1 row, or false for an empty table.
func (r *ResultTable) Best() (ResultRow, bool) {
	for _, row := range r.Rows {
		if row.Rank == 1 {
			return row, true
		}
	}
	return ResultRow{}, false
}

// Run validates raw and the weight and impact lists, ranks the alternatives
// and assembles the result table. It is safe for concurrent use on
// independent inputs.
func Run(raw RawTable, weights, impacts string) (*ResultTable, error) {
	p, err := Validate(raw, weights, impacts)
	if err != nil {
		return nil, err
	}
	o, err := Rank(p)
	if err != nil {
		return nil, err
	}
	return Assemble(p.Table, o)
}
