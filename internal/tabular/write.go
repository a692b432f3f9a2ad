package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/rotisserie/eris"

	"github.com/sells-group/topsis-cli/internal/topsis"
)

// WriteCSV writes res as delimited text: the original columns verbatim, the
// score with exactly four decimals and the rank as an integer.
func WriteCSV(w io.Writer, res *topsis.ResultTable, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}
	if err := cw.WriteAll(res.Records()); err != nil {
		return eris.Wrap(err, "csv: write result")
	}
	return nil
}

// FormatTable prints up to limit rows of res in rank order as an aligned
// text table. limit <= 0 prints every row.
func FormatTable(w io.Writer, res *topsis.ResultTable, limit int) error {
	rows := slices.Clone(res.Rows)
	slices.SortStableFunc(rows, func(a, b topsis.ResultRow) int { return a.Rank - b.Rank })
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	cols := []string{topsis.RankColumn, res.Header[0], topsis.ScoreColumn}
	lines := [][]string{cols}
	for _, r := range rows {
		lines = append(lines, []string{strconv.Itoa(r.Rank), r.ID, topsis.FormatScore(r.Score)})
	}

	widths := make([]int, len(cols))
	for _, line := range lines {
		for j, cell := range line {
			widths[j] = max(widths[j], runewidth.StringWidth(cell))
		}
	}

	for _, line := range lines {
		for j, cell := range line {
			text, sep := runewidth.FillRight(cell, widths[j]), "  "
			if j == len(line)-1 {
				text, sep = cell, "\n"
			}
			if _, err := fmt.Fprint(w, text, sep); err != nil {
				return eris.Wrap(err, "preview: write")
			}
		}
	}
	return nil
}
