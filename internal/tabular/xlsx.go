package tabular

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/topsis-cli/internal/topsis"
)

// XLSXOptions configures the XLSX parser.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX reads a worksheet and returns the first row as the header and the
// remaining non-blank rows as data. Rows shorter than the header are padded
// with empty cells, which the validator then reports as non-numeric.
func ReadXLSX(path string, opts XLSXOptions) (topsis.RawTable, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return topsis.RawTable{}, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return topsis.RawTable{}, err
	}

	var rows [][]string
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}
		cells := rowToStrings(row)
		if blank(cells) {
			continue
		}
		rows = append(rows, cells)
	}

	table := splitHeader(rows)
	for i, row := range table.Rows {
		for len(row) < len(table.Header) {
			row = append(row, "")
		}
		table.Rows[i] = row
	}
	return table, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex < 0 || opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

// rowToStrings renders a row. Numeric cells use the stored value so number
// formats such as thousands separators never reach the validator.
func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		if cell == nil {
			continue
		}
		if cell.Type() == xlsx.CellTypeNumeric {
			cells[j] = cell.Value
			continue
		}
		cells[j] = cell.String()
	}
	return cells
}

func blank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

// WriteXLSX writes res as a single-sheet workbook. Criteria are written as
// numbers, the score with a four-decimal number format.
func WriteXLSX(w io.Writer, res *topsis.ResultTable, sheetName string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	header := sheet.AddRow()
	for _, name := range res.Header {
		header.AddCell().SetString(name)
	}

	scoreFormat := "0." + strings.Repeat("0", topsis.ScorePrecision)
	for _, r := range res.Rows {
		row := sheet.AddRow()
		row.AddCell().SetString(r.ID)
		for _, v := range r.Values {
			row.AddCell().SetFloat(v)
		}
		row.AddCell().SetFloatWithFormat(r.Score, scoreFormat)
		row.AddCell().SetInt(r.Rank)
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "xlsx: write workbook")
	}
	return nil
}
