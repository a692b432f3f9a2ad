package tabular

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/topsis-cli/internal/topsis"
)

// ErrUnsupportedFormat is returned for input files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = eris.New("input file must be .csv or .xlsx")

// ErrInputNotFound is returned when the input path does not exist.
var ErrInputNotFound = eris.New("input file not found")

// Options configures reading and writing tables.
type Options struct {
	CSV  CSVOptions
	XLSX XLSXOptions
	// OutputDelimiter separates fields in delimited-text output (default ',').
	OutputDelimiter rune
}

// ReadFile reads the decision table at path, choosing the parser from the
// file extension.
func ReadFile(ctx context.Context, path string, opts Options) (topsis.RawTable, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return topsis.RawTable{}, eris.Wrapf(ErrInputNotFound, "read %s", path)
		}
		return topsis.RawTable{}, eris.Wrapf(err, "read %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return topsis.RawTable{}, eris.Wrapf(err, "open %s", path)
		}
		defer f.Close() //nolint:errcheck
		return ReadCSV(ctx, f, opts.CSV)
	case ".xlsx":
		return ReadXLSX(path, opts.XLSX)
	default:
		return topsis.RawTable{}, eris.Wrapf(ErrUnsupportedFormat, "read %s", path)
	}
}

// WriteFile writes res to path: a workbook for ".xlsx", delimited text
// otherwise. The output is written to a temporary file in the same directory
// and renamed into place, so a failed write never leaves a partial file.
func WriteFile(path string, res *topsis.ResultTable, opts Options) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return eris.Wrapf(err, "create temp file in %s", dir)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return eris.Wrapf(err, "chmod %s", tmpPath)
	}
	if err := encode(tmp, path, res, opts); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrapf(err, "close %s", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return eris.Wrapf(err, "rename to %s", path)
	}
	return nil
}

func encode(w io.Writer, path string, res *topsis.ResultTable, opts Options) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return WriteXLSX(w, res, "Result")
	}
	return WriteCSV(w, res, opts.OutputDelimiter)
}
