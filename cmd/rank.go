package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/topsis-cli/internal/config"
	"github.com/sells-group/topsis-cli/internal/job"
	"github.com/sells-group/topsis-cli/internal/tabular"
)

func init() {
	f := rootCmd.Flags()
	f.String("sheet", "", "XLSX sheet name (overrides config; default: first sheet)")
	f.Int("sheet-index", -1, "XLSX sheet index (overrides config)")
	f.String("delimiter", "", `input field delimiter, e.g. ";" or "\t" (overrides config)`)
	f.String("encoding", "", "input character encoding, e.g. windows-1252 (overrides config)")
	f.String("output-delimiter", "", "output field delimiter (overrides config)")
	f.Bool("preview", false, "print the top-ranked alternatives after writing the output")
	f.Int("preview-rows", 0, "rows to preview (0 = use config default)")
}

func runRank(cmd *cobra.Command, args []string) error {
	applyTableOverrides(cmd, cfg)
	if err := validateConfig("rank"); err != nil {
		return err
	}

	opts, err := tableOptions(cfg)
	if err != nil {
		return err
	}

	runner := job.NewRunner(opts, zap.L())
	rep, err := runner.Run(cmd.Context(), job.Job{
		Input:   args[0],
		Weights: args[1],
		Impacts: args[2],
		Output:  args[3],
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if preview, _ := cmd.Flags().GetBool("preview"); preview {
		rows := cfg.Output.PreviewRows
		if v, _ := cmd.Flags().GetInt("preview-rows"); v > 0 {
			rows = v
		}
		if err := tabular.FormatTable(out, rep.Result, rows); err != nil {
			return eris.Wrap(err, "rank: preview")
		}
	}

	fmt.Fprintf(out, "Output saved to: %s\n", rep.Output) //nolint:errcheck
	return nil
}

// applyTableOverrides copies table-format flags that were set on cmd into c.
func applyTableOverrides(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()
	if f.Changed("sheet") {
		c.Input.SheetName, _ = f.GetString("sheet")
	}
	if f.Changed("sheet-index") {
		c.Input.SheetIndex, _ = f.GetInt("sheet-index")
	}
	if f.Changed("delimiter") {
		c.Input.Delimiter, _ = f.GetString("delimiter")
	}
	if f.Changed("encoding") {
		c.Input.Encoding, _ = f.GetString("encoding")
	}
	if f.Changed("output-delimiter") {
		c.Output.Delimiter, _ = f.GetString("output-delimiter")
	}
}

// tableOptions converts validated config into reader and writer options.
func tableOptions(c *config.Config) (tabular.Options, error) {
	in, err := config.Delimiter(c.Input.Delimiter)
	if err != nil {
		return tabular.Options{}, eris.Wrap(err, "input delimiter")
	}
	out, err := config.Delimiter(c.Output.Delimiter)
	if err != nil {
		return tabular.Options{}, eris.Wrap(err, "output delimiter")
	}
	return tabular.Options{
		CSV: tabular.CSVOptions{
			Delimiter: in,
			Encoding:  c.Input.Encoding,
		},
		XLSX: tabular.XLSXOptions{
			SheetName:  c.Input.SheetName,
			SheetIndex: c.Input.SheetIndex,
		},
		OutputDelimiter: out,
	}, nil
}
