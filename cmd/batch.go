package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/topsis-cli/internal/job"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Rank every table listed in a YAML manifest",
	Long: `Runs one TOPSIS ranking per manifest entry, several at a time. A failing
entry is reported and never stops the others; the command fails if any entry
failed.

Manifest example:
  defaults:
    weights: "1,1,1"
    impacts: "+,-,+"
  jobs:
    - input: q1.csv
    - input: q2.xlsx
      output: q2-ranked.xlsx
      weights: "2,1,1"`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("manifest", "", "path to the YAML job manifest (required)")
	f.Int("concurrency", 0, "max jobs in flight (0 = use config default)")
	f.String("sheet", "", "XLSX sheet name for every input (overrides config)")
	f.Int("sheet-index", -1, "XLSX sheet index for every input (overrides config)")
	f.String("delimiter", "", "input field delimiter (overrides config)")
	f.String("encoding", "", "input character encoding (overrides config)")
	f.String("output-delimiter", "", "output field delimiter (overrides config)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path, _ := cmd.Flags().GetString("manifest")
	if path == "" {
		return &usageError{msg: `required flag "manifest" not set`}
	}

	applyTableOverrides(cmd, cfg)
	if v, _ := cmd.Flags().GetInt("concurrency"); v > 0 {
		cfg.Batch.MaxConcurrent = v
	}
	if err := validateConfig("batch"); err != nil {
		return err
	}

	opts, err := tableOptions(cfg)
	if err != nil {
		return err
	}

	manifest, err := job.LoadManifest(path)
	if err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "batch"))
	log.Info("batch: starting", zap.Int("jobs", len(manifest.Jobs)), zap.Int("concurrency", cfg.Batch.MaxConcurrent))

	results := job.NewRunner(opts, log).RunAll(ctx, manifest.Jobs, cfg.Batch.MaxConcurrent)

	out := cmd.OutOrStdout()
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "FAIL  %s: %v\n", r.Job.Name, r.Err) //nolint:errcheck
			continue
		}
		fmt.Fprintf(out, "OK    %s: %s (best: %s)\n", r.Job.Name, r.Report.Output, r.Report.Best) //nolint:errcheck
	}

	log.Info("batch: complete",
		zap.Int("total", len(results)),
		zap.Int("succeeded", len(results)-failed),
		zap.Int("failed", failed),
	)

	if failed > 0 {
		return eris.Errorf("batch: %d of %d jobs failed", failed, len(results))
	}
	return nil
}
