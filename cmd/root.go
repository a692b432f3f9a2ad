package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/topsis-cli/internal/config"
	"github.com/sells-group/topsis-cli/internal/tabular"
	"github.com/sells-group/topsis-cli/internal/topsis"
)

// Exit statuses.
const (
	exitOK         = 0
	exitFailure    = 1
	exitUsage      = 2
	exitBadInput   = 3
	exitDegenerate = 4
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "topsis <InputDataFile> <Weights> <Impacts> <OutputResultFileName>",
	Short: "Rank alternatives with TOPSIS",
	Long: `Ranks the alternatives (rows) of a CSV or XLSX table on weighted criteria
using TOPSIS. The first column identifies each alternative; every other column
is a numeric criterion. Weights are comma-separated non-negative numbers, impacts
are comma-separated "+" (more is better) or "-" (less is better) symbols, one per
criterion. The output is the input table with "Topsis Score" and "Rank" columns
appended.

Examples:
  topsis data.csv "1,1,1,2" "+,+,-,+" result.csv
  topsis data.xlsx "0.25,0.25,0.5" "-,+,+" result.xlsx --sheet Scores
  topsis data.csv "1,1" "+,-" result.csv --preview`,
	Args:          exactPositional(4),
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Arguments are valid by now; later failures are not usage mistakes.
		cmd.SilenceUsage = true

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: runRank,
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stderr))
}

// execute runs the command tree and maps the outcome to an exit status.
func execute(args []string, stderr io.Writer) int {
	rootCmd.SetArgs(escapeArgs(args))
	err := rootCmd.Execute()
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitCode(err)
}

// usageError marks invocation mistakes: wrong argument count or bad flags.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func exactPositional(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &usageError{msg: fmt.Sprintf("expected %d arguments: <InputDataFile> <Weights> <Impacts> <OutputResultFileName>, got %d", n, len(args))}
		}
		return nil
	}
}

// validateConfig checks cfg for mode. Bad settings come from flags or the
// config file, so they are reported as usage errors.
func validateConfig(mode string) error {
	if err := cfg.Validate(mode); err != nil {
		return &usageError{msg: err.Error()}
	}
	return nil
}

func exitCode(err error) int {
	var ue *usageError
	switch {
	case errors.As(err, &ue),
		errors.Is(err, tabular.ErrInputNotFound),
		errors.Is(err, tabular.ErrUnsupportedFormat):
		return exitUsage
	case topsis.IsInputError(err):
		return exitBadInput
	case topsis.IsDegenerate(err):
		return exitDegenerate
	default:
		return exitFailure
	}
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})
}
