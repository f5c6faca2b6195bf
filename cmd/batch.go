package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/almanac/internal/batch"
	"github.com/papapumpkin/almanac/internal/telemetry"
	"github.com/papapumpkin/almanac/internal/ui"
)

var batchCmd = &cobra.Command{
	Use:   "batch MANIFEST",
	Short: "Evaluate every birth record in a TOML manifest",
	Long: `Reads a TOML manifest of [[birth]] records with optional [defaults],
validates all of them, then computes each chart concurrently. Results are
printed in manifest order; a failing record does not stop the others.

With --watch the manifest is evaluated again whenever it changes.`,
	Example: `  almanac batch births.toml
  almanac batch births.toml --watch --workers 8 --telemetry events.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Bool("watch", false, "re-run when the manifest changes")
	batchCmd.Flags().Int("workers", batch.DefaultWorkers, "records evaluated concurrently")
	batchCmd.Flags().String("telemetry", "", "append JSONL run events to this file")
	_ = viper.BindPFlag("batch.workers", batchCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("batch.telemetry", batchCmd.Flags().Lookup("telemetry"))
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	printer := ui.New()

	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	var emitter *telemetry.Emitter
	if s.cfg.Batch.Telemetry != "" {
		if emitter, err = telemetry.NewEmitter(s.cfg.Batch.Telemetry); err != nil {
			return err
		}
		defer func() { log.ErrIfFail(emitter.Close) }()
	}
	runner := batch.NewRunner(s.engine,
		batch.WithWorkers(s.cfg.Batch.Workers),
		batch.WithEmitter(emitter),
	)

	ctx, cancel := setupSignalContext(cmd.Context(), printer)
	defer cancel()

	report := func(rep *batch.Report, err error) {
		if err != nil {
			if errors.Is(err, batch.ErrInvalidManifest) {
				printer.ValidationErrors(path, err)
			} else {
				printer.Error(err.Error())
			}
			return
		}
		if err := writeReport(cmd.OutOrStdout(), s.cfg.Format, rep); err != nil {
			printer.Error(err.Error())
		}
		printer.BatchSummary(rep)
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		printer.WatchStarted(path)
		return runner.Watch(ctx, path, batch.DefaultDebounce, report)
	}

	rep, err := runner.RunFile(ctx, path)
	if err != nil {
		if errors.Is(err, batch.ErrInvalidManifest) {
			printer.ValidationErrors(path, err)
			return fmt.Errorf("batch: %s is invalid", path)
		}
		return err
	}
	if err := writeReport(cmd.OutOrStdout(), s.cfg.Format, rep); err != nil {
		return err
	}
	printer.BatchSummary(rep)
	if rep.Failed > 0 {
		return fmt.Errorf("batch: %d of %d records failed", rep.Failed, len(rep.Outcomes))
	}
	return nil
}

// writeReport prints every successful chart, or the whole report for the
// structured formats.
func writeReport(w io.Writer, format string, rep *batch.Report) error {
	return ui.Write(w, format, rep, func() string {
		var out string
		for _, o := range rep.Outcomes {
			if o.Result == nil {
				continue
			}
			out += fmt.Sprintf("── %s ──\n", o.ID) + ui.Chart(*o.Result) + "\n"
		}
		return out
	})
}
