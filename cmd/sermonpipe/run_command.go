package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sermonpipe/internal/config"
	"sermonpipe/internal/history"
	"sermonpipe/internal/logging"
	"sermonpipe/internal/pipeline"
	"sermonpipe/internal/services"
)

func newRunCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newKindRunCommand(ctx, pipeline.KindAudio, "Process the sermon audio"),
		newKindRunCommand(ctx, pipeline.KindVideo, "Process the sermon video"),
		newAllRunCommand(ctx),
	}
}

// runFlags are the flags shared by the run commands.
type runFlags struct {
	date   string
	retrim bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Override the sermon date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.retrim, "retrim", false, "Re-cut trimmed files left by an earlier run")
}

func newKindRunCommand(ctx *commandContext, kind pipeline.Kind, short string) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   string(kind) + " [config] [schema]",
		Short: short,
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKinds(cmd, ctx, []pipeline.Kind{kind}, args, flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func newAllRunCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "all [config] [schema]",
		Short: "Process audio, then video",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKinds(cmd, ctx, pipeline.Kinds, args, flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func runKinds(cmd *cobra.Command, ctx *commandContext, kinds []pipeline.Kind, args []string, flags runFlags) error {
	if flags.date != "" {
		if _, err := time.Parse(time.DateOnly, flags.date); err != nil {
			return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", flags.date)
		}
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	configPath, schemaPath := positionalPaths(args)

	for _, kind := range kinds {
		opts := pipeline.RunOptions{
			Kind:       kind,
			ConfigPath: configPath,
			SchemaPath: schemaPath,
			Date:       flags.date,
			Retrim:     flags.retrim,
		}
		if err := runOne(cmd.Context(), cmd.OutOrStdout(), cfg, logger, opts); err != nil {
			return err
		}
	}
	return nil
}

func runOne(ctx context.Context, out io.Writer, cfg *config.Config, logger *slog.Logger, opts pipeline.RunOptions) error {
	ctx, runID := runContext(ctx)
	timings := &pipeline.Timings{}
	runner := newRunner(cfg, logger, timings)

	started := time.Now()
	plan, rec, err := runner.Run(ctx, opts)
	elapsed := time.Since(started)

	recordHistory(ctx, cfg, logger, runID, opts.Kind, plan, rec, started, elapsed, err)
	if len(timings.Steps) > 0 {
		fmt.Fprintf(out, "%s pipeline (%s)\n", opts.Kind, plan.StreamID)
		fmt.Fprintln(out, renderTimings(timings))
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Output: %s\n", rec.FinalOutput)
	return nil
}

func renderTimings(timings *pipeline.Timings) string {
	rows := make([][]string, 0, len(timings.Steps)+1)
	for _, step := range timings.Steps {
		status := "ok"
		if step.Err != nil {
			status = "failed: " + services.Kind(step.Err)
		}
		rows = append(rows, []string{step.Label, formatElapsed(step.Elapsed), status})
	}
	rows = append(rows, []string{"Total", formatElapsed(timings.Total()), ""})
	return renderTable([]string{"Step", "Elapsed", "Status"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft})
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

func recordHistory(ctx context.Context, cfg *config.Config, logger *slog.Logger, runID string, kind pipeline.Kind, plan pipeline.Plan, rec *pipeline.Record, started time.Time, elapsed time.Duration, runErr error) {
	if !cfg.History.Enabled {
		return
	}
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "history"))

	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		logging.WarnWithContext(logger, "history unavailable", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run not recorded"),
		)
		return
	}
	defer store.Close()

	run := history.Run{
		Kind:      string(kind),
		StreamID:  plan.StreamID,
		Date:      plan.Date,
		Status:    history.StatusSucceeded,
		StartedAt: started,
		Duration:  elapsed,
	}
	if id, err := uuid.Parse(runID); err == nil {
		run.ID = id
	}
	if rec != nil {
		run.Output = rec.FinalOutput
	}
	if runErr != nil {
		run.Status = history.StatusFailed
		run.ErrorKind = services.Kind(runErr)
		run.ErrorMessage = runErr.Error()
	}
	if _, err := store.Record(ctx, run); err != nil {
		logging.WarnWithContext(logger, "history write failed", "history_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run not recorded"),
		)
	}
}
