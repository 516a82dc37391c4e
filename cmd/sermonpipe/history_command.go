package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sermonpipe/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent pipeline runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				views := make([]runView, 0, len(runs))
				for _, run := range runs {
					views = append(views, newRunView(run))
				}
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				result := string(run.Status)
				if run.ErrorKind != "" {
					result += " (" + run.ErrorKind + ")"
				}
				rows = append(rows, []string{
					humanize.Time(run.StartedAt),
					run.Kind,
					run.StreamID,
					run.Date,
					result,
					formatElapsed(run.Duration),
					run.Output,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Started", "Kind", "Stream", "Date", "Result", "Elapsed", "Output"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

type runView struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	StreamID   string  `json:"stream_id"`
	Date       string  `json:"date"`
	Output     string  `json:"output,omitempty"`
	Status     string  `json:"status"`
	ErrorKind  string  `json:"error_kind,omitempty"`
	Error      string  `json:"error,omitempty"`
	StartedAt  string  `json:"started_at"`
	DurationMS float64 `json:"duration_ms"`
}

func newRunView(run history.Run) runView {
	return runView{
		ID:         run.ID.String(),
		Kind:       run.Kind,
		StreamID:   run.StreamID,
		Date:       run.Date,
		Output:     run.Output,
		Status:     string(run.Status),
		ErrorKind:  run.ErrorKind,
		Error:      run.ErrorMessage,
		StartedAt:  run.StartedAt.Format(time.RFC3339),
		DurationMS: float64(run.Duration.Milliseconds()),
	}
}
