package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sermonpipe/internal/pipeline"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var date string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "plan <audio|video> [config] [schema]",
		Short: "Show the steps a run would execute",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := pipeline.ParseKind(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			configPath, schemaPath := positionalPaths(args[1:])

			plan, err := newRunner(cfg, logger, nil).Prepare(cmd.Context(), pipeline.RunOptions{
				Kind:       kind,
				ConfigPath: configPath,
				SchemaPath: schemaPath,
				Date:       date,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, planView{
					Kind:     string(plan.Kind),
					StreamID: plan.StreamID,
					Date:     plan.Date,
					Output:   plan.Output,
					Steps:    plan.Labels(),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Kind:   %s\nStream: %s\nDate:   %s\nOutput: %s\n", plan.Kind, plan.StreamID, plan.Date, plan.Output)
			rows := make([][]string, 0, len(plan.Steps))
			for i, label := range plan.Labels() {
				rows = append(rows, []string{strconv.Itoa(i + 1), label})
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Step"}, rows, []columnAlignment{alignRight, alignLeft}))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Override the sermon date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

type planView struct {
	Kind     string   `json:"kind"`
	StreamID string   `json:"stream_id"`
	Date     string   `json:"date"`
	Output   string   `json:"output"`
	Steps    []string `json:"steps"`
}
