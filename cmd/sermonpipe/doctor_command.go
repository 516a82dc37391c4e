package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sermonpipe/internal/deps"
	"sermonpipe/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and working directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := deps.CheckBinaries(cmd.Context(), deps.Requirements(cfg))

			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				state := "ok"
				detail := s.Version
				if !s.Available {
					state = "missing"
					detail = s.Detail
				}
				rows = append(rows, []string{s.Name, state, s.Command, detail})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Tool", "Status", "Command", "Detail"}, rows, nil))

			checks := preflight.RunAll(cfg)
			checkRows := make([][]string, 0, len(checks))
			for _, c := range checks {
				checkRows = append(checkRows, []string{c.Name, passLabel(c.Passed), c.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, checkRows, nil))

			var problems []string
			if missing := deps.Missing(statuses); len(missing) > 0 {
				problems = append(problems, "missing required tools: "+strings.Join(missing, ", "))
			}
			if failed := preflight.Failed(checks); len(failed) > 0 {
				problems = append(problems, "failed checks: "+strings.Join(failed, ", "))
			}
			if len(problems) > 0 {
				return fmt.Errorf("%s", strings.Join(problems, "; "))
			}
			return nil
		},
	}
}

func passLabel(passed bool) string {
	if passed {
		return "ok"
	}
	return "failed"
}
