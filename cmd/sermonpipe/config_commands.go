package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sermonpipe/internal/config"
	"sermonpipe/internal/pipeline"
	"sermonpipe/internal/pipelineconfig"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		targetPath string
		overwrite  bool
	)

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample settings file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				switch _, err := os.Stat(target); {
				case err == nil:
					return fmt.Errorf("%s already exists; pass --overwrite to replace it", target)
				case !errors.Is(err, fs.ErrNotExist):
					return fmt.Errorf("inspect %s: %w", target, err)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample settings to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the settings file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing settings file")
	return cmd
}

// initTarget resolves --path, defaulting to the per-user settings location.
func initTarget(flagValue string) (string, error) {
	if flagValue = strings.TrimSpace(flagValue); flagValue == "" {
		return config.DefaultConfigPath()
	}
	return config.ExpandPath(flagValue)
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate [config] [schema]",
		Short:       "Validate the settings file and a pipeline configuration",
		Args:        cobra.MaximumNArgs(2),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, path, exists, err := config.Load(ctx.settingsPath())
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			fmt.Fprintf(out, "Settings path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Settings file did not exist; defaults were used")
			}

			configPath, schemaPath := positionalPaths(args)
			pipelineCfg, err := pipelineconfig.Load(configPath, schemaPath)
			if err != nil {
				return err
			}
			for _, kind := range pipeline.Kinds {
				if err := pipelineCfg.ValidateFor(string(kind)); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "Pipeline config: %s\n", configPath)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
