package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sermonpipe/internal/fetch"
)

var cacheCategories = []string{"audio", "video", "s3"}

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the download cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list [category]",
		Short: "List cached files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			category, err := cacheCategory(args)
			if err != nil {
				return err
			}

			entries, err := fetch.List(cfg.Paths.CacheDir, category)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Cache is empty")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			var total uint64
			for _, entry := range entries {
				rel, relErr := filepath.Rel(cfg.Paths.CacheDir, entry.Path)
				if relErr != nil {
					rel = entry.Path
				}
				rows = append(rows, []string{
					entry.Category,
					rel,
					humanize.IBytes(uint64(entry.Size)),
					humanize.Time(entry.ModTime),
				})
				total += uint64(entry.Size)
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Category", "File", "Size", "Modified"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d files, %s\n", len(entries), humanize.IBytes(total))
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [category]",
		Short: "Delete cached files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			category, err := cacheCategory(args)
			if err != nil {
				return err
			}
			if err := fetch.Clear(cfg.Paths.CacheDir, category); err != nil {
				return err
			}
			label := category
			if label == "" {
				label = "all categories"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared cache (%s)\n", label)
			return nil
		},
	}
}

func cacheCategory(args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	category := strings.ToLower(strings.TrimSpace(args[0]))
	for _, known := range cacheCategories {
		if category == known {
			return category, nil
		}
	}
	return "", fmt.Errorf("unknown cache category %q (want one of %s)", args[0], strings.Join(cacheCategories, ", "))
}
