package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lyricdeck/internal/lyriccache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Lyric cache maintenance",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show lyric cache contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.LyricCache.Enabled {
				fmt.Fprintln(out, "Lyric cache is disabled (set lyric_cache.enabled = true)")
				return nil
			}

			store, err := lyriccache.Open(cfg.LyricCache.Path, cfg.GetCleaner().Model)
			if err != nil {
				return fmt.Errorf("open lyric cache: %w", err)
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Path: %s\n", stats.Path)
			fmt.Fprintf(out, "Entries: %d (%s on disk)\n", stats.Entries, humanBytes(stats.SizeBytes))
			if len(stats.Models) > 0 {
				rows := make([][]string, 0, len(stats.Models))
				for _, mc := range stats.Models {
					rows = append(rows, []string{mc.Model, strconv.FormatInt(mc.Entries, 10)})
				}
				fmt.Fprintln(out, renderTable([]string{"Model", "Entries"}, rows, 1))
			}
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached cleaning",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.LyricCache.Enabled {
				fmt.Fprintln(out, "Lyric cache is disabled; nothing to clear")
				return nil
			}

			store, err := lyriccache.Open(cfg.LyricCache.Path, cfg.GetCleaner().Model)
			if err != nil {
				return fmt.Errorf("open lyric cache: %w", err)
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed %d cached cleanings\n", removed)
			return nil
		},
	}
}
