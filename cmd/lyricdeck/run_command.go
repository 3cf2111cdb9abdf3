package main

import (
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lyricdeck/internal/batch"
	"lyricdeck/internal/config"
	"lyricdeck/internal/logging"
	"lyricdeck/internal/notify"
	"lyricdeck/internal/services"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var musicDir string
	var outputDir string
	var workers int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Convert the music library into lyric decks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if dir := strings.TrimSpace(musicDir); dir != "" {
				expanded, err := config.ExpandPath(dir)
				if err != nil {
					return fmt.Errorf("resolve music directory: %w", err)
				}
				cfg.Paths.MusicDir = expanded
			}
			if dir := strings.TrimSpace(outputDir); dir != "" {
				expanded, err := config.ExpandPath(dir)
				if err != nil {
					return fmt.Errorf("resolve output directory: %w", err)
				}
				cfg.Paths.OutputDir = expanded
			}
			if workers > 0 {
				cfg.Batch.Workers = workers
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			normalizer, closeCache, err := buildNormalizer(cfg, logger)
			if err != nil {
				return err
			}
			defer closeCache()

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			orchestrator := batch.New(cfg, logger, normalizer, notify.NewService(cfg))
			summary, err := orchestrator.Run(signalCtx)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), summary)
			if summary.Failures > 0 {
				return fmt.Errorf("%d of %d tracks failed", summary.Failures, summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&musicDir, "music", "m", "", "Music directory override")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory override")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent worker override")
	return cmd
}

func printSummary(out io.Writer, summary *batch.Summary) {
	rows := make([][]string, 0, len(summary.Results))
	for _, result := range summary.Results {
		rows = append(rows, []string{
			truncate(result.Title, 40),
			resultKind(result),
			result.Elapsed.Round(10 * time.Millisecond).String(),
			resultDetail(result),
		})
	}

	colorize := shouldColorize(out)

	fmt.Fprintln(out, renderTable([]string{"Track", "Kind", "Time", "Result"}, rows, 2))
	generated := fmt.Sprintf("%d of %d decks generated in %s",
		summary.Successes, summary.Total, summary.WallClock.Round(time.Millisecond))
	if colorize && summary.Failures == 0 && summary.Total > 0 {
		generated = ansiGreen + generated + ansiReset
	}
	fmt.Fprintf(out, "\n%s\n", generated)
	if summary.LyricCount > 0 {
		fmt.Fprintf(out, "Lyric decks: %d (avg %s)\n",
			summary.LyricCount, summary.AverageLyric().Round(time.Millisecond))
	}
	if summary.PureCount > 0 {
		fmt.Fprintf(out, "Pure music decks: %d (avg %s)\n",
			summary.PureCount, summary.AveragePure().Round(time.Millisecond))
	}
	if summary.Failures > 0 {
		failed := fmt.Sprintf("Failed: %d", summary.Failures)
		if colorize {
			failed = ansiRed + failed + ansiReset
		}
		fmt.Fprintln(out, failed)
	}
}

func resultKind(result batch.Result) string {
	switch {
	case result.Err != nil:
		return "failed"
	case result.Skipped:
		return "bare"
	case result.Pure:
		return "pure"
	default:
		return "lyrics"
	}
}

func resultDetail(result batch.Result) string {
	if result.Err != nil {
		return truncate(fmt.Sprintf("%s: %v", services.FailureKind(result.Err), result.Err), 60)
	}
	return filepath.Base(result.Output)
}
