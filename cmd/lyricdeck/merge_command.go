package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lyricdeck/internal/config"
	"lyricdeck/internal/logging"
	"lyricdeck/internal/merge"
	"lyricdeck/internal/wizard"
)

const defaultMergeName = "combined.pptx"

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var orderFlag string
	var copyAudio bool

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Combine generated decks into one presentation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			decks, err := merge.DiscoverDecks(cfg.Paths.OutputDir)
			if err != nil {
				return fmt.Errorf("scan output directory: %w", err)
			}
			if len(decks) == 0 {
				return fmt.Errorf("no decks found in %s; run `lyricdeck run` first", cfg.Paths.OutputDir)
			}

			out := cmd.OutOrStdout()

			picks, err := resolveMergeOrder(orderFlag, decks)
			if err != nil {
				if errors.Is(err, wizard.ErrCanceled) {
					fmt.Fprintln(out, "Merge canceled.")
					return nil
				}
				return err
			}

			sources := make([]string, len(picks))
			for i, pick := range picks {
				sources[i] = decks[pick]
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				target = filepath.Join(cfg.Paths.OutputDir, "merged", defaultMergeName)
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
				target = expanded
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			if err := merge.Merge(cmd.Context(), sources, target, logger); err != nil {
				return err
			}
			fmt.Fprintf(out, "Merged %d decks into %s\n", len(sources), target)

			if copyAudio {
				copied := merge.CopyMatchingAudio(sources, cfg.Paths.MusicDir, filepath.Dir(target), logger)
				fmt.Fprintf(out, "Copied %d matching audio files\n", copied)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Merged deck destination (default <output_dir>/merged/"+defaultMergeName+")")
	cmd.Flags().StringVar(&orderFlag, "order", "", "Deck order as 1-based numbers, e.g. 2,1,3 (skips the picker)")
	cmd.Flags().BoolVar(&copyAudio, "copy-audio", false, "Copy same-named audio files next to the merged deck")
	return cmd
}

// resolveMergeOrder turns the --order flag into deck indexes, or falls back
// to the interactive picker when no order was given.
func resolveMergeOrder(orderFlag string, decks []string) ([]int, error) {
	if order := strings.TrimSpace(orderFlag); order != "" {
		return parseOrder(order, len(decks))
	}

	items := make([]wizard.Item, len(decks))
	for i, deckPath := range decks {
		items[i] = wizard.Item{Label: filepath.Base(deckPath)}
	}
	picks, err := wizard.RunPicker("Merge order", items)
	if err != nil {
		if errors.Is(err, wizard.ErrNoTerminal) {
			return nil, fmt.Errorf("no terminal for the interactive picker; pass --order (e.g. --order 1,3,2)")
		}
		return nil, err
	}
	return picks, nil
}
