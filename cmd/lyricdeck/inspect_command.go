package main

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"lyricdeck/internal/config"
	"lyricdeck/internal/lyrics"
	"lyricdeck/internal/tags"
)

const inspectPreviewLines = 5

func newInspectCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show what lyricdeck would extract from one audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			track, err := tags.Read(path)
			if err != nil {
				return err
			}

			lines := lyrics.ParseLines(track.RawLyrics)

			rows := [][]string{
				{"Title", track.Title},
				{"Artist", track.Artist},
				{"Display name", track.DisplayName()},
				{"Cover art", coverSummary(track)},
				{"Raw lyric text", strconv.Itoa(utf8.RuneCountInString(track.RawLyrics)) + " chars"},
				{"Lyric lines", strconv.Itoa(len(lines))},
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows))

			if len(lines) > 0 {
				fmt.Fprintln(out, "\nFirst lines:")
				for i, line := range lines {
					if i >= inspectPreviewLines {
						fmt.Fprintf(out, "  ... %d more\n", len(lines)-inspectPreviewLines)
						break
					}
					fmt.Fprintf(out, "  %s\n", line)
				}
			}
			return nil
		},
	}
	return cmd
}

func coverSummary(track tags.Track) string {
	if !track.HasCover() {
		return "no"
	}
	return fmt.Sprintf("yes (%s)", humanBytes(int64(len(track.Cover))))
}
