package merge

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lyricdeck/internal/deck/pptx"
	"lyricdeck/internal/fileutil"
	"lyricdeck/internal/logging"
	"lyricdeck/internal/services"
)

// audioExtensions lists the containers CopyMatchingAudio pairs with decks.
// Wider than the batch scanner's list: audio sitting next to the decks may
// come from anywhere, not just from a lyricdeck run.
var audioExtensions = []string{".mp3", ".wav", ".m4a", ".wma", ".aac", ".flac"}

// DiscoverDecks lists the .pptx files directly under dir, sorted by name.
// Office owner files ("~$...") are skipped.
func DiscoverDecks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var decks []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "~") || !strings.EqualFold(filepath.Ext(name), ".pptx") {
			continue
		}
		decks = append(decks, filepath.Join(dir, name))
	}
	sort.Strings(decks)
	return decks, nil
}

// Merge combines the source decks into one package at target, slides in the
// order the sources are given. The merged deck's title is the target file
// name without its extension.
func Merge(ctx context.Context, sources []string, target string, logger *slog.Logger) error {
	logger = logging.NewComponentLogger(logger, "merge")
	if len(sources) == 0 {
		return services.Wrap(services.ErrNoInput, "merge", "select", "no decks selected", nil)
	}

	decks := make([]*pptx.DeckFile, 0, len(sources))
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return services.Wrap(services.ErrTransient, "merge", "read", "merge canceled", err)
		}
		d, err := pptx.ReadDeck(source)
		if err != nil {
			return services.Wrap(services.ErrValidation, "merge", "read", "cannot read "+filepath.Base(source), err)
		}
		decks = append(decks, d)
	}

	if dir := filepath.Dir(target); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrPersistence, "merge", "write", "cannot create output directory", err)
		}
	}
	title := strings.TrimSuffix(filepath.Base(target), filepath.Ext(target))
	if err := pptx.WriteCombined(target, title, decks); err != nil {
		return services.Wrap(services.ErrPersistence, "merge", "write", "cannot write combined deck", err)
	}

	slides := 0
	for _, d := range decks {
		slides += len(d.Slides)
	}
	logger.Info("decks merged",
		logging.Int("decks", len(decks)),
		logging.Int("slides", slides),
		logging.String("output", target),
		logging.String(logging.FieldEventType, "decks_merged"))
	return nil
}

// CopyMatchingAudio copies audio files whose base name matches one of the
// source decks from musicDir into destDir, so the merged deck travels with
// its soundtrack. It returns the number of files copied. A missing music
// directory copies nothing.
func CopyMatchingAudio(sources []string, musicDir, destDir string, logger *slog.Logger) int {
	logger = logging.NewComponentLogger(logger, "merge")

	wanted := make(map[string]bool, len(sources))
	for _, source := range sources {
		base := filepath.Base(source)
		wanted[strings.TrimSuffix(base, filepath.Ext(base))] = true
	}

	entries, err := os.ReadDir(musicDir)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.WarnWithContext(logger, "cannot scan music directory", "audio_match_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check paths.music_dir"),
				logging.String(logging.FieldImpact, "no audio copied next to the merged deck"))
		}
		return 0
	}

	copied := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if !wanted[stem] || !isAudio(name) {
			continue
		}
		if err := fileutil.CopyFile(filepath.Join(musicDir, name), filepath.Join(destDir, name)); err != nil {
			logging.WarnWithContext(logger, "audio copy failed", "audio_copy_failed",
				logging.Error(err),
				logging.String("file", name),
				logging.String(logging.FieldErrorHint, "check permissions on the merge output directory"),
				logging.String(logging.FieldImpact, "merged deck is missing this track's audio"))
			continue
		}
		copied++
	}
	if copied > 0 {
		logger.Info("matching audio copied",
			logging.Int("files", copied),
			logging.String("dest", destDir))
	}
	return copied
}

func isAudio(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, candidate := range audioExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
