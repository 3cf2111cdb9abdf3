package batch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"lyricdeck/internal/fileutil"
	"lyricdeck/internal/logging"
	"lyricdeck/internal/tags"
)

// Discover lists the eligible audio files directly inside musicDir, sorted
// by name. Subdirectories are not descended into.
func Discover(musicDir string) ([]string, error) {
	entries, err := os.ReadDir(musicDir)
	if err != nil {
		return nil, fmt.Errorf("read music directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !tags.IsEligible(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(musicDir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// TidyRootFiles moves eligible audio files sitting beside the music
// directory into it, so tracks dropped next to the tool are picked up on the
// next run. Returns the number of files moved.
func TidyRootFiles(musicDir string, logger *slog.Logger) int {
	root := filepath.Dir(musicDir)
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0
	}

	moved := 0
	for _, entry := range entries {
		if entry.IsDir() || !tags.IsEligible(entry.Name()) {
			continue
		}
		src := filepath.Join(root, entry.Name())
		dst := filepath.Join(musicDir, entry.Name())
		if err := fileutil.MoveFile(src, dst); err != nil {
			if logger != nil {
				logging.WarnWithContext(logger, "failed to tidy audio file into music directory", "tidy_failed",
					logging.String("path", src),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check music_dir permissions"),
					logging.String(logging.FieldImpact, "file will not be converted"),
				)
			}
			continue
		}
		moved++
	}

	if moved > 0 && logger != nil {
		logger.Info("tidied root audio files into music directory",
			logging.Int("moved", moved),
			logging.String("music_dir", musicDir),
			logging.String(logging.FieldEventType, "root_tidy"),
		)
	}
	return moved
}
