package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"lyricdeck/internal/config"
	"lyricdeck/internal/lyriccache"
	"lyricdeck/internal/lyrics"
	"lyricdeck/internal/services/lyricsai"
)

// buildNormalizer wires the lyric normalizer with the cleaning client and
// cache the configuration enables. The returned closer releases the cache
// store and is safe to call unconditionally.
func buildNormalizer(cfg *config.Config, logger *slog.Logger) (*lyrics.Normalizer, func(), error) {
	var cleaner lyrics.Cleaner
	var cache lyrics.Cache
	closer := func() {}

	if cfg.CleaningEnabled() {
		cc := cfg.GetCleaner()
		cleaner = lyricsai.NewClient(lyricsai.Config{
			APIKey:             cc.APIKey,
			BaseURL:            cc.BaseURL,
			Model:              cc.Model,
			Temperature:        cc.Temperature,
			TimeoutSeconds:     cc.TimeoutSeconds,
			SoftBreakThreshold: cfg.Cleaner.SoftBreakThreshold,
		})

		if cfg.LyricCache.Enabled {
			store, err := lyriccache.Open(cfg.LyricCache.Path, cc.Model)
			if err != nil {
				return nil, nil, fmt.Errorf("open lyric cache: %w", err)
			}
			cache = store
			closer = func() { _ = store.Close() }
		}
	}

	return lyrics.NewNormalizer(cfg, cleaner, cache, logger), closer, nil
}

// parseOrder turns a 1-based selection like "2,1,3" into zero-based indexes
// against a list of length total. Separators may be commas or spaces.
func parseOrder(selection string, total int) ([]int, error) {
	fields := strings.FieldsFunc(selection, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("order is empty")
	}

	seen := make(map[int]bool, len(fields))
	picks := make([]int, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("order entry %q is not a number", field)
		}
		if n < 1 || n > total {
			return nil, fmt.Errorf("order entry %d out of range (1-%d)", n, total)
		}
		if seen[n] {
			return nil, fmt.Errorf("order entry %d appears twice", n)
		}
		seen[n] = true
		picks = append(picks, n-1)
	}
	return picks, nil
}

// truncate shortens s to at most max runes for table cells.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
