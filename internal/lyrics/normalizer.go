package lyrics

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"lyricdeck/internal/config"
	"lyricdeck/internal/logging"
	"lyricdeck/internal/services"
	"lyricdeck/internal/services/lyricsai"
)

// Cleaner produces a tidied rendition of raw embedded lyric text.
type Cleaner interface {
	Clean(ctx context.Context, rawText string) (string, error)
}

// Cache remembers cleanings from previous runs.
type Cache interface {
	Lookup(ctx context.Context, rawText string) (string, bool, error)
	Save(ctx context.Context, rawText, cleaned string) error
}

// Normalizer produces the lyric lines for a track and decides whether the
// track is instrumental.
type Normalizer struct {
	cleaner       Cleaner
	cache         Cache
	markers       []string
	minTextLength int
	maxAttempts   int
	retryPause    time.Duration
	logger        *slog.Logger
	sleeper       func(time.Duration)
}

// Option customizes the normalizer.
type Option func(*Normalizer)

// WithSleeper overrides how retry pauses are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(n *Normalizer) {
		if sleeper != nil {
			n.sleeper = sleeper
		}
	}
}

// NewNormalizer wires a normalizer from configuration. cleaner and cache
// may be nil, which disables AI cleaning and caching respectively.
func NewNormalizer(cfg *config.Config, cleaner Cleaner, cache Cache, logger *slog.Logger, opts ...Option) *Normalizer {
	n := &Normalizer{
		cleaner:       cleaner,
		cache:         cache,
		markers:       cfg.Lyrics.InstrumentalMarkers,
		minTextLength: cfg.Cleaner.MinTextLength,
		maxAttempts:   cfg.Cleaner.MaxAttempts,
		retryPause:    time.Duration(cfg.Cleaner.RetryPauseSeconds) * time.Second,
		logger:        logging.NewComponentLogger(logger, "lyrics"),
	}
	if n.maxAttempts <= 0 {
		n.maxAttempts = 1
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize turns raw embedded lyric text into display-ready lines. The
// boolean reports whether the track should be treated as instrumental: no
// text, an instrumental marker, the cleaning sentinel, or nothing left
// after timestamp stripping all qualify.
func (n *Normalizer) Normalize(ctx context.Context, rawText, display string) ([]string, bool) {
	logger := n.logger
	if display != "" {
		logger = logger.With(logging.String(logging.FieldTrack, display))
	}

	raw := strings.TrimSpace(rawText)
	if raw == "" {
		logger.Info("no embedded lyric text, treating as instrumental")
		return nil, true
	}
	if marker, found := n.instrumentalMarker(raw); found {
		logger.Info("instrumental marker found", logging.String("marker", marker))
		return nil, true
	}

	text := raw
	if n.cleaner != nil && utf8.RuneCountInString(raw) >= n.minTextLength {
		cleaned, pure, usable := n.clean(ctx, raw, logger)
		if pure {
			return nil, true
		}
		if usable {
			text = cleaned
		}
	}

	lines := ParseLines(text)
	if len(lines) == 0 {
		logger.Info("no lyric lines left after normalization, treating as instrumental")
		return nil, true
	}
	return lines, false
}

func (n *Normalizer) instrumentalMarker(raw string) (string, bool) {
	for _, marker := range n.markers {
		marker = strings.TrimSpace(marker)
		if marker != "" && strings.Contains(raw, marker) {
			return marker, true
		}
	}
	return "", false
}

// clean runs the bounded retry loop around the cleaning client. It returns
// the cleaned text, whether the model marked the track instrumental, and
// whether the cleaned text is usable. When retries are exhausted the caller
// falls back to the raw text.
func (n *Normalizer) clean(ctx context.Context, raw string, logger *slog.Logger) (string, bool, bool) {
	if n.cache != nil {
		cleaned, found, err := n.cache.Lookup(ctx, raw)
		switch {
		case err != nil:
			logging.WarnWithContext(logger, "lyric cache lookup failed", "lyric_cache_lookup_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "inspect the lyric cache database"),
				logging.String(logging.FieldImpact, "cleaning will be requested again"))
		case found && lyricsai.IsPureMusic(cleaned):
			logger.Info("cached cleaning marks track instrumental")
			return "", true, false
		case found:
			logger.Debug("lyric cleaning served from cache")
			return cleaned, false, true
		}
	}

	ctx = services.WithRequestID(ctx, uuid.NewString())
	logger = logging.WithContext(ctx, logger)

	var lastErr error
	for attempt := 1; attempt <= n.maxAttempts; attempt++ {
		cleaned, err := n.cleaner.Clean(ctx, raw)
		if err == nil {
			n.saveToCache(ctx, raw, cleaned, logger)
			if lyricsai.IsPureMusic(cleaned) {
				logger.Info("cleaning marked track instrumental", logging.Int("attempt", attempt))
				return "", true, false
			}
			logger.Debug("lyric cleaning succeeded", logging.Int("attempt", attempt))
			return cleaned, false, true
		}
		lastErr = err
		logger.Warn("lyric cleaning attempt failed",
			logging.Int("attempt", attempt),
			logging.Int("max_attempts", n.maxAttempts),
			logging.Error(err))
		if attempt < n.maxAttempts && !n.pause(ctx) {
			break
		}
	}

	logging.WarnWithContext(logger, "lyric cleaning exhausted retries, using raw text", "lyric_cleaning_exhausted",
		logging.Error(lastErr),
		logging.String(logging.FieldErrorHint, "verify cleaner.base_url and cleaner.api_key"),
		logging.String(logging.FieldImpact, "slides will show uncleaned lyric text"))
	return "", false, false
}

func (n *Normalizer) saveToCache(ctx context.Context, raw, cleaned string, logger *slog.Logger) {
	if n.cache == nil {
		return
	}
	if err := n.cache.Save(ctx, raw, cleaned); err != nil {
		logger.Warn("lyric cache save failed", logging.Error(err))
	}
}

// pause waits out the configured retry delay. It reports false when the
// context was canceled while waiting.
func (n *Normalizer) pause(ctx context.Context) bool {
	if n.retryPause <= 0 {
		return ctx.Err() == nil
	}
	if n.sleeper != nil {
		n.sleeper(n.retryPause)
		return ctx.Err() == nil
	}
	timer := time.NewTimer(n.retryPause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
