package testsupport

import (
	"path/filepath"
	"testing"

	"lyricdeck/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.MusicDir = filepath.Join(base, "music")
	cfgVal.Paths.OutputDir = filepath.Join(base, "decks")
	cfgVal.Paths.ScratchDir = filepath.Join(base, "scratch")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.LyricCache.Path = filepath.Join(base, "cache", "lyrics.db")
	cfgVal.Batch.Workers = 2
	cfgVal.Cleaner.Enabled = false
	cfgVal.Cleaner.RetryPauseSeconds = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCleaner enables AI cleaning against the supplied endpoint.
func WithCleaner(apiKey, baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cleaner.Enabled = true
		b.cfg.Cleaner.APIKey = apiKey
		b.cfg.Cleaner.BaseURL = baseURL
	}
}

// WithWorkers overrides the batch worker count on the test config.
func WithWorkers(workers int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Batch.Workers = workers
	}
}

// WithMissingCoverPolicy overrides how tracks without cover art are handled.
func WithMissingCoverPolicy(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Batch.OnMissingCover = policy
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.MusicDir)
}
