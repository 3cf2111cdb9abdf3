package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	MusicDir   string `toml:"music_dir"`
	OutputDir  string `toml:"output_dir"`
	ScratchDir string `toml:"scratch_dir"`
	LogDir     string `toml:"log_dir"`
}

// Recognized on_missing_cover policies: fail the track, or emit a bare
// title-only deck without imagery.
const (
	MissingCoverFail = "fail"
	MissingCoverBare = "bare"
)

// Batch contains configuration for the concurrent batch run.
type Batch struct {
	Workers           int    `toml:"workers"`
	OnMissingCover    string `toml:"on_missing_cover"`
	TidyRootFiles     bool   `toml:"tidy_root_files"`
	StaleScratchHours int    `toml:"stale_scratch_hours"`
}

// Cleaner contains configuration for the external lyric-cleaning service.
type Cleaner struct {
	Enabled            bool    `toml:"enabled"`
	APIKey             string  `toml:"api_key"`
	BaseURL            string  `toml:"base_url"`
	Model              string  `toml:"model"`
	Temperature        float64 `toml:"temperature"`
	TimeoutSeconds     int     `toml:"timeout_seconds"`
	MaxAttempts        int     `toml:"max_attempts"`
	RetryPauseSeconds  int     `toml:"retry_pause_seconds"`
	MinTextLength      int     `toml:"min_text_length"`
	SoftBreakThreshold int     `toml:"soft_break_threshold"`
}

// Lyrics contains configuration for lyric classification.
type Lyrics struct {
	InstrumentalMarkers []string `toml:"instrumental_markers"`
}

// Render contains the slide geometry and styling tunables.
type Render struct {
	CanvasWidthInches     float64 `toml:"canvas_width_inches"`
	CanvasHeightInches    float64 `toml:"canvas_height_inches"`
	BackgroundWidth       int     `toml:"background_width"`
	BackgroundHeight      int     `toml:"background_height"`
	BackgroundBlurSigma   float64 `toml:"background_blur_sigma"`
	BackgroundBrightness  float64 `toml:"background_brightness"`
	MaskBandInches        float64 `toml:"mask_band_inches"`
	MaskFadePixels        int     `toml:"mask_fade_pixels"`
	LineSpacingInches     float64 `toml:"line_spacing_inches"`
	LyricBoxWidthInches   float64 `toml:"lyric_box_width_inches"`
	LyricBoxHeightInches  float64 `toml:"lyric_box_height_inches"`
	ActiveFontSize        int     `toml:"active_font_size"`
	ActiveFontSizeMedium  int     `toml:"active_font_size_medium"`
	ActiveFontSizeSmall   int     `toml:"active_font_size_small"`
	ActiveThresholdMedium int     `toml:"active_threshold_medium"`
	ActiveThresholdSmall  int     `toml:"active_threshold_small"`
	ContextFontSize       int     `toml:"context_font_size"`
	ContextFontSizeSmall  int     `toml:"context_font_size_small"`
	ContextThreshold      int     `toml:"context_threshold"`
}

// LyricCache contains configuration for the cleaned-lyrics cache.
type LyricCache struct {
	Enabled bool   `toml:"enabled"` // Default: false
	Path    string `toml:"path"`    // Default: ~/.cache/lyricdeck/lyrics.db
}

// Notify contains configuration for ntfy push notifications.
type Notify struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for lyricdeck.
//
// Configuration sections by subsystem:
//   - Paths: music input, deck output, scratch, and log directories
//   - Batch: worker count and per-run policies
//   - Cleaner: external lyric-cleaning service connection and retry budget
//   - Lyrics: instrumental-marker classification
//   - Render: canvas geometry, compositing, and font tier tunables
//   - LyricCache: cleaned-lyrics cache location
//   - Notify: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Batch      Batch      `toml:"batch"`
	Cleaner    Cleaner    `toml:"cleaner"`
	Lyrics     Lyrics     `toml:"lyrics"`
	Render     Render     `toml:"render"`
	LyricCache LyricCache `toml:"lyric_cache"`
	Notify     Notify     `toml:"notify"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lyricdeck/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("lyricdeck.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a batch run needs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.MusicDir, c.Paths.OutputDir, c.Paths.ScratchDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.LyricCache.Enabled && strings.TrimSpace(c.LyricCache.Path) != "" {
		if err := os.MkdirAll(filepath.Dir(c.LyricCache.Path), 0o755); err != nil {
			return fmt.Errorf("create lyric cache directory %q: %w", filepath.Dir(c.LyricCache.Path), err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultLyricCachePath() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "lyricdeck", "lyrics.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/lyricdeck/lyrics.db"
	}
	return filepath.Join(home, ".cache", "lyricdeck", "lyrics.db")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Save marshals the configuration to TOML at the specified location.
func Save(c *Config, path string) error {
	if c == nil {
		return errors.New("config is nil")
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// CleanerConfig contains the trimmed cleaning-service connection settings.
type CleanerConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Temperature    float64
	TimeoutSeconds int
}

// GetCleaner returns the cleaning-service connection settings.
func (c *Config) GetCleaner() CleanerConfig {
	return CleanerConfig{
		APIKey:         strings.TrimSpace(c.Cleaner.APIKey),
		BaseURL:        strings.TrimSpace(c.Cleaner.BaseURL),
		Model:          strings.TrimSpace(c.Cleaner.Model),
		Temperature:    c.Cleaner.Temperature,
		TimeoutSeconds: c.Cleaner.TimeoutSeconds,
	}
}

// CleaningEnabled reports whether external lyric cleaning can actually run:
// the feature must be switched on and a credential must be present.
func (c *Config) CleaningEnabled() bool {
	return c.Cleaner.Enabled && strings.TrimSpace(c.Cleaner.APIKey) != ""
}
