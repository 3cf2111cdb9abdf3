package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeBatch()
	c.normalizeCleaner()
	c.normalizeLyrics()
	c.normalizeRender()
	if err := c.normalizeLyricCache(); err != nil {
		return err
	}
	c.normalizeNotify()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.MusicDir) == "" {
		c.Paths.MusicDir = defaultMusicDir
	}
	if c.Paths.MusicDir, err = expandPath(c.Paths.MusicDir); err != nil {
		return fmt.Errorf("paths.music_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ScratchDir) == "" {
		c.Paths.ScratchDir = defaultScratchDir
	}
	if c.Paths.ScratchDir, err = expandPath(c.Paths.ScratchDir); err != nil {
		return fmt.Errorf("paths.scratch_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeBatch() {
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = defaultWorkers
	}
	c.Batch.OnMissingCover = strings.ToLower(strings.TrimSpace(c.Batch.OnMissingCover))
	if c.Batch.OnMissingCover == "" {
		c.Batch.OnMissingCover = defaultOnMissingCover
	}
	if c.Batch.StaleScratchHours < 0 {
		c.Batch.StaleScratchHours = 0
	}
}

func (c *Config) normalizeCleaner() {
	c.Cleaner.APIKey = strings.TrimSpace(c.Cleaner.APIKey)
	if c.Cleaner.APIKey == "" {
		if value, ok := os.LookupEnv("LYRICDECK_API_KEY"); ok {
			c.Cleaner.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.Cleaner.APIKey = strings.TrimSpace(value)
		}
	}
	c.Cleaner.BaseURL = strings.TrimSpace(c.Cleaner.BaseURL)
	if c.Cleaner.BaseURL == "" {
		c.Cleaner.BaseURL = defaultCleanerBaseURL
	}
	c.Cleaner.Model = strings.TrimSpace(c.Cleaner.Model)
	if c.Cleaner.Model == "" {
		c.Cleaner.Model = defaultCleanerModel
	}
	if c.Cleaner.Temperature <= 0 {
		c.Cleaner.Temperature = defaultCleanerTemperature
	}
	if c.Cleaner.TimeoutSeconds <= 0 {
		c.Cleaner.TimeoutSeconds = defaultCleanerTimeout
	}
	if c.Cleaner.MaxAttempts <= 0 {
		c.Cleaner.MaxAttempts = defaultCleanerAttempts
	}
	if c.Cleaner.RetryPauseSeconds < 0 {
		c.Cleaner.RetryPauseSeconds = defaultCleanerRetryPause
	}
	if c.Cleaner.MinTextLength <= 0 {
		c.Cleaner.MinTextLength = defaultMinTextLength
	}
	if c.Cleaner.SoftBreakThreshold <= 0 {
		c.Cleaner.SoftBreakThreshold = defaultSoftBreakThreshold
	}
}

func (c *Config) normalizeLyrics() {
	if len(c.Lyrics.InstrumentalMarkers) == 0 {
		c.Lyrics.InstrumentalMarkers = defaultInstrumentalMarkers()
		return
	}
	markers := make([]string, 0, len(c.Lyrics.InstrumentalMarkers))
	seen := make(map[string]struct{}, len(c.Lyrics.InstrumentalMarkers))
	for _, marker := range c.Lyrics.InstrumentalMarkers {
		trimmed := strings.TrimSpace(marker)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		markers = append(markers, trimmed)
	}
	if len(markers) == 0 {
		markers = defaultInstrumentalMarkers()
	}
	c.Lyrics.InstrumentalMarkers = markers
}

func (c *Config) normalizeRender() {
	if c.Render.CanvasWidthInches <= 0 {
		c.Render.CanvasWidthInches = defaultCanvasWidthInches
	}
	if c.Render.CanvasHeightInches <= 0 {
		c.Render.CanvasHeightInches = defaultCanvasHeightInches
	}
	if c.Render.BackgroundWidth <= 0 {
		c.Render.BackgroundWidth = defaultBackgroundWidth
	}
	if c.Render.BackgroundHeight <= 0 {
		c.Render.BackgroundHeight = defaultBackgroundHeight
	}
	if c.Render.BackgroundBlurSigma <= 0 {
		c.Render.BackgroundBlurSigma = defaultBackgroundBlurSigma
	}
	if c.Render.BackgroundBrightness <= 0 {
		c.Render.BackgroundBrightness = defaultBackgroundBrightness
	}
	if c.Render.MaskBandInches <= 0 {
		c.Render.MaskBandInches = defaultMaskBandInches
	}
	if c.Render.MaskFadePixels <= 0 {
		c.Render.MaskFadePixels = defaultMaskFadePixels
	}
	if c.Render.LineSpacingInches <= 0 {
		c.Render.LineSpacingInches = defaultLineSpacingInches
	}
	if c.Render.LyricBoxWidthInches <= 0 {
		c.Render.LyricBoxWidthInches = defaultLyricBoxWidthInches
	}
	if c.Render.LyricBoxHeightInches <= 0 {
		c.Render.LyricBoxHeightInches = defaultLyricBoxHeightInches
	}
	if c.Render.ActiveFontSize <= 0 {
		c.Render.ActiveFontSize = defaultActiveFontSize
	}
	if c.Render.ActiveFontSizeMedium <= 0 {
		c.Render.ActiveFontSizeMedium = defaultActiveFontSizeMedium
	}
	if c.Render.ActiveFontSizeSmall <= 0 {
		c.Render.ActiveFontSizeSmall = defaultActiveFontSizeSmall
	}
	if c.Render.ActiveThresholdMedium <= 0 {
		c.Render.ActiveThresholdMedium = defaultActiveThresholdMed
	}
	if c.Render.ActiveThresholdSmall <= 0 {
		c.Render.ActiveThresholdSmall = defaultActiveThresholdSmall
	}
	if c.Render.ContextFontSize <= 0 {
		c.Render.ContextFontSize = defaultContextFontSize
	}
	if c.Render.ContextFontSizeSmall <= 0 {
		c.Render.ContextFontSizeSmall = defaultContextFontSizeSmall
	}
	if c.Render.ContextThreshold <= 0 {
		c.Render.ContextThreshold = defaultContextThreshold
	}
}

func (c *Config) normalizeLyricCache() error {
	var err error
	if strings.TrimSpace(c.LyricCache.Path) == "" {
		c.LyricCache.Path = defaultLyricCachePath()
	}
	if c.LyricCache.Path, err = expandPath(c.LyricCache.Path); err != nil {
		return fmt.Errorf("lyric_cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeNotify() {
	c.Notify.NtfyTopic = strings.TrimSpace(c.Notify.NtfyTopic)
	if c.Notify.RequestTimeout <= 0 {
		c.Notify.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
