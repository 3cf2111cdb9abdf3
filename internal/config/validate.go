package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateCleaner(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateNotify(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.Workers <= 0 {
		return errors.New("batch.workers must be positive")
	}
	switch c.Batch.OnMissingCover {
	case MissingCoverFail, MissingCoverBare:
	default:
		return fmt.Errorf("batch.on_missing_cover must be %q or %q, got %q", MissingCoverFail, MissingCoverBare, c.Batch.OnMissingCover)
	}
	return nil
}

func (c *Config) validateCleaner() error {
	if err := ensurePositiveMap(map[string]int{
		"cleaner.timeout_seconds":      c.Cleaner.TimeoutSeconds,
		"cleaner.max_attempts":         c.Cleaner.MaxAttempts,
		"cleaner.min_text_length":      c.Cleaner.MinTextLength,
		"cleaner.soft_break_threshold": c.Cleaner.SoftBreakThreshold,
	}); err != nil {
		return err
	}
	if c.Cleaner.RetryPauseSeconds < 0 {
		return errors.New("cleaner.retry_pause_seconds must not be negative")
	}
	if c.Cleaner.Temperature < 0 || c.Cleaner.Temperature > 2 {
		return errors.New("cleaner.temperature must be between 0 and 2")
	}
	return nil
}

func (c *Config) validateRender() error {
	if err := ensurePositiveMap(map[string]int{
		"render.background_width":        c.Render.BackgroundWidth,
		"render.background_height":       c.Render.BackgroundHeight,
		"render.mask_fade_pixels":        c.Render.MaskFadePixels,
		"render.active_font_size":        c.Render.ActiveFontSize,
		"render.active_font_size_medium": c.Render.ActiveFontSizeMedium,
		"render.active_font_size_small":  c.Render.ActiveFontSizeSmall,
		"render.context_font_size":       c.Render.ContextFontSize,
		"render.context_font_size_small": c.Render.ContextFontSizeSmall,
	}); err != nil {
		return err
	}
	if c.Render.CanvasWidthInches <= 0 || c.Render.CanvasHeightInches <= 0 {
		return errors.New("render canvas dimensions must be positive")
	}
	if c.Render.MaskBandInches <= 0 || c.Render.MaskBandInches >= c.Render.CanvasHeightInches/2 {
		return errors.New("render.mask_band_inches must be positive and below half the canvas height")
	}
	if c.Render.ActiveThresholdMedium >= c.Render.ActiveThresholdSmall {
		return errors.New("render.active_threshold_medium must be below render.active_threshold_small")
	}
	maskPixels := int(float64(c.Render.BackgroundHeight) * c.Render.MaskBandInches / c.Render.CanvasHeightInches)
	if c.Render.MaskFadePixels > maskPixels {
		return fmt.Errorf("render.mask_fade_pixels (%d) exceeds the mask band height (%d px)", c.Render.MaskFadePixels, maskPixels)
	}
	return nil
}

func (c *Config) validateNotify() error {
	if c.Notify.RequestTimeout <= 0 {
		return errors.New("notify.request_timeout must be positive")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
