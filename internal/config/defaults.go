package config

const (
	defaultMusicDir          = "music"
	defaultOutputDir         = "output"
	defaultScratchDir        = "~/.local/share/lyricdeck/scratch"
	defaultLogDir            = "~/.local/share/lyricdeck/logs"
	defaultWorkers           = 4
	defaultOnMissingCover    = "fail"
	defaultStaleScratchHours = 24

	defaultCleanerBaseURL     = "https://api.openai.com/v1"
	defaultCleanerModel       = "gpt-3.5-turbo"
	defaultCleanerTemperature = 0.1
	defaultCleanerTimeout     = 20
	defaultCleanerAttempts    = 3
	defaultCleanerRetryPause  = 1
	defaultMinTextLength      = 10
	defaultSoftBreakThreshold = 18

	defaultCanvasWidthInches    = 13.333
	defaultCanvasHeightInches   = 7.5
	defaultBackgroundWidth      = 1280
	defaultBackgroundHeight     = 720
	defaultBackgroundBlurSigma  = 60
	defaultBackgroundBrightness = 0.30
	defaultMaskBandInches       = 2.2
	defaultMaskFadePixels       = 120
	defaultLineSpacingInches    = 1.35
	defaultLyricBoxWidthInches  = 7.8
	defaultLyricBoxHeightInches = 2.2
	defaultActiveFontSize       = 40
	defaultActiveFontSizeMedium = 32
	defaultActiveFontSizeSmall  = 28
	defaultActiveThresholdMed   = 18
	defaultActiveThresholdSmall = 30
	defaultContextFontSize      = 24
	defaultContextFontSizeSmall = 20
	defaultContextThreshold     = 20

	defaultNotifyRequestTimeout = 10

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

func defaultInstrumentalMarkers() []string {
	return []string{"纯音乐", "Instrumental"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MusicDir:   defaultMusicDir,
			OutputDir:  defaultOutputDir,
			ScratchDir: defaultScratchDir,
			LogDir:     defaultLogDir,
		},
		Batch: Batch{
			Workers:           defaultWorkers,
			OnMissingCover:    defaultOnMissingCover,
			TidyRootFiles:     true,
			StaleScratchHours: defaultStaleScratchHours,
		},
		Cleaner: Cleaner{
			Enabled:            true,
			BaseURL:            defaultCleanerBaseURL,
			Model:              defaultCleanerModel,
			Temperature:        defaultCleanerTemperature,
			TimeoutSeconds:     defaultCleanerTimeout,
			MaxAttempts:        defaultCleanerAttempts,
			RetryPauseSeconds:  defaultCleanerRetryPause,
			MinTextLength:      defaultMinTextLength,
			SoftBreakThreshold: defaultSoftBreakThreshold,
		},
		Lyrics: Lyrics{
			InstrumentalMarkers: defaultInstrumentalMarkers(),
		},
		Render: Render{
			CanvasWidthInches:     defaultCanvasWidthInches,
			CanvasHeightInches:    defaultCanvasHeightInches,
			BackgroundWidth:       defaultBackgroundWidth,
			BackgroundHeight:      defaultBackgroundHeight,
			BackgroundBlurSigma:   defaultBackgroundBlurSigma,
			BackgroundBrightness:  defaultBackgroundBrightness,
			MaskBandInches:        defaultMaskBandInches,
			MaskFadePixels:        defaultMaskFadePixels,
			LineSpacingInches:     defaultLineSpacingInches,
			LyricBoxWidthInches:   defaultLyricBoxWidthInches,
			LyricBoxHeightInches:  defaultLyricBoxHeightInches,
			ActiveFontSize:        defaultActiveFontSize,
			ActiveFontSizeMedium:  defaultActiveFontSizeMedium,
			ActiveFontSizeSmall:   defaultActiveFontSizeSmall,
			ActiveThresholdMedium: defaultActiveThresholdMed,
			ActiveThresholdSmall:  defaultActiveThresholdSmall,
			ContextFontSize:       defaultContextFontSize,
			ContextFontSizeSmall:  defaultContextFontSizeSmall,
			ContextThreshold:      defaultContextThreshold,
		},
		LyricCache: LyricCache{
			Path: defaultLyricCachePath(),
		},
		Notify: Notify{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
