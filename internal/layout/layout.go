package layout

import (
	"math"
	"strings"
	"unicode/utf8"

	"lyricdeck/internal/config"
)

// EMUPerInch is the OOXML fixed unit density: 914400 English Metric Units
// per inch.
const EMUPerInch = 914400

// Inches converts a measurement in inches to EMU, rounded to the nearest
// whole unit.
func Inches(v float64) int64 {
	return int64(math.Round(v * EMUPerInch))
}

// SoftBreak is the reserved delimiter the cleaning prompt inserts where a
// long line should wrap. ExpandSoftBreaks turns it into a hard line break.
const SoftBreak = "^"

// ExpandSoftBreaks replaces soft-break delimiters with newlines. The spaced
// encoding " ^ " is rewritten first so the surrounding spaces do not survive
// as leading or trailing blanks on the split lines.
func ExpandSoftBreaks(text string) string {
	text = strings.ReplaceAll(text, " "+SoftBreak+" ", "\n")
	return strings.ReplaceAll(text, SoftBreak, "\n")
}

// Options carries the geometry and typography tunables for frame
// computation. Distances are EMU, font sizes are points.
type Options struct {
	LineSpacing    int64
	ViewportCenter int64

	ActiveSize            int
	ActiveSizeMedium      int
	ActiveSizeSmall       int
	ActiveThresholdMedium int
	ActiveThresholdSmall  int

	ContextSize      int
	ContextSizeSmall int
	ContextThreshold int
}

// OptionsFromConfig maps the [render] config section onto engine options.
func OptionsFromConfig(cfg *config.Config) Options {
	render := cfg.Render
	return Options{
		LineSpacing:           Inches(render.LineSpacingInches),
		ViewportCenter:        Inches(render.CanvasHeightInches / 2),
		ActiveSize:            render.ActiveFontSize,
		ActiveSizeMedium:      render.ActiveFontSizeMedium,
		ActiveSizeSmall:       render.ActiveFontSizeSmall,
		ActiveThresholdMedium: render.ActiveThresholdMedium,
		ActiveThresholdSmall:  render.ActiveThresholdSmall,
		ContextSize:           render.ContextFontSize,
		ContextSizeSmall:      render.ContextFontSizeSmall,
		ContextThreshold:      render.ContextThreshold,
	}
}

// Line is one positioned lyric line within a frame. Text has soft breaks
// already expanded to newlines. CenterY is the vertical center of the text
// box in EMU.
type Line struct {
	Index   int
	Text    string
	CenterY int64
	Active  bool
	SizePt  int
	Bold    bool
}

// Frame is the complete geometry for one slide: every lyric line positioned
// relative to the active line at the viewport center.
type Frame struct {
	ActiveIndex int
	Lines       []Line
}

// Engine computes frames from immutable options.
type Engine struct {
	opts Options
}

// NewEngine returns an engine bound to the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Frame positions every line for the slide where lines[activeIndex] is the
// focused lyric. Lines above the active index land above the viewport
// center, lines below land beneath it, each a whole line spacing apart.
func (e *Engine) Frame(lines []string, activeIndex int) Frame {
	frame := Frame{
		ActiveIndex: activeIndex,
		Lines:       make([]Line, 0, len(lines)),
	}
	for i, text := range lines {
		expanded := ExpandSoftBreaks(text)
		active := i == activeIndex
		size := e.fontSize(utf8.RuneCountInString(expanded), active)
		offset := int64(i-activeIndex) * e.opts.LineSpacing
		frame.Lines = append(frame.Lines, Line{
			Index:   i,
			Text:    expanded,
			CenterY: e.opts.ViewportCenter + offset,
			Active:  active,
			SizePt:  size,
			Bold:    active,
		})
	}
	return frame
}

// fontSize steps the point size down as the rendered line grows so long
// lyrics stay inside the text box.
func (e *Engine) fontSize(length int, active bool) int {
	if active {
		switch {
		case length > e.opts.ActiveThresholdSmall:
			return e.opts.ActiveSizeSmall
		case length > e.opts.ActiveThresholdMedium:
			return e.opts.ActiveSizeMedium
		default:
			return e.opts.ActiveSize
		}
	}
	if length > e.opts.ContextThreshold {
		return e.opts.ContextSizeSmall
	}
	return e.opts.ContextSize
}
