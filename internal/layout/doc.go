// Package layout positions lyric lines on the slide canvas.
//
// The engine implements a fixed-window center-anchored scroll: the active
// line always sits at the viewport center and every other line is offset by
// whole multiples of the configured line spacing. A Frame is a pure function
// of the line list, the active index, and the engine options, so the same
// track always produces the same deck geometry.
package layout
