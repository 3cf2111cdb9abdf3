// Package tags extracts per-track metadata from audio containers.
//
// Each deck is driven by four fields read from the audio file itself:
// title, artist, embedded lyrics, and embedded cover art. Absent fields
// are substituted with placeholders (or derived from the file name)
// rather than treated as errors; only an unreadable container fails.
// Absent cover art is a first-class state that downstream policy decides
// how to handle.
package tags
