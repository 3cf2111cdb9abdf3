// Package lyrics turns raw embedded lyric text into the display-ready
// lines a deck renders, one slide per line.
//
// Normalization is deliberately forgiving: AI cleaning is attempted a
// bounded number of times and any failure falls back to the raw embedded
// text, so a track with lyrics always yields a deck. A track is treated
// as instrumental when it has no text, carries a known instrumental
// marker, the cleaning model returns the pure-music sentinel, or nothing
// survives timestamp stripping.
package lyrics
