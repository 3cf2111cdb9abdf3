// Package lyricsai wraps the chat-completions API used to tidy embedded
// lyric text before it is rendered onto slides.
//
// The client performs exactly one request per Clean call; retry policy,
// pacing, and the raw-text fallback belong to the caller. A response
// consisting of the [PURE_MUSIC] sentinel marks the track as instrumental.
package lyricsai
