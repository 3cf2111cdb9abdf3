// Package merge combines generated lyric decks into a single presentation
// and gathers the matching audio files next to it, so a whole set can be
// handed off as one package.
package merge
