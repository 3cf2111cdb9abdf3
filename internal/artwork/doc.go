// Package artwork derives every raster a deck embeds from one piece of
// cover art.
//
// A track's embedded cover yields four images: a blurred, darkened
// full-bleed background; the untouched cover re-encoded for embedding;
// and two horizontal mask bands cropped from the background whose alpha
// fades where they meet the open canvas. The masks sit above the lyric
// column so scrolled-out lines dissolve into the background instead of
// clipping hard at the canvas edge.
package artwork
