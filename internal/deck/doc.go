// Package deck models a lyric presentation as slides of image and text
// shapes, and builds those slides from track metadata, composited artwork,
// and layout frames.
//
// A deck owns its image assets; shapes reference them by index so each
// raster is stored once no matter how many slides draw it. Shape order
// within a slide is z-order, first shape at the back.
package deck
