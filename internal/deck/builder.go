package deck

import (
	"lyricdeck/internal/artwork"
	"lyricdeck/internal/config"
	"lyricdeck/internal/layout"
)

// Slide geometry that is not a scroll-layout concern. The canvas splits into
// a left zone (cutout and caption) and a right zone (lyric boxes) at 40% of
// the width.
const (
	leftZoneRatio = 0.4

	titleCoverInches         = 4.8
	titleCoverTopInches      = 0.6
	titleCaptionGapInches    = 0.5
	titleCaptionHeightInches = 1.8

	lyricCoverInches         = 3.5
	lyricCoverRiseInches     = 1.0
	lyricCaptionGapInches    = 0.2
	lyricCaptionHeightInches = 2.0

	titleFontPt         = 36
	titleArtistFontPt   = 20
	captionFontPt       = 20
	captionArtistFontPt = 14
)

var (
	colorActive      = RGB{R: 255, G: 255, B: 255}
	colorContext     = RGB{R: 160, G: 160, B: 160}
	colorTitleArtist = RGB{R: 200, G: 200, B: 200}
	colorInfoArtist  = RGB{R: 180, G: 180, B: 180}

	// Caption colors for decks without imagery, where the canvas stays
	// white.
	colorBareTitle  = RGB{R: 32, G: 32, B: 32}
	colorBareArtist = RGB{R: 96, G: 96, B: 96}
)

// Builder assembles slides from track metadata, composited artwork, and
// layout frames. All geometry is resolved once from the render config.
type Builder struct {
	width  int64
	height int64

	maskHeight int64

	lyricBoxX      int64
	lyricBoxWidth  int64
	lyricBoxHeight int64

	lyricCoverSize int64
	lyricCoverX    int64
	lyricCoverY    int64
	lyricCaptionY  int64
}

// NewBuilder resolves slide geometry from the render config.
func NewBuilder(cfg *config.Config) *Builder {
	render := cfg.Render

	zoneLeft := render.CanvasWidthInches * leftZoneRatio
	zoneRight := render.CanvasWidthInches - zoneLeft
	coverTop := layout.Inches(render.CanvasHeightInches/2 - lyricCoverInches/2 - lyricCoverRiseInches)

	return &Builder{
		width:          layout.Inches(render.CanvasWidthInches),
		height:         layout.Inches(render.CanvasHeightInches),
		maskHeight:     layout.Inches(render.MaskBandInches),
		lyricBoxX:      layout.Inches(zoneLeft + (zoneRight-render.LyricBoxWidthInches)/2),
		lyricBoxWidth:  layout.Inches(render.LyricBoxWidthInches),
		lyricBoxHeight: layout.Inches(render.LyricBoxHeightInches),
		lyricCoverSize: layout.Inches(lyricCoverInches),
		lyricCoverX:    layout.Inches((zoneLeft - lyricCoverInches) / 2),
		lyricCoverY:    coverTop,
		lyricCaptionY:  coverTop + layout.Inches(lyricCoverInches+lyricCaptionGapInches),
	}
}

// NewDeck allocates a deck named for the track and registers the composited
// assets so every slide references one shared copy. A nil assets yields a
// deck without imagery for the bare missing-cover policy.
func (b *Builder) NewDeck(name string, assets *artwork.Assets) *Deck {
	d := &Deck{
		Name:   name,
		Width:  b.width,
		Height: b.height,
		refs:   assetRefs{background: -1, cover: -1, maskTop: -1, maskBottom: -1},
	}
	if assets != nil {
		d.refs.background = d.addImage(assets.Background)
		d.refs.cover = d.addImage(assets.Cover)
		d.refs.maskTop = d.addImage(assets.MaskTop)
		d.refs.maskBottom = d.addImage(assets.MaskBottom)
	}
	return d
}

// TitleSlide appends the cover slide: full-bleed background, centered album
// cutout, and the title/artist caption beneath it. Lyric decks carry it at
// both ends.
func (b *Builder) TitleSlide(d *Deck, title, artist string) {
	var slide Slide

	titleColor, artistColor := colorActive, colorTitleArtist
	if d.refs.background < 0 {
		titleColor, artistColor = colorBareTitle, colorBareArtist
	}

	if d.refs.background >= 0 {
		slide.Shapes = append(slide.Shapes, imageShape(d.refs.background, Box{Width: d.Width, Height: d.Height}))
	}

	coverSize := layout.Inches(titleCoverInches)
	coverTop := layout.Inches(titleCoverTopInches)
	if d.refs.cover >= 0 {
		slide.Shapes = append(slide.Shapes, imageShape(d.refs.cover, Box{
			X:      (d.Width - coverSize) / 2,
			Y:      coverTop,
			Width:  coverSize,
			Height: coverSize,
		}))
	}

	slide.Shapes = append(slide.Shapes, Shape{
		Kind: ShapeText,
		Box: Box{
			Y:      coverTop + coverSize + layout.Inches(titleCaptionGapInches),
			Width:  d.Width,
			Height: layout.Inches(titleCaptionHeightInches),
		},
		Anchor: AnchorTop,
		Wrap:   true,
		Paragraphs: []Paragraph{
			{Text: title, SizePt: titleFontPt, Bold: true, Color: titleColor, Alignment: AlignCenter},
			{Text: artist, SizePt: titleArtistFontPt, Color: artistColor, Alignment: AlignCenter},
		},
	})

	d.Slides = append(d.Slides, slide)
}

// LyricSlide appends one scroll position. Layer order, back to front:
// background, every lyric line from the frame, the edge masks that dissolve
// scrolled-out lines, then the cutout and caption on top.
func (b *Builder) LyricSlide(d *Deck, title, artist string, frame layout.Frame) {
	var slide Slide

	if d.refs.background >= 0 {
		slide.Shapes = append(slide.Shapes, imageShape(d.refs.background, Box{Width: d.Width, Height: d.Height}))
	}

	for _, line := range frame.Lines {
		color := colorContext
		if line.Active {
			color = colorActive
		}
		slide.Shapes = append(slide.Shapes, Shape{
			Kind: ShapeText,
			Box: Box{
				X:      b.lyricBoxX,
				Y:      line.CenterY - b.lyricBoxHeight/2,
				Width:  b.lyricBoxWidth,
				Height: b.lyricBoxHeight,
			},
			Anchor: AnchorMiddle,
			Wrap:   true,
			Paragraphs: []Paragraph{
				{Text: line.Text, SizePt: line.SizePt, Bold: line.Bold, Color: color, Alignment: AlignCenter},
			},
		})
	}

	if d.refs.maskTop >= 0 {
		slide.Shapes = append(slide.Shapes, imageShape(d.refs.maskTop, Box{Width: d.Width, Height: b.maskHeight}))
	}
	if d.refs.maskBottom >= 0 {
		slide.Shapes = append(slide.Shapes, imageShape(d.refs.maskBottom, Box{
			Y:      d.Height - b.maskHeight,
			Width:  d.Width,
			Height: b.maskHeight,
		}))
	}

	if d.refs.cover >= 0 {
		slide.Shapes = append(slide.Shapes, imageShape(d.refs.cover, Box{
			X:      b.lyricCoverX,
			Y:      b.lyricCoverY,
			Width:  b.lyricCoverSize,
			Height: b.lyricCoverSize,
		}))
	}

	slide.Shapes = append(slide.Shapes, Shape{
		Kind: ShapeText,
		Box: Box{
			X:      b.lyricCoverX,
			Y:      b.lyricCaptionY,
			Width:  b.lyricCoverSize,
			Height: layout.Inches(lyricCaptionHeightInches),
		},
		Anchor: AnchorTop,
		Wrap:   true,
		Paragraphs: []Paragraph{
			{Text: title, SizePt: captionFontPt, Bold: true, Color: colorActive, Alignment: AlignCenter},
			{Text: artist, SizePt: captionArtistFontPt, Color: colorInfoArtist, Alignment: AlignCenter},
		},
	})

	d.Slides = append(d.Slides, slide)
}

func imageShape(index int, box Box) Shape {
	return Shape{Kind: ShapeImage, Box: box, Image: index}
}
