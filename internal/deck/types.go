package deck

import (
	"fmt"

	"lyricdeck/internal/artwork"
)

// Alignment is a horizontal paragraph alignment. The values are the OOXML
// algn tokens.
type Alignment string

const (
	AlignLeft   Alignment = "l"
	AlignCenter Alignment = "ctr"
	AlignRight  Alignment = "r"
)

// Anchor is a vertical text-frame anchor. The values are the OOXML anchor
// tokens.
type Anchor string

const (
	AnchorTop    Anchor = "t"
	AnchorMiddle Anchor = "ctr"
	AnchorBottom Anchor = "b"
)

// RGB is a solid text fill color.
type RGB struct {
	R, G, B uint8
}

// Hex renders the color as upper-case RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Box is a shape's offset and extent in EMU from the slide's top-left
// corner.
type Box struct {
	X      int64
	Y      int64
	Width  int64
	Height int64
}

// ShapeKind selects which payload fields of a Shape apply.
type ShapeKind int

const (
	ShapeImage ShapeKind = iota
	ShapeText
)

// Paragraph is one styled line of text inside a text shape.
type Paragraph struct {
	Text      string
	SizePt    int
	Bold      bool
	Color     RGB
	Alignment Alignment
}

// Shape is one drawable element. For ShapeImage, Image indexes into
// Deck.Images; for ShapeText, Paragraphs, Anchor, and Wrap describe the text
// frame.
type Shape struct {
	Kind       ShapeKind
	Box        Box
	Image      int
	Paragraphs []Paragraph
	Anchor     Anchor
	Wrap       bool
}

// Slide is an ordered shape list, back to front.
type Slide struct {
	Shapes []Shape
}

// Deck is a complete presentation: canvas size in EMU, slides in playback
// order, and the image assets the slides reference by index.
type Deck struct {
	Name   string
	Width  int64
	Height int64
	Slides []Slide
	Images []artwork.Image

	refs assetRefs
}

// assetRefs remembers where the standard rasters landed in Images. A
// negative index means the asset is absent.
type assetRefs struct {
	background int
	cover      int
	maskTop    int
	maskBottom int
}

func (d *Deck) addImage(img artwork.Image) int {
	d.Images = append(d.Images, img)
	return len(d.Images) - 1
}
