package artwork

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"lyricdeck/internal/config"
	"lyricdeck/internal/services"
)

const jpegQuality = 95

// Image is an encoded raster ready for embedding into a deck.
type Image struct {
	Data   []byte
	Format string // "jpeg" or "png"
	Width  int
	Height int
}

// Assets bundles the rasters composited from one track's cover art.
type Assets struct {
	Background Image
	Cover      Image
	MaskTop    Image
	MaskBottom Image
}

// Compositor turns embedded cover art into deck rasters.
type Compositor struct {
	width      int
	height     int
	blurSigma  float64
	brightness float64
	bandHeight int
	fade       int
}

// NewCompositor derives pixel geometry from the render configuration. The
// mask band height is the canvas-relative share of the background raster.
func NewCompositor(cfg *config.Config) *Compositor {
	render := cfg.Render
	bandHeight := int(math.Round(float64(render.BackgroundHeight) * render.MaskBandInches / render.CanvasHeightInches))
	if bandHeight > render.BackgroundHeight {
		bandHeight = render.BackgroundHeight
	}
	fade := render.MaskFadePixels
	if fade > bandHeight {
		fade = bandHeight
	}
	return &Compositor{
		width:      render.BackgroundWidth,
		height:     render.BackgroundHeight,
		blurSigma:  render.BackgroundBlurSigma,
		brightness: render.BackgroundBrightness,
		bandHeight: bandHeight,
		fade:       fade,
	}
}

// Composite builds all deck rasters from the embedded cover bytes. Absent
// or undecodable cover art fails with the missing-artwork marker so the
// caller can apply the configured policy.
func (c *Compositor) Composite(coverBytes []byte) (*Assets, error) {
	if len(coverBytes) == 0 {
		return nil, services.Wrap(services.ErrMissingArtwork, "artwork", "decode cover", "track has no embedded cover art", nil)
	}
	src, err := imaging.Decode(bytes.NewReader(coverBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrMissingArtwork, "artwork", "decode cover", "embedded cover art is not a decodable image", err)
	}

	background := imaging.Resize(src, c.width, c.height, imaging.Lanczos)
	background = imaging.Blur(background, c.blurSigma)
	background = darken(background, c.brightness)

	bgImage, err := encodeJPEG(background)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "artwork", "encode background", "", err)
	}
	coverImage, err := encodeJPEG(src)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "artwork", "encode cover", "", err)
	}

	maskTop := imaging.Crop(background, image.Rect(0, 0, c.width, c.bandHeight))
	applyVerticalFade(maskTop, c.fade, fadeAtBottom)
	maskBottom := imaging.Crop(background, image.Rect(0, c.height-c.bandHeight, c.width, c.height))
	applyVerticalFade(maskBottom, c.fade, fadeAtTop)

	topImage, err := encodePNG(maskTop)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "artwork", "encode top mask", "", err)
	}
	bottomImage, err := encodePNG(maskBottom)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "artwork", "encode bottom mask", "", err)
	}

	return &Assets{
		Background: bgImage,
		Cover:      coverImage,
		MaskTop:    topImage,
		MaskBottom: bottomImage,
	}, nil
}

// darken scales every color channel by factor, matching a multiplicative
// brightness adjustment.
func darken(img *image.NRGBA, factor float64) *image.NRGBA {
	if factor < 0 {
		factor = 0
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: scaleChannel(c.R, factor),
			G: scaleChannel(c.G, factor),
			B: scaleChannel(c.B, factor),
			A: c.A,
		}
	})
}

func scaleChannel(v uint8, factor float64) uint8 {
	scaled := math.Round(float64(v) * factor)
	if scaled > 255 {
		return 255
	}
	if scaled < 0 {
		return 0
	}
	return uint8(scaled)
}

type fadeEdge int

const (
	// fadeAtBottom leaves the top rows opaque and dissolves toward the
	// band's bottom edge.
	fadeAtBottom fadeEdge = iota
	// fadeAtTop dissolves from transparent at the band's top edge to
	// opaque further down.
	fadeAtTop
)

// applyVerticalFade rewrites the alpha channel with a linear gradient over
// the fade rows; all other rows stay fully opaque.
func applyVerticalFade(img *image.NRGBA, fade int, edge fadeEdge) {
	bounds := img.Bounds()
	height := bounds.Dy()
	width := bounds.Dx()
	if fade <= 0 {
		return
	}
	if fade > height {
		fade = height
	}
	for y := 0; y < height; y++ {
		alpha := 255
		switch edge {
		case fadeAtBottom:
			if y >= height-fade {
				alpha = 255 * (height - y) / fade
			}
		case fadeAtTop:
			if y < fade {
				alpha = 255 * y / fade
			}
		}
		if alpha >= 255 {
			continue
		}
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < width; x++ {
			row[x*4+3] = uint8(alpha)
		}
	}
}

func encodeJPEG(img image.Image) (Image, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return Image{}, err
	}
	bounds := img.Bounds()
	return Image{Data: buf.Bytes(), Format: "jpeg", Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

func encodePNG(img image.Image) (Image, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return Image{}, err
	}
	bounds := img.Bounds()
	return Image{Data: buf.Bytes(), Format: "png", Width: bounds.Dx(), Height: bounds.Dy()}, nil
}
