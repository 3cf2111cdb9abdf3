package testsupport

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func patternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x*7 + y*3) % 256),
				G: uint8((x*3 + y*11) % 256),
				B: uint8((x + y*5) % 256),
				A: 255,
			})
		}
	}
	return img
}

// CoverJPEG renders a small patterned JPEG usable as embedded cover art.
func CoverJPEG(t testing.TB, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, patternImage(width, height), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode cover jpeg: %v", err)
	}
	return buf.Bytes()
}

// CoverPNG renders a small patterned PNG usable as embedded cover art.
func CoverPNG(t testing.TB, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, patternImage(width, height)); err != nil {
		t.Fatalf("encode cover png: %v", err)
	}
	return buf.Bytes()
}
