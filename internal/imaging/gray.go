package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
)

// Grayscale converts a scan to a single-channel grayscale image.
//
// Conversion uses luminance weighting (via bild's grayscale filter) rather
// than a naive channel average, so colored scan artifacts keep a contrast
// profile close to what the flatbed sensor recorded. The returned image has
// bounds anchored at (0,0).
func Grayscale(img image.Image) *image.Gray {
	rgba := effect.Grayscale(img)
	b := rgba.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			// All three channels are equal after the grayscale filter;
			// take red directly instead of re-weighting.
			i := rgba.PixOffset(b.Min.X+x, b.Min.Y+y)
			out.SetGray(x, y, color.Gray{Y: rgba.Pix[i]})
		}
	}
	return out
}

// Invert returns a new grayscale image with each pixel v replaced by 255-v.
// Scans with dark features on a light background are inverted so that
// downstream stages can treat bright pixels as content.
func Invert(gray *image.Gray) *image.Gray {
	b := gray.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.SetGray(x, y, color.Gray{Y: 255 - gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y})
		}
	}
	return out
}
