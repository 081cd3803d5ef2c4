package mask

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
)

// RemoveSpecks erases isolated foreground noise from a freshly thresholded
// mask with an erosion-then-dilation pass (an opening).
//
// The window spans size pixels in each direction (size 3 gives the classic
// 3×3 window), so isolated blobs narrower than the window vanish while
// anything feature-sized survives intact. This runs once, right after
// binarization, before the disk-kernel filter takes over; it exists to keep
// single-pixel scanner grain from ever reaching region analysis.
//
// The min/max filtering itself is bild's erode/dilate pair; the result is
// renormalized to strict 0/255 values.
func RemoveSpecks(m *image.Gray, size int) *image.Gray {
	if size <= 1 {
		return Clone(m)
	}
	radius := float64(size / 2)
	opened := effect.Dilate(effect.Erode(m, radius), radius)
	return fromRGBA(opened)
}

// fromRGBA collapses a bild RGBA result back into a strict binary mask.
// bild's morphology operates per channel on gray input, so all channels
// agree; red is read directly and thresholded at the midpoint.
func fromRGBA(rgba *image.RGBA) *image.Gray {
	b := rgba.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := rgba.PixOffset(b.Min.X+x, b.Min.Y+y)
			if rgba.Pix[i] >= 128 {
				out.SetGray(x, y, color.Gray{Y: Foreground})
			}
		}
	}
	return out
}
