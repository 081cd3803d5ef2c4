package mask

import (
	"errors"
	"image"
	"image/color"
)

// Pixel values used by every mask in the pipeline.
const (
	Background uint8 = 0
	Foreground uint8 = 255
)

// ErrEmptyRegion is returned when a stage produces a mask with no foreground
// pixels. Callers skip or flag the scan; an empty half-image is routine (a
// single-impression scan has one blank half) and must not abort a batch.
var ErrEmptyRegion = errors.New("no foreground content after threshold")

// ErrBadKernel is returned when a structuring element is requested with a
// non-positive radius. This is a configuration error and is rejected before
// any pixel work happens.
var ErrBadKernel = errors.New("structuring element radius must be positive")

// Clone returns an independent copy of a mask anchored at (0,0).
func Clone(m *image.Gray) *image.Gray {
	b := m.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		srcOff := m.PixOffset(b.Min.X, b.Min.Y+y)
		dstOff := out.PixOffset(0, y)
		copy(out.Pix[dstOff:dstOff+b.Dx()], m.Pix[srcOff:srcOff+b.Dx()])
	}
	return out
}

// Invert returns a new mask with foreground and background swapped.
func Invert(m *image.Gray) *image.Gray {
	b := m.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if m.GrayAt(b.Min.X+x, b.Min.Y+y).Y == Background {
				out.SetGray(x, y, color.Gray{Y: Foreground})
			}
		}
	}
	return out
}

// CountForeground returns the number of foreground pixels in a mask.
func CountForeground(m *image.Gray) int {
	b := m.Bounds()
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.GrayAt(x, y).Y != Background {
				n++
			}
		}
	}
	return n
}

// IsForeground reports whether the pixel at (x, y) is foreground. Pixels
// outside the mask bounds are background.
func IsForeground(m *image.Gray, x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(m.Bounds()) {
		return false
	}
	return m.GrayAt(x, y).Y != Background
}
