package mask

import (
	"image"
	"image/color"
)

// StructuringElement is a fixed disk-shaped kernel used to define
// neighborhood reach in dilation and erosion.
//
// The disk contains every integer offset (dx, dy) with dx²+dy² ≤ radius², so
// it is symmetric around its center and is used identically by both
// operations.
type StructuringElement struct {
	radius  int
	offsets []image.Point
}

// DiskKernel builds a disk structuring element of the given radius.
//
// The radius must be positive; ErrBadKernel is returned otherwise. Radius
// choice is the critical tuning knob of the morphological filter: it must be
// smaller than the radius of the smallest feature to be preserved, and large
// enough to bridge the noise gaps it is meant to fuse.
func DiskKernel(radius int) (StructuringElement, error) {
	if radius <= 0 {
		return StructuringElement{}, ErrBadKernel
	}
	var offsets []image.Point
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				offsets = append(offsets, image.Point{X: dx, Y: dy})
			}
		}
	}
	return StructuringElement{radius: radius, offsets: offsets}, nil
}

// Radius returns the radius the kernel was built with.
func (k StructuringElement) Radius() int { return k.radius }

// Dilate grows mask foreground by the kernel's shape: a pixel is foreground
// in the output when any kernel offset lands on a foreground input pixel.
// Offsets falling outside the mask are treated as background.
func Dilate(m *image.Gray, k StructuringElement) *image.Gray {
	b := m.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			for _, off := range k.offsets {
				if IsForeground(m, b.Min.X+x+off.X, b.Min.Y+y+off.Y) {
					out.SetGray(x, y, color.Gray{Y: Foreground})
					break
				}
			}
		}
	}
	return out
}

// Erode shrinks mask foreground by the kernel's shape: a pixel survives only
// when every kernel offset inside the mask lands on foreground. Offsets
// falling outside the mask do not veto survival (the dual of Dilate's
// out-of-bounds rule).
func Erode(m *image.Gray, k StructuringElement) *image.Gray {
	b := m.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			keep := true
			for _, off := range k.offsets {
				px, py := b.Min.X+x+off.X, b.Min.Y+y+off.Y
				if !(image.Point{X: px, Y: py}).In(b) {
					continue
				}
				if m.GrayAt(px, py).Y == Background {
					keep = false
					break
				}
			}
			if keep {
				out.SetGray(x, y, color.Gray{Y: Foreground})
			}
		}
	}
	return out
}

// Close fills background gaps narrower than the kernel: dilate then erode.
func Close(m *image.Gray, k StructuringElement) *image.Gray {
	return Erode(Dilate(m, k), k)
}

// Open removes foreground specks narrower than the kernel: erode then dilate.
func Open(m *image.Gray, k StructuringElement) *image.Gray {
	return Dilate(Erode(m, k), k)
}

// Clean applies the pipeline's two-pass noise suppression filter.
//
// The sequence is dilate then erode on the logically inverted mask,
// re-invert, then dilate and erode again: a closing applied first to the
// inverted mask and then to the restored polarity, which algebraically
// reduces to a closing of the opening. Speckle smaller than the kernel
// disappears from both polarities, gaps inside features are fused, and
// feature boundaries never grow beyond the kernel's reach.
//
// The filter is idempotent: Clean(Clean(m, k), k) equals Clean(m, k)
// pixel-for-pixel, so repeated application cannot grow foreground
// indefinitely.
func Clean(m *image.Gray, k StructuringElement) *image.Gray {
	first := Close(Invert(m), k)
	return Close(Invert(first), k)
}
