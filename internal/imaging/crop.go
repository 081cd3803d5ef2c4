package imaging

import (
	"image"
)

// CropGray extracts a rectangular window from a grayscale image.
//
// The window is given in the image's own coordinate space and must be
// non-empty and fully inside the image. The returned image is a copy anchored
// at (0,0); it shares no pixels with the input.
func CropGray(gray *image.Gray, rect image.Rectangle) *image.Gray {
	rect = rect.Intersect(gray.Bounds())
	out := image.NewGray(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := 0; y < rect.Dy(); y++ {
		srcOff := gray.PixOffset(rect.Min.X, rect.Min.Y+y)
		dstOff := out.PixOffset(0, y)
		copy(out.Pix[dstOff:dstOff+rect.Dx()], gray.Pix[srcOff:srcOff+rect.Dx()])
	}
	return out
}

// AutoCrop tightens a grayscale image to the bounding box of its content.
//
// A pixel counts as content when its intensity exceeds threshold. Scans are
// bright-on-dark at this point in the pipeline, so a small threshold (10 or
// so) separates content from the empty scanner bed.
//
// Returns the cropped image (anchored at (0,0)), the offset of the crop
// window within the input, and whether any content was found. When ok is
// false the input had no pixel above threshold and the returned image is nil.
func AutoCrop(gray *image.Gray, threshold uint8) (*image.Gray, image.Point, bool) {
	b := gray.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray.GrayAt(x, y).Y > threshold {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if maxX < minX || maxY < minY {
		return nil, image.Point{}, false
	}

	rect := image.Rect(minX, minY, maxX+1, maxY+1)
	return CropGray(gray, rect), image.Point{X: minX - b.Min.X, Y: minY - b.Min.Y}, true
}

// TrimMargin shaves a fixed margin off all four sides of a grayscale image.
//
// This removes residual border fuzz that survives the color-signature crop:
// a ragged line of dark pixels where the ruler strip was torn off the bed.
//
// Returns the trimmed image, the offset of the trim window (margin, margin),
// and whether the image was large enough to trim. When the image is smaller
// than 2*margin in either dimension, ok is false and the image is nil.
func TrimMargin(gray *image.Gray, margin int) (*image.Gray, image.Point, bool) {
	if margin <= 0 {
		return CropGray(gray, gray.Bounds()), image.Point{}, true
	}
	b := gray.Bounds()
	if b.Dx() <= 2*margin || b.Dy() <= 2*margin {
		return nil, image.Point{}, false
	}
	rect := image.Rect(b.Min.X+margin, b.Min.Y+margin, b.Max.X-margin, b.Max.Y-margin)
	return CropGray(gray, rect), image.Point{X: margin, Y: margin}, true
}

// SplitHalves cuts a grayscale image into independent left and right halves.
//
// An outsole scan carries two adjacent impressions side by side; each half is
// processed as its own image from this point on. The right half's offset
// within the input is returned so its coordinates can be mapped back; the
// left half's offset is always zero.
func SplitHalves(gray *image.Gray) (left, right *image.Gray, rightOffset image.Point) {
	b := gray.Bounds()
	mid := b.Min.X + b.Dx()/2
	left = CropGray(gray, image.Rect(b.Min.X, b.Min.Y, mid, b.Max.Y))
	right = CropGray(gray, image.Rect(mid, b.Min.Y, b.Max.X, b.Max.Y))
	return left, right, image.Point{X: mid - b.Min.X, Y: 0}
}
