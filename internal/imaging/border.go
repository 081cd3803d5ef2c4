package imaging

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// BorderSignature describes the color profile of the calibration strip glued
// to the scanner bed.
//
// The strip is a warm-colored ruler (yellow through red hues) that is much
// brighter in the red and green channels than in blue. A pixel matches the
// signature when all three conditions hold:
//
//   - mean of red and green is at least MinWarmth
//   - blue is at most BlueRatio times that mean
//   - the hue falls in the warm band [0°, MaxHue] ∪ [MinWrapHue, 360°)
//     with saturation of at least MinSaturation
//
// The hue gate uses the HSV decomposition from go-colorful and keeps gray or
// white content (saturation near zero) from ever matching, no matter how
// bright it is.
type BorderSignature struct {
	MinWarmth     float64 // minimum (R+G)/2, in [0,1]
	BlueRatio     float64 // maximum B relative to (R+G)/2
	MaxHue        float64 // upper bound of the warm hue band, degrees
	MinWrapHue    float64 // lower bound of the wrap-around red band, degrees
	MinSaturation float64 // minimum HSV saturation, in [0,1]
}

// DefaultBorderSignature returns the signature calibrated against the yellow
// ruler strips on the reference scanner.
func DefaultBorderSignature() BorderSignature {
	return BorderSignature{
		MinWarmth:     0.45,
		BlueRatio:     0.40,
		MaxHue:        75,
		MinWrapHue:    330,
		MinSaturation: 0.35,
	}
}

// Matches reports whether a single pixel color fits the border signature.
func (s BorderSignature) Matches(c colorful.Color) bool {
	warmth := (c.R + c.G) / 2
	if warmth < s.MinWarmth {
		return false
	}
	if c.B > s.BlueRatio*warmth {
		return false
	}
	h, sat, _ := c.Hsv()
	if sat < s.MinSaturation {
		return false
	}
	return h <= s.MaxHue || h >= s.MinWrapHue
}

// RemoveBorder strips the calibration/ruler region from a raw scan and
// returns the grayscale region of interest.
//
// Parameters:
//   - img: Raw multi-channel scan. The calibration strip is expected at the
//     image edges but no particular placement is assumed.
//   - sig: Color signature of the strip; use DefaultBorderSignature() unless
//     the dataset uses a different ruler.
//
// Returns:
//   - *image.Gray: Grayscale crop covering the bounding box of all pixels
//     that do NOT match the border signature, anchored at (0,0).
//   - image.Point: Offset of the returned crop within the input image, for
//     mapping coordinates back to the raw scan frame.
//
// If no pixel matches the signature the whole image is returned uncropped
// (offset zero); a scan without a ruler strip never fails. If every pixel
// matches the signature there is no region of interest and the same fallback
// applies.
func RemoveBorder(img image.Image, sig BorderSignature) (*image.Gray, image.Point) {
	bounds := img.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1
	matched := false

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if ok && sig.Matches(c) {
				matched = true
				continue
			}
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

	if !matched || maxX < minX || maxY < minY {
		return Grayscale(img), image.Point{}
	}

	roi := imaging.Crop(img, image.Rect(minX, minY, maxX+1, maxY+1))
	return Grayscale(roi), image.Point{X: minX - bounds.Min.X, Y: minY - bounds.Min.Y}
}
