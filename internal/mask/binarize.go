package mask

import (
	"fmt"
	"image"

	"github.com/ernyoke/imger/threshold"
)

// Binarize converts a grayscale image to a binary mask using Otsu's method.
//
// The cutoff is computed from the image histogram by maximizing between-class
// variance, so the rule adapts to each scan's exposure without per-dataset
// tuning. When the variance peaks over a whole range of cutoffs (a histogram
// with an empty gap between its two modes) the midpoint of that range is
// used, placing the cutoff between the modes. A pixel is Foreground iff its
// intensity is strictly greater than the cutoff.
//
// Returns ErrEmptyRegion if the image has no intensity split at all (uniform
// input) or the thresholded image contains no foreground (a blank half-image,
// or a scan of an empty bed).
func Binarize(gray *image.Gray) (*image.Gray, error) {
	cutoff := otsuCutoff(gray)
	if cutoff >= 255 {
		return nil, ErrEmptyRegion
	}
	bin, err := threshold.Threshold(gray, uint8(cutoff+1), threshold.ThreshBinary)
	if err != nil {
		return nil, fmt.Errorf("threshold at %d: %w", cutoff, err)
	}

	// The threshold package preserves the input origin; re-anchor and force
	// strict 0/255 values so downstream set arithmetic can compare bytes
	// directly.
	out := Clone(bin)
	for i, v := range out.Pix {
		if v != Background {
			out.Pix[i] = Foreground
		}
	}

	if CountForeground(out) == 0 {
		return nil, ErrEmptyRegion
	}
	return out, nil
}

// otsuCutoff returns the intensity t maximizing the between-class variance of
// the split {v <= t} / {v > t}. Ties are resolved to the midpoint of the
// maximizing range; for a uniform image no split exists and 255 is returned.
func otsuCutoff(gray *image.Gray) int {
	var hist [256]int
	b := gray.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[gray.GrayAt(x, y).Y]++
		}
	}

	total := b.Dx() * b.Dy()
	var sum float64
	for v, n := range hist {
		sum += float64(v) * float64(n)
	}

	var sumB float64
	wB := 0
	best := -1.0
	first, last := 255, 255
	for t := 0; t < 256; t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)
		between := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			first, last = t, t
		} else if between == best {
			last = t
		}
	}
	if best < 0 {
		return 255
	}
	return (first + last) / 2
}
