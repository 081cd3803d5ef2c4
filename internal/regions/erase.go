package regions

import (
	"image"
	"image/color"

	"github.com/solemesh/solemesh/internal/mask"
)

// Erase removes the pixel sets of the given regions from a mask (set
// subtraction on the foreground) and returns the result as a new mask.
//
// Erasing no regions returns an identical copy of the input. One analysis
// pass feeds one erase pass; the function never loops internally, so callers
// that want a fixpoint re-run Analyze on the output and erase again. On the
// output of a single Analyze+Erase round the surviving regions are exactly
// the kept ones, so an immediate second round finds no new suspects.
func Erase(m *image.Gray, suspects []Region) *image.Gray {
	out := mask.Clone(m)
	b := m.Bounds()
	for _, r := range suspects {
		for _, p := range r.Pixels {
			out.SetGray(p.X-b.Min.X, p.Y-b.Min.Y, color.Gray{Y: mask.Background})
		}
	}
	return out
}
