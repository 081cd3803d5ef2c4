package regions

import (
	"github.com/solemesh/solemesh/internal/mesh"
)

// Centroids produces one point per kept region: its precomputed median
// position, in label order. The offset is added to both coordinates so
// points can be reported in the frame of the original scan rather than the
// cropped mask.
func Centroids(t *Table, offsetX, offsetY float64) []mesh.Point {
	var points []mesh.Point
	for _, r := range t.Kept() {
		points = append(points, mesh.Point{
			X: r.MedianX + offsetX,
			Y: r.MedianY + offsetY,
		})
	}
	return points
}
