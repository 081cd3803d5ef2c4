package regions

import (
	"image"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/solemesh/solemesh/internal/mask"
)

// Connectivity selects which pixels count as neighbors during labeling.
type Connectivity int

const (
	// Connect4 joins pixels sharing an edge.
	Connect4 Connectivity = 4
	// Connect8 additionally joins pixels sharing only a corner.
	Connect8 Connectivity = 8
)

var (
	offsets4 = []image.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}
	offsets8 = append([]image.Point{
		{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
	}, offsets4...)
)

// Region is a maximal connected set of foreground pixels with its shape
// statistics. Extents are inclusive pixel spans (a single-pixel region has
// extent 1 on both axes), which keeps bounding-box area positive and the
// fill ratio inside (0, 1] for every region.
type Region struct {
	// ID is the 1-based label assigned in scan order.
	ID int `json:"id"`

	// Pixels holds every pixel coordinate of the region.
	Pixels []image.Point `json:"-"`

	// Count is len(Pixels).
	Count int `json:"count"`

	// MedianX and MedianY are the region's median position.
	MedianX float64 `json:"median_x"`
	MedianY float64 `json:"median_y"`

	// XExtent and YExtent are the inclusive bounding-box spans.
	XExtent int `json:"x_extent"`
	YExtent int `json:"y_extent"`

	// BBoxArea is XExtent × YExtent.
	BBoxArea int `json:"bbox_area"`

	// FillRatio is Count / BBoxArea. A perfect disk scores ≈ π/4.
	FillRatio float64 `json:"fill_ratio"`

	// Suspect marks the region for erasure.
	Suspect bool `json:"suspect"`
}

// Table is the ordered collection of regions found in one mask. It is
// computed once per mask and not mutated afterward.
type Table struct {
	Regions []Region `json:"regions"`
}

// Kept returns the regions that survived classification, in label order.
func (t *Table) Kept() []Region {
	var kept []Region
	for _, r := range t.Regions {
		if !r.Suspect {
			kept = append(kept, r)
		}
	}
	return kept
}

// Suspects returns the regions flagged for erasure, in label order.
func (t *Table) Suspects() []Region {
	var sus []Region
	for _, r := range t.Regions {
		if r.Suspect {
			sus = append(sus, r)
		}
	}
	return sus
}

// Analyze labels the connected components of a mask, computes per-region
// shape statistics, and classifies each region with the given predicate.
//
// Pixels are visited in scan order, so region IDs are deterministic for a
// given mask. A nil classifier keeps every region.
func Analyze(m *image.Gray, conn Connectivity, classify Classifier) *Table {
	b := m.Bounds()
	neighbors := offsets8
	if conn == Connect4 {
		neighbors = offsets4
	}

	visited := make([]bool, b.Dx()*b.Dy())
	index := func(x, y int) int { return (y-b.Min.Y)*b.Dx() + (x - b.Min.X) }

	table := &Table{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if visited[index(x, y)] || !mask.IsForeground(m, x, y) {
				continue
			}
			pixels := collect(m, visited, index, image.Point{X: x, Y: y}, neighbors)
			r := describe(len(table.Regions)+1, pixels)
			if classify != nil {
				r.Suspect = classify(r)
			}
			table.Regions = append(table.Regions, r)
		}
	}
	return table
}

// collect flood-fills one component from a seed pixel. The fill is iterative
// (stack-based) so deeply nested or very large regions cannot overflow the
// goroutine stack.
func collect(m *image.Gray, visited []bool, index func(x, y int) int, seed image.Point, neighbors []image.Point) []image.Point {
	var pixels []image.Point
	stack := []image.Point{seed}
	visited[index(seed.X, seed.Y)] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		pixels = append(pixels, p)

		for _, off := range neighbors {
			n := image.Point{X: p.X + off.X, Y: p.Y + off.Y}
			if !n.In(m.Bounds()) || visited[index(n.X, n.Y)] {
				continue
			}
			if !mask.IsForeground(m, n.X, n.Y) {
				continue
			}
			visited[index(n.X, n.Y)] = true
			stack = append(stack, n)
		}
	}
	return pixels
}

// describe computes the shape statistics for one component.
func describe(id int, pixels []image.Point) Region {
	xs := make([]float64, len(pixels))
	ys := make([]float64, len(pixels))
	minX, minY := pixels[0].X, pixels[0].Y
	maxX, maxY := minX, minY
	for i, p := range pixels {
		xs[i] = float64(p.X)
		ys[i] = float64(p.Y)
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	sort.Float64s(xs)
	sort.Float64s(ys)

	r := Region{
		ID:      id,
		Pixels:  pixels,
		Count:   len(pixels),
		MedianX: stat.Quantile(0.5, stat.Empirical, xs, nil),
		MedianY: stat.Quantile(0.5, stat.Empirical, ys, nil),
		XExtent: maxX - minX + 1,
		YExtent: maxY - minY + 1,
	}
	r.BBoxArea = r.XExtent * r.YExtent
	r.FillRatio = float64(r.Count) / float64(r.BBoxArea)
	return r
}
