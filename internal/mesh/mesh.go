// Package mesh triangulates feature centroids into a planar mesh.
//
// The mesh is the comparison artifact of the pipeline: a Delaunay
// triangulation over the centroid set, with vertices, triangles, and a unique
// edge list. Triangulations of two scans of the same outsole can then be
// compared structurally without ever revisiting pixels.
package mesh

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/fogleman/delaunay"
)

// ErrInsufficientPoints is returned when fewer than three distinct,
// non-collinear points are available. Triangulation is undefined in that
// case and the failure is surfaced instead of producing a degenerate mesh.
var ErrInsufficientPoints = errors.New("need at least 3 non-collinear points to triangulate")

// Point is a real-valued 2D coordinate, one per kept region (its median
// position in the scan frame).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Mesh is a planar triangulation over a point set: no two edges cross and
// the triangles partition the convex hull of the points. A Mesh is built
// once per scan and read-only afterward.
type Mesh struct {
	// Points are the mesh vertices in insertion order after deduplication.
	Points []Point `json:"points"`

	// Triangles holds index triplets into Points, one per triangle.
	Triangles [][3]int `json:"triangles"`

	// Edges holds unique undirected edges as index pairs (low, high),
	// sorted lexicographically.
	Edges [][2]int `json:"edges"`
}

// Triangulate builds a Delaunay triangulation over the given points.
//
// Exact duplicate coordinates are dropped before triangulation; duplicates
// are routine when two regions collapse to the same median pixel and are not
// an error. After deduplication at least three non-collinear points must
// remain or ErrInsufficientPoints is returned (wrapped with the underlying
// triangulator detail when there is one).
func Triangulate(points []Point) (*Mesh, error) {
	unique := dedupe(points)
	if len(unique) < 3 {
		return nil, fmt.Errorf("%w: have %d distinct points", ErrInsufficientPoints, len(unique))
	}

	input := make([]delaunay.Point, len(unique))
	for i, p := range unique {
		input[i] = delaunay.Point{X: p.X, Y: p.Y}
	}

	tri, err := delaunay.Triangulate(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientPoints, err)
	}
	if len(tri.Triangles) == 0 {
		// Collinear input triangulates to nothing on some triangulator
		// versions instead of erroring.
		return nil, fmt.Errorf("%w: all %d points are collinear", ErrInsufficientPoints, len(unique))
	}

	m := &Mesh{Points: unique}
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		m.Triangles = append(m.Triangles, [3]int{
			tri.Triangles[i],
			tri.Triangles[i+1],
			tri.Triangles[i+2],
		})
	}
	m.Edges = uniqueEdges(m.Triangles)
	return m, nil
}

// EdgeStats summarizes the triangulation's edge lengths. Downstream
// comparison consumes these before anything else: gross scale or layout
// differences between two scans show up here immediately.
type EdgeStats struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
}

// Stats computes edge-length statistics for the mesh.
func (m *Mesh) Stats() EdgeStats {
	s := EdgeStats{Count: len(m.Edges), Min: math.Inf(1)}
	var total float64
	for _, e := range m.Edges {
		a, b := m.Points[e[0]], m.Points[e[1]]
		d := math.Hypot(a.X-b.X, a.Y-b.Y)
		total += d
		if d < s.Min {
			s.Min = d
		}
		if d > s.Max {
			s.Max = d
		}
	}
	if s.Count == 0 {
		s.Min = 0
		return s
	}
	s.Mean = total / float64(s.Count)
	return s
}

func dedupe(points []Point) []Point {
	seen := make(map[Point]struct{}, len(points))
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func uniqueEdges(triangles [][3]int) [][2]int {
	seen := make(map[[2]int]struct{}, len(triangles)*3)
	for _, t := range triangles {
		for _, pair := range [3][2]int{{t[0], t[1]}, {t[1], t[2]}, {t[2], t[0]}} {
			if pair[0] > pair[1] {
				pair[0], pair[1] = pair[1], pair[0]
			}
			seen[pair] = struct{}{}
		}
	}
	edges := make([][2]int, 0, len(seen))
	for e := range seen {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	return edges
}
