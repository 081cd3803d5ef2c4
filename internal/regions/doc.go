// Package regions labels connected components of a cleaned mask and decides
// which of them are outsole features.
//
// Each maximal connected set of foreground pixels becomes a Region carrying
// shape statistics: pixel count, median position, extents, bounding-box area
// and fill ratio. A pluggable classifier then flags suspect regions (merged
// blobs, stray scan artifacts, non-feature structure) for erasure.
//
// # Connectivity
//
// Labeling defaults to 8-connectivity (diagonal neighbors join a region);
// 4-connectivity is available for datasets where diagonal bridges between
// adjacent dots cause spurious merges. The choice is a parameter, not a
// constant, because neither convention is universally right.
//
// # The Shape Heuristic
//
// The default classifier keeps regions that are roughly circular at known
// scale: fill ratio at least 0.7 (a perfect disk fills π/4 ≈ 0.785 of its
// bounding box) and extents of at most 130 pixels per axis. This heuristic
// is calibrated for one pattern type and does not generalize to other
// outsoles; it is expressed as a replaceable predicate so recalibration
// never touches the pipeline structure.
//
// # Centroid Approximation
//
// A region's position is its median x and median y, not its center of mass.
// The median is skew-tolerant for the convex, roughly circular features this
// package targets but is knowingly inaccurate for concave shapes; the shape
// classifier and the median approximation are coupled assumptions and must
// be revisited together.
package regions
