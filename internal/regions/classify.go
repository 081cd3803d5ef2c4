package regions

// Classifier decides whether a region is suspect (true = erase it). The
// pipeline treats the classifier as opaque; swapping it is how support for a
// different outsole pattern is added without touching any other stage.
type Classifier func(Region) bool

// Thresholds parameterizes the default shape classifier. The defaults are
// calibrated against features of roughly 100px diameter and are
// resolution-dependent; datasets scanned at another DPI must recalibrate.
type Thresholds struct {
	// MinFillRatio is the smallest acceptable count/bbox-area ratio.
	// Legitimate circular features sit near π/4 ≈ 0.785; anything much
	// flatter is a merged blob or a stray artifact.
	MinFillRatio float64 `json:"min_fill_ratio" yaml:"minFillRatio"`

	// MaxExtent is the largest acceptable bounding-box span on either
	// axis, in pixels.
	MaxExtent int `json:"max_extent" yaml:"maxExtent"`
}

// DefaultThresholds returns the calibration for the reference dot pattern:
// fill ratio at least 0.7, extents at most 130px.
func DefaultThresholds() Thresholds {
	return Thresholds{MinFillRatio: 0.7, MaxExtent: 130}
}

// ThresholdClassifier builds the default suspect predicate: a region is
// suspect when its fill ratio is below MinFillRatio or either extent exceeds
// MaxExtent.
func ThresholdClassifier(t Thresholds) Classifier {
	return func(r Region) bool {
		return r.FillRatio < t.MinFillRatio || r.XExtent > t.MaxExtent || r.YExtent > t.MaxExtent
	}
}
