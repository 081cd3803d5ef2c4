package pipeline

import (
	"fmt"
	"image"

	"github.com/solemesh/solemesh/internal/imaging"
	"github.com/solemesh/solemesh/internal/mask"
	"github.com/solemesh/solemesh/internal/mesh"
	"github.com/solemesh/solemesh/internal/regions"
)

// Params is the full tuning surface of the pipeline. Every value is
// resolution-dependent; the defaults are calibrated for the reference
// scanner at 600dpi and features of roughly 100px diameter.
type Params struct {
	// KernelRadius is the disk structuring element radius for the
	// morphological filter, in pixels. It must be smaller than the radius
	// of the smallest feature to preserve and large enough to bridge the
	// noise gaps it fuses.
	KernelRadius int

	// TrimMargin is the fixed number of pixels shaved from each side of a
	// half-image to remove residual border fuzz.
	TrimMargin int

	// SpeckSize is the window span of the post-threshold noise opening;
	// isolated blobs narrower than this vanish.
	SpeckSize int

	// ContentThreshold is the intensity above which a grayscale pixel
	// counts as content during auto-cropping.
	ContentThreshold uint8

	// Thresholds parameterize the suspect classifier.
	Thresholds regions.Thresholds

	// Connectivity selects 4- or 8-connected component labeling.
	Connectivity regions.Connectivity

	// SplitHalves controls whether the scan is cut into two independent
	// impressions after border removal. Single-impression captures (and
	// synthetic test images) set this false.
	SplitHalves bool

	// InvertInput flips intensity after grayscale conversion, for scans
	// whose features are darker than the background.
	InvertInput bool

	// Border is the calibration-strip color signature.
	Border imaging.BorderSignature
}

// DefaultParams returns the reference calibration.
func DefaultParams() Params {
	return Params{
		KernelRadius:     10,
		TrimMargin:       5,
		SpeckSize:        3,
		ContentThreshold: 10,
		Thresholds:       regions.DefaultThresholds(),
		Connectivity:     regions.Connect8,
		SplitHalves:      true,
		Border:           imaging.DefaultBorderSignature(),
	}
}

// Validate rejects configurations that cannot produce a meaningful run.
// A non-positive kernel radius surfaces mask.ErrBadKernel here, at
// configuration time, before any pixel work happens.
func (p Params) Validate() error {
	if p.KernelRadius <= 0 {
		return fmt.Errorf("kernelRadius %d: %w", p.KernelRadius, mask.ErrBadKernel)
	}
	if p.TrimMargin < 0 {
		return fmt.Errorf("trimMargin must not be negative, got %d", p.TrimMargin)
	}
	if p.SpeckSize < 0 {
		return fmt.Errorf("speckSize must not be negative, got %d", p.SpeckSize)
	}
	if p.Thresholds.MinFillRatio <= 0 || p.Thresholds.MinFillRatio > 1 {
		return fmt.Errorf("minFillRatio must be in (0, 1], got %g", p.Thresholds.MinFillRatio)
	}
	if p.Thresholds.MaxExtent <= 0 {
		return fmt.Errorf("maxExtent must be positive, got %d", p.Thresholds.MaxExtent)
	}
	if p.Connectivity != regions.Connect4 && p.Connectivity != regions.Connect8 {
		return fmt.Errorf("connectivity must be 4 or 8, got %d", p.Connectivity)
	}
	return nil
}

// StageError reports which pipeline stage failed and why. Unwrap exposes the
// underlying sentinel so callers can branch with errors.Is.
type StageError struct {
	Stage string
	Side  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s (%s half): %v", e.Stage, e.Side, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// DumpFunc receives intermediate images for diagnostics. stage names the
// pipeline step that just ran, side identifies the half-image. Dumps are
// purely observational; the pipeline never reads them back.
type DumpFunc func(stage, side string, img image.Image)

// HalfResult is the terminal artifact for one impression: the diagnostic
// region table, the centroid points in the oriented scan's frame, and the
// triangulated mesh with its edge statistics.
type HalfResult struct {
	// Side is "left", "right", or "full".
	Side string `json:"side"`

	// Offset is the cumulative crop offset of the analyzed mask within
	// the oriented scan. Centroids already include it.
	Offset image.Point `json:"offset"`

	Table     *regions.Table `json:"table"`
	Points    []mesh.Point   `json:"points"`
	Mesh      *mesh.Mesh     `json:"mesh"`
	EdgeStats mesh.EdgeStats `json:"edge_stats"`

	// Err records why this half failed; nil on success. A failed half
	// carries no mesh, but keeps the table and points when the failure
	// happened after they were computed.
	Err error `json:"-"`
}

// Result collects the per-half artifacts of one scan.
type Result struct {
	Halves []HalfResult `json:"halves"`
}

// Failed reports whether every half of the run failed.
func (r *Result) Failed() bool {
	for _, h := range r.Halves {
		if h.Err == nil {
			return false
		}
	}
	return len(r.Halves) > 0
}

// Run executes the full pipeline on an oriented scan.
//
// The returned Result always describes every half that was attempted; a
// half that fails (for example the blank side of a single-impression scan)
// records its *StageError and the other half proceeds independently. The
// returned error is non-nil only when the parameters are invalid or every
// half failed, in which case it wraps the first half's failure.
func Run(img image.Image, p Params) (*Result, error) {
	return RunWithDump(img, p, nil)
}

// RunWithDump is Run with a diagnostic sink for intermediate images.
// A nil dump disables dumping.
func RunWithDump(img image.Image, p Params, dump DumpFunc) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	kernel, err := mask.DiskKernel(p.KernelRadius)
	if err != nil {
		return nil, err
	}
	if dump == nil {
		dump = func(string, string, image.Image) {}
	}

	// Stage 1: strip the calibration border and go grayscale.
	roi, roiOffset := imaging.RemoveBorder(img, p.Border)
	if p.InvertInput {
		roi = imaging.Invert(roi)
	}
	dump("01-border-removed", "full", roi)

	type half struct {
		side   string
		gray   *image.Gray
		offset image.Point
	}
	var halves []half
	if p.SplitHalves {
		left, right, rightOffset := imaging.SplitHalves(roi)
		halves = []half{
			{side: "left", gray: left, offset: roiOffset},
			{side: "right", gray: right, offset: roiOffset.Add(rightOffset)},
		}
	} else {
		halves = []half{{side: "full", gray: roi, offset: roiOffset}}
	}

	result := &Result{}
	for _, h := range halves {
		hr := runHalf(h.gray, h.side, h.offset, p, kernel, dump)
		result.Halves = append(result.Halves, hr)
	}

	if result.Failed() {
		return result, fmt.Errorf("all halves failed: %w", result.Halves[0].Err)
	}
	return result, nil
}

// runHalf executes stages 2-7 on one half-image. offset accumulates every
// crop so centroids land in the oriented scan's coordinate frame.
func runHalf(gray *image.Gray, side string, offset image.Point, p Params, kernel mask.StructuringElement, dump DumpFunc) HalfResult {
	fail := func(stage string, err error) HalfResult {
		return HalfResult{Side: side, Err: &StageError{Stage: stage, Side: side, Err: err}}
	}

	// Stage 2a-c: tighten to content, shave border fuzz, tighten again.
	cropped, off, ok := imaging.AutoCrop(gray, p.ContentThreshold)
	if !ok {
		return fail("binarize", mask.ErrEmptyRegion)
	}
	offset = offset.Add(off)

	trimmed, off, ok := imaging.TrimMargin(cropped, p.TrimMargin)
	if !ok {
		return fail("binarize", mask.ErrEmptyRegion)
	}
	offset = offset.Add(off)

	tight, off, ok := imaging.AutoCrop(trimmed, p.ContentThreshold)
	if !ok {
		return fail("binarize", mask.ErrEmptyRegion)
	}
	offset = offset.Add(off)
	dump("02-trimmed", side, tight)

	// Stage 2d-f: threshold, drop scanner grain, tighten once more.
	bin, err := mask.Binarize(tight)
	if err != nil {
		return fail("binarize", err)
	}
	despecked := mask.RemoveSpecks(bin, p.SpeckSize)
	m, off, ok := imaging.AutoCrop(despecked, 0)
	if !ok {
		return fail("binarize", mask.ErrEmptyRegion)
	}
	offset = offset.Add(off)
	dump("03-binarized", side, m)

	// Stage 3: size-calibrated double closing.
	cleaned := mask.Clean(m, kernel)
	if mask.CountForeground(cleaned) == 0 {
		return fail("clean", mask.ErrEmptyRegion)
	}
	dump("04-cleaned", side, cleaned)

	// Stages 4-5: classify regions, erase the suspects.
	table := regions.Analyze(cleaned, p.Connectivity, regions.ThresholdClassifier(p.Thresholds))
	featureMask := regions.Erase(cleaned, table.Suspects())
	dump("05-features", side, featureMask)

	// Stages 6-7: centroids in scan frame, then the mesh.
	points := regions.Centroids(table, float64(offset.X), float64(offset.Y))
	tri, err := mesh.Triangulate(points)
	if err != nil {
		// Keep the diagnostics: the table shows why too few features
		// survived to triangulate.
		hr := fail("mesh", err)
		hr.Offset = offset
		hr.Table = table
		hr.Points = points
		return hr
	}

	return HalfResult{
		Side:      side,
		Offset:    offset,
		Table:     table,
		Points:    points,
		Mesh:      tri,
		EdgeStats: tri.Stats(),
	}
}
