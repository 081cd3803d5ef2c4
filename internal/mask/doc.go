// Package mask implements binary mask production and morphological cleanup
// for outsole scans.
//
// A mask is a *image.Gray restricted to two values: Foreground (255) for
// content and Background (0) for everything else. Masks are produced by
// thresholding a grayscale scan and refined by morphological filtering before
// region analysis runs.
//
// # Binarization Rule
//
// Thresholding uses Otsu's method: the cutoff maximizing between-class
// variance is computed from the histogram (ties resolved to the midpoint of
// the maximizing range) and applied with the imger threshold package. Otsu
// was chosen over a fixed midpoint because scanner exposure varies between
// datasets; the rule is documented here so results are reproducible, and the
// choice is deliberately the only binarization rule in the package.
//
// # Morphology
//
// Dilation and erosion use a disk structuring element so that kernel shape
// and radius can be swapped without touching callers. Pixels outside the
// image are treated as background by dilation and as foreground by erosion,
// which preserves the duality Erode = Invert ∘ Dilate ∘ Invert exactly. That
// duality is what makes the double-closing filter in Clean idempotent.
//
// All operations return new masks; inputs are never mutated.
package mask
