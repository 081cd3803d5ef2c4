// Package pipeline composes the outsole fingerprint stages into one run.
//
// The stages execute strictly in order (border removal, binarization and
// trimming, morphological cleanup, region analysis, suspect erasure, centroid
// extraction, triangulation), each stage a pure transformation of the
// previous stage's output. No stage holds a back-reference to an earlier
// image and no stage touches shared state, so whole runs are freely
// parallel across scans.
//
// # Error Propagation
//
// Each stage validates its own preconditions and returns a typed failure
// instead of panicking through the pipeline. Failures are wrapped in
// *StageError so the caller learns both the stage and the reason; sentinel
// causes (mask.ErrEmptyRegion, mask.ErrBadKernel, mesh.ErrInsufficientPoints)
// survive errors.Is through the wrapping. A failed half-image never silently
// substitutes default geometry: the half is reported failed and the other
// half proceeds independently.
package pipeline
