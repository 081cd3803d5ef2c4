// Package imaging provides the raster front end of the outsole scan pipeline.
//
// This package implements scan loading, orientation correction, calibration
// border removal, grayscale conversion, and content auto-cropping. All
// operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based. Every image produced by
// this package has its bounds anchored at (0,0); cropping operations return
// the offset of the crop window so callers can map coordinates back to the
// source frame.
//
// # Image Polarity
//
// Downstream stages treat bright pixels as content. Scans whose features are
// darker than the background should be inverted before thresholding (the CLI
// driver exposes a flag for this).
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The remaining operations
// are pure functions of their inputs and can be called concurrently.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as empty crop windows,
// unreadable files, or undecodable image data. No function panics on
// malformed pixel data.
package imaging
