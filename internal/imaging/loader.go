package imaging

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/tiff" // Register TIFF format decoder (flatbed scanner output)
)

// ImageCache provides thread-safe caching of loaded scans to avoid redundant
// disk reads.
//
// The cache stores decoded image.Image objects keyed by their file path. Once
// a scan is loaded, subsequent Load() calls for the same path return the
// cached copy without disk I/O. This matters for flatbed scanner output:
// uncompressed TIFF scans routinely run to tens of megabytes.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). Batch drivers that process many scans should evict each scan once
// its pipeline run completes.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves a scan from the cache or loads it from disk if not cached.
//
// Parameters:
//   - path: Absolute or relative file path to the scan. Supported formats are
//     TIFF, PNG, and JPEG.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the image
//     format and color model (e.g., *image.RGBA, *image.NRGBA, *image.YCbCr).
//   - error: Non-nil if the file cannot be opened or decoded.
//
// The image is cached using the exact path string provided. Different paths
// to the same file (e.g., relative vs absolute) result in separate entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scan: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scan: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ScanInfo contains metadata about a loaded scan file.
type ScanInfo struct {
	// Width is the scan width in pixels.
	Width int `json:"width"`

	// Height is the scan height in pixels.
	Height int `json:"height"`

	// Format is the detected image format: "tiff", "png", "jpeg", or
	// "unknown". Detection is based on file extension, not file contents.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// FileSizeBytes is the size of the scan file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadScanInfo loads a scan and returns metadata about it.
//
// The scan is loaded into the cache (if not already cached). The format is
// determined by file extension; color depth by the decoded Go image type
// (*image.RGBA64, *image.NRGBA64 and *image.Gray16 report "16-bit").
func LoadScanInfo(cache *ImageCache, path string) (*ScanInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		format = "tiff"
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	}

	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA64, *image.NRGBA64, *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := img.Bounds()
	return &ScanInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ColorDepth:    colorDepth,
		FileSizeBytes: stat.Size(),
	}, nil
}

// CorrectOrientation rotates a scan by the given number of counter-clockwise
// quarter turns.
//
// Flatbed scans of outsoles are routinely captured sideways; a fixed quarter
// turn brings them upright before the pipeline runs. A value of 0 returns the
// input converted to NRGBA with bounds anchored at (0,0); values are taken
// modulo 4.
func CorrectOrientation(img image.Image, quarterTurns int) image.Image {
	switch ((quarterTurns % 4) + 4) % 4 {
	case 1:
		return imaging.Rotate90(img)
	case 2:
		return imaging.Rotate180(img)
	case 3:
		return imaging.Rotate270(img)
	default:
		return imaging.Clone(img)
	}
}
