package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG stores a small solid-color PNG and returns its path.
func writeTestPNG(t *testing.T, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 90, G: 90, B: 90, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestImageCache_LoadAndEvict(t *testing.T) {
	path := writeTestPNG(t, "scan.png", 12, 8)
	cache := NewImageCache()

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 8 {
		t.Errorf("dimensions: got %dx%d, want 12x8", img.Bounds().Dx(), img.Bounds().Dy())
	}

	// Second load must come from cache even after the file disappears.
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}
	if _, err := cache.Load(path); err != nil {
		t.Errorf("cached load failed: %v", err)
	}

	cache.Evict(path)
	if _, err := cache.Load(path); err == nil {
		t.Error("Load should fail after eviction of a deleted file")
	}
}

func TestImageCache_Clear(t *testing.T) {
	path := writeTestPNG(t, "scan.png", 6, 6)
	cache := NewImageCache()

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}

	cache.Clear()
	if _, err := cache.Load(path); err == nil {
		t.Error("Load should fail after Clear dropped the cached copy")
	}
}

func TestImageCache_LoadMissing(t *testing.T) {
	cache := NewImageCache()
	if _, err := cache.Load(filepath.Join(t.TempDir(), "nope.tif")); err == nil {
		t.Error("Load should fail for a missing file")
	}
}

func TestLoadScanInfo(t *testing.T) {
	path := writeTestPNG(t, "scan.png", 20, 10)
	cache := NewImageCache()

	info, err := LoadScanInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadScanInfo failed: %v", err)
	}
	if info.Width != 20 || info.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Error("file size should be positive")
	}
}

func TestCorrectOrientation(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))

	tests := []struct {
		turns        int
		wantW, wantH int
	}{
		{0, 4, 2},
		{1, 2, 4},
		{2, 4, 2},
		{3, 2, 4},
		{4, 4, 2},
		{-1, 2, 4},
	}

	for _, tt := range tests {
		got := CorrectOrientation(img, tt.turns)
		if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
			t.Errorf("turns=%d: got %dx%d, want %dx%d", tt.turns,
				got.Bounds().Dx(), got.Bounds().Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestGrayscaleAndInvert(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{A: 255})

	gray := Grayscale(img)
	if gray.GrayAt(0, 0).Y != 255 {
		t.Errorf("white pixel: got %d, want 255", gray.GrayAt(0, 0).Y)
	}
	if gray.GrayAt(1, 0).Y != 0 {
		t.Errorf("black pixel: got %d, want 0", gray.GrayAt(1, 0).Y)
	}

	inv := Invert(gray)
	if inv.GrayAt(0, 0).Y != 0 || inv.GrayAt(1, 0).Y != 255 {
		t.Error("Invert should swap black and white")
	}
}
