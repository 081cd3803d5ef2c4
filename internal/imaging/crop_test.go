package imaging

import (
	"image"
	"image/color"
	"testing"
)

// grayWithRect builds a black grayscale image with a white rectangle
// covering [x1,x2) x [y1,y2).
func grayWithRect(w, h, x1, y1, x2, y2 int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img
}

func TestAutoCrop(t *testing.T) {
	img := grayWithRect(50, 50, 10, 12, 20, 22)

	cropped, offset, ok := AutoCrop(img, 10)
	if !ok {
		t.Fatal("AutoCrop found no content")
	}
	if cropped.Bounds().Dx() != 10 || cropped.Bounds().Dy() != 10 {
		t.Errorf("dimensions: got %dx%d, want 10x10",
			cropped.Bounds().Dx(), cropped.Bounds().Dy())
	}
	if offset.X != 10 || offset.Y != 12 {
		t.Errorf("offset: got %v, want (10,12)", offset)
	}
	if cropped.GrayAt(0, 0).Y != 255 {
		t.Error("content not anchored at crop origin")
	}
}

func TestAutoCrop_NoContent(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 30, 30))

	if _, _, ok := AutoCrop(img, 10); ok {
		t.Error("AutoCrop should report no content for an all-black image")
	}
}

func TestAutoCrop_ThresholdExcludesDimPixels(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	img.SetGray(2, 2, color.Gray{Y: 8}) // below threshold
	img.SetGray(10, 10, color.Gray{Y: 200})

	cropped, offset, ok := AutoCrop(img, 10)
	if !ok {
		t.Fatal("AutoCrop found no content")
	}
	if cropped.Bounds().Dx() != 1 || cropped.Bounds().Dy() != 1 {
		t.Errorf("dimensions: got %dx%d, want 1x1",
			cropped.Bounds().Dx(), cropped.Bounds().Dy())
	}
	if offset.X != 10 || offset.Y != 10 {
		t.Errorf("offset: got %v, want (10,10)", offset)
	}
}

func TestTrimMargin(t *testing.T) {
	img := grayWithRect(40, 30, 0, 0, 40, 30)

	trimmed, offset, ok := TrimMargin(img, 5)
	if !ok {
		t.Fatal("TrimMargin rejected a large enough image")
	}
	if trimmed.Bounds().Dx() != 30 || trimmed.Bounds().Dy() != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20",
			trimmed.Bounds().Dx(), trimmed.Bounds().Dy())
	}
	if offset.X != 5 || offset.Y != 5 {
		t.Errorf("offset: got %v, want (5,5)", offset)
	}
}

func TestTrimMargin_TooSmall(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))

	if _, _, ok := TrimMargin(img, 5); ok {
		t.Error("TrimMargin should reject images smaller than twice the margin")
	}
}

func TestTrimMargin_ZeroMargin(t *testing.T) {
	img := grayWithRect(10, 10, 0, 0, 10, 10)

	trimmed, offset, ok := TrimMargin(img, 0)
	if !ok {
		t.Fatal("zero margin should always succeed")
	}
	if trimmed.Bounds() != img.Bounds() {
		t.Errorf("bounds changed: got %v, want %v", trimmed.Bounds(), img.Bounds())
	}
	if offset != (image.Point{}) {
		t.Errorf("offset: got %v, want zero", offset)
	}
}

func TestSplitHalves(t *testing.T) {
	img := grayWithRect(11, 6, 0, 0, 11, 6)

	left, right, rightOffset := SplitHalves(img)

	if left.Bounds().Dx() != 5 || right.Bounds().Dx() != 6 {
		t.Errorf("half widths: got %d and %d, want 5 and 6",
			left.Bounds().Dx(), right.Bounds().Dx())
	}
	if left.Bounds().Dy() != 6 || right.Bounds().Dy() != 6 {
		t.Error("half heights should match the input")
	}
	if rightOffset.X != 5 || rightOffset.Y != 0 {
		t.Errorf("right offset: got %v, want (5,0)", rightOffset)
	}
}

func TestCropGray_CopiesPixels(t *testing.T) {
	img := grayWithRect(10, 10, 0, 0, 10, 10)

	cropped := CropGray(img, image.Rect(2, 2, 8, 8))
	cropped.SetGray(0, 0, color.Gray{Y: 0})

	if img.GrayAt(2, 2).Y != 255 {
		t.Error("CropGray must not share pixels with its input")
	}
}
