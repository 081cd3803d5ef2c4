package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

// frameImage builds an NRGBA scan with a solid frame of the given color
// around an interior filled with fill.
func frameImage(w, h, frame int, border, fill color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < frame || y < frame || x >= w-frame || y >= h-frame {
				img.SetNRGBA(x, y, border)
			} else {
				img.SetNRGBA(x, y, fill)
			}
		}
	}
	return img
}

var (
	yellow   = color.NRGBA{R: 255, G: 220, B: 0, A: 255}
	darkGray = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
)

func TestRemoveBorder_YellowFrame(t *testing.T) {
	img := frameImage(100, 80, 10, yellow, darkGray)

	roi, offset := RemoveBorder(img, DefaultBorderSignature())

	if got, want := roi.Bounds().Dx(), 80; got != want {
		t.Errorf("ROI width: got %d, want %d", got, want)
	}
	if got, want := roi.Bounds().Dy(), 60; got != want {
		t.Errorf("ROI height: got %d, want %d", got, want)
	}
	if offset.X != 10 || offset.Y != 10 {
		t.Errorf("offset: got %v, want (10,10)", offset)
	}
}

func TestRemoveBorder_NoBorderPixels(t *testing.T) {
	img := frameImage(60, 40, 0, darkGray, darkGray)

	roi, offset := RemoveBorder(img, DefaultBorderSignature())

	if roi.Bounds().Dx() != 60 || roi.Bounds().Dy() != 40 {
		t.Errorf("dimensions changed: got %dx%d, want 60x40",
			roi.Bounds().Dx(), roi.Bounds().Dy())
	}
	if offset != (image.Point{}) {
		t.Errorf("offset: got %v, want zero", offset)
	}
}

func TestRemoveBorder_WhiteContentNotBorder(t *testing.T) {
	// Bright white features must never match the warm border signature,
	// no matter how bright they are: saturation gates them out.
	img := frameImage(50, 50, 5, yellow, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	roi, offset := RemoveBorder(img, DefaultBorderSignature())

	if roi.Bounds().Dx() != 40 || roi.Bounds().Dy() != 40 {
		t.Errorf("ROI: got %dx%d, want 40x40", roi.Bounds().Dx(), roi.Bounds().Dy())
	}
	if offset.X != 5 || offset.Y != 5 {
		t.Errorf("offset: got %v, want (5,5)", offset)
	}
}

func TestBorderSignature_Matches(t *testing.T) {
	sig := DefaultBorderSignature()

	tests := []struct {
		name string
		c    color.NRGBA
		want bool
	}{
		{"saturated yellow", color.NRGBA{R: 255, G: 230, B: 10, A: 255}, true},
		{"saturated red", color.NRGBA{R: 250, G: 60, B: 20, A: 255}, true},
		{"white", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"black", color.NRGBA{R: 0, G: 0, B: 0, A: 255}, false},
		{"mid gray", color.NRGBA{R: 128, G: 128, B: 128, A: 255}, false},
		{"blue", color.NRGBA{R: 20, G: 40, B: 240, A: 255}, false},
		{"dark yellow below warmth", color.NRGBA{R: 80, G: 70, B: 0, A: 255}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := colorful.MakeColor(tt.c)
			if !ok {
				t.Fatal("could not convert test color")
			}
			if got := sig.Matches(c); got != tt.want {
				t.Errorf("Matches(%v): got %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}
