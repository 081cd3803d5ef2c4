package regions

import (
	"bytes"
	"image"
	"testing"

	"github.com/solemesh/solemesh/internal/mask"
)

func TestErase_NoRegionsIsIdentity(t *testing.T) {
	m := diskMask(50, 50, 25, 25, 10)

	out := Erase(m, nil)

	if !bytes.Equal(out.Pix, m.Pix) {
		t.Error("erasing no regions must return an identical mask")
	}
}

func TestErase_RemovesSuspectPixels(t *testing.T) {
	m := diskMask(200, 170, 60, 60, 50)
	paintBlock(m, 10, 150, 160, 153)

	table := Analyze(m, Connect8, ThresholdClassifier(DefaultThresholds()))
	out := Erase(m, table.Suspects())

	if mask.IsForeground(out, 50, 151) {
		t.Error("suspect stripe should be erased")
	}
	if !mask.IsForeground(out, 60, 60) {
		t.Error("kept disk should survive erasure")
	}

	want := 0
	for _, r := range table.Kept() {
		want += r.Count
	}
	if got := mask.CountForeground(out); got != want {
		t.Errorf("foreground after erase: got %d, want %d", got, want)
	}
}

func TestErase_SecondPassFindsNoSuspects(t *testing.T) {
	m := diskMask(200, 170, 60, 60, 50)
	paintBlock(m, 10, 150, 160, 153)

	classify := ThresholdClassifier(DefaultThresholds())
	first := Analyze(m, Connect8, classify)
	erased := Erase(m, first.Suspects())

	second := Analyze(erased, Connect8, classify)
	if got := len(second.Suspects()); got != 0 {
		t.Errorf("second analysis pass found %d new suspects, want 0", got)
	}
	if got, want := len(second.Regions), len(first.Kept()); got != want {
		t.Errorf("regions after erase: got %d, want %d", got, want)
	}
}

func TestErase_InputUntouched(t *testing.T) {
	m := diskMask(60, 60, 30, 30, 10)
	table := Analyze(m, Connect8, func(Region) bool { return true })

	before := mask.CountForeground(m)
	_ = Erase(m, table.Suspects())

	if mask.CountForeground(m) != before {
		t.Error("Erase must not mutate its input")
	}
}

func TestCentroids(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 60, 40))
	paintDisk(m, 15, 20, 4)
	paintDisk(m, 45, 20, 4)

	table := Analyze(m, Connect8, nil)
	points := Centroids(table, 100, 200)

	if len(points) != 2 {
		t.Fatalf("point count: got %d, want 2", len(points))
	}
	if points[0].X != 115 || points[0].Y != 220 {
		t.Errorf("first centroid: got (%g, %g), want (115, 220)", points[0].X, points[0].Y)
	}
	if points[1].X != 145 || points[1].Y != 220 {
		t.Errorf("second centroid: got (%g, %g), want (145, 220)", points[1].X, points[1].Y)
	}
}

func TestCentroids_SkipsSuspects(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 200, 170))
	paintDisk(m, 60, 60, 30)
	paintBlock(m, 10, 150, 160, 153)

	table := Analyze(m, Connect8, ThresholdClassifier(DefaultThresholds()))
	points := Centroids(table, 0, 0)

	if len(points) != 1 {
		t.Fatalf("point count: got %d, want 1", len(points))
	}
}
