package render

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/sim"
)

func fullModel(t *testing.T, infectionRate float64) *sim.Model {
	t.Helper()
	params := sim.DefaultParameters()
	params.Width = 4
	params.Height = 3
	params.PopulationDensity = 1.0
	params.InitialInfectionRate = infectionRate
	params.Seed = 2
	m, err := sim.NewModel(params)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func TestFrameDimensionsAndColors(t *testing.T) {
	m := fullModel(t, 0)
	const cell = 5

	img, err := Frame(m, cell)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	want := image.Rect(0, 0, 4*cell, 3*cell)
	if img.Bounds() != want {
		t.Fatalf("bounds %v, want %v", img.Bounds(), want)
	}

	// Full density, nobody infected: every cell renders susceptible blue.
	for _, p := range []image.Point{{2, 2}, {4*cell - 1, 3*cell - 1}} {
		r, g, b, _ := img.At(p.X, p.Y).RGBA()
		if uint8(r>>8) != 0x00 || uint8(g>>8) != 0x00 || uint8(b>>8) != 0x8B {
			t.Fatalf("pixel %v = (%d,%d,%d), want susceptible blue", p, r>>8, g>>8, b>>8)
		}
	}
}

func TestFrameAllInfected(t *testing.T) {
	m := fullModel(t, 1.0)
	img, err := Frame(m, 2)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if uint8(r>>8) != 0xFF || uint8(g>>8) != 0x00 || uint8(b>>8) != 0x00 {
		t.Fatalf("infected cell rendered (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}
}

func TestFrameRejectsBadCellSize(t *testing.T) {
	m := fullModel(t, 0)
	if _, err := Frame(m, 0); err == nil {
		t.Fatal("cell size 0 must fail")
	}
}

func TestSaveGIFAndAVI(t *testing.T) {
	m := fullModel(t, 0.5)
	dir := t.TempDir()

	var frames []image.Image
	for i := 0; i < 4; i++ {
		img, err := Frame(m, 4)
		if err != nil {
			t.Fatalf("Frame: %v", err)
		}
		frames = append(frames, img)
		m.Step()
	}

	gifPath := filepath.Join(dir, "run.gif")
	if err := SaveGIF(gifPath, frames, 5); err != nil {
		t.Fatalf("SaveGIF: %v", err)
	}
	assertNonEmpty(t, gifPath)

	aviPath := filepath.Join(dir, "run.avi")
	if err := SaveAVI(aviPath, frames, 10); err != nil {
		t.Fatalf("SaveAVI: %v", err)
	}
	assertNonEmpty(t, aviPath)

	if err := SaveGIF(filepath.Join(dir, "none.gif"), nil, 5); err == nil {
		t.Fatal("saving zero frames must fail")
	}
	if err := SaveAVI(filepath.Join(dir, "none.avi"), nil, 10); err == nil {
		t.Fatal("saving zero frames must fail")
	}
}

func assertNonEmpty(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if info.Size() == 0 {
		t.Fatalf("%s is empty", path)
	}
}
