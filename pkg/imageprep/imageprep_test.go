package imageprep

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeKeepsSmallImages(t *testing.T) {
	tests := []struct {
		width, height, maxPixels int
	}{
		{100, 100, DefaultMaxPixels},
		{2048, 2048, DefaultMaxPixels},
		{1, 1, 1},
		{640, 480, 640 * 480},
	}

	for _, tt := range tests {
		w, h, resized := Normalize(tt.width, tt.height, tt.maxPixels)
		if resized || w != tt.width || h != tt.height {
			t.Errorf("Normalize(%d, %d, %d) = %d, %d, %v; want unchanged",
				tt.width, tt.height, tt.maxPixels, w, h, resized)
		}
	}
}

func TestNormalizeDownscalesToBudget(t *testing.T) {
	w, h, resized := Normalize(4000, 4000, 2048*2048)
	if !resized {
		t.Fatal("expected a resize")
	}
	if w != 2048 || h != 2048 {
		t.Errorf("got %dx%d, want 2048x2048", w, h)
	}
}

func TestNormalizePreservesAspectRatio(t *testing.T) {
	tests := []struct {
		width, height, maxPixels int
	}{
		{4000, 2000, 2048 * 2048},
		{10000, 1000, 1024 * 1024},
		{3001, 1777, 512 * 512},
		{5000, 5000, 100 * 100},
	}

	for _, tt := range tests {
		w, h, resized := Normalize(tt.width, tt.height, tt.maxPixels)
		if !resized {
			t.Errorf("Normalize(%d, %d, %d): expected a resize", tt.width, tt.height, tt.maxPixels)
			continue
		}
		if w*h > tt.maxPixels {
			t.Errorf("Normalize(%d, %d, %d) = %dx%d exceeds the budget",
				tt.width, tt.height, tt.maxPixels, w, h)
		}
		originalRatio := float64(tt.width) / float64(tt.height)
		newRatio := float64(w) / float64(h)
		if math.Abs(newRatio-originalRatio)/originalRatio > 0.01 {
			t.Errorf("Normalize(%d, %d, %d) = %dx%d distorts the aspect ratio (%f vs %f)",
				tt.width, tt.height, tt.maxPixels, w, h, newRatio, originalRatio)
		}
	}
}

func writeTestPNG(t *testing.T, dir string, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.Black)
		}
	}
	path := filepath.Join(dir, "test.png")
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

func TestPrepareSmallImagePassesThrough(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), 20, 10)

	outPath, size, resized, err := Prepare(path, DefaultMaxPixels)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if resized {
		t.Error("small image should not be resized")
	}
	if outPath != path {
		t.Errorf("path should be unchanged, got %q", outPath)
	}
	if size.Width != 20 || size.Height != 10 {
		t.Errorf("got size %dx%d, want 20x10", size.Width, size.Height)
	}
}

func TestPrepareResizesOversizedImage(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, 800, 400)

	outPath, size, resized, err := Prepare(path, 100*100)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if !resized {
		t.Fatal("expected a resize")
	}
	if outPath == path {
		t.Error("resized artifact must not overwrite the source")
	}
	if filepath.Base(outPath) != "resized_test.png" {
		t.Errorf("unexpected artifact name %q", filepath.Base(outPath))
	}
	if size.Width*size.Height > 100*100 {
		t.Errorf("resized size %dx%d exceeds the budget", size.Width, size.Height)
	}

	// The persisted artifact must match the reported dimensions
	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("resized artifact missing: %v", err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("resized artifact is not decodable: %v", err)
	}
	if cfg.Width != size.Width || cfg.Height != size.Height {
		t.Errorf("artifact is %dx%d, reported %dx%d", cfg.Width, cfg.Height, size.Width, size.Height)
	}

	// Source file untouched
	src, err := os.Open(path)
	if err != nil {
		t.Fatalf("source image missing: %v", err)
	}
	defer src.Close()
	srcCfg, _, err := image.DecodeConfig(src)
	if err != nil || srcCfg.Width != 800 || srcCfg.Height != 400 {
		t.Errorf("source image was modified: %v %dx%d", err, srcCfg.Width, srcCfg.Height)
	}
}

func TestPrepareUndecodableImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(path, []byte("not an image at all"), 0644); err != nil {
		t.Fatal(err)
	}

	outPath, size, resized, err := Prepare(path, DefaultMaxPixels)
	if err != nil {
		t.Fatalf("decode failure must degrade, not fail: %v", err)
	}
	if resized {
		t.Error("undecodable image cannot be resized")
	}
	if outPath != path {
		t.Errorf("path should be unchanged, got %q", outPath)
	}
	if !size.Unknown() {
		t.Errorf("expected the unknown-size sentinel, got %dx%d", size.Width, size.Height)
	}
}
