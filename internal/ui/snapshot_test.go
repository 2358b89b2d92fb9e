package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodePNGRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{200, 100, 50, 255})
	data, err := encodePNG(img)
	if err != nil {
		t.Fatal(err)
	}
	got, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bounds().Dx() != 4 || got.Bounds().Dy() != 3 {
		t.Fatalf("bounds %v", got.Bounds())
	}
	if r, g, b, _ := got.At(1, 1).RGBA(); r>>8 != 200 || g>>8 != 100 || b>>8 != 50 {
		t.Fatalf("pixel lost: %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestSaveSnapshotCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shots", "delulu-dream.png")
	if err := saveSnapshot(path, []byte("png")); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "png" {
		t.Fatalf("read back %q err=%v", b, err)
	}
}
