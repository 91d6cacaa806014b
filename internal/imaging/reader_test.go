package imaging

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}

func TestDimensions(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "fox.png"), 640, 480)

	r := NewReader(dir)
	w, h, err := r.Dimensions("fox.png")
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if w != 640 || h != 480 {
		t.Errorf("dimensions = %dx%d, want 640x480", w, h)
	}
}

func TestDimensions_Subdirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "img"), 0o755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(dir, "img", "fox.png"), 150, 150)

	r := NewReader(dir)
	w, h, err := r.Dimensions("img/fox.png")
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if w != 150 || h != 150 {
		t.Errorf("dimensions = %dx%d, want 150x150", w, h)
	}
}

func TestDimensions_MissingFile(t *testing.T) {
	r := NewReader(t.TempDir())
	if _, _, err := r.Dimensions("nope.png"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDimensions_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewReader(dir)
	if _, _, err := r.Dimensions("bad.png"); err == nil {
		t.Fatal("expected error for corrupt image data")
	}
}

func TestDimensions_PathEscapeBlocked(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "images")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	// A file outside the reader's root must not be reachable via "..".
	writePNG(t, filepath.Join(dir, "secret.png"), 10, 10)

	r := NewReader(sub)
	if _, _, err := r.Dimensions("../secret.png"); err == nil {
		t.Fatal("expected traversal outside the root to fail")
	}
}
