// Package imaging reads metadata from locally stored artifact images.
package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	// Register decoders for the formats the generation side produces.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Reader resolves artifact image paths against a root directory and reads
// their pixel dimensions without decoding full image data.
type Reader struct {
	root string
}

// NewReader creates a Reader rooted at the given directory.
func NewReader(root string) *Reader {
	return &Reader{root: root}
}

// Dimensions returns the width and height of the image at the given relative
// path. The path is normalized so it cannot escape the root directory.
func (r *Reader) Dimensions(path string) (width, height int, err error) {
	full := filepath.Join(r.root, filepath.Clean("/"+path))

	f, err := os.Open(full)
	if err != nil {
		return 0, 0, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
