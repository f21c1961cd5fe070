package imgio

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/effect"
	bildio "github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// ThumbnailOptions controls thumbnail generation.
type ThumbnailOptions struct {
	// MaxEdge is the length of the longer output edge in pixels.
	MaxEdge int

	// Grayscale renders the thumbnail without color.
	Grayscale bool

	// Quality is the JPEG quality (1-100) when the output is a .jpg.
	Quality int
}

// DefaultThumbnailOptions are used for zero-value option fields.
var DefaultThumbnailOptions = ThumbnailOptions{MaxEdge: 256, Quality: 80}

// Thumbnail writes a downscaled copy of an image file, preserving aspect
// ratio. Pure Go: decode, resize, encode without touching OpenCV.
func Thumbnail(srcPath, dstPath string, opts ThumbnailOptions) error {
	if opts.MaxEdge <= 0 {
		opts.MaxEdge = DefaultThumbnailOptions.MaxEdge
	}
	if opts.Quality <= 0 {
		opts.Quality = DefaultThumbnailOptions.Quality
	}

	img, err := bildio.Open(srcPath)
	if err != nil {
		return fmt.Errorf("imgio: thumbnail open %q: %w", srcPath, err)
	}

	w, h := fitWithin(img.Bounds().Dx(), img.Bounds().Dy(), opts.MaxEdge)
	out := transform.Resize(img, w, h, transform.Linear)
	if opts.Grayscale {
		out = effect.Grayscale(out)
	}

	if err := bildio.Save(dstPath, out, encoderFor(dstPath, opts.Quality)); err != nil {
		return fmt.Errorf("imgio: thumbnail save %q: %w", dstPath, err)
	}
	return nil
}

// ThumbnailImage is the in-memory variant, for serving thumbnails without
// writing them to disk.
func ThumbnailImage(img image.Image, maxEdge int) image.Image {
	if maxEdge <= 0 {
		maxEdge = DefaultThumbnailOptions.MaxEdge
	}
	w, h := fitWithin(img.Bounds().Dx(), img.Bounds().Dy(), maxEdge)
	return transform.Resize(img, w, h, transform.Linear)
}

// ThumbnailJPEG reads an image file and returns a downscaled JPEG in
// memory, for serving gallery thumbnails without a disk cache.
func ThumbnailJPEG(path string, maxEdge, quality int) ([]byte, error) {
	if quality <= 0 {
		quality = DefaultThumbnailOptions.Quality
	}
	img, err := bildio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imgio: thumbnail open %q: %w", path, err)
	}
	out := ThumbnailImage(img, maxEdge)

	var buf bytes.Buffer
	if err := bildio.JPEGEncoder(quality)(&buf, out); err != nil {
		return nil, fmt.Errorf("imgio: thumbnail encode %q: %w", path, err)
	}
	return buf.Bytes(), nil
}

// fitWithin scales (w, h) so the longer edge equals maxEdge, never
// upscaling. Both results are at least 1.
func fitWithin(w, h, maxEdge int) (int, int) {
	if w <= maxEdge && h <= maxEdge {
		return w, h
	}
	if w >= h {
		nh := h * maxEdge / w
		if nh < 1 {
			nh = 1
		}
		return maxEdge, nh
	}
	nw := w * maxEdge / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxEdge
}

func encoderFor(path string, quality int) bildio.Encoder {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return bildio.PNGEncoder()
	case ".bmp":
		return bildio.BMPEncoder()
	default:
		return bildio.JPEGEncoder(quality)
	}
}
