// Package imgio loads and saves raster image files.
//
// Loading and saving full frames goes through the OpenCV codecs (format by
// file extension). Thumbnailing is a pure-Go path so web gallery requests
// never need an OpenCV context.
package imgio

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/lumenworks/camkit/pkg/frame"
)

// Load reads an image file as a 3-channel BGR frame.
func Load(path string) (*frame.Frame, error) {
	return load(path, gocv.IMReadColor)
}

// LoadGray reads an image file as a single-channel grayscale frame.
func LoadGray(path string) (*frame.Frame, error) {
	return load(path, gocv.IMReadGrayScale)
}

func load(path string, flag gocv.IMReadFlag) (*frame.Frame, error) {
	mat := gocv.IMRead(path, flag)
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("imgio: read %q: no decodable image", path)
	}
	return frame.New(mat), nil
}

// Save writes a frame to an image file. The encoder is selected by the
// file extension.
func Save(path string, f *frame.Frame) error {
	if ok := gocv.IMWrite(path, f.Mat()); !ok {
		return fmt.Errorf("imgio: write %q failed", path)
	}
	return nil
}
