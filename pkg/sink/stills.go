package sink

import (
	"fmt"
	"path/filepath"

	"gocv.io/x/gocv"

	"github.com/lumenworks/camkit/pkg/frame"
)

// WriteImage writes a single frame to a raster image file. The encoder is
// selected by the file extension (.png, .jpg, ...).
func WriteImage(path string, f *frame.Frame) error {
	if ok := gocv.IMWrite(path, f.Mat()); !ok {
		return fmt.Errorf("sink: write image %q failed", path)
	}
	return nil
}

// Stills is a sink that dumps every frame to a numbered image file in a
// directory. Useful for extracting frames from a capture loop.
type Stills struct {
	dir     string
	pattern string
	n       int
	closed  bool
}

// NewStills creates a still-image sink. pattern is a Sprintf pattern with
// one integer verb, e.g. "frame-%05d.png".
func NewStills(dir, pattern string) *Stills {
	if pattern == "" {
		pattern = "frame-%05d.png"
	}
	return &Stills{dir: dir, pattern: pattern}
}

// Put writes the frame to the next numbered file.
func (s *Stills) Put(f *frame.Frame) error {
	if s.closed {
		return ErrClosed
	}
	path := filepath.Join(s.dir, fmt.Sprintf(s.pattern, s.n))
	if err := WriteImage(path, f); err != nil {
		return err
	}
	s.n++
	return nil
}

// Count returns how many stills have been written.
func (s *Stills) Count() int { return s.n }

// Close marks the sink closed. No finalization is needed for stills.
func (s *Stills) Close() error {
	s.closed = true
	return nil
}
