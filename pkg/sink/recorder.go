package sink

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/lumenworks/camkit/pkg/frame"
)

// DefaultFourCC is the default four-character codec tag: Motion-JPEG,
// typically paired with an .avi container.
const DefaultFourCC = "MJPG"

// Recorder appends frames to a video container file. The codec is chosen
// by the four-character tag, the container by the file extension.
//
// Frame rate and dimensions are fixed at open; frames of a different size
// are rejected rather than silently dropped by the encoder.
type Recorder struct {
	path   string
	writer *gocv.VideoWriter
	width  int
	height int
	frames int
	closed bool
}

// NewRecorder opens a video file for writing.
func NewRecorder(path, fourcc string, fps float64, width, height int) (*Recorder, error) {
	if fourcc == "" {
		fourcc = DefaultFourCC
	}
	if fps <= 0 {
		fps = 30
	}
	w, err := gocv.VideoWriterFile(path, fourcc, fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("sink: open recorder %q: %w", path, err)
	}
	if !w.IsOpened() {
		w.Close()
		return nil, fmt.Errorf("sink: recorder %q: codec %q unavailable", path, fourcc)
	}
	return &Recorder{path: path, writer: w, width: width, height: height}, nil
}

// Put appends one frame. Grayscale frames are expanded to BGR since the
// writer was opened in color mode.
func (r *Recorder) Put(f *frame.Frame) error {
	if r.closed {
		return ErrClosed
	}
	if f.Width() != r.width || f.Height() != r.height {
		return fmt.Errorf("sink: recorder %q: frame %dx%d, want %dx%d",
			r.path, f.Width(), f.Height(), r.width, r.height)
	}

	mat := f.Mat()
	if f.Channels() == 1 {
		bgr := gocv.NewMat()
		defer bgr.Close()
		gocv.CvtColor(mat, &bgr, gocv.ColorGrayToBGR)
		if err := r.writer.Write(bgr); err != nil {
			return fmt.Errorf("sink: recorder %q: %w", r.path, err)
		}
	} else {
		if err := r.writer.Write(mat); err != nil {
			return fmt.Errorf("sink: recorder %q: %w", r.path, err)
		}
	}
	r.frames++
	return nil
}

// Path returns the output file path.
func (r *Recorder) Path() string { return r.path }

// Frames returns how many frames have been appended so far.
func (r *Recorder) Frames() int { return r.frames }

// Close finalizes the container. Safe to call more than once.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.writer.Close()
}
