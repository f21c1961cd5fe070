// Package transform provides deterministic per-frame transforms.
//
// Transforms are total for well-formed frames: they never fail and never
// block. Apply returns a new frame; the input remains owned by the caller.
package transform

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"

	"github.com/lumenworks/camkit/pkg/frame"
)

// Transform converts one frame into another.
type Transform interface {
	// Name identifies the transform in logs and CLI flags.
	Name() string

	// Apply produces a new frame. The input is not modified or closed.
	Apply(*frame.Frame) *frame.Frame
}

type grayscale struct{}

// Grayscale converts a BGR color frame to single-channel grayscale.
// Height and width are preserved. Frames that are already grayscale
// pass through as a copy.
func Grayscale() Transform { return grayscale{} }

func (grayscale) Name() string { return "grayscale" }

func (grayscale) Apply(in *frame.Frame) *frame.Frame {
	if in.Channels() == 1 {
		return in.Clone()
	}
	dst := gocv.NewMat()
	gocv.CvtColor(in.Mat(), &dst, gocv.ColorBGRToGray)
	return frame.New(dst)
}

type toColor struct{}

// ToColor converts a grayscale frame back to the 3-channel BGR
// representation. All three channels hold the same value per pixel.
// Color frames pass through as a copy.
func ToColor() Transform { return toColor{} }

func (toColor) Name() string { return "tocolor" }

func (toColor) Apply(in *frame.Frame) *frame.Frame {
	if in.Channels() == 3 {
		return in.Clone()
	}
	dst := gocv.NewMat()
	gocv.CvtColor(in.Mat(), &dst, gocv.ColorGrayToBGR)
	return frame.New(dst)
}

type resizeTo struct {
	w, h int
}

// ResizeTo scales to an exact target size, ignoring the source aspect
// ratio.
func ResizeTo(width, height int) Transform {
	return resizeTo{w: width, h: height}
}

func (r resizeTo) Name() string { return fmt.Sprintf("resize(%dx%d)", r.w, r.h) }

func (r resizeTo) Apply(in *frame.Frame) *frame.Frame {
	dst := gocv.NewMat()
	gocv.Resize(in.Mat(), &dst, image.Pt(r.w, r.h), 0, 0, gocv.InterpolationLinear)
	return frame.New(dst)
}

type resizeBy struct {
	factor float64
}

// ResizeBy scales both dimensions by a factor. A frame of size (W,H)
// becomes (floor(W*f), floor(H*f)).
func ResizeBy(factor float64) Transform {
	return resizeBy{factor: factor}
}

func (r resizeBy) Name() string { return fmt.Sprintf("scale(%g)", r.factor) }

func (r resizeBy) Apply(in *frame.Frame) *frame.Frame {
	// Computed explicitly so the result floors instead of rounding.
	w := int(math.Floor(float64(in.Width()) * r.factor))
	h := int(math.Floor(float64(in.Height()) * r.factor))
	dst := gocv.NewMat()
	gocv.Resize(in.Mat(), &dst, image.Pt(w, h), 0, 0, gocv.InterpolationLinear)
	return frame.New(dst)
}

type flipH struct{}

// FlipHorizontal mirrors the frame around the vertical axis.
func FlipHorizontal() Transform { return flipH{} }

func (flipH) Name() string { return "fliph" }

func (flipH) Apply(in *frame.Frame) *frame.Frame {
	dst := gocv.NewMat()
	gocv.Flip(in.Mat(), &dst, 1)
	return frame.New(dst)
}

type chain struct {
	ts []Transform
}

// Chain applies transforms in order, closing intermediate frames.
func Chain(ts ...Transform) Transform { return chain{ts: ts} }

func (c chain) Name() string {
	name := "chain("
	for i, t := range c.ts {
		if i > 0 {
			name += ","
		}
		name += t.Name()
	}
	return name + ")"
}

func (c chain) Apply(in *frame.Frame) *frame.Frame {
	if len(c.ts) == 0 {
		return in.Clone()
	}
	out := c.ts[0].Apply(in)
	for _, t := range c.ts[1:] {
		next := t.Apply(out)
		out.Close()
		out = next
	}
	return out
}
