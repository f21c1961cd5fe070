// Convert - transform an image file
//
// Reads a raster image, applies color-space / resize / flip transforms,
// and writes the result. Formats follow the file extensions.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lumenworks/camkit/internal/config"
	"github.com/lumenworks/camkit/internal/log"
	"github.com/lumenworks/camkit/pkg/imgio"
	"github.com/lumenworks/camkit/pkg/transform"
)

func main() {
	in := flag.String("in", "", "input image path (required)")
	out := flag.String("out", "", "output image path (required)")
	gray := flag.Bool("gray", false, "convert to grayscale")
	color := flag.Bool("color", false, "expand grayscale to 3 channels")
	flip := flag.Bool("flip", false, "mirror horizontally")
	scale := flag.Float64("scale", 0, "scale factor")
	width := flag.Int("width", 0, "exact output width (with -height)")
	height := flag.Int("height", 0, "exact output height (with -width)")
	thumb := flag.Int("thumb", 0, "write a pure-Go thumbnail with this max edge instead")
	flag.Parse()

	log.Init(config.LogLevel())

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "Usage: convert -in input.png -out output.jpg [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if *thumb > 0 {
		if err := imgio.Thumbnail(*in, *out, imgio.ThumbnailOptions{
			MaxEdge:   *thumb,
			Grayscale: *gray,
		}); err != nil {
			log.Error("thumbnail failed", "err", err)
			os.Exit(1)
		}
		fmt.Printf("wrote thumbnail %s\n", *out)
		return
	}

	f, err := imgio.Load(*in)
	if err != nil {
		log.Error("load failed", "path", *in, "err", err)
		os.Exit(1)
	}
	defer f.Close()

	var transforms []transform.Transform
	if *gray {
		transforms = append(transforms, transform.Grayscale())
	}
	if *color {
		transforms = append(transforms, transform.ToColor())
	}
	if *flip {
		transforms = append(transforms, transform.FlipHorizontal())
	}
	if *scale > 0 {
		transforms = append(transforms, transform.ResizeBy(*scale))
	}
	if *width > 0 && *height > 0 {
		transforms = append(transforms, transform.ResizeTo(*width, *height))
	}

	outFrame := transform.Chain(transforms...).Apply(f)
	defer outFrame.Close()

	if err := imgio.Save(*out, outFrame); err != nil {
		log.Error("save failed", "path", *out, "err", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %dx%d (%d ch) -> %s: %dx%d (%d ch)\n",
		*in, f.Width(), f.Height(), f.Channels(),
		*out, outFrame.Width(), outFrame.Height(), outFrame.Channels())
}
