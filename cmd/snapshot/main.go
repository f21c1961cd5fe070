// Snapshot - grab one frame and save it as an image file
//
// The output format follows the file extension (.png, .jpg, ...).
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lumenworks/camkit/internal/config"
	"github.com/lumenworks/camkit/internal/log"
	"github.com/lumenworks/camkit/pkg/capture"
	"github.com/lumenworks/camkit/pkg/imgio"
	"github.com/lumenworks/camkit/pkg/transform"
)

func main() {
	source := flag.String("source", config.Source(), "camera index, file path, or URL")
	out := flag.String("out", "", "output path (default: <outdir>/snap-<timestamp>.png)")
	gray := flag.Bool("gray", false, "save grayscale")
	scale := flag.Float64("scale", 0, "scale factor (0 = native size)")
	warmup := flag.Int("warmup", 3, "frames to discard while the sensor settles")
	flag.Parse()

	log.Init(config.LogLevel())

	path := *out
	if path == "" {
		if err := os.MkdirAll(config.OutDir(), 0o755); err != nil {
			log.Error("create output dir failed", "err", err)
			os.Exit(1)
		}
		path = filepath.Join(config.OutDir(),
			fmt.Sprintf("snap-%s.png", time.Now().Format("20060102-150405")))
	}

	dev, err := capture.Open(*source)
	if err != nil {
		log.Error("device open failed", "source", *source, "err", err)
		os.Exit(1)
	}
	defer dev.Close()

	// Many sensors need a few frames before exposure settles.
	for i := 0; i < *warmup; i++ {
		if f, ok := dev.Read(); ok {
			f.Close()
		}
	}

	f, ok := dev.Read()
	if !ok {
		log.Error("no frame from source", "source", *source)
		os.Exit(1)
	}
	defer f.Close()

	var transforms []transform.Transform
	if *gray {
		transforms = append(transforms, transform.Grayscale())
	}
	if *scale > 0 {
		transforms = append(transforms, transform.ResizeBy(*scale))
	}

	outFrame := transform.Chain(transforms...).Apply(f)
	defer outFrame.Close()

	if err := imgio.Save(path, outFrame); err != nil {
		log.Error("save failed", "path", path, "err", err)
		os.Exit(1)
	}
	fmt.Printf("saved %dx%d (%d channel) frame to %s\n",
		outFrame.Width(), outFrame.Height(), outFrame.Channels(), path)
}
