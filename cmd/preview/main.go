// Preview - live display loop
//
// Shows the capture source in a window. Press q or ESC to quit.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lumenworks/camkit/internal/config"
	"github.com/lumenworks/camkit/internal/log"
	"github.com/lumenworks/camkit/pkg/capture"
	"github.com/lumenworks/camkit/pkg/runner"
	"github.com/lumenworks/camkit/pkg/sink"
	"github.com/lumenworks/camkit/pkg/transform"
)

func main() {
	source := flag.String("source", config.Source(), "camera index, file path, or URL")
	gray := flag.Bool("gray", false, "show grayscale")
	flip := flag.Bool("flip", false, "mirror horizontally")
	scale := flag.Float64("scale", 0, "scale factor (0 = native size)")
	flag.Parse()

	log.Init(config.LogLevel())

	dev, err := capture.Open(*source)
	if err != nil {
		log.Error("device open failed", "source", *source, "err", err)
		os.Exit(1)
	}

	var transforms []transform.Transform
	if *gray {
		transforms = append(transforms, transform.Grayscale())
	}
	if *flip {
		transforms = append(transforms, transform.FlipHorizontal())
	}
	if *scale > 0 {
		transforms = append(transforms, transform.ResizeBy(*scale))
	}

	window := sink.NewWindow("camkit preview")

	stats := runner.New(dev, runner.Options{
		Transforms: transforms,
		Sinks:      []sink.Sink{window},
		Poller:     window,
	}).Run(context.Background())

	fmt.Printf("%d frames in %.1fs (%.1f fps), stopped by %s\n",
		stats.Frames, stats.Elapsed.Seconds(), stats.FPS(), stats.StopReason)
}
