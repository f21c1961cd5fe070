// Record - capture to a video file, with optional live display
//
// Codec is selected by four-character tag, container by extension;
// the default is Motion-JPEG in an AVI. Press q or ESC to stop.
//
// If the recorder cannot be opened the loop still runs display-only:
// recording and display are independent sinks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lumenworks/camkit/internal/config"
	"github.com/lumenworks/camkit/internal/log"
	"github.com/lumenworks/camkit/pkg/capture"
	"github.com/lumenworks/camkit/pkg/runner"
	"github.com/lumenworks/camkit/pkg/sink"
	"github.com/lumenworks/camkit/pkg/transform"
)

func main() {
	source := flag.String("source", config.Source(), "camera index, file path, or URL")
	out := flag.String("out", "", "output path (default: <outdir>/rec-<timestamp>.avi)")
	fourcc := flag.String("fourcc", sink.DefaultFourCC, "four-character codec tag")
	fps := flag.Float64("fps", 0, "recording frame rate (0 = use device rate)")
	gray := flag.Bool("gray", false, "record grayscale")
	display := flag.Bool("display", true, "show a preview window while recording")
	maxFrames := flag.Int("frames", 0, "stop after this many frames (0 = until keypress)")
	flag.Parse()

	log.Init(config.LogLevel())

	path := *out
	if path == "" {
		if err := os.MkdirAll(config.OutDir(), 0o755); err != nil {
			log.Error("create output dir failed", "err", err)
			os.Exit(1)
		}
		path = filepath.Join(config.OutDir(),
			fmt.Sprintf("rec-%s.avi", time.Now().Format("20060102-150405")))
	}

	dev, err := capture.Open(*source)
	if err != nil {
		log.Error("device open failed", "source", *source, "err", err)
		os.Exit(1)
	}

	props := dev.Props()
	rate := *fps
	if rate <= 0 {
		rate = props.FPS
	}
	if rate <= 0 {
		rate = 30
	}

	var transforms []transform.Transform
	if *gray {
		transforms = append(transforms, transform.Grayscale())
	}

	var sinks []sink.Sink
	var poller runner.KeyPoller

	rec, err := sink.NewRecorder(path, *fourcc, rate, props.Width, props.Height)
	if err != nil {
		// Report and keep going: display-only still works.
		log.Error("recorder open failed, continuing display-only", "err", err)
	} else {
		sinks = append(sinks, rec)
	}

	if *display {
		window := sink.NewWindow("camkit record")
		sinks = append(sinks, window)
		poller = window
	}

	if len(sinks) == 0 {
		log.Error("nothing to do: no recorder and no display")
		os.Exit(1)
	}

	stats := runner.New(dev, runner.Options{
		Transforms: transforms,
		Sinks:      sinks,
		Poller:     poller,
		MaxFrames:  *maxFrames,
	}).Run(context.Background())

	if rec != nil {
		fmt.Printf("wrote %d frames to %s\n", rec.Frames(), path)
	}
	fmt.Printf("%d frames in %.1fs (%.1f fps), stopped by %s\n",
		stats.Frames, stats.Elapsed.Seconds(), stats.FPS(), stats.StopReason)
}
