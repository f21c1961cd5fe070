// Props - dump the property surface of a capture device
//
// Opens the source, prints every common property, optionally applies a
// resolution, and prints what actually stuck.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lumenworks/camkit/internal/config"
	"github.com/lumenworks/camkit/internal/log"
	"github.com/lumenworks/camkit/pkg/capture"
)

func main() {
	source := flag.String("source", config.Source(), "camera index, file path, or URL")
	width := flag.Int("width", 0, "request frame width (0 = leave as-is)")
	height := flag.Int("height", 0, "request frame height (0 = leave as-is)")
	flag.Parse()

	log.Init(config.LogLevel())

	dev, err := capture.Open(*source)
	if err != nil {
		// No device: show what a configuration would look like instead.
		log.Error("device open failed", "source", *source, "err", err)
		fmt.Println("No capture device available. Known presets:")
		for _, name := range capture.PresetNames() {
			cfg := capture.GetPreset(name)
			fmt.Printf("  %-10s %dx%d @ %dfps quality=%d fourcc=%s\n",
				name, cfg.Width, cfg.Height, cfg.Framerate, cfg.Quality, cfg.FourCC)
		}
		os.Exit(0)
	}
	defer dev.Close()

	fmt.Printf("Source: %s\n\n", dev.Source())
	printProps(dev.Props())

	if *width > 0 && *height > 0 {
		dev.Set(capture.PropFrameWidth, float64(*width))
		dev.Set(capture.PropFrameHeight, float64(*height))
		fmt.Printf("\nAfter requesting %dx%d:\n\n", *width, *height)
		printProps(dev.Props())
	}
}

func printProps(p capture.Props) {
	fmt.Printf("  width         %d\n", p.Width)
	fmt.Printf("  height        %d\n", p.Height)
	fmt.Printf("  fps           %.2f\n", p.FPS)
	fmt.Printf("  brightness    %.2f\n", p.Brightness)
	fmt.Printf("  contrast      %.2f\n", p.Contrast)
	fmt.Printf("  saturation    %.2f\n", p.Saturation)
	fmt.Printf("  exposure      %.2f\n", p.Exposure)
	fmt.Printf("  auto exposure %.2f\n", p.AutoExposure)
	fmt.Printf("  fourcc        %s\n", p.FourCC)
}
