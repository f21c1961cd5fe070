// Serve - run the camkit preview server
//
// Captures continuously and serves the stream over HTTP:
//
//	GET  /stream            multipart MJPEG stream
//	GET  /snapshot          most recent frame as JPEG
//	GET  /ws/camera         binary JPEG frames over websocket
//	GET  /ws/status         JSON status pushes over websocket
//	GET  /api/status        server status
//	GET  /api/props         live device properties
//	GET  /api/config        capture configuration
//	POST /api/config        update configuration ({"preset":"720p", ...})
//	POST /api/snapshot      save the current frame to the gallery
//	GET  /api/snapshots     gallery listing
//	POST /api/record/start  start recording to the output directory
//	POST /api/record/stop   stop recording
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lumenworks/camkit/internal/config"
	"github.com/lumenworks/camkit/internal/log"
	"github.com/lumenworks/camkit/pkg/capture"
	"github.com/lumenworks/camkit/pkg/runner"
	"github.com/lumenworks/camkit/pkg/sink"
	"github.com/lumenworks/camkit/pkg/web"
)

func main() {
	source := flag.String("source", config.Source(), "camera index, file path, or URL")
	port := flag.String("port", config.Port(), "HTTP listen port")
	outDir := flag.String("out", config.OutDir(), "directory for snapshots and recordings")
	flag.Parse()

	log.Init(config.LogLevel())

	dev, err := capture.Open(*source)
	if err != nil {
		log.Error("device open failed", "source", *source, "err", err)
		os.Exit(1)
	}

	manager := capture.NewManager()
	manager.OnConfigChange = func(cfg capture.Config) error {
		return cfg.Apply(dev)
	}

	server := web.NewServer(*port, *outDir, manager)
	server.OnProps = func() capture.Props { return dev.Props() }

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The capture loop owns the device and the server-as-sink; both are
	// released when the loop ends, whatever ends it.
	done := make(chan runner.Stats, 1)
	go func() {
		done <- runner.New(dev, runner.Options{
			Sinks: []sink.Sink{server},
		}).Run(ctx)
	}()

	go func() {
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			log.Warn("server shutdown failed", "err", err)
		}
	}()

	if err := server.Start(); err != nil {
		log.Error("server failed", "err", err)
	}

	stop()
	stats := <-done
	log.Info("capture loop finished",
		"frames", stats.Frames, "fps", stats.FPS(), "reason", stats.StopReason)
}
