// Package runner drives the capture loop: pull a frame, transform it,
// fan it out to sinks, poll for cancellation, release everything on the
// way out.
package runner

import (
	"context"
	"time"

	"github.com/lumenworks/camkit/internal/log"
	"github.com/lumenworks/camkit/pkg/frame"
	"github.com/lumenworks/camkit/pkg/sink"
	"github.com/lumenworks/camkit/pkg/transform"
)

// Source produces a lazy, unbounded sequence of frames.
// *capture.Device satisfies this.
type Source interface {
	// Read pulls the next frame; false means end-of-stream or failure.
	Read() (*frame.Frame, bool)

	// Close releases the source. Must be idempotent.
	Close() error
}

// KeyPoller is the cancellation input: a bounded wait for a keypress,
// checked once per iteration. *sink.Window satisfies this.
type KeyPoller interface {
	// Poll waits up to timeout and returns the key code, or -1 for none.
	Poll(timeout time.Duration) int
}

// Stop reasons reported in Stats.
const (
	StopEndOfStream = "eos"
	StopKey         = "key"
	StopContext     = "context"
	StopMaxFrames   = "max-frames"
)

// Stats summarizes one completed run.
type Stats struct {
	Frames      int           // frames processed
	SinkErrors  int           // Put errors (logged, not fatal)
	Elapsed     time.Duration // wall time of the run
	StopReason  string        // why the loop ended
	StopKeyCode int           // key that stopped the loop, if StopReason is "key"
}

// FPS returns the average processed frame rate.
func (s Stats) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

// Options configures a Loop. The zero value is usable: no transforms, no
// sinks, no poller, run until end-of-stream.
type Options struct {
	// Transforms are applied in order to every frame.
	Transforms []transform.Transform

	// Sinks each receive the transformed frame at most once per iteration.
	// A sink error is logged and skipped; the other sinks still run.
	Sinks []sink.Sink

	// Poller, if set, is checked once per iteration after side effects.
	Poller KeyPoller

	// StopKeys are the key codes that end the run.
	// Defaults to 'q' and ESC.
	StopKeys []int

	// PollTimeout is the bounded wait passed to the poller per iteration.
	// Defaults to 5ms.
	PollTimeout time.Duration

	// MaxFrames, when positive, caps the number of processed frames.
	MaxFrames int
}

// DefaultStopKeys are the key codes that end a run when none are given.
var DefaultStopKeys = []int{'q', 27} // 'q' and ESC

// Loop owns a source and a set of sinks for the duration of one run.
type Loop struct {
	source Source
	opts   Options
}

// New creates a capture loop. The loop takes ownership of the source and
// every sink: Run releases them all, on every exit path.
func New(source Source, opts Options) *Loop {
	if len(opts.StopKeys) == 0 {
		opts.StopKeys = DefaultStopKeys
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = 5 * time.Millisecond
	}
	return &Loop{source: source, opts: opts}
}

// Run processes frames until end-of-stream, a stop key, context
// cancellation, or the frame cap. The source and all sinks are released
// unconditionally before Run returns.
func (l *Loop) Run(ctx context.Context) (stats Stats) {
	start := time.Now()
	stats.StopReason = StopEndOfStream

	defer func() {
		if err := l.source.Close(); err != nil {
			log.Warn("source close failed", "err", err)
		}
		for _, s := range l.opts.Sinks {
			if err := s.Close(); err != nil {
				log.Warn("sink close failed", "err", err)
			}
		}
		stats.Elapsed = time.Since(start)
	}()

	chain := transform.Chain(l.opts.Transforms...)

	for {
		if ctx != nil && ctx.Err() != nil {
			stats.StopReason = StopContext
			break
		}

		f, ok := l.source.Read()
		if !ok {
			// End-of-stream on the first pull is not special: zero side
			// effects, handles still released by the deferred cleanup.
			stats.StopReason = StopEndOfStream
			break
		}

		// Skip the chain entirely when there are no transforms; Chain
		// would clone every frame just to return it.
		out := f
		if len(l.opts.Transforms) > 0 {
			out = chain.Apply(f)
		}
		for _, s := range l.opts.Sinks {
			if err := s.Put(out); err != nil {
				stats.SinkErrors++
				log.Warn("sink put failed", "err", err)
			}
		}
		if out != f {
			out.Close()
		}
		f.Close()
		stats.Frames++

		if l.opts.MaxFrames > 0 && stats.Frames >= l.opts.MaxFrames {
			stats.StopReason = StopMaxFrames
			break
		}

		if l.opts.Poller != nil {
			key := l.opts.Poller.Poll(l.opts.PollTimeout)
			if key >= 0 && l.isStopKey(key) {
				// Current iteration's side effects are already done.
				stats.StopReason = StopKey
				stats.StopKeyCode = key
				break
			}
		}
	}

	return stats
}

func (l *Loop) isStopKey(key int) bool {
	for _, k := range l.opts.StopKeys {
		if key == k {
			return true
		}
	}
	return false
}
