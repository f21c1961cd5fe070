package runner

import (
	"context"
	"testing"
	"time"

	"github.com/lumenworks/camkit/pkg/frame"
	"github.com/lumenworks/camkit/pkg/sink"
	"github.com/lumenworks/camkit/pkg/transform"
)

// fakeSource yields a fixed number of synthetic frames, then end-of-stream.
type fakeSource struct {
	remaining int
	closed    int
}

func (s *fakeSource) Read() (*frame.Frame, bool) {
	if s.remaining <= 0 {
		return nil, false
	}
	s.remaining--
	return frame.NewWithSize(16, 12, 3), true
}

func (s *fakeSource) Close() error {
	s.closed++
	return nil
}

// countSink records puts and closes; optionally fails every Put.
type countSink struct {
	puts   int
	closed int
	fail   error
}

func (s *countSink) Put(*frame.Frame) error {
	s.puts++
	return s.fail
}

func (s *countSink) Close() error {
	s.closed++
	return nil
}

// scriptedPoller returns key codes in order, then -1 forever.
type scriptedPoller struct {
	keys []int
	i    int
}

func (p *scriptedPoller) Poll(time.Duration) int {
	if p.i >= len(p.keys) {
		return -1
	}
	k := p.keys[p.i]
	p.i++
	return k
}

func TestRunUntilEndOfStream(t *testing.T) {
	src := &fakeSource{remaining: 7}
	out := &countSink{}

	stats := New(src, Options{Sinks: []sink.Sink{out}}).Run(context.Background())

	if stats.Frames != 7 {
		t.Errorf("Frames = %d, want 7", stats.Frames)
	}
	if stats.StopReason != StopEndOfStream {
		t.Errorf("StopReason = %q, want %q", stats.StopReason, StopEndOfStream)
	}
	if out.puts != 7 {
		t.Errorf("sink puts = %d, want 7 (at most once per iteration)", out.puts)
	}
	if src.closed != 1 {
		t.Errorf("source closed %d times, want 1", src.closed)
	}
	if out.closed != 1 {
		t.Errorf("sink closed %d times, want 1", out.closed)
	}
}

func TestEndOfStreamOnFirstPull(t *testing.T) {
	src := &fakeSource{remaining: 0}
	out := &countSink{}

	stats := New(src, Options{Sinks: []sink.Sink{out}}).Run(context.Background())

	// Zero side effects, but handles still released.
	if stats.Frames != 0 {
		t.Errorf("Frames = %d, want 0", stats.Frames)
	}
	if out.puts != 0 {
		t.Errorf("sink puts = %d, want 0", out.puts)
	}
	if src.closed != 1 || out.closed != 1 {
		t.Errorf("release: source=%d sink=%d, want 1/1", src.closed, out.closed)
	}
}

func TestStopKeyEndsRunAfterIteration(t *testing.T) {
	src := &fakeSource{remaining: 100}
	out := &countSink{}
	poller := &scriptedPoller{keys: []int{-1, -1, 'q'}}

	stats := New(src, Options{
		Sinks:  []sink.Sink{out},
		Poller: poller,
	}).Run(context.Background())

	// Stop key seen on iteration 3, after that iteration's side effects.
	if stats.Frames != 3 {
		t.Errorf("Frames = %d, want 3", stats.Frames)
	}
	if out.puts != 3 {
		t.Errorf("sink puts = %d, want 3", out.puts)
	}
	if stats.StopReason != StopKey {
		t.Errorf("StopReason = %q, want %q", stats.StopReason, StopKey)
	}
	if stats.StopKeyCode != 'q' {
		t.Errorf("StopKeyCode = %d, want %d", stats.StopKeyCode, 'q')
	}
	if src.closed != 1 {
		t.Errorf("source closed %d times, want 1", src.closed)
	}
}

func TestEscIsDefaultStopKey(t *testing.T) {
	src := &fakeSource{remaining: 100}
	poller := &scriptedPoller{keys: []int{27}}

	stats := New(src, Options{Poller: poller}).Run(context.Background())

	if stats.StopReason != StopKey || stats.Frames != 1 {
		t.Errorf("got reason=%q frames=%d, want key/1", stats.StopReason, stats.Frames)
	}
}

func TestNonStopKeyIsIgnored(t *testing.T) {
	src := &fakeSource{remaining: 3}
	poller := &scriptedPoller{keys: []int{'a', 'b', 'c'}}

	stats := New(src, Options{Poller: poller}).Run(context.Background())

	if stats.StopReason != StopEndOfStream {
		t.Errorf("StopReason = %q, want %q", stats.StopReason, StopEndOfStream)
	}
	if stats.Frames != 3 {
		t.Errorf("Frames = %d, want 3", stats.Frames)
	}
}

func TestSinkErrorDoesNotAbort(t *testing.T) {
	src := &fakeSource{remaining: 4}
	bad := &countSink{fail: sink.ErrClosed}
	good := &countSink{}

	stats := New(src, Options{Sinks: []sink.Sink{bad, good}}).Run(context.Background())

	// The failing sink never blocks the healthy one: sinks are independent.
	if stats.Frames != 4 {
		t.Errorf("Frames = %d, want 4", stats.Frames)
	}
	if good.puts != 4 {
		t.Errorf("good sink puts = %d, want 4", good.puts)
	}
	if stats.SinkErrors != 4 {
		t.Errorf("SinkErrors = %d, want 4", stats.SinkErrors)
	}
}

func TestMaxFrames(t *testing.T) {
	src := &fakeSource{remaining: 100}
	out := &countSink{}

	stats := New(src, Options{
		Sinks:     []sink.Sink{out},
		MaxFrames: 10,
	}).Run(context.Background())

	if stats.Frames != 10 {
		t.Errorf("Frames = %d, want 10", stats.Frames)
	}
	if stats.StopReason != StopMaxFrames {
		t.Errorf("StopReason = %q, want %q", stats.StopReason, StopMaxFrames)
	}
}

func TestContextCancellation(t *testing.T) {
	src := &fakeSource{remaining: 100}
	out := &countSink{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats := New(src, Options{Sinks: []sink.Sink{out}}).Run(ctx)

	if stats.StopReason != StopContext {
		t.Errorf("StopReason = %q, want %q", stats.StopReason, StopContext)
	}
	if stats.Frames != 0 {
		t.Errorf("Frames = %d, want 0", stats.Frames)
	}
	if src.closed != 1 || out.closed != 1 {
		t.Errorf("release: source=%d sink=%d, want 1/1", src.closed, out.closed)
	}
}

func TestTransformsAppliedPerFrame(t *testing.T) {
	src := &fakeSource{remaining: 2}

	var channels []int
	probe := &probeSink{onPut: func(f *frame.Frame) {
		channels = append(channels, f.Channels())
	}}

	New(src, Options{
		Transforms: []transform.Transform{transform.Grayscale()},
		Sinks:      []sink.Sink{probe},
	}).Run(context.Background())

	if len(channels) != 2 {
		t.Fatalf("probe saw %d frames, want 2", len(channels))
	}
	for i, ch := range channels {
		if ch != 1 {
			t.Errorf("frame %d channels = %d, want 1 after grayscale", i, ch)
		}
	}
}

// probeSink invokes a callback per frame.
type probeSink struct {
	onPut func(*frame.Frame)
}

func (s *probeSink) Put(f *frame.Frame) error {
	s.onPut(f)
	return nil
}

func (s *probeSink) Close() error { return nil }

func TestStatsFPS(t *testing.T) {
	s := Stats{Frames: 30, Elapsed: time.Second}
	if got := s.FPS(); got != 30 {
		t.Errorf("FPS() = %v, want 30", got)
	}

	var zero Stats
	if got := zero.FPS(); got != 0 {
		t.Errorf("zero FPS() = %v, want 0", got)
	}
}
