// Package sink provides destinations for captured frames: display
// windows, video recorders, and still-image writers.
package sink

import (
	"errors"

	"github.com/lumenworks/camkit/pkg/frame"
)

// ErrClosed is returned when putting frames into a closed sink.
var ErrClosed = errors.New("sink: closed")

// Sink consumes frames. Put must not retain the frame or its Mat past the
// call; the caller still owns the frame. Close must be called to finalize
// the sink and is safe to call more than once.
type Sink interface {
	Put(*frame.Frame) error
	Close() error
}
