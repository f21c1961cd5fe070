// Package web provides the camkit preview server: live MJPEG/websocket
// preview, snapshot and recording control, and a gallery of saved stills.
package web

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/lumenworks/camkit/internal/log"
	"github.com/lumenworks/camkit/pkg/capture"
	"github.com/lumenworks/camkit/pkg/frame"
	"github.com/lumenworks/camkit/pkg/hub"
	"github.com/lumenworks/camkit/pkg/sink"
)

// RecordingState describes the current recording session, if any.
type RecordingState struct {
	Active    bool      `json:"active"`
	ID        string    `json:"id,omitempty"`
	Path      string    `json:"path,omitempty"`
	StartedAt time.Time `json:"started_at,omitempty"`
	Frames    int       `json:"frames"`
}

// Server is the preview server. It is also a sink.Sink: wire it into a
// capture loop and every frame becomes available to HTTP clients.
type Server struct {
	app     *fiber.App
	port    string
	outDir  string
	manager *capture.Manager

	cameraHub *hub.Hub
	statusHub *hub.Hub

	// OnProps, if set, supplies the live device property snapshot for
	// the /api/props endpoint.
	OnProps func() capture.Props

	// done releases long-lived streaming responses; without it a live
	// /stream viewer keeps the fasthttp connection busy and Shutdown
	// never returns.
	done     chan struct{}
	doneOnce sync.Once

	mu         sync.RWMutex
	latest     []byte // most recent JPEG frame
	frames     int
	started    time.Time
	recorder   *sink.Recorder
	recording  RecordingState
	wantRecord bool // recorder opens lazily on the next frame
	closed     bool
}

// NewServer creates a preview server. Frames pushed via Put are encoded
// once and fanned out to every connected client.
func NewServer(port, outDir string, manager *capture.Manager) *Server {
	s := &Server{
		port:      port,
		outDir:    outDir,
		manager:   manager,
		cameraHub: hub.New("camera"),
		statusHub: hub.New("status"),
		done:      make(chan struct{}),
		started:   time.Now(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "camkit preview",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/config", s.handleGetConfig)
	api.Post("/config", s.handleSetConfig)
	api.Get("/presets", s.handlePresets)
	api.Get("/props", s.handleProps)
	api.Post("/snapshot", s.handleTakeSnapshot)
	api.Get("/snapshots", s.handleListSnapshots)
	api.Post("/record/start", s.handleRecordStart)
	api.Post("/record/stop", s.handleRecordStop)

	app.Get("/snapshot", s.handleSnapshotJPEG)
	app.Get("/stream", s.handleStream)
	app.Get("/thumbs/:name", s.handleThumb)
	app.Get("/snapshots/:name", s.handleSnapshotFile)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// Start runs the server and the broadcast hub. Blocks until Shutdown.
func (s *Server) Start() error {
	go s.cameraHub.Run()
	go s.statusHub.Run()
	log.Info("preview server listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown stops the HTTP listener. Streaming responses are released
// first so Shutdown does not wait on connected viewers.
func (s *Server) Shutdown() error {
	s.signalDone()
	return s.app.Shutdown()
}

func (s *Server) signalDone() {
	s.doneOnce.Do(func() { close(s.done) })
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Put implements sink.Sink: publish one frame to all preview clients and,
// when a recording is active, append it to the recording.
func (s *Server) Put(f *frame.Frame) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return sink.ErrClosed
	}
	quality := s.manager.GetConfig().Quality
	wantRecord := s.wantRecord
	rec := s.recorder
	s.mu.Unlock()

	data, err := f.EncodeJPEG(quality)
	if err != nil {
		return fmt.Errorf("web: encode frame: %w", err)
	}

	s.mu.Lock()
	s.latest = data
	s.frames++
	s.mu.Unlock()

	s.cameraHub.BroadcastBinary(data)

	// Recorder opens lazily so it can match the live frame geometry.
	if wantRecord && rec == nil {
		rec, err = s.openRecorder(f)
		if err != nil {
			// Report and fall back to preview-only operation.
			log.Error("recorder open failed, preview continues", "err", err)
			s.mu.Lock()
			s.wantRecord = false
			s.recording = RecordingState{}
			s.mu.Unlock()
			return nil
		}
	}

	if rec != nil {
		if err := rec.Put(f); err != nil {
			log.Warn("recording frame dropped", "err", err)
		} else {
			s.mu.Lock()
			s.recording.Frames = rec.Frames()
			s.mu.Unlock()
		}
	}
	return nil
}

// Close implements sink.Sink. It finalizes any active recording and
// releases streaming responses.
func (s *Server) Close() error {
	s.signalDone()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.recorder != nil {
		err := s.recorder.Close()
		s.recorder = nil
		s.recording = RecordingState{}
		return err
	}
	return nil
}

func (s *Server) openRecorder(f *frame.Frame) (*sink.Recorder, error) {
	cfg := s.manager.GetConfig()

	s.mu.Lock()
	id := s.recording.ID
	s.mu.Unlock()

	path := filepath.Join(s.outDir, fmt.Sprintf("rec-%s.avi", id))
	rec, err := sink.NewRecorder(path, cfg.FourCC, float64(cfg.Framerate), f.Width(), f.Height())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.recorder = rec
	s.recording.Path = path
	s.mu.Unlock()

	log.Info("recording started", "path", path, "fourcc", cfg.FourCC)
	return rec, nil
}

// StartRecording arms a new recording session. The container is opened on
// the next published frame so dimensions always match the live stream.
func (s *Server) StartRecording() (RecordingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wantRecord || s.recorder != nil {
		return s.recording, fmt.Errorf("web: recording already active")
	}
	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return RecordingState{}, fmt.Errorf("web: create output dir: %w", err)
	}
	s.wantRecord = true
	s.recording = RecordingState{
		Active:    true,
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
	}
	return s.recording, nil
}

// StopRecording finalizes the active recording and returns its final state.
func (s *Server) StopRecording() (RecordingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.wantRecord && s.recorder == nil {
		return RecordingState{}, fmt.Errorf("web: no active recording")
	}
	final := s.recording
	final.Active = false
	if s.recorder != nil {
		final.Frames = s.recorder.Frames()
		if err := s.recorder.Close(); err != nil {
			log.Warn("recording close failed", "err", err)
		}
		log.Info("recording stopped", "path", final.Path, "frames", final.Frames)
	}
	s.recorder = nil
	s.wantRecord = false
	s.recording = RecordingState{}
	return final, nil
}

func (s *Server) currentStatus() Status {
	s.mu.RLock()
	st := Status{
		UptimeSeconds: time.Since(s.started).Seconds(),
		Frames:        s.frames,
		HasFrame:      s.latest != nil,
		Recording:     s.recording,
	}
	s.mu.RUnlock()
	st.Clients = s.cameraHub.ClientCount()
	return st
}

// broadcastStatus pushes the current status to /ws/status subscribers.
// Called after state changes a dashboard would want to reflect.
func (s *Server) broadcastStatus() {
	if err := s.statusHub.BroadcastJSON(s.currentStatus()); err != nil {
		log.Warn("status broadcast failed", "err", err)
	}
}

// LatestFrame returns the most recent JPEG frame, or nil if none yet.
func (s *Server) LatestFrame() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}
