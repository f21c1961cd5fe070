package web

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/lumenworks/camkit/pkg/capture"
	"github.com/lumenworks/camkit/pkg/hub"
	"github.com/lumenworks/camkit/pkg/imgio"
)

// Status is the response shape of /api/status.
type Status struct {
	UptimeSeconds float64        `json:"uptime_seconds"`
	Frames        int            `json:"frames"`
	Clients       int            `json:"clients"`
	HasFrame      bool           `json:"has_frame"`
	Recording     RecordingState `json:"recording"`
}

// SnapshotInfo describes one saved still for the gallery listing.
type SnapshotInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.currentStatus())
}

func (s *Server) handleGetConfig(c *fiber.Ctx) error {
	return c.JSON(s.manager.GetConfigJSON())
}

func (s *Server) handleSetConfig(c *fiber.Ctx) error {
	var params map[string]interface{}
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid JSON body",
		})
	}
	if err := s.manager.UpdateConfig(params); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(s.manager.GetConfigJSON())
}

func (s *Server) handlePresets(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"presets": capture.PresetNames(),
	})
}

func (s *Server) handleProps(c *fiber.Ctx) error {
	if s.OnProps == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "no device attached",
		})
	}
	return c.JSON(s.OnProps())
}

// handleSnapshotJPEG serves the most recent frame as a single JPEG.
func (s *Server) handleSnapshotJPEG(c *fiber.Ctx) error {
	data := s.LatestFrame()
	if data == nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("no frame yet")
	}
	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.Send(data)
}

// handleTakeSnapshot persists the most recent frame to the output
// directory and returns its gallery name.
func (s *Server) handleTakeSnapshot(c *fiber.Ctx) error {
	data := s.LatestFrame()
	if data == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "no frame yet",
		})
	}
	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	name := fmt.Sprintf("snap-%s.jpg", uuid.New().String())
	if err := os.WriteFile(filepath.Join(s.outDir, name), data, 0o644); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	s.broadcastStatus()
	return c.JSON(fiber.Map{"name": name})
}

func (s *Server) handleListSnapshots(c *fiber.Ctx) error {
	entries, err := os.ReadDir(s.outDir)
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON([]SnapshotInfo{})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	list := make([]SnapshotInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isImageName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		list = append(list, SnapshotInfo{
			Name:     e.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	return c.JSON(list)
}

func (s *Server) handleSnapshotFile(c *fiber.Ctx) error {
	name := filepath.Base(c.Params("name"))
	if !isImageName(name) {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.SendFile(filepath.Join(s.outDir, name))
}

// handleThumb serves a downscaled copy of a saved snapshot,
// generated on the fly with the pure-Go image path.
func (s *Server) handleThumb(c *fiber.Ctx) error {
	name := filepath.Base(c.Params("name"))
	if !isImageName(name) {
		return c.SendStatus(fiber.StatusNotFound)
	}
	data, err := imgio.ThumbnailJPEG(filepath.Join(s.outDir, name), 256, 80)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.Send(data)
}

func (s *Server) handleRecordStart(c *fiber.Ctx) error {
	state, err := s.StartRecording()
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	s.broadcastStatus()
	return c.JSON(state)
}

func (s *Server) handleRecordStop(c *fiber.Ctx) error {
	state, err := s.StopRecording()
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	s.broadcastStatus()
	return c.JSON(state)
}

// handleStream serves the classic multipart MJPEG stream that any browser
// or player can consume without javascript.
func (s *Server) handleStream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "multipart/x-mixed-replace; boundary=frame")
	c.Set(fiber.HeaderCacheControl, "no-cache")

	framerate := s.manager.GetConfig().Framerate
	if framerate < 1 {
		framerate = 1
	}
	interval := time.Second / time.Duration(framerate)

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		for {
			data := s.LatestFrame()
			if data != nil {
				fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(data))
				if _, err := w.Write(data); err != nil {
					return
				}
				if _, err := w.WriteString("\r\n"); err != nil {
					return
				}
				// Flush error means the client went away.
				if err := w.Flush(); err != nil {
					return
				}
			}
			// A failed write only detects a gone client after the first
			// frame; the done channel ends the stream on server close and
			// keeps Shutdown from waiting on viewers.
			select {
			case <-s.done:
				return
			case <-time.After(interval):
			}
		}
	})
	return nil
}

func (s *Server) handleCameraWS(conn *websocket.Conn) {
	client := hub.NewClient(s.cameraHub, conn)
	client.Run()
}

func (s *Server) handleStatusWS(conn *websocket.Conn) {
	client := hub.NewClient(s.statusHub, conn)
	client.Run()
}

func isImageName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".bmp":
		return true
	}
	return false
}
