package capture

import (
	"math"

	"gocv.io/x/gocv"
)

// Prop identifies a tunable device property.
type Prop = gocv.VideoCaptureProperties

// Commonly used properties, re-exported so callers don't need to import
// gocv for plain property access.
const (
	PropFrameWidth   = gocv.VideoCaptureFrameWidth
	PropFrameHeight  = gocv.VideoCaptureFrameHeight
	PropFPS          = gocv.VideoCaptureFPS
	PropBrightness   = gocv.VideoCaptureBrightness
	PropContrast     = gocv.VideoCaptureContrast
	PropSaturation   = gocv.VideoCaptureSaturation
	PropExposure     = gocv.VideoCaptureExposure
	PropAutoExposure = gocv.VideoCaptureAutoExposure
	PropFOURCC       = gocv.VideoCaptureFOURCC
	PropFrameCount   = gocv.VideoCaptureFrameCount
	PropPosFrames    = gocv.VideoCapturePosFrames
)

// Props is a point-in-time snapshot of the device property surface.
// Values the driver does not support read back as 0 or -1; that is a
// driver quirk, not an error.
type Props struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	FPS          float64 `json:"fps"`
	Brightness   float64 `json:"brightness"`
	Contrast     float64 `json:"contrast"`
	Saturation   float64 `json:"saturation"`
	Exposure     float64 `json:"exposure"`
	AutoExposure float64 `json:"auto_exposure"`
	FourCC       string  `json:"fourcc"`
}

// Get reads a single raw property value from the driver.
func (d *Device) Get(p Prop) float64 {
	if d.closed {
		return 0
	}
	return d.cap.Get(p)
}

// Set writes a single raw property value. Drivers silently ignore values
// they do not support, so callers that care should read the value back.
func (d *Device) Set(p Prop, value float64) error {
	if d.closed {
		return ErrDeviceClosed
	}
	d.cap.Set(p, value)
	return nil
}

// Props returns a snapshot of the common properties.
func (d *Device) Props() Props {
	return Props{
		Width:        int(d.Get(PropFrameWidth)),
		Height:       int(d.Get(PropFrameHeight)),
		FPS:          d.Get(PropFPS),
		Brightness:   d.Get(PropBrightness),
		Contrast:     d.Get(PropContrast),
		Saturation:   d.Get(PropSaturation),
		Exposure:     d.Get(PropExposure),
		AutoExposure: d.Get(PropAutoExposure),
		FourCC:       FourCCString(d.Get(PropFOURCC)),
	}
}

// FourCCString decodes the numeric FOURCC property into its
// four-character codec tag, e.g. "MJPG" or "YUYV".
func FourCCString(v float64) string {
	if v <= 0 || math.IsNaN(v) {
		return ""
	}
	code := uint32(v)
	b := []byte{
		byte(code & 0xFF),
		byte((code >> 8) & 0xFF),
		byte((code >> 16) & 0xFF),
		byte((code >> 24) & 0xFF),
	}
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return ""
		}
	}
	return string(b)
}
