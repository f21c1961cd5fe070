package capture

// Config holds the tunable capture parameters.
// These can be modified via the preview server API at runtime.
type Config struct {
	// === Resolution ===
	Width     int `json:"width"`     // Frame width in pixels
	Height    int `json:"height"`    // Frame height in pixels
	Framerate int `json:"framerate"` // Target FPS
	Quality   int `json:"quality"`   // JPEG quality 1-100 for snapshots/streaming

	// === Picture Controls ===
	// All picture controls use 0 to mean "leave the driver default".
	// Otherwise values are normalized to -1.0 .. +1.0 and scaled onto
	// whatever range the driver exposes.
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`

	// Exposure is manual exposure; 0 keeps auto exposure enabled.
	Exposure float64 `json:"exposure"`

	// === Recording ===
	// FourCC is the four-character codec tag used when recording,
	// e.g. "MJPG" for Motion-JPEG in an AVI container.
	FourCC string `json:"fourcc"`
}

// Practical limits for consumer UVC cameras.
const (
	MaxWidth     = 7680
	MaxHeight    = 4320
	MaxFramerate = 120
)

// DefaultConfig returns the recommended configuration: 1280x720 at 30fps,
// Motion-JPEG recording, all picture controls on driver defaults.
func DefaultConfig() Config {
	return Config{
		Width:     1280,
		Height:    720,
		Framerate: 30,
		Quality:   85,

		Brightness: 0,
		Contrast:   0,
		Saturation: 0,
		Exposure:   0, // Auto

		FourCC: "MJPG",
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Width < 160 || c.Width > MaxWidth {
		errors = append(errors, "width must be between 160 and 7680")
	}
	if c.Height < 120 || c.Height > MaxHeight {
		errors = append(errors, "height must be between 120 and 4320")
	}
	if c.Framerate < 1 || c.Framerate > MaxFramerate {
		errors = append(errors, "framerate must be between 1 and 120")
	}
	if c.Quality < 1 || c.Quality > 100 {
		errors = append(errors, "quality must be between 1 and 100")
	}

	if c.Brightness < -1.0 || c.Brightness > 1.0 {
		errors = append(errors, "brightness must be between -1.0 and 1.0")
	}
	if c.Contrast < -1.0 || c.Contrast > 1.0 {
		errors = append(errors, "contrast must be between -1.0 and 1.0")
	}
	if c.Saturation < -1.0 || c.Saturation > 1.0 {
		errors = append(errors, "saturation must be between -1.0 and 1.0")
	}
	if c.Exposure < 0 || c.Exposure > 1.0 {
		errors = append(errors, "exposure must be 0 (auto) or between 0 and 1.0")
	}

	if len(c.FourCC) != 4 {
		errors = append(errors, "fourcc must be exactly four characters")
	}

	return errors
}

// Apply pushes the resolution and picture controls to an open device.
// Drivers ignore values they do not support; Props() shows what stuck.
func (c *Config) Apply(d *Device) error {
	if d == nil || !d.IsOpened() {
		return ErrDeviceClosed
	}

	d.Set(PropFrameWidth, float64(c.Width))
	d.Set(PropFrameHeight, float64(c.Height))
	d.Set(PropFPS, float64(c.Framerate))

	if c.Brightness != 0 {
		d.Set(PropBrightness, c.Brightness)
	}
	if c.Contrast != 0 {
		d.Set(PropContrast, c.Contrast)
	}
	if c.Saturation != 0 {
		d.Set(PropSaturation, c.Saturation)
	}
	if c.Exposure != 0 {
		// Manual exposure: disable AE first, then set the value.
		d.Set(PropAutoExposure, 0.25)
		d.Set(PropExposure, c.Exposure)
	}

	return nil
}
