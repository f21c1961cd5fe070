package capture

// Preset names for common configurations
const (
	PresetDefault  = "default"
	Preset480p     = "480p"
	Preset720p     = "720p"
	Preset1080p    = "1080p"
	PresetFast     = "fast"
	PresetLowLight = "lowlight"
)

// Presets returns all available preset configurations.
func Presets() map[string]Config {
	return map[string]Config{
		PresetDefault:  DefaultConfig(),
		Preset480p:     SD480Config(),
		Preset720p:     HD720Config(),
		Preset1080p:    HD1080Config(),
		PresetFast:     FastConfig(),
		PresetLowLight: LowLightConfig(),
	}
}

// PresetNames returns the list of available preset names.
func PresetNames() []string {
	return []string{
		PresetDefault,
		Preset480p,
		Preset720p,
		Preset1080p,
		PresetFast,
		PresetLowLight,
	}
}

// GetPreset returns a preset config by name, or nil if not found.
func GetPreset(name string) *Config {
	presets := Presets()
	if cfg, ok := presets[name]; ok {
		return &cfg
	}
	return nil
}

// SD480Config returns the classic 640x480 configuration.
// Cheapest to capture and encode; fine for demos.
func SD480Config() Config {
	cfg := DefaultConfig()
	cfg.Width = 640
	cfg.Height = 480
	return cfg
}

// HD720Config returns 720p HD configuration.
// Good balance of quality and performance.
func HD720Config() Config {
	cfg := DefaultConfig()
	cfg.Width = 1280
	cfg.Height = 720
	return cfg
}

// HD1080Config returns 1080p Full HD configuration.
func HD1080Config() Config {
	cfg := DefaultConfig()
	cfg.Width = 1920
	cfg.Height = 1080
	return cfg
}

// FastConfig returns a low-resolution, high-framerate configuration
// for latency-sensitive preview.
func FastConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 640
	cfg.Height = 480
	cfg.Framerate = 60
	cfg.Quality = 70
	return cfg
}

// LowLightConfig returns a configuration for dim scenes: lower framerate
// so the sensor can take longer exposures, brightness nudged up.
func LowLightConfig() Config {
	cfg := DefaultConfig()
	cfg.Framerate = 15
	cfg.Brightness = 0.3
	return cfg
}
