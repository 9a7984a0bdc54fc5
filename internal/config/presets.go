package config

var Presets = map[string]func() *Config{
	"reference": DefaultConfig,
	"undamped": func() *Config {
		c := DefaultConfig()
		c.Field = "pendulum"
		return c
	},
	"attractor": func() *Config {
		c := DefaultConfig()
		c.Field = "attractor"
		return c
	},
	"preview": func() *Config {
		c := DefaultConfig()
		c.Width, c.Height = 200, 200
		c.Frames = 20
		c.Lines = 12
		c.Steps = 4000
		c.Threshold = 50
		return c
	},
	"doublewell": func() *Config {
		c := DefaultConfig()
		c.Field = "doublewell"
		c.Wrap.Enabled = false
		c.View = ViewConfig{Q: Range{Lo: -2.5, Hi: 2.5}, P: Range{Lo: -4, Hi: 4}}
		c.Momentum = Range{Lo: -4, Hi: 4}
		return c
	},
	"vanderpol": func() *Config {
		c := DefaultConfig()
		c.Field = "vanderpol"
		c.DampingAmplitude = 2
		c.Wrap.Enabled = false
		c.View = ViewConfig{Q: Range{Lo: -4, Hi: 4}, P: Range{Lo: -6, Hi: 6}}
		c.Momentum = Range{Lo: -5, Hi: 5}
		c.Steps = 5000
		return c
	},
	"euler": func() *Config {
		c := DefaultConfig()
		c.Integrator = "euler"
		return c
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
