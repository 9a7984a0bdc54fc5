package config

import (
	"fmt"
	"maps"
	"math"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
	"github.com/mtyler88/Phase-Diagrams/internal/integrators"
	"github.com/mtyler88/Phase-Diagrams/internal/physics"
	"github.com/mtyler88/Phase-Diagrams/internal/viz"
)

const (
	DefaultWidth     = 800
	DefaultHeight    = 800
	DefaultFrames    = 100
	DefaultLines     = 50
	DefaultSteps     = 20000
	DefaultDt        = 0.01
	DefaultFrequency = 0.5
	DefaultColorStep = 5.0
	DefaultOutputDir = "phase_gif"
)

// Range is a [lo, hi] pair written as a YAML flow sequence.
type Range struct {
	Lo, Hi float64
}

func (r Range) Interval() dynamo.Interval {
	return dynamo.Interval{Lo: r.Lo, Hi: r.Hi}
}

func (r Range) finite() bool {
	return finite(r.Lo, r.Hi)
}

func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	var pair []float64
	if err := node.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("line %d: range needs exactly two values, got %d", node.Line, len(pair))
	}
	r.Lo, r.Hi = pair[0], pair[1]
	return nil
}

func (r Range) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []float64{r.Lo, r.Hi} {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprint(v)})
	}
	return n, nil
}

type Config struct {
	Width            int        `yaml:"width"`
	Height           int        `yaml:"height"`
	Frames           int        `yaml:"frames"`
	Lines            int        `yaml:"lines"`
	Steps            int        `yaml:"steps"`
	Dt               float64    `yaml:"dt"`
	Integrator       string     `yaml:"integrator"`
	Field            string     `yaml:"field"`
	Frequency        float64    `yaml:"frequency"`
	DampingAmplitude float64    `yaml:"damping_amplitude"`
	Wrap             WrapConfig `yaml:"wrap"`
	View             ViewConfig `yaml:"view"`
	Momentum         Range      `yaml:"momentum"`
	Threshold        float64    `yaml:"threshold"`
	ColorScale       float64    `yaml:"color_scale"`
	ColorMode        string     `yaml:"color_mode"`
	OutputDir        string     `yaml:"output_dir"`
	Workers          int        `yaml:"workers"`
	FailFast         bool       `yaml:"fail_fast"`
	ValidateState    bool       `yaml:"validate_state"`

	// FieldParams overrides named field parameters, e.g. {A: 2} for doublewell.
	FieldParams map[string]float64 `yaml:"field_params,omitempty"`
}

type WrapConfig struct {
	Enabled bool  `yaml:"enabled"`
	Bounds  Range `yaml:"bounds"`
}

// ViewConfig is the phase-space box that fills the canvas.
type ViewConfig struct {
	Q Range `yaml:"q"`
	P Range `yaml:"p"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		Frames:           DefaultFrames,
		Lines:            DefaultLines,
		Steps:            DefaultSteps,
		Dt:               DefaultDt,
		Integrator:       "rk4",
		Field:            "dissipative",
		Frequency:        DefaultFrequency,
		DampingAmplitude: 1.0,
		Wrap: WrapConfig{
			Enabled: true,
			Bounds:  Range{Lo: -math.Pi, Hi: math.Pi},
		},
		View: ViewConfig{
			Q: Range{Lo: -math.Pi, Hi: math.Pi},
			P: Range{Lo: -4, Hi: 4},
		},
		Momentum:   Range{Lo: -12, Hi: 12},
		Threshold:  viz.DefaultThreshold,
		ColorScale: DefaultColorStep,
		ColorMode:  "clamp",
		OutputDir:  DefaultOutputDir,
		FailFast:   true,
	}
}

func Load(path string) (*Config, error) {
	return LoadWith(DefaultConfig(), path)
}

// LoadWith overlays the YAML file at path onto base. Keys absent from the
// file keep their base values.
func LoadWith(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	cfg.FieldParams = maps.Clone(base.FieldParams)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting the renderer cannot work with.
func (c *Config) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{dynamo.ErrParameterBounds}, args...)...)
	}

	switch {
	case c.Width <= 0 || c.Height <= 0:
		return bad("canvas must be non-empty, got %dx%d", c.Width, c.Height)
	case c.Frames <= 0:
		return bad("frames must be positive, got %d", c.Frames)
	case c.Lines <= 0:
		return bad("lines must be positive, got %d", c.Lines)
	case c.Steps <= 0:
		return bad("steps must be positive, got %d", c.Steps)
	case !(c.Dt > 0):
		return bad("dt must be positive, got %g", c.Dt)
	case !finite(c.Dt, c.Threshold, c.ColorScale, c.Frequency, c.DampingAmplitude):
		return bad("dt, threshold, color_scale, frequency and damping_amplitude must be finite")
	case !c.View.Q.finite() || !c.View.P.finite():
		return bad("view box %v x %v must be finite", c.View.Q, c.View.P)
	case !c.Momentum.finite():
		return bad("momentum range %v must be finite", c.Momentum)
	case c.Wrap.Enabled && !c.Wrap.Bounds.finite():
		return bad("wrap bounds %v must be finite", c.Wrap.Bounds)
	case c.Workers < 0:
		return bad("workers must not be negative, got %d", c.Workers)
	case !(c.Threshold > 0):
		return bad("threshold must be positive, got %g", c.Threshold)
	case !(c.ColorScale > 0):
		return bad("color_scale must be positive, got %g", c.ColorScale)
	case c.View.Q.Lo == c.View.Q.Hi || c.View.P.Lo == c.View.P.Hi:
		return bad("view box must have non-zero extent")
	case c.Momentum.Lo == c.Momentum.Hi && c.Lines > 1:
		return bad("momentum range is empty")
	case c.Wrap.Enabled && !(c.Wrap.Bounds.Hi > c.Wrap.Bounds.Lo):
		return bad("wrap bounds %v have no positive period", c.Wrap.Bounds)
	}

	if _, err := physics.New(c.Field, physics.Params{Overrides: c.FieldParams}); err != nil {
		return err
	}
	if _, err := integrators.New(c.Integrator); err != nil {
		return err
	}
	if _, err := viz.ParseColorMode(c.ColorMode); err != nil {
		return err
	}
	return nil
}

// WorkerCount resolves Workers, where zero means one per CPU.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
