package render

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/mtyler88/Phase-Diagrams/internal/config"
	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
	"github.com/mtyler88/Phase-Diagrams/internal/integrators"
	"github.com/mtyler88/Phase-Diagrams/internal/trajectory"
	"github.com/mtyler88/Phase-Diagrams/internal/viz"
)

// Sink receives each finished frame. Save is called concurrently from
// several workers, each with a distinct frame index.
type Sink interface {
	Save(frame int, img image.Image) error
}

// Result describes one frame of a run.
type Result struct {
	Frame   int
	Damping float64
	Stats   viz.Stats
	Elapsed time.Duration
	Err     error
}

type Scheduler struct {
	cfg     *config.Config
	sink    Sink
	logger  *log.Logger
	color   viz.Colorizer
	onFrame func(Result)
}

type Option func(*Scheduler)

func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithProgress registers fn to be called after every frame, from the worker
// that rendered it.
func WithProgress(fn func(Result)) Option {
	return func(s *Scheduler) { s.onFrame = fn }
}

func New(cfg *config.Config, sink Sink, opts ...Option) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := viz.ParseColorMode(cfg.ColorMode)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		cfg:    cfg,
		sink:   sink,
		logger: log.Default(),
		color:  viz.Colorizer{Scale: cfg.ColorScale, Mode: mode},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// renderer fits the projection to the canvas. The threshold scales with the
// canvas width so previews on small canvases skip the same segments.
func (s *Scheduler) renderer(c viz.Canvas) (*viz.Renderer, error) {
	b := c.Bounds()
	pr, err := viz.NewProjector(s.cfg.View.Q.Interval(), s.cfg.View.P.Interval(), b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	return &viz.Renderer{
		Projector: pr,
		Colorizer: s.color,
		Threshold: s.cfg.Threshold * float64(b.Dx()) / float64(s.cfg.Width),
	}, nil
}

// Generator builds the trajectory generator cfg describes for field.
func Generator(cfg *config.Config, field dynamo.Field) (*trajectory.Generator, error) {
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	opts := trajectory.Options{Validate: cfg.ValidateState}
	if cfg.Wrap.Enabled {
		b := cfg.Wrap.Bounds.Interval()
		opts.Bounds = &b
	}
	return trajectory.NewGenerator(integ, field, cfg.Dt, opts)
}

// Draw renders every line of frame onto c.
func (s *Scheduler) Draw(c viz.Canvas, frame int) (viz.Stats, error) {
	var total viz.Stats

	plan, err := Plan(s.cfg, frame)
	if err != nil {
		return total, err
	}
	r, err := s.renderer(c)
	if err != nil {
		return total, err
	}
	g, err := Generator(s.cfg, plan.Field)
	if err != nil {
		return total, err
	}

	for line, x0 := range plan.Initial {
		states, err := g.Generate(x0, s.cfg.Steps)
		if err != nil {
			s.logger.Warn("trajectory cut short", "frame", frame, "line", line, "p0", x0.P, "err", err)
		}
		total.Add(r.Draw(c, states))
	}
	return total, nil
}

// RenderFrame renders one frame onto a fresh raster of the configured size.
func (s *Scheduler) RenderFrame(frame int) (*viz.Raster, viz.Stats, error) {
	img := viz.NewRaster(s.cfg.Width, s.cfg.Height)
	st, err := s.Draw(img, frame)
	if err != nil {
		return nil, st, err
	}
	return img, st, nil
}

func (s *Scheduler) frame(frame int) Result {
	start := time.Now()
	res := Result{Frame: frame, Damping: Damping(s.cfg, frame)}

	img, st, err := s.RenderFrame(frame)
	res.Stats = st
	if err == nil && s.sink != nil {
		err = s.sink.Save(frame, img)
	}
	if err != nil {
		res.Err = &dynamo.FrameError{Frame: frame, Wrapped: err}
	}
	res.Elapsed = time.Since(start)
	return res
}

// Run renders frames [0, Frames) on at most WorkerCount goroutines and
// returns one Result per frame, in frame order. A frame that has started is
// always finished; cancelling ctx only stops frames that have not started.
//
// With FailFast the first failing frame stops the run and its error is
// returned. Otherwise every frame is attempted and all frame errors are
// joined.
func (s *Scheduler) Run(ctx context.Context) ([]Result, error) {
	n := s.cfg.Frames
	results := make([]Result, n)
	for i := range results {
		results[i].Frame = i
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.WorkerCount())

	s.logger.Info("rendering", "frames", n, "lines", s.cfg.Lines, "steps", s.cfg.Steps,
		"field", s.cfg.Field, "workers", s.cfg.WorkerCount())

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		frame := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res := s.frame(frame)
			results[frame] = res
			if s.onFrame != nil {
				s.onFrame(res)
			}

			if res.Err != nil {
				s.logger.Error("frame failed", "frame", frame, "err", res.Err)
				if s.cfg.FailFast {
					return res.Err
				}
				return nil
			}

			s.logger.Debug("frame done", "frame", frame, "damping", res.Damping,
				"drawn", res.Stats.Drawn, "skipped", res.Stats.Skipped, "elapsed", res.Elapsed)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return results, errors.Join(errs...)
}
