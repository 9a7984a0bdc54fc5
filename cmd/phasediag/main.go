package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/mtyler88/Phase-Diagrams/internal/config"
	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
	"github.com/mtyler88/Phase-Diagrams/internal/export"
	"github.com/mtyler88/Phase-Diagrams/internal/metrics"
	"github.com/mtyler88/Phase-Diagrams/internal/render"
	"github.com/mtyler88/Phase-Diagrams/internal/storage"
	"github.com/mtyler88/Phase-Diagrams/internal/tui"
	"github.com/mtyler88/Phase-Diagrams/internal/viz"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFormat  string

	// Overrides for config keys
	outputDir  string
	width      int
	height     int
	frames     int
	lines      int
	steps      int
	dt         float64
	field      string
	integrator string
	colorMode  string
	workers    int
	failFast   bool
	params     map[string]string

	// render
	mkdir        bool
	showProgress bool
	gifPath      string

	// frame
	svgPath string

	// preview
	cols  int
	rows  int
	plain bool

	// trace
	traceFrame int
	q0         float64
	p0         float64
	compare    []string

	// gif
	gifOut   string
	gifDelay int
	gifScale float64
	gifLoop  int
)

var (
	title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	bad   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "phasediag",
		Short:         "animated phase portraits of a damped pendulum",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	pf.StringVar(&logFormat, "log-format", "text", "text, json or logfmt")
	pf.StringVarP(&outputDir, "out", "o", config.DefaultOutputDir, "frame directory")
	pf.IntVar(&width, "width", config.DefaultWidth, "canvas width in pixels")
	pf.IntVar(&height, "height", config.DefaultHeight, "canvas height in pixels")
	pf.IntVar(&frames, "frames", config.DefaultFrames, "frames in the animation")
	pf.IntVar(&lines, "lines", config.DefaultLines, "trajectories per frame")
	pf.IntVar(&steps, "steps", config.DefaultSteps, "integration steps per trajectory")
	pf.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	pf.StringVar(&field, "field", "dissipative", "vector field")
	pf.StringVar(&integrator, "integrator", "rk4", "integrator")
	pf.StringVar(&colorMode, "color-mode", "clamp", "clamp or wrap")
	pf.IntVarP(&workers, "workers", "j", 0, "parallel frames (0 = one per CPU)")
	pf.BoolVar(&failFast, "fail-fast", true, "stop at the first failed frame")
	pf.StringToStringVar(&params, "param", nil, "field parameter override, e.g. --param A=2,B=0.5")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render every frame into the output directory",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().BoolVar(&mkdir, "mkdir", false, "create the output directory if missing")
	renderCmd.Flags().BoolVar(&showProgress, "progress", false, "show a live progress view")
	renderCmd.Flags().StringVar(&gifPath, "gif", "", "also assemble the frames into this GIF")

	frameCmd := &cobra.Command{
		Use:   "frame [n]",
		Short: "render and save a single frame",
		Args:  cobra.ExactArgs(1),
		RunE:  runFrame,
	}
	frameCmd.Flags().BoolVar(&mkdir, "mkdir", false, "create the output directory if missing")
	frameCmd.Flags().StringVar(&svgPath, "svg", "", "also write the frame as SVG to this path")

	previewCmd := &cobra.Command{
		Use:   "preview [n]",
		Short: "draw frame n in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPreview,
	}
	previewCmd.Flags().IntVar(&cols, "cols", 80, "preview width in characters")
	previewCmd.Flags().IntVar(&rows, "rows", 40, "preview height in characters")
	previewCmd.Flags().BoolVar(&plain, "plain", false, "no colour")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "plot one trajectory and its energy",
		Args:  cobra.NoArgs,
		RunE:  runTrace,
	}
	traceCmd.Flags().IntVar(&traceFrame, "frame", 0, "take the field parameters of this frame")
	traceCmd.Flags().Float64Var(&q0, "q0", 0, "initial position")
	traceCmd.Flags().Float64Var(&p0, "p0", 2, "initial momentum")
	traceCmd.Flags().StringSliceVar(&compare, "compare", nil, "integrators to compare against")

	gifCmd := &cobra.Command{
		Use:   "gif [dir]",
		Short: "assemble rendered frames into an animated GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGIF,
	}
	gifCmd.Flags().StringVar(&gifOut, "output", "", "GIF path (default <dir>/phase.gif)")
	addGIFFlags(gifCmd)
	addGIFFlags(renderCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved config to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}, &cobra.Command{
		Use:   "validate",
		Short: "check the resolved config",
		Args:  cobra.NoArgs,
		RunE:  validateConfig,
	})

	rootCmd.AddCommand(renderCmd, frameCmd, previewCmd, traceCmd, gifCmd, presetsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, bad.Render("error:"), err)
		stop()
		os.Exit(1)
	}
}

func addGIFFlags(cmd *cobra.Command) {
	def := storage.DefaultGIFOptions()
	cmd.Flags().IntVar(&gifDelay, "delay", def.Delay, "GIF frame delay in 1/100 s")
	cmd.Flags().Float64Var(&gifScale, "scale", def.Scale, "GIF scale factor")
	cmd.Flags().IntVar(&gifLoop, "loop", def.LoopCount, "GIF loop count (0 = forever, -1 = once)")
}

// loadConfig resolves defaults, then the preset, then the config file, then
// any flag given on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
		}
	}

	if configFile != "" {
		loaded, err := config.LoadWith(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("lines") {
		cfg.Lines = lines
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("field") {
		cfg.Field = field
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("color-mode") {
		cfg.ColorMode = colorMode
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("fail-fast") {
		cfg.FailFast = failFast
	}
	if flags.Changed("param") {
		overrides := maps.Clone(cfg.FieldParams)
		if overrides == nil {
			overrides = make(map[string]float64, len(params))
		}
		for name, raw := range params {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("--param %s: %w", name, err)
			}
			overrides[name] = v
		}
		cfg.FieldParams = overrides
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	var formatter log.Formatter
	switch logFormat {
	case "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("unknown log format: %s", logFormat)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "phasediag",
	}), nil
}

func frameArg(cfg *config.Config, args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("frame must be an integer: %w", err)
	}
	if n < 0 || n >= cfg.Frames {
		return 0, fmt.Errorf("%w: frame %d outside [0, %d)", dynamo.ErrParameterBounds, n, cfg.Frames)
	}
	return n, nil
}

func openStore(cfg *config.Config) (*storage.FrameStore, error) {
	if mkdir {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return nil, err
		}
	}
	st := storage.New(cfg.OutputDir)
	if err := st.Init(); err != nil {
		if errors.Is(err, storage.ErrNoOutputDir) {
			return nil, fmt.Errorf("%w (create it or pass --mkdir)", err)
		}
		return nil, err
	}
	return st, nil
}

func gifOptions() storage.GIFOptions {
	return storage.GIFOptions{Delay: gifDelay, Scale: gifScale, LoopCount: gifLoop}
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	start := time.Now()

	var results []render.Result
	var runErr error
	if showProgress {
		// The progress view owns the terminal, so frame logs are dropped and
		// failures are shown in the view instead.
		quiet := log.New(io.Discard)
		results, runErr = tui.Watch(ctx, cfg.Field, cfg.Frames,
			func(ctx context.Context, onFrame func(render.Result)) ([]render.Result, error) {
				s, err := render.New(cfg, st, render.WithLogger(quiet), render.WithProgress(onFrame))
				if err != nil {
					return nil, err
				}
				return s.Run(ctx)
			}, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	} else {
		s, err := render.New(cfg, st, render.WithLogger(logger))
		if err != nil {
			return err
		}
		results, runErr = s.Run(ctx)
	}
	elapsed := time.Since(start)

	if len(results) > 0 {
		if err := st.WriteManifest(manifest(cfg, results)); err != nil {
			logger.Error("writing manifest", "err", err)
		}
	}
	printSummary(cmd.OutOrStdout(), cfg, results, elapsed)

	if runErr != nil {
		return runErr
	}

	if gifPath != "" {
		logger.Info("assembling gif", "path", gifPath)
		if err := st.AssembleGIF(gifPath, gifOptions()); err != nil {
			return err
		}
	}
	return nil
}

func manifest(cfg *config.Config, results []render.Result) *storage.Manifest {
	m := &storage.Manifest{
		Created: time.Now().UTC(),
		Config:  cfg,
		Frames:  make([]storage.FrameRecord, 0, len(results)),
	}
	for _, res := range results {
		rec := storage.FrameRecord{
			Frame:   res.Frame,
			File:    storage.FrameName(res.Frame),
			Damping: res.Damping,
			Drawn:   res.Stats.Drawn,
			Skipped: res.Stats.Skipped,
			Millis:  res.Elapsed.Milliseconds(),
		}
		if res.Err != nil {
			rec.Error = res.Err.Error()
		}
		m.Frames = append(m.Frames, rec)
	}
	return m
}

func printSummary(w io.Writer, cfg *config.Config, results []render.Result, elapsed time.Duration) {
	var total viz.Stats
	rendered, failed := 0, 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
		case res.Elapsed > 0:
			rendered++
		}
		total.Add(res.Stats)
	}

	fmt.Fprintln(w, title.Render(fmt.Sprintf("%s → %s", cfg.Field, cfg.OutputDir)))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  frames\t%d/%d\n", rendered, cfg.Frames)
	if failed > 0 {
		fmt.Fprintf(tw, "  failed\t%s\n", bad.Render(strconv.Itoa(failed)))
	}
	fmt.Fprintf(tw, "  segments drawn\t%d\n", total.Drawn)
	fmt.Fprintf(tw, "  segments skipped\t%d\n", total.Skipped)
	fmt.Fprintf(tw, "  elapsed\t%v\n", elapsed.Truncate(time.Millisecond))
	tw.Flush()
}

func runFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	n, err := frameArg(cfg, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	s, err := render.New(cfg, st, render.WithLogger(logger))
	if err != nil {
		return err
	}
	img, stats, err := s.RenderFrame(n)
	if err != nil {
		return &dynamo.FrameError{Frame: n, Wrapped: err}
	}
	if err := st.Save(n, img); err != nil {
		return &dynamo.FrameError{Frame: n, Wrapped: err}
	}

	logger.Info("frame saved", "path", st.Path(n), "damping", render.Damping(cfg, n),
		"drawn", stats.Drawn, "skipped", stats.Skipped)

	if svgPath != "" {
		if err := writeSVG(s, cfg, n, svgPath); err != nil {
			return &dynamo.FrameError{Frame: n, Wrapped: err}
		}
		logger.Info("svg saved", "path", svgPath)
	}
	return nil
}

func writeSVG(s *render.Scheduler, cfg *config.Config, n int, path string) (err error) {
	c := export.NewSVG(cfg.Width, cfg.Height)
	if _, err := s.Draw(c, n); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = c.WriteTo(f)
	return err
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	n, err := frameArg(cfg, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("%w: preview must be non-empty, got %dx%d", dynamo.ErrParameterBounds, cols, rows)
	}

	s, err := render.New(cfg, nil, render.WithLogger(logger))
	if err != nil {
		return err
	}
	c := viz.NewBraille(cols, rows)
	stats, err := s.Draw(c, n)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title.Render(fmt.Sprintf("frame %03d  %s  a=%.3f", n, cfg.Field, render.Damping(cfg, n))))
	if plain {
		fmt.Fprint(out, c.String())
	} else {
		fmt.Fprint(out, c.Render())
	}
	fmt.Fprintln(out, dim.Render(fmt.Sprintf("%d segments drawn, %d skipped", stats.Drawn, stats.Skipped)))
	return nil
}

type traceRun struct {
	integrator string
	states     []dynamo.State
	elapsed    time.Duration
	err        error
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if traceFrame < 0 || traceFrame >= cfg.Frames {
		return fmt.Errorf("%w: frame %d outside [0, %d)", dynamo.ErrParameterBounds, traceFrame, cfg.Frames)
	}

	plan, err := render.Plan(cfg, traceFrame)
	if err != nil {
		return err
	}
	x0 := dynamo.State{Q: q0, P: p0}

	runs := make([]traceRun, 0, 1+len(compare))
	for _, name := range append([]string{cfg.Integrator}, compare...) {
		c := *cfg
		c.Integrator = name
		run := traceRun{integrator: name}

		g, err := render.Generator(&c, plan.Field)
		if err != nil {
			run.err = err
			runs = append(runs, run)
			continue
		}
		start := time.Now()
		run.states, run.err = g.Generate(x0, cfg.Steps)
		run.elapsed = time.Since(start)
		runs = append(runs, run)
	}

	out := cmd.OutOrStdout()
	first := runs[0]
	if first.err != nil && len(first.states) == 0 {
		return first.err
	}

	qs := make([]float64, len(first.states))
	ps := make([]float64, len(first.states))
	for i, x := range first.states {
		qs[i], ps[i] = x.Q, x.P
	}
	caption := fmt.Sprintf("q (blue) and p (red), %s, a=%.3f, x0=%v", cfg.Field, plan.Damping, x0)
	if c, ok := plan.Field.(dynamo.Configurable); ok && len(c.GetParams()) > 0 {
		caption += " " + formatParams(c.GetParams())
	}
	fmt.Fprintln(out, asciigraph.PlotMany([][]float64{qs, ps},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption(caption),
	))
	fmt.Fprintln(out)

	h, ok := plan.Field.(dynamo.Hamiltonian)
	if ok {
		energy := make([]float64, len(first.states))
		for i, x := range first.states {
			energy[i] = h.Energy(x)
		}
		fmt.Fprintln(out, asciigraph.Plot(energy,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption("energy"),
		))
		fmt.Fprintln(out)
	}

	view := []metrics.Metric{metrics.NewInView(cfg.View.Q.Interval(), cfg.View.P.Interval())}
	if cfg.Wrap.Enabled {
		view = append(view, metrics.NewWraps(cfg.Wrap.Bounds.Interval()))
	}
	if ok {
		view = append(view, metrics.NewEnergy(h), metrics.NewEnergyDrift(h))
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "integrator\tfinal_q\tfinal_p\tin_view\twraps\tmean_energy\tenergy_drift\ttime_ms\n")
	for _, run := range runs {
		if len(run.states) == 0 {
			fmt.Fprintf(tw, "%s\terror: %v\n", run.integrator, run.err)
			continue
		}
		m := metrics.Observe(run.states, view...)
		last := run.states[len(run.states)-1]
		fmt.Fprintf(tw, "%s\t%.6f\t%.6f\t%.3f\t%.0f\t%.4f\t%.2e\t%.2f\n",
			run.integrator, last.Q, last.P, m["in_view"], m["wraps"], m["energy"], m["energy_drift"],
			float64(run.elapsed.Microseconds())/1000)
		if run.err != nil {
			fmt.Fprintf(tw, "\t%s\n", bad.Render(run.err.Error()))
		}
	}
	return tw.Flush()
}

// formatParams renders params as "name=value" pairs in name order.
func formatParams(params map[string]float64) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	out := ""
	for i, name := range names {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%g", name, params[name])
	}
	return out
}

func runGIF(cmd *cobra.Command, args []string) error {
	dir := outputDir
	if len(args) > 0 {
		dir = args[0]
	} else if !cmd.Flags().Changed("out") {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dir = cfg.OutputDir
	}

	st := storage.New(dir)
	if err := st.Init(); err != nil {
		return err
	}
	out := gifOut
	if out == "" {
		out = filepath.Join(dir, "phase.gif")
	}

	start := time.Now()
	if err := st.AssembleGIF(out, gifOptions()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s in %v\n", out, time.Since(start).Truncate(time.Millisecond))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	sort.Strings(names)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "preset\tfield\tintegrator\tsize\tframes\tlines\tsteps\n")
	for _, name := range names {
		c := config.GetPreset(name)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%d\n",
			name, c.Field, c.Integrator, c.Width, c.Height, c.Frames, c.Lines, c.Steps)
	}
	return tw.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %s, %d frames of %d lines, %dx%d\n",
		cfg.Field, cfg.Frames, cfg.Lines, cfg.Width, cfg.Height)
	return nil
}
