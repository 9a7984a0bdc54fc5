package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mtyler88/Phase-Diagrams/internal/render"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

const (
	barWidth   = 36
	sparkWidth = 36
	maxErrors  = 3
)

// FrameMsg reports one finished frame.
type FrameMsg render.Result

// DoneMsg ends the view once the run has returned.
type DoneMsg struct{ Err error }

// Progress is a bubbletea model that follows a render run frame by frame.
type Progress struct {
	title string
	total int

	done    int
	failed  int
	drawn   int
	skipped int
	last    int
	millis  []float64
	errs    []error

	started     time.Time
	finished    bool
	interrupted bool
	err         error
}

func NewProgress(title string, total int) Progress {
	return Progress{
		title:   title,
		total:   total,
		last:    -1,
		millis:  make([]float64, 0, total),
		started: time.Now(),
	}
}

func (m Progress) Init() tea.Cmd { return nil }

func (m Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.interrupted = true
			return m, tea.Quit
		}
	case FrameMsg:
		m.done++
		m.last = msg.Frame
		m.drawn += msg.Stats.Drawn
		m.skipped += msg.Stats.Skipped
		m.millis = append(m.millis, float64(msg.Elapsed.Milliseconds()))
		if msg.Err != nil {
			m.failed++
			m.errs = append(m.errs, msg.Err)
			if len(m.errs) > maxErrors {
				m.errs = m.errs[1:]
			}
		}
	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Progress) Done() int { return m.done }

func (m Progress) Failed() int { return m.failed }

// Interrupted reports whether the user quit before the run finished.
func (m Progress) Interrupted() bool { return m.interrupted }

func (m Progress) View() string {
	var b strings.Builder

	icon, status := green.Render("●"), green.Render("rendering")
	switch {
	case m.interrupted:
		icon, status = yellow.Render("○"), yellow.Render("interrupted")
	case m.finished && m.err != nil:
		icon, status = red.Render("✗"), red.Render("failed")
	case m.finished:
		icon, status = green.Render("✓"), green.Render("done")
	}
	fmt.Fprintf(&b, "\n   %s %s  %s\n", icon, cyan.Render(m.title), status)

	fraction := 0.0
	if m.total > 0 {
		fraction = min(1, float64(m.done)/float64(m.total))
	}
	filled := int(fraction * barWidth)
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))
	counter := fmt.Sprintf("%d/%d", m.done, m.total)
	fmt.Fprintf(&b, "   %s %s  %s\n\n", bar, white.Render(counter),
		dim.Render(time.Since(m.started).Truncate(100*time.Millisecond).String()))

	if m.last >= 0 {
		fmt.Fprintf(&b, "   %s %s\n", dim.Render("last frame"), white.Render(fmt.Sprintf("%03d", m.last)))
	}
	fmt.Fprintf(&b, "   %s %s  %s %s\n",
		dim.Render("drawn"), white.Render(fmt.Sprint(m.drawn)),
		dim.Render("skipped"), white.Render(fmt.Sprint(m.skipped)))

	if len(m.millis) > 1 {
		fmt.Fprintf(&b, "   %s %s\n", dim.Render("ms/frame"), cyan.Render(sparkline(m.millis, sparkWidth)))
	}

	if m.failed > 0 {
		fmt.Fprintf(&b, "\n   %s\n", red.Render(fmt.Sprintf("%d failed", m.failed)))
		for _, err := range m.errs {
			fmt.Fprintf(&b, "   %s\n", dim.Render(err.Error()))
		}
	}

	if !m.finished && !m.interrupted {
		b.WriteString("\n" + dim.Render("   q quit") + "\n")
	}
	return b.String()
}

// sparkline samples data down to width block characters.
func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := max(1, len(data)/width)

	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		sb.WriteRune(chars[max(0, min(7, idx))])
	}
	return sb.String()
}

// RunFunc starts a render and reports each frame through onFrame.
type RunFunc func(ctx context.Context, onFrame func(render.Result)) ([]render.Result, error)

// Watch runs fn while showing a Progress view. Quitting the view cancels the
// render; frames already started still finish.
func Watch(ctx context.Context, title string, total int, fn RunFunc, opts ...tea.ProgramOption) ([]render.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgress(title, total), opts...)

	var (
		wg      sync.WaitGroup
		results []render.Result
		runErr  error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results, runErr = fn(ctx, func(r render.Result) { p.Send(FrameMsg(r)) })
		p.Send(DoneMsg{Err: runErr})
	}()

	_, uiErr := p.Run()
	cancel()
	wg.Wait()

	if runErr != nil {
		return results, runErr
	}
	return results, uiErr
}
