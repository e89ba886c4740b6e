package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	charmlog "github.com/charmbracelet/log"

	"github.com/strandlab/rnaplot/pkg/pipeline"
)

// runWatch starts the interactive live preview. The structure string is
// editable in place; every edit re-parses and re-lays-out, and enter
// writes the configured artifacts.
func runWatch(ctx context.Context, opts pipeline.Options, o *drawOpts) error {
	runner, err := newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()
	// Keep the alt screen clean while the program runs
	runner.Logger = newLogger(io.Discard, charmlog.InfoLevel)

	m := newWatchModel(ctx, runner, opts, o)
	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
	return err
}

// watchModel is the bubbletea model for the live preview.
type watchModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	opts   pipeline.Options
	draw   *drawOpts

	input  []rune
	cursor int

	nucleotides int
	pairs       int
	strands     int
	width       float64
	height      float64

	parseErr error
	status   string
}

func newWatchModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, o *drawOpts) watchModel {
	m := watchModel{
		ctx:    ctx,
		runner: runner,
		opts:   opts,
		draw:   o,
		input:  []rune(opts.Structure),
	}
	m.cursor = len(m.input)
	m.refresh()
	return m
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		m.render()
		return m, nil
	case tea.KeyLeft:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyRight:
		if m.cursor < len(m.input) {
			m.cursor++
		}
		return m, nil
	case tea.KeyHome:
		m.cursor = 0
		return m, nil
	case tea.KeyEnd:
		m.cursor = len(m.input)
		return m, nil
	case tea.KeyBackspace:
		if m.cursor > 0 {
			m.input = append(m.input[:m.cursor-1], m.input[m.cursor:]...)
			m.cursor--
			m.refresh()
		}
		return m, nil
	case tea.KeyDelete:
		if m.cursor < len(m.input) {
			m.input = append(m.input[:m.cursor], m.input[m.cursor+1:]...)
			m.refresh()
		}
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		runes := key.Runes
		if key.Type == tea.KeySpace {
			runes = []rune{' '}
		}
		rest := append([]rune{}, m.input[m.cursor:]...)
		m.input = append(append(m.input[:m.cursor], runes...), rest...)
		m.cursor += len(runes)
		m.refresh()
		return m, nil
	}
	return m, nil
}

// refresh re-parses and re-lays-out the edited structure, updating the
// stats shown in the view. Artifacts are only written on enter.
func (m *watchModel) refresh() {
	m.status = ""
	m.opts.Structure = string(m.input)

	p, err := m.runner.Parse(m.ctx, m.opts)
	if err != nil {
		m.parseErr = err
		return
	}
	l, err := m.runner.ComputeLayout(m.ctx, p, m.opts)
	if err != nil {
		m.parseErr = err
		return
	}

	m.parseErr = nil
	m.nucleotides = p.N
	m.strands = p.Strands()
	m.pairs = len(l.PairBonds)
	m.width = l.Bounds.Width()
	m.height = l.Bounds.Height()
}

// render runs the full pipeline and writes the configured artifacts.
func (m *watchModel) render() {
	if m.parseErr != nil {
		return
	}
	m.opts.Structure = string(m.input)

	result, err := m.runner.Execute(m.ctx, m.opts)
	if err != nil {
		m.status = StyleError.Render(err.Error())
		return
	}

	base := basePath(m.draw.output)
	var written []string
	for _, format := range m.opts.Formats {
		path := m.draw.output
		if path == "" || len(m.opts.Formats) > 1 {
			path = base + "." + format
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			m.status = StyleError.Render(err.Error())
			return
		}
		written = append(written, path)
	}
	m.status = StyleSuccess.Render(iconSuccess+" wrote ") + StyleValue.Render(strings.Join(written, ", "))
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("rnaplot watch"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("type to edit  ⏎ render  esc quit"))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(StyleValue.Render(string(m.input[:m.cursor])))
	b.WriteString(StyleHighlight.Render("█"))
	b.WriteString(StyleValue.Render(string(m.input[m.cursor:])))
	b.WriteString("\n\n")

	if m.parseErr != nil {
		b.WriteString("  " + StyleError.Render(iconError+" "+m.parseErr.Error()))
	} else {
		stats := fmt.Sprintf("%d nt · %d pairs", m.nucleotides, m.pairs)
		if m.strands > 1 {
			stats += fmt.Sprintf(" · %d strands", m.strands)
		}
		stats += fmt.Sprintf(" · %.0f × %.0f", m.width, m.height)
		b.WriteString("  " + StyleDim.Render(stats))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n  " + m.status + "\n")
	}

	return b.String()
}
