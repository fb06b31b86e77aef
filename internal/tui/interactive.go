// Package tui is a terminal explorer. Each character cell shows two pixels
// with the upper half block, foreground for the top and background for the
// bottom, so the CPU renderer drives it directly.
package tui

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/mandelzoom/internal/config"
	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/logx"
	"github.com/san-kum/mandelzoom/internal/nav"
	"github.com/san-kum/mandelzoom/internal/render"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

// Key presses arrive one at a time rather than held, so each press
// counts as several frames of navigation.
const stepsPerKey = 10

const statusLines = 3

type state int

const (
	stateMenu state = iota
	stateView
)

type frameMsg struct {
	gen int
	fb  *render.Framebuffer
	err error
}

type model struct {
	state   state
	cursor  int
	presets []string
	cfg     *config.Config

	nav     *nav.State
	mode    fractal.Mode
	budget  int
	workers int

	gen   int
	frame *render.Framebuffer
	err   error

	width  int
	height int
}

// NewInteractiveApp starts at the preset menu. base supplies the workers
// and navigation settings; presets replace the view and palette.
func NewInteractiveApp(base *config.Config) *model {
	m := &model{
		state:   stateMenu,
		presets: config.ListPresets(),
		cfg:     base,
		workers: base.Render.Workers,
		width:   80,
		height:  24,
	}
	for i, name := range m.presets {
		if name == "classic" {
			m.cursor = i
		}
	}
	return m
}

// NewViewApp skips the menu and explores cfg directly.
func NewViewApp(cfg *config.Config) *model {
	m := NewInteractiveApp(cfg)
	m.start(cfg)
	return m
}

func (m model) Init() tea.Cmd {
	if m.state == stateView {
		return m.frameCmd()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == stateView {
			cmd := m.renderCmd()
			return m, cmd
		}
		return m, nil
	case frameMsg:
		if msg.gen == m.gen {
			m.frame, m.err = msg.fb, msg.err
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateView:
		return m.viewKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		cfg := config.GetPreset(m.presets[m.cursor])
		cfg.Render.Workers = m.cfg.Render.Workers
		cfg.Explore.Nav = m.cfg.Explore.Nav
		m.start(cfg)
		cmd := m.renderCmd()
		return m, tea.Batch(tea.ClearScreen, cmd)
	}
	return m, nil
}

func (m *model) start(cfg *config.Config) {
	m.cfg = cfg
	m.nav = nav.New(cfg.Center(), cfg.NavConfig())
	m.mode = fractal.ModeIterative
	if mode, err := fractal.ParseMode(cfg.Color.Mode); err == nil {
		m.mode = mode
	} else {
		m.err = err
	}
	m.budget = cfg.Color.Budget
	m.state = stateView
}

// keys translates one key press into the navigation keys it holds.
func keys(msg tea.KeyMsg) nav.Keys {
	var k nav.Keys
	switch msg.String() {
	case "left", "h":
		k.Left = true
	case "right", "l":
		k.Right = true
	case "up", "k":
		k.Up = true
	case "down", "j":
		k.Down = true
	case "+", "=":
		k.ZoomIn = true
	case "-", "_":
		k.ZoomOut = true
	case "r":
		k.Reset = true
	case "q", "esc", "ctrl+c":
		k.Exit = true
	}
	return k
}

func (m model) viewKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "c":
		m.state = stateMenu
		m.frame = nil
		return m, tea.ClearScreen
	case "m":
		if m.mode == fractal.ModeIterative {
			m.mode = fractal.ModeRadialFlat
		} else {
			m.mode = fractal.ModeIterative
		}
	case "]":
		m.budget *= 2
	case "[":
		if m.budget > 1 {
			m.budget /= 2
		}
	default:
		return m.navigate(keys(msg))
	}
	cmd := m.renderCmd()
	return m, cmd
}

func (m model) navigate(k nav.Keys) (model, tea.Cmd) {
	if k.Exit {
		return m, tea.Quit
	}
	if !k.Any() {
		return m, nil
	}
	if k.Reset {
		m.nav.Step(k)
	} else {
		for i := 0; i < stepsPerKey; i++ {
			m.nav.Step(k)
		}
	}
	cmd := m.renderCmd()
	return m, cmd
}

// pixels is the framebuffer size that fills the terminal above the status lines.
func (m model) pixels() (int, int) {
	w := m.width
	h := (m.height - statusLines) * 2
	return max(w, 1), max(h, 2)
}

// viewport keeps pixels square: terminal cells are about twice as tall as
// wide and each holds two pixels vertically.
func (m model) viewport() fractal.Viewport {
	pw, ph := m.pixels()
	base := m.cfg.Render.ViewWidth
	return m.nav.Viewport(base, base*float64(ph)/float64(pw))
}

func (m model) strategy() (fractal.Strategy, error) {
	fc, err := m.cfg.FractalConfig()
	if err != nil {
		return nil, err
	}
	fc.Mode = m.mode
	fc.Budget = m.budget
	return fractal.NewStrategy(fc)
}

// renderCmd starts a new frame generation and renders it.
func (m *model) renderCmd() tea.Cmd {
	m.gen++
	return m.frameCmd()
}

// frameCmd renders the current view off the update loop. Frames from
// older generations are dropped when they arrive.
func (m model) frameCmd() tea.Cmd {
	gen := m.gen
	vp := m.viewport()
	pw, ph := m.pixels()
	s, err := m.strategy()
	workers := m.workers

	return func() tea.Msg {
		if err != nil {
			return frameMsg{gen: gen, err: err}
		}
		fb, err := render.Render(context.Background(), vp, pw, ph, s, render.Options{Workers: workers})
		if err != nil {
			logx.Logger().Warn("tui render failed", "err", err)
		}
		return frameMsg{gen: gen, fb: fb, err: err}
	}
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateView:
		return m.viewFractal()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("        " + cyan.Render("m a n d e l z o o m") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		cfg := config.GetPreset(name)
		desc := fmt.Sprintf("%s  %d iter", cfg.Color.Mode, cfg.Color.Budget)
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-18s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-18s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter start   q quit") + "\n")
	return b.String()
}

func (m model) viewFractal() string {
	var b strings.Builder

	if m.frame != nil {
		b.WriteString(halfBlocks(m.frame))
	} else {
		b.WriteString(dim.Render("rendering...") + "\n")
	}

	p := m.nav.Params()
	b.WriteString(fmt.Sprintf(" %s %s  %s %s  %s %s  %s %d\n",
		dim.Render("zoom"), magenta.Render(fmt.Sprintf("%.4g", p.Zoom)),
		dim.Render("center"), white.Render(fmt.Sprintf("%+.12f %+.12fi", p.Center[0], p.Center[1])),
		dim.Render("mode"), cyan.Render(string(m.mode)),
		dim.Render("budget"), m.budget,
	))
	if m.err != nil {
		b.WriteString(" " + magenta.Render(m.err.Error()) + "\n")
	}
	b.WriteString(dim.Render(" ←→↑↓ pan  +/- zoom  r reset  m mode  [/] budget  c presets  q quit") + "\n")
	return b.String()
}

// halfBlocks draws fb two rows per line. An odd last row is paired with black.
func halfBlocks(fb *render.Framebuffer) string {
	var b strings.Builder
	for y := 0; y < fb.Height; y += 2 {
		for x := 0; x < fb.Width; x++ {
			top := fb.RGBAAt(x, y)
			bottom := fractal.Black
			if y+1 < fb.Height {
				bottom = fb.RGBAAt(x, y+1)
			}
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(top))).
				Background(lipgloss.Color(hex(bottom)))
			b.WriteString(cell.Render("▀"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func hex(c color.RGBA) string {
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}

func RunInteractive(base *config.Config) error {
	p := tea.NewProgram(NewInteractiveApp(base), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunView explores cfg without the preset menu.
func RunView(cfg *config.Config) error {
	p := tea.NewProgram(NewViewApp(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
