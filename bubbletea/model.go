// Package bubbletea provides a terminal story player using the Bubble Tea framework.
package bubbletea

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/fable"
)

// DefaultFrameInterval is the time between frames while nothing is pressed.
const DefaultFrameInterval = time.Second / 30

// FrameMsg advances the story by one frame without input.
type FrameMsg time.Time

// ReloadMsg replaces the story being played and starts it over.
type ReloadMsg struct {
	Story *fable.Tree
}

// Model is the Bubble Tea model that plays a story. Every message it handles
// is one frame: the story is updated and the next View shows the result.
type Model struct {
	tree    *fable.Tree
	machine *fable.Machine

	clock         fable.Clock
	logger        *slog.Logger
	window        fable.Window
	frameInterval time.Duration

	// UI state
	keymap   KeyMap
	help     help.Model
	palette  fable.Palette
	renderer *lipgloss.Renderer
	width    int
	height   int
	ready    bool
}

// ModelOption configures a Model.
type ModelOption func(*modelConfig)

type modelConfig struct {
	renderer      *lipgloss.Renderer
	theme         fable.Theme
	clock         fable.Clock
	logger        *slog.Logger
	window        fable.Window
	frameInterval time.Duration
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.renderer = r
	}
}

// WithTheme sets the theme for the model.
func WithTheme(t fable.Theme) ModelOption {
	return func(cfg *modelConfig) {
		cfg.theme = t
	}
}

// WithClock sets the clock fades are timed with.
func WithClock(c fable.Clock) ModelOption {
	return func(cfg *modelConfig) {
		cfg.clock = c
	}
}

// WithLogger sets the logger for story transitions.
func WithLogger(l *slog.Logger) ModelOption {
	return func(cfg *modelConfig) {
		cfg.logger = l
	}
}

// WithWindow sets the document's window settings. The title is shown in the
// terminal's title bar and the size caps the drawing area.
func WithWindow(w fable.Window) ModelOption {
	return func(cfg *modelConfig) {
		cfg.window = w
	}
}

// WithFrameInterval sets the time between idle frames.
func WithFrameInterval(d time.Duration) ModelOption {
	return func(cfg *modelConfig) {
		cfg.frameInterval = d
	}
}

// NewModel creates a Model playing story from its root.
func NewModel(story *fable.Tree, opts ...ModelOption) Model {
	cfg := &modelConfig{
		clock:         fable.SystemClock{},
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		frameInterval: DefaultFrameInterval,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var palette fable.Palette
	if cfg.theme != nil {
		palette = cfg.theme.Palette()
	} else {
		palette = defaultPalette()
	}

	m := Model{
		tree:          story,
		clock:         cfg.clock,
		logger:        cfg.logger,
		window:        cfg.window,
		frameInterval: cfg.frameInterval,
		keymap:        DefaultKeyMap(),
		help:          help.New(),
		palette:       palette,
		renderer:      cfg.renderer,
	}
	m.machine = m.newMachine()
	return m
}

// defaultPalette matches the lipgloss package's dark theme.
func defaultPalette() fable.Palette {
	return fable.Palette{
		Background: "#1e1e2e",
		Text:       "#cdd6f4",
		Marker:     "#f9e2af",
		Muted:      "#6c7086",
	}
}

func (m Model) newMachine() *fable.Machine {
	return fable.NewMachine(m.tree, fable.WithClock(m.clock), fable.WithLogger(m.logger))
}

// Machine returns the state machine currently being played.
func (m Model) Machine() *fable.Machine {
	return m.machine
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.window.Title != "" {
		return tea.Batch(tea.SetWindowTitle(m.window.Title), m.tick())
	}
	return m.tick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Restart):
			m.logger.Info("restarting story")
			m.machine = m.newMachine()
		case key.Matches(msg, m.keymap.Confirm):
			m.machine.Update(fable.Input{Confirm: true})
		case key.Matches(msg, m.keymap.Prev):
			m.machine.Update(fable.Input{Prev: true})
		case key.Matches(msg, m.keymap.Next):
			m.machine.Update(fable.Input{Next: true})
		}
		return m, nil
	case FrameMsg:
		m.machine.Update(fable.Input{})
		return m, m.tick()
	case ReloadMsg:
		if msg.Story == nil {
			return m, nil
		}
		m.logger.Info("reloaded story", "nodes", msg.Story.Len())
		m.tree = msg.Story
		m.machine = m.newMachine()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	statusBarHeight := 1
	width, height := m.canvasSize(m.height - statusBarHeight)

	canvas := NewCanvas(width, height, m.palette, m.renderer)
	m.machine.Render(canvas)

	// Pad so the status bar stays on the bottom line.
	body := canvas.String()
	if pad := height - max(canvas.Rows(), 1); pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return body + "\n" + m.statusBarView()
}

// canvasSize returns the drawing area in cells: the terminal, capped by the
// document's window size when one is set.
func (m Model) canvasSize(rows int) (int, int) {
	width, height := m.width, rows
	if w := int(float64(m.window.Width) / CellWidth); w > 0 && w < width {
		width = w
	}
	if h := int(float64(m.window.Height) / CellHeight); h > 0 && h < height {
		height = h
	}
	return max(width, 0), max(height, 0)
}

func (m Model) newStyle() lipgloss.Style {
	if m.renderer != nil {
		return m.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// statusBarView renders key help, or an ending notice once the story is over.
func (m Model) statusBarView() string {
	muted := m.newStyle().Foreground(lipgloss.Color(m.palette.Muted))
	if m.machine.Done() {
		return muted.Render("The End · r restart · q quit")
	}
	m.help.Styles.ShortKey = muted
	m.help.Styles.ShortDesc = muted
	m.help.Styles.ShortSeparator = muted
	return m.help.View(m.keymap)
}
