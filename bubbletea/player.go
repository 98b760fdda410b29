package bubbletea

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/fable"
)

// Compile-time interface verification.
var (
	_ fable.Player   = (*Player)(nil)
	_ fable.Reloader = (*Player)(nil)
)

// Player implements fable.Player using a Bubble Tea TUI.
type Player struct {
	opts []ModelOption

	mu      sync.Mutex
	program *tea.Program
}

// NewPlayer creates a new Player. The options are applied to every Model it creates.
func NewPlayer(opts ...ModelOption) *Player {
	return &Player{opts: opts}
}

// Play runs the story and blocks until the user quits or ctx is done.
func (p *Player) Play(ctx context.Context, doc *fable.Document) error {
	opts := append([]ModelOption{WithWindow(doc.Window)}, p.opts...)
	m := NewModel(doc.Story, opts...)

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if doc.Window.Fullscreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(m, programOpts...)

	p.mu.Lock()
	p.program = program
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.program = nil
		p.mu.Unlock()
	}()

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Reload swaps the story being played. It does nothing when no story is playing.
func (p *Player) Reload(doc *fable.Document) {
	p.mu.Lock()
	program := p.program
	p.mu.Unlock()
	if program == nil || doc == nil {
		return
	}
	program.Send(ReloadMsg{Story: doc.Story})
}
