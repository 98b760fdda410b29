package fable

import (
	"fmt"
	"io"
	"log/slog"
)

// Input holds the events that fired during one frame.
type Input struct {
	Confirm bool
	Prev    bool
	Next    bool
}

// Machine runs a story one frame at a time.
//
// The story map is the master copy of every node's default state. Entering a
// node clones it out of the map, so runtime changes (selection, fade start)
// never leak back and a node can be visited repeatedly with fresh state.
type Machine struct {
	story StoryMap
	root  StoryID
	clock Clock
	log   *slog.Logger

	currentID StoryID
	current   Story // nil when the story has ended
	retained  []Story
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithClock sets the time source used for fades. Defaults to SystemClock.
func WithClock(c Clock) MachineOption {
	return func(m *Machine) {
		m.clock = c
	}
}

// WithLogger sets the logger used to report transitions.
func WithLogger(l *slog.Logger) MachineOption {
	return func(m *Machine) {
		m.log = l
	}
}

// NewMachine flattens tree and makes its root the current node.
func NewMachine(tree *Tree, opts ...MachineOption) *Machine {
	m := &Machine{
		story: tree.Flatten(),
		root:  tree.ID,
		clock: SystemClock{},
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.currentID, m.current = m.freshen(tree.ID)
	return m
}

// Story returns the flattened story. Callers must not modify it.
func (m *Machine) Story() StoryMap {
	return m.story
}

// Root returns the identifier of the first node.
func (m *Machine) Root() StoryID {
	return m.root
}

// Current returns the node receiving input, if any.
func (m *Machine) Current() (StoryID, Story, bool) {
	return m.currentID, m.current, m.current != nil
}

// Retained returns the nodes that keep rendering, oldest first.
func (m *Machine) Retained() []Story {
	out := make([]Story, len(m.retained))
	copy(out, m.retained)
	return out
}

// Done reports whether there is no current node left.
func (m *Machine) Done() bool {
	return m.current == nil
}

// lookup returns the node stored under id. A missing id means the map was
// built incorrectly; there is no sensible way to continue.
func (m *Machine) lookup(id StoryID) Story {
	s, ok := m.story[id]
	if !ok {
		panic(fmt.Sprintf("fable: dangling story id %s", id))
	}
	return s
}

// freshen clones the node stored under id, ready to become current.
// A fade starts counting from now.
func (m *Machine) freshen(id StoryID) (StoryID, Story) {
	s := m.lookup(id)
	if f, ok := s.(Fade[StoryID]); ok {
		f.Start = m.clock.Now()
		s = f
	}
	return id, s
}

func (m *Machine) enter(id StoryID) {
	m.currentID, m.current = m.freshen(id)
	m.log.Debug("entered node", "id", id, "kind", Kind(m.current))
}

// Update advances the story by one frame.
func (m *Machine) Update(in Input) {
	switch n := m.current.(type) {
	case Choices[StoryID]:
		k := len(n.Items)
		if k == 0 {
			return
		}
		if in.Confirm {
			m.log.Debug("confirmed choice", "label", n.Items[n.Selected].Label)
			m.enter(n.Items[n.Selected].Target)
			return
		}
		if in.Next {
			n.Selected = (n.Selected + 1) % k
		}
		if in.Prev {
			n.Selected = (n.Selected - 1 + k) % k
		}
		m.current = n
	case Fade[StoryID]:
		if !n.Complete(m.clock) {
			return
		}
		m.retained = append(m.retained, m.lookup(n.Node))
		if !n.HasThen() {
			m.log.Debug("story ended", "retained", len(m.retained))
			m.currentID, m.current = StoryID{}, nil
			return
		}
		m.enter(n.Then)
	}
}

// Render draws the retained nodes in order, then the current node.
func (m *Machine) Render(d Drawer) {
	c := NewCursor(m.story, m.clock, d)
	for _, s := range m.retained {
		c.Render(s)
	}
	if m.current != nil {
		c.Render(m.current)
	}
}

// Kind returns a short name for the node's variant.
func Kind[R comparable](n Node[R]) string {
	switch n.(type) {
	case Choices[R]:
		return "choices"
	case FileRef[R]:
		return "file"
	case Fade[R]:
		return "fade"
	case Title[R]:
		return "title"
	default:
		return "none"
	}
}
