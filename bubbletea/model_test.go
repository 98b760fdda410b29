package bubbletea_test

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/fable"
	"github.com/fwojciec/fable/bubbletea"
	"github.com/fwojciec/fable/lipgloss"
	"github.com/fwojciec/fable/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func title(text string, size float64) *fable.Tree {
	return fable.NewTree(fable.Title[*fable.Tree]{Text: text, Size: size})
}

func fade(ms int, node, then *fable.Tree) *fable.Tree {
	return fable.NewTree(fable.Fade[*fable.Tree]{Milliseconds: ms, Node: node, Then: then})
}

func menu(items ...fable.Choice[*fable.Tree]) *fable.Tree {
	return fable.NewTree(fable.Choices[*fable.Tree]{Items: items})
}

func choice(label string, target *fable.Tree) fable.Choice[*fable.Tree] {
	return fable.Choice[*fable.Tree]{Label: label, Target: target}
}

func sampleStory() *fable.Tree {
	return menu(
		choice("Start", fade(0, title("Mid", 30), title("End", 30))),
		choice("Leave", title("Bye", 20)),
	)
}

// send applies msgs in order and returns the resulting model.
func send(t *testing.T, m bubbletea.Model, msgs ...tea.Msg) bubbletea.Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(bubbletea.Model)
		require.True(t, ok, "Update should return a bubbletea.Model")
	}
	return m
}

func newTestModel(story *fable.Tree, clock fable.Clock) bubbletea.Model {
	return bubbletea.NewModel(story,
		bubbletea.WithClock(clock),
		bubbletea.WithRenderer(asciiRenderer()),
		bubbletea.WithTheme(lipgloss.DefaultTheme()),
	)
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	size     = tea.WindowSizeMsg{Width: 80, Height: 24}
)

func selectedIndex(t *testing.T, m bubbletea.Model) int {
	t.Helper()
	_, s, ok := m.Machine().Current()
	require.True(t, ok)
	c, ok := s.(fable.Choices[fable.StoryID])
	require.True(t, ok, "current node should be choices")
	return c.Selected
}

func TestModel_Init(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(sampleStory())

	assert.NotNil(t, m.Init(), "Init should schedule the first frame")
}

func TestModel_ViewBeforeReady(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(sampleStory())

	assert.Contains(t, m.View(), "Loading")
}

func TestModel_ViewShowsChoices(t *testing.T) {
	t.Parallel()

	m := send(t, newTestModel(sampleStory(), mock.NewClock()), size)

	view := m.View()

	assert.Contains(t, view, "  > Start")
	assert.Contains(t, view, "    Leave")
	assert.Contains(t, view, "choose")
}

func TestModel_Navigation(t *testing.T) {
	t.Parallel()

	m := send(t, newTestModel(sampleStory(), mock.NewClock()), size)

	m = send(t, m, keyDown)
	assert.Equal(t, 1, selectedIndex(t, m))
	assert.Contains(t, m.View(), "  > Leave")

	m = send(t, m, keyDown)
	assert.Equal(t, 0, selectedIndex(t, m), "selection wraps past the last choice")

	m = send(t, m, keyUp)
	assert.Equal(t, 1, selectedIndex(t, m), "selection wraps before the first choice")
}

func TestModel_UnboundKeyIsIgnored(t *testing.T) {
	t.Parallel()

	m := send(t, newTestModel(sampleStory(), mock.NewClock()), size)
	before := m.View()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	assert.Equal(t, before, m.View())
}

func TestModel_PlaysThroughFade(t *testing.T) {
	t.Parallel()

	clock := mock.NewClock()
	m := send(t, newTestModel(sampleStory(), clock), size, keyEnter)

	_, s, _ := m.Machine().Current()
	require.IsType(t, fable.Fade[fable.StoryID]{}, s)

	clock.Advance(time.Millisecond)
	m = send(t, m, bubbletea.FrameMsg(clock.Now()))

	view := m.View()
	assert.Contains(t, view, "Mid")
	assert.Contains(t, view, "End")
	assert.NotContains(t, view, "Start")
	assert.Len(t, m.Machine().Retained(), 1)
}

func TestModel_StoryEnd(t *testing.T) {
	t.Parallel()

	clock := mock.NewClock()
	m := send(t, newTestModel(fade(0, title("Last", 20), nil), clock), size)

	clock.Advance(time.Millisecond)
	m = send(t, m, bubbletea.FrameMsg(clock.Now()))

	assert.True(t, m.Machine().Done())
	assert.Contains(t, m.View(), "Last")
	assert.Contains(t, m.View(), "The End")
}

func TestModel_Restart(t *testing.T) {
	t.Parallel()

	m := send(t, newTestModel(sampleStory(), mock.NewClock()), size, keyDown, keyEnter)
	_, s, _ := m.Machine().Current()
	require.IsType(t, fable.Title[fable.StoryID]{}, s)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	assert.Equal(t, 0, selectedIndex(t, m))
}

func TestModel_Reload(t *testing.T) {
	t.Parallel()

	m := send(t, newTestModel(sampleStory(), mock.NewClock()), size, keyDown)

	m = send(t, m, bubbletea.ReloadMsg{Story: menu(choice("Fresh", title("x", 20)))})

	assert.Contains(t, m.View(), "  > Fresh")
	assert.NotContains(t, m.View(), "Leave")

	m = send(t, m, bubbletea.ReloadMsg{})
	assert.Contains(t, m.View(), "Fresh", "an empty reload keeps the current story")
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()

	m := send(t, newTestModel(sampleStory(), mock.NewClock()), size)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowCapsCanvas(t *testing.T) {
	t.Parallel()

	story := title("A long title that does not fit", 20)
	m := bubbletea.NewModel(story,
		bubbletea.WithRenderer(asciiRenderer()),
		bubbletea.WithWindow(fable.Window{Width: 150, Height: 200}),
	)
	m = send(t, m, size)

	lines := bytes.Split([]byte(m.View()), []byte("\n"))

	assert.Contains(t, string(lines[0]), "…", "text is cut at 15 columns")
	assert.Len(t, lines, 11, "10 canvas rows plus the status bar")
}

func TestModel_Program(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(sampleStory(), bubbletea.WithRenderer(asciiRenderer()))
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Start")) && bytes.Contains(out, []byte("Leave"))
	})

	tm.Send(keyDown)
	tm.Send(keyEnter)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Bye"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}
