package bubbletea_test

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/fable/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap_HasExpectedBindings(t *testing.T) {
	t.Parallel()

	km := bubbletea.DefaultKeyMap()

	t.Run("Confirm binding", func(t *testing.T) {
		t.Parallel()
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, km.Confirm), "enter should match Confirm")
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, km.Confirm), "space should match Confirm")
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}}, km.Confirm), "l should match Confirm")
	})

	t.Run("Prev binding", func(t *testing.T) {
		t.Parallel()
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyUp}, km.Prev), "arrow up should match Prev")
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}, km.Prev), "k should match Prev")
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyShiftTab}, km.Prev), "shift+tab should match Prev")
	})

	t.Run("Next binding", func(t *testing.T) {
		t.Parallel()
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyDown}, km.Next), "arrow down should match Next")
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, km.Next), "j should match Next")
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyTab}, km.Next), "tab should match Next")
	})

	t.Run("Restart binding", func(t *testing.T) {
		t.Parallel()
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, km.Restart), "r should match Restart")
	})

	t.Run("Quit binding", func(t *testing.T) {
		t.Parallel()
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, km.Quit), "q should match Quit")
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit), "ctrl+c should match Quit")
	})

	t.Run("bindings do not overlap", func(t *testing.T) {
		t.Parallel()
		msg := tea.KeyMsg{Type: tea.KeyDown}
		assert.False(t, key.Matches(msg, km.Prev), "down must not move backwards")
		assert.False(t, key.Matches(msg, km.Confirm), "down must not confirm")
	})
}

func TestKeyMap_HelpText(t *testing.T) {
	t.Parallel()

	km := bubbletea.DefaultKeyMap()

	for _, b := range km.ShortHelp() {
		assert.NotEmpty(t, b.Help().Key, "binding should have help key")
		assert.NotEmpty(t, b.Help().Desc, "binding should have help description")
	}
	assert.Len(t, km.FullHelp(), 1)
}
