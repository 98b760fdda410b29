// Package fable provides domain types for playing declarative, tree-shaped
// stories: choice menus, timed fades and titles.
package fable

import (
	"context"
	"errors"
	"fmt"
)

// ErrMalformedDocument is wrapped by every error describing a story document
// that does not match the expected shape.
var ErrMalformedDocument = errors.New("malformed story document")

// DocumentError describes a single problem found while loading a document.
type DocumentError struct {
	Path string // File the problem was found in
	Line int    // 1-based line, 0 if unknown
	Msg  string
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// Unwrap allows errors.Is(err, ErrMalformedDocument).
func (e *DocumentError) Unwrap() error {
	return ErrMalformedDocument
}

// Window describes how the story would like to be presented.
type Window struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
}

// Document is a parsed story document: presentation settings plus the story tree.
type Document struct {
	Window Window
	Story  *Tree
	Files  []string // Every file read while loading, entry document first
}

// Loader reads a story document from storage.
type Loader interface {
	// Load parses the document at path, resolving file references.
	Load(path string) (*Document, error)
}

// Player plays a document interactively and blocks until the session ends.
type Player interface {
	Play(ctx context.Context, doc *Document) error
}

// Reloader is implemented by players that can swap the story being played.
type Reloader interface {
	Reload(doc *Document)
}

// Watcher reports changes to a set of files.
type Watcher interface {
	// Watch calls fn after any of paths changes, until ctx is done.
	// fn runs on the goroutine that called Watch.
	Watch(ctx context.Context, paths []string, fn func()) error
}

// Palette holds the colors used to draw a story.
// Colors are hex strings in "#RRGGBB" format.
type Palette struct {
	Background string // Color faded text blends toward
	Text       string // Titles and choice labels
	Marker     string // Selection marker next to the chosen row
	Muted      string // Status and help text
}

// Theme provides colors for rendering stories.
type Theme interface {
	Palette() Palette
}
