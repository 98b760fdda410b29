package mock

import (
	"context"

	"github.com/fwojciec/fable"
)

// Compile-time interface verification.
var (
	_ fable.Player  = (*Player)(nil)
	_ fable.Watcher = (*Watcher)(nil)
)

// Player is a mock implementation of fable.Player.
type Player struct {
	PlayFn func(ctx context.Context, doc *fable.Document) error
}

func (p *Player) Play(ctx context.Context, doc *fable.Document) error {
	return p.PlayFn(ctx, doc)
}

// Watcher is a mock implementation of fable.Watcher.
type Watcher struct {
	WatchFn func(ctx context.Context, paths []string, fn func()) error
}

func (w *Watcher) Watch(ctx context.Context, paths []string, fn func()) error {
	return w.WatchFn(ctx, paths, fn)
}

// ReloadingPlayer is a mock fable.Player that also implements fable.Reloader.
type ReloadingPlayer struct {
	Player
	ReloadFn func(doc *fable.Document)
}

// Compile-time interface verification.
var _ fable.Reloader = (*ReloadingPlayer)(nil)

func (p *ReloadingPlayer) Reload(doc *fable.Document) {
	p.ReloadFn(doc)
}
