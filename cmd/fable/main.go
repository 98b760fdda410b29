package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/fwojciec/fable"
	"github.com/fwojciec/fable/bubbletea"
	"github.com/fwojciec/fable/fs"
	"github.com/fwojciec/fable/fsnotify"
	"github.com/fwojciec/fable/internal/config"
	"github.com/fwojciec/fable/internal/logger"
	"github.com/fwojciec/fable/lipgloss"
	"github.com/fwojciec/fable/yaml"
	"golang.org/x/sync/errgroup"
)

// DefaultPath is the story document played when no path is given.
const DefaultPath = "entry.yaml"

// ErrNoStory is returned when the document has nothing to play.
var ErrNoStory = errors.New("no story to play")

// App encapsulates the application logic for testing.
type App struct {
	Path    string
	Loader  fable.Loader
	Player  fable.Player
	Watcher fable.Watcher // Optional; reloads the story on change
	Logger  *slog.Logger
}

// Run loads and validates the document, then plays it.
func (a *App) Run(ctx context.Context) error {
	doc, err := a.load()
	if err != nil {
		return err
	}
	if a.Watcher == nil {
		return a.Player.Play(ctx, doc)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return a.Player.Play(ctx, doc)
	})
	g.Go(func() error {
		return a.watch(ctx, doc.Files)
	})
	return g.Wait()
}

// watch reloads the story whenever files change. A reload that reads a
// different set of files, such as an edit adding an include, re-arms the
// watcher with the new set.
func (a *App) watch(ctx context.Context, files []string) error {
	for {
		wctx, cancel := context.WithCancel(ctx)
		var next []string
		err := a.Watcher.Watch(wctx, files, func() {
			doc := a.reload()
			if doc != nil && !slices.Equal(doc.Files, files) {
				next = doc.Files
				cancel()
			}
		})
		cancel()
		if err != nil || next == nil || ctx.Err() != nil {
			return err
		}
		a.log().Info("watching new file set", "files", len(next))
		files = next
	}
}

// load reads the document and fails on fatal validation problems.
func (a *App) load() (*fable.Document, error) {
	doc, err := a.Loader.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if doc.Story == nil {
		return nil, ErrNoStory
	}
	var fatal []error
	for _, verr := range fable.Validate(doc.Story) {
		if verr.Fatal() {
			fatal = append(fatal, verr)
			continue
		}
		a.log().Warn("story problem", "id", verr.ID, "reason", string(verr.Reason), "detail", verr.Detail)
	}
	if len(fatal) > 0 {
		return nil, fmt.Errorf("invalid story %s: %w", a.Path, errors.Join(fatal...))
	}
	a.log().Info("loaded story", "path", a.Path, "files", len(doc.Files), "nodes", doc.Story.Len())
	return doc, nil
}

// reload swaps in the document on disk and returns it. A broken edit keeps
// the current story playing and returns nil.
func (a *App) reload() *fable.Document {
	r, ok := a.Player.(fable.Reloader)
	if !ok {
		return nil
	}
	doc, err := a.load()
	if err != nil {
		logger.WithError(a.log(), err).Warn("reload failed")
		return nil
	}
	r.Reload(doc)
	return doc
}

func (a *App) log() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path := DefaultPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = fs.DefaultLogPath()
	}
	logFile, err := logger.Open(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := logger.Setup(cfg, logFile)

	theme, err := lipgloss.ThemeByName(cfg.Theme)
	if err != nil {
		return err
	}

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	clock := fable.NewScaledClock(fable.SystemClock{}, float64(cfg.FadeSpeed()))
	app := &App{
		Path:   path,
		Loader: yaml.NewLoader(),
		Player: bubbletea.NewPlayer(
			bubbletea.WithTheme(theme),
			bubbletea.WithClock(clock),
			bubbletea.WithLogger(log),
		),
		Logger: log,
	}
	if cfg.Watch {
		app.Watcher = fsnotify.NewWatcher(log)
	}

	if err := app.Run(ctx); err != nil {
		logger.WithError(log, err).Error("story ended with error")
		return err
	}
	return nil
}
