// Package cli implements the interactive CineScribe shell: account handling,
// collection and review management and movie metadata search.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/cinescribe/cinescribe/internal/client/config"
	"github.com/cinescribe/cinescribe/internal/client/imagecache"
	"github.com/cinescribe/cinescribe/internal/client/remote"
	"github.com/cinescribe/cinescribe/internal/client/sync"
	"github.com/cinescribe/cinescribe/internal/client/tmdb"
	"github.com/cinescribe/cinescribe/internal/logging"
)

var (
	titleColor = color.New(color.FgCyan, color.Bold).SprintFunc()
	okColor    = color.New(color.FgGreen).SprintFunc()
	warnColor  = color.New(color.FgYellow).SprintFunc()
)

type App struct {
	config *config.Config
	sync   *sync.Service
	movies *tmdb.Client
	images *imagecache.Cache
	reader *bufio.Reader

	watchCancel context.CancelFunc
}

func NewApp(c *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	store := remote.NewHTTPStore(c.ServerEndpoint)

	var movies *tmdb.Client
	if c.TMDbAPIKey != "" {
		movies = tmdb.NewClient(c.TMDbAPIKey)
	}

	return &App{
		config: c,
		sync:   sync.NewService(store, log),
		movies: movies,
		images: imagecache.New(),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	_, err := a.sync.Session()
	return err == nil
}

func (a *App) Run(ctx context.Context) {
	defer a.stopWatcher()
	a.Root(ctx)
}

// startWatcher subscribes to the collection subtree so the cached set stays
// fresh while the shell is open. Called after a successful login/register;
// restarting replaces the previous subscription.
func (a *App) startWatcher(ctx context.Context) {
	a.stopWatcher()

	watchCtx, cancel := context.WithCancel(ctx)
	a.watchCancel = cancel

	ch, err := a.sync.WatchCollections(watchCtx)
	if err != nil {
		cancel()
		a.watchCancel = nil
		printlnFn(warnColor("collection updates unavailable: " + err.Error()))
		return
	}

	go func() {
		for range ch {
			// the service refreshes its cache on every snapshot; the shell
			// re-reads it on demand
		}
	}()
}

func (a *App) stopWatcher() {
	if a.watchCancel != nil {
		a.watchCancel()
		a.watchCancel = nil
	}
}
