// Package server wires configuration, logging, the blob store and the
// template service together, preloads the registry and runs the HTTP API
// until a stop signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/fingervault/internal/common"
	"github.com/dmitrijs2005/fingervault/internal/logging"
	"github.com/dmitrijs2005/fingervault/internal/server/blobstore"
	"github.com/dmitrijs2005/fingervault/internal/server/config"
	"github.com/dmitrijs2005/fingervault/internal/server/httpapi"
	"github.com/dmitrijs2005/fingervault/internal/server/templates"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	templates *templates.Service
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	w, err := logging.Output(c.LogFile)
	if err != nil {
		return nil, err
	}
	logger := logging.NewJSONLogger(w, slog.LevelInfo)

	store, err := blobstore.NewS3(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	return newApp(c, logger, store), nil
}

func newApp(c *config.Config, l logging.Logger, store blobstore.Store) *App {
	ts := templates.NewService(store, templates.NewRegistry(), c.TemplatePrefix, c.TemplateExtension, l)
	return &App{config: c, logger: l, templates: ts}
}

// preload fills the registry before traffic is accepted. Failures are logged
// and the server starts with whatever the registry holds.
func (app *App) preload(ctx context.Context) {
	app.logger.Info(ctx, "Loading templates from blob store...", "prefix", app.config.TemplatePrefix)

	n, err := app.templates.Load(ctx)
	switch {
	case errors.Is(err, common.ErrNoTemplates):
		app.logger.Warn(ctx, "No templates found", "prefix", app.config.TemplatePrefix)
	case err != nil:
		app.logger.Error(ctx, "Error loading templates", "error", err.Error())
	default:
		app.logger.Info(ctx, "Templates loaded", "count", n)
	}
}

// Run blocks until ctx is cancelled, a stop signal arrives or the HTTP
// server fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.preload(ctx)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigs)

	srv := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.templates, httpapi.Options{
		BodyLimit:       app.config.BodyLimit,
		ShutdownTimeout: app.config.ShutdownTimeout,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case sig := <-sigs:
			app.logger.Info(gctx, "Signal received", "signal", sig.String())
			cancelFunc()
		case <-gctx.Done():
		}
		return nil
	})

	g.Go(func() error {
		return srv.Run(gctx)
	})

	return g.Wait()
}
