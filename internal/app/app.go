package app

import (
	"context"
	"errors"
	"fmt"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

type App struct {
	logger *slog.Logger
	router *http.ServeMux
	repo   *repository.Queries
	jwt    *config.JWT
	ws     *config.WebSocket
	game   *config.Game
}

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// New loads the configuration from the environment and registers the
// routes.
func New(logger *slog.Logger) (*App, error) {
	jwt, err := config.NewJWT()
	if err != nil {
		return nil, fmt.Errorf("unable to load jwt config: %w", err)
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		return nil, fmt.Errorf("unable to load websocket config: %w", err)
	}

	game, err := config.NewGame()
	if err != nil {
		return nil, fmt.Errorf("unable to load game config: %w", err)
	}

	app := &App{
		logger: logger,
		router: http.NewServeMux(),
		repo:   repository.New(createRand()),
		jwt:    jwt,
		ws:     ws,
		game:   game,
	}
	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	var h http.Handler = a.router
	if basePath := config.BasePath(); basePath != "" {
		h = http.StripPrefix(basePath, h)
	}
	return middleware.Wrap(
		h,
		middleware.Logging(a.logger),
		middleware.Cors(),
		middleware.Auth(a.logger, a.jwt),
	)
}

// pruneSessions drops idle sessions every tick until ctx is done.
func (a *App) pruneSessions(ctx context.Context) error {
	ticker := time.NewTicker(a.game.SessionTTL / 4)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			pruned, err := a.repo.PruneSessions(ctx, now.Add(-a.game.SessionTTL))
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
			if pruned > 0 {
				a.logger.Info("pruned idle sessions",
					slog.Int("pruned", pruned),
					slog.Int("remaining", a.repo.Count()),
				)
			}
		}
	}
}

// Start serves until ctx is canceled or the server fails, then shuts down
// gracefully.
func (a *App) Start(ctx context.Context) error {
	addr := config.Port()
	server := &http.Server{
		Addr:    addr,
		Handler: a.Handler(),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		return a.pruneSessions(gCtx)
	})

	a.logger.Info("server listening",
		slog.String("addr", addr),
		slog.String("base path", config.BasePath()),
	)

	return g.Wait()
}
