// Package app wires configuration, storage backends and the HTTP router
// together and runs the server until a shutdown signal arrives.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ybblog/blog/internal/api"
	"github.com/ybblog/blog/internal/api/cookie"
	"github.com/ybblog/blog/internal/core/ports"
	"github.com/ybblog/blog/internal/core/service"
	"github.com/ybblog/blog/internal/infrastructure/config"
	"github.com/ybblog/blog/internal/infrastructure/db/mongo"
	"github.com/ybblog/blog/internal/infrastructure/db/postgres"
	"github.com/ybblog/blog/internal/infrastructure/db/redis"
	"github.com/ybblog/blog/internal/infrastructure/http/handlers"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg     *config.Config
	log     zerolog.Logger
	server  *echo.Echo
	closers []func(context.Context) error
}

type stores struct {
	users    ports.UserRepository
	articles ports.ArticleRepository
	check    handlers.Check
}

// New connects to the configured backends and builds the router. On error
// every connection opened so far is closed.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (_ *App, err error) {
	a := &App{cfg: cfg, log: log}
	defer func() {
		if err != nil {
			a.close(context.Background())
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })

	st, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}

	sessions := redis.NewSessionStore(rdb, cfg.Session.TTL)
	a.server = api.NewRouter(api.Deps{
		Auth:     service.NewAuthService(st.users, sessions, log.With().Str("component", "auth").Logger()),
		Articles: service.NewArticleService(st.articles, log.With().Str("component", "articles").Logger()),
		Limiter:  redis.NewRateLimiter(rdb, cfg.Session.LoginRateLimit, time.Minute),
		Sessions: cookie.NewSessionCodec([]byte(cfg.Session.Secret), cfg.Session.CookieSecure),
		Flash:    cookie.NewFlasher([]byte(cfg.Session.FlashHashKey), cfg.Session.CookieSecure, log),
		Checks: map[string]handlers.Check{
			cfg.StoreDriver: st.check,
			"redis":         handlers.RedisCheck(rdb),
		},
		Log: log,
	})
	return a, nil
}

func (a *App) openStore(ctx context.Context) (*stores, error) {
	switch a.cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, postgres.Config{DSN: a.cfg.Postgres.DSN})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })

		if err := postgres.Migrate(ctx, db); err != nil {
			return nil, err
		}
		a.log.Info().Msg("postgres schema up to date")
		return &stores{
			users:    postgres.NewUserRepository(db),
			articles: postgres.NewArticleRepository(db),
			check:    handlers.SQLCheck(db),
		}, nil

	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: a.cfg.Mongo.URI, Database: a.cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Disconnect)

		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			return nil, err
		}
		return &stores{
			users:    mongo.NewUserRepository(db),
			articles: mongo.NewArticleRepository(db),
			check:    handlers.MongoCheck(db),
		}, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", a.cfg.StoreDriver)
}

// Run serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests and closes the backends.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + a.cfg.Port
		a.log.Info().Str("addr", addr).Str("store", a.cfg.StoreDriver).Msg("starting http server")
		if err := a.server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info().Msg("shutdown signal received")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("http shutdown")
	}
	a.close(shutdownCtx)

	if runErr != nil {
		return fmt.Errorf("http server: %w", runErr)
	}
	a.log.Info().Msg("server stopped")
	return nil
}

func (a *App) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.log.Warn().Err(err).Msg("close backend")
		}
	}
	a.closers = nil
}
