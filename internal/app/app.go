// Package app wires configuration into a running storefront server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/safar/rakhi-store/internal/api"
	"github.com/safar/rakhi-store/internal/catalog"
	"github.com/safar/rakhi-store/internal/config"
	"github.com/safar/rakhi-store/internal/database"
	"github.com/safar/rakhi-store/internal/ledger"
	"github.com/safar/rakhi-store/internal/notify"
	"github.com/safar/rakhi-store/internal/session"
)

type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	closers []func() error
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}

	logger := newLogger(cfg.App.LogLevel, cfg.App.Name)
	slog.SetDefault(logger)
	logger.Info("initialising",
		slog.String("ledger", cfg.Ledger.Backend),
		slog.String("sessions", cfg.Session.Backend),
	)

	a := &App{cfg: cfg, logger: logger}

	l, err := a.newLedger(ctx)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("ledger: %w", err)
	}

	sessions, err := a.newSessionStore(ctx)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("sessions: %w", err)
	}

	notifier, err := a.newNotifier()
	if err != nil {
		a.close()
		return nil, fmt.Errorf("notifier: %w", err)
	}

	h := api.NewHandler(sessions, l, catalog.Default(), notifier, cfg.Notify.RecipientPhone, logger)
	a.server = &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      api.NewRouter(h, cfg.Server.RequestTimeout),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return a, nil
}

// Run serves until ctx is cancelled, then shuts the server down and releases
// backend connections.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.logger.Info("server exited")
	return nil
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", slog.Any("error", err))
		}
	}
	a.closers = nil
}

func (a *App) newLedger(ctx context.Context) (ledger.Ledger, error) {
	cfg := a.cfg.Ledger

	switch cfg.Backend {
	case config.LedgerSheets:
		creds, err := config.GoogleCredentials()
		if err != nil {
			return nil, err
		}
		s, err := ledger.NewSheets(ctx, cfg.SheetID, cfg.SheetName, ledger.CredentialsOption(creds))
		if err != nil {
			return nil, err
		}
		return ledger.Coalesce(s), nil

	case config.LedgerPostgres:
		db, err := database.NewConnection(ctx, &a.cfg.Database)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)

		version, err := database.Migrate(db, database.Up)
		if err != nil {
			return nil, err
		}
		a.logger.Info("ledger schema ready", slog.Uint64("version", uint64(version)))
		return ledger.Coalesce(ledger.NewPostgres(db, cfg.SheetName)), nil

	case config.LedgerMemory:
		a.logger.Warn("using in-memory ledger; orders are lost on restart")
		return ledger.NewMemory(), nil
	}

	return nil, fmt.Errorf("unknown ledger backend %q", cfg.Backend)
}

func (a *App) newSessionStore(ctx context.Context) (session.Store, error) {
	cfg := a.cfg.Session

	switch cfg.Backend {
	case config.SessionRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, client.Close)

		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return session.NewRedisStore(client, cfg.TTL), nil

	case config.SessionMemory:
		return session.NewMemoryStore(cfg.TTL), nil
	}

	return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
}

func (a *App) newNotifier() (notify.Notifier, error) {
	if a.cfg.Notify.RabbitMQURL == "" {
		return notify.Noop{}, nil
	}

	conn, err := amqp.Dial(a.cfg.Notify.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	a.closers = append(a.closers, conn.Close)

	p, err := notify.NewRabbitPublisher(conn)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, p.Close)
	return p, nil
}

func newLogger(level, service string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "info":
		lvl = slog.LevelInfo
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})).
		With(slog.String("service", service))
}
