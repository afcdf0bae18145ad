// Package app wires configuration, storage, the store and the domain
// services into one value shared by the HTTP server and the shell.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/community-board/internal/core/ports"
	"github.com/99minutos/community-board/internal/core/service"
	"github.com/99minutos/community-board/internal/core/store"
	"github.com/99minutos/community-board/internal/infrastructure/db"
	"github.com/99minutos/community-board/internal/pkg/config"
)

type App struct {
	Config  *config.Config
	Storage ports.Storage
	Store   *store.Store

	Auth   *service.AuthService
	Posts  *service.PostService
	Events *service.EventService
	Admin  *service.AdminService
	Images *service.ImageService

	closeStorage db.Closer
}

type options struct {
	migrate bool
	now     func() time.Time
}

type Option func(*options)

// WithoutMigration opens the store as persisted, skipping schema upgrades and the demo seed.
func WithoutMigration() Option {
	return func(o *options) { o.migrate = false }
}

// WithClock overrides the time source used by migrations and the seed.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New opens the configured storage, loads and migrates the state and builds
// the services on top of it.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts ...Option) (*App, error) {
	o := options{migrate: true, now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}

	storage, closeStorage, err := db.OpenStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("app: open storage: %w", err)
	}

	st, err := store.Open(ctx, storage,
		store.WithKey(cfg.Storage.Key),
		store.WithLogger(logger.With().Str("component", "store").Logger()),
		store.WithClock(o.now),
	)
	if err != nil {
		_ = closeStorage()
		return nil, fmt.Errorf("app: open store: %w", err)
	}

	if o.migrate {
		if _, err := st.Migrate(ctx, service.DemoSeed(cfg.Community.AdminEmailSeed, o.now)); err != nil {
			_ = st.Close()
			_ = closeStorage()
			return nil, fmt.Errorf("app: migrate: %w", err)
		}
	}

	svcLog := logger.With().Str("component", "service").Logger()
	return &App{
		Config:       cfg,
		Storage:      storage,
		Store:        st,
		Auth:         service.NewAuthService(st, svcLog),
		Posts:        service.NewPostService(st, svcLog),
		Events:       service.NewEventService(st, svcLog),
		Admin:        service.NewAdminService(st, cfg.Community.AdminEmailSeed, svcLog),
		Images:       service.NewImageService(cfg.Community.ImageMaxMB),
		closeStorage: closeStorage,
	}, nil
}

// Close detaches the store and releases the storage backend. Every commit is
// already persisted, so nothing is written here.
func (a *App) Close() error {
	return errors.Join(a.Store.Close(), a.closeStorage())
}
