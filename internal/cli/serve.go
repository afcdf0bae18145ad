package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/99minutos/community-board/internal/api"
	"github.com/99minutos/community-board/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr       string
	RequestLog bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the community board over HTTP.

The listen address defaults to ":" followed by PORT. The server stops
gracefully on SIGINT or SIGTERM and flushes the store before exiting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default \":$PORT\")")
	cmd.Flags().BoolVar(&opts.RequestLog, "request-log", false, "log every HTTP request")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	a, err := opts.openApp(ctx)
	if err != nil {
		return err
	}
	defer closeApp(a, opts.log)

	e := api.NewRouter(api.Options{
		Auth:           a.Auth,
		Posts:          a.Posts,
		Events:         a.Events,
		Admin:          a.Admin,
		Images:         a.Images,
		StorageBackend: opts.cfg.Storage.Backend,
		Storage:        a.Storage,
		AllowedDomains: opts.cfg.Community.AllowedDomains,
		Policy:         opts.cfg.Community.AccessPolicy(),
		Logger:         logger.Component("http"),
		RequestLog:     opts.RequestLog,
	})

	addr := opts.Addr
	if addr == "" {
		addr = net.JoinHostPort("", opts.cfg.Port)
	}

	serveErr := make(chan error, 1)
	go func() {
		opts.log.Info().Str("addr", addr).Str("backend", opts.cfg.Storage.Backend).Msg("http server listening")
		serveErr <- e.Start(addr)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	opts.log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
