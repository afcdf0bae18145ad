// Package cli implements the community command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/99minutos/community-board/internal/app"
	"github.com/99minutos/community-board/internal/pkg/config"
	"github.com/99minutos/community-board/pkg/logger"
)

// Exit codes returned by ExitCode.
const (
	ExitOK     = 0
	ExitError  = 1
	ExitConfig = 2
)

// errConfig marks failures to load or validate configuration.
var errConfig = errors.New("configuration error")

// loadConfig is a test seam for config.Load.
var loadConfig = config.Load

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel string
	Pretty   bool

	cfg *config.Config
	log zerolog.Logger
}

// NewRootCommand creates the root command for the community CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "community",
		Short:         "Campus community board",
		Long:          "Run the community board HTTP API or interactive shell, and manage its stored state.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return fmt.Errorf("%w: %w", errConfig, err)
			}
			if opts.LogLevel != "" {
				cfg.LogLevel = opts.LogLevel
			}
			opts.cfg = cfg
			opts.log = logger.Init(logger.Options{
				Level:  cfg.LogLevel,
				Pretty: opts.Pretty || !cfg.IsProduction(),
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override LOG_LEVEL (trace|debug|info|warn|error|off)")
	cmd.PersistentFlags().BoolVar(&opts.Pretty, "pretty", false, "human-friendly log output")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewShellCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))

	return cmd
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// ExitCode maps an Execute error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errConfig):
		return ExitConfig
	default:
		return ExitError
	}
}

func (o *RootOptions) openApp(ctx context.Context, opts ...app.Option) (*app.App, error) {
	return app.New(ctx, o.cfg, o.log, opts...)
}

func closeApp(a *app.App, log zerolog.Logger) {
	if err := a.Close(); err != nil {
		log.Error().Err(err).Msg("close application")
	}
}

