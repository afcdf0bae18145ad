package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/99minutos/community-board/internal/ui/shell"
	"github.com/99minutos/community-board/pkg/logger"
)

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Browse and post from the terminal",
		Long: `Start the interactive community board.

Pages are rendered to stdout and commands are read from stdin, one per
line. Type "help" inside the shell for the command list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return runShell(ctx, cmd, rootOpts)
		},
	}
	return cmd
}

func runShell(ctx context.Context, cmd *cobra.Command, opts *RootOptions) error {
	a, err := opts.openApp(ctx)
	if err != nil {
		return err
	}
	defer closeApp(a, opts.log)

	sh := shell.New(shell.Options{
		Auth:           a.Auth,
		Posts:          a.Posts,
		Events:         a.Events,
		Admin:          a.Admin,
		Images:         a.Images,
		Store:          a.Store,
		AllowedDomains: opts.cfg.Community.AllowedDomains,
		Policy:         opts.cfg.Community.AccessPolicy(),
		AdminEmail:     opts.cfg.Community.AdminEmailSeed,
		In:             cmd.InOrStdin(),
		Out:            cmd.OutOrStdout(),
		Logger:         logger.Component("shell"),
	})
	return sh.Run(ctx)
}
