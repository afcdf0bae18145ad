package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/99minutos/community-board/internal/app"
	"github.com/99minutos/community-board/internal/core/domain"
)

// ValidDumpFormats defines the output formats accepted by dump.
var ValidDumpFormats = []string{"json", "yaml"}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Upgrade the stored state and apply the demo seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rootOpts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp(a, rootOpts.log)

			st := a.Store.GetState()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "migrated %s: %d users (%d pending), %d posts, %d events\n",
				rootOpts.cfg.Storage.Key, len(st.Users), len(st.PendingUsers), len(st.Posts), len(st.Events))
			return err
		},
	}
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored state document",
		Long: `Remove the persisted state under STORAGE_KEY.

The next start recreates the default state and applies the demo seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete %q without --yes", rootOpts.cfg.Storage.Key)
			}
			a, err := rootOpts.openApp(cmd.Context(), app.WithoutMigration())
			if err != nil {
				return err
			}
			defer closeApp(a, rootOpts.log)

			if err := a.Storage.Remove(cmd.Context(), rootOpts.cfg.Storage.Key); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			rootOpts.log.Warn().Str("key", rootOpts.cfg.Storage.Key).Msg("stored state removed")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", rootOpts.cfg.Storage.Key)
			return err
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")
	return cmd
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the stored state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidDumpFormats, format) {
				return fmt.Errorf("invalid format %q: must be one of %v", format, ValidDumpFormats)
			}
			a, err := rootOpts.openApp(cmd.Context(), app.WithoutMigration())
			if err != nil {
				return err
			}
			defer closeApp(a, rootOpts.log)

			return writeState(cmd.OutOrStdout(), format, a.Store.GetState())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json|yaml)")
	return cmd
}

func writeState(w io.Writer, format string, st domain.State) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(st); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(st); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}
