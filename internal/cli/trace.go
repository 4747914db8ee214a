package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/matcha/internal/trace"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	DB    string
	Limit int
}

// NewTraceCommand creates the trace command: dump recorded sessions.
func NewTraceCommand(root *RootOptions) *cobra.Command {
	opts := &TraceOptions{}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show recorded parse sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: root.Format, Writer: cmd.OutOrStdout()}

			if _, err := os.Stat(opts.DB); err != nil {
				_ = out.Fail("E_DB", "trace database not found: "+opts.DB)
				return WrapExitError(ExitCommandError, "trace database not found", err)
			}
			store, err := trace.Open(opts.DB)
			if err != nil {
				_ = out.Fail("E_DB", err.Error())
				return WrapExitError(ExitCommandError, "opening trace database", err)
			}
			defer store.Close()

			sessions, err := store.List(cmd.Context(), opts.Limit)
			if err != nil {
				_ = out.Fail("E_DB", err.Error())
				return WrapExitError(ExitCommandError, "listing sessions", err)
			}

			if root.Format == "json" {
				return out.JSON(sessions)
			}
			for _, s := range sessions {
				status := "no-match"
				if s.Matched {
					status = "matched"
				}
				out.Textf("%s  %s  %-8s  progress=%d furthest=%d  %s",
					s.CreatedAt, s.ID, status, s.Progress, s.Furthest, s.Rules)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "path to the trace database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum sessions to show (0 = all)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}
