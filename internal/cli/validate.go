package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/matcha/internal/dialect"
	"github.com/roach88/matcha/internal/engine"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	Rules string
}

// NewValidateCommand creates the validate command: compile rules without
// running them.
func NewValidateCommand(root *RootOptions) *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that a rule block compiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: root.Format, Writer: cmd.OutOrStdout()}

			rulesText, err := readArg(opts.Rules)
			if err != nil {
				_ = out.Fail("E_LOAD", err.Error())
				return WrapExitError(ExitCommandError, "loading rules", err)
			}
			rules, err := dialect.Read(rulesText)
			if err != nil {
				_ = out.Fail("E_READ", err.Error())
				return WrapExitError(ExitCommandError, "reading rules", err)
			}

			if err := engine.Validate(rules); err != nil {
				_ = out.Fail("E_USAGE", err.Error())
				return WrapExitError(ExitNoMatch, "rules are malformed", err)
			}

			if root.Format == "json" {
				return out.JSON(map[string]any{"valid": true, "elements": len(rules)})
			}
			out.Textf("ok: %d top-level elements", len(rules))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Rules, "rules", "", "rule block in dialect notation, or @file (required)")
	_ = cmd.MarkFlagRequired("rules")

	return cmd
}
