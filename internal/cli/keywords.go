package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/matcha/internal/engine"
)

// KeywordEntry describes one registered combinator for listing.
type KeywordEntry struct {
	Name    string `json:"name"`
	Params  int    `json:"params"`
	Summary string `json:"summary"`
}

// NewKeywordsCommand creates the keywords command: list the default
// combinator registry.
func NewKeywordsCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keywords",
		Short: "List the built-in combinator keywords",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: root.Format, Writer: cmd.OutOrStdout()}

			reg := engine.DefaultRegistry()
			var entries []KeywordEntry
			for _, w := range reg.Words() {
				c, _ := reg.Get(w)
				entries = append(entries, KeywordEntry{
					Name:    c.Name,
					Params:  len(c.Params),
					Summary: c.Summary,
				})
			}

			if root.Format == "json" {
				return out.JSON(entries)
			}
			for _, e := range entries {
				out.Textf("%-10s %d  %s", e.Name, e.Params, e.Summary)
			}
			return nil
		},
	}
}
