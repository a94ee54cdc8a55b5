package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomc271/jcamp/internal/catalog"
)

// SearchResults is the serializable view of a catalog query.
type SearchResults struct {
	Query   string          `json:"query" yaml:"query"`
	Entries []catalog.Entry `json:"entries" yaml:"entries"`
}

// String renders the results for text output.
func (r SearchResults) String() string {
	if len(r.Entries) == 0 {
		return fmt.Sprintf("no spectra matching %q", r.Query)
	}
	var b strings.Builder
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "%-40s %6d pts  %s\n", e.Title, e.NPoints, e.Origin)
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewSearchCommand creates the search command: query the catalog by
// title substring.
func NewSearchCommand(opts *RootOptions) *cobra.Command {
	var catalogPath string
	cmd := &cobra.Command{
		Use:   "search <title-substring>",
		Short: "Search the catalog by title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := catalog.Open(catalogPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "search failed", err)
			}
			defer store.Close()

			entries, err := store.SearchTitle(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "search failed", err)
			}

			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return f.Emit(SearchResults{Query: args[0], Entries: entries})
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", opts.Config.CatalogPath, "catalog database path")
	return cmd
}
