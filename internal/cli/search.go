package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dxlink/internal/store"
)

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <entity> <term...>",
		Short: "Print a search-all link",
		Long: `Print the data-explorer link that searches every column of entity for term.
Multiple term arguments are joined with spaces.

Examples:
  dxlink search variantdb_variant BRCA1
  dxlink search variantdb_variant BRCA1 c.68_69del`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(rootOpts, cmd, args)
		},
	}

	return cmd
}

func runSearch(opts *RootOptions, cmd *cobra.Command, args []string) error {
	a, err := newApp(opts, cmd)
	if err != nil {
		return err
	}

	entity, term := args[0], strings.Join(args[1:], " ")
	link, err := a.linker.Search(entity, term)
	if err != nil {
		return err
	}
	return a.out.Success(LinkResult{Kind: store.KindSearch, Entity: entity, URL: link})
}
