package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dxlink/internal/explorer"
)

// DecodeResult is the output of the decode command.
type DecodeResult struct {
	Entity  string   `json:"entity"`
	Clauses []string `json:"clauses"`
}

// String prints one clause per line.
func (r DecodeResult) String() string {
	return strings.Join(r.Clauses, "\n")
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <url>",
		Short: "Print the filter clauses inside a table link",
		Long: `Print the entity and the ordered RSQL clauses of a filtered table link.

Examples:
  dxlink decode 'https://example.org/menu/plugins/dataexplorer?entity=umdm_sample&mod=data&hideselect=true&filter=gender%3D%3Dfemale'`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runDecode(opts *RootOptions, cmd *cobra.Command, link string) error {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	entity, err := explorer.DecodeEntity(link)
	if err != nil {
		return err
	}
	clauses, err := explorer.DecodeFilter(link)
	if err != nil {
		return err
	}
	return out.Success(DecodeResult{Entity: string(entity), Clauses: clauses})
}
