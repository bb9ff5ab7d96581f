package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/dxlink/internal/store"
)

// URLOptions holds flags for the url command.
type URLOptions struct {
	*RootOptions
	Preset string
}

// LinkResult is the output of commands that produce a link.
type LinkResult struct {
	Kind    store.Kind `json:"kind"`
	Entity  string     `json:"entity"`
	URL     string     `json:"url"`
	Clauses []string   `json:"clauses,omitempty"`
	Opened  bool       `json:"opened,omitempty"`
}

// String prints the bare URL so text output can be piped.
func (r LinkResult) String() string {
	return r.URL
}

// NewURLCommand creates the url command.
func NewURLCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &URLOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "url <entity> [field=value...]",
		Short: "Print a filtered table link",
		Long: `Print the data-explorer link for entity filtered by field=value pairs.

A comma-separated value on a flat field becomes a membership test; on a dotted
field it becomes an OR of queries. Empty values are dropped.

Examples:
  dxlink url umdm_sample gender=female
  dxlink url umdm_sample "country=Australia, New Zealand" sample.origin=blood,saliva
  dxlink url --preset female-samples country=Belgium`,
		Args: usageArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runURL(opts, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.Preset, "preset", "", "start from a named preset")

	return cmd
}

func runURL(opts *URLOptions, cmd *cobra.Command, args []string) error {
	a, err := newApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	t, err := a.resolveTarget(args, opts.Preset)
	if err != nil {
		return err
	}
	clauses, err := a.linker.Clauses(t.Filters)
	if err != nil {
		return err
	}
	link, err := a.linker.Builder.TableURL(t.Entity, clauses)
	if err != nil {
		return err
	}

	a.log.Debug().Strs("clauses", clauses).Msg("link built")
	return a.out.Success(LinkResult{Kind: store.KindTable, Entity: t.Entity, URL: link, Clauses: clauses})
}
