package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/dxlink/internal/store"
)

// OpenOptions holds flags for the open command.
type OpenOptions struct {
	*RootOptions
	Preset string
	Search string
	DryRun bool
}

// NewOpenCommand creates the open command.
func NewOpenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OpenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "open [entity] [field=value...]",
		Short: "Open a filtered table or search in the browser",
		Long: `Build a link like url (or search, with --search) and open it in the
system browser. Opened links are recorded in the history database.

With --preset the entity comes from the preset and all arguments are
field=value overrides. A preset with a search term and no filters opens a
search-all link.

Examples:
  dxlink open umdm_sample gender=female
  dxlink open umdm_sample --search BRCA1
  dxlink open --preset female-samples --dry-run`,
		Args: usageArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(opts, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.Preset, "preset", "", "start from a named preset")
	cmd.Flags().StringVar(&opts.Search, "search", "", "open a search-all link for this term")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the link without opening or recording it")

	return cmd
}

func runOpen(opts *OpenOptions, cmd *cobra.Command, args []string) error {
	a, err := newApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	t, err := a.resolveTarget(args, opts.Preset)
	if err != nil {
		return err
	}

	term := opts.Search
	if term == "" && t.Filters.Strip().Len() == 0 {
		term = t.Search
	}

	var result LinkResult
	if term != "" {
		if t.Filters.Strip().Len() > 0 {
			a.log.Warn().Strs("fields", t.Filters.Strip().Fields()).Msg("filters ignored by search-all link")
		}
		link, err := a.linker.Search(t.Entity, term)
		if err != nil {
			return err
		}
		result = LinkResult{Kind: store.KindSearch, Entity: t.Entity, URL: link}
	} else {
		clauses, err := a.linker.Clauses(t.Filters)
		if err != nil {
			return err
		}
		link, err := a.linker.Builder.TableURL(t.Entity, clauses)
		if err != nil {
			return err
		}
		result = LinkResult{Kind: store.KindTable, Entity: t.Entity, URL: link, Clauses: clauses}
	}

	abs, err := a.linker.Builder.Absolute(result.URL)
	if err != nil {
		return err
	}
	result.URL = abs

	if opts.DryRun {
		return a.out.Success(result)
	}

	if err := a.opener().Open(abs); err != nil {
		return WrapExitError(ExitFailure, CodeOpen, "failed to open link", err)
	}
	result.Opened = true
	a.log.Info().Str("url", abs).Msg("opened")
	a.record(cmd, result.Kind, result.Entity, abs)

	return a.out.Success(result)
}
