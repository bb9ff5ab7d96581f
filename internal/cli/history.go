package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/dxlink/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit  int
	Entity string
}

// HistoryResult is the output of the history command.
type HistoryResult struct {
	Links []store.Link `json:"links"`
}

// String prints one link per line, newest first.
func (r HistoryResult) String() string {
	if len(r.Links) == 0 {
		return "No links recorded"
	}
	lines := make([]string, len(r.Links))
	for i, l := range r.Links {
		lines[i] = fmt.Sprintf("%s  %-6s  %s  %s",
			l.CreatedAt.Format(time.DateTime), l.Kind, l.Entity, l.URL)
	}
	return strings.Join(lines, "\n")
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently opened links",
		Long: `List links recorded by open, rows and serve, newest first.

Examples:
  dxlink history
  dxlink history --limit 5 --entity umdm_sample`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of links (0 = all)")
	cmd.Flags().StringVar(&opts.Entity, "entity", "", "only links for this entity")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	a, err := newApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	st, err := a.openHistory()
	if err != nil {
		return err
	}
	defer st.Close()

	links, err := st.List(cmd.Context(), store.ListOptions{Entity: opts.Entity, Limit: opts.Limit})
	if err != nil {
		return WrapExitError(ExitCommandError, CodeHistory, "failed to list history", err)
	}
	if links == nil {
		links = []store.Link{}
	}
	return a.out.Success(HistoryResult{Links: links})
}
