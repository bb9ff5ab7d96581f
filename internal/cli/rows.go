package cli

import (
	"bytes"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/roach88/dxlink/internal/store"
)

// RowsOptions holds flags for the rows command.
type RowsOptions struct {
	*RootOptions
	Preset string
	Num    int
}

// RowsResult is the output of the rows command.
type RowsResult struct {
	Entity string          `json:"entity"`
	URL    string          `json:"url"`
	Rows   json.RawMessage `json:"rows"`
}

// String prints the response body indented.
func (r RowsResult) String() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Rows, "", "  "); err != nil {
		return string(r.Rows)
	}
	return buf.String()
}

// NewRowsCommand creates the rows command.
func NewRowsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RowsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rows <entity> [field=value...]",
		Short: "Fetch matching rows from the REST API",
		Long: `Fetch the rows of entity that match the filters from the REST API (api/v2)
and print the JSON response. The same filter rules as url apply.

Examples:
  dxlink rows umdm_sample gender=female --num 10
  dxlink rows --preset female-samples --format json`,
		Args: usageArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRows(opts, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.Preset, "preset", "", "start from a named preset")
	cmd.Flags().IntVar(&opts.Num, "num", 0, "maximum number of rows (0 = server default)")

	return cmd
}

func runRows(opts *RowsOptions, cmd *cobra.Command, args []string) error {
	if opts.Num < 0 {
		return NewExitError(ExitCommandError, CodeUsage, "--num must not be negative")
	}

	a, err := newApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	t, err := a.resolveTarget(args, opts.Preset)
	if err != nil {
		return err
	}
	link, err := a.linker.Rows(t.Entity, t.Filters, opts.Num)
	if err != nil {
		return err
	}
	abs, err := a.linker.Builder.Absolute(link)
	if err != nil {
		return err
	}

	var rows json.RawMessage
	if err := a.fetchClient().GetJSON(cmd.Context(), abs, &rows); err != nil {
		return err
	}
	a.record(cmd, store.KindRows, t.Entity, abs)

	return a.out.Success(RowsResult{Entity: t.Entity, URL: abs, Rows: rows})
}
