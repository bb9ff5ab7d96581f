package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// PresetInfo describes one preset in presets output.
type PresetInfo struct {
	Name    string `json:"name"`
	Entity  string `json:"entity"`
	Filters string `json:"filters,omitempty"`
	Search  string `json:"search,omitempty"`
}

// PresetsResult is the output of the presets command.
type PresetsResult struct {
	Presets []PresetInfo `json:"presets"`
}

func (r PresetsResult) String() string {
	if len(r.Presets) == 0 {
		return "No presets configured"
	}
	lines := make([]string, len(r.Presets))
	for i, p := range r.Presets {
		line := fmt.Sprintf("%s  %s", p.Name, p.Entity)
		if p.Filters != "" {
			line += "  " + p.Filters
		}
		if p.Search != "" {
			line += fmt.Sprintf("  search=%q", p.Search)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// NewPresetsCommand creates the presets command.
func NewPresetsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List configured presets",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(rootOpts, cmd)
		},
	}

	return cmd
}

func runPresets(opts *RootOptions, cmd *cobra.Command) error {
	a, err := newApp(opts, cmd)
	if err != nil {
		return err
	}
	presets, err := a.presets()
	if err != nil {
		return err
	}

	result := PresetsResult{Presets: []PresetInfo{}}
	for _, name := range presets.Names() {
		p := presets[name]
		info := PresetInfo{Name: name, Entity: p.Entity, Search: p.Search}
		if p.Filters.Len() > 0 {
			info.Filters = p.Filters.String()
		}
		result.Presets = append(result.Presets, info)
	}
	return a.out.Success(result)
}
