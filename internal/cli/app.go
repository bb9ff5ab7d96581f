package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/roach88/dxlink/internal/config"
	"github.com/roach88/dxlink/internal/explorer"
	"github.com/roach88/dxlink/internal/fetch"
	"github.com/roach88/dxlink/internal/filter"
	"github.com/roach88/dxlink/internal/opener"
	"github.com/roach88/dxlink/internal/rsql"
	"github.com/roach88/dxlink/internal/store"
)

// app holds what a command needs once configuration is loaded.
type app struct {
	opts   *RootOptions
	cfg    config.Config
	log    zerolog.Logger
	out    *OutputFormatter
	linker *explorer.Linker
}

func newApp(opts *RootOptions, cmd *cobra.Command) (*app, error) {
	log := newLogger(cmd, opts.Verbose)

	cfg, err := config.LoadWith(config.Options{Path: opts.ConfigPath, EnvFile: opts.EnvFile})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, CodeConfig, "failed to load config", err)
	}
	log.Debug().
		Str("base_url", cfg.BaseURL).
		Str("host", cfg.Host).
		Str("parens", cfg.MembershipParens).
		Str("unicode", cfg.UnicodeForm).
		Msg("config loaded")

	builder := &explorer.Builder{BaseURL: cfg.BaseURL, Host: cfg.Host}
	linker := explorer.NewLinker(builder, rsql.NewCompiler(cfg.ParenStyle()))
	linker.Unicode = cfg.Unicode()
	return &app{
		opts: opts,
		cfg:  cfg,
		log:  log,
		out: &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		},
		linker: linker,
	}, nil
}

// newLogger writes human-readable logs to the command's stderr.
func newLogger(cmd *cobra.Command, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = cmd.ErrOrStderr()
	})).Level(level).With().Timestamp().Logger()
}

func (a *app) presets() (config.Presets, error) {
	p, err := config.LoadPresets(a.cfg.Presets)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, CodeConfig, "failed to load presets", err)
	}
	return p, nil
}

func (a *app) opener() opener.Opener {
	if a.opts.Opener != nil {
		return a.opts.Opener
	}
	return opener.Browser{Output: a.out.GetErrWriter()}
}

func (a *app) fetchClient() *fetch.Client {
	return fetch.NewClient(fetch.Options{
		Timeout: a.cfg.HTTP.Timeout,
		Retries: a.cfg.HTTP.Retries,
		Logger:  a.log,
	})
}

// openHistory opens the history database, creating its directory.
func (a *app) openHistory() (*store.Store, error) {
	path := a.cfg.HistoryDB
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, WrapExitError(ExitCommandError, CodeHistory, "failed to create history directory", err)
		}
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, CodeHistory, "failed to open history", err)
	}
	return st, nil
}

// target is what a link command resolved from its arguments and preset.
type target struct {
	Entity  string
	Filters *filter.Set
	Search  string
}

// resolveTarget reads the entity and filters from args. With a preset the
// entity comes from the preset and every argument is a field=value pair
// overriding the preset's filters.
func (a *app) resolveTarget(args []string, presetName string) (target, error) {
	if presetName == "" {
		if len(args) == 0 {
			return target{}, NewExitError(ExitCommandError, CodeUsage, "entity is required without --preset")
		}
		set, err := filter.ParsePairs(args[1:])
		if err != nil {
			return target{}, err
		}
		return target{Entity: args[0], Filters: set}, nil
	}

	presets, err := a.presets()
	if err != nil {
		return target{}, err
	}
	p, err := presets.Get(presetName)
	if err != nil {
		return target{}, WrapExitError(ExitCommandError, CodeConfig, "preset lookup failed", err)
	}
	overrides, err := filter.ParsePairs(args)
	if err != nil {
		return target{}, err
	}
	a.log.Debug().Str("preset", p.Name).Str("entity", p.Entity).Msg("using preset")
	return target{Entity: p.Entity, Filters: p.Filters.Merge(overrides), Search: p.Search}, nil
}

// record stores link in the history database. Failures are only logged.
func (a *app) record(cmd *cobra.Command, kind store.Kind, entity, link string) {
	st, err := a.openHistory()
	if err != nil {
		a.log.Warn().Err(err).Msg("history unavailable")
		return
	}
	defer st.Close()

	if _, err := st.Record(cmd.Context(), store.Link{Kind: kind, Entity: entity, URL: link}); err != nil {
		a.log.Warn().Err(fmt.Errorf("record link: %w", err)).Msg("history not updated")
	}
}
