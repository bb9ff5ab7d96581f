package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/roach88/dxlink/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve link redirects and proxy the backend",
		Long: `Run an HTTP server that redirects /link/{entity}?field=value and
/search/{entity}?q=term to data-explorer pages, relays /rows/{entity} from the
REST API, and proxies /api, /apps, /graphql and /theme.css to the backend.

Examples:
  dxlink serve
  dxlink serve --addr 127.0.0.1:9000`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	a, err := newApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	st, err := a.openHistory()
	if err != nil {
		return err
	}
	defer st.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv, err := server.New(server.Options{
		Linker:    a.linker,
		Fetcher:   a.fetchClient(),
		History:   st,
		Host:      a.cfg.Host,
		SchemaURL: a.cfg.SchemaURL(),
		Logger:    a.log,
		Registry:  reg,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, CodeConfig, "failed to create server", err)
	}

	addr := opts.Addr
	if addr == "" {
		addr = a.cfg.Listen
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return WrapExitError(ExitFailure, CodeFailure, "server failed", err)
	}
	return nil
}
