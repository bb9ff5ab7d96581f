// Package server serves deep links over HTTP: redirects to filtered
// data-explorer pages, a JSON relay for REST API rows, and a reverse proxy
// to the backend for everything the explorer pages load.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/roach88/dxlink/internal/explorer"
	"github.com/roach88/dxlink/internal/store"
)

// Fetcher retrieves JSON from the backend.
type Fetcher interface {
	GetJSON(ctx context.Context, url string, out any) error
}

// History records served links.
type History interface {
	Record(ctx context.Context, link store.Link) (store.Link, error)
}

// Options configures a Server.
type Options struct {
	Linker *explorer.Linker
	// Fetcher serves /rows. Nil disables the route.
	Fetcher Fetcher
	// History, when set, records every redirect.
	History History

	// Host is the backend origin for /api and /apps.
	Host string
	// SchemaURL is <host>/<schema>, the origin for /graphql and /theme.css.
	SchemaURL string

	Logger zerolog.Logger
	// Registry collects server metrics. Nil creates a private registry.
	Registry *prometheus.Registry
}

// Server routes link, rows and proxy requests.
type Server struct {
	linker  *explorer.Linker
	fetcher Fetcher
	history History
	log     zerolog.Logger
	metrics *metrics
	router  chi.Router
}

// New creates a Server. Host and SchemaURL must be absolute URLs.
func New(opts Options) (*Server, error) {
	if opts.Linker == nil {
		return nil, fmt.Errorf("server: linker is required")
	}
	hostProxy, err := newProxy(opts.Host)
	if err != nil {
		return nil, fmt.Errorf("server: host: %w", err)
	}
	schemaProxy, err := newProxy(opts.SchemaURL)
	if err != nil {
		return nil, fmt.Errorf("server: schema url: %w", err)
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Server{
		linker:  opts.Linker,
		fetcher: opts.Fetcher,
		history: opts.History,
		log:     opts.Logger.With().Str("component", "server").Logger(),
		metrics: newMetrics(reg),
	}

	r := chi.NewRouter()
	r.Use(hlog.NewHandler(s.log))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/link/{entity}", s.handleLink)
	r.Get("/search/{entity}", s.handleSearch)
	if s.fetcher != nil {
		r.Get("/rows/{entity}", s.handleRows)
	}

	r.Handle("/api/*", hostProxy)
	r.Handle("/apps/*", hostProxy)
	r.Handle("/graphql", schemaProxy)
	r.Handle("/theme.css", schemaProxy)

	s.router = r
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 3 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.Info().Str("addr", ln.Addr().String()).Msg("server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info().Msg("server stopped")
	return nil
}

// newProxy forwards requests to target, keeping the request path below the
// target's own path.
func newProxy(target string) (*httputil.ReverseProxy, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%q is not an absolute URL", target)
	}
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(u)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			hlog.FromRequest(r).Error().Err(err).Str("upstream", u.String()).Msg("proxy failed")
			writeJSON(w, r, http.StatusBadGateway, apiError{Code: codeUpstreamFailed, Message: err.Error()})
		},
	}, nil
}
