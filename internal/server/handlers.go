package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/roach88/dxlink/internal/fetch"
	"github.com/roach88/dxlink/internal/filter"
	"github.com/roach88/dxlink/internal/store"
)

// reservedPrefix marks query parameters that configure the request rather
// than filter the table.
const reservedPrefix = "_"

// paramNum limits the rows returned by /rows.
const paramNum = "_num"

// paramTerm carries the search-all term.
const paramTerm = "q"

func (s *Server) handleLink(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")

	set, err := filtersFromQuery(r.URL.RawQuery)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	link, err := s.linker.Table(entity, set)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.redirect(w, r, store.KindTable, entity, link)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")

	link, err := s.linker.Search(entity, r.URL.Query().Get(paramTerm))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.redirect(w, r, store.KindSearch, entity, link)
}

func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")

	num := 0
	if raw := r.URL.Query().Get(paramNum); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeAPIError(w, r, http.StatusBadRequest, apiError{
				Code:    codeBadQuery,
				Message: fmt.Sprintf("%s must be a non-negative integer, got %q", paramNum, raw),
			})
			return
		}
		num = n
	}

	set, err := filtersFromQuery(r.URL.RawQuery)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	link, err := s.linker.Rows(entity, set, num)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	target, err := s.linker.Builder.Absolute(link)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var body json.RawMessage
	if err := s.fetcher.GetJSON(r.Context(), target, &body); err != nil {
		var se *fetch.StatusError
		if errors.As(err, &se) {
			s.writeError(w, r, err)
			return
		}
		s.writeAPIError(w, r, http.StatusBadGateway, apiError{Code: codeUpstreamFailed, Message: err.Error()})
		return
	}

	s.metrics.links.WithLabelValues(string(store.KindRows)).Inc()
	s.remember(r, store.KindRows, entity, target)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, kind store.Kind, entity, link string) {
	target, err := s.linker.Builder.Absolute(link)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.links.WithLabelValues(string(kind)).Inc()
	s.remember(r, kind, entity, target)
	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) remember(r *http.Request, kind store.Kind, entity, link string) {
	if s.history == nil {
		return
	}
	_, err := s.history.Record(r.Context(), store.Link{Kind: kind, Entity: entity, URL: link})
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("record link")
	}
}

// filtersFromQuery builds a Filter Set from the raw query, in wire order,
// skipping reserved parameters.
func filtersFromQuery(rawQuery string) (*filter.Set, error) {
	var kept []string
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" || strings.HasPrefix(pair, reservedPrefix) {
			continue
		}
		kept = append(kept, pair)
	}
	return filter.ParseQuery(strings.Join(kept, "&"))
}
