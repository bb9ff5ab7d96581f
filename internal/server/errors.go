package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/roach88/dxlink/internal/explorer"
	"github.com/roach88/dxlink/internal/fetch"
	"github.com/roach88/dxlink/internal/filter"
)

// Codes for failures that do not come from the filter or explorer packages.
const (
	codeBadQuery       = "BAD_QUERY"
	codeUpstreamStatus = "UPSTREAM_STATUS"
	codeUpstreamFailed = "UPSTREAM_FAILED"
	codeInternal       = "INTERNAL"
)

// apiError is the JSON body of every error response.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classify maps err to a status code and error body.
func classify(err error) (int, apiError) {
	var (
		fe *filter.Error
		ee *explorer.Error
		se *fetch.StatusError
	)
	switch {
	case errors.As(err, &fe):
		return http.StatusBadRequest, apiError{Code: string(fe.Code), Message: fe.Error()}
	case errors.As(err, &ee):
		return http.StatusBadRequest, apiError{Code: string(ee.Code), Message: ee.Error()}
	case errors.As(err, &se):
		return http.StatusBadGateway, apiError{Code: codeUpstreamStatus, Message: se.Error()}
	default:
		return http.StatusInternalServerError, apiError{Code: codeInternal, Message: err.Error()}
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)
	s.writeAPIError(w, r, status, body)
}

func (s *Server) writeAPIError(w http.ResponseWriter, r *http.Request, status int, body apiError) {
	s.metrics.errors.WithLabelValues(body.Code).Inc()

	level := hlog.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		level = hlog.FromRequest(r).Error()
	}
	level.Str("code", body.Code).Int("status", status).Msg(body.Message)

	writeJSON(w, r, status, body)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
