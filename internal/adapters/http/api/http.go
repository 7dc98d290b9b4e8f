// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/horsepower/internal/domain/compare"
	"github.com/okian/horsepower/internal/domain/model"
	"github.com/okian/horsepower/internal/domain/nearest"
	"github.com/okian/horsepower/internal/domain/percentile"
	"github.com/okian/horsepower/internal/domain/selector"
	"github.com/okian/horsepower/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Options(ctx context.Context) types.Options
	Validate(ctx context.Context, s model.Subject) model.Validation

	CompareLevel(ctx context.Context, s model.Subject, by compare.GroupBy, value string) (types.Comparison, error)
	ComparePlayer(ctx context.Context, s model.Subject, firstName, lastName string) (types.Comparison, error)
	CompareClosest(ctx context.Context, s model.Subject) (types.Comparison, error)
	ComparePosition(ctx context.Context, s model.Subject, level model.Level, position string) (types.Comparison, error)
	CompareSpread(ctx context.Context, s model.Subject, by compare.GroupBy, value string) (types.Comparison, error)
}

const defaultMaxBodyBytes = 64 << 10

// Server wires HTTP routes for the comparison API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	optionsHandler *OptionsHandler
	compareHandler *CompareHandler
	maxBodyBytes   int64
}

// Option configures a Server.
type Option func(*Server)

// WithMaxBodyBytes caps the size of JSON request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{maxBodyBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.optionsHandler = NewOptionsHandler(deps, s.maxBodyBytes)
	s.compareHandler = NewCompareHandler(deps, s.maxBodyBytes)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/options", MetricsMiddleware(s.optionsHandler.HandleOptions, "options"))
	mux.HandleFunc("/validate", MetricsMiddleware(s.optionsHandler.HandleValidate, "validate"))
	mux.HandleFunc("/compare/level", MetricsMiddleware(s.compareHandler.HandleLevel, "compare_level"))
	mux.HandleFunc("/compare/player", MetricsMiddleware(s.compareHandler.HandlePlayer, "compare_player"))
	mux.HandleFunc("/compare/closest", MetricsMiddleware(s.compareHandler.HandleClosest, "compare_closest"))
	mux.HandleFunc("/compare/position", MetricsMiddleware(s.compareHandler.HandlePosition, "compare_position"))
	mux.HandleFunc("/compare/spread", MetricsMiddleware(s.compareHandler.HandleSpread, "compare_spread"))
}

type errorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	resp := errorResponse{Code: code, Message: msg}
	var inc *compare.IncompleteError
	if errors.As(err, &inc) {
		resp.Missing = inc.Validation.Missing
	}
	writeJSON(w, status, resp)
}

// statusFor translates domain errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, compare.ErrUnknownGroupBy):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "body_too_large"
	case errors.Is(err, compare.ErrIncompleteSubject):
		return http.StatusUnprocessableEntity, "incomplete_subject"
	case errors.Is(err, compare.ErrEmptyGroup), errors.Is(err, percentile.ErrInvalidGroup):
		return http.StatusNotFound, "empty_group"
	case errors.Is(err, selector.ErrPlayerNotFound):
		return http.StatusNotFound, "player_not_found"
	case errors.Is(err, nearest.ErrNoCandidates):
		return http.StatusNotFound, "no_candidates"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	return false
}
