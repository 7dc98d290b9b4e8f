package api

import (
	"net/http"
	"strings"

	"github.com/okian/horsepower/internal/domain/compare"
	"github.com/okian/horsepower/internal/domain/model"
	"github.com/okian/horsepower/internal/domain/types"
)

// CompareHandler serves the five comparison modes.
type CompareHandler struct {
	deps         Dependencies
	maxBodyBytes int64
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(deps Dependencies, maxBodyBytes int64) *CompareHandler {
	return &CompareHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandleLevel handles POST /compare/level.
func (h *CompareHandler) HandleLevel(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if !h.read(w, r, &req) {
		return
	}
	if err := requireField("value", req.Value); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, func() (types.Comparison, error) {
		return h.deps.CompareLevel(r.Context(), req.Subject.toModel(), groupBy(req.GroupBy), req.Value)
	})
}

// HandlePlayer handles POST /compare/player.
func (h *CompareHandler) HandlePlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !h.read(w, r, &req) {
		return
	}
	h.respond(w, func() (types.Comparison, error) {
		return h.deps.ComparePlayer(r.Context(), req.Subject.toModel(), req.FirstName, req.LastName)
	})
}

// HandleClosest handles POST /compare/closest.
func (h *CompareHandler) HandleClosest(w http.ResponseWriter, r *http.Request) {
	var req subjectOnlyRequest
	if !h.read(w, r, &req) {
		return
	}
	h.respond(w, func() (types.Comparison, error) {
		return h.deps.CompareClosest(r.Context(), req.Subject.toModel())
	})
}

// HandlePosition handles POST /compare/position.
func (h *CompareHandler) HandlePosition(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if !h.read(w, r, &req) {
		return
	}
	if err := requireField("level", req.Level); err != nil {
		h.fail(w, err)
		return
	}
	if err := requireField("position", req.Position); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, func() (types.Comparison, error) {
		return h.deps.ComparePosition(r.Context(), req.Subject.toModel(), model.Level(req.Level), req.Position)
	})
}

// HandleSpread handles POST /compare/spread.
func (h *CompareHandler) HandleSpread(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if !h.read(w, r, &req) {
		return
	}
	if err := requireField("value", req.Value); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, func() (types.Comparison, error) {
		return h.deps.CompareSpread(r.Context(), req.Subject.toModel(), groupBy(req.GroupBy), req.Value)
	})
}

func (h *CompareHandler) read(w http.ResponseWriter, r *http.Request, v any) bool {
	if !allowMethod(w, r, http.MethodPost) {
		return false
	}
	if err := decode(w, r, h.maxBodyBytes, v); err != nil {
		h.fail(w, err)
		return false
	}
	return true
}

func (h *CompareHandler) respond(w http.ResponseWriter, fn func() (types.Comparison, error)) {
	c, err := fn()
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CompareHandler) fail(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}

// groupBy defaults an empty field to level.
func groupBy(s string) compare.GroupBy {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return compare.GroupByLevel
	}
	return compare.GroupBy(s)
}
