package api

import "net/http"

// OptionsHandler serves selection choices and subject validation.
type OptionsHandler struct {
	deps         Dependencies
	maxBodyBytes int64
}

// NewOptionsHandler creates a new options handler.
func NewOptionsHandler(deps Dependencies, maxBodyBytes int64) *OptionsHandler {
	return &OptionsHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandleOptions handles GET /options requests.
func (h *OptionsHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Options(r.Context()))
}

// HandleValidate handles POST /validate requests. An incomplete subject is
// still a successful answer.
func (h *OptionsHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var req subjectOnlyRequest
	if err := decode(w, r, h.maxBodyBytes, &req); err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, err)
		return
	}
	v := h.deps.Validate(r.Context(), req.Subject.toModel())
	missing := v.Missing
	if missing == nil {
		missing = []string{}
	}
	writeJSON(w, http.StatusOK, validateResponse{Complete: v.Complete(), Missing: missing})
}
