// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/podium/internal/adapters/source"
)

// RefreshDependencies defines the interface for manual refresh operations.
type RefreshDependencies interface {
	Refresh(ctx context.Context) (bool, error)
}

// RefreshHandler handles manual refresh requests.
type RefreshHandler struct {
	deps RefreshDependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

type refreshResponse struct {
	Status string `json:"status"`
}

// HandlePostRefresh handles POST /refresh requests.
func (h *RefreshHandler) HandlePostRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	accepted, err := h.deps.Refresh(r.Context())
	if err != nil {
		if errors.Is(err, source.ErrNoSource) {
			writeError(w, http.StatusServiceUnavailable, "no_source", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if !accepted {
		writeError(w, http.StatusTooManyRequests, "throttled", ErrThrottled)
		return
	}
	writeJSON(w, http.StatusAccepted, refreshResponse{Status: "accepted"})
}
