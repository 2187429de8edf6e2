// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/podium/internal/adapters/photos"
	"github.com/okian/podium/internal/domain/types"
)

// PodiumDependencies defines the interface for podium operations.
type PodiumDependencies interface {
	TopN(ctx context.Context, n int) ([]Entry, error)
}

// PodiumHandler handles top-N podium requests. Entries are decorated with
// a photo URL from the injected book, or initials when no photo exists.
type PodiumHandler struct {
	deps        PodiumDependencies
	book        *photos.Book
	defaultSize int
}

// NewPodiumHandler creates a new podium handler.
func NewPodiumHandler(deps PodiumDependencies, book *photos.Book, defaultSize int) *PodiumHandler {
	if book == nil {
		book = photos.Empty()
	}
	return &PodiumHandler{
		deps:        deps,
		book:        book,
		defaultSize: defaultSize,
	}
}

// HandleGetPodium handles GET /podium?n=N requests.
func (h *PodiumHandler) HandleGetPodium(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := h.defaultSize
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		var err error
		n, err = strconv.Atoi(nStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
	}
	entries, err := h.deps.TopN(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	podium := make([]types.PodiumEntry, len(entries))
	for i, e := range entries {
		pe := types.PodiumEntry{Entry: e}
		if url, ok := h.book.Lookup(e.Name); ok {
			pe.Photo = url
		} else {
			pe.Initials = photos.Initials(e.Name)
		}
		podium[i] = pe
	}
	writeJSON(w, http.StatusOK, podium)
}
