// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// BannerProvider exposes the current user-visible error banner, if any.
type BannerProvider interface {
	LastError() error
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
	banner        BannerProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider, banner BannerProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider, banner: banner}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	stats := h.statsProvider.GetStats()
	if h.banner != nil {
		if err := h.banner.LastError(); err != nil {
			stats["banner"] = err.Error()
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(stats)
}
