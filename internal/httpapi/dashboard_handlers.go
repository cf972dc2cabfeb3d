package httpapi

import (
	"net/http"

	"vidtube/internal/dashboard"
)

type DashboardHandler struct {
	dashboards dashboard.Service
}

func NewDashboardHandler(dashboards dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboards.Stats(r.Context(), CallerID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "channel stats fetched", stats)
}

func (h *DashboardHandler) ChannelVideos(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	result, err := h.dashboards.ChannelVideos(r.Context(), CallerID(r.Context()), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "channel videos fetched", result)
}
