package http

import (
	"net/http"

	"github.com/MKhiriev/go-repo-pulse/internal/utils"
	"github.com/MKhiriev/go-repo-pulse/models"
)

// health answers 200 while the flow job is healthy or absent and 503 after a
// failed round.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{Status: models.HealthOK}
	status := http.StatusOK

	if h.job != nil {
		resp.FlowJob = true
		if last := h.job.LastRound(); !last.IsZero() {
			resp.LastRound = &last
		}
		if !h.job.Healthy() {
			resp.Status = models.HealthDegraded
			status = http.StatusServiceUnavailable
		}
	}

	_, _ = utils.WriteJSON(w, resp, status)
}
