// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/internal/utils"
	"github.com/MKhiriev/go-repo-pulse/models"
)

// defaultRunsLimit applies when GET /api/runs names no limit.
const defaultRunsLimit = 50

func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	filter, err := runFilterFromQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	runs, err := h.services.FlowService.ListRuns(r.Context(), filter)
	if err != nil {
		log.Err(err).Msg("error listing flow runs")
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.NewRunsResponse(runs), http.StatusOK)
}

func (h *Handler) latestRun(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	query := r.URL.Query()
	target := models.Target{Owner: query.Get("owner"), Name: query.Get("repo")}
	if target.Owner == "" || target.Name == "" {
		h.writeError(w, r, ErrMissingTarget)
		return
	}

	run, err := h.services.FlowService.LatestRun(r.Context(), target)
	if err != nil {
		log.Err(err).Str("repository", target.String()).Msg("error getting latest flow run")
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, run, http.StatusOK)
}

// triggerRun runs the flow for the posted repository and answers with the
// run. A run that failed upstream is still returned, with a gateway status.
func (h *Handler) triggerRun(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.TriggerRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeError(w, r, ErrInvalidBody)
		return
	}

	run, err := h.services.FlowService.Run(r.Context(), req.Target())
	if err != nil {
		status := statusFromError(err)
		if run.ID == "" || status < http.StatusInternalServerError {
			log.Err(err).Msg("flow run was rejected")
			h.writeError(w, r, err)
			return
		}

		log.Err(err).Str("run_id", run.ID).Msg("flow run failed")
		_, _ = utils.WriteJSON(w, run, http.StatusBadGateway)
		return
	}

	_, _ = utils.WriteJSON(w, run, http.StatusCreated)
}

func runFilterFromQuery(r *http.Request) (models.RunFilter, error) {
	query := r.URL.Query()
	filter := models.RunFilter{
		Owner: query.Get("owner"),
		Name:  query.Get("repo"),
		Limit: defaultRunsLimit,
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.RunFilter{}, errors.Join(ErrInvalidLimit, err)
		}
		filter.Limit = limit
	}
	return filter, nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	utils.WriteError(w, r, messageFor(err, status), status)
}
