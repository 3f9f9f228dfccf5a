package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-repo-pulse/models"
)

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) models.HealthResponse {
	t.Helper()
	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth_WithoutJob(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeHealth(t, rec)
	assert.Equal(t, models.HealthOK, resp.Status)
	assert.False(t, resp.FlowJob)
	assert.Nil(t, resp.LastRound)
}

func TestHealth_JobStates(t *testing.T) {
	last := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		healthy    bool
		lastRound  time.Time
		wantStatus int
		wantHealth string
		wantLast   bool
	}{
		{
			name:       "before first round",
			healthy:    true,
			wantStatus: http.StatusOK,
			wantHealth: models.HealthOK,
		},
		{
			name:       "last round succeeded",
			healthy:    true,
			lastRound:  last,
			wantStatus: http.StatusOK,
			wantHealth: models.HealthOK,
			wantLast:   true,
		},
		{
			name:       "last round failed",
			healthy:    false,
			lastRound:  last,
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: models.HealthDegraded,
			wantLast:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(t)
			h.job = deps.job
			deps.job.EXPECT().Healthy().Return(tt.healthy)
			deps.job.EXPECT().LastRound().Return(tt.lastRound)

			rec := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeHealth(t, rec)
			assert.Equal(t, tt.wantHealth, resp.Status)
			assert.True(t, resp.FlowJob)
			if tt.wantLast {
				require.NotNil(t, resp.LastRound)
				assert.True(t, tt.lastRound.Equal(*resp.LastRound))
			} else {
				assert.Nil(t, resp.LastRound)
			}
		})
	}
}
