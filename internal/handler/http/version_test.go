package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-repo-pulse/models"
)

func TestGetServerVersion_WritesVersion(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "1.2.3", rec.Body.String())
}

func TestGetServerVersion_EmptyVersion(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("")

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestGetBuildInfo_WritesJSON(t *testing.T) {
	h, deps := newTestHandler(t)
	want := models.NewAppBuildInfo("1.2.3", "2026-05-01", "abc123")
	deps.appInfo.EXPECT().GetBuildInfo(gomock.Any()).Return(want)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/build", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got models.AppBuildInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, want, got)
}
