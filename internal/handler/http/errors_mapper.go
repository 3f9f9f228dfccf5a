package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-repo-pulse/internal/adapter"
	"github.com/MKhiriev/go-repo-pulse/internal/service"
	"github.com/MKhiriev/go-repo-pulse/internal/store"
	"github.com/MKhiriev/go-repo-pulse/internal/validators"
)

type errorStatus struct {
	err    error
	status int
}

// errorStatuses is matched in order; the first hit wins.
var errorStatuses = []errorStatus{
	{ErrInvalidLimit, http.StatusBadRequest},
	{ErrMissingTarget, http.StatusBadRequest},
	{ErrInvalidBody, http.StatusBadRequest},
	{service.ErrInvalidTarget, http.StatusBadRequest},
	{service.ErrInvalidFilter, http.StatusBadRequest},
	{validators.ErrValidationFailed, http.StatusBadRequest},

	{service.ErrStorageUnavailable, http.StatusServiceUnavailable},
	{store.ErrRunNotFound, http.StatusNotFound},
	{store.ErrRunAlreadyExists, http.StatusConflict},

	{adapter.ErrRepositoryNotFound, http.StatusNotFound},
	{adapter.ErrRateLimited, http.StatusTooManyRequests},
	{adapter.ErrUnauthorized, http.StatusBadGateway},
	{adapter.ErrForbidden, http.StatusBadGateway},
	{adapter.ErrUnavailable, http.StatusBadGateway},
	{adapter.ErrUnexpectedResponse, http.StatusBadGateway},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			return es.status
		}
	}
	return http.StatusInternalServerError
}

// messageFor hides internal failures from clients.
func messageFor(err error, status int) string {
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway && status != http.StatusServiceUnavailable {
		return http.StatusText(status)
	}
	return err.Error()
}
