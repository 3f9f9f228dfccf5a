package adapter

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-repo-pulse/internal/requests"
)

// mapRequestError tags err with the adapter sentinel matching its kind. The
// original error stays in the chain, so errors.Is works with both the adapter
// and the requests sentinels.
func mapRequestError(op string, err error) error {
	if err == nil {
		return nil
	}

	reqErr, ok := requests.AsRequestError(err)
	if !ok {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case reqErr.Kind == requests.KindUnauthorized:
		return fmt.Errorf("%s: %w: %w", op, ErrUnauthorized, err)
	case reqErr.Kind == requests.KindNotFound:
		return fmt.Errorf("%s: %w: %w", op, ErrRepositoryNotFound, err)
	case reqErr.Kind == requests.KindRateLimit:
		return fmt.Errorf("%s: %w: %w", op, ErrRateLimited, err)
	case reqErr.ResponseStatus == http.StatusForbidden && reqErr.Headers["X-Ratelimit-Remaining"] == "0":
		return fmt.Errorf("%s: %w: %w", op, ErrRateLimited, err)
	case reqErr.ResponseStatus == http.StatusForbidden:
		return fmt.Errorf("%s: %w: %w", op, ErrForbidden, err)
	case reqErr.Kind.IsA(requests.KindServer),
		reqErr.Kind == requests.KindTransport,
		errors.Is(err, requests.ErrRetriesExhausted):
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
