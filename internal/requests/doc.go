// Package requests is the resilient HTTP layer of go-repo-pulse.
//
// A Session wraps a pooled resty client. MakeRequest performs a call through a
// session, classifies every failure into a *RequestError of a closed set of
// kinds and retries transient failures (server errors and rate limiting by
// default) with capped, jittered exponential backoff:
//
//	err := requests.WithSession(ctx, func(ctx context.Context, s *requests.Session) error {
//		repo, ok, err := requests.Fetch[models.Repository](ctx, s, http.MethodGet, url,
//			requests.WithAbsentOn404())
//		...
//	})
//
// Callers match failures with errors.Is against the kind sentinels
// (ErrNotFound, ErrClient, ErrHTTP, ...) or extract the *RequestError with
// errors.As for the status, URL and response content.
package requests
