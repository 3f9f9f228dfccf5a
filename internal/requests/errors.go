// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package requests

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates the variants of RequestError. Kinds form a tree rooted
// at KindRequest; see Parent.
type Kind int

const (
	// KindRequest is the generic failure every other kind descends from.
	KindRequest Kind = iota
	// KindTransport means no response was received.
	KindTransport
	// KindHTTP is a non-2xx response outside the 4xx and 5xx ranges.
	KindHTTP
	// KindServer is a 5xx response.
	KindServer
	// KindClient is a 4xx response without a dedicated kind.
	KindClient
	KindUnauthorized
	KindNotFound
	KindContentTooLarge
	KindUnprocessableEntity
	KindRateLimit
)

var kindNames = [...]string{
	KindRequest:             "request",
	KindTransport:           "transport",
	KindHTTP:                "http",
	KindServer:              "server",
	KindClient:              "client",
	KindUnauthorized:        "unauthorized",
	KindNotFound:            "not_found",
	KindContentTooLarge:     "content_too_large",
	KindUnprocessableEntity: "unprocessable_entity",
	KindRateLimit:           "rate_limit",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Parent returns the kind k directly descends from. KindRequest has no parent.
func (k Kind) Parent() (Kind, bool) {
	switch k {
	case KindTransport, KindHTTP:
		return KindRequest, true
	case KindServer, KindClient:
		return KindHTTP, true
	case KindUnauthorized, KindNotFound, KindContentTooLarge, KindUnprocessableEntity, KindRateLimit:
		return KindClient, true
	default:
		return KindRequest, false
	}
}

// IsA reports whether k equals other or descends from it.
func (k Kind) IsA(other Kind) bool {
	for cur := k; ; {
		if cur == other {
			return true
		}
		parent, ok := cur.Parent()
		if !ok {
			return false
		}
		cur = parent
	}
}

// FixedStatus returns the status code every error of kind k carries, or 0 when
// the kind takes the observed status.
func (k Kind) FixedStatus() int {
	switch k {
	case KindClient:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindContentTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case KindRateLimit:
		return http.StatusTooManyRequests
	default:
		return 0
	}
}

// ClassifyStatus maps a non-2xx status code to its error kind.
func ClassifyStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusRequestEntityTooLarge:
		return KindContentTooLarge
	case http.StatusUnprocessableEntity:
		return KindUnprocessableEntity
	case http.StatusTooManyRequests:
		return KindRateLimit
	}

	switch {
	case status >= 400 && status < 500:
		return KindClient
	case status >= 500 && status < 600:
		return KindServer
	default:
		return KindHTTP
	}
}

type kindSentinel struct {
	kind Kind
}

func (s *kindSentinel) Error() string {
	return s.kind.String() + " error"
}

// Sentinels matched with errors.Is against any *RequestError. Matching follows
// the kind tree: errors.Is(err, ErrClient) holds for every 4xx kind.
var (
	ErrRequest             error = &kindSentinel{KindRequest}
	ErrTransport           error = &kindSentinel{KindTransport}
	ErrHTTP                error = &kindSentinel{KindHTTP}
	ErrServer              error = &kindSentinel{KindServer}
	ErrClient              error = &kindSentinel{KindClient}
	ErrUnauthorized        error = &kindSentinel{KindUnauthorized}
	ErrNotFound            error = &kindSentinel{KindNotFound}
	ErrContentTooLarge     error = &kindSentinel{KindContentTooLarge}
	ErrUnprocessableEntity error = &kindSentinel{KindUnprocessableEntity}
	ErrRateLimit           error = &kindSentinel{KindRateLimit}
)

var (
	// ErrRetriesExhausted is wrapped by the error returned when every attempt
	// failed and the policy does not re-raise the last error.
	ErrRetriesExhausted = errors.New("retries exhausted")
	// ErrSessionClosed is wrapped by errors of requests issued on a closed session.
	ErrSessionClosed = errors.New("session is closed")
	// ErrNilSession is wrapped by errors of requests issued without a session.
	ErrNilSession = errors.New("session is nil")
	// ErrInvalidRetryPolicy is returned by RetryPolicy.Validate.
	ErrInvalidRetryPolicy = errors.New("invalid retry policy")
)

// RequestError is the single error type produced by the request layer.
// Values are built by NewError and never modified afterwards.
type RequestError struct {
	Kind    Kind
	Message string
	// ResponseContent is the decoded JSON body or the raw body text of the
	// failed response. Nil when no response was received.
	ResponseContent any
	Method          string
	URL             string
	// Headers holds the first value of each response header, nil without a response.
	Headers map[string]string
	// Status is the fixed status of the kind, or the observed status for
	// KindHTTP and KindServer. Zero without a response.
	Status int
	// ResponseStatus is the status code actually received, zero without a
	// response. It differs from Status for kinds with a fixed status.
	ResponseStatus int
	Err            error
}

// ErrorDetails carries the fields of a RequestError under construction.
type ErrorDetails struct {
	// Message overrides the generated message.
	Message         string
	Status          int
	ResponseContent any
	Method          string
	URL             string
	Headers         map[string]string
	ResponseStatus  int
	Err             error
}

// NewError builds a RequestError of kind. Kinds with a fixed status ignore
// d.Status for the Status field; the generated message still reports the
// status that was observed.
func NewError(kind Kind, d ErrorDetails) *RequestError {
	status := d.Status
	if fixed := kind.FixedStatus(); fixed != 0 {
		status = fixed
	}

	message := d.Message
	if message == "" {
		message = buildMessage(kind, d)
	}

	return &RequestError{
		Kind:            kind,
		Message:         message,
		ResponseContent: d.ResponseContent,
		Method:          d.Method,
		URL:             d.URL,
		Headers:         d.Headers,
		Status:          status,
		ResponseStatus:  d.ResponseStatus,
		Err:             d.Err,
	}
}

func buildMessage(kind Kind, d ErrorDetails) string {
	switch {
	case kind == KindTransport:
		return fmt.Sprintf("request failed for %s %s: %v", d.Method, d.URL, d.Err)
	case kind.IsA(KindHTTP):
		return fmt.Sprintf("%s %s: %d %s", d.Method, d.URL, d.Status, http.StatusText(d.Status))
	case d.Err != nil:
		return fmt.Sprintf("unexpected error during %s %s: %v", d.Method, d.URL, d.Err)
	default:
		return fmt.Sprintf("%s %s failed", d.Method, d.URL)
	}
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels hierarchically.
func (e *RequestError) Is(target error) bool {
	s, ok := target.(*kindSentinel)
	if !ok {
		return false
	}
	return e.Kind.IsA(s.kind)
}

// AsRequestError returns the first *RequestError in err's chain.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}
