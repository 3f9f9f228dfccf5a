// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package requests

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/internal/metrics"
)

type requestOptions struct {
	headers     map[string]string
	query       url.Values
	body        any
	hasBody     bool
	retry       bool
	policy      *RetryPolicy
	absentOn404 bool
	logger      *logger.Logger
}

// RequestOption configures a single MakeRequest call.
type RequestOption func(*requestOptions)

// WithHeader sets a header of the call, overriding a session default.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

// WithHeaders sets every header of headers on the call.
func WithHeaders(headers map[string]string) RequestOption {
	return func(o *requestOptions) {
		for k, v := range headers {
			WithHeader(k, v)(o)
		}
	}
}

// WithQuery adds query parameters. Repeated calls accumulate.
func WithQuery(params url.Values) RequestOption {
	return func(o *requestOptions) {
		if o.query == nil {
			o.query = make(url.Values, len(params))
		}
		for k, vs := range params {
			for _, v := range vs {
				o.query.Add(k, v)
			}
		}
	}
}

// WithBody sets the request body. []byte, string and io.Reader are sent as
// is; anything else goes through the session serializer.
func WithBody(body any) RequestOption {
	return func(o *requestOptions) {
		o.body = body
		o.hasBody = true
	}
}

// WithRetryPolicy replaces the default retry policy of the call.
func WithRetryPolicy(p RetryPolicy) RequestOption {
	return func(o *requestOptions) {
		o.policy = &p
		o.retry = true
	}
}

// WithoutRetry makes the call a single attempt.
func WithoutRetry() RequestOption {
	return func(o *requestOptions) { o.retry = false }
}

// WithAbsentOn404 turns a terminal not-found response into an absent result:
// MakeRequest returns (nil, nil) and logs a warning.
func WithAbsentOn404() RequestOption {
	return func(o *requestOptions) { o.absentOn404 = true }
}

// WithLogger overrides the session logger for the call.
func WithLogger(l *logger.Logger) RequestOption {
	return func(o *requestOptions) { o.logger = l }
}

// MakeRequest performs method on rawURL through s and returns the payload of
// the first successful attempt.
//
// Failures are always *RequestError values. Server errors and rate limiting
// are retried by the default policy; a nil *Result with a nil error is the
// absent outcome of WithAbsentOn404.
func MakeRequest(ctx context.Context, s *Session, method, rawURL string, opts ...RequestOption) (*Result, error) {
	o := requestOptions{retry: true}
	for _, opt := range opts {
		opt(&o)
	}

	if s == nil {
		return nil, NewError(KindRequest, ErrorDetails{Method: method, URL: rawURL, Err: ErrNilSession})
	}

	log := o.logger
	if log == nil {
		log = s.logger
	}

	policy := DefaultRetryPolicy()
	if o.policy != nil {
		policy = *o.policy
	}
	if !o.retry {
		policy.MaxAttempts = 1
		policy.RetryableKinds = nil
	}
	if policy.Logger == nil {
		policy.Logger = log
	}
	hook := policy.BeforeSleep
	policy.BeforeSleep = func(ev RetryEvent) {
		if ev.Err != nil {
			s.recorder.IncRetry(method, ev.Err.Kind.String())
		}
		if hook != nil {
			hook(ev)
		}
	}

	attempts := 0
	result, err := policy.Do(ctx, method, rawURL, func(ctx context.Context) (*Result, error) {
		attempts++
		return s.attempt(ctx, method, rawURL, &o, log)
	})
	if err == nil {
		return result, nil
	}

	if errors.Is(err, ErrRetriesExhausted) || (attempts == policy.MaxAttempts && policy.MaxAttempts > 1 && policy.Retryable(err)) {
		s.recorder.IncRetryExhausted(method)
	}

	if o.absentOn404 && errors.Is(err, ErrNotFound) {
		log.Warn().
			Str("method", method).
			Str("url", rawURL).
			Err(err).
			Msg("resource not found, returning absent result")
		return nil, nil
	}
	return nil, err
}

// Fetch performs MakeRequest and decodes the JSON payload into T. The boolean
// is false for the absent outcome of WithAbsentOn404.
func Fetch[T any](ctx context.Context, s *Session, method, rawURL string, opts ...RequestOption) (T, bool, error) {
	var zero T

	res, err := MakeRequest(ctx, s, method, rawURL, opts...)
	if err != nil {
		return zero, false, err
	}
	if res == nil {
		return zero, false, nil
	}

	var out T
	if err = res.Decode(&out); err != nil {
		return zero, false, NewError(KindRequest, ErrorDetails{
			Method:          method,
			URL:             rawURL,
			ResponseContent: res.Data,
			Err:             fmt.Errorf("decode response: %w", err),
		})
	}
	return out, true, nil
}

// attempt performs one call. Every failure is returned as a *RequestError.
func (s *Session) attempt(ctx context.Context, method, rawURL string, o *requestOptions, log *logger.Logger) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = NewError(KindRequest, ErrorDetails{Method: method, URL: rawURL, Err: fmt.Errorf("panic: %v", r)})
		}
	}()

	if s.closed.Load() {
		return nil, NewError(KindRequest, ErrorDetails{Method: method, URL: rawURL, Err: ErrSessionClosed})
	}
	if s.limiter != nil {
		if err = s.limiter.Wait(ctx); err != nil {
			return nil, NewError(KindRequest, ErrorDetails{Method: method, URL: rawURL, Err: fmt.Errorf("rate limiter: %w", err)})
		}
	}

	req := s.client.R().SetContext(ctx)
	if len(o.headers) > 0 {
		req.SetHeaders(o.headers)
	}
	if len(o.query) > 0 {
		req.SetQueryParamsFromValues(o.query)
	}
	if o.hasBody {
		body, contentType, encErr := s.encode(o.body)
		if encErr != nil {
			return nil, NewError(KindRequest, ErrorDetails{Method: method, URL: rawURL, Err: fmt.Errorf("serialize body: %w", encErr)})
		}
		req.SetBody(body)
		if contentType != "" && req.Header.Get("Content-Type") == "" {
			req.SetHeader("Content-Type", contentType)
		}
	}

	start := time.Now()
	resp, execErr := req.Execute(method, rawURL)
	elapsed := time.Since(start)
	if execErr != nil {
		reqErr := NewError(KindTransport, ErrorDetails{Method: method, URL: rawURL, Err: execErr})
		s.observe(method, reqErr, elapsed, log)
		return nil, reqErr
	}

	if s.dumpResponses {
		log.Debug().
			Str("method", method).
			Str("url", rawURL).
			Int("status", resp.StatusCode()).
			Bytes("body", resp.Body()).
			Msg("response dump")
	}

	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		s.observe(method, nil, elapsed, log)
		return newResult(status, resp.Header(), resp.Body()), nil
	}

	content, _ := decodeContent(resp.Body(), resp.Header().Get("Content-Type"))
	reqErr := NewError(ClassifyStatus(status), ErrorDetails{
		Status:          status,
		ResponseStatus:  status,
		ResponseContent: content,
		Method:          method,
		URL:             rawURL,
		Headers:         firstValues(resp.Header()),
	})
	s.observe(method, reqErr, elapsed, log)
	return nil, reqErr
}

func (s *Session) encode(body any) (any, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case []byte, string, io.Reader:
		return b, "", nil
	}

	data, err := s.serializer.Marshal(body)
	if err != nil {
		return nil, "", err
	}
	return data, s.serializer.ContentType(), nil
}

func (s *Session) observe(method string, reqErr *RequestError, d time.Duration, log *logger.Logger) {
	if reqErr == nil {
		s.recorder.ObserveAttempt(method, metrics.OutcomeSuccess, d)
		return
	}

	s.recorder.ObserveAttempt(method, reqErr.Kind.String(), d)
	log.Debug().
		Str("method", method).
		Str("url", reqErr.URL).
		Str("kind", reqErr.Kind.String()).
		Int("status", reqErr.Status).
		Dur("elapsed", d).
		Msg("request attempt failed")
}
