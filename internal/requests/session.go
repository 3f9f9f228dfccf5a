// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package requests

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/internal/metrics"
	"github.com/MKhiriev/go-repo-pulse/internal/utils"
)

// DefaultTimeout bounds a single attempt unless WithTimeout says otherwise.
const DefaultTimeout = 30 * time.Second

// Session is a pooled HTTP client shared by the requests of one scope.
// It is safe for concurrent use; Close releases idle connections and makes
// every later request fail with ErrSessionClosed.
type Session struct {
	client        *utils.HTTPClient
	serializer    Serializer
	limiter       *rate.Limiter
	logger        *logger.Logger
	recorder      metrics.Recorder
	dumpResponses bool

	closed atomic.Bool
}

type sessionOptions struct {
	timeout       time.Duration
	headers       map[string]string
	serializer    Serializer
	limiter       *rate.Limiter
	logger        *logger.Logger
	recorder      metrics.Recorder
	transport     http.RoundTripper
	dumpResponses bool
	clientOpts    []func(*resty.Client)
}

// SessionOption configures CreateSession.
type SessionOption func(*sessionOptions)

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) SessionOption {
	return func(o *sessionOptions) { o.timeout = d }
}

// WithDefaultHeaders adds headers sent with every request of the session.
func WithDefaultHeaders(headers map[string]string) SessionOption {
	return func(o *sessionOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.headers[k] = v
		}
	}
}

// WithSerializer replaces the JSON body serializer.
func WithSerializer(s Serializer) SessionOption {
	return func(o *sessionOptions) { o.serializer = s }
}

// WithRateLimit makes every attempt wait for a token of a limiter allowing
// rps requests per second with the given burst. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) SessionOption {
	return func(o *sessionOptions) {
		if rps <= 0 {
			o.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		o.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithSessionLogger sets the logger used by the requests of the session.
func WithSessionLogger(l *logger.Logger) SessionOption {
	return func(o *sessionOptions) { o.logger = l }
}

// WithRecorder sets the metrics recorder of the session.
func WithRecorder(r metrics.Recorder) SessionOption {
	return func(o *sessionOptions) { o.recorder = r }
}

// WithTransport replaces the round tripper of the underlying http.Client.
func WithTransport(rt http.RoundTripper) SessionOption {
	return func(o *sessionOptions) { o.transport = rt }
}

// WithResponseDump logs every response body at debug level.
func WithResponseDump(enabled bool) SessionOption {
	return func(o *sessionOptions) { o.dumpResponses = enabled }
}

// WithClientOption applies fn to the resty client after the session options.
func WithClientOption(fn func(*resty.Client)) SessionOption {
	return func(o *sessionOptions) { o.clientOpts = append(o.clientOpts, fn) }
}

// CreateSession builds a session. The caller owns it and must Close it.
func CreateSession(opts ...SessionOption) *Session {
	o := sessionOptions{
		timeout:    DefaultTimeout,
		serializer: JSONSerializer{},
		logger:     logger.Nop(),
		recorder:   metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	client := utils.NewHTTPClient()
	client.SetTimeout(o.timeout).
		SetRetryCount(0).
		SetLogger(restyLogger{o.logger})
	if len(o.headers) > 0 {
		client.SetHeaders(o.headers)
	}
	if o.transport != nil {
		client.SetTransport(o.transport)
	}
	for _, fn := range o.clientOpts {
		fn(client.Client)
	}

	return &Session{
		client:        client,
		serializer:    o.serializer,
		limiter:       o.limiter,
		logger:        o.logger,
		recorder:      o.recorder,
		dumpResponses: o.dumpResponses,
	}
}

// WithSession creates a session, hands it to fn and closes it on every exit
// path of fn, panics included.
func WithSession(ctx context.Context, fn func(ctx context.Context, s *Session) error, opts ...SessionOption) error {
	s := CreateSession(opts...)
	defer s.Close()

	return fn(ctx, s)
}

// Close releases idle connections. It is idempotent.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.client.GetClient().CloseIdleConnections()
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	return s.closed.Load()
}

// Logger returns the session logger.
func (s *Session) Logger() *logger.Logger {
	return s.logger
}

// restyLogger routes resty's own diagnostics into the session logger.
type restyLogger struct {
	l *logger.Logger
}

func (r restyLogger) Errorf(format string, v ...any) { r.l.Error().Msgf(format, v...) }
func (r restyLogger) Warnf(format string, v ...any)  { r.l.Warn().Msgf(format, v...) }
func (r restyLogger) Debugf(format string, v ...any) { r.l.Debug().Msgf(format, v...) }
