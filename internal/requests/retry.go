// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package requests

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-repo-pulse/internal/logger"
)

// jitterPercent keeps the jitter bands of consecutive retries disjoint:
// retry n waits within [0.68, 1.33] * base * 2^n.
const jitterPercent = 33

// Retry defaults.
const (
	DefaultMaxAttempts    = 5
	DefaultWaitMultiplier = time.Second
	DefaultWaitMin        = time.Second
	DefaultWaitMax        = 60 * time.Second
)

// RetryEvent describes a retry that is about to be scheduled.
type RetryEvent struct {
	Method string
	URL    string
	// Attempt is the number of attempts made so far.
	Attempt int
	Wait    time.Duration
	Err     *RequestError
}

// RetryPolicy configures the retry loop of MakeRequest. It is a value type:
// every call works on its own copy and builds a fresh backoff sequence.
type RetryPolicy struct {
	// MaxAttempts bounds the total number of attempts, first one included.
	MaxAttempts int
	// RetryableKinds lists the kinds that trigger a retry. Membership is is-a:
	// listing KindClient retries every 4xx kind.
	RetryableKinds []Kind
	// WaitMultiplier is the base of the exponential backoff.
	WaitMultiplier time.Duration
	WaitMin        time.Duration
	WaitMax        time.Duration
	// Reraise returns the last classified error on exhaustion. When false the
	// caller gets a generic error wrapping ErrRetriesExhausted and the last error.
	Reraise bool
	// Logger receives the warning emitted before each sleep. Nil means the
	// logger of the request.
	Logger *logger.Logger
	// BeforeSleep, when set, is invoked before each sleep.
	BeforeSleep func(RetryEvent)
}

// RetryOption customises a policy built by NewRetryPolicy.
type RetryOption func(*RetryPolicy)

// DefaultRetryPolicy retries server errors and rate limiting up to five
// attempts with waits between one second and one minute.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    DefaultMaxAttempts,
		RetryableKinds: []Kind{KindServer, KindRateLimit},
		WaitMultiplier: DefaultWaitMultiplier,
		WaitMin:        DefaultWaitMin,
		WaitMax:        DefaultWaitMax,
		Reraise:        true,
	}
}

// NewRetryPolicy applies opts on top of DefaultRetryPolicy.
func NewRetryPolicy(opts ...RetryOption) RetryPolicy {
	p := DefaultRetryPolicy()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithMaxAttempts bounds the total number of attempts.
func WithMaxAttempts(n int) RetryOption {
	return func(p *RetryPolicy) { p.MaxAttempts = n }
}

// WithRetryableKinds replaces the kinds that trigger a retry.
func WithRetryableKinds(kinds ...Kind) RetryOption {
	return func(p *RetryPolicy) { p.RetryableKinds = slices.Clone(kinds) }
}

// WithWait sets the exponential base and the bounds of every wait.
func WithWait(multiplier, minWait, maxWait time.Duration) RetryOption {
	return func(p *RetryPolicy) {
		p.WaitMultiplier = multiplier
		p.WaitMin = minWait
		p.WaitMax = maxWait
	}
}

// WithReraise selects what an exhausted policy returns, see RetryPolicy.Reraise.
func WithReraise(reraise bool) RetryOption {
	return func(p *RetryPolicy) { p.Reraise = reraise }
}

// WithRetryLogger sets the logger of the warning emitted before each sleep.
func WithRetryLogger(l *logger.Logger) RetryOption {
	return func(p *RetryPolicy) { p.Logger = l }
}

// WithBeforeSleep installs a hook invoked before each sleep.
func WithBeforeSleep(fn func(RetryEvent)) RetryOption {
	return func(p *RetryPolicy) { p.BeforeSleep = fn }
}

// Validate reports whether the policy can drive a retry loop.
func (p RetryPolicy) Validate() error {
	switch {
	case p.MaxAttempts < 1:
		return fmt.Errorf("%w: max attempts must be at least 1, got %d", ErrInvalidRetryPolicy, p.MaxAttempts)
	case p.WaitMultiplier <= 0:
		return fmt.Errorf("%w: wait multiplier must be positive", ErrInvalidRetryPolicy)
	case p.WaitMin < 0:
		return fmt.Errorf("%w: minimum wait must not be negative", ErrInvalidRetryPolicy)
	case p.WaitMax <= 0:
		return fmt.Errorf("%w: maximum wait must be positive", ErrInvalidRetryPolicy)
	case p.WaitMin > p.WaitMax:
		return fmt.Errorf("%w: minimum wait %s exceeds maximum wait %s", ErrInvalidRetryPolicy, p.WaitMin, p.WaitMax)
	}
	return nil
}

// Retryable reports whether err is a RequestError of a retryable kind.
func (p RetryPolicy) Retryable(err error) bool {
	reqErr, ok := AsRequestError(err)
	if !ok {
		return false
	}
	return p.retryableKind(reqErr.Kind)
}

func (p RetryPolicy) retryableKind(kind Kind) bool {
	for _, k := range p.RetryableKinds {
		if kind.IsA(k) {
			return true
		}
	}
	return false
}

// Backoff returns a fresh wait sequence for the policy: WaitMultiplier * 2^n
// with jitter, capped at WaitMax, floored at WaitMin, stopping after
// MaxAttempts-1 waits.
func (p RetryPolicy) Backoff() retry.Backoff {
	b := retry.NewExponential(p.WaitMultiplier)
	b = retry.WithJitterPercent(jitterPercent, b)
	b = retry.WithCappedDuration(p.WaitMax, b)
	b = withFloor(p.WaitMin, b)

	attempts := p.MaxAttempts - 1
	if attempts < 0 {
		attempts = 0
	}
	return retry.WithMaxRetries(uint64(attempts), b)
}

func withFloor(floor time.Duration, next retry.Backoff) retry.Backoff {
	return retry.BackoffFunc(func() (time.Duration, bool) {
		wait, stop := next.Next()
		if stop {
			return 0, true
		}
		if wait < floor {
			wait = floor
		}
		return wait, false
	})
}

// AttemptFunc performs a single attempt.
type AttemptFunc func(ctx context.Context) (*Result, error)

// Do runs attempt until it succeeds, fails with a non-retryable error or the
// attempts are used up. Every error Do returns is a *RequestError.
func (p RetryPolicy) Do(ctx context.Context, method, url string, attempt AttemptFunc) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, NewError(KindRequest, ErrorDetails{Method: method, URL: url, Err: err})
	}

	var (
		result  *Result
		lastErr *RequestError
		made    int
	)

	next := p.Backoff()
	b := retry.BackoffFunc(func() (time.Duration, bool) {
		wait, stop := next.Next()
		if !stop {
			p.beforeSleep(RetryEvent{Method: method, URL: url, Attempt: made, Wait: wait, Err: lastErr})
		}
		return wait, stop
	})

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		made++
		res, err := attempt(ctx)
		if err == nil {
			result = res
			return nil
		}

		reqErr, ok := AsRequestError(err)
		if !ok {
			reqErr = NewError(KindRequest, ErrorDetails{Method: method, URL: url, Err: err})
		}
		lastErr = reqErr
		if p.retryableKind(reqErr.Kind) && ctx.Err() == nil {
			return retry.RetryableError(reqErr)
		}
		return reqErr
	})
	if err == nil {
		return result, nil
	}

	reqErr, ok := AsRequestError(err)
	if !ok {
		// the context ended before an attempt or during a backoff wait
		details := ErrorDetails{Method: method, URL: url, Err: err}
		if lastErr != nil {
			details.ResponseContent = lastErr.ResponseContent
			details.Err = fmt.Errorf("%w after %d attempt(s), last error: %w", err, made, lastErr)
		}
		return nil, NewError(KindRequest, details)
	}

	if made >= p.MaxAttempts && p.retryableKind(reqErr.Kind) && !p.Reraise {
		return nil, NewError(KindRequest, ErrorDetails{
			Message:         fmt.Sprintf("giving up on %s %s after %d attempts: %s", method, url, made, reqErr.Message),
			ResponseContent: reqErr.ResponseContent,
			Method:          method,
			URL:             url,
			Err:             fmt.Errorf("%w: %w", ErrRetriesExhausted, reqErr),
		})
	}
	return nil, reqErr
}

func (p RetryPolicy) beforeSleep(ev RetryEvent) {
	if p.Logger != nil {
		entry := p.Logger.Warn().
			Str("method", ev.Method).
			Str("url", ev.URL).
			Int("attempt", ev.Attempt).
			Dur("wait", ev.Wait)
		if ev.Err != nil {
			entry = entry.Str("kind", ev.Err.Kind.String()).Err(ev.Err)
		}
		entry.Msg("retrying request")
	}
	if p.BeforeSleep != nil {
		p.BeforeSleep(ev)
	}
}
