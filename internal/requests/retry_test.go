package requests

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "https://api.example.com/repos/x/y"

func fastPolicy(opts ...RetryOption) RetryPolicy {
	base := []RetryOption{WithWait(time.Millisecond, time.Millisecond, 20*time.Millisecond)}
	return NewRetryPolicy(append(base, opts...)...)
}

func serverErr() error {
	return NewError(KindServer, ErrorDetails{Status: http.StatusServiceUnavailable, Method: http.MethodGet, URL: testURL})
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()

	assert.Equal(t, 5, p.MaxAttempts)
	assert.Equal(t, []Kind{KindServer, KindRateLimit}, p.RetryableKinds)
	assert.Equal(t, time.Second, p.WaitMultiplier)
	assert.Equal(t, time.Second, p.WaitMin)
	assert.Equal(t, time.Minute, p.WaitMax)
	assert.True(t, p.Reraise)
	assert.NoError(t, p.Validate())
}

func TestRetryPolicy_Validate(t *testing.T) {
	tests := []struct {
		name string
		opt  RetryOption
	}{
		{"zero attempts", WithMaxAttempts(0)},
		{"zero multiplier", WithWait(0, time.Second, time.Minute)},
		{"negative min", WithWait(time.Second, -time.Second, time.Minute)},
		{"zero max", WithWait(time.Second, 0, 0)},
		{"min above max", WithWait(time.Second, time.Minute, time.Second)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, NewRetryPolicy(tt.opt).Validate(), ErrInvalidRetryPolicy)
		})
	}
}

func TestRetryPolicy_RetryableIsA(t *testing.T) {
	p := NewRetryPolicy(WithRetryableKinds(KindClient))

	assert.True(t, p.Retryable(NewError(KindNotFound, ErrorDetails{})))
	assert.True(t, p.Retryable(NewError(KindRateLimit, ErrorDetails{})))
	assert.False(t, p.Retryable(serverErr()))
	assert.False(t, p.Retryable(errors.New("plain")))
}

func TestRetryPolicy_BackoffBoundedAndNonDecreasing(t *testing.T) {
	p := NewRetryPolicy(
		WithMaxAttempts(8),
		WithWait(10*time.Millisecond, 15*time.Millisecond, 200*time.Millisecond),
	)

	for run := 0; run < 50; run++ {
		b := p.Backoff()
		var waits []time.Duration
		for {
			wait, stop := b.Next()
			if stop {
				break
			}
			waits = append(waits, wait)
		}

		require.Len(t, waits, 7)
		for i, w := range waits {
			assert.GreaterOrEqual(t, w, p.WaitMin)
			assert.LessOrEqual(t, w, p.WaitMax)
			if i > 0 {
				assert.GreaterOrEqual(t, w, waits[i-1], "waits must not decrease: %v", waits)
			}
		}
	}
}

func TestRetryPolicy_BackoffSingleAttempt(t *testing.T) {
	_, stop := NewRetryPolicy(WithMaxAttempts(1)).Backoff().Next()
	assert.True(t, stop)
}

func TestRetryPolicy_DoRetriesThenSucceeds(t *testing.T) {
	for k := 0; k < 4; k++ {
		var sleeps []time.Duration
		p := fastPolicy(WithBeforeSleep(func(ev RetryEvent) {
			sleeps = append(sleeps, ev.Wait)
			assert.ErrorIs(t, ev.Err, ErrServer)
		}))

		calls := 0
		res, err := p.Do(context.Background(), http.MethodGet, testURL, func(context.Context) (*Result, error) {
			calls++
			if calls <= k {
				return nil, serverErr()
			}
			return &Result{StatusCode: http.StatusOK}, nil
		})

		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, k+1, calls)
		assert.Len(t, sleeps, k)
		for i := 1; i < len(sleeps); i++ {
			assert.GreaterOrEqual(t, sleeps[i], sleeps[i-1])
		}
	}
}

func TestRetryPolicy_DoNonRetryableStopsImmediately(t *testing.T) {
	calls := 0
	_, err := fastPolicy(WithMaxAttempts(10)).Do(context.Background(), http.MethodGet, testURL, func(context.Context) (*Result, error) {
		calls++
		return nil, NewError(KindUnauthorized, ErrorDetails{Method: http.MethodGet, URL: testURL})
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRetryPolicy_DoExhaustedReraise(t *testing.T) {
	calls := 0
	_, err := fastPolicy(WithMaxAttempts(3)).Do(context.Background(), http.MethodGet, testURL, func(context.Context) (*Result, error) {
		calls++
		return nil, serverErr()
	})

	assert.Equal(t, 3, calls)
	reqErr, ok := AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, KindServer, reqErr.Kind)
	assert.NotErrorIs(t, err, ErrRetriesExhausted)
}

func TestRetryPolicy_DoExhaustedWithoutReraise(t *testing.T) {
	last := serverErr()
	_, err := fastPolicy(WithMaxAttempts(2), WithReraise(false)).Do(context.Background(), http.MethodGet, testURL, func(context.Context) (*Result, error) {
		return nil, last
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.ErrorIs(t, err, last)

	reqErr, ok := AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, KindRequest, reqErr.Kind)
	assert.Equal(t, testURL, reqErr.URL)
}

func TestRetryPolicy_DoNormalisesForeignErrors(t *testing.T) {
	_, err := fastPolicy().Do(context.Background(), http.MethodGet, testURL, func(context.Context) (*Result, error) {
		return nil, errors.New("boom")
	})

	reqErr, ok := AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, KindRequest, reqErr.Kind)
	assert.Contains(t, reqErr.Error(), "boom")
	assert.Equal(t, http.MethodGet, reqErr.Method)
}

func TestRetryPolicy_DoCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewRetryPolicy(
		WithWait(time.Hour, time.Hour, time.Hour),
		WithBeforeSleep(func(RetryEvent) { cancel() }),
	)

	calls := 0
	_, err := p.Do(ctx, http.MethodGet, testURL, func(context.Context) (*Result, error) {
		calls++
		return nil, serverErr()
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrServer)
	reqErr, ok := AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, KindRequest, reqErr.Kind)
}

func TestRetryPolicy_DoInvalidPolicy(t *testing.T) {
	calls := 0
	_, err := NewRetryPolicy(WithMaxAttempts(0)).Do(context.Background(), http.MethodGet, testURL, func(context.Context) (*Result, error) {
		calls++
		return nil, nil
	})

	assert.Zero(t, calls)
	assert.ErrorIs(t, err, ErrInvalidRetryPolicy)
	assert.ErrorIs(t, err, ErrRequest)
}
