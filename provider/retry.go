package provider

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retrying wraps a provider and retries transient failures with exponential
// backoff. Client errors other than 429 are treated as permanent.
type Retrying struct {
	inner      Provider
	maxRetries uint64
}

// WithRetry decorates p so transient failures are retried up to maxRetries
// times. A maxRetries of 0 disables retrying.
func WithRetry(p Provider, maxRetries int) *Retrying {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Retrying{inner: p, maxRetries: uint64(maxRetries)}
}

func (r *Retrying) Name() string { return r.inner.Name() }

func (r *Retrying) Generate(ctx context.Context, system, prompt string) (*Response, error) {
	policy := backoff.WithContext(backoff.WithMaxRetries(newBackoff(), r.maxRetries), ctx)
	var resp *Response
	op := func() error {
		var err error
		resp, err = r.inner.Generate(ctx, system, prompt)
		if err == nil {
			return nil
		}
		if isPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return resp, nil
}

func newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// isPermanent reports whether the error is not worth retrying. Network
// failures, 5xx responses, and 429 rate limits are transient. Other 4xx
// statuses and empty completions are permanent.
func isPermanent(err error) bool {
	if errors.Is(err, ErrEmptyCompletion) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return false
		}
		return apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
	}
	return false
}
