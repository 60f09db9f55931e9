package netsuite

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RetryPolicy controls NewRetryBackend. Only rate limit and server faults
// are retried; a RateLimitError's RetryAfter overrides the computed delay.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	// RequestsPerSecond paces outgoing calls when positive.
	RequestsPerSecond float64
	Burst             int
}

// DefaultRetryPolicy returns a policy of three attempts with exponential
// backoff from 500ms up to 10s and no pacing.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    10 * time.Second,
	}
}

type retryBackend struct {
	inner   Backend
	policy  RetryPolicy
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewRetryBackend wraps inner with bounded retries and optional pacing.
func NewRetryBackend(inner Backend, policy RetryPolicy, logger *zap.Logger) Backend {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &retryBackend{inner: inner, policy: policy, logger: logger}
	if policy.RequestsPerSecond > 0 {
		b.limiter = rate.NewLimiter(rate.Limit(policy.RequestsPerSecond), max(policy.Burst, 1))
	}
	return b
}

func retryable(err error) bool {
	var rl *RateLimitError
	var se *ServerError
	return errors.As(err, &rl) || errors.As(err, &se)
}

// hintedBackOff lets a server-supplied Retry-After replace the next
// computed delay.
type hintedBackOff struct {
	backoff.BackOff
	hint time.Duration
}

func (h *hintedBackOff) NextBackOff() time.Duration {
	next := h.BackOff.NextBackOff()
	if next != backoff.Stop && h.hint > 0 {
		next, h.hint = h.hint, 0
	}
	return next
}

func (b *retryBackend) newBackOff(ctx context.Context) (*hintedBackOff, backoff.BackOff) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = b.policy.BaseDelay
	exp.RandomizationFactor = 0
	exp.Multiplier = 2
	exp.MaxInterval = b.policy.MaxDelay
	if exp.MaxInterval <= 0 {
		exp.MaxInterval = time.Duration(math.MaxInt64)
	}
	exp.MaxElapsedTime = 0
	exp.Reset()

	hinted := &hintedBackOff{BackOff: exp}
	retries := uint64(b.policy.MaxAttempts - 1)
	return hinted, backoff.WithContext(backoff.WithMaxRetries(hinted, retries), ctx)
}

func withRetry[T any](ctx context.Context, b *retryBackend, op string, fn func() (T, error)) (T, error) {
	hinted, policy := b.newBackOff(ctx)
	attempt := 0

	operation := func() (T, error) {
		var zero T
		attempt++
		if b.limiter != nil {
			if err := b.limiter.Wait(ctx); err != nil {
				return zero, backoff.Permanent(err)
			}
		}

		res, err := fn()
		switch {
		case err == nil:
			return res, nil
		case ctx.Err() != nil:
			return res, backoff.Permanent(ctx.Err())
		case !retryable(err):
			return res, backoff.Permanent(err)
		}

		var rl *RateLimitError
		if errors.As(err, &rl) {
			hinted.hint = rl.RetryAfter
		}
		return res, err
	}

	notify := func(err error, delay time.Duration) {
		b.logger.Debug("retrying operation",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
	}

	return backoff.RetryNotifyWithData(operation, policy, notify)
}

func (b *retryBackend) Get(ctx context.Context, ref RecordRef) (*ReadResponse, error) {
	return withRetry(ctx, b, "get", func() (*ReadResponse, error) {
		return b.inner.Get(ctx, ref)
	})
}

func (b *retryBackend) GetList(ctx context.Context, refs []RecordRef) (*ReadResponseList, error) {
	return withRetry(ctx, b, "getList", func() (*ReadResponseList, error) {
		return b.inner.GetList(ctx, refs)
	})
}

func (b *retryBackend) GetAll(ctx context.Context, recordType string) (*GetAllResult, error) {
	return withRetry(ctx, b, "getAll", func() (*GetAllResult, error) {
		return b.inner.GetAll(ctx, recordType)
	})
}

func (b *retryBackend) Search(ctx context.Context, search SearchRecord, pageSize int) (*SearchResult, error) {
	return withRetry(ctx, b, "search", func() (*SearchResult, error) {
		return b.inner.Search(ctx, search, pageSize)
	})
}

func (b *retryBackend) SearchMoreWithID(ctx context.Context, searchID string, pageIndex int) (*SearchResult, error) {
	return withRetry(ctx, b, "searchMoreWithId", func() (*SearchResult, error) {
		return b.inner.SearchMoreWithID(ctx, searchID, pageIndex)
	})
}

func (b *retryBackend) Upsert(ctx context.Context, typeName string, record *Record) (*WriteResponse, error) {
	return withRetry(ctx, b, "upsert", func() (*WriteResponse, error) {
		return b.inner.Upsert(ctx, typeName, record)
	})
}

func (b *retryBackend) Delete(ctx context.Context, ref RecordRef) (*WriteResponse, error) {
	return withRetry(ctx, b, "delete", func() (*WriteResponse, error) {
		return b.inner.Delete(ctx, ref)
	})
}
