// Package retry runs fallible remote calls with bounded exponential backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/julianstephens/habithub/internal/constants"
	"github.com/julianstephens/habithub/internal/logger"
)

// ErrExhausted is returned, wrapping the last failure, once every attempt of
// a policy has failed.
var ErrExhausted = errors.New("retries exhausted")

// Policy bounds a retry sequence. Timeout applies to each attempt separately;
// zero disables it.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Timeout     time.Duration
}

// DefaultPolicy returns 3 attempts starting at 500ms with a 30s per-attempt
// timeout.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: constants.DefaultRetryAttempts,
		BaseDelay:   constants.DefaultRetryBaseDelay,
		Timeout:     constants.DefaultRequestTimeout,
	}
}

// Delays lists the waits between attempts, e.g. 500ms, 1s for three attempts.
func (p Policy) Delays() []time.Duration {
	if p.MaxAttempts <= 1 {
		return nil
	}
	out := make([]time.Duration, 0, p.MaxAttempts-1)
	d := p.BaseDelay
	for i := 1; i < p.MaxAttempts; i++ {
		out = append(out, d)
		d *= 2
	}
	return out
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	exp := &backoff.ExponentialBackOff{
		InitialInterval:     p.BaseDelay,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         time.Duration(math.MaxInt64),
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	retries := p.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

// Permanent marks err so that Do returns it immediately without retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do calls op until it succeeds, returns a permanent error, the context is
// cancelled, or the policy runs out of attempts. Only the final error is
// surfaced; intermediate failures are logged.
func Do[T any](ctx context.Context, p Policy, op func(context.Context) (T, error)) (T, error) {
	attempts := 0
	permanent := false

	attempt := func() (T, error) {
		attempts++
		actx, cancel := ctx, context.CancelFunc(func() {})
		if p.Timeout > 0 {
			actx, cancel = context.WithTimeout(ctx, p.Timeout)
		}
		defer cancel()

		res, err := op(actx)
		var perr *backoff.PermanentError
		if errors.As(err, &perr) {
			permanent = true
		}
		return res, err
	}

	notify := func(err error, next time.Duration) {
		logger.Warn("request failed, retrying", "attempt", attempts, "next", next, "err", err)
	}

	res, err := backoff.RetryNotifyWithData(attempt, p.backOff(ctx), notify)
	if err == nil {
		return res, nil
	}
	if permanent {
		return res, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, ctxErr
	}
	logger.Error("request failed", "attempts", attempts, "err", err)
	return res, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, err)
}
