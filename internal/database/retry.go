package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/logger"
)

// RetryPolicy bounds replays of transactions aborted by serialization conflicts
type RetryPolicy struct {
	MaxAttempts uint
	// OnRetry is called before each replay, nil is allowed
	OnRetry func(attempt uint, err error)
}

// NewRetryPolicy builds a policy from a retry count, falling back to the default on zero
func NewRetryPolicy(maxRetries int) RetryPolicy {
	if maxRetries <= 0 {
		maxRetries = DefaultTxMaxRetries
	}
	return RetryPolicy{MaxAttempts: uint(maxRetries) + 1}
}

// IsRetryable reports whether err is a serialization failure or deadlock
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == PgCodeSerializationFailure || pgErr.Code == PgCodeDeadlockDetected
	}
	return errors.Is(err, domain.ErrSerializationFailure)
}

// RetryTx runs fn, replaying it when the database aborted the transaction on a conflict.
// fn must open and commit its own transaction so each attempt starts clean.
// Game errors are returned on the first attempt untouched.
func RetryTx[T any](ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) (T, error)) (T, error) {
	attempts := policy.MaxAttempts
	if attempts == 0 {
		attempts = DefaultTxMaxRetries + 1
	}
	log := logger.FromContext(ctx)

	result, err := retry.DoWithData(
		func() (T, error) {
			return fn(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(DefaultTxRetryDelay),
		retry.MaxJitter(DefaultTxMaxJitter),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.LastErrorOnly(true),
		retry.RetryIf(IsRetryable),
		retry.OnRetry(func(n uint, err error) {
			log.Warn(LogMsgRetryingTransaction, "attempt", n+1, "error", err)
			if policy.OnRetry != nil {
				policy.OnRetry(n, err)
			}
		}),
	)
	if err != nil && IsRetryable(err) && !errors.Is(err, domain.ErrSerializationFailure) {
		var zero T
		return zero, fmt.Errorf("%w: %w", domain.ErrSerializationFailure, err)
	}
	return result, err
}
