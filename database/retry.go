package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// retryPolicy controls how statement retries back off.
type retryPolicy struct {
	maxAttempts  int
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
}

var defaultRetryPolicy = retryPolicy{
	maxAttempts:  3,
	initialDelay: 100 * time.Millisecond,
	maxDelay:     2 * time.Second,
	multiplier:   2.0,
}

// Postgres error classes that indicate a transient condition. Anything
// in these classes is worth a second attempt; everything else fails
// immediately so constraint violations and bad SQL surface at once.
var retryablePgClasses = map[string]bool{
	"08": true, // connection exceptions
	"53": true, // insufficient resources
}

var retryablePgCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"57P03": true, // cannot_connect_now
}

// shouldRetry classifies a statement error as transient or permanent.
func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if retryablePgCodes[pgErr.Code] {
			return true
		}
		if len(pgErr.Code) >= 2 && retryablePgClasses[pgErr.Code[:2]] {
			return true
		}
		// Constraint violations (class 23), syntax and access errors
		// (class 42), read-only transactions and the rest are permanent.
		return false
	}

	// The driver wraps network failures in plain errors, so fall back to
	// message matching for those.
	msg := strings.ToLower(err.Error())
	for _, transient := range []string{
		"connection refused",
		"connection reset",
		"connection closed",
		"bad connection",
		"broken pipe",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"eof",
		"too many clients",
		"server is not accepting",
		"connection pool exhausted",
		"temporary failure",
	} {
		if strings.Contains(msg, transient) {
			return true
		}
	}

	return false
}

// WithRetry runs a statement, retrying transient failures with
// exponential backoff. Permanent errors return on the first attempt.
func WithRetry(ctx context.Context, fn func() error) error {
	policy := defaultRetryPolicy
	delay := policy.initialDelay

	var lastErr error
	for attempt := 1; attempt <= policy.maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return err
		}
		if attempt >= policy.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay = time.Duration(float64(delay) * policy.multiplier)
			if delay > policy.maxDelay {
				delay = policy.maxDelay
			}
		}
	}

	return lastErr
}
