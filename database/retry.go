package database

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"strings"
	"time"

	"promo_store_server/lib"
)

type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// Retryable classifies errors; IsRetryable when nil.
	Retryable func(error) bool
}

// DefaultRetryConfig returns the retry policy used by the query builder
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
	}
}

// SQLSTATE codes and classes that are worth another attempt. Everything else
// (constraint violations, syntax errors, missing tables) fails immediately.
var (
	retryableStates = map[string]bool{
		"40001": true, // serialization_failure
		"40P01": true, // deadlock_detected
		"57P03": true, // cannot_connect_now
	}
	retryableClasses = []string{
		"08", // connection exceptions
		"53", // insufficient resources
	}
	transientMessages = []string{
		"database is locked",
		"sqlite_busy",
		"connection refused",
		"connection reset",
		"broken pipe",
		"bad connection",
		"too many clients",
	}
)

// IsRetryable reports whether err looks transient.
func IsRetryable(err error) bool {
	if err == nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, sql.ErrNoRows) {
		return false
	}

	if code := lib.SQLState(err); code != "" {
		if retryableStates[code] {
			return true
		}
		for _, class := range retryableClasses {
			if strings.HasPrefix(code, class) {
				return true
			}
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, m := range transientMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// RetryWithBackoff runs operation until it succeeds, fails with a permanent
// error, or runs out of attempts.
func RetryWithBackoff(ctx context.Context, config RetryConfig, operation func() error) error {
	retryable := config.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}
	delay := config.InitialDelay

	var err error
	for attempt := 1; ; attempt++ {
		if err = operation(); err == nil || !retryable(err) || attempt >= config.MaxAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = min(time.Duration(float64(delay)*config.Multiplier), config.MaxDelay)
	}
}

// WithRetry wraps a database operation with the default retry policy
func WithRetry(ctx context.Context, fn func() error) error {
	return RetryWithBackoff(ctx, DefaultRetryConfig(), fn)
}
