package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/logger"
)

// Retry policy for transient provider failures.
const (
	retryAttempts = 3
	retryBaseWait = 2 * time.Second
	retryMaxWait  = 10 * time.Second
)

// isTransient reports whether an error is worth retrying. Only provider
// unavailability and rate limiting qualify; configuration and request
// errors surface immediately.
func isTransient(err error) bool {
	return errors.Is(err, domain.ErrProviderUnavailable) || errors.Is(err, domain.ErrRateLimited)
}

// withRetry runs fn up to retryAttempts times with exponential backoff
// between attempts. Non-transient errors and context cancellation abort
// immediately.
func withRetry(ctx context.Context, op string, fn func() error) error {
	wait := retryBaseWait

	var err error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !isTransient(err) || attempt == retryAttempts {
			return err
		}

		logger.Warn("%s failed (attempt %d/%d): %v, retrying in %s",
			op, attempt, retryAttempts, err, wait)

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(wait):
		}

		wait *= 2
		if wait > retryMaxWait {
			wait = retryMaxWait
		}
	}

	return err
}
