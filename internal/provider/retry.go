package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

// IsRetryableError checks if a provider API error is worth retrying.
// It covers common transient failures: network errors, rate limits,
// server errors, and provider-specific overload conditions.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	msg := strings.ToLower(err.Error())

	retryablePatterns := []string{
		"connection reset",
		"connection refused",
		"i/o timeout",
		"no such host",
		"overloaded_error",
		"server_error",
	}
	for _, p := range retryablePatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}

	retryableCodes := []int{429, 500, 502, 503, 529}
	for _, code := range retryableCodes {
		if strings.Contains(msg, fmt.Sprintf("%d", code)) {
			return true
		}
	}

	return false
}

// Retry runs fn with exponential backoff on retryable errors.
// maxRetries is the number of retry attempts (not counting the initial call).
// Backoff schedule: 1s, 2s, 4s, etc.
func Retry(ctx context.Context, maxRetries int, logger *log.Logger, fn func() (string, error)) (string, error) {
	text, err := fn()
	if err == nil {
		return text, nil
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		if !IsRetryableError(err) {
			return "", err
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		backoff := time.Second * (1 << uint(attempt))
		if logger != nil {
			logger.Printf("call failed: %v, retrying in %v (attempt %d/%d)", err, backoff, attempt+1, maxRetries)
		}

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return "", ctx.Err()
		}

		text, err = fn()
		if err == nil {
			return text, nil
		}
	}

	return "", err
}
