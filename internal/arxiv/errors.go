// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// StatusError reports a non-200 HTTP response from the arXiv API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("arXiv API returned HTTP %d", e.Code)
}

// Transient reports whether the status warrants a retry: server-side
// failures (5xx) and rate limiting (429). Client errors never retry.
func (e *StatusError) Transient() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

// APIError is an API-level failure embedded in a well-formed feed: a
// single entry whose title contains "Error". This mirrors the upstream
// convention for reporting bad queries; a genuine paper titled with that
// substring would be a false positive, so the check is a heuristic kept
// for compatibility, not a robust signal.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "arXiv API error: " + e.Message
}

// MalformedResponseError reports a response body that failed to decode
// as Atom XML. It is never retried.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return "parsing arXiv response: " + e.Err.Error()
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// RetriesExhaustedError reports that every attempt failed transiently.
// Last carries the failure from the final attempt.
type RetriesExhaustedError struct {
	Attempts int
	Last     error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("request failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *RetriesExhaustedError) Unwrap() error { return e.Last }

// isTransient classifies an error as retryable. Timeouts, connection
// failures, and retryable HTTP statuses qualify; malformed payloads,
// API-level errors, client statuses, and cancellation do not. Deadline
// expiry is deliberately not checked here: an http.Client timeout
// surfaces as context.DeadlineExceeded too, and Retrier.Do stops on the
// caller's own deadline by comparing against its context.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var se *StatusError
	if errors.As(err, &se) {
		return se.Transient()
	}
	var me *MalformedResponseError
	if errors.As(err, &me) {
		return false
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return false
	}

	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}
	return false
}
