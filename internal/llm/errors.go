package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrConfiguration means the generator cannot be built at all, usually
// because no API credential is set. It is reported once at startup and is
// never retried.
type ErrConfiguration struct {
	Reason string
}

func (e *ErrConfiguration) Error() string {
	return "LLM not configured: " + e.Reason
}

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the reply could not be parsed or does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// IsConfiguration reports whether err is a configuration failure.
func IsConfiguration(err error) bool {
	var cfgErr *ErrConfiguration
	return errors.As(err, &cfgErr)
}

// classifyHTTP maps a provider SDK error with its HTTP status onto the error
// taxonomy. A rejected credential is a configuration failure: retrying or
// falling back cannot fix it. header may be nil.
func classifyHTTP(status int, header http.Header, err error) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &ErrConfiguration{Reason: fmt.Sprintf("API key rejected (HTTP %d): %v", status, err)}
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: parseRetryAfter(header, time.Now()), Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// parseRetryAfter reads a Retry-After header given in seconds or as an HTTP
// date. Missing or unparseable values yield zero.
func parseRetryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return max(time.Duration(secs)*time.Second, 0)
	}
	if at, err := http.ParseTime(v); err == nil {
		return max(at.Sub(now), 0)
	}
	return 0
}

// Kind names the error class for logs: "configuration", "rate_limit",
// "invalid_response", "unavailable", "max_tokens" or "canceled". Anything
// else is "other" and nil is "".
func Kind(err error) string {
	var (
		cfgErr   *ErrConfiguration
		rateErr  *ErrRateLimit
		invErr   *ErrInvalidResponse
		downErr  *ErrProviderUnavailable
		tokenErr *ErrMaxTokensExceeded
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &cfgErr):
		return "configuration"
	case errors.As(err, &rateErr):
		return "rate_limit"
	case errors.As(err, &invErr):
		return "invalid_response"
	case errors.As(err, &tokenErr):
		return "max_tokens"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.As(err, &downErr):
		return "unavailable"
	}
	return "other"
}
