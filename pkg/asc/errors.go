package asc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Common errors
var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

// RequestError represents a vendor-reported caller mistake (4xx): bad
// parameters, not found, conflict. Never retried.
type RequestError struct {
	Status int
	Code   string
	Detail string
}

func (e *RequestError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("request failed (status %d)", e.Status)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Code, e.Detail, e.Status)
}

// AuthError represents a rejected or unmintable token.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// RateLimitError represents an hourly quota rejection (429).
type RateLimitError struct {
	Detail     string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: %s (retry after %v)", e.Detail, e.RetryAfter)
	}
	return fmt.Sprintf("rate limited: %s", e.Detail)
}

// ServerError represents a vendor-side failure (5xx). Retried with backoff
// before being surfaced.
type ServerError struct {
	Status int
	Code   string
	Detail string
}

func (e *ServerError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server error (status %d)", e.Status)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Code, e.Detail, e.Status)
}

// TransportError represents a failure below the HTTP layer: DNS, connection
// reset, TLS handshake, timeout, or context cancellation.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError represents a 2xx response whose body did not match the
// expected shape. Indicates a contract mismatch, not transience; never
// retried.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsRequestError returns true if the error is a vendor-reported 4xx.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}

// IsNotFound returns true if the error is a vendor 404.
func IsNotFound(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == http.StatusNotFound
}

// IsAuthError returns true if the error is authentication-related.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsRateLimitError returns true if the error indicates rate limit exceeded.
func IsRateLimitError(err error) bool {
	var re *RateLimitError
	return errors.As(err, &re)
}

// IsServerError returns true if the error is a vendor-side error (5xx).
func IsServerError(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}

// IsTransportError returns true if the error occurred below the HTTP layer.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsDecodeError returns true if a response body failed to decode.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

func newUnexpectedStatusError(code int) error {
	return fmt.Errorf("%w: %d", ErrUnexpectedStatus, code)
}

// errorDocument is the vendor's error envelope on non-2xx responses.
type errorDocument struct {
	Errors []struct {
		Status string `json:"status"`
		Code   string `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// mapError converts a non-2xx status, its body and headers into the typed
// taxonomy. Total over its input: an unparseable or empty body still yields
// a RequestError or ServerError with an empty code.
func mapError(status int, body []byte, header http.Header) error {
	code, detail := decodeErrorDocument(body)

	switch {
	case status == http.StatusUnauthorized:
		if detail == "" {
			detail = "token rejected"
		}
		return &AuthError{Reason: detail}
	case status == http.StatusTooManyRequests:
		return &RateLimitError{
			Detail:     detail,
			RetryAfter: parseRetryAfter(header),
		}
	case status >= 500:
		return &ServerError{Status: status, Code: code, Detail: detail}
	case status >= 400:
		return &RequestError{Status: status, Code: code, Detail: detail}
	default:
		return newUnexpectedStatusError(status)
	}
}

func decodeErrorDocument(body []byte) (code, detail string) {
	var doc errorDocument
	if err := json.Unmarshal(body, &doc); err != nil || len(doc.Errors) == 0 {
		return "", ""
	}
	first := doc.Errors[0]
	detail = first.Detail
	if detail == "" {
		detail = first.Title
	}
	return first.Code, detail
}

func parseRetryAfter(header http.Header) time.Duration {
	value := header.Get("Retry-After")
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
