package netsuite

import (
	"cmp"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tphakala/go-netsuite/internal/soap"
)

// Sentinel errors for common failure modes.
var (
	ErrNoAccount         = errors.New("netsuite: no account configured")
	ErrNoCredentials     = errors.New("netsuite: no credentials configured")
	ErrNoIdentifier      = errors.New("netsuite: internal or external id required")
	ErrMissingExternalID = errors.New("netsuite: externalId is required")
	ErrPageOutOfRange    = errors.New("netsuite: page out of range")
	ErrNotImplemented    = errors.New("netsuite: not implemented")
	ErrUnknownType       = errors.New("netsuite: unknown type")
)

// Status detail code NetSuite reports for missing records.
const codeRecordNotFound = "RCRD_DSNT_EXIST"

// RemoteError reports an operation whose response status was not successful.
type RemoteError struct {
	Operation string
	Details   []StatusDetail
}

// Message joins the human-readable status detail messages.
func (e *RemoteError) Message() string {
	return Status{Details: e.Details}.Messages()
}

// Code returns the first status detail code.
func (e *RemoteError) Code() string {
	if len(e.Details) == 0 {
		return ""
	}
	return e.Details[0].Code
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("netsuite: %s failed: %s", e.Operation, e.Message())
}

// NotFoundError indicates the requested record does not exist.
type NotFoundError struct {
	RemoteError
	RecordType string
	RecordID   RecordID
}

func (e *NotFoundError) Error() string {
	if e.RecordType != "" {
		return fmt.Sprintf("netsuite: %s not found: %s", e.RecordType, e.RecordID)
	}
	return fmt.Sprintf("netsuite: record not found: %s", e.Message())
}

// As implements error unwrapping for errors.As to match *RemoteError.
func (e *NotFoundError) As(target any) bool {
	if t, ok := target.(**RemoteError); ok {
		*t = &e.RemoteError
		return true
	}
	return false
}

// NotImplementedError reports an operation a record type does not support.
type NotImplementedError struct {
	TypeName  string
	Operation string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("netsuite: %s not implemented for %s", e.Operation, e.TypeName)
}

// Unwrap allows errors.Is(err, ErrNotImplemented).
func (e *NotImplementedError) Unwrap() error {
	return ErrNotImplemented
}

// FaultError represents a SOAP fault returned by the web services endpoint.
type FaultError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *FaultError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("netsuite: fault %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("netsuite: HTTP %d: %s", e.StatusCode, e.Message)
}

// AuthenticationError indicates the token passport was rejected.
type AuthenticationError struct {
	FaultError
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("netsuite: authentication failed: %s", e.Message)
}

// As implements error unwrapping for errors.As to match *FaultError.
func (e *AuthenticationError) As(target any) bool {
	if t, ok := target.(**FaultError); ok {
		*t = &e.FaultError
		return true
	}
	return false
}

// RateLimitError indicates the account's concurrency or request limit was hit.
type RateLimitError struct {
	FaultError
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("netsuite: rate limit exceeded, retry after %s", e.RetryAfter)
	}
	return "netsuite: rate limit exceeded"
}

// As implements error unwrapping for errors.As to match *FaultError.
func (e *RateLimitError) As(target any) bool {
	if t, ok := target.(**FaultError); ok {
		*t = &e.FaultError
		return true
	}
	return false
}

// ServerError indicates an unexpected server-side failure.
type ServerError struct {
	FaultError
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("netsuite: server error %d: %s", e.StatusCode, e.Message)
}

// As implements error unwrapping for errors.As to match *FaultError.
func (e *ServerError) As(target any) bool {
	if t, ok := target.(**FaultError); ok {
		*t = &e.FaultError
		return true
	}
	return false
}

var authFaultCodes = map[string]bool{
	"INVALID_LOGIN":             true,
	"INVALID_LOGIN_ATTEMPT":     true,
	"INVALID_LOGIN_CREDENTIALS": true,
	"INVALID_ACCOUNT":           true,
	"INVALID_ROLE":              true,
}

var rateLimitFaultCodes = map[string]bool{
	"WS_CONCUR_SESSION_DISALLWD": true,
	"WS_REQUEST_BLOCKED":         true,
	"EXCEEDED_CONCURRENCY_LIMIT": true,
}

// parseError converts a failed HTTP response into the appropriate error type.
// NetSuite returns most faults with HTTP 500, so the fault code takes
// precedence over the status code.
func parseError(statusCode int, body []byte, headers http.Header) error {
	base := FaultError{StatusCode: statusCode}

	var detailCode string
	if env, err := soap.ParseEnvelope(body); err == nil && env.Fault != nil {
		detailCode = env.Fault.DetailCode
		base.Code = cmp.Or(detailCode, env.Fault.Code)
		base.Message = env.Fault.Message
	} else {
		// Fallback to raw body if not a SOAP fault
		base.Message = cmp.Or(strings.TrimSpace(string(body)), http.StatusText(statusCode))
	}

	switch {
	case authFaultCodes[base.Code] ||
		statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return &AuthenticationError{FaultError: base}
	case rateLimitFaultCodes[base.Code] || statusCode == http.StatusTooManyRequests:
		return &RateLimitError{
			FaultError: base,
			RetryAfter: parseRetryAfter(headers.Get("Retry-After")),
		}
	case statusCode >= http.StatusInternalServerError && detailCode == "":
		return &ServerError{FaultError: base}
	default:
		return &base
	}
}

// parseRetryAfter parses the Retry-After header value.
// It handles both seconds (integer) and HTTP-date formats.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}

	// Try parsing as seconds first
	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(seconds) * time.Second
	}

	// Try parsing as HTTP-date (RFC 1123)
	if t, err := time.Parse(time.RFC1123, value); err == nil {
		duration := time.Until(t)
		if duration > 0 {
			return duration
		}
	}

	return 0
}

// statusError converts an unsuccessful status into a typed error.
func statusError(op string, status Status) error {
	remote := RemoteError{Operation: op, Details: status.Details}
	for _, d := range status.Details {
		if d.Code == codeRecordNotFound {
			return &NotFoundError{RemoteError: remote}
		}
	}
	return &remote
}
