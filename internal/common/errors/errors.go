// Package errors provides standardized error handling for the guest fit
// analysis pipeline.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeProfileFetchFailed  ErrorCode = "PROFILE_FETCH_FAILED"
	ErrCodeProfileMalformed    ErrorCode = "PROFILE_MALFORMED"
	ErrCodeInvalidProfile      ErrorCode = "INVALID_PROFILE"
	ErrCodeLLMUnavailable      ErrorCode = "LLM_UNAVAILABLE"
	ErrCodeLLMTimeout          ErrorCode = "LLM_TIMEOUT"
	ErrCodeScoreParseFailed    ErrorCode = "SCORE_PARSE_FAILED"
	ErrCodeCacheUnavailable    ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeInvalidRequest      ErrorCode = "INVALID_REQUEST"
	ErrCodeConfigurationFailed ErrorCode = "CONFIGURATION_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewProfileFetchError wraps an upstream data source failure. Not retried
// inside the core; the caller decides.
func NewProfileFetchError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileFetchFailed,
		Message:   fmt.Sprintf("Profile source '%s' error", source),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewProfileMalformedError indicates an upstream record that failed schema
// validation.
func NewProfileMalformedError(source, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileMalformed,
		Message:   fmt.Sprintf("Profile source '%s' returned a malformed record", source),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidProfileError indicates an upstream contract violation: a fetched
// profile is missing fields the aggregator requires.
func NewInvalidProfileError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidProfile,
		Message:   "Profile is missing required analysis fields",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMUnavailableError indicates every configured model endpoint was
// exhausted.
func NewLLMUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMUnavailable,
		Message:   "All configured LLM endpoints exhausted",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewLLMTimeoutError creates a retryable LLM timeout error.
func NewLLMTimeoutError(endpoint string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMTimeout,
		Message:   "LLM generation timeout",
		Details:   fmt.Sprintf("endpoint: %s", endpoint),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoreParseError indicates generated text that did not match the expected
// score grammar after the pipeline's internal retry.
func NewScoreParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoreParseFailed,
		Message:   "LLM output did not match the expected score format",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewCacheUnavailableError wraps a cache backend failure.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Result cache backend error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInvalidRequestError creates a non-retryable request validation error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Analysis request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigurationError creates a non-retryable configuration error.
func NewConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationFailed,
		Message:   "Invalid configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// CodeOf extracts the error code from err, or empty when err carries none.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsRetryable reports whether the caller may reasonably re-issue the request.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PROFILE"):
		return "PROFILE"
	case strings.Contains(codeStr, "LLM") || strings.Contains(codeStr, "SCORE"):
		return "AI"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "REQUEST") || strings.Contains(codeStr, "CONFIGURATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
