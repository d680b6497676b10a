// Package errors provides a structured error system for StrataCache with error codes, categories, and context.
package errors

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents a structured error code for cache operations.
type ErrorCode string

// Error code constants organized by category.
const (
	// Configuration errors
	ErrCodeInvalidConfig    ErrorCode = "INVALID_CONFIG"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"
	ErrCodeConfigLoad       ErrorCode = "CONFIG_LOAD"
	ErrCodeUnknownPreset    ErrorCode = "UNKNOWN_PRESET"

	// Policy registry errors
	ErrCodeUnknownStrategy ErrorCode = "UNKNOWN_STRATEGY"
	ErrCodeStrategyExists  ErrorCode = "STRATEGY_EXISTS"

	// State management errors
	ErrCodeCacheShutDown ErrorCode = "CACHE_SHUT_DOWN"
	ErrCodeInvalidState  ErrorCode = "INVALID_STATE"

	// Resource errors
	ErrCodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"
	ErrCodeLevelNotFound    ErrorCode = "LEVEL_NOT_FOUND"

	// Internal errors
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorCategory represents the general category of an error.
type ErrorCategory string

const (
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryPolicy        ErrorCategory = "policy"
	CategoryState         ErrorCategory = "state"
	CategoryResource      ErrorCategory = "resource"
	CategoryInternal      ErrorCategory = "internal"
)

// CacheError represents a structured error with context and metadata.
type CacheError struct {
	// Core error information
	Code     ErrorCode              `json:"code"`
	Category ErrorCategory          `json:"category"`
	Message  string                 `json:"message"`
	Details  map[string]interface{} `json:"details,omitempty"`

	// Contextual information
	Cause     error     `json:"-"` // Not serialized to avoid circular refs
	Timestamp time.Time `json:"timestamp"`

	// Operational metadata
	Component string `json:"component,omitempty"`
	Operation string `json:"operation,omitempty"`

	// Error handling hints
	Retryable bool `json:"retryable"`
}

// Error implements the error interface.
func (e *CacheError) Error() string {
	if e.Component != "" {
		if e.Operation != "" {
			return fmt.Sprintf("[%s:%s] %s: %s", e.Component, e.Operation, e.Code, e.Message)
		}
		return fmt.Sprintf("[%s] %s: %s", e.Component, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error wrapping compatibility.
func (e *CacheError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error (for errors.Is compatibility).
func (e *CacheError) Is(target error) bool {
	if cacheErr, ok := target.(*CacheError); ok {
		return e.Code == cacheErr.Code
	}
	return false
}

// String returns a detailed string representation for logging.
func (e *CacheError) String() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Code=%s", e.Code))
	parts = append(parts, fmt.Sprintf("Category=%s", e.Category))
	parts = append(parts, fmt.Sprintf("Message=%q", e.Message))

	if e.Component != "" {
		parts = append(parts, fmt.Sprintf("Component=%s", e.Component))
	}

	if e.Operation != "" {
		parts = append(parts, fmt.Sprintf("Operation=%s", e.Operation))
	}

	if e.Retryable {
		parts = append(parts, "Retryable=true")
	}

	if len(e.Details) > 0 {
		details, _ := json.Marshal(e.Details)
		parts = append(parts, fmt.Sprintf("Details=%s", details))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("Cause=%q", e.Cause.Error()))
	}

	return fmt.Sprintf("CacheError{%s}", strings.Join(parts, ", "))
}

// JSON returns the error as a JSON string.
func (e *CacheError) JSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal error: %s"}`, err.Error())
	}
	return string(data)
}

// NewError creates a new cache error with default values.
func NewError(code ErrorCode, message string) *CacheError {
	return &CacheError{
		Code:      code,
		Category:  GetCategory(code),
		Message:   message,
		Timestamp: time.Now(),
		Details:   make(map[string]interface{}),
		Retryable: IsRetryableByDefault(code),
	}
}

// Newf creates a new cache error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *CacheError {
	return NewError(code, fmt.Sprintf(format, args...))
}

// GetCategory determines the category based on the error code.
func GetCategory(code ErrorCode) ErrorCategory {
	switch code {
	case ErrCodeInvalidConfig, ErrCodeConfigValidation, ErrCodeConfigLoad, ErrCodeUnknownPreset:
		return CategoryConfiguration
	case ErrCodeUnknownStrategy, ErrCodeStrategyExists:
		return CategoryPolicy
	case ErrCodeCacheShutDown, ErrCodeInvalidState:
		return CategoryState
	case ErrCodeCapacityExceeded, ErrCodeLevelNotFound:
		return CategoryResource
	default:
		return CategoryInternal
	}
}

// IsRetryableByDefault determines if an error is retryable by default.
func IsRetryableByDefault(code ErrorCode) bool {
	retryableCodes := map[ErrorCode]bool{
		ErrCodeInternalError: true,
	}
	return retryableCodes[code]
}

// WithDetail adds detailed information to an error
func (e *CacheError) WithDetail(key string, value interface{}) *CacheError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithComponent sets the component for an error
func (e *CacheError) WithComponent(component string) *CacheError {
	e.Component = component
	return e
}

// WithOperation sets the operation for an error
func (e *CacheError) WithOperation(operation string) *CacheError {
	e.Operation = operation
	return e
}

// WithCause sets the underlying cause
func (e *CacheError) WithCause(cause error) *CacheError {
	e.Cause = cause
	return e
}
