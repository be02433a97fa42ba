// internal/engine/errors.go
package engine

import (
	"errors"
	"fmt"
)

// ErrorCode classifies where in the pipeline a failure happened
type ErrorCode string

const (
	ErrCodeFetch       ErrorCode = "FETCH"
	ErrCodeExtraction  ErrorCode = "EXTRACTION"
	ErrCodeInteraction ErrorCode = "INTERACTION"
	ErrCodeIO          ErrorCode = "IO"
)

// Sentinels for errors.Is matching on the error code
var (
	ErrFetch       = &EngineError{Code: ErrCodeFetch, Message: "fetch failed"}
	ErrExtraction  = &EngineError{Code: ErrCodeExtraction, Message: "extraction failed"}
	ErrInteraction = &EngineError{Code: ErrCodeInteraction, Message: "browser interaction failed"}
	ErrIO          = &EngineError{Code: ErrCodeIO, Message: "output failed"}
)

// EngineError wraps errors with additional context
type EngineError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Details    map[string]interface{}
}

// Error implements the error interface
func (e *EngineError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	for _, key := range []string{"url", "category", "fragment", "path", "status"} {
		if v, ok := e.Details[key]; ok {
			msg += fmt.Sprintf(" (%s=%v)", key, v)
		}
	}
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", msg, e.Underlying)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// Is matches any *EngineError carrying the same code
func (e *EngineError) Is(target error) bool {
	if t, ok := target.(*EngineError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewEngineError creates a new EngineError
func NewEngineError(code ErrorCode, message string, err error) *EngineError {
	return &EngineError{
		Code:       code,
		Message:    message,
		Underlying: err,
		Details:    make(map[string]interface{}),
	}
}

// NewFetchError reports a transport failure or a non-success status for url
func NewFetchError(url, message string, err error) *EngineError {
	return NewEngineError(ErrCodeFetch, message, err).WithDetail("url", url)
}

// NewExtractionError reports a product fragment that could not be turned into a record
func NewExtractionError(message string, err error) *EngineError {
	return NewEngineError(ErrCodeExtraction, message, err)
}

// NewInteractionError reports a browser session or control lookup failure
func NewInteractionError(message string, err error) *EngineError {
	return NewEngineError(ErrCodeInteraction, message, err)
}

// NewIOError reports an output file that could not be created or written
func NewIOError(path, message string, err error) *EngineError {
	return NewEngineError(ErrCodeIO, message, err).WithDetail("path", path)
}

// WithDetail adds a detail to the error
func (e *EngineError) WithDetail(key string, value interface{}) *EngineError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// CodeOf returns the code of the first EngineError in err's chain, or "UNKNOWN"
func CodeOf(err error) ErrorCode {
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr.Code
	}
	return "UNKNOWN"
}
