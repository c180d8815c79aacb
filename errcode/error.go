// Package errcode provides the basic types and functionality for
// hierarchical error codes.
// Error code format: MMBBBB (MM = module code 2 digits, BBBB = business code 4 digits)
package errcode

import (
	"fmt"
	"net/http"
)

// LayeredError hierarchical error code
// Supports: error chaining, dynamic messages, context data, HTTP status code mapping
type LayeredError struct {
	module     string                 // Module name (property, cache, ...)
	code       int                    // Complete error code (MMBBBB, e.g., 200001)
	msgKey     string                 // Message key (e.g., "error.property.not_found")
	msg        string                 // Default message
	httpStatus int                    // HTTP status code
	data       map[string]interface{} // context data
	cause      error                  // Original error (error chain)
}

// New creates a hierarchical error code
// moduleCode: module code (10-99)
// businessCode: business code (0001-9999)
// module: module name
// msgKey: message key
// msg: default message
// httpStatus: HTTP status code (optional, default is 200)
func New(moduleCode, businessCode int, module, msgKey, msg string, httpStatus ...int) *LayeredError {
	code := moduleCode*10000 + businessCode
	status := http.StatusOK
	if len(httpStatus) > 0 {
		status = httpStatus[0]
	}
	return &LayeredError{
		module:     module,
		code:       code,
		msgKey:     msgKey,
		msg:        msg,
		httpStatus: status,
		data:       make(map[string]interface{}),
	}
}

// Error implements the error interface
func (e *LayeredError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

// Code gets the error code
func (e *LayeredError) Code() int {
	return e.code
}

// Module gets the module name
func (e *LayeredError) Module() string {
	return e.module
}

// MsgKey retrieves the message key
func (e *LayeredError) MsgKey() string {
	return e.msgKey
}

// Message gets the error message
func (e *LayeredError) Message() string {
	return e.msg
}

// HTTPStatus gets the HTTP status code
func (e *LayeredError) HTTPStatus() int {
	return e.httpStatus
}

// Data retrieves the context data
func (e *LayeredError) Data() map[string]interface{} {
	return e.data
}

// Cause gets the original error
func (e *LayeredError) Cause() error {
	return e.cause
}

// Unwrap supports Go 1.13+ error chains
func (e *LayeredError) Unwrap() error {
	return e.cause
}

// WithMsg replaces the error message (returns new instance, does not modify the original)
func (e *LayeredError) WithMsg(msg string) *LayeredError {
	clone := *e
	clone.msg = msg
	return &clone
}

// WithMsgf formats and replaces the error message (returns new instance)
func (e *LayeredError) WithMsgf(format string, args ...interface{}) *LayeredError {
	clone := *e
	clone.msg = fmt.Sprintf(format, args...)
	return &clone
}

// WithData adds a single context data entry (returns new instance)
func (e *LayeredError) WithData(key string, value interface{}) *LayeredError {
	clone := *e
	clone.data = e.cloneData()
	clone.data[key] = value
	return &clone
}

// Wrap wraps the original error (returns new instance)
func (e *LayeredError) Wrap(cause error) *LayeredError {
	if cause == nil {
		return e
	}
	clone := *e
	clone.cause = cause
	return &clone
}

// Wrapf wraps the original error and formats the message (returns new instance)
func (e *LayeredError) Wrapf(cause error, format string, args ...interface{}) *LayeredError {
	if cause == nil {
		return e.WithMsgf(format, args...)
	}
	clone := *e
	clone.cause = cause
	clone.msg = fmt.Sprintf(format, args...)
	return &clone
}

// Is supports errors.Is() (checks equality through code)
func (e *LayeredError) Is(target error) bool {
	t, ok := target.(*LayeredError)
	if !ok {
		return false
	}
	return e.code == t.code
}

// cloneData clones the context data (deep copy)
func (e *LayeredError) cloneData() map[string]interface{} {
	data := make(map[string]interface{}, len(e.data))
	for k, v := range e.data {
		data[k] = v
	}
	return data
}

// String returns a string representation of the error (for debugging)
func (e *LayeredError) String() string {
	if e.cause != nil {
		return fmt.Sprintf("LayeredError{code:%d, module:%s, msg:%s, cause:%v}",
			e.code, e.module, e.msg, e.cause)
	}
	return fmt.Sprintf("LayeredError{code:%d, module:%s, msg:%s}",
		e.code, e.module, e.msg)
}
