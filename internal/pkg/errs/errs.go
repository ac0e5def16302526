/*
Package errs provides custom error types and application-level error code constants.

This file defines the CustomError struct, which implements the standard Go error interface
and includes a business code, a user-friendly message, and an HTTP status code for unified
error reporting on the HTTP surface.
*/
package errs

import (
	"fmt"
	"net/http"

	"chatrelay/internal/pkg/logx"
)

// CustomError is the custom error structure used by the HTTP surface.
// It wraps the Go error interface, adding a business code and HTTP status code.
type CustomError struct {
	// Code is the business error code (see constants definition).
	Code int

	// Message is the user-friendly error description.
	Message string

	// Status is the standard HTTP status code corresponding to this error.
	Status int
}

// Error implements the standard Go error interface. It returns a formatted
// error string containing the error code, HTTP status, and message.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError returns a new *CustomError for a predefined error code. The error
// messages are static; an unknown code falls back to ErrUnknown.
func NewError(code int) *CustomError {
	template, ok := errorMap[code]
	if !ok {
		logx.Error(
			fmt.Errorf("error code %d has no entry in errorMap", code),
			"Unknown error code requested",
		)
		template = errorMap[ErrUnknown]
	}

	if template.Status == 0 {
		template.Status = http.StatusInternalServerError
	}

	return &template
}
