// Package errors provides structured error reporting for the setedit CLI.
// Errors carry a category that decides the exit status and a list of
// remediation steps shown to the user.
package errors

import "fmt"

// ErrorCategory represents the type of error that occurred.
type ErrorCategory int

const (
	// Validation errors are recoverable command-level problems: bad input,
	// unknown names, wrong argument counts.
	Validation ErrorCategory = iota
	// Environment errors are unrecoverable file-system or OS failures.
	Environment
	// Configuration errors come from an invalid setedit configuration file.
	Configuration
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Validation:
		return "Validation Error"
	case Environment:
		return "Environment Error"
	case Configuration:
		return "Configuration Error"
	default:
		return "Error"
	}
}

// CLIError is a structured error with category and remediation guidance.
type CLIError struct {
	// Category is the type of error.
	Category ErrorCategory
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Usage shows the correct command syntax (optional).
	Usage string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewValidationErrorWithUsage creates a validation error that includes correct usage syntax.
func NewValidationErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Validation,
		Message:     message,
		Usage:       usage,
		Remediation: remediation,
	}
}

// WrapWithMessage wraps an error with a custom message and category.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
		Err:         err,
	}
}
