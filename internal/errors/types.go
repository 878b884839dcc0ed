package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ConverterError defines the base interface for all converter errors
type ConverterError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode represents the type of error that occurred
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// Input errors
	ConfigurationErrorCode
	ScanErrorCode
	DescriptorErrorCode

	// Generation errors
	ReferenceResolutionErrorCode
	LiteralCoercionErrorCode
	DuplicateDefinitionErrorCode
	GenerationErrorCode

	// Output errors
	FileSystemErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case ConfigurationErrorCode:
		return "ConfigurationError"
	case ScanErrorCode:
		return "ScanError"
	case DescriptorErrorCode:
		return "DescriptorError"
	case ReferenceResolutionErrorCode:
		return "ReferenceResolutionError"
	case LiteralCoercionErrorCode:
		return "LiteralCoercionError"
	case DuplicateDefinitionErrorCode:
		return "DuplicateDefinitionError"
	case GenerationErrorCode:
		return "GenerationError"
	case FileSystemErrorCode:
		return "FileSystemError"
	default:
		return "UnknownError"
	}
}

// SourceLocation represents where an error occurred in a descriptor
type SourceLocation struct {
	File string // descriptor path
	Bean string // bean id or class the error belongs to
}

// String returns a formatted string representation of the location
func (s SourceLocation) String() string {
	if s.File == "" {
		if s.Bean == "" {
			return "unknown location"
		}
		return fmt.Sprintf("bean '%s'", s.Bean)
	}
	if s.Bean == "" {
		return s.File
	}
	return fmt.Sprintf("%s (bean '%s')", s.File, s.Bean)
}

// IsEmpty returns true if the location has no useful information
func (s SourceLocation) IsEmpty() bool {
	return s.File == "" && s.Bean == ""
}

// BaseError provides a common implementation of the ConverterError interface
type BaseError struct {
	Code        ErrorCode              // type of error
	Message     string                 // error message
	Loc         SourceLocation         // where the error occurred
	Cause       error                  // underlying error cause
	ContextData map[string]interface{} // additional context information
	Hints       []string               // helpful suggestions for fixing the error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Loc.IsEmpty() {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Loc.String(), msg)
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

// Location returns the source location where the error occurred
func (e *BaseError) Location() SourceLocation {
	return e.Loc
}

// Context returns the error context data
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return make(map[string]interface{})
	}
	return e.ContextData
}

// Suggestions returns helpful suggestions for fixing the error
func (e *BaseError) Suggestions() []string {
	return e.Hints
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// WithFile sets the descriptor file, keeping any bean already recorded
func (e *BaseError) WithFile(file string) *BaseError {
	e.Loc.File = file
	return e
}

// WithBean sets the bean the error belongs to
func (e *BaseError) WithBean(bean string) *BaseError {
	e.Loc.Bean = bean
	return e
}

// WithCause adds an underlying error cause
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

// WithContext adds context data to the error
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion adds a helpful suggestion for fixing the error
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// WithSuggestions adds multiple helpful suggestions
func (e *BaseError) WithSuggestions(suggestions ...string) *BaseError {
	e.Hints = append(e.Hints, suggestions...)
	return e
}

// New creates a new BaseError with the specified code and message
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Hints:   make([]string, 0),
	}
}

// Newf creates a new BaseError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new error that wraps another error
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Hints:   make([]string, 0),
	}
}

// Wrapf creates a new error that wraps another error with formatted message
func Wrapf(code ErrorCode, cause error, format string, args ...interface{}) *BaseError {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// MultipleErrors represents multiple errors collected together
type MultipleErrors struct {
	Errors []ConverterError
}

// Error implements the error interface
func (e *MultipleErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var messages []string
	for i, err := range e.Errors {
		messages = append(messages, fmt.Sprintf("  %d. %s", i+1, err.Error()))
	}

	return fmt.Sprintf("multiple errors (%d total):\n%s", len(e.Errors), strings.Join(messages, "\n"))
}

// ErrorCode returns the error code (uses the first error's code)
func (e *MultipleErrors) ErrorCode() ErrorCode {
	if len(e.Errors) == 0 {
		return UnknownErrorCode
	}
	return e.Errors[0].ErrorCode()
}

// Location returns the location of the first error
func (e *MultipleErrors) Location() SourceLocation {
	if len(e.Errors) == 0 {
		return SourceLocation{}
	}
	return e.Errors[0].Location()
}

// Context returns combined context from all errors
func (e *MultipleErrors) Context() map[string]interface{} {
	combined := make(map[string]interface{})
	for i, err := range e.Errors {
		for k, v := range err.Context() {
			// Prefix keys with error index to avoid conflicts
			combined[fmt.Sprintf("error_%d_%s", i, k)] = v
		}
	}
	return combined
}

// Suggestions returns combined suggestions from all errors
func (e *MultipleErrors) Suggestions() []string {
	var suggestions []string
	for _, err := range e.Errors {
		suggestions = append(suggestions, err.Suggestions()...)
	}
	return suggestions
}

// Unwrap returns the collected errors so errors.Is and errors.As see all of them
func (e *MultipleErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Add adds an error to the collection
func (e *MultipleErrors) Add(err ConverterError) {
	e.Errors = append(e.Errors, err)
}

// AddError adds any error, wrapping plain errors with UnknownErrorCode
func (e *MultipleErrors) AddError(err error) {
	if err == nil {
		return
	}
	var ce ConverterError
	if stderrors.As(err, &ce) {
		e.Add(ce)
		return
	}
	e.Add(Wrap(UnknownErrorCode, "unexpected error", err))
}

// IsEmpty returns true if there are no errors
func (e *MultipleErrors) IsEmpty() bool {
	return len(e.Errors) == 0
}

// Count returns the number of errors
func (e *MultipleErrors) Count() int {
	return len(e.Errors)
}

// HasCode returns true if any error of the specified type exists
func (e *MultipleErrors) HasCode(code ErrorCode) bool {
	for _, err := range e.Errors {
		if err.ErrorCode() == code {
			return true
		}
	}
	return false
}

// ErrorOrNil returns nil for an empty collection, the single error for a
// collection of one, and the collection otherwise
func (e *MultipleErrors) ErrorOrNil() error {
	switch len(e.Errors) {
	case 0:
		return nil
	case 1:
		return e.Errors[0]
	default:
		return e
	}
}

// NewMultipleErrors creates a new MultipleErrors collection
func NewMultipleErrors() *MultipleErrors {
	return &MultipleErrors{
		Errors: make([]ConverterError, 0),
	}
}

// HasCode reports whether err or anything it wraps carries the given code
func HasCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	if multi, ok := err.(*MultipleErrors); ok {
		return multi.HasCode(code)
	}
	if ce, ok := err.(ConverterError); ok && ce.ErrorCode() == code {
		return true
	}
	switch wrapped := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range wrapped.Unwrap() {
			if HasCode(inner, code) {
				return true
			}
		}
	case interface{ Unwrap() error }:
		return HasCode(wrapped.Unwrap(), code)
	}
	return false
}

// CodeOf returns the code of the first ConverterError in err's chain
func CodeOf(err error) ErrorCode {
	var ce ConverterError
	if stderrors.As(err, &ce) {
		return ce.ErrorCode()
	}
	return UnknownErrorCode
}
