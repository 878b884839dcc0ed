package errors

import "fmt"

// ReferenceError is returned when a bean reference has no matching factory
// method parameter
type ReferenceError struct {
	*BaseError
	Reference string // reference name that could not be resolved
	Declared  []string
}

// NewReferenceError creates a reference resolution error
func NewReferenceError(reference string, declared []string) *ReferenceError {
	err := &ReferenceError{
		BaseError: Newf(ReferenceResolutionErrorCode, "reference '%s' does not match any factory method parameter", reference).
			WithContext("reference", reference).
			WithContext("declared_parameters", declared).
			WithSuggestion("Check that every ref attribute names a bean reference collected for this factory method"),
		Reference: reference,
		Declared:  declared,
	}
	return err
}

// LiteralError is returned when a constant cannot be coerced to its declared type
type LiteralError struct {
	*BaseError
	Value    string // literal text
	Type     string // declared type
	Expected string // Java literal kind, e.g. int
}

// NewLiteralError creates a literal coercion error
func NewLiteralError(value, typeName, expected string, cause error) *LiteralError {
	base := Wrapf(LiteralCoercionErrorCode, cause, "constant '%s' is not a valid %s for type %s", value, expected, typeName).
		WithContext("value", value).
		WithContext("type", typeName).
		WithSuggestions(
			fmt.Sprintf("Fix the value so it parses as a %s", expected),
			"Remove the type attribute to pass the value as a string",
		)
	return &LiteralError{
		BaseError: base,
		Value:     value,
		Type:      typeName,
		Expected:  expected,
	}
}

// DescriptorError is returned when a descriptor cannot be read as a bean document
type DescriptorError struct {
	*BaseError
	Element string // XML element being processed, if known
}

// NewDescriptorError creates a descriptor error for the given source
func NewDescriptorError(source, message string) *DescriptorError {
	return &DescriptorError{
		BaseError: New(DescriptorErrorCode, message).WithFile(source),
	}
}

// WithElement records the element being processed
func (e *DescriptorError) WithElement(element string) *DescriptorError {
	e.Element = element
	e.BaseError.WithContext("element", element)
	return e
}

// WithCause adds an underlying error cause
func (e *DescriptorError) WithCause(cause error) *DescriptorError {
	e.BaseError.WithCause(cause)
	return e
}

// WithBean sets the bean the error belongs to
func (e *DescriptorError) WithBean(bean string) *DescriptorError {
	e.BaseError.WithBean(bean)
	return e
}

// GenerationError represents an error that occurred while emitting a class
type GenerationError struct {
	*BaseError
	ClassName string // configuration class being generated
	Method    string // factory method being generated, if any
}

// NewGenerationError creates a generation error
func NewGenerationError(className, method, message string) *GenerationError {
	base := New(GenerationErrorCode, message)
	if className != "" {
		base.WithContext("class", className)
	}
	if method != "" {
		base.WithContext("method", method)
	}
	return &GenerationError{
		BaseError: base,
		ClassName: className,
		Method:    method,
	}
}
