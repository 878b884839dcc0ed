package errors

import "fmt"

// Common error wrapping patterns used throughout the codebase

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// WrapDescriptorError wraps an error raised while reading a descriptor
func WrapDescriptorError(source string, cause error) *DescriptorError {
	return NewDescriptorError(source, "failed to parse descriptor").WithCause(cause)
}

// WrapScanError wraps an error raised while scanning for descriptors
func WrapScanError(root string, cause error) *BaseError {
	return Wrapf(ScanErrorCode, cause, "failed to scan '%s'", root).
		WithContext("root", root)
}

// Convenience functions for common operations

// ConfigurationError creates a configuration error without wrapping
func ConfigurationError(format string, args ...interface{}) *BaseError {
	return Newf(ConfigurationErrorCode, format, args...)
}

// ScanError creates a scan error without wrapping
func ScanError(root, reason string) *BaseError {
	return Newf(ScanErrorCode, "cannot scan '%s': %s", root, reason).
		WithContext("root", root)
}

// DuplicateDefinitionError reports two definitions that collide on one name
func DuplicateDefinitionError(kind, name string) *BaseError {
	return Newf(DuplicateDefinitionErrorCode, "duplicate %s '%s'", kind, name).
		WithContext("kind", kind).
		WithContext("name", name)
}
