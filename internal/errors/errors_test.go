package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode_String(t *testing.T) {
	tests := map[ErrorCode]string{
		ConfigurationErrorCode:       "ConfigurationError",
		ScanErrorCode:                "ScanError",
		DescriptorErrorCode:          "DescriptorError",
		ReferenceResolutionErrorCode: "ReferenceResolutionError",
		LiteralCoercionErrorCode:     "LiteralCoercionError",
		DuplicateDefinitionErrorCode: "DuplicateDefinitionError",
		GenerationErrorCode:          "GenerationError",
		FileSystemErrorCode:          "FileSystemError",
		UnknownErrorCode:             "UnknownError",
		ErrorCode(99):                "UnknownError",
	}

	for code, expected := range tests {
		assert.Equal(t, expected, code.String())
	}
}

func TestBaseError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *BaseError
		expected string
	}{
		{
			name:     "message only",
			err:      New(GenerationErrorCode, "boom"),
			expected: "boom",
		},
		{
			name:     "with cause",
			err:      Wrap(FileSystemErrorCode, "write failed", io.ErrShortWrite),
			expected: "write failed: short write",
		},
		{
			name:     "with file",
			err:      New(DescriptorErrorCode, "bad index").WithFile("app.xml"),
			expected: "app.xml: bad index",
		},
		{
			name:     "with file and bean",
			err:      New(DescriptorErrorCode, "bad index").WithFile("app.xml").WithBean("pool"),
			expected: "app.xml (bean 'pool'): bad index",
		},
		{
			name:     "bean only",
			err:      New(GenerationErrorCode, "bad").WithBean("pool"),
			expected: "bean 'pool': bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestBaseError_Fluent(t *testing.T) {
	err := Newf(ConfigurationErrorCode, "bad %s", "package").
		WithContext("field", "BasePackage").
		WithSuggestion("one").
		WithSuggestions("two", "three").
		WithFile("cfg.yaml")

	assert.Equal(t, ConfigurationErrorCode, err.ErrorCode())
	assert.Equal(t, "bad package", err.Message)
	assert.Equal(t, map[string]interface{}{"field": "BasePackage"}, err.Context())
	assert.Equal(t, []string{"one", "two", "three"}, err.Suggestions())
	assert.Equal(t, "cfg.yaml", err.Location().File)
	assert.NotNil(t, New(UnknownErrorCode, "x").Context())
}

func TestDomainErrors(t *testing.T) {
	t.Run("reference", func(t *testing.T) {
		err := NewReferenceError("repo", []string{"cache", "clock"})
		err.WithBean("service")

		assert.Equal(t, ReferenceResolutionErrorCode, err.ErrorCode())
		assert.Equal(t, "repo", err.Reference)
		assert.Equal(t, []string{"cache", "clock"}, err.Context()["declared_parameters"])
		assert.Contains(t, err.Error(), "bean 'service'")
	})

	t.Run("literal", func(t *testing.T) {
		cause := fmt.Errorf("out of range")
		err := NewLiteralError("99999999999", "java.lang.Integer", "int", cause)

		assert.Equal(t, LiteralCoercionErrorCode, err.ErrorCode())
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "constant '99999999999' is not a valid int for type java.lang.Integer: out of range", err.Error())
	})

	t.Run("descriptor", func(t *testing.T) {
		cause := fmt.Errorf("XML syntax error")
		err := WrapDescriptorError("app.xml", cause).WithElement("beans").WithBean("x")

		assert.Equal(t, DescriptorErrorCode, err.ErrorCode())
		assert.Equal(t, "beans", err.Element)
		assert.Equal(t, SourceLocation{File: "app.xml", Bean: "x"}, err.Location())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("generation", func(t *testing.T) {
		err := NewGenerationError("AppConfig", "", "cannot emit")
		assert.Equal(t, "AppConfig", err.Context()["class"])
		_, hasMethod := err.Context()["method"]
		assert.False(t, hasMethod)
	})
}

func TestMultipleErrors(t *testing.T) {
	multi := NewMultipleErrors()
	assert.True(t, multi.IsEmpty())
	assert.NoError(t, multi.ErrorOrNil())

	first := ConfigurationError("first")
	multi.Add(first)
	assert.Same(t, first, multi.ErrorOrNil())

	multi.AddError(nil)
	multi.AddError(NewReferenceError("r", nil))
	multi.AddError(io.EOF)

	require.Equal(t, 3, multi.Count())
	assert.Equal(t, multi, multi.ErrorOrNil())
	assert.Equal(t, ConfigurationErrorCode, multi.ErrorCode())
	assert.True(t, multi.HasCode(ReferenceResolutionErrorCode))
	assert.True(t, multi.HasCode(UnknownErrorCode))
	assert.ErrorIs(t, multi, io.EOF)
	assert.Contains(t, multi.Error(), "multiple errors (3 total):\n  1. first")
}

func TestHasCode(t *testing.T) {
	inner := ScanError("/src", "not a directory")
	wrapped := fmt.Errorf("run: %w", inner)

	assert.True(t, HasCode(wrapped, ScanErrorCode))
	assert.False(t, HasCode(wrapped, FileSystemErrorCode))
	assert.False(t, HasCode(nil, ScanErrorCode))

	fsErr := WrapFileSystemError("write", "/out/A.java", inner)
	assert.True(t, HasCode(fsErr, ScanErrorCode), "codes are found through causes")

	joined := stderrors.Join(io.EOF, DuplicateDefinitionError("method", "dataSource"))
	assert.True(t, HasCode(joined, DuplicateDefinitionErrorCode))

	assert.Equal(t, ScanErrorCode, CodeOf(wrapped))
	assert.Equal(t, UnknownErrorCode, CodeOf(io.EOF))
}
