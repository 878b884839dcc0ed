package fileops

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/toyz/beanconv/internal/errors"
)

// PathValidator provides centralized path validation and cleaning functionality
type PathValidator struct {
	fs afero.Fs
}

// NewPathValidator creates a new PathValidator over fs
func NewPathValidator(fs afero.Fs) *PathValidator {
	return &PathValidator{fs: fs}
}

// ValidateAndClean validates and cleans a file path, ensuring it exists
func (pv *PathValidator) ValidateAndClean(filePath string) (string, error) {
	cleanPath, err := pv.ValidateAndCleanOptional(filePath)
	if err != nil {
		return "", err
	}

	if !pv.Exists(cleanPath) {
		return "", errors.Newf(errors.FileSystemErrorCode, "file does not exist: %s", cleanPath).
			WithContext("path", cleanPath)
	}

	return cleanPath, nil
}

// ValidateAndCleanOptional validates and cleans a path but doesn't require it to exist
func (pv *PathValidator) ValidateAndCleanOptional(filePath string) (string, error) {
	if filePath == "" {
		return "", errors.New(errors.FileSystemErrorCode, "file path cannot be empty")
	}

	cleanPath := filepath.Clean(filePath)

	// .. may only lead a relative path
	for _, part := range strings.Split(filepath.ToSlash(cleanPath), "/") {
		if part == ".." && !strings.HasPrefix(cleanPath, "..") {
			return "", errors.Newf(errors.FileSystemErrorCode, "path traversal not allowed in file path: %s", filePath)
		}
	}

	return cleanPath, nil
}

// Exists checks if a path exists
func (pv *PathValidator) Exists(path string) bool {
	_, err := pv.fs.Stat(path)
	return !os.IsNotExist(err)
}

// IsDir checks if a path exists and is a directory
func (pv *PathValidator) IsDir(path string) bool {
	info, err := pv.fs.Stat(path)
	return err == nil && info.IsDir()
}
