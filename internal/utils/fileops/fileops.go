package fileops

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileOps provides a unified interface for common file operations
// combining path validation and error handling over one filesystem
type FileOps struct {
	fs            afero.Fs
	pathValidator *PathValidator
	errorWrapper  *ErrorWrapper
}

// NewFileOps creates a new FileOps instance over fs
func NewFileOps(fs afero.Fs) *FileOps {
	return &FileOps{
		fs:            fs,
		pathValidator: NewPathValidator(fs),
		errorWrapper:  NewErrorWrapper(),
	}
}

// Fs returns the underlying filesystem
func (fo *FileOps) Fs() afero.Fs {
	return fo.fs
}

// Open opens an existing file for reading
func (fo *FileOps) Open(filePath string) (afero.File, error) {
	cleanPath, err := fo.pathValidator.ValidateAndClean(filePath)
	if err != nil {
		return nil, err
	}

	file, err := fo.fs.Open(cleanPath)
	if err != nil {
		return nil, fo.errorWrapper.WrapFileReadError(cleanPath, err)
	}
	return file, nil
}

// WriteFileAtomic writes content to a temporary file next to filePath and
// renames it into place, creating parent directories as needed. Readers
// never observe a partially written file.
func (fo *FileOps) WriteFileAtomic(filePath string, content []byte, perm os.FileMode) error {
	cleanPath, err := fo.pathValidator.ValidateAndCleanOptional(filePath)
	if err != nil {
		return err
	}

	dir := filepath.Dir(cleanPath)
	if err := fo.fs.MkdirAll(dir, 0o755); err != nil {
		return fo.errorWrapper.WrapDirectoryCreateError(dir, err)
	}

	tmp, err := afero.TempFile(fo.fs, dir, "."+filepath.Base(cleanPath)+".*.tmp")
	if err != nil {
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		fo.fs.Remove(tmpName)
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}
	if err := tmp.Close(); err != nil {
		fo.fs.Remove(tmpName)
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}
	if err := fo.fs.Chmod(tmpName, perm); err != nil {
		fo.fs.Remove(tmpName)
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}
	if err := fo.fs.Rename(tmpName, cleanPath); err != nil {
		fo.fs.Remove(tmpName)
		return fo.errorWrapper.WrapRenameError(cleanPath, err)
	}

	return nil
}

// RemoveFile removes a file with path validation and error handling
func (fo *FileOps) RemoveFile(filePath string) error {
	cleanPath, err := fo.pathValidator.ValidateAndClean(filePath)
	if err != nil {
		return err
	}

	if err := fo.fs.Remove(cleanPath); err != nil {
		return fo.errorWrapper.WrapFileRemovalError(cleanPath, err)
	}
	return nil
}

// Exists checks if a path exists using the path validator
func (fo *FileOps) Exists(path string) bool {
	return fo.pathValidator.Exists(path)
}

// IsDir checks if a path is a directory using the path validator
func (fo *FileOps) IsDir(path string) bool {
	return fo.pathValidator.IsDir(path)
}
