package cli

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/toyz/beanconv/internal/errors"
	"github.com/toyz/beanconv/internal/generator"
	"github.com/toyz/beanconv/internal/utils/fileops"
)

// generatedMarker is the first line of every file the generator writes
var generatedMarker = "// " + generator.GeneratedHeader

// Cleaner removes previously generated configuration classes. Hand-written
// .java files next to them are left alone.
type Cleaner struct {
	fileOps *fileops.FileOps
}

// NewCleaner creates a new cleaner over fs
func NewCleaner(fs afero.Fs) *Cleaner {
	return &Cleaner{fileOps: fileops.NewFileOps(fs)}
}

// FindGeneratedFiles lists the generated files below dir, sorted. A missing
// directory holds nothing.
func (c *Cleaner) FindGeneratedFiles(dir string) ([]string, error) {
	found := make([]string, 0)
	if !c.fileOps.IsDir(dir) {
		return found, nil
	}

	err := afero.Walk(c.fileOps.Fs(), dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".java") {
			return nil
		}

		generated, err := c.isGenerated(path)
		if err != nil {
			return err
		}
		if generated {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapFileSystemError("walk", dir, err)
	}

	sort.Strings(found)
	return found, nil
}

// CleanGeneratedFiles removes the generated files below dir and returns their paths
func (c *Cleaner) CleanGeneratedFiles(dir string) ([]string, error) {
	files, err := c.FindGeneratedFiles(dir)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(files))
	for _, file := range files {
		if err := c.fileOps.RemoveFile(file); err != nil {
			return removed, err
		}
		removed = append(removed, file)
	}
	return removed, nil
}

func (c *Cleaner) isGenerated(path string) (bool, error) {
	file, err := c.fileOps.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	head := make([]byte, len(generatedMarker))
	if _, err := io.ReadFull(file, head); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return false, nil
		}
		return false, errors.WrapFileSystemError("read", path, err)
	}
	return string(head) == generatedMarker, nil
}

// relativeTo shortens path for display when it lies below base
func relativeTo(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
