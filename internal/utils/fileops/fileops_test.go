package fileops

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/beanconv/internal/errors"
)

func TestWriteFileAtomic(t *testing.T) {
	fs := afero.NewMemMapFs()
	ops := NewFileOps(fs)
	target := filepath.FromSlash("/out/com/example/AppConfig.java")

	require.NoError(t, ops.WriteFileAtomic(target, []byte("first"), 0o644))
	require.NoError(t, ops.WriteFileAtomic(target, []byte("second"), 0o644))

	content, err := afero.ReadFile(fs, target)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))

	entries, err := afero.ReadDir(fs, filepath.Dir(target))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not remain")
	assert.Equal(t, "AppConfig.java", entries[0].Name())
}

func TestWriteFileAtomic_ReadOnlyFs(t *testing.T) {
	ops := NewFileOps(afero.NewReadOnlyFs(afero.NewMemMapFs()))

	err := ops.WriteFileAtomic(filepath.FromSlash("/out/A.java"), []byte("x"), 0o644)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.FileSystemErrorCode))
}

func TestOpen_Missing(t *testing.T) {
	ops := NewFileOps(afero.NewMemMapFs())

	_, err := ops.Open(filepath.FromSlash("/missing.xml"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.FileSystemErrorCode))
}

func TestRemoveFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	ops := NewFileOps(fs)
	path := filepath.FromSlash("/out/A.java")
	require.NoError(t, afero.WriteFile(fs, path, []byte("x"), 0o644))

	require.NoError(t, ops.RemoveFile(path))
	assert.False(t, ops.Exists(path))
	assert.Error(t, ops.RemoveFile(path))
}

func TestPathValidator(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(filepath.FromSlash("/src/conf"), 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.FromSlash("/src/conf/a.xml"), []byte("x"), 0o644))
	pv := NewPathValidator(fs)

	t.Run("clean", func(t *testing.T) {
		cleaned, err := pv.ValidateAndCleanOptional(filepath.FromSlash("/src/./conf/"))
		require.NoError(t, err)
		assert.Equal(t, filepath.FromSlash("/src/conf"), cleaned)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := pv.ValidateAndCleanOptional("")
		assert.Error(t, err)
	})

	t.Run("leading parent allowed", func(t *testing.T) {
		cleaned, err := pv.ValidateAndCleanOptional(filepath.FromSlash("../conf"))
		require.NoError(t, err)
		assert.Equal(t, filepath.FromSlash("../conf"), cleaned)
	})

	t.Run("kinds", func(t *testing.T) {
		assert.True(t, pv.IsDir(filepath.FromSlash("/src/conf")))
		assert.False(t, pv.IsDir(filepath.FromSlash("/src/conf/a.xml")))
		assert.True(t, pv.Exists(filepath.FromSlash("/src/conf/a.xml")))
		assert.False(t, pv.Exists(filepath.FromSlash("/src/other")))
	})
}
