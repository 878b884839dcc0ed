package cli

import (
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/beanconv/internal/errors"
)

func TestLoadConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, p("/project/beanconv.yaml"), []byte(`
source: conf
output: src/main/java
package: com.example.config
add_path: true
include:
  - "**/*-context.xml"
exclude:
  - legacy/**
shorten_types: true
clean: true
`), 0o644))

	cfg, err := LoadConfig(fs, p("/project/beanconv.yaml"))
	require.NoError(t, err)

	assert.Equal(t, &Config{
		SourceDir:    "conf",
		OutputDir:    "src/main/java",
		BasePackage:  "com.example.config",
		AddFilePath:  true,
		Includes:     []string{"**/*-context.xml"},
		Excludes:     []string{"legacy/**"},
		ShortenTypes: true,
		Clean:        true,
	}, cfg)
}

func TestDecodeConfig(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		cfg, err := DecodeConfig(strings.NewReader(""), "empty.yaml")
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := DecodeConfig(strings.NewReader("sources: conf\n"), "typo.yaml")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := DecodeConfig(strings.NewReader("dry_run: [1, 2]\n"), "bad.yaml")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
	})
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(afero.NewMemMapFs(), p("/nowhere.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
}

func TestConfig_Normalize(t *testing.T) {
	cfg := &Config{SourceDir: "conf", BasePackage: " com.example "}
	require.NoError(t, cfg.Normalize())

	assert.True(t, filepath.IsAbs(cfg.SourceDir))
	assert.True(t, filepath.IsAbs(cfg.OutputDir))
	assert.Equal(t, DefaultOutputDir, filepath.Base(cfg.OutputDir))
	assert.Equal(t, "com.example", cfg.BasePackage)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{SourceDir: "/src", OutputDir: "/out", BasePackage: "com.example"}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "default package", mutate: func(c *Config) { c.BasePackage = "" }},
		{name: "quiet alone", mutate: func(c *Config) { c.Quiet = true }},
		{
			name:    "missing source",
			mutate:  func(c *Config) { c.SourceDir = "" },
			wantErr: "SourceDir is required",
		},
		{
			name:    "keyword in package",
			mutate:  func(c *Config) { c.BasePackage = "com.class.config" },
			wantErr: "'com.class.config' is not a valid Java package name",
		},
		{
			name:    "trailing dot in package",
			mutate:  func(c *Config) { c.BasePackage = "com.example." },
			wantErr: "not a valid Java package name",
		},
		{
			name:    "quiet and verbose",
			mutate:  func(c *Config) { c.Quiet, c.Verbose = true, true },
			wantErr: "--quiet and --verbose cannot be combined",
		},
		{
			name:    "blank include",
			mutate:  func(c *Config) { c.Includes = []string{""} },
			wantErr: "Includes[0] is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateReportsEveryField(t *testing.T) {
	err := (&Config{BasePackage: "1com"}).Validate()
	require.Error(t, err)

	var multi *errors.MultipleErrors
	require.True(t, stderrors.As(err, &multi))
	assert.Equal(t, 3, multi.Count())
}
