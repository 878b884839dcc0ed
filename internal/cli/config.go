package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"

	"github.com/toyz/beanconv/internal/codemodel"
	"github.com/toyz/beanconv/internal/errors"
)

// DefaultOutputDir receives generated sources when no output directory is set
const DefaultOutputDir = "generated-sources"

// Config holds the configuration for a conversion run
type Config struct {
	// SourceDir is scanned for descriptors and is the base for package paths
	SourceDir string `yaml:"source" validate:"required"`

	// OutputDir receives the generated .java files below their package path
	OutputDir string `yaml:"output" validate:"required"`

	// BasePackage is the Java package of every class; empty means the default package
	BasePackage string `yaml:"package" validate:"omitempty,javapackage"`

	// AddFilePath appends the descriptor's directory below SourceDir to BasePackage
	AddFilePath bool `yaml:"add_path"`

	Includes []string `yaml:"include" validate:"dive,required"`
	Excludes []string `yaml:"exclude" validate:"dive,required"`

	ShortenTypes bool `yaml:"shorten_types"`
	DryRun       bool `yaml:"dry_run"`

	// Clean removes previously generated files from OutputDir before writing
	Clean bool `yaml:"clean"`

	Verbose bool `yaml:"verbose"`
	Quiet   bool `yaml:"quiet" validate:"excluded_with=Verbose"`
}

// LoadConfig reads a YAML configuration file. Unknown keys are rejected.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, errors.WrapConfigurationError(path, "open", err)
	}
	defer file.Close()

	return DecodeConfig(file, path)
}

// DecodeConfig decodes a YAML configuration from r; source names it in errors
func DecodeConfig(r io.Reader, source string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(cfg); err != nil {
		if stderrors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, errors.WrapConfigurationError(source, "decode", err).
			WithFile(source).
			WithSuggestion("Valid keys: source, output, package, add_path, include, exclude, shorten_types, dry_run, clean, verbose, quiet")
	}
	return cfg, nil
}

// Normalize fills defaults and makes the directories absolute
func (c *Config) Normalize() error {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	c.BasePackage = strings.TrimSpace(c.BasePackage)

	for _, dir := range []*string{&c.SourceDir, &c.OutputDir} {
		if *dir == "" {
			continue
		}
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return errors.WrapConfigurationError(*dir, "resolve", err)
		}
		*dir = abs
	}
	return nil
}

// Validate checks the configuration and reports every violation at once
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("javapackage", func(fl validator.FieldLevel) bool {
		return codemodel.IsPackageName(fl.Field().String())
	}); err != nil {
		return errors.Wrap(errors.ConfigurationErrorCode, "failed to register validation", err)
	}

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !stderrors.As(err, &invalid) {
		return errors.Wrap(errors.ConfigurationErrorCode, "invalid configuration", err)
	}

	collected := errors.NewMultipleErrors()
	for _, fieldErr := range invalid {
		collected.Add(fieldError(fieldErr))
	}
	return collected.ErrorOrNil()
}

func fieldError(fe validator.FieldError) *errors.BaseError {
	var message, suggestion string
	switch fe.Tag() {
	case "required":
		message = fmt.Sprintf("%s is required", fe.Field())
	case "javapackage":
		message = fmt.Sprintf("'%v' is not a valid Java package name", fe.Value())
		suggestion = "Use dot-separated identifiers that are not Java keywords, e.g. com.example.config"
	case "excluded_with":
		message = "--quiet and --verbose cannot be combined"
	default:
		message = fmt.Sprintf("%s fails the '%s' check", fe.Namespace(), fe.Tag())
	}

	err := errors.ConfigurationError("%s", message).
		WithContext("field", fe.Namespace())
	if suggestion != "" {
		err.WithSuggestion(suggestion)
	}
	return err
}
