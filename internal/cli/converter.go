package cli

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/toyz/beanconv/internal/descriptor"
	"github.com/toyz/beanconv/internal/errors"
	"github.com/toyz/beanconv/internal/generator"
	"github.com/toyz/beanconv/internal/metadata"
	"github.com/toyz/beanconv/internal/models"
	"github.com/toyz/beanconv/internal/scanner"
	"github.com/toyz/beanconv/internal/utils"
	"github.com/toyz/beanconv/internal/utils/fileops"
)

// Summary describes a finished conversion run
type Summary struct {
	RunID       string
	Descriptors int      // descriptors scanned
	Classes     int      // configuration classes generated
	Beans       int      // factory methods generated
	Skipped     int      // beans left out because they have no factory method equivalent
	Unresolved  int      // references typed as java.lang.Object
	Files       []string // written files, or the planned ones on a dry run
	Removed     []string // generated files removed by Clean
	DryRun      bool
	Duration    time.Duration
}

// planned is one generated class waiting to be written
type planned struct {
	path     string
	artifact *models.GeneratedArtifact
}

// Converter coordinates scan, parse, resolve, generate and write
type Converter struct {
	fs          afero.Fs
	fileOps     *fileops.FileOps
	diagnostics *utils.DiagnosticSystem
}

// NewConverter creates a converter over fs reporting through diagnostics
func NewConverter(fs afero.Fs, diagnostics *utils.DiagnosticSystem) *Converter {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	}
	return &Converter{
		fs:          fs,
		fileOps:     fileops.NewFileOps(fs),
		diagnostics: diagnostics,
	}
}

// Run converts every descriptor below cfg.SourceDir. All classes are
// generated in memory first; when any descriptor fails nothing is written
// and the collected errors are returned.
func (c *Converter) Run(ctx context.Context, cfg *Config) (*Summary, error) {
	startTime := time.Now()
	summary := &Summary{
		RunID:  uuid.NewString(),
		Files:  make([]string, 0),
		DryRun: cfg.DryRun,
	}
	c.diagnostics.Verbose("Run %s started at %s", summary.RunID, startTime.Format("15:04:05"))
	c.diagnostics.Debug("Source: %s, output: %s, package: %q", cfg.SourceDir, cfg.OutputDir, cfg.BasePackage)

	c.diagnostics.StartProgress("Scanning for descriptors")
	paths, err := scanner.NewDescriptorScanner(c.fs,
		scanner.WithIncludes(cfg.Includes...),
		scanner.WithExcludes(cfg.Excludes...),
	).Scan(cfg.SourceDir)
	if err != nil {
		c.diagnostics.EndProgress(false, "")
		return nil, err
	}
	summary.Descriptors = len(paths)
	if len(paths) == 0 {
		c.diagnostics.EndProgress(true, "")
		c.diagnostics.Warn("No descriptors found in %s", cfg.SourceDir)
		summary.Duration = time.Since(startTime)
		return summary, nil
	}
	c.diagnostics.EndProgress(true, "Found "+pluralize(len(paths), "descriptor"))

	c.diagnostics.StartProgress("Parsing descriptors")
	documents, err := c.parseAll(ctx, paths)
	if err != nil {
		c.diagnostics.EndProgress(false, "")
		return nil, err
	}
	c.diagnostics.EndProgress(true, "")

	c.resolveReferences(documents, summary)

	c.diagnostics.StartProgress("Generating configuration classes")
	plan, err := c.generateAll(ctx, cfg, documents, summary)
	if err != nil {
		c.diagnostics.EndProgress(false, "")
		return nil, err
	}
	c.diagnostics.EndProgress(true, "Generated "+pluralize(len(plan), "configuration class"))

	if cfg.Clean {
		if err := c.clean(cfg, summary); err != nil {
			return nil, err
		}
	}

	if err := c.writeAll(ctx, cfg, plan, summary); err != nil {
		return nil, err
	}

	summary.Duration = time.Since(startTime)
	return summary, nil
}

// parseAll reads every descriptor, collecting failures instead of stopping at the first
func (c *Converter) parseAll(ctx context.Context, paths []string) ([]*descriptor.Document, error) {
	documents := make([]*descriptor.Document, 0, len(paths))
	collected := errors.NewMultipleErrors()

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := c.parse(path)
		if err != nil {
			collected.AddError(err)
			continue
		}
		c.diagnostics.Debug("Parsed %s: %d beans, %d skipped", path, len(doc.Unit.Beans), len(doc.Skipped))
		documents = append(documents, doc)
	}

	if err := collected.ErrorOrNil(); err != nil {
		return nil, err
	}
	return documents, nil
}

func (c *Converter) parse(path string) (*descriptor.Document, error) {
	file, err := c.fileOps.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return descriptor.Parse(file, path)
}

// resolveReferences types every bean reference across all descriptors
func (c *Converter) resolveReferences(documents []*descriptor.Document, summary *Summary) {
	index := descriptor.NewIndex()
	for _, doc := range documents {
		index.Add(doc)
	}

	for _, doc := range documents {
		for _, u := range index.Resolve(doc) {
			summary.Unresolved++
			c.diagnostics.Warn("%s: bean '%s' references unknown bean '%s', typed as %s",
				u.Source, u.Bean, u.Reference, descriptor.FallbackClass)
		}
	}
}

func (c *Converter) generateAll(ctx context.Context, cfg *Config, documents []*descriptor.Document, summary *Summary) ([]planned, error) {
	gen := generator.NewGenerator(generator.WithShortenTypes(cfg.ShortenTypes))
	plan := make([]planned, 0, len(documents))
	byPath := make(map[string]string)
	collected := errors.NewMultipleErrors()

	for _, doc := range documents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, s := range doc.Skipped {
			summary.Skipped++
			c.diagnostics.Warn("%s: skipped bean '%s': %s", doc.Source, s.Bean, s.Reason)
		}
		if len(doc.Unit.Beans) == 0 {
			c.diagnostics.Info("%s: no convertible beans, no class generated", doc.Source)
			continue
		}

		meta, err := metadata.Build(doc.Source, cfg.SourceDir, cfg.BasePackage, cfg.AddFilePath)
		if err != nil {
			collected.AddError(withFile(err, doc.Source))
			continue
		}

		artifact, err := gen.Generate(meta.PackageName, meta.ClassName, doc.Unit)
		if err != nil {
			collected.AddError(withFile(err, doc.Source))
			continue
		}

		path := filepath.Join(cfg.OutputDir, filepath.FromSlash(artifact.RelativePath))
		if previous, exists := byPath[path]; exists {
			collected.Add(errors.ConfigurationError("descriptors '%s' and '%s' both generate '%s'", previous, doc.Source, path).
				WithFile(doc.Source).
				WithContext("path", path).
				WithContext("first_descriptor", previous).
				WithSuggestion("Rename one of the descriptors or enable --add-path to separate packages"))
			continue
		}
		byPath[path] = doc.Source

		summary.Classes++
		summary.Beans += len(artifact.FactoryMethods)
		plan = append(plan, planned{path: path, artifact: artifact})
	}

	if err := collected.ErrorOrNil(); err != nil {
		return nil, err
	}
	return plan, nil
}

func (c *Converter) clean(cfg *Config, summary *Summary) error {
	cleaner := NewCleaner(c.fs)
	if cfg.DryRun {
		files, err := cleaner.FindGeneratedFiles(cfg.OutputDir)
		if err != nil {
			return err
		}
		summary.Removed = files
		return nil
	}

	c.diagnostics.StartProgress("Removing previously generated files")
	removed, err := cleaner.CleanGeneratedFiles(cfg.OutputDir)
	summary.Removed = removed
	if err != nil {
		c.diagnostics.EndProgress(false, "")
		return err
	}
	c.diagnostics.EndProgress(true, "Removed "+pluralize(len(removed), "generated file"))
	return nil
}

func (c *Converter) writeAll(ctx context.Context, cfg *Config, plan []planned, summary *Summary) error {
	if cfg.DryRun {
		for _, p := range plan {
			summary.Files = append(summary.Files, p.path)
		}
		return nil
	}

	c.diagnostics.StartProgress("Writing configuration classes")
	for _, p := range plan {
		if err := ctx.Err(); err != nil {
			c.diagnostics.EndProgress(false, "")
			return err
		}
		if err := c.fileOps.WriteFileAtomic(p.path, []byte(p.artifact.Content), 0o644); err != nil {
			c.diagnostics.EndProgress(false, "")
			return err
		}
		c.diagnostics.Verbose("Wrote %s", relativeTo(cfg.OutputDir, p.path))
		summary.Files = append(summary.Files, p.path)
	}
	c.diagnostics.EndProgress(true, "Wrote "+pluralize(len(plan), "file"))
	return nil
}

// withFile records the descriptor on errors that do not carry one yet
func withFile(err error, source string) error {
	if ce, ok := err.(errors.ConverterError); ok && ce.Location().File != "" {
		return err
	}
	if located, ok := err.(interface {
		WithFile(string) *errors.BaseError
	}); ok {
		located.WithFile(source)
	}
	return err
}

func pluralize(n int, noun string) string {
	switch {
	case n == 1:
		return "1 " + noun
	case noun[len(noun)-1] == 's':
		return strconv.Itoa(n) + " " + noun + "es"
	default:
		return strconv.Itoa(n) + " " + noun + "s"
	}
}
