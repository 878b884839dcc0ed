package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/toyz/beanconv/internal/cli"
	"github.com/toyz/beanconv/internal/utils"
)

// errReported marks failures that were already printed
var errReported = errors.New("conversion failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(afero.NewOsFs()).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// flags mirrors the configuration file keys
type flags struct {
	configFile   string
	output       string
	basePackage  string
	addPath      bool
	includes     []string
	excludes     []string
	shortenTypes bool
	dryRun       bool
	clean        bool
	verbose      bool
	quiet        bool
}

func newRootCommand(fs afero.Fs) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "beanconv [flags] [source-dir]",
		Short: "Convert XML bean descriptors into Java @Configuration classes",
		Long: `beanconv scans a directory for XML bean descriptors and writes one
@Configuration class per descriptor, with a @Bean factory method per bean.

Nothing is written unless every descriptor converts.`,
		Example: `  beanconv --package com.example.config --out src/main/java src/main/resources
  beanconv --add-path --include '**/*-context.xml' --exclude 'legacy/**' conf
  beanconv --config beanconv.yaml --dry-run`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fs, &f, args)
		},
	}

	flagSet := cmd.Flags()
	flagSet.StringVarP(&f.configFile, "config", "c", "", "YAML configuration file; flags override its values")
	flagSet.StringVarP(&f.output, "out", "o", "", "output directory for generated sources (default \""+cli.DefaultOutputDir+"\")")
	flagSet.StringVarP(&f.basePackage, "package", "p", "", "Java package of the generated classes")
	flagSet.BoolVar(&f.addPath, "add-path", false, "append each descriptor's directory below the source dir to the package")
	flagSet.StringSliceVar(&f.includes, "include", nil, "glob of descriptors to convert (default \"**/*.xml\")")
	flagSet.StringSliceVar(&f.excludes, "exclude", nil, "glob of files to leave out, in addition to build directories")
	flagSet.BoolVar(&f.shortenTypes, "shorten-types", false, "import bean classes and refer to them by simple name")
	flagSet.BoolVar(&f.dryRun, "dry-run", false, "print the files that would be written without writing them")
	flagSet.BoolVar(&f.clean, "clean", false, "remove previously generated classes from the output directory first")
	flagSet.BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose output and detailed error reporting")
	flagSet.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")

	return cmd
}

func run(cmd *cobra.Command, fs afero.Fs, f *flags, args []string) error {
	reporter := cli.NewDiagnosticReporter(f.verbose).WithWriter(cmd.ErrOrStderr())

	cfg, err := loadConfig(cmd, fs, f, args)
	if err != nil {
		reporter.ReportError(err)
		return errReported
	}

	diagnostics := newDiagnostics(cmd, cfg)
	diagnostics.Header("XML bean descriptor converter")
	if cfg.DryRun {
		diagnostics.Info("Dry run, nothing will be written")
	}

	if cfg.Verbose {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Source: %s", cfg.SourceDir)
		diagnostics.List("Output: %s", cfg.OutputDir)
		diagnostics.List("Package: %q (add path: %t)", cfg.BasePackage, cfg.AddFilePath)
		diagnostics.Subsection("Conversion")
	}

	summary, err := cli.NewConverter(fs, diagnostics).Run(cmd.Context(), cfg)
	if err != nil {
		reporter.ReportError(err)
		return errReported
	}

	printSummary(diagnostics, cfg, summary)
	return nil
}

// loadConfig layers the configuration file, the flags set on the command
// line and the positional source directory, then validates the result
func loadConfig(cmd *cobra.Command, fs afero.Fs, f *flags, args []string) (*cli.Config, error) {
	cfg := &cli.Config{}
	if f.configFile != "" {
		loaded, err := cli.LoadConfig(fs, f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if len(args) == 1 {
		cfg.SourceDir = args[0]
	}
	if changed("out") {
		cfg.OutputDir = f.output
	}
	if changed("package") {
		cfg.BasePackage = f.basePackage
	}
	if changed("add-path") {
		cfg.AddFilePath = f.addPath
	}
	if changed("include") {
		cfg.Includes = f.includes
	}
	if changed("exclude") {
		cfg.Excludes = f.excludes
	}
	if changed("shorten-types") {
		cfg.ShortenTypes = f.shortenTypes
	}
	if changed("dry-run") {
		cfg.DryRun = f.dryRun
	}
	if changed("clean") {
		cfg.Clean = f.clean
	}
	if changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if changed("quiet") {
		cfg.Quiet = f.quiet
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newDiagnostics(cmd *cobra.Command, cfg *cli.Config) *utils.DiagnosticSystem {
	var diagnostics *utils.DiagnosticSystem
	switch {
	case cfg.Quiet:
		diagnostics = utils.NewQuietDiagnostics()
	case cfg.Verbose:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if out != os.Stdout || errOut != os.Stderr {
		diagnostics.WithOutput(out, errOut)
	}
	return diagnostics
}

func printSummary(diagnostics *utils.DiagnosticSystem, cfg *cli.Config, summary *cli.Summary) {
	stats := map[string]interface{}{
		"Descriptors scanned": summary.Descriptors,
		"Classes generated":   summary.Classes,
		"Factory methods":     summary.Beans,
		"Beans skipped":       summary.Skipped,
		"Unresolved refs":     summary.Unresolved,
	}
	if cfg.Verbose {
		stats["Run ID"] = summary.RunID
		stats["Duration"] = summary.Duration.Round(time.Millisecond)
	}
	diagnostics.Summary("Conversion Complete!", stats)

	if summary.DryRun {
		if len(summary.Removed) > 0 {
			diagnostics.Subsection("Would Remove")
			for _, file := range summary.Removed {
				diagnostics.List("%s", file)
			}
		}
		diagnostics.Subsection("Would Write")
		for _, file := range summary.Files {
			diagnostics.List("%s", file)
		}
		return
	}

	if cfg.Verbose && len(summary.Files) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.Files {
			diagnostics.List("%s", file)
		}
	}
	diagnostics.Success("Wrote %d configuration classes to %s", len(summary.Files), cfg.OutputDir)
}
