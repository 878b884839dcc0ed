package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/beanconv/internal/errors"
)

// DiagnosticReporter renders converter errors with their context and
// suggestions
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stderr,
	}
}

// WithWriter redirects the report output
func (r *DiagnosticReporter) WithWriter(out io.Writer) *DiagnosticReporter {
	r.out = out
	return r
}

// ReportWarning prints a single warning line
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError prints err. Collected errors are reported one after the other.
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	fmt.Fprintf(r.out, "\nERROR: Conversion Failed\n")
	fmt.Fprintf(r.out, "========================\n\n")

	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) && multi.Count() > 1 {
		fmt.Fprintf(r.out, "%d errors, nothing was written.\n\n", multi.Count())
		for i, e := range multi.Errors {
			fmt.Fprintf(r.out, "[%d/%d] ", i+1, multi.Count())
			r.reportConverterError(e)
		}
		r.printGeneralHelp()
		return
	}

	var ce errors.ConverterError
	if stderrors.As(err, &ce) {
		r.reportConverterError(ce)
	} else {
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
	}
	r.printGeneralHelp()
}

func (r *DiagnosticReporter) reportConverterError(err errors.ConverterError) {
	r.printErrorHeader(err.ErrorCode())

	message := err.Error()
	if base := baseOf(err); base != nil {
		message = base.Message
	}
	fmt.Fprintf(r.out, "Message: %s\n\n", message)

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc.String())
	}

	if cause := stderrors.Unwrap(err); cause != nil {
		fmt.Fprintf(r.out, "Cause: %s\n\n", cause.Error())
	}

	if ctx := err.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}

	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	if r.verbose {
		r.printVerboseDebuggingInfo(err)
	}
}

// baseOf finds the BaseError behind the domain error types
func baseOf(err errors.ConverterError) *errors.BaseError {
	switch e := err.(type) {
	case *errors.BaseError:
		return e
	case *errors.DescriptorError:
		return e.BaseError
	case *errors.GenerationError:
		return e.BaseError
	case *errors.ReferenceError:
		return e.BaseError
	case *errors.LiteralError:
		return e.BaseError
	}
	return nil
}

func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	title := code.String()
	fmt.Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+6))
}

// printContext prints the important keys first, then the rest sorted
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	importantKeys := []string{"class", "method", "reference", "element", "path"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), value)
			printed[key] = true
		}
	}

	rest := make([]string, 0, len(context))
	for key := range context {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.out, "\n")
}

// formatContextKey turns snake_case keys into Title Case
func formatContextKey(key string) string {
	switch key {
	case "class":
		return "Configuration Class"
	case "method":
		return "Factory Method"
	}

	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) printGeneralHelp() {
	if r.verbose {
		return
	}
	fmt.Fprintf(r.out, "Run with --verbose for the full error chain.\n")
}

func (r *DiagnosticReporter) printVerboseDebuggingInfo(err errors.ConverterError) {
	fmt.Fprintf(r.out, "Verbose Debug Information:\n")
	fmt.Fprintf(r.out, "  Error Type Code: %d\n", int(err.ErrorCode()))

	chain := stderrors.Unwrap(err)
	if chain != nil {
		fmt.Fprintf(r.out, "  Error Chain:\n")
		for level := 1; chain != nil; level++ {
			fmt.Fprintf(r.out, "    %d. %s\n", level, chain.Error())
			chain = stderrors.Unwrap(chain)
		}
	}

	fmt.Fprintf(r.out, "\n")
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.out, "[DEBUG] "+format+"\n", args...)
	}
}
