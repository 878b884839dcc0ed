// Package metadata derives the Java class, file and package names of the
// configuration class generated for a descriptor.
package metadata

import (
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/toyz/beanconv/internal/codemodel"
	"github.com/toyz/beanconv/internal/errors"
)

// Metadata holds the names derived for one descriptor
type Metadata struct {
	SourcePath  string // descriptor path as given
	ClassName   string // configuration class name
	FileName    string // <ClassName>.java
	PackageName string // Java package of the class
}

// Build derives the names for the descriptor at filePath. When addFilePath is
// set, the directories between basePath and the descriptor extend basePackage.
func Build(filePath, basePath, basePackage string, addFilePath bool) (*Metadata, error) {
	className, err := ClassName(baseName(filePath))
	if err != nil {
		return nil, err
	}

	packageName := basePackage
	if addFilePath {
		packageName, err = PackageName(basePackage, dirName(filePath), basePath)
		if err != nil {
			return nil, err
		}
	}

	return &Metadata{
		SourcePath:  filePath,
		ClassName:   className,
		FileName:    FileName(className),
		PackageName: packageName,
	}, nil
}

// ClassName converts a descriptor file name into a class name: the last
// extension is dropped, the rest is split on anything that is not a letter
// or digit, and the capitalized segments are concatenated.
//
//	te,st-te_st test.xml -> TeStTeStTest
func ClassName(fileName string) (string, error) {
	stem := fileName
	if i := strings.LastIndex(stem, "."); i >= 0 {
		stem = stem[:i]
	}

	segments := strings.FieldsFunc(stem, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(segments) == 0 {
		return "", errors.ConfigurationError("cannot derive a class name from file name '%s'", fileName).
			WithFile(fileName).
			WithSuggestion("Rename the descriptor so its name contains letters or digits")
	}

	var b strings.Builder
	for _, segment := range segments {
		r, size := utf8.DecodeRuneInString(segment)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(segment[size:])
	}

	name := b.String()
	if r, _ := utf8.DecodeRuneInString(name); unicode.IsDigit(r) {
		name = "_" + name
	}
	return name, nil
}

// FileName returns the Java source file name for a class
func FileName(className string) string {
	return className + ".java"
}

// PackageName appends the directories of dirPath below basePath to
// basePackage. Both paths must be absolute, POSIX (/dir) or drive (C:\dir)
// style; segments are lower-cased and made into identifiers.
func PackageName(basePackage, dirPath, basePath string) (string, error) {
	dir, err := absolute(dirPath, "descriptor directory")
	if err != nil {
		return "", err
	}
	base, err := absolute(basePath, "base path")
	if err != nil {
		return "", err
	}

	var rel string
	switch {
	case dir == base:
	case strings.HasPrefix(dir, strings.TrimSuffix(base, "/")+"/"):
		rel = strings.TrimPrefix(dir, strings.TrimSuffix(base, "/")+"/")
	default:
		return "", errors.ConfigurationError("'%s' is not below base path '%s'", dirPath, basePath).
			WithContext("dir", dirPath).
			WithContext("base_path", basePath)
	}

	parts := make([]string, 0, 4)
	if basePackage != "" {
		parts = append(parts, basePackage)
	}
	for _, segment := range strings.Split(rel, "/") {
		if segment == "" {
			continue
		}
		parts = append(parts, codemodel.Identifier(strings.ToLower(segment)))
	}
	return strings.Join(parts, "."), nil
}

// absolute normalizes separators and rejects relative paths
func absolute(p, what string) (string, error) {
	normalized := strings.ReplaceAll(p, `\`, "/")
	if !isAbsolute(normalized) {
		return "", errors.ConfigurationError("%s '%s' is not absolute", what, p).
			WithSuggestion("Pass absolute paths, e.g. /configs or C:\\configs")
	}
	return path.Clean(normalized), nil
}

func isAbsolute(p string) bool {
	if strings.HasPrefix(p, "/") {
		return true
	}
	// drive letter, C:/
	return len(p) >= 3 && p[1] == ':' && p[2] == '/' &&
		(p[0] >= 'a' && p[0] <= 'z' || p[0] >= 'A' && p[0] <= 'Z')
}

func baseName(p string) string {
	return path.Base(strings.ReplaceAll(p, `\`, "/"))
}

func dirName(p string) string {
	normalized := strings.ReplaceAll(p, `\`, "/")
	return path.Dir(normalized)
}
