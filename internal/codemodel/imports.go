package codemodel

import (
	"sort"
	"strings"

	"github.com/toyz/beanconv/internal/javatype"
)

// ImportManager decides which qualified names are rendered by their simple
// name and which import lines that requires. Claims are first come, first
// served: once a simple name maps to one qualified name, every other type
// with the same simple name is rendered fully qualified.
type ImportManager struct {
	packageName string
	bySimple    map[string]string // simple name -> qualified name
	imports     map[string]bool   // qualified names needing an import line
}

// NewImportManager creates a new import manager for a file in the given package
func NewImportManager(packageName string) *ImportManager {
	return &ImportManager{
		packageName: packageName,
		bySimple:    make(map[string]string),
		imports:     make(map[string]bool),
	}
}

// Reserve claims a simple name for a type declared in the file itself
func (im *ImportManager) Reserve(simpleName string) {
	if _, taken := im.bySimple[simpleName]; !taken {
		im.bySimple[simpleName] = simpleName
	}
}

// Add claims simple names for t and every type in its arguments
func (im *ImportManager) Add(t *javatype.Type) {
	t.Walk(im.claim)
}

func (im *ImportManager) claim(t *javatype.Type) {
	if t.IsPrimitive() || t.IsNested() {
		return
	}

	simple := t.SimpleName()
	pkg := t.Package()
	if pkg == "" {
		im.Reserve(simple)
		return
	}

	if _, taken := im.bySimple[simple]; taken {
		return
	}

	im.bySimple[simple] = t.Name
	if pkg != "java.lang" && pkg != im.packageName {
		im.imports[t.Name] = true
	}
}

// Name returns how t's own qualified name is written in the file
func (im *ImportManager) Name(t *javatype.Type) string {
	if im.bySimple[t.SimpleName()] == t.Name {
		return t.SimpleName()
	}
	return t.SourceName()
}

// Render writes t using the names decided by the manager
func (im *ImportManager) Render(t *javatype.Type) string {
	return t.Format(im.Name)
}

// Imports returns the qualified names to import, sorted
func (im *ImportManager) Imports() []string {
	result := make([]string, 0, len(im.imports))
	for name := range im.imports {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// GenerateImports generates the import section
func (im *ImportManager) GenerateImports() string {
	imports := im.Imports()
	if len(imports) == 0 {
		return ""
	}

	var result strings.Builder
	for _, name := range imports {
		result.WriteString("import ")
		result.WriteString(name)
		result.WriteString(";\n")
	}
	return result.String()
}
