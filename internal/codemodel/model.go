package codemodel

import (
	"fmt"
	"strconv"

	"github.com/toyz/beanconv/internal/javatype"
)

// File is one Java compilation unit under construction. A File is owned by a
// single generation call and is not safe for concurrent use.
type File struct {
	PackageName string
	Header      []string // line comments written above the package clause

	types   *javatype.Parser
	imports *ImportManager
	classes []*Class
}

// NewFile creates an empty compilation unit in the given package
func NewFile(packageName string) *File {
	return &File{
		PackageName: packageName,
		types:       javatype.NewParser(),
		imports:     NewImportManager(packageName),
	}
}

// Ref parses a type reference and lets the import manager shorten it
func (f *File) Ref(name string) (*javatype.Type, error) {
	t, err := f.types.Parse(name)
	if err != nil {
		return nil, err
	}
	f.imports.Add(t)
	return t, nil
}

// QualifiedRef parses a type reference that is always written fully qualified
func (f *File) QualifiedRef(name string) (*javatype.Type, error) {
	return f.types.Parse(name)
}

// MustRef is like Ref but panics on malformed input; intended for known framework types
func (f *File) MustRef(name string) *javatype.Type {
	t, err := f.Ref(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Imports returns the import manager of the file
func (f *File) Imports() *ImportManager {
	return f.imports
}

// Class declares a new public top-level class
func (f *File) Class(name string) (*Class, error) {
	if !IsIdentifier(name) {
		return nil, fmt.Errorf("'%s' is not a valid class name", name)
	}
	for _, existing := range f.classes {
		if existing.Name == name {
			return nil, fmt.Errorf("class '%s' already declared", name)
		}
	}

	f.imports.Reserve(name)
	class := &Class{Name: name}
	f.classes = append(f.classes, class)
	return class, nil
}

// Javadoc is a list of documentation lines
type Javadoc []string

// Add appends a documentation entry; embedded newlines become separate lines
func (j *Javadoc) Add(text string) {
	*j = append(*j, text)
}

// Annotatable is implemented by every element that accepts annotations
type Annotatable interface {
	Annotate(t *javatype.Type) *Annotation
	Annotations() []*Annotation
}

type annotations struct {
	list []*Annotation
}

// Annotate attaches a new annotation use
func (a *annotations) Annotate(t *javatype.Type) *Annotation {
	use := &Annotation{Type: t}
	a.list = append(a.list, use)
	return use
}

// Annotations returns attached annotations in order
func (a *annotations) Annotations() []*Annotation {
	return a.list
}

// Class is a class declaration
type Class struct {
	annotations
	Name    string
	Javadoc Javadoc

	methods []*Method
}

// Method declares a new public method
func (c *Class) Method(returnType *javatype.Type, name string) (*Method, error) {
	if !IsIdentifier(name) {
		return nil, fmt.Errorf("'%s' is not a valid method name", name)
	}
	method := &Method{
		Name:       name,
		ReturnType: returnType,
		body:       &Block{},
	}
	c.methods = append(c.methods, method)
	return method, nil
}

// Method is a public method declaration
type Method struct {
	annotations
	Name       string
	ReturnType *javatype.Type
	Javadoc    Javadoc

	params []*Param
	body   *Block
}

// Param declares a new parameter
func (m *Method) Param(t *javatype.Type, name string) *Param {
	param := &Param{Name: name, Type: t}
	m.params = append(m.params, param)
	return param
}

// Params returns declared parameters in order
func (m *Method) Params() []*Param {
	return m.params
}

// FindParam returns the parameter with the given name
func (m *Method) FindParam(name string) (*Param, bool) {
	for _, p := range m.params {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Body returns the method body
func (m *Method) Body() *Block {
	return m.body
}

// LocalName returns base, or base followed by the first free number, so that
// the name clashes with no parameter and no local declared so far
func (m *Method) LocalName(base string) string {
	taken := func(name string) bool {
		if _, ok := m.FindParam(name); ok {
			return true
		}
		return m.body.declares(name)
	}

	if !taken(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// Param is a method parameter; it is also an expression referring to itself
type Param struct {
	annotations
	Name string
	Type *javatype.Type
}

func (p *Param) write(w *writer) {
	w.WriteString(p.Name)
}

// Annotation is one annotation use with its members
type Annotation struct {
	Type    *javatype.Type
	members []member
}

type member struct {
	name   string
	values []Expr
	array  bool
}

// Param sets a single-valued member
func (a *Annotation) Param(name string, value Expr) *Annotation {
	a.members = append(a.members, member{name: name, values: []Expr{value}})
	return a
}

// ParamArray sets an array-valued member
func (a *Annotation) ParamArray(name string, values ...Expr) *Annotation {
	a.members = append(a.members, member{name: name, values: values, array: true})
	return a
}

// Member returns the values of a member and whether it was set
func (a *Annotation) Member(name string) ([]Expr, bool) {
	for _, m := range a.members {
		if m.name == name {
			return m.values, true
		}
	}
	return nil, false
}

// MemberNames returns member names in the order they were set
func (a *Annotation) MemberNames() []string {
	names := make([]string, 0, len(a.members))
	for _, m := range a.members {
		names = append(names, m.name)
	}
	return names
}
