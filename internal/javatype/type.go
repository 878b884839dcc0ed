package javatype

import "strings"

// Type is a parsed Java type reference
type Type struct {
	Name string    // qualified name as written, '$' kept for nested classes
	Args []TypeArg // generic type arguments
	Dims int       // array dimensions
}

// TypeArg is one generic type argument
type TypeArg struct {
	Wildcard bool   // '?' argument
	Bound    string // "extends", "super" or empty
	Type     *Type  // argument type or wildcard bound, nil for a bare '?'
}

var primitives = map[string]bool{
	"boolean": true,
	"byte":    true,
	"char":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
	"void":    true,
}

// IsPrimitive reports whether the type is a Java primitive
func (t *Type) IsPrimitive() bool {
	return primitives[t.Name]
}

// IsNested reports whether the name refers to a nested class in binary form (Outer$Inner)
func (t *Type) IsNested() bool {
	return strings.Contains(t.Name, "$")
}

// SimpleName returns the last segment of the qualified name
func (t *Type) SimpleName() string {
	return t.Name[strings.LastIndex(t.Name, ".")+1:]
}

// Package returns the package part of the qualified name, empty when unqualified
func (t *Type) Package() string {
	idx := strings.LastIndex(t.Name, ".")
	if idx < 0 {
		return ""
	}
	return t.Name[:idx]
}

// SourceName returns the qualified name in source form, with '$' replaced by '.'
func (t *Type) SourceName() string {
	return strings.ReplaceAll(t.Name, "$", ".")
}

// Walk calls fn for t and every type nested in its arguments, depth first
func (t *Type) Walk(fn func(*Type)) {
	fn(t)
	for _, arg := range t.Args {
		if arg.Type != nil {
			arg.Type.Walk(fn)
		}
	}
}

// Format renders the type, using name to render each qualified name
func (t *Type) Format(name func(*Type) string) string {
	var b strings.Builder
	t.format(&b, name)
	return b.String()
}

// String renders the type with fully-qualified source names
func (t *Type) String() string {
	return t.Format(func(t *Type) string { return t.SourceName() })
}

func (t *Type) format(b *strings.Builder, name func(*Type) string) {
	b.WriteString(name(t))

	if len(t.Args) > 0 {
		b.WriteString("<")
		for i, arg := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			if arg.Wildcard {
				b.WriteString("?")
				if arg.Type != nil {
					b.WriteString(" ")
					b.WriteString(arg.Bound)
					b.WriteString(" ")
					arg.Type.format(b, name)
				}
				continue
			}
			arg.Type.format(b, name)
		}
		b.WriteString(">")
	}

	for i := 0; i < t.Dims; i++ {
		b.WriteString("[]")
	}
}
