package codemodel

import (
	"strings"

	"github.com/toyz/beanconv/internal/javatype"
)

const indentUnit = "    "

type writer struct {
	strings.Builder
	imports *ImportManager
	indent  int
}

func newWriter(imports *ImportManager) *writer {
	return &writer{imports: imports}
}

// WriteType writes a type using the import decisions of the file
func (w *writer) WriteType(t *javatype.Type) {
	w.WriteString(w.imports.Render(t))
}

func (w *writer) line(s string) {
	if s != "" {
		w.WriteString(strings.Repeat(indentUnit, w.indent))
		w.WriteString(s)
	}
	w.WriteString("\n")
}

// Render renders the compilation unit as Java source
func (f *File) Render() string {
	w := newWriter(f.imports)

	for _, h := range f.Header {
		w.line("// " + h)
	}
	if len(f.Header) > 0 {
		w.line("")
	}

	if f.PackageName != "" {
		w.line("package " + f.PackageName + ";")
		w.line("")
	}

	if imports := f.imports.GenerateImports(); imports != "" {
		w.WriteString(imports)
		w.line("")
	}

	for i, class := range f.classes {
		if i > 0 {
			w.line("")
		}
		class.render(w)
	}

	return w.String()
}

func (c *Class) render(w *writer) {
	writeJavadoc(w, c.Javadoc)
	writeAnnotations(w, c.Annotations())
	w.line("public class " + c.Name + " {")

	w.indent++
	for _, m := range c.methods {
		w.line("")
		m.render(w)
	}
	w.indent--

	w.line("}")
}

func (m *Method) render(w *writer) {
	writeJavadoc(w, m.Javadoc)
	writeAnnotations(w, m.Annotations())

	var sig strings.Builder
	sig.WriteString("public ")
	sig.WriteString(w.imports.Render(m.ReturnType))
	sig.WriteString(" ")
	sig.WriteString(m.Name)
	sig.WriteString("(")
	for i, p := range m.params {
		if i > 0 {
			sig.WriteString(", ")
		}
		for _, a := range p.Annotations() {
			sig.WriteString(renderAnnotation(w.imports, a))
			sig.WriteString(" ")
		}
		sig.WriteString(w.imports.Render(p.Type))
		sig.WriteString(" ")
		sig.WriteString(p.Name)
	}
	sig.WriteString(") {")
	w.line(sig.String())

	w.indent++
	for _, s := range m.body.statements {
		sw := newWriter(w.imports)
		s.writeStatement(sw)
		w.line(sw.String())
	}
	w.indent--

	w.line("}")
}

func writeJavadoc(w *writer, doc Javadoc) {
	var lines []string
	for _, entry := range doc {
		for _, l := range strings.Split(entry, "\n") {
			lines = append(lines, strings.TrimRight(l, " \t\r"))
		}
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return
	}

	w.line("/**")
	for _, l := range lines {
		l = strings.ReplaceAll(l, "*/", "*&#47;")
		if l == "" {
			w.line(" *")
			continue
		}
		w.line(" * " + l)
	}
	w.line(" */")
}

func writeAnnotations(w *writer, list []*Annotation) {
	for _, a := range list {
		w.line(renderAnnotation(w.imports, a))
	}
}

func renderAnnotation(imports *ImportManager, a *Annotation) string {
	var b strings.Builder
	b.WriteString("@")
	b.WriteString(imports.Render(a.Type))

	if len(a.members) == 0 {
		return b.String()
	}

	b.WriteString("(")
	single := len(a.members) == 1 && a.members[0].name == "value"
	for i, m := range a.members {
		if i > 0 {
			b.WriteString(", ")
		}
		if !single {
			b.WriteString(m.name)
			b.WriteString(" = ")
		}
		b.WriteString(renderMemberValue(imports, m))
	}
	b.WriteString(")")
	return b.String()
}

func renderMemberValue(imports *ImportManager, m member) string {
	w := newWriter(imports)
	if m.array {
		w.WriteString("{")
	}
	for i, v := range m.values {
		if i > 0 {
			w.WriteString(", ")
		}
		v.write(w)
	}
	if m.array {
		w.WriteString("}")
	}
	return w.String()
}
