package codemodel

import (
	"strings"

	"github.com/toyz/beanconv/internal/javatype"
)

// Expr is a Java expression
type Expr interface {
	write(w *writer)
}

type literal string

func (l literal) write(w *writer) {
	w.WriteString(string(l))
}

// Lit returns a string literal expression
func Lit(s string) Expr {
	return literal(QuoteString(s))
}

// IntLit returns an int literal expression
func IntLit(v int32) Expr {
	return literal(IntLiteral(v))
}

// LongLit returns a long literal expression
func LongLit(v int64) Expr {
	return literal(LongLiteral(v))
}

// Null returns the null literal
func Null() Expr {
	return literal("null")
}

// Render renders an expression on its own, with fully-qualified type names
func Render(e Expr) string {
	w := newWriter(NewImportManager(""))
	e.write(w)
	return w.String()
}

// Invocation is a constructor or method call whose arguments are appended
// while the surrounding code is still being built
type Invocation struct {
	newType *javatype.Type // set for constructor calls
	target  Expr           // set for method calls
	method  string
	args    []Expr
}

// New returns a constructor call for t
func New(t *javatype.Type) *Invocation {
	return &Invocation{newType: t}
}

// Arg appends an argument
func (i *Invocation) Arg(e Expr) *Invocation {
	i.args = append(i.args, e)
	return i
}

func (i *Invocation) write(w *writer) {
	if i.newType != nil {
		w.WriteString("new ")
		w.WriteType(i.newType)
	} else {
		i.target.write(w)
		w.WriteString(".")
		w.WriteString(i.method)
	}

	w.WriteString("(")
	for idx, arg := range i.args {
		if idx > 0 {
			w.WriteString(", ")
		}
		arg.write(w)
	}
	w.WriteString(")")
}

// Var is a local variable; it is also an expression referring to itself
type Var struct {
	Name string
	Type *javatype.Type
	Init Expr
}

func (v *Var) write(w *writer) {
	w.WriteString(v.Name)
}

// Statement is a Java statement inside a block
type Statement interface {
	writeStatement(w *writer)
}

func (v *Var) writeStatement(w *writer) {
	w.WriteType(v.Type)
	w.WriteString(" ")
	w.WriteString(v.Name)
	if v.Init != nil {
		w.WriteString(" = ")
		v.Init.write(w)
	}
	w.WriteString(";")
}

type exprStatement struct {
	expr Expr
}

func (s exprStatement) writeStatement(w *writer) {
	s.expr.write(w)
	w.WriteString(";")
}

type returnStatement struct {
	expr Expr
}

func (s returnStatement) writeStatement(w *writer) {
	w.WriteString("return")
	if s.expr != nil {
		w.WriteString(" ")
		s.expr.write(w)
	}
	w.WriteString(";")
}

// Block is a sequence of statements
type Block struct {
	statements []Statement
}

// Decl declares a local variable initialized with init
func (b *Block) Decl(t *javatype.Type, name string, init Expr) *Var {
	v := &Var{Name: name, Type: t, Init: init}
	b.statements = append(b.statements, v)
	return v
}

// Invoke appends a method call statement and returns the call for adding arguments
func (b *Block) Invoke(target Expr, method string) *Invocation {
	call := &Invocation{target: target, method: method}
	b.statements = append(b.statements, exprStatement{expr: call})
	return call
}

// Return appends a return statement
func (b *Block) Return(e Expr) {
	b.statements = append(b.statements, returnStatement{expr: e})
}

// Locals returns the local variables declared directly in the block
func (b *Block) Locals() []*Var {
	var locals []*Var
	for _, s := range b.statements {
		if v, ok := s.(*Var); ok {
			locals = append(locals, v)
		}
	}
	return locals
}

func (b *Block) declares(name string) bool {
	for _, v := range b.Locals() {
		if v.Name == name {
			return true
		}
	}
	return false
}

// RenderStatement renders a statement on its own, with fully-qualified type names
func RenderStatement(s Statement) string {
	w := newWriter(NewImportManager(""))
	s.writeStatement(w)
	return strings.TrimSpace(w.String())
}
