package javatype

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// typeNode is the participle grammar for a Java type reference:
//
//	a.b.C<java.util.List<? extends x.Y>, Z>[][]
type typeNode struct {
	Name []string       `parser:"@Ident ( '.' @Ident )*"`
	Args []*typeArgNode `parser:"( '<' @@ ( ',' @@ )* '>' )?"`
	Dims []*dimNode     `parser:"@@*"`
}

type typeArgNode struct {
	Wildcard *wildcardNode `parser:"  @@"`
	Type     *typeNode     `parser:"| @@"`
}

type wildcardNode struct {
	Question string    `parser:"@'?'"`
	Bound    string    `parser:"( @( 'extends' | 'super' )"`
	Type     *typeNode `parser:"  @@ )?"`
}

type dimNode struct {
	Open string `parser:"@'[' ']'"`
}

// Parser parses Java type references
type Parser struct {
	parser *participle.Parser[typeNode]
}

// NewParser creates a new type reference parser
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[\p{L}_$][\p{L}\p{N}_$]*`},
		{Name: "Punct", Pattern: `[.,<>?\[\]]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[typeNode](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &Parser{parser: parser}
}

var defaultParser = NewParser()

// Parse parses a type reference using the package-level parser
func Parse(ref string) (*Type, error) {
	return defaultParser.Parse(ref)
}

// MustParse is like Parse but panics on malformed input; intended for constants
func MustParse(ref string) *Type {
	t, err := Parse(ref)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse parses a type reference such as java.util.Map<String, a.b.C>[]
func (p *Parser) Parse(ref string) (*Type, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return nil, fmt.Errorf("empty type reference")
	}

	node, err := p.parser.ParseString("", trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid type reference '%s': %w", ref, err)
	}

	return convert(node)
}

func convert(node *typeNode) (*Type, error) {
	t := &Type{
		Name: strings.Join(node.Name, "."),
		Dims: len(node.Dims),
	}

	for _, arg := range node.Args {
		converted, err := convertArg(arg)
		if err != nil {
			return nil, err
		}
		t.Args = append(t.Args, converted)
	}

	if t.IsPrimitive() && len(t.Args) > 0 {
		return nil, fmt.Errorf("primitive type '%s' cannot take type arguments", t.Name)
	}

	return t, nil
}

func convertArg(arg *typeArgNode) (TypeArg, error) {
	if arg.Wildcard == nil {
		t, err := convert(arg.Type)
		if err != nil {
			return TypeArg{}, err
		}
		return TypeArg{Type: t}, nil
	}

	result := TypeArg{Wildcard: true, Bound: arg.Wildcard.Bound}
	if arg.Wildcard.Type != nil {
		t, err := convert(arg.Wildcard.Type)
		if err != nil {
			return TypeArg{}, err
		}
		result.Type = t
	}
	return result, nil
}
