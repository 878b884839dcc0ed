package codemodel

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// QuoteString renders s as a Java string literal
func QuoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 || r == 0x7f {
				// octal, because \u escapes are decoded before lexing
				fmt.Fprintf(&b, `\%03o`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

var keywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
	"true": true, "false": true, "null": true, "_": true,
}

// IsIdentifier reports whether s is a legal Java identifier
func IsIdentifier(s string) bool {
	if s == "" || keywords[s] {
		return false
	}
	for i, r := range s {
		if !identRune(r, i == 0) {
			return false
		}
	}
	return true
}

// IsPackageName reports whether s is a legal dotted Java package name
func IsPackageName(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if !IsIdentifier(part) {
			return false
		}
	}
	return true
}

// Identifier turns s into a legal Java identifier, leaving legal names untouched
func Identifier(s string) string {
	if IsIdentifier(s) {
		return s
	}

	var b strings.Builder
	for i, r := range s {
		if identRune(r, false) {
			if i == 0 && !identRune(r, true) {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}

	result := b.String()
	if result == "" {
		result = "_"
	}
	if keywords[result] {
		result += "_"
	}
	return result
}

func identRune(r rune, first bool) bool {
	if r == '_' || r == '$' || unicode.IsLetter(r) {
		return true
	}
	return !first && unicode.IsDigit(r)
}

// IntLiteral renders an int literal
func IntLiteral(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}

// LongLiteral renders a long literal
func LongLiteral(v int64) string {
	return strconv.FormatInt(v, 10) + "L"
}
