package codemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "jdbc:h2:mem:test", expected: `"jdbc:h2:mem:test"`},
		{name: "quotes and backslash", input: `say "hi" \ bye`, expected: `"say \"hi\" \\ bye"`},
		{name: "whitespace escapes", input: "a\nb\tc\rd", expected: `"a\nb\tc\rd"`},
		{name: "control character", input: "x\x01y", expected: `"x\001y"`},
		{name: "non ascii kept", input: "größe", expected: `"größe"`},
		{name: "empty", input: "", expected: `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuoteString(tt.input))
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	valid := []string{"bean", "$proxy", "_name", "dataSource2", "Ärger"}
	invalid := []string{"", "_", "class", "null", "1st", "a-b", "a.b", "my bean"}

	for _, s := range valid {
		assert.True(t, IsIdentifier(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsIdentifier(s), s)
	}
}

func TestIsPackageName(t *testing.T) {
	assert.True(t, IsPackageName("com.example.config"))
	assert.True(t, IsPackageName("single"))
	assert.False(t, IsPackageName(""))
	assert.False(t, IsPackageName("com..example"))
	assert.False(t, IsPackageName("com.example."))
	assert.False(t, IsPackageName("com.int.example"))
}

func TestIdentifier(t *testing.T) {
	tests := map[string]string{
		"bean":    "bean",
		"my bean": "my_bean",
		"a-b.c":   "a_b_c",
		"9":       "_9",
		"1st":     "_1st",
		"class":   "class_",
		"default": "default_",
		"$valid$": "$valid$",
		"münchen": "münchen",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, Identifier(input), input)
		assert.True(t, IsIdentifier(Identifier(input)), input)
	}
}

func TestNumericLiterals(t *testing.T) {
	assert.Equal(t, "-5", IntLiteral(-5))
	assert.Equal(t, "2147483647", IntLiteral(2147483647))
	assert.Equal(t, "7L", LongLiteral(7))
	assert.Equal(t, "-9223372036854775808L", LongLiteral(-9223372036854775808))
}
