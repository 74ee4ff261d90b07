package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		delim    Delimiter
		expected string
	}{
		{"space delimited keyword", "new Foo( a )", Space, "new"},
		{"no delimiter returns whole string", "Foo", Space, "Foo"},
		{"empty string", "", Comma, ""},
		{"comma delimited argument", "test Name, 49", Comma, "test Name"},
		{"parentheses escape delimiters", "Foo( a b ) rest", Space, "Foo( a b )"},
		{"unclosed parenthesis keeps everything", "Foo( a, b", Comma, "Foo( a, b"},
		{"double quotes escape delimiters", `"a, b", c`, Comma, `"a, b"`},
		{"single quotes escape delimiters", `'a b' c`, Space, `'a b'`},
		{"backslash escapes delimiter", `a\, b, c`, Comma, `a\, b`},
		{"leading delimiter yields empty token", ", a", Comma, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FirstToken(tt.input, tt.delim))
		})
	}
}

func TestRemainderAfter(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		matched  string
		delim    Delimiter
		expected string
	}{
		{"removes keyword and one space", "new Foo", "new", Space, "Foo"},
		{"removes exactly one space", "new  Foo", "new", Space, " Foo"},
		{"comma normalizes following whitespace", "a,    b", "a", Comma, "b"},
		{"comma without whitespace", "a,b", "a", Comma, "b"},
		{"no delimiter after match", "abc", "abc", Comma, ""},
		{"not a prefix returns unchanged", "abc", "x", Comma, "abc"},
		{"match without following delimiter", "newx", "new", Space, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RemainderAfter(tt.text, tt.matched, tt.delim))
		})
	}
}

func TestSplit(t *testing.T) {
	assert.Nil(t, Split("", Comma))
	assert.Equal(t, []string{"a"}, Split("a", Comma))
	assert.Equal(t, []string{"test Name", "49"}, Split("test Name, 49", Comma))
	assert.Equal(t, []string{"a", ""}, Split("a,", Comma))
	assert.Equal(t, []string{`"x, y"`, "z"}, Split(`"x, y", z`, Comma))
}

func TestLineDelimiter(t *testing.T) {
	assert.Equal(t, "test Name, 49", FirstToken("test Name, 49", Line))
	assert.False(t, HasDelimiter("a b", Line))
	assert.Equal(t, []string{"a b"}, Split("a b", Line))
	assert.Equal(t, "", RemainderAfter("a b", "a b", Line))
}

func TestDelimiterFor(t *testing.T) {
	assert.Equal(t, Comma, DelimiterFor(","))
	assert.Equal(t, Space, DelimiterFor(" "))
	assert.Equal(t, Space, DelimiterFor(""))
	assert.Equal(t, Delimiter{Sep: ";", TrimSpace: true}, DelimiterFor(" ; "))

	assert.Equal(t, ", ", Comma.Canonical())
	assert.Equal(t, " ", Space.Canonical())
	assert.Equal(t, "; ", DelimiterFor(";").Canonical())
}

func TestHasDelimiter(t *testing.T) {
	assert.True(t, HasDelimiter("a, b", Comma))
	assert.False(t, HasDelimiter(`"a, b"`, Comma))
	assert.False(t, HasDelimiter("Foo( a, b )", Comma))
}

func TestIndexUnescaped(t *testing.T) {
	assert.Equal(t, 3, IndexUnescaped("Foo( a )", '('))
	assert.Equal(t, 7, IndexUnescaped("Foo( a )", ')'))
	assert.Equal(t, -1, IndexUnescaped(`Foo( ")" `, ')'))
	assert.Equal(t, -1, IndexUnescaped(`a\)`, ')'))
	assert.Equal(t, -1, IndexUnescaped("", ')'))
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello world"`, "hello world"},
		{`'single'`, "single"},
		{`plain`, "plain"},
		{`"mismatched'`, `"mismatched'`},
		{`a\, b`, "a, b"},
		{`"say \"hi\""`, `say "hi"`},
		{`trailing\`, `trailing\`},
		{`"`, `"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Unquote(tt.input))
		})
	}
}
