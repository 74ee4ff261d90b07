// Package parser provides the primitive string operations the expression grammar is built on:
// delimiter-aware token extraction, remainder computation and unquoting.
package parser

import (
	"strings"
)

// Delimiter separates grammar slots. Sep is the separator itself; when TrimSpace is set,
// whitespace following the separator is normalized away during extraction.
type Delimiter struct {
	Sep       string
	TrimSpace bool
}

var (
	// Space separates bare words, e.g. a command keyword from its arguments.
	Space = Delimiter{Sep: " "}
	// Comma separates argument lists; whitespace after the comma is optional.
	Comma = Delimiter{Sep: ",", TrimSpace: true}
	// Line never separates. A slot delimited by it takes the rest of the line.
	Line = Delimiter{}
)

// DelimiterFor computes the delimiter for a configured separator string.
func DelimiterFor(sep string) Delimiter {
	switch sep {
	case "", " ":
		return Space
	case ",":
		return Comma
	default:
		return Delimiter{Sep: strings.TrimSpace(sep), TrimSpace: true}
	}
}

// Canonical returns the text inserted between two slots by autocompletion.
func (d Delimiter) Canonical() string {
	if d.TrimSpace && d.Sep != " " {
		return d.Sep + " "
	}
	return d.Sep
}

// String returns the separator.
func (d Delimiter) String() string {
	return d.Sep
}

// scanner tracks quoting, escaping and parenthesis nesting while walking a string.
type scanner struct {
	quote   byte
	escaped bool
	depth   int
}

// step consumes c and reports whether c sits outside quotes, escapes and parentheses
// before it was consumed.
func (s *scanner) step(c byte) bool {
	if s.escaped {
		s.escaped = false
		return false
	}
	if c == '\\' {
		s.escaped = true
		return false
	}
	if s.quote != 0 {
		if c == s.quote {
			s.quote = 0
		}
		return false
	}
	free := s.depth == 0
	switch c {
	case '"', '\'':
		s.quote = c
		return false
	case '(':
		s.depth++
	case ')':
		if s.depth > 0 {
			s.depth--
			return false
		}
	}
	return free
}

// indexDelimiter returns the index of the first unescaped occurrence of d in text, or -1.
func indexDelimiter(text string, d Delimiter) int {
	if d.Sep == "" {
		return -1
	}
	var s scanner
	for i := 0; i < len(text); i++ {
		free := s.quote == 0 && !s.escaped && s.depth == 0
		if free && strings.HasPrefix(text[i:], d.Sep) {
			return i
		}
		s.step(text[i])
	}
	return -1
}

// FirstToken returns the substring of text up to the first unescaped delimiter, or the
// whole string if there is none. Delimiters inside quotes or parentheses, or preceded by a
// backslash, are escaped.
func FirstToken(text string, d Delimiter) string {
	if i := indexDelimiter(text, d); i >= 0 {
		return text[:i]
	}
	return text
}

// HasDelimiter reports whether text contains an unescaped delimiter.
func HasDelimiter(text string, d Delimiter) bool {
	return indexDelimiter(text, d) >= 0
}

// RemainderAfter removes the leading occurrence of matched and exactly one following
// delimiter from text. If matched is not a prefix of text, text is returned unchanged.
func RemainderAfter(text, matched string, d Delimiter) string {
	if !strings.HasPrefix(text, matched) {
		return text
	}
	rest := text[len(matched):]
	if d.Sep != "" && strings.HasPrefix(rest, d.Sep) {
		rest = rest[len(d.Sep):]
		if d.TrimSpace {
			rest = strings.TrimLeft(rest, " \t")
		}
	}
	return rest
}

// Split breaks text into its delimited tokens. A trailing delimiter yields a final empty
// token so callers can tell "a," from "a".
func Split(text string, d Delimiter) []string {
	if text == "" {
		return nil
	}
	var tokens []string
	for {
		token := FirstToken(text, d)
		tokens = append(tokens, token)
		if token == text {
			return tokens
		}
		text = RemainderAfter(text, token, d)
		if text == "" {
			return append(tokens, "")
		}
	}
}

// IndexUnescaped returns the index of the first occurrence of b outside quotes and
// escapes, or -1. Parentheses are not treated specially.
func IndexUnescaped(text string, b byte) int {
	var quote byte
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == b:
			return i
		case c == '"' || c == '\'':
			quote = c
		}
	}
	return -1
}

// Unquote strips one level of matching surrounding quotes and resolves backslash escapes.
func Unquote(text string) string {
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '"' || first == '\'') && first == last {
			text = text[1 : len(text)-1]
		}
	}
	if !strings.Contains(text, "\\") {
		return text
	}

	var b strings.Builder
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		b.WriteByte(c)
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}
