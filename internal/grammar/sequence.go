package grammar

import (
	"fmt"

	"objshell/internal/parser"
)

// Sequence joins parameters with a delimiter into one grammar, matched by strict
// left-to-right descent. Once a slot is followed by a delimiter it must be complete; later
// input never changes what an earlier slot consumed. A Sequence is itself a Parameter.
type Sequence struct {
	delim  parser.Delimiter
	params []Parameter
}

// NewSequence creates a sequence of params separated by delim.
func NewSequence(delim parser.Delimiter, params ...Parameter) *Sequence {
	return &Sequence{delim: delim, params: append([]Parameter(nil), params...)}
}

// Len returns the number of slots.
func (s *Sequence) Len() int {
	return len(s.params)
}

// Delimiter returns the slot separator.
func (s *Sequence) Delimiter() parser.Delimiter {
	return s.delim
}

func (s *Sequence) tail() *Sequence {
	return &Sequence{delim: s.delim, params: s.params[1:]}
}

// PartialMatches reports whether every delimited slot so far is complete and the last one
// is partial.
func (s *Sequence) PartialMatches(text string) bool {
	if text == "" {
		return true
	}
	if len(s.params) == 0 {
		return false
	}
	head := parser.FirstToken(text, s.delim)
	if head == text {
		return s.params[0].PartialMatches(text)
	}
	if len(s.params) == 1 || !s.params[0].CompleteMatches(head) {
		return false
	}
	return s.tail().PartialMatches(parser.RemainderAfter(text, head, s.delim))
}

// CompleteMatches reports whether every slot completely matches with nothing left over.
func (s *Sequence) CompleteMatches(text string) bool {
	if len(s.params) == 0 {
		return text == ""
	}
	head := parser.FirstToken(text, s.delim)
	if len(s.params) == 1 {
		return head == text && s.params[0].CompleteMatches(text)
	}
	if head == text || !s.params[0].CompleteMatches(head) {
		return false
	}
	return s.tail().CompleteMatches(parser.RemainderAfter(text, head, s.delim))
}

// AutoComplete completes the first slot that is not yet complete. A real completion followed
// by more slots gets the canonical delimiter and whatever the remaining slots complete from
// nothing.
func (s *Sequence) AutoComplete(text string) string {
	if len(s.params) == 0 {
		return text
	}
	head := parser.FirstToken(text, s.delim)
	if head != text {
		if len(s.params) == 1 || !s.params[0].CompleteMatches(head) {
			return text
		}
		rest := parser.RemainderAfter(text, head, s.delim)
		completed := s.tail().AutoComplete(rest)
		if completed == rest {
			return text
		}
		return text[:len(text)-len(rest)] + completed
	}

	completed := s.params[0].AutoComplete(text)
	if completed == text {
		return text
	}
	if len(s.params) > 1 && s.params[0].CompleteMatches(completed) {
		return completed + s.delim.Canonical() + s.tail().AutoComplete("")
	}
	return completed
}

// ExtractInput returns the text left after every slot consumed its part. Text that does not
// match is returned unchanged.
func (s *Sequence) ExtractInput(text string) string {
	rest := text
	for _, p := range s.params {
		head := parser.FirstToken(rest, s.delim)
		if !p.CompleteMatches(head) {
			return text
		}
		rest = parser.RemainderAfter(rest, head, s.delim)
	}
	return rest
}

// Slices returns the raw text of each slot of a complete match.
func (s *Sequence) Slices(text string) ([]string, bool) {
	if !s.CompleteMatches(text) {
		return nil, false
	}
	slices := make([]string, 0, len(s.params))
	rest := text
	for range s.params {
		head := parser.FirstToken(rest, s.delim)
		slices = append(slices, head)
		rest = parser.RemainderAfter(rest, head, s.delim)
	}
	return slices, true
}

// ParseArguments parses each slot of a complete match.
// Parse returns the Arguments of a complete match.
func (s *Sequence) ParseArguments(text string) (Arguments, error) {
	slices, ok := s.Slices(text)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, text)
	}
	args := make(Arguments, 0, len(slices))
	for i, slice := range slices {
		value, err := s.params[i].Parse(slice)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		args = append(args, Argument{Param: s.params[i], Value: value})
	}
	return args, nil
}

func (s *Sequence) Parse(text string) (any, error) {
	return s.ParseArguments(text)
}
