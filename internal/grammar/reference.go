package grammar

import (
	"fmt"
	"slices"
	"strings"
)

// Reference accepts the identification of a candidate produced by a live source, such as the
// registered type names or the published entities of a category.
type Reference struct {
	source Candidates
	opts   options
}

// NewReference creates a reference parameter over source. An exact identification is always
// complete; a unique prefix is complete only with AllowUniquePrefix.
func NewReference(source Candidates, opts ...Option) *Reference {
	return &Reference{source: source, opts: newOptions(opts)}
}

// matches returns the sorted candidates that start with prefix.
func (r *Reference) matches(prefix string) []string {
	var out []string
	for _, c := range r.source.Candidates(prefix) {
		if strings.HasPrefix(c, prefix) && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}

// Resolve returns the identification text refers to.
func (r *Reference) Resolve(text string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNoMatch)
	}
	candidates := r.matches(text)
	switch {
	case slices.Contains(candidates, text):
		return text, nil
	case len(candidates) == 0:
		return "", fmt.Errorf("%w: unknown reference %q", ErrNoMatch, text)
	case len(candidates) > 1:
		return "", fmt.Errorf("%w: %q matches %s", ErrAmbiguous, text, strings.Join(candidates, ", "))
	case !r.opts.uniquePrefix:
		return "", fmt.Errorf("%w: %q is incomplete", ErrNoMatch, text)
	}
	return candidates[0], nil
}

// PartialMatches reports whether text is a prefix of some candidate.
func (r *Reference) PartialMatches(text string) bool {
	return text == "" || len(r.matches(text)) > 0
}

// CompleteMatches reports whether text resolves to exactly one candidate.
func (r *Reference) CompleteMatches(text string) bool {
	_, err := r.Resolve(text)
	return err == nil
}

// ExtractInput removes the reference and one delimiter.
func (r *Reference) ExtractInput(text string) string {
	return extractWith(r, text, r.opts.delim)
}

// Parse returns the resolved identification.
func (r *Reference) Parse(text string) (any, error) {
	id, err := r.Resolve(text)
	if err != nil {
		return nil, err
	}
	return id, nil
}

// AutoComplete returns the only candidate starting with text.
func (r *Reference) AutoComplete(text string) string {
	candidates := r.matches(text)
	if len(candidates) != 1 {
		return text
	}
	return candidates[0]
}
