package grammar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objshell/internal/coerce"
	"objshell/internal/parser"
	"objshell/pkg/objtypes"
)

func staticCandidates(ids ...string) Candidates {
	return CandidatesFunc(func(string) []string { return ids })
}

func TestParameters_EmptyIsPartial(t *testing.T) {
	params := map[string]Parameter{
		"literal":   NewLiteral("new"),
		"value":     NewValue(objtypes.KindInt, coerce.NewRegistry()),
		"reference": NewReference(staticCandidates("alice")),
		"empty ref": NewReference(staticCandidates()),
		"call":      NewCall(NewReference(staticCandidates("Foo")), nil, parser.Comma),
		"sequence":  NewSequence(parser.Comma),
	}
	for name, p := range params {
		t.Run(name, func(t *testing.T) {
			assert.True(t, p.PartialMatches(""))
		})
	}
}

func TestLiteral(t *testing.T) {
	l := NewLiteral("new", Delimited(parser.Space))

	assert.True(t, l.PartialMatches("ne"))
	assert.True(t, l.PartialMatches("new"))
	assert.False(t, l.PartialMatches("newx"))
	assert.False(t, l.PartialMatches("x"))

	assert.True(t, l.CompleteMatches("new"))
	assert.False(t, l.CompleteMatches("ne"))

	assert.Equal(t, "new", l.AutoComplete("n"))
	assert.Equal(t, "new", l.AutoComplete("new"))
	assert.Equal(t, "x", l.AutoComplete("x"))

	assert.Equal(t, "Foo", l.ExtractInput("new Foo"))
	assert.Equal(t, "old Foo", l.ExtractInput("old Foo"))

	v, err := l.Parse("new")
	require.NoError(t, err)
	assert.Equal(t, "new", v)

	_, err = l.Parse("ne")
	assert.True(t, errors.Is(err, ErrNoMatch))
}

func TestValue(t *testing.T) {
	reg := coerce.NewRegistry()
	v := NewValue(objtypes.KindInt, reg)

	tests := []struct {
		input    string
		partial  bool
		complete bool
	}{
		{"", true, false},
		{" ", true, false},
		{"4", true, true},
		{"42", true, true},
		{"abc", true, true},
		{"4, 5", false, false},
		{`"4, 5"`, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.partial, v.PartialMatches(tt.input))
			assert.Equal(t, tt.complete, v.CompleteMatches(tt.input))
		})
	}

	parsed, err := v.Parse(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed)

	_, err = v.Parse("abc")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoMatch))

	_, err = v.Parse("")
	assert.True(t, errors.Is(err, ErrNoMatch))

	assert.Equal(t, "rest", v.ExtractInput("42, rest"))
	assert.Equal(t, "4", v.AutoComplete("4"))
}

func TestValue_BoolAutoComplete(t *testing.T) {
	v := NewValue(objtypes.KindBool, coerce.NewRegistry())

	assert.Equal(t, "true", v.AutoComplete("t"))
	assert.Equal(t, "true", v.AutoComplete("tru"))
	assert.Equal(t, "false", v.AutoComplete("fa"))
	assert.Equal(t, "x", v.AutoComplete("x"))
	assert.Equal(t, "", v.AutoComplete(""))
}

func TestValue_WithoutRegistry(t *testing.T) {
	v := NewValue(objtypes.KindString, nil)

	parsed, err := v.Parse(` "a b" `)
	require.NoError(t, err)
	assert.Equal(t, "a b", parsed)
}

func TestReference(t *testing.T) {
	source := staticCandidates("alice", "alfred", "bob")
	strict := NewReference(source)
	loose := NewReference(source, AllowUniquePrefix())

	assert.True(t, strict.PartialMatches("al"))
	assert.True(t, strict.PartialMatches("bob"))
	assert.False(t, strict.PartialMatches("x"))

	assert.True(t, strict.CompleteMatches("alice"))
	assert.False(t, strict.CompleteMatches("bo"))
	assert.True(t, loose.CompleteMatches("bo"))
	assert.False(t, loose.CompleteMatches("al"))
	assert.False(t, loose.CompleteMatches(""))

	_, err := loose.Parse("al")
	assert.True(t, errors.Is(err, ErrAmbiguous))
	_, err = strict.Parse("zz")
	assert.True(t, errors.Is(err, ErrNoMatch))
	_, err = strict.Parse("bo")
	assert.True(t, errors.Is(err, ErrNoMatch))

	id, err := loose.Parse("bo")
	require.NoError(t, err)
	assert.Equal(t, "bob", id)

	assert.Equal(t, "bob", strict.AutoComplete("b"))
	assert.Equal(t, "al", strict.AutoComplete("al"))
	assert.Equal(t, "alice", strict.AutoComplete("ali"))
	assert.Equal(t, "", strict.AutoComplete(""))

	assert.Equal(t, "rest", strict.ExtractInput("alice, rest"))
	assert.Equal(t, "ali, rest", strict.ExtractInput("ali, rest"))
}

func TestReference_ExactMatchWins(t *testing.T) {
	r := NewReference(staticCandidates("Point", "PointCloud"))

	assert.True(t, r.CompleteMatches("Point"))
	assert.Equal(t, "Point", r.AutoComplete("Point"))
	assert.Equal(t, "Poi", r.AutoComplete("Poi"))

	id, err := r.Parse("Point")
	require.NoError(t, err)
	assert.Equal(t, "Point", id)
}

func TestArguments(t *testing.T) {
	args := Arguments{{Value: "a"}, {Value: int64(1)}}

	assert.Equal(t, []any{"a", int64(1)}, args.Values())
	assert.Equal(t, int64(1), args.At(1))
	assert.Nil(t, args.At(2))
	assert.Nil(t, args.At(-1))
}
