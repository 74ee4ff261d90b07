package commands

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"objshell/pkg/objtypes"
)

type namedEntity string

func (n namedEntity) Identification() string { return string(n) }

// mockEntities is a fixed EntityLookup.
type mockEntities map[string]string

func (m mockEntities) Lookup(id string) (objtypes.EntityRecord, bool) {
	category, ok := m[id]
	if !ok {
		return objtypes.EntityRecord{}, false
	}
	return objtypes.EntityRecord{ID: id, Category: category, Value: namedEntity(id)}, true
}

func (m mockEntities) MatchPrefix(category, prefix string) []objtypes.EntityRecord {
	var out []objtypes.EntityRecord
	for id, c := range m {
		if (category == "" || c == category) && strings.HasPrefix(id, prefix) {
			out = append(out, objtypes.EntityRecord{ID: id, Category: c, Value: namedEntity(id)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func TestLiteralKey(t *testing.T) {
	k := NewLiteralKey("new")

	tests := []struct {
		input    string
		partial  bool
		complete bool
		expr     string
		rest     string
	}{
		{"", true, false, "", ""},
		{"n", true, false, "n", "n"},
		{"new", true, true, "new", ""},
		{"new ", true, true, "new", ""},
		{"new Foo( a )", true, true, "new", "Foo( a )"},
		{"new   Foo( a )", true, true, "new", "Foo( a )"},
		{"newx", false, false, "newx", "newx"},
		{"ne Foo", false, false, "ne", "ne Foo"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.partial, k.PartialMatches(tt.input))
			assert.Equal(t, tt.complete, k.CompleteMatches(tt.input))
			assert.Equal(t, tt.expr, k.KeyExpression(tt.input))
			assert.Equal(t, tt.rest, k.RemoveKey(tt.input))
		})
	}

	completed, ok := k.AutoComplete("n")
	assert.True(t, ok)
	assert.Equal(t, "new", completed)

	_, ok = k.AutoComplete("x")
	assert.False(t, ok)
	assert.Equal(t, " ", k.Separator())
	assert.Equal(t, "new", k.Keyword())
}

func TestEntityKey(t *testing.T) {
	k := NewEntityKey(mockEntities{"alice": "Account", "alfred": "Account", "bob": "Point"}, '.')

	tests := []struct {
		input    string
		partial  bool
		complete bool
		expr     string
		rest     string
	}{
		{"", true, false, "", ""},
		{"al", true, false, "al", "al"},
		{"alice", true, false, "alice", "alice"},
		{"alice.", true, true, "alice.", ""},
		{"alice.deposit( 1 )", true, true, "alice.", "deposit( 1 )"},
		{"ali.", false, false, "ali.", "ali."},
		{"zed", false, false, "zed", "zed"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.partial, k.PartialMatches(tt.input))
			assert.Equal(t, tt.complete, k.CompleteMatches(tt.input))
			assert.Equal(t, tt.expr, k.KeyExpression(tt.input))
			assert.Equal(t, tt.rest, k.RemoveKey(tt.input))
		})
	}

	assert.Equal(t, "alice", k.Entity("alice.deposit( 1 )"))
	assert.Equal(t, ".", k.Separator())
}

func TestEntityKey_AutoComplete(t *testing.T) {
	k := NewEntityKey(mockEntities{"alice": "Account", "alfred": "Account", "bob": "Point"}, '.')

	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"b", "bob.", true},
		{"bob", "bob.", true},
		{"ali", "alice.", true},
		{"al", "", false},
		{"", "", false},
		{"zed", "", false},
		{"ali.", "", false},
		{"alice.", "alice.", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			completed, ok := k.AutoComplete(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, completed)
		})
	}
}
