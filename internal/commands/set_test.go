package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objshell/internal/grammar"
	"objshell/internal/parser"
	"objshell/pkg/objtypes"
)

func newKeywordCommand(name string) *Command {
	return &Command{
		Name:    name,
		Summary: fmt.Sprintf("Mock command: %s", name),
		Usage:   name,
		Key:     NewLiteralKey(name),
		Run: func(Invocation) *objtypes.InvocationResult {
			return objtypes.Invoked(name)
		},
	}
}

func TestSet_NewSet(t *testing.T) {
	set := NewSet()

	assert.NotNil(t, set)
	assert.Empty(t, set.All())
}

func TestSet_Register(t *testing.T) {
	tests := []struct {
		name        string
		cmd         *Command
		expectError bool
		errorMsg    string
	}{
		{"valid command", newKeywordCommand("help"), false, ""},
		{"nil command", nil, true, "command cannot be nil"},
		{"empty name", &Command{Key: NewLiteralKey("x")}, true, "command name cannot be empty"},
		{"missing key", &Command{Name: "x"}, true, "command x has no key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewSet()
			err := set.Register(tt.cmd)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			got, ok := set.Get(tt.cmd.Name)
			assert.True(t, ok)
			assert.Same(t, tt.cmd, got)
		})
	}
}

func TestSet_RegisterDuplicate(t *testing.T) {
	set := NewSet()

	require.NoError(t, set.Register(newKeywordCommand("help")))
	err := set.Register(newKeywordCommand("help"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command help already registered")
	assert.Len(t, set.All(), 1)
}

func TestSet_Unregister(t *testing.T) {
	set := NewSet()
	for _, name := range []string{"help", "history", "types"} {
		require.NoError(t, set.Register(newKeywordCommand(name)))
	}

	set.Unregister("history")
	set.Unregister("missing")

	_, ok := set.Get("history")
	assert.False(t, ok)
	all := set.All()
	require.Len(t, all, 2)
	assert.Equal(t, "help", all[0].Name)
	assert.Equal(t, "types", all[1].Name)
}

func TestSet_Matching(t *testing.T) {
	set := NewSet()
	for _, name := range []string{"help", "history", "types"} {
		require.NoError(t, set.Register(newKeywordCommand(name)))
	}

	assert.Len(t, set.Matching(""), 3)
	assert.Len(t, set.Matching("h"), 2)
	assert.Len(t, set.Matching("ty"), 1)
	assert.Empty(t, set.Matching("z"))
}

func TestSet_AutoComplete(t *testing.T) {
	set := NewSet()
	for _, name := range []string{"help", "history", "types"} {
		require.NoError(t, set.Register(newKeywordCommand(name)))
	}

	assert.Equal(t, "h", set.AutoComplete("h"))
	assert.Equal(t, "history", set.AutoComplete("hi"))
	assert.Equal(t, "types", set.AutoComplete("t"))
	assert.Equal(t, "z", set.AutoComplete("z"))
	assert.Equal(t, "", set.AutoComplete(""))
}

func TestSet_AutoCompleteAgreeingCommands(t *testing.T) {
	set := NewSet()
	seq := grammar.NewSequence(parser.Space, grammar.NewLiteral("all"))
	require.NoError(t, set.Register(&Command{Name: "show", Key: NewLiteralKey("show"), Params: seq}))
	require.NoError(t, set.Register(&Command{Name: "show-again", Key: NewLiteralKey("show"), Params: seq}))

	assert.Equal(t, "show all", set.AutoComplete("show a"))
}

func TestSet_Resolve(t *testing.T) {
	set := NewSet()
	require.NoError(t, set.Register(newKeywordCommand("help")))
	require.NoError(t, set.Register(newSetCommand(echoArgs)))

	cmd, err := set.Resolve("help")
	require.NoError(t, err)
	assert.Equal(t, "help", cmd.Name)

	_, err = set.Resolve("set limit")
	assert.True(t, errors.Is(err, ErrIncomplete))

	_, err = set.Resolve("bogus")
	assert.True(t, errors.Is(err, ErrUnknownCommand))

	require.NoError(t, set.Register(&Command{Name: "help-twice", Key: NewLiteralKey("help")}))
	_, err = set.Resolve("help")
	assert.True(t, errors.Is(err, ErrAmbiguousCommand))
}

func TestSet_Execute(t *testing.T) {
	set := NewSet()
	require.NoError(t, set.Register(newSetCommand(echoArgs)))

	result, err := set.Execute(context.Background(), "set level to 3")
	require.NoError(t, err)
	assert.Equal(t, []any{"level", "to", int64(3)}, result.Value)

	_, err = set.Execute(context.Background(), "set level to")
	assert.True(t, errors.Is(err, ErrIncomplete))
}

func TestSet_ConcurrentAccess(t *testing.T) {
	set := NewSet()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = set.Register(newKeywordCommand(fmt.Sprintf("cmd%d", i)))
		}(i)
		go func() {
			defer wg.Done()
			_ = set.AutoComplete("cmd")
			_ = set.Matching("cmd1")
		}()
	}
	wg.Wait()

	assert.Len(t, set.All(), 10)
}
