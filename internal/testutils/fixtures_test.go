package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objshell/internal/coerce"
	"objshell/internal/dispatch"
	"objshell/internal/registry"
	"objshell/pkg/objtypes"
)

func TestFixtureMethods_RejectForeignReceiver(t *testing.T) {
	types := registry.New()
	require.NoError(t, RegisterTestTypes(types))
	resolver := dispatch.NewResolver(types, dispatch.NewInvoker(coerce.NewRegistry()))
	foreign := &TestAnnotatedSingletonImpl{Name: "single"}

	tests := []struct {
		method string
		raw    []string
	}{
		{"value", nil},
		{"scale", []string{"2"}},
		{"scale", []string{"2", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			result := resolver.Call("TestAnotherAnnotatedSingletonImpl", tt.method, foreign, tt.raw)
			AssertFailure(t, result, objtypes.StatusFailed, objtypes.FailureAccess)
			assert.Contains(t, result.Diagnostic, "is not a TestAnotherAnnotatedSingletonImpl")
		})
	}
}

func TestFixtureMethods_OwnReceiver(t *testing.T) {
	types := registry.New()
	require.NoError(t, RegisterTestTypes(types))
	resolver := dispatch.NewResolver(types, dispatch.NewInvoker(coerce.NewRegistry()))
	gauge := &TestAnotherAnnotatedSingletonImpl{Name: "gauge", Value: 3}

	assert.Equal(t, 7.0, AssertInvoked(t, resolver.Call("TestAnotherAnnotatedSingletonImpl", "scale", gauge, []string{"2", "1"})))
	assert.Equal(t, 7.0, AssertInvoked(t, resolver.Call("TestAnotherAnnotatedSingletonImpl", "value", gauge, nil)))
}
