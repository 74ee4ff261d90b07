package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objshell/pkg/objtypes"
)

// AssertInvoked checks that result succeeded and returns its value.
func AssertInvoked(t *testing.T, result *objtypes.InvocationResult) any {
	t.Helper()
	require.NotNil(t, result, "expected a result")
	require.Equal(t, objtypes.StatusInvoked, result.Status, "diagnostic: %s", result.Diagnostic)
	return result.Value
}

// AssertFailure checks the status and failure kind of result.
func AssertFailure(t *testing.T, result *objtypes.InvocationResult, status objtypes.InvocationStatus, kind objtypes.FailureKind) {
	t.Helper()
	require.NotNil(t, result, "expected a result")
	assert.Equal(t, status, result.Status, "diagnostic: %s", result.Diagnostic)
	assert.Equal(t, kind, result.Failure, "diagnostic: %s", result.Diagnostic)
	assert.NotEmpty(t, result.Diagnostic)
}

// CreateTempFile creates a file with content in a test temp dir and returns its path.
func CreateTempFile(t *testing.T, filename, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), filename)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err, "Should create temp file successfully")
	return path
}
