package utils

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomError(t *testing.T) {
	cause := errors.New("boom")
	err := BadRequest("investment", "must be positive", cause)

	ce, ok := AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ce.Status)
	assert.Equal(t, "invalid_input", ce.Code)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "investment")

	_, ok = AsCustom(cause)
	assert.False(t, ok)

	wrapped := fmt.Errorf("decode roi request: %w", err)
	ce, ok = AsCustom(wrapped)
	require.True(t, ok)
	assert.Equal(t, "investment", ce.Field)
}

func TestGetProjectRootFindsGoMod(t *testing.T) {
	root := GetProjectRoot()
	_, err := os.Stat(filepath.Join(root, "go.mod"))
	assert.NoError(t, err)
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "", ResolvePath(""))
	assert.Equal(t, "/abs/content", ResolvePath("/abs/content"))
	// The package dir has no content/ of its own; it resolves to the root.
	assert.Equal(t, filepath.Join(GetProjectRoot(), "content"), ResolvePath("content"))
	assert.Equal(t, "utils_test.go", ResolvePath("utils_test.go"))
}
