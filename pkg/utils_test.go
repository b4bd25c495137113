package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "minecraft")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "build.star"), nil, 0o644))

	found, err := GetProjectRoot(nested, "build.star", ".git")
	require.NoError(t, err)
	assert.Equal(t, root, found)

	found, err = GetProjectRoot(root, "build.star")
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestGetProjectRootFallback(t *testing.T) {
	start := t.TempDir()

	found, err := GetProjectRoot(start, "mcbuild-marker-that-does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, start, found)
}
