package buildsys

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	t.Helper()

	logger := zerolog.New(zerolog.NewTestWriter(t))
	return WithLogger(context.Background(), &logger)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// testProject creates a project layout matching the default plan inside a temporary directory
func testProject(t *testing.T, sources ...string) *Plan {
	t.Helper()

	root := t.TempDir()
	for _, name := range sources {
		writeFile(t, filepath.Join(root, "src", "minecraft", name), "export const x = 1;\n")
	}

	plan := DefaultPlan()
	plan.Base = root
	return plan
}
