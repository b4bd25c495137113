package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngld/mcbuild/pkg/buildsys"
)

func TestCleanOutput(t *testing.T) {
	logger := zerolog.Nop()
	plan := buildsys.DefaultPlan()
	plan.Base = t.TempDir()

	dist := filepath.Join(plan.Base, "dist")
	require.NoError(t, os.MkdirAll(filepath.Join(dist, "textures"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "App.js"), nil, 0o644))

	require.NoError(t, cleanOutput(&logger, plan))
	_, err := os.Stat(dist)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// nothing left to delete
	require.NoError(t, cleanOutput(&logger, plan))
}

func TestCleanOutputOutsideProject(t *testing.T) {
	logger := zerolog.Nop()
	parent := t.TempDir()
	outside := filepath.Join(parent, "elsewhere")
	require.NoError(t, os.MkdirAll(outside, 0o755))

	plan := buildsys.DefaultPlan()
	plan.Base = filepath.Join(parent, "project")
	require.NoError(t, os.MkdirAll(plan.Base, 0o755))

	for _, outDir := range []string{"../elsewhere", outside, ".", ".."} {
		plan.OutDir = outDir
		assert.Error(t, cleanOutput(&logger, plan), outDir)
	}

	_, err := os.Stat(outside)
	assert.NoError(t, err)
	_, err = os.Stat(plan.Base)
	assert.NoError(t, err)
}
