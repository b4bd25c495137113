package buildsys

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCache(t *testing.T) {
	plan := testProject(t)
	path := RecordPath(plan)
	assert.Equal(t, filepath.Join(plan.Base, "dist", ".mcbuild.cache"), path)

	_, err := ReadRecord(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	record := &Record{
		ID:         "abc",
		Started:    time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC),
		Command:    "tsc src/minecraft/App.ts",
		Sources:    []string{"src/minecraft/App.ts"},
		ExitStatus: 1,
		Copied:     3,
	}
	require.NoError(t, WriteRecord(path, record))

	saved, err := ReadRecord(path)
	require.NoError(t, err)
	assert.Equal(t, record.ID, saved.ID)
	assert.True(t, record.Started.Equal(saved.Started))
	assert.Equal(t, record.Sources, saved.Sources)
	assert.Equal(t, 1, saved.ExitStatus)

	// writing again replaces the previous record
	record.ID = "def"
	require.NoError(t, WriteRecord(path, record))
	saved, err = ReadRecord(path)
	require.NoError(t, err)
	assert.Equal(t, "def", saved.ID)
}
