package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngld/mcbuild/pkg/buildsys"
)

func TestShowLastRecord(t *testing.T) {
	plan := buildsys.DefaultPlan()
	plan.Base = t.TempDir()

	out := bytes.Buffer{}
	err := showLastRecord(&out, plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no build record found")

	require.NoError(t, buildsys.WriteRecord(buildsys.RecordPath(plan), &buildsys.Record{
		ID:         "V1StGXR8_Z5jdHi6B-myT",
		Started:    time.Now(),
		Duration:   2 * time.Second,
		Command:    "tsc --outDir dist src/minecraft/App.ts [x]",
		Sources:    []string{"src/minecraft/App.ts"},
		ExitStatus: 2,
		Copied:     4,
	}))

	require.NoError(t, showLastRecord(&out, plan))
	text := out.String()
	assert.Contains(t, text, "Build V1StGXR8_Z5jdHi6B-myT")
	assert.Contains(t, text, "sources:  1")
	assert.Contains(t, text, "      src/minecraft/App.ts\n")
	assert.Contains(t, text, "      tsc --outDir dist src/minecraft/App.ts [x]\n")
	assert.Contains(t, text, "compiler: failed with status 2")
	assert.Contains(t, text, "assets:   4 files copied")
}

func TestPrintRecordSuccess(t *testing.T) {
	out := bytes.Buffer{}
	printRecord(&out, &buildsys.Record{ID: "abc", Started: time.Now()})

	assert.Contains(t, out.String(), "compiler: ok")
	assert.Contains(t, out.String(), "assets:   0 files copied")
}
