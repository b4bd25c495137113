package buildsys

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

func TestBuildCommand(t *testing.T) {
	plan := DefaultPlan()
	sources := []string{"src/minecraft/App.ts", "src/minecraft/Chunk.ts", "src/minecraft/Cube.ts"}

	cmd, err := BuildCommand(plan, sources)
	require.NoError(t, err)
	assert.Equal(t, "tsc --allowJs -m ES6 -t ES6 --outDir dist --sourceMap --alwaysStrict "+
		"src/minecraft/App.ts src/minecraft/Chunk.ts src/minecraft/Cube.ts "+
		"./src/lib/vue/vue.js ./src/lib/rand-seed/Rand.js", cmd)
}

func TestBuildCommandCountsFiles(t *testing.T) {
	plan := DefaultPlan()

	for n := 0; n < 5; n++ {
		sources := make([]string, n)
		for idx := range sources {
			sources[idx] = fmt.Sprintf("src/minecraft/File%d.ts", idx)
		}

		cmd, err := BuildCommand(plan, sources)
		require.NoError(t, err)

		fields := strings.Fields(cmd)
		files := fields[1+len(plan.Flags):]
		require.Len(t, files, n+2)
		assert.Equal(t, sources, files[:n])
		assert.Equal(t, plan.ExtraFiles, files[n:])
	}
}

func TestBuildCommandQuoting(t *testing.T) {
	plan := DefaultPlan()
	plan.Flags = nil
	plan.ExtraFiles = nil

	cmd, err := BuildCommand(plan, []string{"my sources/App.ts", "$HOME.ts"})
	require.NoError(t, err)
	assert.Equal(t, "tsc 'my sources/App.ts' '$HOME.ts'", cmd)

	cmd, err = BuildCommand(plan, []string{"it's.ts", "say \"hi\".ts", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"tsc", "it's.ts", "say \"hi\".ts", ""}, commandArgs(t, cmd))
}

// commandArgs parses a command line the same way the runner does and returns the resulting arguments
func commandArgs(t *testing.T, command string) []string {
	t.Helper()

	file, err := syntax.NewParser().Parse(strings.NewReader(command), "command")
	require.NoError(t, err)
	require.Len(t, file.Stmts, 1)

	call, ok := file.Stmts[0].Cmd.(*syntax.CallExpr)
	require.True(t, ok)

	args := make([]string, len(call.Args))
	for idx, word := range call.Args {
		args[idx], err = expand.Literal(nil, word)
		require.NoError(t, err)
	}
	return args
}
