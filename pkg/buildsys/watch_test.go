package buildsys

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsInside(t *testing.T) {
	dist := filepath.FromSlash("/project/dist")

	assert.True(t, isInside(dist, dist))
	assert.True(t, isInside(dist, filepath.FromSlash("/project/dist/App.js")))
	assert.False(t, isInside(dist, filepath.FromSlash("/project/src/App.ts")))
	assert.False(t, isInside(dist, filepath.FromSlash("/project/distribution/App.js")))
}

func TestWatchBuildsOnStart(t *testing.T) {
	plan := testProject(t, "App.ts")
	plan.Compiler = "true"
	writeFile(t, filepath.Join(plan.Base, "src", "minecraft", "static", "index.html"), "")

	ctx, cancel := context.WithCancel(testContext(t))
	defer cancel()

	builds := make(chan *Record, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, plan, BuildOptions{DryRun: true}, 10*time.Millisecond, func(record *Record, err error) {
			assert.NoError(t, err)
			select {
			case builds <- record:
			default:
			}
		})
	}()

	select {
	case record := <-builds:
		assert.Equal(t, []string{"src/minecraft/App.ts"}, record.Sources)
	case <-time.After(5 * time.Second):
		t.Fatal("no build happened")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch didn't stop")
	}
}

func TestWatchRebuildsOnChange(t *testing.T) {
	plan := testProject(t, "App.ts")
	// output inside a watched directory to make sure the watcher ignores it
	plan.SetOutDir("src/minecraft/build")
	writeFile(t, filepath.Join(plan.Base, "src", "minecraft", "build", "App.js"), "")
	writeFile(t, filepath.Join(plan.Base, "src", "minecraft", "static", "index.html"), "")

	ctx, cancel := context.WithCancel(testContext(t))
	defer cancel()

	builds := make(chan *Record, 10)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, plan, BuildOptions{DryRun: true}, 10*time.Millisecond, func(record *Record, err error) {
			assert.NoError(t, err)
			builds <- record
		})
	}()

	select {
	case <-builds:
	case <-time.After(5 * time.Second):
		t.Fatal("no build happened")
	}

	writeFile(t, filepath.Join(plan.Base, "src", "minecraft", "build", "App.js"), "compiled")
	select {
	case record := <-builds:
		t.Fatalf("unexpected rebuild after output change: %v", record)
	case <-time.After(300 * time.Millisecond):
	}

	writeFile(t, filepath.Join(plan.Base, "src", "minecraft", "Cube.ts"), "")
	select {
	case record := <-builds:
		assert.Equal(t, []string{"src/minecraft/App.ts", "src/minecraft/Cube.ts"}, record.Sources)
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after a source change")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch didn't stop")
	}
}
