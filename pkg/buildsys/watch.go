package buildsys

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rotisserie/eris"
)

// DefaultDebounce is the time Watch waits after the last change before it rebuilds
const DefaultDebounce = 300 * time.Millisecond

// Watch builds the plan once and then again whenever something in the source or static directories
// changes. It blocks until ctx is cancelled. Failed builds are logged and don't stop the watcher.
// onBuild (if not nil) is called after every build attempt.
func Watch(ctx context.Context, plan *Plan, opts BuildOptions, debounce time.Duration, onBuild func(*Record, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return eris.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	for _, dir := range []string{plan.SourceDir, plan.StaticDir} {
		err = addWatchTree(watcher, plan.Resolve(dir))
		if err != nil {
			return err
		}
	}

	runBuild := func() {
		record, err := Build(ctx, plan, opts)
		if err != nil && ctx.Err() == nil {
			log(ctx).Error().Err(err).Msg("Build failed")
		}

		if onBuild != nil {
			onBuild(record, err)
		}
	}

	runBuild()

	outDir := plan.Resolve(plan.OutDir)
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// don't react to our own output if it lives inside a watched directory
			if isInside(outDir, event.Name) {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				info, err := os.Stat(event.Name)
				if err == nil && info.IsDir() {
					err = addWatchTree(watcher, event.Name)
					if err != nil {
						log(ctx).Warn().Err(err).Msgf("failed to watch %s", event.Name)
					}
				}
			}

			log(ctx).Debug().
				Str("task", "watch").
				Str("path", event.Name).
				Msgf("%s: %s", event.Op, event.Name)

			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log(ctx).Warn().Err(err).Msg("file watcher error")
		case <-timer.C:
			log(ctx).Info().Str("task", "watch").Msg("change detected, rebuilding")
			runBuild()
		}
	}
}

func addWatchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && eris.Is(err, os.ErrNotExist) {
				// nothing to watch (yet); the build reports missing directories
				return filepath.SkipDir
			}
			return err
		}

		if d.IsDir() {
			err = watcher.Add(path)
			if err != nil {
				return eris.Wrapf(err, "failed to watch %s", path)
			}
		}
		return nil
	})
}

func isInside(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
