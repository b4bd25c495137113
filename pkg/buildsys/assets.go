package buildsys

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"github.com/rotisserie/eris"
	"github.com/schollz/progressbar/v3"
)

func getProgressBar(length int64, desc string, out io.Writer) *progressbar.ProgressBar {
	if out == nil || os.Getenv("CI") == "true" {
		return progressbar.NewOptions64(length, progressbar.OptionSetVisibility(false))
	}

	return progressbar.NewOptions64(length,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(out, "\n")
		}),
	)
}

// CopyAssets recursively copies the plan's static directory into the output directory. Existing files
// are overwritten and existing directories merged. It returns the number of copied files.
func CopyAssets(ctx context.Context, plan *Plan, opts BuildOptions) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	src := plan.Resolve(plan.StaticDir)
	dest := plan.Resolve(plan.OutDir)

	info, err := os.Stat(src)
	if err != nil {
		return 0, eris.Wrapf(err, "failed to access static directory %s", src)
	}

	if !info.IsDir() {
		return 0, eris.Errorf("%s is not a directory", src)
	}

	files := 0
	var totalSize int64
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			info, err := d.Info()
			if err != nil {
				return err
			}

			files++
			totalSize += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, eris.Wrapf(err, "failed to scan %s", src)
	}

	log(ctx).Info().
		Str("task", "assets").
		Str("path", src).
		Msgf("copying %d files from %s to %s", files, src, dest)

	bar := getProgressBar(totalSize, "copying assets", opts.Progress)
	err = copy.Copy(src, dest, copy.Options{
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Deep
		},
		OnDirExists: func(string, string) copy.DirExistsAction {
			return copy.Merge
		},
		WrapReader: func(r io.Reader) io.Reader {
			return io.TeeReader(r, bar)
		},
	})
	_ = bar.Finish()
	if err != nil {
		return 0, eris.Wrapf(err, "failed to copy %s to %s", src, dest)
	}

	return files, nil
}
