package pkg

import (
	"io"
	"os"
	"path/filepath"

	"github.com/mitchellh/colorstring"
	"github.com/rotisserie/eris"
)

// GetProjectRoot walks up from start until it finds a directory containing one of the given marker
// files (i.e. build.star or .git). If none is found, start itself is returned.
func GetProjectRoot(start string, markers ...string) (string, error) {
	mypath, err := filepath.Abs(start)
	if err != nil {
		return "", eris.Wrap(err, "Failed to determine the start path")
	}

	for {
		for _, marker := range markers {
			_, err := os.Stat(filepath.Join(mypath, marker))
			if err == nil {
				return mypath, nil
			}

			if !eris.Is(err, os.ErrNotExist) {
				return "", eris.Wrap(err, "Error ocurred while searching for project root")
			}
		}

		nextPath := filepath.Dir(mypath)
		if mypath == nextPath {
			break
		}
		mypath = nextPath
	}

	return filepath.Abs(start)
}

func FprintTask(out io.Writer, msg string) {
	colorstring.Fprintf(out, "[blue][bold]==>[default] %s\n", msg)
}

func FprintSubtask(out io.Writer, msg string) {
	colorstring.Fprintf(out, "[green][bold]  ->[reset] %s\n", msg)
}

func FprintError(out io.Writer, msg string) {
	colorstring.Fprintf(out, "[red][bold]  ->[reset] %s\n", msg)
}
