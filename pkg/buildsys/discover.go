package buildsys

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// DiscoverSources returns all files in the plan's source directory that end in the plan's extension.
// The result is relative to the plan's base and sorted in glob order. An empty source directory is
// not an error.
func DiscoverSources(ctx context.Context, plan *Plan) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	srcDir := filepath.ToSlash(plan.Resolve(plan.SourceDir))
	pattern := "*" + plan.Extension

	// The directory is quoted so that only the file name part is treated as a pattern.
	word := &syntax.Word{
		Parts: []syntax.WordPart{
			&syntax.SglQuoted{Value: strings.TrimSuffix(srcDir, "/") + "/"},
			&syntax.Lit{Value: pattern},
		},
	}

	cfg := expand.Config{
		ReadDir:  shellReadDir,
		GlobStar: true,
		NullGlob: true,
	}

	matches, err := expand.Fields(&cfg, word)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to resolve pattern %s/%s", srcDir, pattern)
	}

	base := filepath.Clean(plan.Base)
	result := make([]string, 0, len(matches))
	for _, match := range matches {
		if base != "." {
			rel, err := filepath.Rel(base, filepath.FromSlash(match))
			if err == nil {
				match = rel
			}
		}

		result = append(result, filepath.ToSlash(match))
	}

	log(ctx).Debug().
		Str("task", "discover").
		Int("count", len(result)).
		Msgf("found %d source files in %s", len(result), srcDir)

	return result, nil
}
