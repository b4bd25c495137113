package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ngld/mcbuild/pkg/buildsys"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [option=value...]",
	Short: "Removes the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, args)
		if err != nil {
			return err
		}
		defer env.cancel()

		return cleanOutput(env.logger, env.plan)
	},
}

// cleanOutput removes the plan's output directory. Directories outside of the plan's base (or the base
// itself) are never removed.
func cleanOutput(logger *zerolog.Logger, plan *buildsys.Plan) error {
	outDir := plan.Resolve(plan.OutDir)
	rel, err := filepath.Rel(plan.Base, outDir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return eris.Errorf("refusing to delete %s because it's not inside the project", outDir)
	}

	logger.Info().Str("path", outDir).Msgf("Removing %s", outDir)
	err = os.RemoveAll(outDir)
	if err != nil && !eris.Is(err, os.ErrNotExist) {
		return eris.Wrapf(err, "Could not delete %s", outDir)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
