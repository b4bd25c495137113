package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ngld/mcbuild/pkg/buildsys"
)

var watchCmd = &cobra.Command{
	Use:   "watch [option=value...]",
	Short: "Rebuilds whenever the sources or static assets change",
	RunE: func(cmd *cobra.Command, args []string) error {
		debounce, err := cmd.Flags().GetDuration("debounce")
		if err != nil {
			return err
		}

		env, err := setup(cmd, args)
		if err != nil {
			return err
		}
		defer env.cancel()

		env.logger.Info().Msg("Watching for changes, press Ctrl+C to stop")
		return buildsys.Watch(env.ctx, env.plan, env.opts, debounce, nil)
	},
}

func init() {
	watchCmd.Flags().Duration("debounce", buildsys.DefaultDebounce, "time to wait after the last change before rebuilding")
	rootCmd.AddCommand(watchCmd)
}
