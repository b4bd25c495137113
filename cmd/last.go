package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ngld/mcbuild/pkg"
	"github.com/ngld/mcbuild/pkg/buildsys"
)

var lastCmd = &cobra.Command{
	Use:   "last [option=value...]",
	Short: "Shows the result of the last build",
	Long: `The compiler's exit status doesn't affect mcbuild's own exit status. This command shows
what happened during the last build, including the compiler's status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, args)
		if err != nil {
			return err
		}
		defer env.cancel()

		return showLastRecord(os.Stdout, env.plan)
	},
}

func showLastRecord(out io.Writer, plan *buildsys.Plan) error {
	recordPath := buildsys.RecordPath(plan)
	record, err := buildsys.ReadRecord(recordPath)
	if err != nil {
		if eris.Is(err, os.ErrNotExist) {
			return eris.Errorf("no build record found at %s", recordPath)
		}
		return err
	}

	printRecord(out, record)
	return nil
}

func printRecord(out io.Writer, record *buildsys.Record) {
	pkg.FprintTask(out, fmt.Sprintf("Build %s", record.ID))
	pkg.FprintSubtask(out, fmt.Sprintf("started:  %s (took %s)", record.Started.Format("2006-01-02 15:04:05"), record.Duration))
	pkg.FprintSubtask(out, fmt.Sprintf("sources:  %d", len(record.Sources)))
	for _, source := range record.Sources {
		fmt.Fprintf(out, "      %s\n", source)
	}
	pkg.FprintSubtask(out, "command:")
	fmt.Fprintf(out, "      %s\n", record.Command)

	if record.ExitStatus != 0 {
		pkg.FprintError(out, fmt.Sprintf("compiler: failed with status %d", record.ExitStatus))
	} else {
		pkg.FprintSubtask(out, "compiler: ok")
	}
	pkg.FprintSubtask(out, fmt.Sprintf("assets:   %d files copied", record.Copied))
}

func init() {
	rootCmd.AddCommand(lastCmd)
}
