package buildsys

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

var defaultExecHandler = interp.DefaultExecHandler(2 * time.Second)

func execHandler(ctx context.Context, args []string) error {
	if len(args) > 0 {
		log(ctx).Debug().
			Str("task", "tsc").
			Strs("args", args).
			Msgf("executing %s", args[0])
	}

	return defaultExecHandler(ctx, args)
}

var defaultOpenHandler = interp.DefaultOpenHandler()

func openHandler(ctx context.Context, path string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	if path == "/dev/null" {
		path = os.DevNull
	}

	return defaultOpenHandler(ctx, path, flag, perm)
}

func getEnv(overrides map[string]string) expand.Environ {
	envVars := os.Environ()

	for name, value := range overrides {
		envVars = append(envVars, fmt.Sprintf("%s=%s", name, value))
	}

	return expand.ListEnviron(envVars...)
}

func parseCommand(parser *syntax.Parser, command string) ([]*syntax.Stmt, error) {
	result, err := parser.Parse(strings.NewReader(command), "command")
	if err != nil {
		return nil, eris.Wrapf(err, "failed to parse command %s", command)
	}

	return result.Stmts, nil
}

// RunCompiler executes the passed command line in the plan's base directory and waits for it to finish.
// The compiler's exit status is returned but a non-zero status is not treated as an error; only
// failures of the shell itself are.
func RunCompiler(ctx context.Context, plan *Plan, command string, opts BuildOptions) (int, error) {
	stmts, err := parseCommand(syntax.NewParser(), command)
	if err != nil {
		return 0, err
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	runner, err := interp.New(
		interp.Dir(plan.Base),
		interp.Env(getEnv(opts.Env)),
		interp.ExecHandler(execHandler),
		interp.OpenHandler(openHandler),
		interp.StdIO(nil, stdout, stderr),
		interp.Params("-e"),
	)
	if err != nil {
		return 0, eris.Wrap(err, "failed to initialize runner")
	}

	for _, stmt := range stmts {
		err = runner.Run(ctx, stmt)
		if err != nil {
			if status, ok := interp.IsExitStatus(err); ok {
				log(ctx).Warn().
					Str("task", "tsc").
					Int("status", int(status)).
					Msgf("%s exited with status %d", plan.Compiler, status)

				return int(status), nil
			}

			if ctxErr := ctx.Err(); ctxErr != nil {
				return 0, ctxErr
			}

			return 0, eris.Wrapf(err, "failed to run %s", plan.Compiler)
		}

		if runner.Exited() {
			break
		}
	}

	return 0, nil
}
