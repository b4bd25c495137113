package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ngld/mcbuild/pkg"
	"github.com/ngld/mcbuild/pkg/buildsys"
	"github.com/ngld/mcbuild/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "mcbuild [option=value...]",
	Short: "Builds the WebGL Minecraft client",
	Long: `Compiles the TypeScript sources in src/minecraft with tsc and copies the static assets into dist.
If the project root contains a build.star script, it can override the paths and flags. Options
declared by the script can be passed as name=value.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, err := cmd.Flags().GetBool("dry")
		if err != nil {
			return err
		}

		env, err := setup(cmd, args)
		if err != nil {
			return err
		}
		defer env.cancel()

		env.opts.DryRun = dryRun
		record, err := buildsys.Build(env.ctx, env.plan, env.opts)
		if err != nil {
			return err
		}

		if record.ExitStatus != 0 {
			env.logger.Warn().Msgf("%s failed with status %d, the output may be incomplete", env.plan.Compiler, record.ExitStatus)
		}

		return nil
	},
}

type buildEnv struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *zerolog.Logger
	cfg    *config.Config
	plan   *buildsys.Plan
	opts   buildsys.BuildOptions
}

func newLogger(out io.Writer, json bool, level zerolog.Level) zerolog.Logger {
	if json {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	return zerolog.New(NewConsoleWriter(out)).Level(level)
}

// splitArgs separates name=value options from anything else
func splitArgs(args []string) (map[string]string, []string) {
	options := make(map[string]string)
	rest := make([]string, 0)

	for _, part := range args {
		pos := strings.Index(part, "=")
		if pos > 0 {
			options[part[:pos]] = part[pos+1:]
		} else {
			rest = append(rest, part)
		}
	}

	return options, rest
}

// projectRoot returns the nearest directory (starting at wd) that contains the build script. Without
// a script all paths are relative to wd itself, even if wd is part of a larger repository.
func projectRoot(wd string, cfg *config.Config) (string, error) {
	return pkg.GetProjectRoot(wd, cfg.Script)
}

// loadPlan returns the plan from the build script in root or the default plan if there's no script
func loadPlan(ctx context.Context, cfg *config.Config, root string, options map[string]string) (*buildsys.Plan, error) {
	scriptPath := filepath.Join(root, cfg.Script)

	var plan *buildsys.Plan
	_, err := os.Stat(scriptPath)
	if err == nil {
		plan, _, err = buildsys.LoadScript(ctx, scriptPath, root, options)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to load %s", cfg.Script)
		}
	} else if eris.Is(err, os.ErrNotExist) {
		if len(options) > 0 {
			return nil, eris.Errorf("options were passed but there's no %s to declare them", cfg.Script)
		}

		plan = buildsys.DefaultPlan()
		plan.Base = root
	} else {
		return nil, eris.Wrapf(err, "failed to check %s", scriptPath)
	}

	if cfg.Compiler != "" {
		plan.Compiler = cfg.Compiler
	}

	return plan, nil
}

func setup(cmd *cobra.Command, args []string) (*buildEnv, error) {
	options, rest := splitArgs(args)
	if len(rest) > 0 {
		return nil, eris.Errorf("unexpected argument %s", rest[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(os.Stderr, cfg.Log.JSON, cfg.LogLevel())
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	ctx = buildsys.WithLogger(ctx, &logger)

	wd, err := os.Getwd()
	if err != nil {
		cancel()
		return nil, eris.Wrap(err, "failed to retrieve the current working directory")
	}

	root, err := projectRoot(wd, cfg)
	if err != nil {
		cancel()
		return nil, err
	}

	plan, err := loadPlan(ctx, cfg, root, options)
	if err != nil {
		cancel()
		return nil, err
	}

	var progress io.Writer = os.Stderr
	if cfg.Log.JSON {
		progress = nil
	}

	return &buildEnv{
		ctx:    ctx,
		cancel: cancel,
		logger: &logger,
		cfg:    cfg,
		plan:   plan,
		opts: buildsys.BuildOptions{
			SaveRecord: cfg.Record,
			Progress:   progress,
		},
	}, nil
}

func init() {
	rootCmd.Flags().BoolP("dry", "n", false, "dry run; only print the compiler command, don't execute anything")
}

// failureLogger returns the logger used to report errors returned by the commands. It honours
// Log.JSON but falls back to console output if the config itself is broken.
func failureLogger(out io.Writer) zerolog.Logger {
	cfg, err := config.Load()
	if err != nil {
		return newLogger(out, false, zerolog.InfoLevel)
	}

	return newLogger(out, cfg.Log.JSON, zerolog.InfoLevel)
}

func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		logger := failureLogger(os.Stderr)
		logger.Error().Err(err).Msg("mcbuild failed")
		os.Exit(1)
	}
}
