package buildsys

import (
	"context"
	"io"
	"time"

	"github.com/aidarkhanov/nanoid"
	"github.com/rotisserie/eris"
)

// BuildOptions controls how a plan is executed
type BuildOptions struct {
	// DryRun only logs the compiler command; neither the compiler nor the asset copy runs
	DryRun bool
	// SaveRecord stores the result in the output directory (see RecordPath)
	SaveRecord bool
	// Env contains additional environment variables for the compiler
	Env map[string]string

	Stdout io.Writer
	Stderr io.Writer
	// Progress receives the asset copy progress bar; nil hides it
	Progress io.Writer
}

// Build runs the full sequence for the given plan: source discovery, compiler invocation and asset copy.
// A failing compiler doesn't fail the build, its status is only recorded. A failing asset copy does.
func Build(ctx context.Context, plan *Plan, opts BuildOptions) (*Record, error) {
	err := plan.Validate()
	if err != nil {
		return nil, eris.Wrap(err, "invalid build plan")
	}

	record := &Record{
		ID:      nanoid.New(),
		Started: time.Now(),
		DryRun:  opts.DryRun,
	}

	record.Sources, err = DiscoverSources(ctx, plan)
	if err != nil {
		return nil, err
	}

	record.Command, err = BuildCommand(plan, record.Sources)
	if err != nil {
		return nil, err
	}

	// no level so that it's printed regardless of the configured log level
	log(ctx).Log().
		Str("task", "tsc").
		Bool("command", true).
		Msg("Building TypeScript: " + record.Command)

	if opts.DryRun {
		record.Duration = time.Since(record.Started)
		return record, nil
	}

	record.ExitStatus, err = RunCompiler(ctx, plan, record.Command, opts)
	if err != nil {
		return nil, err
	}

	record.Copied, err = CopyAssets(ctx, plan, opts)
	if err != nil {
		return nil, err
	}

	record.Duration = time.Since(record.Started)

	if opts.SaveRecord {
		err = WriteRecord(RecordPath(plan), record)
		if err != nil {
			log(ctx).Warn().Err(err).Msg("failed to save the build record")
		}
	}

	return record, nil
}
