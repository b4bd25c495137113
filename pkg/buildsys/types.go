package buildsys

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.starlark.net/starlark"
	starsyntax "go.starlark.net/syntax"
)

// Plan contains everything needed for a single build run. All relative paths are resolved against Base.
type Plan struct {
	Base       string
	SourceDir  string
	Extension  string
	OutDir     string
	Compiler   string
	Flags      []string
	ExtraFiles []string
	StaticDir  string
}

// DefaultPlan returns the plan used for the WebGL client when no build script overrides it
func DefaultPlan() *Plan {
	return &Plan{
		Base:      ".",
		SourceDir: "./src/minecraft",
		Extension: ".ts",
		OutDir:    "dist",
		Compiler:  "tsc",
		Flags: []string{
			"--allowJs",
			"-m", "ES6",
			"-t", "ES6",
			"--outDir", "dist",
			"--sourceMap",
			"--alwaysStrict",
		},
		ExtraFiles: []string{
			"./src/lib/vue/vue.js",
			"./src/lib/rand-seed/Rand.js",
		},
		StaticDir: "./src/minecraft/static",
	}
}

// Resolve returns path relative to the plan's base directory unless it's already absolute
func (p *Plan) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(p.Base, path)
}

// SetOutDir changes the output directory and keeps the compiler's --outDir flag in sync
func (p *Plan) SetOutDir(dir string) {
	p.OutDir = dir
	for idx, flag := range p.Flags {
		if flag == "--outDir" && idx+1 < len(p.Flags) {
			p.Flags[idx+1] = dir
		}
	}
}

// Validate checks that all required fields are set
func (p *Plan) Validate() error {
	switch {
	case p.SourceDir == "":
		return eris.New("the source directory is empty")
	case p.Extension == "":
		return eris.New("the source extension is empty")
	case p.OutDir == "":
		return eris.New("the output directory is empty")
	case p.Compiler == "":
		return eris.New("no compiler configured")
	case p.StaticDir == "":
		return eris.New("the static directory is empty")
	}

	return nil
}

// Record describes the outcome of the last build
type Record struct {
	ID         string
	Started    time.Time
	Duration   time.Duration
	Command    string
	Sources    []string
	ExitStatus int
	Copied     int
	DryRun     bool
}

type ScriptOption struct {
	DefaultValue starlark.String
	Help         string
}

func (o ScriptOption) Default() string {
	return o.DefaultValue.GoString()
}

// StarlarkPath is returned by resolve_path() and behaves like a string inside scripts
type StarlarkPath string

func (p StarlarkPath) String() string {
	return starlark.String(p).String()
}

func (p StarlarkPath) Type() string {
	return "path"
}

func (p StarlarkPath) Freeze() {}

func (p StarlarkPath) Truth() starlark.Bool {
	return p != ""
}

func (p StarlarkPath) Hash() (uint32, error) {
	return starlark.String(p).Hash()
}

func (p StarlarkPath) CompareSameType(op starsyntax.Token, y_ starlark.Value, depth int) (bool, error) {
	y := y_.(StarlarkPath)

	switch op {
	case starsyntax.EQL:
		return p == y, nil
	case starsyntax.NEQ:
		return p != y, nil
	case starsyntax.LT:
		return p < y, nil
	case starsyntax.LE:
		return p <= y, nil
	case starsyntax.GT:
		return p > y, nil
	case starsyntax.GE:
		return p >= y, nil
	}

	return false, eris.Errorf("unknown operator %v", op)
}

func (p StarlarkPath) Index(i int) starlark.Value {
	return starlark.String(p[i])
}

func (p StarlarkPath) Len() int {
	return len(p)
}

func (p StarlarkPath) Slice(start, end, step int) starlark.Value {
	return starlark.String(p).Slice(start, end, step)
}

func (r *Record) String() string {
	return fmt.Sprintf("<Record %s: %d sources, exit %d>", r.ID, len(r.Sources), r.ExitStatus)
}
