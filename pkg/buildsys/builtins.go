package buildsys

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.starlark.net/starlark"
	"gopkg.in/yaml.v3"
)

// * Builtin functions

func option(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var defaultValue starlark.String
	var help string

	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "default?", &defaultValue, "help?", &help)
	if err != nil {
		return nil, err
	}

	ctx := getCtx(thread)
	if !ctx.initPhase {
		return nil, eris.New("options have to be declared before build() is called")
	}

	ctx.options[name] = ScriptOption{
		DefaultValue: defaultValue,
		Help:         help,
	}

	value, ok := ctx.optionValues[name]
	if ok {
		return starlark.String(value), nil
	}

	return defaultValue, nil
}

func build(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var src, ext, out, compiler, static starlark.Value
	var flags *starlark.List
	var extra *starlark.List

	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "src?", &src, "ext?", &ext, "out?", &out,
		"compiler?", &compiler, "flags?", &flags, "extra?", &extra, "static?", &static)
	if err != nil {
		return nil, err
	}

	ctx := getCtx(thread)
	if ctx.buildCalled {
		return nil, eris.New("build() can only be called once")
	}
	ctx.buildCalled = true
	ctx.initPhase = false

	plan := ctx.plan
	if src != nil {
		plan.SourceDir, err = pathArg(ctx, "src", src)
		if err != nil {
			return nil, err
		}
	}

	if static != nil {
		plan.StaticDir, err = pathArg(ctx, "static", static)
		if err != nil {
			return nil, err
		}
	}

	if ext != nil {
		value, ok := ext.(starlark.String)
		if !ok {
			return nil, eris.Errorf("%s: got %s for ext, want string", fn.Name(), ext.Type())
		}

		plan.Extension = value.GoString()
		if plan.Extension == "" {
			return nil, eris.Errorf("%s: ext can't be empty", fn.Name())
		}
	}

	if compiler != nil {
		value, ok := compiler.(starlark.String)
		if !ok {
			return nil, eris.Errorf("%s: got %s for compiler, want string", fn.Name(), compiler.Type())
		}

		plan.Compiler = value.GoString()
	}

	if flags != nil {
		plan.Flags, err = starlarkIterable2stringSlice(flags, "flags")
		if err != nil {
			return nil, err
		}
	}

	if extra != nil {
		plan.ExtraFiles, err = starlarkIterable2stringSlice(extra, "extra")
		if err != nil {
			return nil, err
		}
	}

	// applied last so that overridden flags pick up the new directory as well
	if out != nil {
		outDir, err := pathArg(ctx, "out", out)
		if err != nil {
			return nil, err
		}

		plan.SetOutDir(outDir)
	}

	return starlark.None, nil
}

// pathArg converts a string or path argument into a path relative to the project root
func pathArg(ctx *parserCtx, field string, value starlark.Value) (string, error) {
	var path string
	switch value := value.(type) {
	case starlark.String:
		path = value.GoString()
	case StarlarkPath:
		path = string(value)
	default:
		return "", eris.Errorf("got %s for %s, want string or path", value.Type(), field)
	}

	if path == "" {
		return "", eris.Errorf("%s can't be empty", field)
	}

	abs := normalizePath(ctx, path)
	rel, err := filepath.Rel(ctx.projectRoot, abs)
	if err != nil {
		return abs, nil
	}

	return filepath.ToSlash(rel), nil
}

func resolvePath(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	base := ""
	ctx := getCtx(thread)

	for _, kv := range kwargs {
		key := kv[0].(starlark.String).GoString()

		if key != "base" {
			return nil, eris.Errorf("unexpected keyword argument %s", key)
		}

		switch value := kv[1].(type) {
		case starlark.String:
			base = value.GoString()
		case StarlarkPath:
			base = string(value)
		default:
			return nil, eris.Errorf("invalid type %s for keyword base, expected string or path", kv[1].Type())
		}

		base = normalizePath(ctx, base)
	}

	if len(args) < 1 {
		return nil, eris.New("expects at least one argument")
	}

	parts := make([]string, len(args))
	for idx, path := range args {
		switch value := path.(type) {
		case starlark.String:
			parts[idx] = value.GoString()
		case StarlarkPath:
			parts[idx] = string(value)
		default:
			return nil, eris.Errorf("only accepts string arguments but argument %d was a %s", idx, path.Type())
		}
	}

	normPath := normalizePath(ctx, parts...)
	if base != "" {
		var err error
		normPath, err = filepath.Rel(base, normPath)
		if err != nil {
			return nil, err
		}
	}

	return StarlarkPath(normPath), nil
}

func starInfo(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var message string

	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &message)
	if err != nil {
		return nil, err
	}

	info(thread, "%s", message)
	return starlark.None, nil
}

func starWarn(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var message string

	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &message)
	if err != nil {
		return nil, err
	}

	warn(thread, "%s", message)
	return starlark.None, nil
}

func starError(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var message string

	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &message)
	if err != nil {
		return nil, err
	}

	return nil, eris.New(message)
}

func getenv(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var key string

	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &key)
	if err != nil {
		return nil, err
	}

	return starlark.String(os.Getenv(key)), nil
}

func readYaml(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var yamlFile string
	var yamlKey string
	var defaultValue starlark.Value = starlark.None

	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &yamlFile, &yamlKey, &defaultValue)
	if err != nil {
		return nil, err
	}

	ctx := getCtx(thread)
	yamlFile = normalizePath(ctx, yamlFile)

	doc, loaded := ctx.yamlCache[yamlFile]
	if !loaded {
		content, err := os.ReadFile(yamlFile)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to open file %s", yamlFile)
		}

		err = yaml.Unmarshal(content, &doc)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to parse file %s", yamlFile)
		}

		ctx.yamlCache[yamlFile] = doc
	}

	value, err := lookupYamlKey(doc, yamlKey)
	if err != nil {
		return nil, err
	}

	if !value.IsValid() {
		return defaultValue, nil
	}

	return yamlValueToStarlark(value)
}

func starIsdir(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var dirPath string

	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &dirPath)
	if err != nil {
		return nil, err
	}

	dirPath = normalizePath(getCtx(thread), dirPath)
	info, err := os.Stat(dirPath)
	return starlark.Bool(err == nil && info.IsDir()), nil
}

func starIsfile(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var filePath string

	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &filePath)
	if err != nil {
		return nil, err
	}

	filePath = normalizePath(getCtx(thread), filePath)
	info, err := os.Stat(filePath)
	return starlark.Bool(err == nil && info.Mode().IsRegular()), nil
}
