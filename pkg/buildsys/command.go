package buildsys

import (
	"strings"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/syntax"
)

const shellSpecialChars = " \t\n$'\"\\`*?[]{}()<>|&;#~"

// BuildCommand assembles the compiler invocation for the given sources. The result is a single shell
// command line: compiler, flags, sources (in the passed order) and finally the plan's extra files.
func BuildCommand(plan *Plan, sources []string) (string, error) {
	parts := make([]string, 0, 1+len(plan.Flags)+len(sources)+len(plan.ExtraFiles))
	parts = append(parts, plan.Compiler)
	parts = append(parts, plan.Flags...)
	parts = append(parts, sources...)
	parts = append(parts, plan.ExtraFiles...)

	cmd, err := processCmdParts(parts)
	if err != nil {
		return "", err
	}

	strBuffer := strings.Builder{}
	printer := syntax.NewPrinter(syntax.Minify(true))
	err = printer.Print(&strBuffer, cmd)
	if err != nil {
		return "", eris.Wrap(err, "failed to print command")
	}

	return strBuffer.String(), nil
}

func processCmdParts(parts []string) (*syntax.CallExpr, error) {
	cmd := new(syntax.CallExpr)
	cmd.Args = make([]*syntax.Word, len(parts))

	for a, arg := range parts {
		var wordPart syntax.WordPart

		if arg == "" || strings.ContainsAny(arg, shellSpecialChars) {
			// the runner parses the command with the default (bash) parser
			quoted, err := syntax.Quote(arg, syntax.LangBash)
			if err != nil {
				return nil, eris.Wrapf(err, "failed to quote argument %q", arg)
			}

			node := new(syntax.Lit)
			node.Value = quoted

			wordPart = syntax.WordPart(node)
		} else {
			node := new(syntax.Lit)
			node.Value = arg

			wordPart = syntax.WordPart(node)
		}

		cmd.Args[a] = new(syntax.Word)
		cmd.Args[a].Parts = []syntax.WordPart{wordPart}
	}

	return cmd, nil
}
