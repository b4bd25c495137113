// Package buildsys implements the build sequence for the WebGL client: it discovers the TypeScript
// sources, hands them to an external compiler through the mvdan.cc/sh shell runtime and copies the
// static assets into the output directory.
// An optional Starlark script (build.star) can override the paths and flags used for a build.
package buildsys
