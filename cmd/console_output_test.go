package cmd

import (
	"bytes"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleWriter(t *testing.T) {
	t.Setenv("BUILDSYS_DEBUG", "")

	out := bytes.Buffer{}
	logger := zerolog.New(NewConsoleWriter(&out))

	logger.Info().Str("task", "tsc").Msg("Building TypeScript: tsc --outDir dist [x]")
	line := out.String()
	assert.Contains(t, line, colors.Color("[green]"))
	assert.Contains(t, line, "tsc: Building TypeScript: tsc --outDir dist [x]")
	assert.Contains(t, line, colors.Color("[reset]")+"\n")

	out.Reset()
	logger.Error().Err(eris.New("static dir missing")).Msg("mcbuild failed")
	line = out.String()
	assert.Contains(t, line, colors.Color("[red]"))
	assert.Contains(t, line, "Error: mcbuild failed\n")
	assert.Contains(t, line, "static dir missing")
}

func TestConsoleWriterInvalidEvent(t *testing.T) {
	w := NewConsoleWriter(&bytes.Buffer{})
	_, err := w.Write([]byte("not json"))
	require.Error(t, err)
}
