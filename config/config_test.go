package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/radin/cx/parser"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "radin.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[Parser]
Types = ["bool", "size_t"]

[Project]
Exclude = ["vendor/*"]
`)
	cfg, err := LoadDefault(path, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"bool", "size_t"}, cfg.Parser.Types)
	assert.Equal(t, parser.DefaultMaxDepth, cfg.Parser.MaxDepth)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, []string{"vendor/*"}, cfg.Project.Exclude)
	assert.Equal(t, []string{".h", ".cx"}, cfg.Project.Extensions)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "[Parser]\nDepth = 3\n")
	_, err := LoadDefault(path, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Depth")
}

func TestLoadSyntaxError(t *testing.T) {
	path := writeConfig(t, "[Parser\n")
	_, err := LoadDefault(path, true)
	require.Error(t, err)
}

func TestLoadDefaultMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "radin.toml")

	cfg, err := LoadDefault(missing, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = LoadDefault(missing, true)
	assert.Error(t, err)
}

func TestDumpRoundTrips(t *testing.T) {
	cfg := Default()
	cfg.Parser.Types = []string{"bool", "string"}
	cfg.Output.Format = "json"
	cfg.Project.Exclude = []string{"gen/*"}

	out, err := Dump(&cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "MaxDepth")

	path := writeConfig(t, string(out))
	got, err := LoadDefault(path, true)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestParserOptions(t *testing.T) {
	cfg := Default()
	cfg.Parser.Types = []string{"Widget"}
	p := parser.NewFromBytes([]byte("Widget w;"), cfg.ParserOptions()...)
	p.Parse()
	assert.Empty(t, p.Errors())
	assert.True(t, p.Types().IsTypeName("Widget"))

	cfg.Parser.Trace = true
	assert.Len(t, cfg.ParserOptions(), 3)
}
