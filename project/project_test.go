package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func rels(files []*File) []string {
	var out []string
	for _, f := range files {
		out = append(out, filepath.ToSlash(f.Rel))
	}
	return out
}

func TestLoadFromFiltersFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.cx":             "int a;",
		"b.h":              "int b;",
		"notes.txt":        "hello",
		".git/hidden.cx":   "int hidden;",
		"gen/out.cx":       "int gen;",
		"src/main.cx":      "int main() { return 0; }",
		"src/main_test.cx": "int t;",
	})

	p, err := LoadFrom(dir, Options{
		Extensions: []string{".cx", ".h"},
		Exclude:    []string{"gen/*", "*_test.cx"},
	})
	require.NoError(t, err)

	want := []string{"a.cx", "b.h", "src/main.cx"}
	if diff := cmp.Diff(want, rels(p.Files)); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTakesNamedFilesAsIs(t *testing.T) {
	dir := writeFiles(t, map[string]string{"prog.txt": "int x;"})
	p, err := Load(DefaultOptions, filepath.Join(dir, "prog.txt"))
	require.NoError(t, err)
	require.Len(t, p.Files, 1)
	assert.Equal(t, dir, p.RootDir)
}

func TestLoadMissingPath(t *testing.T) {
	_, err := Load(DefaultOptions, filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestIncludes(t *testing.T) {
	src := "#include \"list.h\"\n#include <stdio.h>\n# include \"util/str.h\"\n#define X 1\nint x;\n"
	assert.Equal(t, []string{"list.h", "util/str.h"}, includes([]byte(src), "f.cx"))
}

func TestFilesInOrderFollowsIncludes(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a_main.cx":   "#include \"list.h\"\nList l;",
		"list.h":      "#include \"util/node.h\"\ntypedef Node List;",
		"util/node.h": "typedef int Node;",
		"z.cx":        "int z;",
	})
	p, err := LoadFrom(dir, DefaultOptions)
	require.NoError(t, err)

	want := []string{"util/node.h", "z.cx", "list.h", "a_main.cx"}
	if diff := cmp.Diff(want, rels(p.FilesInOrder())); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestFilesInOrderCycleKeepsDiscoveryOrder(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.h": "#include \"b.h\"\n",
		"b.h": "#include \"a.h\"\n",
	})
	p, err := LoadFrom(dir, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.h", "b.h"}, rels(p.FilesInOrder()))
}

func TestParseAllSharesTypeNames(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.cx": "#include \"types.h\"\nCount total;\nbad = ;\n",
		"types.h": "typedef int Count;\n",
	})
	p, err := LoadFrom(dir, DefaultOptions)
	require.NoError(t, err)

	results, err := p.ParseAll()
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "types.h", results[0].File.Rel)
	assert.Empty(t, results[0].Diagnostics)

	main := results[1]
	require.NotNil(t, main.Tree)
	require.NotEmpty(t, main.Diagnostics)
	assert.Equal(t, "main.cx", main.Diagnostics[0].Pos().File)
	assert.Equal(t, 3, main.Diagnostics[0].Pos().Line)
	assert.Equal(t, len(main.Diagnostics), ErrorCount(results))
}

func TestFileWatcherReportsChanges(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.cx": "int a;"})
	p, err := LoadFrom(dir, DefaultOptions)
	require.NoError(t, err)

	changes := make(chan Change, 16)
	w, err := NewFileWatcher(p, func(c Change) { changes <- c })
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	path := filepath.Join(dir, "b.cx")
	require.NoError(t, os.WriteFile(path, []byte("int b;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))

	select {
	case c := <-changes:
		assert.Equal(t, path, c.Path)
		assert.False(t, c.Removed)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
