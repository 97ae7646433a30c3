package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSplitColon(t *testing.T) {
	assert.Nil(t, splitColon(""))
	assert.Equal(t, []string{"a", "b"}, splitColon("a::b:"))
	assert.Equal(t, []string{"/x/y"}, splitColon("/x/y"))
}

func TestResolveConfigDir(t *testing.T) {
	t.Setenv(envConfigDir, "/tmp/explicit")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := resolveConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/explicit", dir)

	t.Setenv(envConfigDir, "")
	dir, err = resolveConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", appName), dir)
}

func TestResolveBlockDirs_Order(t *testing.T) {
	t.Setenv(envBlockDirs, "/env/a:/env/b")
	dirs := resolveBlockDirs("/cfg", []string{"/flag"})
	assert.Equal(t, []string{filepath.Join("/cfg", "blocks"), "/env/a", "/env/b", "/flag"}, dirs)
}

func TestGlobYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yml"), "blocks: {}")
	writeFile(t, filepath.Join(dir, "sub", "b.yaml"), "blocks: {}")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	files, err := globYAML(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yml"),
		filepath.Join(dir, "sub", "b.yaml"),
	}, files)

	files, err = globYAML(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestResolveBlockFiles_ExplicitFilesLast(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yml"), "blocks: {}")
	files, err := resolveBlockFiles([]string{dir}, []string{"/explicit.yml"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.yml"), "/explicit.yml"}, files)
}

func TestInitConfigDir(t *testing.T) {
	dir := t.TempDir()
	path, err := initConfigDir(dir, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "blocks", "blocks.yml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "vector_xyz")

	_, err = initConfigDir(dir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = initConfigDir(dir, true)
	require.NoError(t, err)

	// The starter file is a valid palette on its own.
	p, err := loadPaletteFiles(logger, []string{path})
	require.NoError(t, err)
	assert.Empty(t, p.report.Skipped)
}
