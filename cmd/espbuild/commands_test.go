package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsCommandRemovesFloat(t *testing.T) {
	cmd := newFlagsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--linkflags", "-Os -u _printf_float -u _scanf_float -Wl,-Teagle.flash.1m.ld"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "-Os -Wl,-Teagle.flash.1m.ld\n", out.String())
}

func TestVariantsCommandListsDefaulted(t *testing.T) {
	cmd := newVariantsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "VARIANT")
	assert.Contains(t, out.String(), "1m0m1s")
	assert.Contains(t, out.String(), "0xF9FF0")
}

func TestLDScriptCommandWritesToOutputDir(t *testing.T) {
	dir := t.TempDir()
	cmd := newLDScriptCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--linkflags", "-Os -Wl,-Teagle.flash.4m3m4e.ld",
		"--include", "local.eagle.app.v6.common.ld",
		"--output-dir", dir,
	})

	require.NoError(t, cmd.Execute())
	path := filepath.Join(dir, "eagle.flash.4m3m4e.ld")
	assert.Equal(t, path+"\n", out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INCLUDE \"local.eagle.app.v6.common.ld\"")
}

func TestLDScriptCommandUnknownVariant(t *testing.T) {
	dir := t.TempDir()
	cmd := newLDScriptCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--linkflags", "-Wl,-Teagle.flash.9m9m9s.ld",
		"--include", "x.ld",
		"--output-dir", dir,
	})

	require.Error(t, cmd.Execute())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLDScriptCommandRejectsArgsBeforeDash(t *testing.T) {
	dir := t.TempDir()
	for _, args := range [][]string{
		{"--output-dir", dir, "stray"},
		{"--output-dir", dir, "stray", "--", "true"},
	} {
		cmd := newLDScriptCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append([]string{"--linkflags", "-Wl,-Teagle.flash.1m0m1s.ld", "--include", "x.ld"}, args...))

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stray")
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLDScriptCommandRunsLinkCommand(t *testing.T) {
	dir := t.TempDir()
	cmd := newLDScriptCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--linkflags", "-Wl,-Teagle.flash.1m0m1s.ld",
		"--include", "x.ld",
		"--output-dir", dir,
		"--", "true",
	})

	require.NoError(t, cmd.Execute())
	assert.FileExists(t, filepath.Join(dir, "eagle.flash.1m0m1s.ld"))
}
