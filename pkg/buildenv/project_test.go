package buildenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProject = `
[platformio]
src_dir = espurna

[common]
shared_libdeps_dir = libraries
lib_deps =
    bblanchon/ArduinoJson@^6.19.4
    https://github.com/me-no-dev/ESPAsyncTCP#7e9ed22 ; pinned
    PubSubClient

[env]
lib_extra_dirs = ${common.shared_libdeps_dir}
lib_deps = ${common.lib_deps}

[env:nodemcu-lolin]
board = nodemcuv2

[env:esp01-1m]
board = esp01_1m
lib_deps = ${common.lib_deps}, OneWire
lib_extra_dirs = extra, ${sysenv.ESPBUILD_TEST_EXTRA}
`

func TestProjectEnvList(t *testing.T) {
	p, err := ParseProject([]byte(sampleProject))
	require.NoError(t, err)

	deps := p.EnvList("nodemcu-lolin", "lib_deps")
	assert.Equal(t, []string{
		"bblanchon/ArduinoJson@^6.19.4",
		"https://github.com/me-no-dev/ESPAsyncTCP#7e9ed22",
		"PubSubClient",
	}, deps)

	deps = p.EnvList("esp01-1m", "lib_deps")
	assert.Equal(t, "OneWire", deps[len(deps)-1])
	assert.Len(t, deps, 4)

	assert.Equal(t, []string{"libraries"}, p.EnvList("nodemcu-lolin", "lib_extra_dirs"))
	assert.Nil(t, p.EnvList("nodemcu-lolin", "build_flags"))
}

func TestProjectSysenvInterpolation(t *testing.T) {
	t.Setenv("ESPBUILD_TEST_EXTRA", "/opt/libs")

	p, err := ParseProject([]byte(sampleProject))
	require.NoError(t, err)
	assert.Equal(t, []string{"extra", "/opt/libs"}, p.EnvList("esp01-1m", "lib_extra_dirs"))
}

func TestProjectOptions(t *testing.T) {
	p, err := ParseProject([]byte(sampleProject))
	require.NoError(t, err)

	v, err := p.RequireOption("common", "shared_libdeps_dir")
	require.NoError(t, err)
	assert.Equal(t, "libraries", v)

	_, err = p.RequireOption("common", "missing")
	assert.ErrorIs(t, err, ErrMissingOption)

	_, ok := p.Option("nosuchsection", "x")
	assert.False(t, ok)

	assert.Equal(t, []string{"nodemcu-lolin", "esp01-1m"}, p.Envs())
}

func TestProjectSelfReference(t *testing.T) {
	p, err := ParseProject([]byte("[a]\nx = ${a.x}\n"))
	require.NoError(t, err)
	v, ok := p.Option("a", "x")
	assert.True(t, ok)
	assert.Equal(t, "${a.x}", v)
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectConfigFile), []byte(sampleProject), 0o600))

	p, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, p.Dir)

	_, err = LoadProject(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitList("\n a,b \n\n c"))
	assert.Nil(t, SplitList(""))
}

func TestSplitListStripsComments(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList("a ; first\n  ; disabled\nb"))
}
