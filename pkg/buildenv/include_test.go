package buildenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncludeForPlatformVersion(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.5.0", IncludeFlashCommon},
		{"1.4.0", IncludeEagleCommon},
		{"1.6.0", IncludeEagleCommon},
		{"1.8.0", IncludeEagleCommon},
		{"1.9.0", IncludeLocalCommon},
		{"2.6.3", IncludeLocalCommon},
		{"v2.0.0", IncludeLocalCommon},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			got, err := IncludeForPlatformVersion(tt.version)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := IncludeForPlatformVersion("latest")
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

func TestIncludeFromInputs(t *testing.T) {
	name, ok := IncludeFromInputs([]string{
		".pio/build/nodemcu/src/main.cpp.o",
		"/home/me/.platformio/packages/framework/tools/sdk/ld/local.eagle.app.v6.common.ld",
		"other.ld",
	})
	assert.True(t, ok)
	assert.Equal(t, "local.eagle.app.v6.common.ld", name)

	_, ok = IncludeFromInputs([]string{"main.o", "libfoo.a"})
	assert.False(t, ok)
}

func writeManifest(t *testing.T, version string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "platform.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "espressif8266", "version": "`+version+`"}`), 0o600))
	return path
}

func TestResolveInclude(t *testing.T) {
	manifest := writeManifest(t, "1.8.0")

	got, err := ResolveInclude("custom.ld", []string{"a.ld"}, manifest)
	require.NoError(t, err)
	assert.Equal(t, "custom.ld", got)

	got, err = ResolveInclude("", []string{"x/a.ld"}, manifest)
	require.NoError(t, err)
	assert.Equal(t, "a.ld", got)

	got, err = ResolveInclude("", nil, manifest)
	require.NoError(t, err)
	assert.Equal(t, IncludeEagleCommon, got)

	_, err = ResolveInclude("", nil, "")
	assert.ErrorIs(t, err, ErrNoIncludeSource)

	_, err = ResolveInclude("", nil, filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "esp01.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "name": "Espressif Generic ESP8266 ESP-01 1M",
  "upload": {"maximum_ram_size": 81920, "maximum_size": 1048576}
}`), 0o600))

	b, err := ReadBoard(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1048576), b.MaximumSize())

	var none *Board
	assert.Equal(t, int64(0), none.MaximumSize())
}
