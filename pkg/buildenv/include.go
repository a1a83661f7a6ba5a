package buildenv

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
)

// Linker include files shipped by the different espressif8266 platform releases.
const (
	IncludeFlashCommon = "esp8266.flash.common.ld"
	IncludeEagleCommon = "eagle.app.v6.common.ld"
	IncludeLocalCommon = "local.eagle.app.v6.common.ld"
)

// PlatformManifest is the subset of a PlatformIO platform.json we need.
type PlatformManifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ReadPlatformManifest reads platform.json.
func ReadPlatformManifest(path string) (*PlatformManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read platform manifest: %w", err)
	}
	var m PlatformManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse platform manifest %s: %w", path, err)
	}
	return &m, nil
}

// IncludeForPlatformVersion returns the common linker script provided by a
// given espressif8266 platform version. 1.5.0 bundled its own ldscripts; up to
// 1.8.0 the SDK name is used; later releases ship the "local." copy.
func IncludeForPlatformVersion(version string) (string, error) {
	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}

	switch {
	case semver.Compare(v, "v1.5.0") == 0:
		return IncludeFlashCommon, nil
	case semver.Compare(v, "v1.8.0") <= 0:
		return IncludeEagleCommon, nil
	default:
		return IncludeLocalCommon, nil
	}
}

// IncludeFromInputs returns the basename of the first .ld file among the
// linker inputs of the firmware ELF.
func IncludeFromInputs(inputs []string) (string, bool) {
	for _, in := range inputs {
		if strings.HasSuffix(in, ".ld") {
			return filepath.Base(in), true
		}
	}
	return "", false
}

// ResolveInclude picks the INCLUDE target: an explicit name, then an ldscript
// already among the linker inputs, then the platform manifest's version.
func ResolveInclude(explicit string, inputs []string, manifestPath string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if name, ok := IncludeFromInputs(inputs); ok {
		return name, nil
	}
	if manifestPath == "" {
		return "", ErrNoIncludeSource
	}
	m, err := ReadPlatformManifest(manifestPath)
	if err != nil {
		return "", err
	}
	return IncludeForPlatformVersion(m.Version)
}
