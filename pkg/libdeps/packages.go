package libdeps

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// Suffix PlatformIO 4 appended to registry library folders, e.g. ArduinoJson_ID64.
var legacyIDSuffix = regexp.MustCompile(`_ID\d+$`)

// PackageName returns the library name a lib_deps entry refers to. Supported
// forms: Name, Name@ver, owner/Name@ver, name=uri and repository URLs
// (https://host/owner/Repo.git#ref).
func PackageName(spec string) string {
	spec = strings.TrimSpace(spec)

	if i := strings.Index(spec, "="); i > 0 && !strings.ContainsAny(spec[:i], "/@") {
		return strings.TrimSpace(spec[:i])
	}

	if strings.Contains(spec, "://") || strings.HasPrefix(spec, "git@") {
		if i := strings.Index(spec, "#"); i >= 0 {
			spec = spec[:i]
		}
		spec = strings.TrimSuffix(strings.TrimRight(spec, "/"), ".git")
		if i := strings.LastIndexAny(spec, "/:"); i >= 0 {
			spec = spec[i+1:]
		}
		return spec
	}

	if i := strings.Index(spec, "@"); i >= 0 {
		spec = strings.TrimSpace(spec[:i])
	}
	return path.Base(spec)
}

// Installed is the set of library names found in a storage directory.
type Installed map[string]struct{}

// Has reports whether a library is installed, ignoring case.
func (in Installed) Has(name string) bool {
	_, ok := in[strings.ToLower(name)]
	return ok
}

func (in Installed) add(name string) {
	if name != "" {
		in[strings.ToLower(name)] = struct{}{}
	}
}

// ScanInstalled lists libraries in dir by folder name and by the name declared
// in library.json or library.properties. A missing dir is an empty storage.
func ScanInstalled(dir string) (Installed, error) {
	installed := Installed{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return installed, nil
		}
		return nil, fmt.Errorf("scan library storage: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		libDir := filepath.Join(dir, entry.Name())
		installed.add(legacyIDSuffix.ReplaceAllString(entry.Name(), ""))
		installed.add(manifestName(libDir))
	}
	return installed, nil
}

func manifestName(libDir string) string {
	if data, err := os.ReadFile(filepath.Join(libDir, "library.json")); err == nil {
		var manifest struct {
			Name string `json:"name"`
		}
		if json.Unmarshal(data, &manifest) == nil && manifest.Name != "" {
			return manifest.Name
		}
	}

	f, err := os.Open(filepath.Join(libDir, "library.properties"))
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if ok && strings.TrimSpace(key) == "name" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
