// Package workenv manages the directories a build step works in: the scratch
// directory holding generated linker scripts and PlatformIO's global library storage.
package workenv

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// ScratchSuffix is appended to scratch directory names so stray ones are recognisable.
const ScratchSuffix = "_espbuild"

// Scratch is a temporary directory removed by Cleanup. Cleanup is safe to call
// more than once, so it can be both deferred and run from a signal handler.
type Scratch struct {
	dir  string
	once sync.Once
	err  error
}

// NewScratch creates a fresh temporary directory under base (os.TempDir when empty).
func NewScratch(base string) (*Scratch, error) {
	dir, err := os.MkdirTemp(base, "*"+ScratchSuffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	return &Scratch{dir: dir}, nil
}

// Dir returns the scratch directory path.
func (s *Scratch) Dir() string {
	return s.dir
}

// Path joins name onto the scratch directory.
func (s *Scratch) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// WriteFile writes data to name inside the scratch directory.
func (s *Scratch) WriteFile(name string, data []byte) (string, error) {
	path := s.Path(name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

// Cleanup removes the scratch directory and everything in it.
func (s *Scratch) Cleanup() error {
	s.once.Do(func() {
		s.err = os.RemoveAll(s.dir)
	})
	return s.err
}

// GetCoreDir returns the PlatformIO core directory
func GetCoreDir() string {
	// Check environment variable first
	if coreDir := os.Getenv("PLATFORMIO_CORE_DIR"); coreDir != "" {
		return coreDir
	}

	switch runtime.GOOS {
	case "windows":
		if profile := os.Getenv("USERPROFILE"); profile != "" {
			return filepath.Join(profile, ".platformio")
		}
	default:
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".platformio")
		}
	}

	// Fallback to temp directory
	return filepath.Join(os.TempDir(), ".platformio")
}

// GlobalLibDir returns the storage used by `pio lib -g`.
func GlobalLibDir() string {
	if libDir := os.Getenv("PLATFORMIO_LIB_DIR"); libDir != "" {
		return libDir
	}
	return filepath.Join(GetCoreDir(), "lib")
}
