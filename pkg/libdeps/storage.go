// Package libdeps installs PlatformIO library dependencies into shared storage
// so that every build environment of a project reuses one download.
package libdeps

import (
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/espbuild/go/espbuild/internal/workenv"
	"github.com/provide-io/espbuild/go/espbuild/pkg/buildenv"
)

// CI environment variables that select global storage.
var globalStorageEnv = []string{"TRAVIS", "CI"}

// Storage is where libraries get installed: PlatformIO's global library
// directory, or a project directory passed with -d.
type Storage struct {
	Dir string
}

// GlobalStorage is `pio lib -g`.
var GlobalStorage = Storage{}

// IsGlobal reports whether the storage is the global library directory.
func (s Storage) IsGlobal() bool {
	return s.Dir == ""
}

// Path is the directory libraries end up in.
func (s Storage) Path() string {
	if s.IsGlobal() {
		return workenv.GlobalLibDir()
	}
	return s.Dir
}

func (s Storage) String() string {
	if s.IsGlobal() {
		return "global"
	}
	return s.Dir
}

// ResolveStorage chooses global storage on CI and the project's shared
// library directory otherwise. The shared directory comes from
// [common] shared_libdeps_dir and has to be listed in lib_extra_dirs of env,
// or the build would not find what was installed there.
func ResolveStorage(project *buildenv.Project, env string, getenv func(string) string, logger hclog.Logger) (Storage, error) {
	for _, key := range globalStorageEnv {
		if getenv(key) != "" {
			logger.Debug("📚 using global library storage", "trigger", key)
			return GlobalStorage, nil
		}
	}

	opt, ok := project.Option("common", "shared_libdeps_dir")
	if !ok || opt == "" {
		return Storage{}, ErrSharedDirUnset
	}

	found := false
	for _, dir := range project.EnvList(env, "lib_extra_dirs") {
		if dir == opt {
			found = true
			break
		}
	}
	if !found {
		return Storage{}, ErrSharedDirNotExtra
	}

	dir := opt
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(project.Dir, opt)
	}
	logger.Debug("📚 using shared library storage", "dir", dir)
	return Storage{Dir: dir}, nil
}
