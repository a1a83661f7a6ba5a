package libdeps

import (
	"errors"
	"fmt"
)

var (
	// Storage errors 📚
	ErrSharedDirUnset    = errors.New("common.shared_libdeps_dir is required to be set")
	ErrSharedDirNotExtra = errors.New("lib_extra_dirs must contain common.shared_libdeps_dir")

	// Install errors 📦
	ErrInstallFailed = errors.New("library install failed")
)

// InstallError reports a package manager run that exited unsuccessfully.
type InstallError struct {
	Args     []string
	ExitCode int
	Err      error
}

func (e *InstallError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%v: exit code %d", ErrInstallFailed, e.ExitCode)
	}
	return fmt.Sprintf("%v: %v", ErrInstallFailed, e.Err)
}

func (e *InstallError) Unwrap() []error {
	return []error{ErrInstallFailed, e.Err}
}
