package libdeps

import (
	"context"
	"os"

	"github.com/hashicorp/go-hclog"
)

// DefaultPython is used when neither --python nor PYTHONEXE is given.
const DefaultPython = "python3"

// Installer makes sure the given dependencies exist in storage.
type Installer interface {
	Install(ctx context.Context, deps []string, storage Storage) error
}

// PythonExe returns the interpreter PlatformIO runs under, as SCons exposes it.
func PythonExe() string {
	if py := os.Getenv("PYTHONEXE"); py != "" {
		return py
	}
	return DefaultPython
}

// Command returns the argv of `python -m platformio lib ... install`.
func Command(python string, storage Storage, silent bool, deps []string) []string {
	args := []string{python, "-m", "platformio", "lib"}
	if storage.IsGlobal() {
		args = append(args, "-g")
	} else {
		args = append(args, "-d", storage.Dir)
	}
	args = append(args, "install")
	if silent {
		args = append(args, "-s")
	}
	return append(args, deps...)
}

// SubprocessInstaller installs every dependency with a single package manager run.
type SubprocessInstaller struct {
	Python string
	Silent bool
	Runner Runner
	Logger hclog.Logger
}

// Install runs the package manager once for all deps. An empty list does nothing.
func (i *SubprocessInstaller) Install(ctx context.Context, deps []string, storage Storage) error {
	if len(deps) == 0 {
		return nil
	}
	python := i.Python
	if python == "" {
		python = PythonExe()
	}
	argv := Command(python, storage, i.Silent, deps)
	i.logger().Debug("📦 Installing libraries", "storage", storage.String(), "count", len(deps))
	return i.Runner.Run(ctx, argv[0], argv[1:]...)
}

func (i *SubprocessInstaller) logger() hclog.Logger {
	if i.Logger == nil {
		return hclog.NewNullLogger()
	}
	return i.Logger
}

// CachedInstaller skips dependencies already present in storage and hands the
// rest to Next, one at a time.
type CachedInstaller struct {
	Next   Installer
	Logger hclog.Logger
}

// Install installs the dependencies missing from storage.
func (c *CachedInstaller) Install(ctx context.Context, deps []string, storage Storage) error {
	logger := c.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	installed, err := ScanInstalled(storage.Path())
	if err != nil {
		return err
	}

	for _, dep := range deps {
		if installed.Has(PackageName(dep)) {
			logger.Debug("✅ already installed", "lib", dep)
			continue
		}
		logger.Info("installing: " + dep)
		if err := c.Next.Install(ctx, []string{dep}, storage); err != nil {
			return err
		}
	}
	return nil
}
