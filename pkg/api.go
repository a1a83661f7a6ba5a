// Package pkg wires the build helpers into the steps a firmware build runs:
// linker script generation before linking, library installation before
// compiling and the size check after the image is produced.
package pkg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/espbuild/go/espbuild/internal/workenv"
	"github.com/provide-io/espbuild/go/espbuild/pkg/buildenv"
	"github.com/provide-io/espbuild/go/espbuild/pkg/ldscript"
	"github.com/provide-io/espbuild/go/espbuild/pkg/libdeps"
)

// LDScriptOptions describes where linker script generation gets its inputs.
type LDScriptOptions struct {
	LinkFlags        string   // LINKFLAGS as a single string
	Inputs           []string // files already given to the linker
	Include          string   // explicit INCLUDE target, skips discovery
	PlatformManifest string   // platform.json used to deduce the include
	OutputDir        string   // write here instead of a scratch dir
	Table            *ldscript.Table
}

// LDScriptResult is a written linker script.
type LDScriptResult struct {
	Variant string
	Include string
	Path    string

	// Scratch owns Path when no OutputDir was given; nil otherwise.
	Scratch *workenv.Scratch
}

// Dir is the directory to add to the linker search path.
func (r *LDScriptResult) Dir() string {
	return filepath.Dir(r.Path)
}

// GenerateLDScript renders the linker script named by the -Wl,-T link flag
// and writes it under that name. Nothing is written when rendering fails.
func GenerateLDScript(opts LDScriptOptions, logger hclog.Logger) (*LDScriptResult, error) {
	if strings.TrimSpace(opts.LinkFlags) == "" {
		return nil, ErrNoLinkFlags
	}
	table := opts.Table
	if table == nil {
		table = ldscript.Builtin()
	}

	flags, err := buildenv.SplitFlags(opts.LinkFlags)
	if err != nil {
		return nil, err
	}
	scriptName, err := buildenv.LinkerScriptFromFlags(flags)
	if err != nil {
		return nil, err
	}
	variantName := ldscript.VariantFromLinkerScript(scriptName)

	v, err := table.Lookup(variantName)
	if err != nil {
		return nil, err
	}
	for _, param := range v.Defaulted() {
		logger.Warn("⚠️ LDSCRIPT parameter not declared, using 0x0", "variant", v.Name, "param", param)
	}

	include, err := buildenv.ResolveInclude(opts.Include, opts.Inputs, opts.PlatformManifest)
	if err != nil {
		return nil, err
	}

	data, err := v.Render(include)
	if err != nil {
		return nil, err
	}

	result := &LDScriptResult{Variant: variantName, Include: include}
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output dir: %w", err)
		}
		result.Path = filepath.Join(opts.OutputDir, scriptName)
		if err := os.WriteFile(result.Path, []byte(data), 0644); err != nil {
			return nil, fmt.Errorf("failed to write ldscript: %w", err)
		}
	} else {
		scratch, err := workenv.NewScratch("")
		if err != nil {
			return nil, err
		}
		path, err := scratch.WriteFile(scriptName, []byte(data))
		if err != nil {
			scratch.Cleanup()
			return nil, err
		}
		result.Path = path
		result.Scratch = scratch
	}

	logger.Info("LDSCRIPT include_name", "include", include)
	logger.Info("LDSCRIPT written", "path", result.Path)
	logger.Info("LDSCRIPT variant", "variant", variantName)
	return result, nil
}

// LibDepsOptions configures library installation for one build environment.
type LibDepsOptions struct {
	ProjectDir string
	Env        string
	Deps       []string // overrides lib_deps from platformio.ini when set
	Global     bool     // force global storage
	Python     string
	Silent     bool
	Cached     bool // skip libraries already present in storage
	Runner     libdeps.Runner
}

// InstallLibDeps installs the environment's lib_deps into shared or global storage.
func InstallLibDeps(ctx context.Context, opts LibDepsOptions, logger hclog.Logger) error {
	project, err := buildenv.LoadProject(opts.ProjectDir)
	if err != nil {
		return err
	}

	storage := libdeps.GlobalStorage
	if !opts.Global {
		storage, err = libdeps.ResolveStorage(project, opts.Env, os.Getenv, logger)
		if err != nil {
			return err
		}
	}
	if storage.IsGlobal() {
		logger.Info("using global library storage")
	} else {
		logger.Info("using shared library storage", "dir", storage.Dir)
	}

	deps := opts.Deps
	if len(deps) == 0 {
		deps = project.EnvList(opts.Env, "lib_deps")
	}

	runner := opts.Runner
	if runner == nil {
		runner = &libdeps.ExecRunner{Logger: logger}
	}
	var installer libdeps.Installer = &libdeps.SubprocessInstaller{
		Python: opts.Python,
		Silent: opts.Silent,
		Runner: runner,
		Logger: logger,
	}
	if opts.Cached {
		installer = &libdeps.CachedInstaller{Next: installer, Logger: logger}
	}
	return installer.Install(ctx, deps, storage)
}
