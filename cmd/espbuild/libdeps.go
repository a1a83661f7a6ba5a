package main

import (
	"os"

	"github.com/provide-io/espbuild/go/espbuild/pkg"
	"github.com/provide-io/espbuild/go/espbuild/pkg/libdeps"
	"github.com/spf13/cobra"
)

func newLibDepsCmd() *cobra.Command {
	opts := pkg.LibDepsOptions{Silent: true}
	var verbose bool

	cmd := &cobra.Command{
		Use:   "libdeps [lib...]",
		Short: "Install lib_deps into the shared (or global, on CI) library storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Deps = args
			opts.Silent = !verbose
			return pkg.InstallLibDeps(cmd.Context(), opts, newLogger("espbuild-libdeps"))
		},
	}

	projectDir := os.Getenv("PROJECT_DIR")
	if projectDir == "" {
		projectDir = "."
	}
	cmd.Flags().StringVarP(&opts.ProjectDir, "project-dir", "d", projectDir, "Directory containing platformio.ini (default $PROJECT_DIR)")
	cmd.Flags().StringVarP(&opts.Env, "environment", "e", os.Getenv("PIOENV"), "Build environment whose lib_deps to install (default $PIOENV)")
	cmd.Flags().BoolVarP(&opts.Global, "global", "g", false, "Install into global storage")
	cmd.Flags().StringVar(&opts.Python, "python", libdeps.PythonExe(), "Python interpreter running PlatformIO (default $PYTHONEXE)")
	cmd.Flags().BoolVar(&opts.Cached, "cached", false, "Skip libraries already present in storage")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show package manager output")
	return cmd
}
