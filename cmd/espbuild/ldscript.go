package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/provide-io/espbuild/go/espbuild/pkg"
	"github.com/provide-io/espbuild/go/espbuild/pkg/ldscript"
	"github.com/spf13/cobra"
)

func newLDScriptCmd() *cobra.Command {
	var (
		opts         pkg.LDScriptOptions
		variantsPath string
	)

	cmd := &cobra.Command{
		Use:   "ldscript [flags] [-- link command...]",
		Short: "Generate the linker script named by -Wl,-T in the link flags",
		Long: `Generate the linker script named by -Wl,-T in the link flags.

Without --output-dir the script is written to a new temporary directory. When a
link command follows "--" it is run with -L<dir> appended and the directory is
removed afterwards; otherwise the directory is kept and printed.`,
		Args: linkCommandArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger("espbuild-ldscript")

			if variantsPath != "" {
				table, err := ldscript.LoadTable(variantsPath)
				if err != nil {
					return err
				}
				opts.Table = table
			}

			res, err := pkg.GenerateLDScript(opts, logger)
			if err != nil {
				return err
			}

			// args holds only the link command, see linkCommandArgs.
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), res.Path)
				return nil
			}

			if res.Scratch != nil {
				defer res.Scratch.Cleanup()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runLinker(ctx, args, res.Dir())
		},
	}

	cmd.Flags().StringVar(&opts.LinkFlags, "linkflags", os.Getenv("LINKFLAGS"), "Link flags containing -Wl,-T<script> (default $LINKFLAGS)")
	cmd.Flags().StringSliceVar(&opts.Inputs, "input", nil, "Linker input files, searched for an existing .ld include")
	cmd.Flags().StringVar(&opts.Include, "include", "", "INCLUDE target, skips discovery")
	cmd.Flags().StringVar(&opts.PlatformManifest, "platform-manifest", os.Getenv("PLATFORM_MANIFEST"), "platform.json used to deduce the include (default $PLATFORM_MANIFEST)")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "Write the script here instead of a temporary directory")
	cmd.Flags().StringVar(&variantsPath, "variants", "", "YAML file with additional flash layout variants")
	return cmd
}

// linkCommandArgs only accepts positional arguments after "--".
func linkCommandArgs(cmd *cobra.Command, args []string) error {
	if dash := cmd.ArgsLenAtDash(); dash != 0 && len(args) > 0 {
		stray := args
		if dash > 0 {
			stray = args[:dash]
		}
		return fmt.Errorf("unexpected arguments %q, put the link command after --", stray)
	}
	return nil
}

func runLinker(ctx context.Context, argv []string, searchDir string) error {
	args := append(append([]string{}, argv[1:]...), "-L"+searchDir)
	link := exec.CommandContext(ctx, argv[0], args...)
	link.Stdin = os.Stdin
	link.Stdout = os.Stdout
	link.Stderr = os.Stderr
	if err := link.Run(); err != nil {
		return fmt.Errorf("link command failed: %w", err)
	}
	return nil
}
