package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/provide-io/espbuild/go/espbuild/pkg/buildenv"
	"github.com/spf13/cobra"
)

func newFlagsCmd() *cobra.Command {
	var (
		linkFlags   string
		removeFloat bool
	)

	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Print link flags, optionally without float printf/scanf support",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := buildenv.SplitFlags(linkFlags)
			if err != nil {
				return err
			}
			if removeFloat {
				flags = buildenv.RemoveFloatSupport(flags)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(flags, " "))
			return nil
		},
	}

	cmd.Flags().StringVar(&linkFlags, "linkflags", os.Getenv("LINKFLAGS"), "Link flags (default $LINKFLAGS)")
	cmd.Flags().BoolVar(&removeFloat, "remove-float", true, "Drop -u _printf_float and -u _scanf_float")
	return cmd
}
