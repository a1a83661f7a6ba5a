package main

import (
	"github.com/provide-io/espbuild/go/espbuild/pkg"
	"github.com/provide-io/espbuild/go/espbuild/pkg/console"
	"github.com/spf13/cobra"
)

func newCheckSizeCmd() *cobra.Command {
	var opts pkg.CheckSizeOptions

	cmd := &cobra.Command{
		Use:   "check-size <firmware.bin|firmware.hex>",
		Short: "Print the image size and warn when it is too large for OTA",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Binary = args[0]
			c := console.New()
			c.Out = cmd.OutOrStdout()
			_, err := pkg.CheckSize(opts, c, newLogger("espbuild-check-size"))
			return err
		},
	}

	cmd.Flags().Int64Var(&opts.MaxFlash, "max-flash", 0, "Board upload.maximum_size in bytes")
	cmd.Flags().StringVar(&opts.Board, "board", "", "Board JSON to read upload.maximum_size from")
	return cmd
}
