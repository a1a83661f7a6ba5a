package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/provide-io/espbuild/go/espbuild/pkg/ldscript"
	"github.com/spf13/cobra"
)

func newVariantsCmd() *cobra.Command {
	var variantsPath string

	cmd := &cobra.Command{
		Use:   "variants",
		Short: "List flash layout variants",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := ldscript.Builtin()
			if variantsPath != "" {
				var err error
				if table, err = ldscript.LoadTable(variantsPath); err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VARIANT\tSPIFFS_START\tSPIFFS_END\tPAGE\tBLOCK\tIROM_LEN\tDEFAULTED")
			for _, v := range table.Variants() {
				defaulted := strings.Join(v.Defaulted(), ",")
				if defaulted == "" {
					defaulted = "-"
				}
				fmt.Fprintf(w, "%s\t0x%X\t0x%X\t0x%X\t0x%X\t0x%X\t%s\n",
					v.Name, v.Start(), v.End(), v.Page(), v.Block(), v.IROMLength(), defaulted)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&variantsPath, "variants", "", "YAML file with additional flash layout variants")
	return cmd
}
