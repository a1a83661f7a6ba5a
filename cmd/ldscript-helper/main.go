package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/provide-io/espbuild/go/espbuild/pkg/ldscript"
	"github.com/provide-io/espbuild/go/espbuild/pkg/logging"
	"github.com/spf13/cobra"
)

const version = "0.3.0"

var (
	variantsPath string
	logLevel     string
	rootCmd      *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "ldscript-helper <variant> <include>",
		Short: "Render an ESP8266 linker script for a flash layout variant",
		Long: `Render an ESP8266 linker script for a flash layout variant.

The script provides the SPIFFS symbols of the variant and INCLUDEs the given
platform linker script. Known variants: ` + strings.Join(ldscript.Names(), ", "),
		Version:       version,
		Args:          cobra.ExactArgs(2),
		ValidArgs:     ldscript.Names(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          render,
	}

	rootCmd.Flags().StringVar(&variantsPath, "variants", "", "YAML file with additional flash layout variants")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolP("version", "V", false, "Print the version and exit")
	rootCmd.SetVersionTemplate("ldscript-helper {{.Version}}\n")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func render(cmd *cobra.Command, args []string) error {
	level, _ := logging.ResolveLogLevel(logLevel)
	logger := logging.NewLogger("ldscript-helper", level, nil)

	table := ldscript.Builtin()
	if variantsPath != "" {
		var err error
		if table, err = ldscript.LoadTable(variantsPath); err != nil {
			return err
		}
	}

	v, err := table.Lookup(args[0])
	if err != nil {
		return err
	}
	for _, param := range v.Defaulted() {
		logger.Warn("⚠️ parameter not declared, using 0x0", "variant", v.Name, "param", param)
	}

	script, err := v.Render(args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(script))
	return nil
}
