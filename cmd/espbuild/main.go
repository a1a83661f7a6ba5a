package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/espbuild/go/espbuild/pkg/logging"
	"github.com/spf13/cobra"
)

const version = "0.3.0"

var (
	logLevel string
	rootCmd  *cobra.Command
)

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func init() {
	rootCmd = &cobra.Command{
		Use:           "espbuild",
		Short:         "ESP8266 firmware build helpers",
		Long:          `Linker script generation, library installation and size checks for ESP8266 PlatformIO builds`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf("espbuild {{.Version}}\nBuilt: %s\n", getBuildTimestamp()))
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newLDScriptCmd(), newLibDepsCmd(), newCheckSizeCmd(), newFlagsCmd(), newVariantsCmd())
}

func newLogger(name string) hclog.Logger {
	level, source := logging.ResolveLogLevel(logLevel)
	logger := logging.NewLogger(name, level, nil)
	logger.Debug("Log level", "level", level, "source", source)
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
