package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

// NewLogger creates a new hclog logger with standard settings
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	// Append to a log file when requested, e.g. from CI. The file stays open
	// for the life of the process.
	if logPath := os.Getenv("ESPBUILD_LOG_PATH"); logPath != "" {
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			// Shown regardless of level.
			fmt.Fprintf(output, "⚠️ cannot open log file %s: %v\n", logPath, err)
		} else {
			output = file
		}
	}

	jsonFormat := os.Getenv("ESPBUILD_JSON_LOG") == "1"

	// Add prefix for non-JSON output
	if !jsonFormat {
		output = NewPrefixWriter("🔧 ", output)
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// ResolveLogLevel picks the log level from the CLI flag, then ESPBUILD_LOG_LEVEL,
// then PlatformIO's verbose switch.
func ResolveLogLevel(cliLevel string) (level, source string) {
	if cliLevel != "" {
		return cliLevel, "CLI --log-level"
	}
	if envLevel := os.Getenv("ESPBUILD_LOG_LEVEL"); envLevel != "" {
		return envLevel, "ESPBUILD_LOG_LEVEL"
	}
	if os.Getenv("PIOVERBOSE") == "1" {
		return "debug", "PIOVERBOSE"
	}
	return "warn", "default"
}
