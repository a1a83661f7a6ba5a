// Package buildenv reads what the ESP8266 build environment knows about the
// current firmware build: link flags, platform manifest, board definition and
// the project's platformio.ini.
package buildenv

import (
	"fmt"
	"strings"
	"unicode"
)

const linkerScriptFlag = "-Wl,-T"

// SplitFlags splits a LINKFLAGS string into flags using POSIX shell word
// rules: whitespace separates words, single quotes are literal, double quotes
// honour \" \\ \$ and \`, and a backslash outside quotes escapes any rune.
func SplitFlags(s string) ([]string, error) {
	flags := []string{}
	var (
		word       strings.Builder
		inWord     bool
		quote      rune
		escapeNext bool
	)

	for _, ch := range s {
		switch {
		case escapeNext:
			if quote == '"' && !strings.ContainsRune("\"\\$`", ch) {
				word.WriteRune('\\')
			}
			word.WriteRune(ch)
			escapeNext = false
		case ch == '\\' && quote != '\'':
			escapeNext = true
			inWord = true
		case quote != 0:
			if ch == quote {
				quote = 0
			} else {
				word.WriteRune(ch)
			}
		case ch == '\'' || ch == '"':
			quote = ch
			inWord = true
		case unicode.IsSpace(ch):
			if inWord {
				flags = append(flags, word.String())
				word.Reset()
				inWord = false
			}
		default:
			word.WriteRune(ch)
			inWord = true
		}
	}

	if escapeNext {
		return nil, ErrTrailingEscape
	}
	if quote != 0 {
		return nil, fmt.Errorf("%w: %c", ErrUnclosedQuote, quote)
	}
	if inWord {
		flags = append(flags, word.String())
	}
	return flags, nil
}

// LinkerScriptFromFlags returns the script named by the last -Wl,-T flag.
func LinkerScriptFromFlags(flags []string) (string, error) {
	script := ""
	for _, flag := range flags {
		if strings.HasPrefix(flag, linkerScriptFlag) {
			script = flag[len(linkerScriptFlag):]
		}
	}
	if script == "" {
		return "", ErrNoLinkerScript
	}
	return script, nil
}

// floatSupportFlags are the -u pairs that pull newlib's float printf/scanf in.
var floatSupportFlags = []string{"_printf_float", "_scanf_float"}

// RemoveFloatSupport drops "-u _printf_float" and "-u _scanf_float" from the
// link flags, keeping everything else in order.
func RemoveFloatSupport(flags []string) []string {
	out := make([]string, 0, len(flags))
	for i := 0; i < len(flags); i++ {
		if flags[i] == "-u" && i+1 < len(flags) && isFloatSymbol(flags[i+1]) {
			i++
			continue
		}
		out = append(out, flags[i])
	}
	return out
}

func isFloatSymbol(sym string) bool {
	for _, s := range floatSupportFlags {
		if sym == s {
			return true
		}
	}
	return false
}
