package buildenv

import "errors"

var (
	// Link flag errors
	ErrUnclosedQuote  = errors.New("unclosed quote in link flags")
	ErrTrailingEscape = errors.New("trailing escape character in link flags")
	ErrNoLinkerScript = errors.New("no -Wl,-T linker script in link flags")

	// Platform errors
	ErrInvalidVersion  = errors.New("invalid platform version")
	ErrNoIncludeSource = errors.New("no linked ldscript and no platform manifest to deduce the include from")

	// Project errors
	ErrMissingOption = errors.New("required option is not set")
)
