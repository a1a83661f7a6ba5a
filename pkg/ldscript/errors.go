package ldscript

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownVariant is returned when a variant name is not in the table.
	ErrUnknownVariant = errors.New("unknown ldscript variant")

	// ErrInvalidLayout is returned for variants whose addresses cannot form a valid memory map.
	ErrInvalidLayout = errors.New("invalid flash layout")
)

// UnknownVariantError names the rejected variant and the accepted ones.
type UnknownVariantError struct {
	Name  string
	Known []string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("%v %q (choose from %s)", ErrUnknownVariant, e.Name, strings.Join(e.Known, ", "))
}

func (e *UnknownVariantError) Unwrap() error {
	return ErrUnknownVariant
}
