// Package ldscript renders ESP8266 linker scripts for flash partition variants.
//
// A variant names a flash layout (e.g. "4m1m4s": 4MB flash, 1MB SPIFFS, 4KB EEPROM sector).
// Rendering combines a fixed MEMORY/PROVIDE template with the SPIFFS addresses of the variant
// and an INCLUDE directive pointing at the platform's common linker script.
package ldscript

import (
	"fmt"
	"sort"
	"strings"
)

// IROM0SegDefault is the flash-mapped address where the irom0_0_seg code segment starts.
const IROM0SegDefault uint32 = 0x40201010

// Param identifies one of the SPIFFS symbols provided to the linker.
type Param int

const (
	SpiffsStart Param = iota
	SpiffsEnd
	SpiffsPage
	SpiffsBlock

	numParams
)

// String returns the linker symbol name of the parameter.
func (p Param) String() string {
	switch p {
	case SpiffsStart:
		return "_SPIFFS_start"
	case SpiffsEnd:
		return "_SPIFFS_end"
	case SpiffsPage:
		return "_SPIFFS_page"
	case SpiffsBlock:
		return "_SPIFFS_block"
	default:
		return fmt.Sprintf("param(%d)", int(p))
	}
}

// Params holds the SPIFFS parameters of a variant. Values that were never
// set read as zero and are reported by Defaulted.
type Params struct {
	values   [numParams]uint32
	declared [numParams]bool
}

// Set declares a parameter value.
func (p *Params) Set(param Param, value uint32) {
	p.values[param] = value
	p.declared[param] = true
}

// Get returns the parameter value, zero when the parameter was never declared.
func (p Params) Get(param Param) uint32 {
	return p.values[param]
}

// Declared reports whether the parameter was explicitly set.
func (p Params) Declared(param Param) bool {
	return p.declared[param]
}

// Variant is a named flash partition layout.
type Variant struct {
	Name   string
	Params Params
}

// Start returns _SPIFFS_start.
func (v Variant) Start() uint32 { return v.Params.Get(SpiffsStart) }

// End returns _SPIFFS_end.
func (v Variant) End() uint32 { return v.Params.Get(SpiffsEnd) }

// Page returns _SPIFFS_page.
func (v Variant) Page() uint32 { return v.Params.Get(SpiffsPage) }

// Block returns _SPIFFS_block.
func (v Variant) Block() uint32 { return v.Params.Get(SpiffsBlock) }

// IROMLength is the size of irom0_0_seg: everything between the code segment
// base and the start of the filesystem.
func (v Variant) IROMLength() uint32 {
	return v.Start() - IROM0SegDefault
}

// Defaulted returns the linker symbols of parameters that will render as zero
// because the variant does not declare them.
func (v Variant) Defaulted() []string {
	var names []string
	for p := Param(0); p < numParams; p++ {
		if !v.Params.Declared(p) {
			names = append(names, p.String())
		}
	}
	return names
}

// Validate checks that the layout yields a non-negative code segment and a
// filesystem that does not end before it starts.
func (v Variant) Validate() error {
	if !v.Params.Declared(SpiffsStart) {
		return fmt.Errorf("%w: %s: %s is required", ErrInvalidLayout, v.Name, SpiffsStart)
	}
	if v.Start() < IROM0SegDefault {
		return fmt.Errorf("%w: %s: %s 0x%X is below irom0_0_seg origin 0x%X",
			ErrInvalidLayout, v.Name, SpiffsStart, v.Start(), IROM0SegDefault)
	}
	if v.End() < v.Start() {
		return fmt.Errorf("%w: %s: %s 0x%X is below %s 0x%X",
			ErrInvalidLayout, v.Name, SpiffsEnd, v.End(), SpiffsStart, v.Start())
	}
	return nil
}

func variant(name string, start, end uint32, pageBlock ...uint32) Variant {
	v := Variant{Name: name}
	v.Params.Set(SpiffsStart, start)
	v.Params.Set(SpiffsEnd, end)
	if len(pageBlock) == 2 {
		v.Params.Set(SpiffsPage, pageBlock[0])
		v.Params.Set(SpiffsBlock, pageBlock[1])
	}
	return v
}

// builtinVariants never changes after package initialisation; Table copies it.
var builtinVariants = map[string]Variant{
	"512k0m1s": variant("512k0m1s", 0x4027B000, 0x4027B000),
	"1m0m1s":   variant("1m0m1s", 0x402FB000, 0x402FB000),
	"1m0m2s":   variant("1m0m2s", 0x402FA000, 0x402FA000),
	"2m1m4s":   variant("2m1m4s", 0x40300000, 0x403F8000, 0x100, 0x2000),
	"4m1m4s":   variant("4m1m4s", 0x40500000, 0x405F8000, 0x100, 0x2000),
	"4m3m4e":   variant("4m3m4e", 0x40300000, 0x405F8000, 0x100, 0x2000),
}

// Table is a read-only set of variants.
type Table struct {
	variants map[string]Variant
}

var builtin = newTable(builtinVariants)

func newTable(src map[string]Variant) *Table {
	t := &Table{variants: make(map[string]Variant, len(src))}
	for name, v := range src {
		t.variants[name] = v
	}
	return t
}

// Builtin returns the table of variants shipped with the Arduino ESP8266 core.
func Builtin() *Table {
	return builtin
}

// Lookup returns the named variant.
func (t *Table) Lookup(name string) (Variant, error) {
	v, ok := t.variants[name]
	if !ok {
		return Variant{}, &UnknownVariantError{Name: name, Known: t.Names()}
	}
	return v, nil
}

// Names returns the variant names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.variants))
	for name := range t.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variants returns all variants sorted by name.
func (t *Table) Variants() []Variant {
	names := t.Names()
	out := make([]Variant, 0, len(names))
	for _, name := range names {
		out = append(out, t.variants[name])
	}
	return out
}

// Lookup returns the named built-in variant.
func Lookup(name string) (Variant, error) {
	return builtin.Lookup(name)
}

// Names returns the built-in variant names in sorted order.
func Names() []string {
	return builtin.Names()
}

// VariantFromLinkerScript maps a board linker script name such as
// "eagle.flash.4m1m4s.ld" to its variant name ("4m1m4s").
func VariantFromLinkerScript(name string) string {
	name = strings.TrimSuffix(name, ".ld")
	return strings.TrimPrefix(name, "eagle.flash.")
}
