package ldscript

import (
	"fmt"
	"strings"
	"text/template"
)

const scriptTemplate = `
MEMORY
{
  dport0_0_seg :                        org = 0x3FF00000, len = 0x10
  dram0_0_seg :                         org = 0x3FFE8000, len = 0x14000
  iram1_0_seg :                         org = 0x40100000, len = 0x8000
  irom0_0_seg :                         org = 0x40201010, len = 0x{{hex .IROMLength}}
}

PROVIDE ( _SPIFFS_start = 0x{{hex .Start}} );
PROVIDE ( _SPIFFS_end = 0x{{hex .End}} );
PROVIDE ( _SPIFFS_page = 0x{{hex .Page}} );
PROVIDE ( _SPIFFS_block = 0x{{hex .Block}} );

INCLUDE "{{.Include}}"
`

// Addresses are uppercase hex without padding, e.g. 0x0 and 0x2000.
var script = template.Must(template.New("ldscript").Funcs(template.FuncMap{
	"hex": func(v uint32) string { return fmt.Sprintf("%X", v) },
}).Parse(scriptTemplate))

type scriptData struct {
	Variant
	Include string
}

// Render returns the linker script for the named variant. include is written
// verbatim into the INCLUDE directive and is not checked for existence.
func (t *Table) Render(variant, include string) (string, error) {
	v, err := t.Lookup(variant)
	if err != nil {
		return "", err
	}
	return v.Render(include)
}

// Render fills the script template with the variant's parameters.
func (v Variant) Render(include string) (string, error) {
	var sb strings.Builder
	if err := script.Execute(&sb, scriptData{Variant: v, Include: include}); err != nil {
		return "", fmt.Errorf("render %s: %w", v.Name, err)
	}
	return sb.String(), nil
}

// Render renders a built-in variant.
func Render(variant, include string) (string, error) {
	return builtin.Render(variant, include)
}
