package ldscript

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// overlayFile is the YAML form of additional variants.
type overlayFile struct {
	Variants map[string]overlayVariant `yaml:"variants"`
}

type overlayVariant struct {
	SpiffsStart *uint32 `yaml:"spiffs_start"`
	SpiffsEnd   *uint32 `yaml:"spiffs_end"`
	SpiffsPage  *uint32 `yaml:"spiffs_page"`
	SpiffsBlock *uint32 `yaml:"spiffs_block"`
}

// LoadTable reads a variant overlay file and returns the built-in table
// extended (or overridden) by its entries.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open variant overlay: %w", err)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadTable is LoadTable for an already opened overlay.
func ReadTable(r io.Reader) (*Table, error) {
	var doc overlayFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode variant overlay: %w", err)
	}

	t := newTable(builtinVariants)
	for name, ov := range doc.Variants {
		v := Variant{Name: name}
		for param, value := range map[Param]*uint32{
			SpiffsStart: ov.SpiffsStart,
			SpiffsEnd:   ov.SpiffsEnd,
			SpiffsPage:  ov.SpiffsPage,
			SpiffsBlock: ov.SpiffsBlock,
		} {
			if value != nil {
				v.Params.Set(param, *value)
			}
		}
		if err := v.Validate(); err != nil {
			return nil, err
		}
		t.variants[name] = v
	}
	return t, nil
}
