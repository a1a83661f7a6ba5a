package ldscript

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRenderAllVariants renders every built-in variant and checks the substituted values
func TestRenderAllVariants(t *testing.T) {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "render_test",
		Level: hclog.Trace,
	})

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			v, err := Lookup(name)
			require.NoError(t, err)

			out, err := Render(name, "x.ld")
			require.NoError(t, err)

			logger.Debug("📜 Rendered", "variant", name, "bytes", len(out))

			assert.Equal(t, 1, strings.Count(out, `INCLUDE "x.ld"`))
			assert.Contains(t, out, fmt.Sprintf("PROVIDE ( _SPIFFS_start = 0x%X );", v.Start()))
			assert.Contains(t, out, fmt.Sprintf("PROVIDE ( _SPIFFS_end = 0x%X );", v.End()))
			assert.Contains(t, out, fmt.Sprintf("len = 0x%X\n", v.Start()-0x40201010))
		})
	}
}

func TestRenderDefaultsPageAndBlockToZero(t *testing.T) {
	for _, name := range []string{"512k0m1s", "1m0m1s", "1m0m2s"} {
		t.Run(name, func(t *testing.T) {
			out, err := Render(name, "x.ld")
			require.NoError(t, err)
			assert.Contains(t, out, "PROVIDE ( _SPIFFS_page = 0x0 );")
			assert.Contains(t, out, "PROVIDE ( _SPIFFS_block = 0x0 );")

			v, err := Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, []string{"_SPIFFS_page", "_SPIFFS_block"}, v.Defaulted())
		})
	}
}

func TestIROMLength(t *testing.T) {
	v, err := Lookup("1m0m1s")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x402FB000), v.Start())
	assert.Equal(t, uint32(0xF9FF0), v.IROMLength())

	out, err := Render("1m0m1s", "eagle.app.v6.common.ld")
	require.NoError(t, err)
	assert.Contains(t, out, "org = 0x40201010, len = 0xF9FF0\n")
}

func TestRenderExactOutput(t *testing.T) {
	want := `
MEMORY
{
  dport0_0_seg :                        org = 0x3FF00000, len = 0x10
  dram0_0_seg :                         org = 0x3FFE8000, len = 0x14000
  iram1_0_seg :                         org = 0x40100000, len = 0x8000
  irom0_0_seg :                         org = 0x40201010, len = 0xFEFF0
}

PROVIDE ( _SPIFFS_start = 0x40300000 );
PROVIDE ( _SPIFFS_end = 0x405F8000 );
PROVIDE ( _SPIFFS_page = 0x100 );
PROVIDE ( _SPIFFS_block = 0x2000 );

INCLUDE "local.eagle.app.v6.common.ld"
`
	got, err := Render("4m3m4e", "local.eagle.app.v6.common.ld")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render(4m3m4e) mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	a, err := Render("2m1m4s", "eagle.app.v6.common.ld")
	require.NoError(t, err)
	b, err := Render("2m1m4s", "eagle.app.v6.common.ld")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderUnknownVariant(t *testing.T) {
	out, err := Render("bogus", "x.ld")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.True(t, errors.Is(err, ErrUnknownVariant))

	var uv *UnknownVariantError
	require.True(t, errors.As(err, &uv))
	assert.Equal(t, "bogus", uv.Name)
	assert.Contains(t, err.Error(), `"bogus"`)
	assert.Contains(t, err.Error(), "4m3m4e")
}

func TestBuiltinVariantsAreValid(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{"1m0m1s", "1m0m2s", "2m1m4s", "4m1m4s", "4m3m4e", "512k0m1s"}, names)
	for _, v := range Builtin().Variants() {
		assert.NoError(t, v.Validate(), v.Name)
	}
}

func TestValidateRejectsUnderflow(t *testing.T) {
	v := Variant{Name: "tiny"}
	v.Params.Set(SpiffsStart, 0x40200000)
	v.Params.Set(SpiffsEnd, 0x40200000)
	err := v.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLayout))

	v = Variant{Name: "reversed"}
	v.Params.Set(SpiffsStart, 0x40300000)
	v.Params.Set(SpiffsEnd, 0x40200000)
	assert.ErrorIs(t, v.Validate(), ErrInvalidLayout)
}

func TestVariantFromLinkerScript(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"eagle.flash.4m1m4s.ld", "4m1m4s"},
		{"eagle.flash.512k0m1s.ld", "512k0m1s"},
		{"1m0m2s.ld", "1m0m2s"},
		{"4m3m4e", "4m3m4e"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, VariantFromLinkerScript(tt.in))
		})
	}
}
