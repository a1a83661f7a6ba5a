// Package console prints coloured build diagnostics the way PlatformIO users
// expect them: informational lines on stdout, warnings on stderr.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is used for filler lines when the output is not a terminal.
const DefaultWidth = 80

// Colours used by the build scripts.
var (
	LightBlue   = []color.Attribute{color.FgBlue}
	LightCyan   = []color.Attribute{color.FgCyan}
	LightYellow = []color.Attribute{color.FgYellow}
)

// Console writes coloured text to an output and an error stream.
type Console struct {
	Out io.Writer
	Err io.Writer

	// NoColor disables colour on Out, ErrNoColor on Err.
	NoColor    bool
	ErrNoColor bool

	// Width overrides terminal detection when non-zero.
	Width int
}

// New returns a console on stdout/stderr. Colour is disabled per stream when
// it is not a terminal, and everywhere when NO_COLOR is set.
func New() *Console {
	_, noColor := os.LookupEnv("NO_COLOR")
	return &Console{
		Out:        os.Stdout,
		Err:        os.Stderr,
		NoColor:    noColor || !isTerminal(os.Stdout),
		ErrNoColor: noColor || !isTerminal(os.Stderr),
	}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func paint(attrs []color.Attribute, text string, noColor bool) string {
	p := color.New(attrs...)
	if noColor {
		p.DisableColor()
	} else {
		p.EnableColor()
	}
	return p.Sprint(text)
}

// Info prints a coloured line on the output stream.
func (c *Console) Info(attrs []color.Attribute, format string, args ...interface{}) {
	fmt.Fprintln(c.Out, paint(attrs, fmt.Sprintf(format, args...), c.NoColor))
}

// Warning prints a coloured line on the error stream.
func (c *Console) Warning(attrs []color.Attribute, message string) {
	fmt.Fprintln(c.Err, paint(attrs, message, c.ErrNoColor))
}

// Filler prints a line of fill characters as wide as the terminal.
// Only the first rune of fill is used.
func (c *Console) Filler(fill string, attrs []color.Attribute, toErr bool) {
	r := []rune(fill)
	if len(r) == 0 {
		r = []rune{'*'}
	}
	out, noColor := c.Out, c.NoColor
	if toErr {
		out, noColor = c.Err, c.ErrNoColor
	}
	fmt.Fprintln(out, paint(attrs, strings.Repeat(string(r[0]), c.width()), noColor))
}

func (c *Console) width() int {
	if c.Width > 0 {
		return c.Width
	}
	if f, ok := c.Err.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return DefaultWidth
}
