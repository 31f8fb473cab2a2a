package cli

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const defaultWidth = 80

// palette holds the colours used for output. Colours are per-instance so a
// buffer-backed run never emits escape codes.
type palette struct {
	title  *color.Color
	label  *color.Color
	good   *color.Color
	bad    *color.Color
	muted  *color.Color
	prompt *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		title:  color.New(color.FgHiWhite, color.Bold),
		label:  color.New(color.FgCyan),
		good:   color.New(color.FgGreen, color.Bold),
		bad:    color.New(color.FgRed, color.Bold),
		muted:  color.New(color.FgHiBlack),
		prompt: color.New(color.FgYellow),
	}
	if !enabled {
		for _, c := range []*color.Color{p.title, p.label, p.good, p.bad, p.muted, p.prompt} {
			c.DisableColor()
		}
	}
	return p
}

// terminalInfo reports whether w is a terminal and its width.
func terminalInfo(w io.Writer) (bool, int) {
	f, ok := w.(*os.File)
	if !ok {
		return false, defaultWidth
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return false, defaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return true, defaultWidth
	}
	return true, width
}
