package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/wonders/pkg/config"
)

// ColorProfile picks the escape sequence profile for w. mode is a config
// color value; "auto" (or "") emits escapes only when w is a terminal and
// NO_COLOR is unset.
func ColorProfile(mode string, w io.Writer) termenv.Profile {
	switch mode {
	case config.ColorAlways:
		return termenv.ANSI
	case config.ColorNever:
		return termenv.Ascii
	}
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if isTerminal(w) {
		return termenv.ANSI
	}
	return termenv.Ascii
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
