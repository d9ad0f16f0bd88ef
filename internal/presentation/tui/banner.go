package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the onboard banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"   ___        _                         _ ", "#34d399"},
		{"  / _ \\ _ __ | |__   ___   __ _ _ __ __| |", "#2dd4bf"},
		{" | | | | '_ \\| '_ \\ / _ \\ / _` | '__/ _` |", "#22d3ee"},
		{" | |_| | | | | |_) | (_) | (_| | | | (_| |", "#38bdf8"},
		{"  \\___/|_| |_|_.__/ \\___/ \\__,_|_|  \\__,_|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, p.String("  "+version).Faint())
	fmt.Fprintln(w)
}
