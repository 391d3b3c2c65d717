package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner shown by `algebra serve`.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Teal to indigo.
	lines := []struct{ text, color string }{
		{"         _            _", "#2dd4bf"},
		{"   __ _ | | __ _  ___| |__  _ __ __ _", "#38bdf8"},
		{"  / _` || |/ _` |/ _ \\ '_ \\| '__/ _` |", "#60a5fa"},
		{" | (_| || | (_| |  __/ |_) | | | (_| |", "#818cf8"},
		{"  \\__,_||_|\\__, |\\___|_.__/|_|  \\__,_|", "#a78bfa"},
		{"           |___/", "#c084fc"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
