package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the descent banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()
	// Warm gradient, from the path color down to the marker color
	lines := []struct{ text, color string }{
		{"      _                          _   ", "#ffb74d"},
		{"   __| | ___  ___  ___ ___ _ __ | |_ ", "#ffa726"},
		{"  / _` |/ _ \\/ __|/ __/ _ \\ '_ \\| __|", "#fb8c00"},
		{" | (_| |  __/\\__ \\ (_|  __/ | | | |_ ", "#f57c00"},
		{"  \\__,_|\\___||___/\\___\\___|_| |_|\\__|", "#d32f2f"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Advisory writes a non-fatal notice, highlighted when color is available.
func Advisory(w io.Writer, msg string) {
	p := termenv.EnvColorProfile()
	fmt.Fprintln(w, termenv.String("! "+msg).Foreground(p.Color("#fb8c00")))
}

// Failure writes an error message, highlighted when color is available.
func Failure(w io.Writer, msg string) {
	p := termenv.EnvColorProfile()
	fmt.Fprintln(w, termenv.String("Error: "+msg).Foreground(p.Color("#d32f2f")).Bold())
}
