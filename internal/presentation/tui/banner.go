package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the portico banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Warm gradient matching the site palette.
	lines := []struct {
		text  string
		color string
	}{
		{"                 _   _", "#fbbf24"},
		{"  _ __  ___ _ _| |_(_)__ ___", "#f59e0b"},
		{" | '_ \\/ _ \\ '_|  _| / _/ _ \\", "#f97316"},
		{" | .__/\\___/_|  \\__|_\\__\\___/", "#ef4444"},
		{" |_|", "#e11d48"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Warn colours msg for validation and delivery problems.
func Warn(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String(msg).Foreground(p.Color("#fb7185")).String()
}

// Success colours msg for confirmations.
func Success(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String(msg).Foreground(p.Color("#34d399")).Bold().String()
}
