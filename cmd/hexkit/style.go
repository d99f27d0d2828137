package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

// headerStyler returns the decoration for dump headers, or nil for plain
// text. "auto" colors only when stdout is a terminal.
func headerStyler() (func(string) string, error) {
	switch colorMode {
	case "never", "":
		return nil, nil
	case "always":
		return func(s string) string { return headerStyle.Render(s) }, nil
	case "auto":
		if term.IsTerminal(os.Stdout.Fd()) {
			return func(s string) string { return headerStyle.Render(s) }, nil
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("invalid color mode %q (want auto, always or never)", colorMode)
	}
}
