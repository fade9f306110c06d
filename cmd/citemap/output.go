// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	bold       = lipgloss.NewStyle().Bold(true)
	dim        = lipgloss.NewStyle().Faint(true)
	green      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	yellow     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
)

// stat is one labelled count in a summary box.
type stat struct {
	label string
	n     int
	style lipgloss.Style
}

// printSummary renders a boxed run summary: a title line, then one line
// per stat. Zero counts are dimmed.
func printSummary(w io.Writer, title string, stats []stat, footer string) {
	lines := bold.Render(title)
	for _, s := range stats {
		style := s.style
		if s.n == 0 {
			style = dim
		}
		lines += "\n" + style.Render(fmt.Sprintf("%-12s %d", s.label, s.n))
	}
	if footer != "" {
		lines += "\n" + dim.Render(footer)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, boxStyle.Render(lines))
}
