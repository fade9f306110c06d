// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mapping

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/citemap/pkg/types"
)

// Column widths in terminal cells.
const (
	sourceWidth = 48
	urlWidth    = 36
	titleWidth  = 40
)

// FormatTable writes entries as a human-readable table to w. Widths are
// measured in display cells so CJK citations line up.
func FormatTable(entries []types.MappingEntry, w io.Writer) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries.")
		return
	}

	fmt.Fprintf(w, "%-4s  %s  %s  %s\n", "#",
		cell("Source", sourceWidth), cell("arXiv", urlWidth), "Title")
	fmt.Fprintln(w, strings.Repeat("-", 4+2+sourceWidth+2+urlWidth+2+titleWidth))

	resolved := 0
	for i, e := range entries {
		url, title := "-", "-"
		if e.Resolved() {
			resolved++
			url = e.URL()
			if e.Title() != "" {
				title = e.Title()
			}
		}
		fmt.Fprintf(w, "%-4d  %s  %s  %s\n", i+1,
			cell(e.Source, sourceWidth), cell(url, urlWidth),
			runewidth.Truncate(title, titleWidth, "…"))
	}

	fmt.Fprintf(w, "\n%d entries, %d resolved, %d unresolved\n",
		len(entries), resolved, len(entries)-resolved)
}

// cell truncates s to width display cells and pads it on the right.
func cell(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}
