package herror

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// fallbackWidth is used whenever stdout isn't a terminal (e.g. under `go
// test`, or when the caller redirects output to a file), so Render still
// produces sensible output without panicking on a zero width.
const fallbackWidth = 80

// terminalWidth returns the width to wrap rendered source at.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}

	return width
}

// Render renders a single line of offending source with a '^' marker placed
// underneath the given rune offset, truncating to the terminal width (or
// fallbackWidth when stdout isn't a terminal) so long forms don't wrap
// awkwardly mid-marker.
func Render(line string, markerOffset int) string {
	width := terminalWidth()
	runes := []rune(line)

	start := 0
	if markerOffset >= width {
		start = markerOffset - width + 1
	}

	end := min(len(runes), start+width)
	if markerOffset >= end {
		end = min(len(runes), markerOffset+1)
	}

	visible := string(runes[start:end])
	marker := strings.Repeat(" ", markerOffset-start) + "^"

	return visible + "\n" + marker
}
