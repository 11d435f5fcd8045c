package outwriter

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// WriteInfoBox renders an attention-grabbing boxed notice. Used for the
// upstream drift reminder, never for check outcomes. Width follows the
// longest line.
func WriteInfoBox(w io.Writer, lines []string) {
	width := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > width {
			width = n
		}
	}

	border := strings.Repeat("-", width+2)

	fmt.Fprintf(w, "+%s+\n", border)
	for _, line := range lines {
		fmt.Fprintf(w, "| %-*s |\n", width, line)
	}
	fmt.Fprintf(w, "+%s+\n", border)
}
