package songfeed

import (
	"github.com/mattn/go-runewidth"
)

// ellipsis marks a line cut short by padToWidth
const ellipsis = "..."

// padToWidth fits text to exactly width display columns, cutting it with an
// ellipsis or padding it with spaces. A width of 0 or less leaves text as is.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	if runewidth.StringWidth(text) > width {
		if width <= len(ellipsis) {
			return ellipsis[:width]
		}
		text = runewidth.Truncate(text, width-len(ellipsis), "") + ellipsis
	}

	// A wide rune at the cut can leave the line a column short
	return runewidth.FillRight(text, width)
}
