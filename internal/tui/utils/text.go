package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// Truncate shortens text to maxWidth display cells, ending in "..." when
// anything was cut. Wide runes count double.
func Truncate(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= len(ellipsis) {
		return ellipsis[:maxWidth]
	}
	return cut(text, maxWidth-len(ellipsis)) + ellipsis
}

// cut returns the longest prefix of text that fits in width cells
func cut(text string, width int) string {
	w := 0
	for i, r := range text {
		w += runewidth.RuneWidth(r)
		if w > width {
			return text[:i]
		}
	}
	return text
}

// Wrap breaks text into lines of at most maxWidth cells at word boundaries.
// A single word wider than maxWidth gets a line of its own.
func Wrap(text string, maxWidth int) []string {
	var lines []string
	var line strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		switch {
		case lineWidth == 0:
			line.WriteString(word)
			lineWidth = w
		case lineWidth+1+w <= maxWidth:
			line.WriteByte(' ')
			line.WriteString(word)
			lineWidth += 1 + w
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
			lineWidth = w
		}
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// Clamp wraps text and keeps at most maxLines lines, marking the cut on
// the last kept line.
func Clamp(text string, maxLines, maxWidth int) string {
	lines := Wrap(text, maxWidth)
	if maxLines <= 0 || len(lines) <= maxLines {
		return strings.Join(lines, "\n")
	}

	kept := lines[:maxLines]
	last := kept[maxLines-1]
	if runewidth.StringWidth(last)+len(ellipsis) > maxWidth {
		last = strings.TrimRight(cut(last, maxWidth-len(ellipsis)), " ")
	}
	kept[maxLines-1] = last + ellipsis
	return strings.Join(kept, "\n")
}

// PadRight pads text with spaces to width display cells
func PadRight(text string, width int) string {
	return runewidth.FillRight(text, width)
}
