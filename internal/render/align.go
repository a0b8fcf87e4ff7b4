// Package render provides terminal drawing utilities for the spreadsheet view
// Render Layer: display-width aware alignment and a clipped character canvas
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Align is the horizontal placement of text within a cell
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "left"
}

// ParseAlign parses "left", "center" or "right"
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("unknown alignment %q", s)
}

// Measure returns the display width of a string
// This correctly handles emoji and wide characters (e.g., CJK)
func Measure(s string) int {
	return runewidth.StringWidth(s)
}

// PadLeft adds padding to the left of a string
func PadLeft(s string, width int) string {
	pad := width - Measure(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// PadRight adds padding to the right of a string
func PadRight(s string, width int) string {
	pad := width - Measure(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}

// PadCenter centers a string within the given width
func PadCenter(s string, width int) string {
	pad := width - Measure(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// Truncate cuts s to at most width display columns. A wide rune that would
// straddle the limit is dropped.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if Measure(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if used+rw > width {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	return b.String()
}

// Fit truncates s to width and pads it to exactly width columns
func Fit(s string, width int, align Align) string {
	s = Truncate(s, width)
	switch align {
	case AlignCenter:
		return PadCenter(s, width)
	case AlignRight:
		return PadLeft(s, width)
	}
	return PadRight(s, width)
}
