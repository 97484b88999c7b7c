package csi

import (
	"strings"

	"github.com/unilibs/uniwidth"
)

// Plain returns the text content of values with every CSI sequence removed.
// Lone ESC bytes are text and are kept.
func Plain(values []Value) string {
	var sb strings.Builder
	for _, v := range values {
		if t, ok := v.(Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}

// Width returns the display width of the text in values: 2 per wide rune (CJK, emoji),
// 1 per normal rune, 0 for zero-width runes. CSI sequences take no columns.
func Width(values []Value) int {
	return StringWidth(Plain(values))
}

// StringWidth returns the total display width of a string (sum of rune widths).
func StringWidth(s string) int {
	return uniwidth.StringWidth(s)
}
