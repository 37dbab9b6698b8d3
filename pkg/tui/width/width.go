// ABOUTME: VisibleWidth and Clip measure and cut strings by terminal display columns
// ABOUTME: Grapheme-aware via uniseg and runewidth; fast path for pure ASCII

package width

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// VisibleWidth returns the display width of s in terminal columns.
// Grapheme clusters may be wider than one cell for East Asian characters
// and emoji.
func VisibleWidth(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	w := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += graphemeWidth(cluster)
	}
	return w
}

// Clip returns the longest prefix of s that fits in maxCols columns.
// Clusters are never split; a wide cluster that would straddle the limit
// is dropped.
func Clip(s string, maxCols int) string {
	if maxCols <= 0 {
		return ""
	}
	if isPlainASCII(s) {
		if len(s) <= maxCols {
			return s
		}
		return s[:maxCols]
	}

	col := 0
	rest := s
	state := -1
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.FirstGraphemeClusterInString(rest, state)
		cw := graphemeWidth(cluster)
		if col+cw > maxCols {
			break
		}
		col += cw
		rest = next
		state = newState
	}
	return s[:len(s)-len(rest)]
}

// isPlainASCII returns true if s contains only printable ASCII (0x20-0x7E).
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}

// graphemeWidth returns the display width of a single grapheme cluster.
func graphemeWidth(cluster string) int {
	if len(cluster) == 0 {
		return 0
	}
	// Decode the first rune without allocating a []rune slice.
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
