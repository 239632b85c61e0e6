// Package textwidth computes the terminal display width of strings.
//
// Display width is the number of monospace terminal columns a string
// occupies, which differs from both byte length and rune count once
// East-Asian wide glyphs, emoji, combining marks, or joiner sequences
// are involved. Every padding decision in this module goes through
// Width; nothing else in the repository measures strings directly.
package textwidth

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Variation selectors controlling glyph presentation.
const (
	vsText  = '\uFE0E' // VS15: force text (narrow) presentation
	vsEmoji = '\uFE0F' // VS16: force emoji (wide) presentation
	zwj     = '\u200D' // zero-width joiner
	zwnj    = '\u200C' // zero-width non-joiner
)

// Width returns the number of terminal columns s occupies.
//
// The string is measured one grapheme cluster at a time so that emoji
// sequences (base + ZWJ + modifier, base + variation selector, skin
// tones, flags) count as a single glyph instead of the sum of their
// code points. Control characters contribute zero columns. Runes the
// width tables cannot classify default to one column.
func Width(s string) int {
	if s == "" {
		return 0
	}

	total := 0
	state := -1
	var cluster string
	for rest := s; len(rest) > 0; {
		cluster, rest, _, state = uniseg.StepString(rest, state)
		total += clusterWidth(cluster)
	}
	return total
}

// clusterWidth measures a single grapheme cluster.
//
// The cluster renders as one glyph, so its width is decided by the
// base code point: joiners, selectors, and combining marks that ride
// along must not add columns of their own, even when a naive per-rune
// table would assign them some. A VS16 anywhere in the cluster forces
// emoji (wide) presentation; a VS15 forces text (narrow) presentation.
func clusterWidth(cluster string) int {
	base := 0
	forceWide := false
	forceNarrow := false

	for _, r := range cluster {
		switch r {
		case vsEmoji:
			forceWide = true
			continue
		case vsText:
			forceNarrow = true
			continue
		case zwj, zwnj:
			continue
		}
		if base == 0 {
			base = runeWidth(r)
		}
	}

	switch {
	case forceNarrow && base > 0:
		return 1
	case forceWide && base > 0:
		return 2
	default:
		return base
	}
}

// runeWidth classifies a single code point.
func runeWidth(r rune) int {
	if r < 0x20 || (r >= 0x7F && r < 0xA0) {
		// Control characters occupy no columns.
		return 0
	}
	return runewidth.RuneWidth(r)
}

// Truncate cuts s so its display width does not exceed max, appending
// tail (whose own width counts against max) when anything was removed.
// Used by reporters to clip long cell previews, never by the fixer.
func Truncate(s string, max int, tail string) string {
	if Width(s) <= max {
		return s
	}
	budget := max - Width(tail)
	if budget < 0 {
		budget = 0
	}

	var out []byte
	used := 0
	state := -1
	var cluster string
	for rest := s; len(rest) > 0; {
		cluster, rest, _, state = uniseg.StepString(rest, state)
		w := clusterWidth(cluster)
		if used+w > budget {
			break
		}
		out = append(out, cluster...)
		used += w
	}
	return string(out) + tail
}
