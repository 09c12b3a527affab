package dnd5e

import (
	"fmt"
	"strconv"
)

// ParseSpellLevel parses a corpus level string "0".."9"
func ParseSpellLevel(raw string) (int, bool) {
	level, err := strconv.Atoi(raw)
	if err != nil || level < MinSpellLevel || level > MaxSpellLevel {
		return 0, false
	}
	return level, true
}

// Ordinal renders 1 as "1st", 2 as "2nd", 11 as "11th" and so on
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// LevelName returns "cantrip" for level 0 and "<ordinal>-level" otherwise
func LevelName(level int) string {
	if level == 0 {
		return CastAsCantrip
	}
	return Ordinal(level) + "-level"
}
