package tui

import "strings"

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func countRune(s string, r rune) int {
	return strings.Count(s, string(r))
}
