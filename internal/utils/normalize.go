package utils

import (
	"strings"
)

// NormalizeEntry lowercases a word list line, drops apostrophes and hyphens
// and turns spaces into joiners. It returns "" when nothing usable is left.
func NormalizeEntry(line string) string {
	s := strings.ToLower(strings.TrimSpace(line))
	if s == "" || strings.HasPrefix(s, "#") {
		return ""
	}
	s = strings.Map(func(r rune) rune {
		if r == '\'' || r == '-' {
			return -1
		}
		return r
	}, strings.Join(strings.Fields(s), Joiner))
	for _, part := range strings.Split(s, Joiner) {
		if !IsLetters(part) {
			return ""
		}
	}
	return s
}
