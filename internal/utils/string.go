package utils

import (
	"regexp"
	"sort"
	"strings"
)

// Joiner glues the words of a multi-word lexical entry, e.g. "living_thing".
const Joiner = "_"

// JoinTokens joins clue tokens into a lexical entry.
func JoinTokens(tokens []string) string {
	return strings.Join(tokens, Joiner)
}

// StripJoiner removes joiners so an entry can be compared letter by letter.
func StripJoiner(s string) string {
	return strings.ReplaceAll(s, Joiner, "")
}

// HasJoiner reports whether s is a multi-word entry.
func HasJoiner(s string) bool {
	return strings.Contains(s, Joiner)
}

// SortLetters returns the letters of s in ascending order.
// Two words are anagrams exactly when their sorted letters match.
func SortLetters(s string) string {
	b := []byte(s)
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	return string(b)
}

// IsLetters checks that s is non-empty and made only of a-z.
func IsLetters(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// Initials concatenates the first letter of every token.
func Initials(tokens []string) string {
	var b strings.Builder
	for _, t := range tokens {
		if t != "" {
			b.WriteByte(t[0])
		}
	}
	return b.String()
}

// Finals concatenates the last letter of every token.
func Finals(tokens []string) string {
	var b strings.Builder
	for _, t := range tokens {
		if t != "" {
			b.WriteByte(t[len(t)-1])
		}
	}
	return b.String()
}

// PatternRegexp compiles a known-letter pattern like "c?t" to ^c[a-z]t$.
func PatternRegexp(pattern string) (*regexp.Regexp, error) {
	expr := strings.ReplaceAll(regexp.QuoteMeta(strings.ToLower(pattern)), `\?`, "[a-z]")
	return regexp.Compile("^" + expr + "$")
}
