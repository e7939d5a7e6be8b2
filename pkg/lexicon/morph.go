package lexicon

import (
	"strings"

	"github.com/jinzhu/inflection"
	"github.com/kljensen/snowball/english"
)

// Stem returns the English Snowball stem of word.
func Stem(word string) string {
	return english.Stem(strings.ToLower(word), true)
}

// Pluralize inflects word to its plural. Multi-word entries inflect the
// last word.
func Pluralize(word string) string {
	return inflection.Plural(word)
}

