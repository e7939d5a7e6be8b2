package lexicon

import (
	"bufio"
	_ "embed"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

//go:embed abbreviations.txt
var defaultAbbreviations string

// Abbreviations maps a word to the short forms that may stand for it in a
// clue, e.g. "north" -> ["n"].
type Abbreviations map[string][]string

// DefaultAbbreviations returns the table shipped with the binary.
func DefaultAbbreviations() Abbreviations {
	abbrs, err := ParseAbbreviations(strings.NewReader(defaultAbbreviations))
	if err != nil {
		// the embedded table is fixed at build time
		panic(err)
	}
	return abbrs
}

// LoadAbbreviations reads a table file.
func LoadAbbreviations(path string) (Abbreviations, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseAbbreviations(f)
}

// ParseAbbreviations reads "abbr: word" lines. A trailing " *" or " +"
// marker on the word is ignored, as are blank lines and # comments.
func ParseAbbreviations(r io.Reader) (Abbreviations, error) {
	abbrs := make(Abbreviations)
	scanner := bufio.NewScanner(r)
	skipped := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		abbr, word, ok := strings.Cut(line, ":")
		if !ok {
			skipped++
			continue
		}
		abbr = strings.ToLower(strings.TrimSpace(abbr))
		word = strings.ToLower(strings.TrimRight(strings.TrimSpace(word), " *+"))
		word = strings.ReplaceAll(word, " ", "_")
		if abbr == "" || word == "" {
			skipped++
			continue
		}
		if !slices.Contains(abbrs[word], abbr) {
			abbrs[word] = append(abbrs[word], abbr)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.Debugf("abbreviations: skipped %d malformed lines", skipped)
	}
	return abbrs, nil
}

// Of returns the abbreviations of word, nil if it has none.
func (a Abbreviations) Of(word string) []string {
	return a[word]
}
