/*
Package lexicon implements the lexical service used by the clue solver:
word list membership and prefix scans, stemming, plurality, a WordNet-style
sense graph with Wu-Palmer relatedness, synonym expansion, abbreviations and
known-letter pattern search.

Everything here is read-only once built. A reload builds new values and the
caller swaps them in.
*/
package lexicon

import (
	"errors"
	"regexp"
	"slices"

	"github.com/bastiangx/cluesolve/internal/utils"
	"github.com/charmbracelet/log"
	patricia "github.com/tchap/go-patricia/v2/patricia"
)

// WordList is the sorted, de-duplicated set of known lexical entries.
type WordList struct {
	words []string
	set   map[string]struct{}
	trie  *patricia.Trie
}

// NewWordList normalises and indexes words. Entries that do not survive
// normalisation are dropped.
func NewWordList(words []string) *WordList {
	set := make(map[string]struct{}, len(words))
	sorted := make([]string, 0, len(words))
	for _, w := range words {
		n := utils.NormalizeEntry(w)
		if n == "" {
			continue
		}
		if _, dup := set[n]; dup {
			continue
		}
		set[n] = struct{}{}
		sorted = append(sorted, n)
	}
	slices.Sort(sorted)

	trie := patricia.NewTrie()
	for _, w := range sorted {
		trie.Insert(patricia.Prefix(w), struct{}{})
	}
	log.Debugf("word list indexed: %d entries", len(sorted))
	return &WordList{words: sorted, set: set, trie: trie}
}

// Exists reports membership.
func (l *WordList) Exists(word string) bool {
	_, ok := l.set[word]
	return ok
}

// Len returns the number of entries.
func (l *WordList) Len() int { return len(l.words) }

// Words returns the sorted entries. The slice must not be modified.
func (l *WordList) Words() []string { return l.words }

// WithPrefix calls fn for every entry starting with prefix until fn returns false.
func (l *WordList) WithPrefix(prefix string, fn func(word string) bool) {
	err := l.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, _ patricia.Item) error {
		if !fn(string(p)) {
			return errStopVisit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopVisit) {
		log.Warnf("prefix scan for %q failed: %v", prefix, err)
	}
}

// Matching returns the entries matched by re, in lexicon order.
func (l *WordList) Matching(re *regexp.Regexp) []string {
	var out []string
	for _, w := range l.words {
		if re.MatchString(w) {
			out = append(out, w)
		}
	}
	return out
}

var errStopVisit = errors.New("stop visiting")
