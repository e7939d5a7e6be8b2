package lexicon

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/jinzhu/inflection"
)

const (
	// DefaultSimCacheLimit bounds the relatedness cache before a flush.
	DefaultSimCacheLimit = 200000
	// DefaultSynCacheLimit bounds the synonym cache before a flush.
	DefaultSynCacheLimit = 20000
)

// Options tunes the caches of a Service.
type Options struct {
	SimCacheLimit int
	SynCacheLimit int
}

// Service answers every lexical question the wordplay engines and the
// dispatcher ask. It is safe for concurrent use.
type Service struct {
	words  *WordList
	senses *SenseGraph
	abbrs  Abbreviations

	sim *flushCache[float64]
	syn *flushCache[[]string]
}

// NewService wires a word list, sense graph and abbreviation table together.
// A nil graph or table behaves as empty.
func NewService(words *WordList, senses *SenseGraph, abbrs Abbreviations, opts Options) *Service {
	if senses == nil {
		senses = EmptySenseGraph()
	}
	if abbrs == nil {
		abbrs = Abbreviations{}
	}
	if opts.SimCacheLimit <= 0 {
		opts.SimCacheLimit = DefaultSimCacheLimit
	}
	if opts.SynCacheLimit <= 0 {
		opts.SynCacheLimit = DefaultSynCacheLimit
	}
	return &Service{
		words:  words,
		senses: senses,
		abbrs:  abbrs,
		sim:    newFlushCache[float64]("similarity", opts.SimCacheLimit),
		syn:    newFlushCache[[]string]("synonyms", opts.SynCacheLimit),
	}
}

// WordList returns the underlying word list.
func (s *Service) WordList() *WordList { return s.words }

// SenseGraph returns the underlying sense graph.
func (s *Service) SenseGraph() *SenseGraph { return s.senses }

// Exists reports whether word is in the word list.
func (s *Service) Exists(word string) bool { return s.words.Exists(word) }

// Stem returns the Snowball stem of word.
func (s *Service) Stem(word string) string { return Stem(word) }

// Abbreviations returns the known short forms of word.
func (s *Service) Abbreviations(word string) []string { return s.abbrs.Of(word) }

// WithPrefix scans word list entries starting with prefix.
func (s *Service) WithPrefix(prefix string, fn func(word string) bool) {
	s.words.WithPrefix(prefix, fn)
}

// WordsMatching returns the word list entries matched by re.
func (s *Service) WordsMatching(re *regexp.Regexp) []string {
	return s.words.Matching(re)
}

// LiteralStem strips trailing y's from word and returns the result when it
// is itself a word, e.g. "smelly" -> "smell".
func (s *Service) LiteralStem(word string) (string, bool) {
	stripped := strings.TrimRight(word, "y")
	if stripped == word || stripped == "" || !s.words.Exists(stripped) {
		return "", false
	}
	return stripped, true
}

// IsPlural reports whether word reduces to a different noun base form.
// Words unknown to the sense graph fall back to English inflection rules.
func (s *Service) IsPlural(word string) bool {
	if base, ok := s.senses.NounBase(word); ok {
		return base != word
	}
	if s.senses.HasLemma(word) {
		return false
	}
	return inflection.Singular(word) != word
}

// senses collects the synsets of word and of its literal stem.
func (s *Service) sensesOf(word string) []int32 {
	ids := s.senses.Senses(word)
	if stem, ok := s.LiteralStem(word); ok {
		for _, id := range s.senses.Senses(stem) {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Similarity scores how related a and b are, in [0, 1]. It is symmetric,
// 0 when either has no senses, and cached by unordered pair.
func (s *Service) Similarity(a, b string) float64 {
	if a > b {
		a, b = b, a
	}
	return s.sim.get(a+"\x00"+b, func() float64 {
		return s.senses.Relatedness(s.sensesOf(a), s.sensesOf(b))
	})
}

// Synonyms returns the lemma names reachable from the senses of word:
// the synsets themselves and their similar synsets, widened depth times
// through hypernyms, hyponyms and similar synsets. Plural words get plural
// results. The result is sorted and must not be modified.
func (s *Service) Synonyms(word string, depth int) []string {
	return s.syn.get(word+"\x00"+strconv.Itoa(depth), func() []string {
		return s.synonyms(word, depth)
	})
}

func (s *Service) synonyms(word string, depth int) []string {
	g := s.senses
	current := make(map[int32]struct{})
	for _, id := range g.Senses(word) {
		current[id] = struct{}{}
		for _, sim := range g.Synsets[id].Similar {
			current[sim] = struct{}{}
		}
	}
	if len(current) == 0 {
		return nil
	}

	for i := 0; i < depth; i++ {
		widened := make(map[int32]struct{}, len(current)*4)
		for id := range current {
			widened[id] = struct{}{}
			syn := g.Synsets[id]
			for _, group := range [][]int32{syn.Hypernyms, syn.Hyponyms, syn.Similar} {
				for _, rel := range group {
					widened[rel] = struct{}{}
				}
			}
		}
		current = widened
	}

	plural := s.IsPlural(word)
	names := make(map[string]struct{})
	for id := range current {
		for _, l := range g.Synsets[id].Lemmas {
			if plural {
				l = Pluralize(l)
			}
			names[l] = struct{}{}
		}
	}
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Stats reports cache usage.
func (s *Service) Stats() map[string]CacheStats {
	return map[string]CacheStats{
		"similarity": s.sim.stats(),
		"synonyms":   s.syn.stats(),
	}
}
