package lexicon

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// PartOfSpeech is the WordNet part-of-speech letter of a synset.
type PartOfSpeech byte

const (
	Noun      PartOfSpeech = 'n'
	Verb      PartOfSpeech = 'v'
	Adjective PartOfSpeech = 'a'
	Satellite PartOfSpeech = 's'
	Adverb    PartOfSpeech = 'r'
)

// base folds satellite adjectives into adjectives.
func (p PartOfSpeech) base() PartOfSpeech {
	if p == Satellite {
		return Adjective
	}
	return p
}

// RelationType is a synset-to-synset relation kept by the graph.
type RelationType string

const (
	Hypernym RelationType = "hypernym"
	Hyponym  RelationType = "hyponym"
	Similar  RelationType = "similar"
)

// Synset is one sense node. Relations hold indexes into SenseGraph.Synsets.
type Synset struct {
	ID        string       `msgpack:"id"`
	POS       PartOfSpeech `msgpack:"p"`
	Lemmas    []string     `msgpack:"l"`
	Hypernyms []int32      `msgpack:"h,omitempty"`
	Hyponyms  []int32      `msgpack:"o,omitempty"`
	Similar   []int32      `msgpack:"s,omitempty"`
}

// SenseGraph is an immutable WordNet-like graph of synsets.
// Call Finalize after decoding one from an artifact.
type SenseGraph struct {
	Synsets []Synset `msgpack:"synsets"`
	// Forms maps irregular inflections to their lemmas, e.g. "got" -> "get".
	Forms map[string][]string `msgpack:"forms,omitempty"`

	index    map[string][]int32
	maxDepth []int
}

// EmptySenseGraph returns a graph with no senses. Every relatedness score is 0.
func EmptySenseGraph() *SenseGraph {
	g := &SenseGraph{}
	g.Finalize()
	return g
}

// Finalize builds the lemma index and depth table.
func (g *SenseGraph) Finalize() {
	g.index = make(map[string][]int32, len(g.Synsets))
	for i, s := range g.Synsets {
		for _, l := range s.Lemmas {
			g.index[l] = append(g.index[l], int32(i))
		}
	}
	g.maxDepth = make([]int, len(g.Synsets))
	for i := range g.maxDepth {
		g.maxDepth[i] = -1
	}
	for i := range g.Synsets {
		g.depth(int32(i), make(map[int32]bool))
	}
}

// depth computes the longest hypernym path to a root. Cycles count as roots.
func (g *SenseGraph) depth(s int32, visiting map[int32]bool) int {
	if d := g.maxDepth[s]; d >= 0 {
		return d
	}
	if visiting[s] {
		return 0
	}
	visiting[s] = true
	d := 0
	for _, h := range g.Synsets[s].Hypernyms {
		if hd := g.depth(h, visiting) + 1; hd > d {
			d = hd
		}
	}
	delete(visiting, s)
	g.maxDepth[s] = d
	return d
}

// Len returns the number of synsets.
func (g *SenseGraph) Len() int { return len(g.Synsets) }

// HasLemma reports whether word is a lemma of any synset.
func (g *SenseGraph) HasLemma(word string) bool {
	_, ok := g.index[word]
	return ok
}

// Senses returns the synsets of word, trying irregular forms and morphy
// detachment rules when word is not a lemma itself.
func (g *SenseGraph) Senses(word string) []int32 {
	var out []int32
	seen := make(map[int32]struct{})
	add := func(ids []int32, pos PartOfSpeech) {
		for _, id := range ids {
			if pos != 0 && g.Synsets[id].POS.base() != pos {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	add(g.index[word], 0)
	for _, lemma := range g.Forms[word] {
		add(g.index[lemma], 0)
	}
	for _, pos := range []PartOfSpeech{Noun, Verb, Adjective, Adverb} {
		for _, form := range detach(word, pos) {
			add(g.index[form], pos)
		}
	}
	return out
}

// NounBase returns the shortest noun lemma word reduces to, or word itself.
func (g *SenseGraph) NounBase(word string) (string, bool) {
	best, found := "", false
	consider := func(form string) {
		for _, id := range g.index[form] {
			if g.Synsets[id].POS == Noun {
				if !found || len(form) < len(best) {
					best, found = form, true
				}
				return
			}
		}
	}
	consider(word)
	for _, lemma := range g.Forms[word] {
		consider(lemma)
	}
	for _, form := range detach(word, Noun) {
		consider(form)
	}
	if !found {
		return word, false
	}
	return best, true
}

// Lemmas returns the lemma names of a synset.
func (g *SenseGraph) Lemmas(id int32) []string { return g.Synsets[id].Lemmas }

// String gives a short summary, handy in logs.
func (g *SenseGraph) String() string {
	return fmt.Sprintf("SenseGraph{synsets: %d, lemmas: %d}", len(g.Synsets), len(g.index))
}

// GraphBuilder assembles a SenseGraph from synsets and named relations.
// Relations may reference synsets added later.
type GraphBuilder struct {
	synsets []Synset
	ids     map[string]int32
	forms   map[string][]string
	rels    []pendingRelation
}

type pendingRelation struct {
	from, to string
	rel      RelationType
}

// NewGraphBuilder creates an empty builder.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{ids: make(map[string]int32), forms: make(map[string][]string)}
}

// AddSynset registers a synset. Lemmas are lowercased with spaces joined by
// underscores. Adding an existing id merges the lemmas.
func (b *GraphBuilder) AddSynset(id string, pos PartOfSpeech, lemmas ...string) {
	idx, ok := b.ids[id]
	if !ok {
		idx = int32(len(b.synsets))
		b.ids[id] = idx
		b.synsets = append(b.synsets, Synset{ID: id, POS: pos})
	}
	s := &b.synsets[idx]
	for _, l := range lemmas {
		l = normalizeLemma(l)
		if l != "" && !slices.Contains(s.Lemmas, l) {
			s.Lemmas = append(s.Lemmas, l)
		}
	}
}

// AddForm records an irregular inflection of lemma.
func (b *GraphBuilder) AddForm(form, lemma string) {
	form, lemma = normalizeLemma(form), normalizeLemma(lemma)
	if form == "" || form == lemma || slices.Contains(b.forms[form], lemma) {
		return
	}
	b.forms[form] = append(b.forms[form], lemma)
}

// Relate records "from rel to". The inverse edge is added automatically.
func (b *GraphBuilder) Relate(from string, rel RelationType, to string) {
	b.rels = append(b.rels, pendingRelation{from: from, to: to, rel: rel})
}

// Build resolves relations and returns the finalized graph. Relations to
// unknown synsets are dropped.
func (b *GraphBuilder) Build() *SenseGraph {
	dropped := 0
	for _, r := range b.rels {
		from, okFrom := b.ids[r.from]
		to, okTo := b.ids[r.to]
		if !okFrom || !okTo || from == to {
			dropped++
			continue
		}
		switch r.rel {
		case Hypernym:
			link(&b.synsets[from].Hypernyms, to)
			link(&b.synsets[to].Hyponyms, from)
		case Hyponym:
			link(&b.synsets[from].Hyponyms, to)
			link(&b.synsets[to].Hypernyms, from)
		case Similar:
			link(&b.synsets[from].Similar, to)
			link(&b.synsets[to].Similar, from)
		default:
			dropped++
		}
	}
	if dropped > 0 {
		log.Debugf("sense graph: dropped %d unresolved relations", dropped)
	}
	g := &SenseGraph{Synsets: b.synsets}
	if len(b.forms) > 0 {
		g.Forms = b.forms
	}
	g.Finalize()
	return g
}

func link(edges *[]int32, to int32) {
	if !slices.Contains(*edges, to) {
		*edges = append(*edges, to)
	}
}

func normalizeLemma(l string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(l)), " ", "_")
}
