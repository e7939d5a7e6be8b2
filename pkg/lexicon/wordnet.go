package lexicon

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// GWN-LMF JSON types. Only the fields the sense graph needs are decoded.

type gwnDocument struct {
	Graph []gwnLexicon `json:"@graph"`
}

type gwnLexicon struct {
	Entries []gwnEntry  `json:"entry"`
	Synsets []gwnSynset `json:"synset"`
}

type gwnEntry struct {
	ID    string     `json:"@id"`
	Lemma gwnLemma   `json:"lemma"`
	Forms []gwnLemma `json:"form"`
	Sense []gwnSense `json:"sense"`
}

type gwnLemma struct {
	WrittenForm  string `json:"writtenForm"`
	PartOfSpeech string `json:"partOfSpeech"`
}

type gwnSense struct {
	ID     string `json:"@id"`
	Synset string `json:"synset"`
}

type gwnSynset struct {
	ID           string        `json:"@id"`
	PartOfSpeech string        `json:"partOfSpeech"`
	Relations    []gwnRelation `json:"relations"`
}

type gwnRelation struct {
	RelType string `json:"relType"`
	Target  string `json:"target"`
}

// relationKinds folds the GWN relation names onto the kinds the graph keeps.
var relationKinds = map[string]RelationType{
	"hypernym":          Hypernym,
	"instance_hypernym": Hypernym,
	"hyponym":           Hyponym,
	"instance_hyponym":  Hyponym,
	"similar":           Similar,
}

// LoadWordNet parses an Open English WordNet GWN-LMF JSON file.
func LoadWordNet(path string) (*SenseGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wordnet: %w", err)
	}
	defer f.Close()
	g, err := ParseWordNet(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ParseWordNet decodes a GWN-LMF JSON document into a sense graph.
func ParseWordNet(r io.Reader) (*SenseGraph, error) {
	var doc gwnDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	b := NewGraphBuilder()
	entries, relations := 0, 0
	for _, lex := range doc.Graph {
		for _, s := range lex.Synsets {
			b.AddSynset(s.ID, parsePOS(s.PartOfSpeech, s.ID))
			for _, rel := range s.Relations {
				if kind, ok := relationKinds[rel.RelType]; ok {
					b.Relate(s.ID, kind, rel.Target)
					relations++
				}
			}
		}
		for _, e := range lex.Entries {
			entries++
			lemma := e.Lemma.WrittenForm
			for _, sense := range e.Sense {
				b.AddSynset(sense.Synset, parsePOS(e.Lemma.PartOfSpeech, sense.Synset), lemma)
			}
			for _, form := range e.Forms {
				b.AddForm(form.WrittenForm, lemma)
			}
		}
	}
	g := b.Build()
	log.Debugf("wordnet parsed: %d entries, %d synsets, %d relations", entries, g.Len(), relations)
	return g, nil
}

// parsePOS reads a GWN part of speech, falling back to the "-n" style
// suffix of the synset id.
func parsePOS(pos, id string) PartOfSpeech {
	if pos == "" {
		if i := strings.LastIndexByte(id, '-'); i >= 0 && i+1 < len(id) {
			pos = id[i+1:]
		}
	}
	if len(pos) == 1 {
		switch p := PartOfSpeech(pos[0]); p {
		case Noun, Verb, Adjective, Satellite, Adverb:
			return p
		}
	}
	return Noun
}
