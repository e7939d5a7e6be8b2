package wordplay

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/bastiangx/cluesolve/internal/utils"
	"github.com/charmbracelet/log"
	patricia "github.com/tchap/go-patricia/v2/patricia"
)

// RunDictionary is a trie of the single-word entries a hidden run may spell.
type RunDictionary struct {
	words []string
	trie  *patricia.Trie
}

// BuildRunDictionary indexes the single-word entries of words.
func BuildRunDictionary(words []string) *RunDictionary {
	d := &RunDictionary{trie: patricia.NewTrie()}
	for _, w := range words {
		if w == "" || utils.HasJoiner(w) {
			continue
		}
		if d.trie.Insert(patricia.Prefix(w), struct{}{}) {
			d.words = append(d.words, w)
		}
	}
	return d
}

// Words returns the indexed entries, in insertion order.
func (d *RunDictionary) Words() []string { return d.words }

// Len returns the number of indexed entries.
func (d *RunDictionary) Len() int { return len(d.words) }

type run struct {
	word string
	used []string
}

// runs finds every entry spelled by consecutive letters of the concatenated
// tokens. A token counts as used if the run covers any of its letters.
func (d *RunDictionary) runs(tokens []string) []run {
	text := strings.Join(tokens, "")
	ends := make([]int, len(tokens))
	off := 0
	for i, t := range tokens {
		off += len(t)
		ends[i] = off
	}

	var out []run
	for start := 0; start < len(text); start++ {
		_ = d.trie.VisitPrefixes(patricia.Prefix(text[start:]), func(p patricia.Prefix, _ patricia.Item) error {
			if len(p) == 0 {
				return nil
			}
			end := start + len(p)
			var used []string
			tokStart := 0
			for i, t := range tokens {
				if tokStart < end && ends[i] > start {
					used = append(used, t)
				}
				tokStart = ends[i]
			}
			out = append(out, run{word: string(p), used: used})
			return nil
		})
	}
	return out
}

// RunEngine finds answers hidden across consecutive letters of the tokens
// on one side of a run indicator.
type RunEngine struct {
	dict atomic.Pointer[RunDictionary]
}

// NewRunEngine builds the engine over words.
func NewRunEngine(words []string) *RunEngine {
	e := &RunEngine{}
	e.Rebuild(words)
	return e
}

func (e *RunEngine) Category() Category { return Run }
func (e *RunEngine) UsesKeywords() bool { return true }

// Rebuild replaces the trie with one built from words.
func (e *RunEngine) Rebuild(words []string) {
	e.Load(BuildRunDictionary(words))
}

// Load swaps in a prebuilt dictionary.
func (e *RunEngine) Load(d *RunDictionary) {
	e.dict.Store(d)
	log.Debugf("run trie holds %d words", d.Len())
}

// Dictionary returns the current dictionary.
func (e *RunEngine) Dictionary() *RunDictionary { return e.dict.Load() }

func (e *RunEngine) Solve(ctx context.Context, _ Env, c Constraints, span Span) []Candidate {
	d := e.Dictionary()
	if d == nil {
		return nil
	}
	sides := [][]string{span.Before(), span.After()}
	var out []Candidate
	for _, side := range sides {
		if len(side) == 0 {
			continue
		}
		if ctx.Err() != nil {
			return out
		}
		seen := utils.NewSeenFilter()
		for _, r := range d.runs(side) {
			if !c.CheckSolution(r.word) || !seen.ShouldInclude(r.word+"|"+strings.Join(r.used, " ")) {
				continue
			}
			base := 0.7
			if len(r.used) > 1 {
				base = 1
			}
			out = append(out, Candidate{
				Answer:     r.word,
				Category:   Run,
				AppliedTo:  r.used,
				Confidence: scaled(0.4, base, 0.08, len(side)-len(r.used)-1),
			})
		}
	}
	log.Debugf("run: %d candidates", len(out))
	return out
}
