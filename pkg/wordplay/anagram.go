package wordplay

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/bastiangx/cluesolve/internal/utils"
	"github.com/charmbracelet/log"
)

// AnagramIndex maps sorted letters to the single words spelled by them.
type AnagramIndex map[string][]string

// BuildAnagramIndex indexes single-word entries by their sorted letters.
func BuildAnagramIndex(words []string) AnagramIndex {
	idx := make(AnagramIndex, len(words))
	for _, w := range words {
		if utils.HasJoiner(w) {
			continue
		}
		key := utils.SortLetters(w)
		idx[key] = append(idx[key], w)
	}
	return idx
}

// Lookup returns the words spelled by exactly the given letters.
func (idx AnagramIndex) Lookup(letters string) []string {
	return idx[utils.SortLetters(letters)]
}

// AnagramEngine finds words spelled by rearranging the letters of any
// subset of the tokens around an anagram indicator.
type AnagramEngine struct {
	index atomic.Pointer[AnagramIndex]
}

// NewAnagramEngine builds the engine over words.
func NewAnagramEngine(words []string) *AnagramEngine {
	e := &AnagramEngine{}
	e.Rebuild(words)
	return e
}

func (e *AnagramEngine) Category() Category { return Anagram }
func (e *AnagramEngine) UsesKeywords() bool { return true }

// Rebuild replaces the index with one built from words.
func (e *AnagramEngine) Rebuild(words []string) {
	e.Load(BuildAnagramIndex(words))
}

// Load swaps in a prebuilt index.
func (e *AnagramEngine) Load(idx AnagramIndex) {
	e.index.Store(&idx)
	log.Debugf("anagram index holds %d letter keys", len(idx))
}

// Index returns the current index.
func (e *AnagramEngine) Index() AnagramIndex {
	if p := e.index.Load(); p != nil {
		return *p
	}
	return nil
}

func (e *AnagramEngine) Solve(ctx context.Context, _ Env, c Constraints, span Span) []Candidate {
	idx := e.Index()
	tokens := span.Wordplay()
	var out []Candidate
	subsets(tokens, func(sub []string) bool {
		if ctx.Err() != nil {
			return false
		}
		letters := strings.Join(sub, "")
		for _, w := range idx.Lookup(letters) {
			if w == letters || !c.CheckSolution(w) {
				continue
			}
			out = append(out, Candidate{
				Answer:     w,
				Category:   Anagram,
				AppliedTo:  sub,
				Confidence: scaled(0.5, 1, 0.1, len(tokens)-len(sub)),
			})
		}
		return true
	})
	log.Debugf("anagram: %d candidates from %d tokens", len(out), len(tokens))
	return out
}
