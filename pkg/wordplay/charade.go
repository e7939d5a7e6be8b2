package wordplay

import (
	"context"
	"strings"

	"github.com/bastiangx/cluesolve/internal/utils"
	"github.com/charmbracelet/log"
)

// lazyConfidence marks a piece whose confidence is computed on first use.
const lazyConfidence = -1

var letterPickers = []struct {
	category Category
	pick     func([]string) string
}{
	{Initial, utils.Initials},
	{Final, utils.Finals},
}

// piece is a fragment one side of a charade may contribute.
type piece struct {
	text string
	conf float64
}

// CharadeEngine splits the wordplay in two and joins a fragment derived
// from each side: indicated first or last letters, abbreviations, or (on
// the left) synonyms. The left fragment may also be completed by any word
// whose remainder is itself a word related to the right side.
type CharadeEngine struct{}

func (CharadeEngine) Category() Category { return Charade }
func (CharadeEngine) UsesKeywords() bool { return false }

func (e CharadeEngine) Solve(ctx context.Context, env Env, c Constraints, span Span) []Candidate {
	tokens := span.Wordplay()
	if len(tokens) < 2 {
		return nil
	}
	var out []Candidate
	for pos := 1; pos < len(tokens); pos++ {
		if ctx.Err() != nil {
			break
		}
		left, right := tokens[:pos], tokens[pos:]
		rightRaw := utils.JoinTokens(right)
		leftRaw := utils.JoinTokens(left)
		rights := pieces(env, right, false)

		for _, pl := range pieces(env, left, true) {
			if ctx.Err() != nil {
				break
			}
			lsim := pl.conf
			leftSim := func() float64 {
				if lsim == lazyConfidence {
					lsim = env.Lex.Similarity(pl.text, leftRaw)
				}
				return lsim
			}
			emit := func(word string, rsim float64) {
				if rsim <= 0 || !c.CheckSolution(word) {
					return
				}
				if conf := rsim * leftSim(); conf > 0 {
					out = append(out, Candidate{
						Answer:     word,
						Category:   Charade,
						AppliedTo:  append([]string(nil), tokens...),
						Confidence: conf,
					})
				}
			}

			target := c.TargetLength()
			env.Lex.WithPrefix(pl.text, func(word string) bool {
				if target > 0 && len(word) != target {
					return true
				}
				// a completion is always a single word, even from a joined entry
				rest := utils.StripJoiner(strings.TrimPrefix(word, pl.text))
				if rest == "" || !env.Lex.Exists(rest) {
					return true
				}
				emit(pl.text+rest, env.Lex.Similarity(rest, rightRaw))
				return true
			})
			for _, pr := range rights {
				if word := pl.text + pr.text; env.Lex.Exists(word) {
					emit(word, pr.conf)
				}
			}
		}
	}
	log.Debugf("charade: %d candidates", len(out))
	return out
}

// pieces lists the fragments a side of a charade can yield.
func pieces(env Env, side []string, withSynonyms bool) []piece {
	var out []piece
	seen := utils.NewSeenFilter("")
	add := func(text string, conf float64) {
		if seen.ShouldInclude(text) {
			out = append(out, piece{text: text, conf: conf})
		}
	}

	for i, tok := range side {
		stem := env.Lex.Stem(tok)
		for _, lp := range letterPickers {
			if env.Keywords.Has(lp.category, stem) {
				add(lp.pick(side[:i]), 1)
				add(lp.pick(side[i+1:]), 1)
			}
		}
	}
	if len(side) == 1 {
		for _, abbr := range env.Lex.Abbreviations(side[0]) {
			add(abbr, 1)
		}
	}
	if withSynonyms {
		raw := utils.JoinTokens(side)
		if env.Lex.Exists(raw) {
			for _, syn := range env.Lex.Synonyms(raw, env.CharadeSynonymDepth) {
				if !utils.HasJoiner(syn) {
					add(syn, lazyConfidence)
				}
			}
		}
	}
	return out
}
