package wordplay

import (
	"context"

	"github.com/bastiangx/cluesolve/internal/utils"
	"github.com/charmbracelet/log"
)

// LetterEngine spells answers from the first (Initial) or last (Final)
// letters of a subset of the tokens around its indicator.
type LetterEngine struct {
	category Category
	pick     func(tokens []string) string
}

// NewInitialEngine returns the first-letters engine.
func NewInitialEngine() *LetterEngine {
	return &LetterEngine{category: Initial, pick: utils.Initials}
}

// NewFinalEngine returns the last-letters engine.
func NewFinalEngine() *LetterEngine {
	return &LetterEngine{category: Final, pick: utils.Finals}
}

func (e *LetterEngine) Category() Category { return e.category }
func (e *LetterEngine) UsesKeywords() bool { return true }

func (e *LetterEngine) Solve(ctx context.Context, env Env, c Constraints, span Span) []Candidate {
	tokens := span.Wordplay()
	var out []Candidate
	subsets(tokens, func(sub []string) bool {
		if ctx.Err() != nil {
			return false
		}
		word := e.pick(sub)
		if !env.Lex.Exists(word) || !c.CheckSolution(word) {
			return true
		}
		out = append(out, Candidate{
			Answer:     word,
			Category:   e.category,
			AppliedTo:  sub,
			Confidence: scaled(0.5, 1, 0.1, len(tokens)-len(sub)),
		})
		return true
	})
	log.Debugf("%s: %d candidates", e.category, len(out))
	return out
}
