package wordplay

import (
	"context"

	"github.com/bastiangx/cluesolve/internal/utils"
	"github.com/charmbracelet/log"
)

// maxDoubleDefinitionTokens bounds the wordplay part a second definition may span.
const maxDoubleDefinitionTokens = 3

// DoubleDefinitionEngine treats the wordplay part as a second definition
// and proposes synonyms of its sub-spans.
type DoubleDefinitionEngine struct{}

func (DoubleDefinitionEngine) Category() Category { return DoubleDefinition }
func (DoubleDefinitionEngine) UsesKeywords() bool { return false }

func (DoubleDefinitionEngine) Solve(ctx context.Context, env Env, c Constraints, span Span) []Candidate {
	tokens := span.Wordplay()
	if len(tokens) == 0 || len(tokens) > maxDoubleDefinitionTokens {
		return nil
	}
	var out []Candidate
	contiguous(tokens, func(sub []string) {
		if ctx.Err() != nil {
			return
		}
		phrase := utils.JoinTokens(sub)
		base := scaled(0.4, 1, 0.15, len(tokens)-len(sub))
		for _, syn := range env.Lex.Synonyms(phrase, env.SynonymDepth) {
			if !c.CheckSolution(syn) {
				continue
			}
			conf := base * env.Lex.Similarity(phrase, syn)
			if conf <= 0 {
				continue
			}
			out = append(out, Candidate{
				Answer:     syn,
				Category:   DoubleDefinition,
				AppliedTo:  append([]string(nil), sub...),
				Confidence: conf,
			})
		}
	})
	log.Debugf("double definition: %d candidates", len(out))
	return out
}
