// Package wordplay implements the cryptic wordplay engines. Each engine
// turns the wordplay part of a clue into candidate answers with a local
// confidence; the solver later weighs them against the definition.
package wordplay

import (
	"context"
)

// Lexical is the subset of the lexical service the engines rely on.
type Lexical interface {
	Exists(word string) bool
	Stem(word string) string
	Similarity(a, b string) float64
	Synonyms(word string, depth int) []string
	Abbreviations(word string) []string
	WithPrefix(prefix string, fn func(word string) bool)
}

// Constraints decides which candidates are admissible answers.
type Constraints interface {
	CheckSolution(candidate string) bool
	TargetLength() int
}

// Env is what an engine may consult while solving.
type Env struct {
	Lex      Lexical
	Keywords Keywords
	// SynonymDepth widens double definition synonym lookups.
	SynonymDepth int
	// CharadeSynonymDepth widens the synonyms tried for charade pieces.
	CharadeSynonymDepth int
}

// Span is the wordplay part of a clue. Keyword indexes the indicator
// token inside Tokens, or is -1.
type Span struct {
	Tokens  []string
	Keyword int
}

// Before returns the tokens preceding the keyword.
func (s Span) Before() []string {
	if s.Keyword < 0 {
		return s.Tokens
	}
	return s.Tokens[:s.Keyword]
}

// After returns the tokens following the keyword.
func (s Span) After() []string {
	if s.Keyword < 0 {
		return nil
	}
	return s.Tokens[s.Keyword+1:]
}

// Wordplay returns every token except the keyword.
func (s Span) Wordplay() []string {
	if s.Keyword < 0 {
		return s.Tokens
	}
	out := make([]string, 0, len(s.Tokens)-1)
	out = append(out, s.Before()...)
	return append(out, s.After()...)
}

// Candidate is an answer proposed by an engine.
type Candidate struct {
	Answer     string
	Category   Category
	AppliedTo  []string
	Confidence float64
}

// Engine generates candidates for one category.
type Engine interface {
	Category() Category
	// UsesKeywords reports whether the engine runs only around an indicator.
	UsesKeywords() bool
	Solve(ctx context.Context, env Env, c Constraints, span Span) []Candidate
}

// Rebuilder is an engine that owns a dictionary derived from the word list.
// Rebuild is idempotent and swaps the new dictionary in atomically.
type Rebuilder interface {
	Engine
	Rebuild(words []string)
}
