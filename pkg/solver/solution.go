package solver

import (
	"fmt"
	"strings"

	"github.com/bastiangx/cluesolve/internal/utils"
	"github.com/bastiangx/cluesolve/pkg/clue"
	"github.com/bastiangx/cluesolve/pkg/wordplay"
)

// BruteForced names the pseudo category of pattern-only answers.
const BruteForced = "brute-forced"

// placeholder is printed for a missing definition, wordplay or keyword.
const placeholder = "---"

// Span is a half-open range of clue token indexes. The zero Span is empty.
type Span struct {
	Start int
	End   int
}

// Empty reports whether the span covers no tokens.
func (s Span) Empty() bool { return s.End <= s.Start }

// Len returns the number of tokens covered.
func (s Span) Len() int {
	if s.Empty() {
		return 0
	}
	return s.End - s.Start
}

// Solution is a ranked answer and how it was reached.
type Solution struct {
	Clue   *clue.Clue
	Answer string
	// Definition is empty for brute-forced answers that matched no definition.
	Definition Span
	Wordplay   Span
	// Keyword is the clue token index of the indicator, or -1.
	Keyword     int
	Category    wordplay.Category
	BruteForced bool
	AppliedTo   []string
	Confidence  float64
}

func (s Solution) tokens(span Span) []string {
	if span.Empty() || s.Clue == nil {
		return nil
	}
	return s.Clue.Tokens()[span.Start:span.End]
}

// DefinitionText returns the definition tokens, or "" when there is none.
func (s Solution) DefinitionText() string { return strings.Join(s.tokens(s.Definition), " ") }

// WordplayText returns the wordplay tokens, or "" when there is none.
func (s Solution) WordplayText() string { return strings.Join(s.tokens(s.Wordplay), " ") }

// KeywordText returns the indicator token, or "" when there is none.
func (s Solution) KeywordText() string {
	if s.Keyword < 0 || s.Clue == nil || s.Keyword >= s.Clue.NumTokens() {
		return ""
	}
	return s.Clue.Tokens()[s.Keyword]
}

// CategoryName returns the wordplay category, or "brute-forced".
func (s Solution) CategoryName() string {
	if s.BruteForced {
		return BruteForced
	}
	return s.Category.String()
}

// DisplayAnswer renders the answer with joiners as spaces.
func (s Solution) DisplayAnswer() string {
	return strings.ReplaceAll(s.Answer, utils.Joiner, " ")
}

// Describe renders the solution for people.
func (s Solution) Describe() string {
	orNone := func(v string) string {
		if v == "" {
			return placeholder
		}
		return strings.ToUpper(v)
	}
	applied := placeholder
	if len(s.AppliedTo) > 0 {
		applied = strings.ToUpper(strings.Join(s.AppliedTo, " "))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Definition part: %s\n", orNone(s.DefinitionText()))
	fmt.Fprintf(&b, "Wordplay part: %s\n", orNone(s.WordplayText()))
	fmt.Fprintf(&b, "Keyword: %s <%s> applied to: %s\n", orNone(s.KeywordText()), s.CategoryName(), applied)
	fmt.Fprintf(&b, "Solution: %s\n", strings.ToUpper(s.DisplayAnswer()))
	fmt.Fprintf(&b, "Confidence: %.4f", s.Confidence)
	return b.String()
}

func (s Solution) String() string {
	return fmt.Sprintf("%s <%s> %.4f", s.DisplayAnswer(), s.CategoryName(), s.Confidence)
}

// key identifies exact duplicates.
func (s Solution) key() string {
	return fmt.Sprintf("%s|%s|%d:%d|%d|%s", s.Answer, s.CategoryName(),
		s.Definition.Start, s.Definition.End, s.Keyword, strings.Join(s.AppliedTo, " "))
}
