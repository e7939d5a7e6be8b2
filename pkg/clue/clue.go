// Package clue parses cryptic crossword clues into tokens and answer
// constraints, and decides whether a candidate answer is admissible.
package clue

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bastiangx/cluesolve/internal/utils"
	"github.com/bastiangx/cluesolve/pkg/wordplay"
)

// MinSolutionLength is the shortest answer accepted when no letters are known.
const MinSolutionLength = 3

// Wildcard marks an unknown position in known letters.
const Wildcard = '?'

var (
	// ErrUnsupportedClue is returned for multi-word annotations like "(3,4)"
	// and other input the solver cannot handle.
	ErrUnsupportedClue = errors.New("unsupported clue")
	// ErrLengthMismatch is returned when the length sources disagree.
	ErrLengthMismatch = errors.New("solution length mismatch")
)

var (
	annotationPattern = regexp.MustCompile(`^(.*?)\s*\(([\d,\-]+)\)`)
	tokenPattern      = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// Options carries the constraints supplied alongside the clue text.
type Options struct {
	// Length of the answer, 0 when not given.
	Length int
	// Category restricts the search to one kind of wordplay.
	Category wordplay.Category
	// KnownLetters is a pattern like "?a??s".
	KnownLetters string
}

// Clue is an immutable parsed clue.
type Clue struct {
	text     string
	body     string
	tokens   []string
	tokenSet map[string]struct{}
	length   int
	category wordplay.Category
	known    string
	pattern  *regexp.Regexp
}

// New parses text with the given options.
func New(text string, opts Options) (*Clue, error) {
	c := &Clue{
		text:     text,
		body:     strings.TrimSpace(text),
		length:   opts.Length,
		category: opts.Category,
	}
	if c.length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrLengthMismatch, c.length)
	}

	if m := annotationPattern.FindStringSubmatch(text); m != nil {
		annotated, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("%w: annotation (%s) describes more than one word", ErrUnsupportedClue, m[2])
		}
		if annotated < 1 {
			return nil, fmt.Errorf("%w: annotation (%s) is not a positive length", ErrUnsupportedClue, m[2])
		}
		if c.length > 0 && c.length != annotated {
			return nil, fmt.Errorf("%w: annotation says %d, length given as %d", ErrLengthMismatch, annotated, c.length)
		}
		c.length = annotated
		c.body = m[1]
	}

	if opts.KnownLetters != "" {
		known := strings.ToLower(opts.KnownLetters)
		for _, r := range known {
			if r != Wildcard && (r < 'a' || r > 'z') {
				return nil, fmt.Errorf("%w: known letters %q may only hold a-z and %q", ErrUnsupportedClue, opts.KnownLetters, Wildcard)
			}
		}
		if c.length == 0 {
			c.length = len(known)
		} else if c.length != len(known) {
			return nil, fmt.Errorf("%w: %d known letter slots for a %d letter answer", ErrLengthMismatch, len(known), c.length)
		}
		c.known = known
		pattern, err := utils.PatternRegexp(known)
		if err != nil {
			return nil, fmt.Errorf("%w: known letters %q: %v", ErrUnsupportedClue, opts.KnownLetters, err)
		}
		c.pattern = pattern
	}

	c.tokens = Tokenize(c.body)
	c.tokenSet = make(map[string]struct{}, len(c.tokens))
	for _, t := range c.tokens {
		c.tokenSet[t] = struct{}{}
	}
	return c, nil
}

// Tokenize lowercases s, drops apostrophes and splits it into word tokens.
func Tokenize(s string) []string {
	s = strings.ToLower(strings.ReplaceAll(s, "'", ""))
	return tokenPattern.FindAllString(s, -1)
}

// Text returns the clue exactly as given.
func (c *Clue) Text() string { return c.text }

// Body returns the clue text without the length annotation.
func (c *Clue) Body() string { return c.body }

// Tokens returns a copy of the clue tokens.
func (c *Clue) Tokens() []string {
	out := make([]string, len(c.tokens))
	copy(out, c.tokens)
	return out
}

// NumTokens returns the token count without copying.
func (c *Clue) NumTokens() int { return len(c.tokens) }

// Length returns the answer length, 0 if unknown.
func (c *Clue) Length() int { return c.length }

// TargetLength is Length under the name the wordplay engines expect.
func (c *Clue) TargetLength() int { return c.length }

// Category returns the requested category.
func (c *Clue) Category() wordplay.Category { return c.category }

// KnownLetters returns the lowercased known-letter pattern, "" if none.
func (c *Clue) KnownLetters() string { return c.known }

// Pattern returns the compiled known-letter pattern, nil if none.
func (c *Clue) Pattern() *regexp.Regexp { return c.pattern }

// CheckSolution reports whether candidate is an admissible answer.
// Joiners are ignored. An answer that repeats a clue token is never
// admissible. Known letters, when present, decide alone; otherwise the
// length must match and be at least MinSolutionLength.
func (c *Clue) CheckSolution(candidate string) bool {
	s := strings.ToLower(utils.StripJoiner(candidate))
	if _, echo := c.tokenSet[s]; echo {
		return false
	}
	if c.pattern != nil {
		return c.pattern.MatchString(s)
	}
	if c.length > 0 && len(s) != c.length {
		return false
	}
	return len(s) >= MinSolutionLength
}

func (c *Clue) String() string {
	if c.length > 0 {
		return fmt.Sprintf("%s (%d)", c.body, c.length)
	}
	return c.body
}
