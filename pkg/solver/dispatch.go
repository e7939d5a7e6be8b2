package solver

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/bastiangx/cluesolve/internal/utils"
	"github.com/bastiangx/cluesolve/pkg/clue"
	"github.com/bastiangx/cluesolve/pkg/wordplay"
)

// ErrBruteForceRequiresKnownLetters is returned when brute force is asked
// for without a known-letter pattern to search with.
var ErrBruteForceRequiresKnownLetters = errors.New("brute force requires known letters")

// BruteForceStage is reported to Progress when the brute force pass starts.
const BruteForceStage = "brute-forcing"

// Options tunes one solve.
type Options struct {
	// BruteForce appends every word matching the known letters.
	BruteForce bool
	// SynonymDepth overrides the configured synonym search depth when > 0.
	SynonymDepth int
	// Progress, when set, is called with a category name before each
	// engine runs and with BruteForceStage before brute force.
	Progress func(stage string)
}

// Request is a clue with its constraints and solve options.
type Request struct {
	Text         string
	Length       int
	Category     wordplay.Category
	KnownLetters string
	Options
}

// Solve parses the clue of req and solves it.
func (s *Solver) Solve(ctx context.Context, req Request) ([]Solution, error) {
	c, err := clue.New(req.Text, clue.Options{
		Length:       req.Length,
		Category:     req.Category,
		KnownLetters: req.KnownLetters,
	})
	if err != nil {
		return nil, err
	}
	return s.SolveClue(ctx, c, req.Options)
}

// SolveClue ranks the answers of c, best first. Brute-forced answers follow
// the rest. When ctx is done the solutions found so far are returned with
// a nil error.
func (s *Solver) SolveClue(ctx context.Context, c *clue.Clue, opts Options) ([]Solution, error) {
	if opts.BruteForce && c.KnownLetters() == "" {
		return nil, ErrBruteForceRequiresKnownLetters
	}
	start := time.Now()
	snap := s.snap.Load()

	depth := opts.SynonymDepth
	if depth <= 0 {
		depth = max(s.cfg.SynonymSearchDepth, 1)
	}
	charadeDepth := s.cfg.CharadeSynonymDepth
	if charadeDepth <= 0 {
		charadeDepth = 2
	}
	maxDef := s.cfg.DefinitionMaxLen
	if maxDef <= 0 {
		maxDef = 3
	}

	sr := &search{
		snap:  snap,
		clue:  c,
		opts:  opts,
		found: make(map[string]struct{}),
		seen:  utils.NewSeenFilter(),
		env: wordplay.Env{
			Lex:                 snap.Lexicon,
			Keywords:            snap.Keywords,
			SynonymDepth:        depth,
			CharadeSynonymDepth: charadeDepth,
		},
	}
	sr.primary(ctx, maxDef)
	slices.SortStableFunc(sr.solutions, byConfidence)
	if opts.BruteForce && ctx.Err() == nil {
		sr.bruteForce(ctx)
	}

	out := sr.solutions
	if s.cfg.MaxResults > 0 && len(out) > s.cfg.MaxResults {
		out = out[:s.cfg.MaxResults]
	}
	switch {
	case ctx.Err() != nil:
		s.log.Warn("solve cancelled", "clue", c.Body(), "partial", len(out), "took", time.Since(start))
	case len(out) == 0:
		s.log.Info("unsuccessful in resolving clue", "clue", c.Body(), "took", time.Since(start))
	default:
		s.log.Info("solved", "clue", c.Body(), "solutions", len(out), "best", out[0].Answer,
			"confidence", out[0].Confidence, "took", time.Since(start))
	}
	return out, nil
}

func byConfidence(a, b Solution) int {
	return cmp.Compare(b.Confidence, a.Confidence)
}

// definition is a definition phrase the primary pass accepted.
type definition struct {
	span   Span
	phrase string
}

// interpretation is one engine to run over the wordplay, around the
// keyword at the given wordplay index, or -1.
type interpretation struct {
	keyword int
	engine  wordplay.Engine
}

type search struct {
	snap *Snapshot
	clue *clue.Clue
	opts Options
	env  wordplay.Env

	definitions []definition
	solutions   []Solution
	found       map[string]struct{}
	seen        *utils.SeenFilter
}

func (sr *search) progress(stage string) {
	if sr.opts.Progress != nil {
		sr.opts.Progress(stage)
	}
}

// definitionLengths lists signed definition lengths, negative ones taking
// tokens from the end of the clue.
func definitionLengths(maxLen int) []int {
	out := make([]int, 0, 2*maxLen)
	for d := -maxLen; d <= maxLen; d++ {
		if d != 0 {
			out = append(out, d)
		}
	}
	return out
}

// split returns the definition and wordplay spans of n tokens for the
// signed definition length d.
func split(n, d int) (def, wp Span) {
	if d > 0 {
		return Span{0, d}, Span{d, n}
	}
	return Span{n + d, n}, Span{0, n + d}
}

func (sr *search) primary(ctx context.Context, maxDef int) {
	tokens := sr.clue.Tokens()
	n := len(tokens)
	for _, d := range definitionLengths(maxDef) {
		if ctx.Err() != nil {
			return
		}
		if d > n || -d > n {
			continue
		}
		def, wp := split(n, d)
		phrase := utils.JoinTokens(tokens[def.Start:def.End])
		if !sr.snap.Lexicon.Exists(phrase) {
			continue
		}
		sr.definitions = append(sr.definitions, definition{span: def, phrase: phrase})
		if wp.Empty() {
			continue
		}

		wpTokens := tokens[wp.Start:wp.End]
		for _, in := range sr.interpret(wpTokens) {
			if ctx.Err() != nil {
				return
			}
			sr.progress(in.engine.Category().String())
			span := wordplay.Span{Tokens: wpTokens, Keyword: in.keyword}
			for _, cand := range in.engine.Solve(ctx, sr.env, sr.clue, span) {
				sr.add(cand, def, wp, in.keyword, phrase)
			}
		}
	}
}

// add scores an engine candidate against the definition and records it.
func (sr *search) add(cand wordplay.Candidate, def, wp Span, keyword int, phrase string) {
	if !sr.clue.CheckSolution(cand.Answer) {
		return
	}
	conf := sr.snap.Lexicon.Similarity(cand.Answer, phrase) * cand.Confidence
	if conf <= 0 {
		return
	}
	if keyword >= 0 {
		keyword += wp.Start
	}
	sol := Solution{
		Clue:       sr.clue,
		Answer:     cand.Answer,
		Definition: def,
		Wordplay:   wp,
		Keyword:    keyword,
		Category:   cand.Category,
		AppliedTo:  cand.AppliedTo,
		Confidence: conf,
	}
	if !sr.seen.ShouldInclude(sol.key()) {
		return
	}
	sr.solutions = append(sr.solutions, sol)
	sr.found[cand.Answer] = struct{}{}
}

// interpret lists the engines to run over the wordplay tokens: keyword
// engines at every indicator they recognise, then the engines that need no
// indicator. A requested category narrows both.
func (sr *search) interpret(tokens []string) []interpretation {
	want := sr.clue.Category()
	engines := sr.snap.Registry.Engines()
	allowed := func(e wordplay.Engine) bool {
		return want == wordplay.AnyCategory || e.Category() == want
	}

	var out []interpretation
	for pos, tok := range tokens {
		stem := sr.env.Lex.Stem(tok)
		for _, e := range engines {
			if e.UsesKeywords() && allowed(e) && sr.env.Keywords.Has(e.Category(), stem) {
				out = append(out, interpretation{keyword: pos, engine: e})
			}
		}
	}
	for _, e := range engines {
		if !e.UsesKeywords() && allowed(e) {
			out = append(out, interpretation{keyword: -1, engine: e})
		}
	}
	return out
}

// bruteForce appends every word matching the known letters that the
// primary pass did not find, scored against the best definition.
func (sr *search) bruteForce(ctx context.Context) {
	sr.progress(BruteForceStage)
	var extra []Solution
	for _, w := range sr.snap.Lexicon.WordsMatching(sr.clue.Pattern()) {
		if ctx.Err() != nil {
			break
		}
		if _, dup := sr.found[w]; dup {
			continue
		}
		sol := Solution{Clue: sr.clue, Answer: w, Keyword: -1, BruteForced: true}
		for _, d := range sr.definitions {
			if sim := sr.snap.Lexicon.Similarity(w, d.phrase); sim > sol.Confidence {
				sol.Confidence = sim
				sol.Definition = d.span
			}
		}
		extra = append(extra, sol)
	}
	slices.SortStableFunc(extra, byConfidence)
	sr.solutions = append(sr.solutions, extra...)
}
