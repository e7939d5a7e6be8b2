package solver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bastiangx/cluesolve/internal/fixture"
	"github.com/bastiangx/cluesolve/pkg/clue"
	"github.com/bastiangx/cluesolve/pkg/config"
	"github.com/bastiangx/cluesolve/pkg/dictionary"
	"github.com/bastiangx/cluesolve/pkg/solver"
	"github.com/bastiangx/cluesolve/pkg/wordplay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixtureSolver(t *testing.T) *solver.Solver {
	t.Helper()
	return solver.New(fixture.Service(), nil, wordplay.DefaultKeywords(), config.DefaultConfig().Solver)
}

func TestSolveAnagram(t *testing.T) {
	s := newFixtureSolver(t)
	sols, err := s.Solve(context.Background(), solver.Request{
		Text:     "Zoroastrian pairs dancing.",
		Category: wordplay.Anagram,
	})
	require.NoError(t, err)
	require.NotEmpty(t, sols)

	best := sols[0]
	assert.Equal(t, "parsi", best.Answer)
	assert.Equal(t, wordplay.Anagram, best.Category)
	assert.InDelta(t, 18.0/19.0, best.Confidence, 1e-9)
	assert.Equal(t, "zoroastrian", best.DefinitionText())
	assert.Equal(t, "pairs dancing", best.WordplayText())
	assert.Equal(t, "dancing", best.KeywordText())
	assert.Equal(t, []string{"pairs"}, best.AppliedTo)

	var paris *solver.Solution
	for i := range sols {
		assert.Equal(t, wordplay.Anagram, sols[i].Category)
		if sols[i].Answer == "paris" {
			paris = &sols[i]
		}
	}
	require.NotNil(t, paris)
	assert.InDelta(t, 0.4, paris.Confidence, 1e-9)
}

func TestSolveRun(t *testing.T) {
	s := newFixtureSolver(t)
	sols, err := s.Solve(context.Background(), solver.Request{
		Text: "Punch a Rio Tinto official; find transport. (7)",
	})
	require.NoError(t, err)
	require.NotEmpty(t, sols)

	best := sols[0]
	assert.Equal(t, "chariot", best.Answer)
	assert.Equal(t, wordplay.Run, best.Category)
	assert.InDelta(t, 14.0/17.0, best.Confidence, 1e-9)
	assert.Equal(t, "transport", best.DefinitionText())
	assert.Equal(t, "find", best.KeywordText())
	assert.Equal(t, []string{"punch", "a", "rio", "tinto"}, best.AppliedTo)
}

func TestSolveAnagramWithLength(t *testing.T) {
	s := newFixtureSolver(t)
	sols, err := s.Solve(context.Background(), solver.Request{
		Text:   "A pint makes colour.",
		Length: 5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, sols)
	assert.Equal(t, "paint", sols[0].Answer)
	assert.Equal(t, wordplay.Anagram, sols[0].Category)
	assert.InDelta(t, 12.0/13.0, sols[0].Confidence, 1e-9)
	for _, sol := range sols {
		assert.Len(t, sol.Answer, 5)
	}
}

func TestSolveDoubleDefinition(t *testing.T) {
	s := newFixtureSolver(t)
	sols, err := s.Solve(context.Background(), solver.Request{Text: "Guide graphite"})
	require.NoError(t, err)
	require.NotEmpty(t, sols)

	best := sols[0]
	assert.Equal(t, "lead", best.Answer)
	assert.Equal(t, wordplay.DoubleDefinition, best.Category)
	assert.InDelta(t, 14.0/15.0, best.Confidence, 1e-9)
	assert.Equal(t, -1, best.Keyword)
}

func TestSolveInitials(t *testing.T) {
	s := newFixtureSolver(t)
	sols, err := s.Solve(context.Background(), solver.Request{
		Text: "Purchased Game of Thrones, initially. (3)",
	})
	require.NoError(t, err)
	require.NotEmpty(t, sols)

	best := sols[0]
	assert.Equal(t, "got", best.Answer)
	assert.Equal(t, wordplay.Initial, best.Category)
	assert.Positive(t, best.Confidence)
	assert.Equal(t, "purchased", best.DefinitionText())
	assert.Equal(t, "initially", best.KeywordText())
}

func TestSolveOrdering(t *testing.T) {
	s := newFixtureSolver(t)
	sols, err := s.Solve(context.Background(), solver.Request{Text: "A pint makes colour."})
	require.NoError(t, err)
	for i := 1; i < len(sols); i++ {
		assert.GreaterOrEqual(t, sols[i-1].Confidence, sols[i].Confidence)
	}
}

func TestBruteForce(t *testing.T) {
	s := newFixtureSolver(t)
	sols, err := s.Solve(context.Background(), solver.Request{
		Text:         "Zoroastrian pairs dancing.",
		KnownLetters: "p????",
		Options:      solver.Options{BruteForce: true},
	})
	require.NoError(t, err)
	require.NotEmpty(t, sols)
	assert.Equal(t, "parsi", sols[0].Answer)
	assert.False(t, sols[0].BruteForced)

	index := map[string]int{}
	for i, sol := range sols {
		if sol.BruteForced {
			index[sol.Answer] = i
			assert.Equal(t, solver.BruteForced, sol.CategoryName())
			assert.Equal(t, -1, sol.Keyword)
		}
	}
	require.Contains(t, index, "paint")
	require.Contains(t, index, "pairs")
	assert.NotContains(t, index, "parsi", "primary answers are not repeated")
	assert.Less(t, index["paint"], index["pairs"])

	paint, pairs := sols[index["paint"]], sols[index["pairs"]]
	assert.Positive(t, paint.Confidence)
	assert.Equal(t, "zoroastrian", paint.DefinitionText())
	assert.Zero(t, pairs.Confidence)
	assert.True(t, pairs.Definition.Empty())
	assert.Contains(t, pairs.Describe(), "Definition part: ---")
}

func TestBruteForceRequiresKnownLetters(t *testing.T) {
	s := newFixtureSolver(t)
	progressed := false
	_, err := s.Solve(context.Background(), solver.Request{
		Text: "Zoroastrian pairs dancing.",
		Options: solver.Options{
			BruteForce: true,
			Progress:   func(string) { progressed = true },
		},
	})
	assert.ErrorIs(t, err, solver.ErrBruteForceRequiresKnownLetters)
	assert.False(t, progressed, "validation happens before any search")
}

func TestValidationErrors(t *testing.T) {
	s := newFixtureSolver(t)
	_, err := s.Solve(context.Background(), solver.Request{Text: "Zoroastrian pairs dancing. (3,2)"})
	assert.ErrorIs(t, err, clue.ErrUnsupportedClue)

	_, err = s.Solve(context.Background(), solver.Request{Text: "Zoroastrian pairs dancing. (5)", Length: 6})
	assert.ErrorIs(t, err, clue.ErrLengthMismatch)
}

func TestCancelledSolve(t *testing.T) {
	s := newFixtureSolver(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sols, err := s.Solve(ctx, solver.Request{Text: "Zoroastrian pairs dancing."})
	require.NoError(t, err)
	assert.Empty(t, sols)
}

func TestCancelDuringSolveKeepsPartialResults(t *testing.T) {
	s := newFixtureSolver(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sols, err := s.Solve(ctx, solver.Request{
		Text:         "Zoroastrian pairs dancing.",
		KnownLetters: "p????",
		Options: solver.Options{
			BruteForce: true,
			Progress: func(stage string) {
				if stage == solver.BruteForceStage {
					cancel()
				}
			},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, sols)
	assert.Equal(t, "parsi", sols[0].Answer)
	for _, sol := range sols {
		assert.False(t, sol.BruteForced)
	}
}

func TestProgress(t *testing.T) {
	s := newFixtureSolver(t)
	var stages []string
	_, err := s.Solve(context.Background(), solver.Request{
		Text:    "Zoroastrian pairs dancing.",
		Options: solver.Options{Progress: func(stage string) { stages = append(stages, stage) }},
	})
	require.NoError(t, err)
	assert.Contains(t, stages, "anagram")
	assert.Contains(t, stages, "charade")
	assert.NotContains(t, stages, solver.BruteForceStage)
}

func TestMaxResults(t *testing.T) {
	cfg := config.DefaultConfig().Solver
	cfg.MaxResults = 1
	s := solver.New(fixture.Service(), nil, wordplay.DefaultKeywords(), cfg)
	sols, err := s.Solve(context.Background(), solver.Request{Text: "Zoroastrian pairs dancing."})
	require.NoError(t, err)
	require.Len(t, sols, 1)
	assert.Equal(t, "parsi", sols[0].Answer)
}

func TestDescribe(t *testing.T) {
	s := newFixtureSolver(t)
	sols, err := s.Solve(context.Background(), solver.Request{Text: "Zoroastrian pairs dancing."})
	require.NoError(t, err)
	require.NotEmpty(t, sols)

	text := sols[0].Describe()
	assert.Contains(t, text, "Definition part: ZOROASTRIAN")
	assert.Contains(t, text, "Wordplay part: PAIRS DANCING")
	assert.Contains(t, text, "Keyword: DANCING <anagram> applied to: PAIRS")
	assert.Contains(t, text, "Solution: PARSI")
	assert.True(t, strings.HasPrefix(sols[0].String(), "parsi <anagram>"))
}

func TestRebuildWordplayDictionariesWithoutStore(t *testing.T) {
	s := newFixtureSolver(t)
	before := s.Snapshot().Registry.Anagram.Index()
	require.NoError(t, s.RebuildWordplayDictionaries(context.Background()))
	assert.Equal(t, before, s.Snapshot().Registry.Anagram.Index())

	assert.True(t, errors.Is(s.Reload(context.Background()), solver.ErrNoStore))
	assert.ErrorIs(t, s.RebuildLexicon(context.Background()), solver.ErrNoStore)
}

func TestLoadFromStore(t *testing.T) {
	dir := t.TempDir()
	var b strings.Builder
	for _, w := range fixture.Words() {
		b.WriteString(w + "\n")
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wordlist.txt"), []byte(b.String()), 0644))

	cfg := config.DefaultConfig()
	cfg.Dict.DataDir = dir
	store := dictionary.NewStore(cfg.Dict)

	s, err := solver.Load(context.Background(), store, cfg.Solver)
	require.NoError(t, err)
	stats := s.Stats()
	assert.Equal(t, len(fixture.Words()), stats.Words)
	assert.Zero(t, stats.Synsets)
	assert.Positive(t, stats.AnagramKeys)
	assert.FileExists(t, filepath.Join(store.CacheDir(), "anagram.mpk"))

	// without senses every similarity is 0, so nothing scores
	sols, err := s.Solve(context.Background(), solver.Request{Text: "Zoroastrian pairs dancing."})
	require.NoError(t, err)
	assert.Empty(t, sols)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "complete"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "complete", "extra.txt"), []byte("parsi\nparis\ncat\n"), 0644))
	require.NoError(t, s.RebuildLexicon(context.Background()))
	assert.Equal(t, 3, s.Stats().Words)
	assert.NoError(t, s.RebuildWordplayDictionaries(context.Background()))
}

func TestSolveDuringWordplayRebuild(t *testing.T) {
	s := newFixtureSolver(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				sols, err := s.Solve(ctx, solver.Request{
					Text:     "Zoroastrian pairs dancing.",
					Category: wordplay.Anagram,
				})
				assert.NoError(t, err)
				if assert.NotEmpty(t, sols) {
					assert.Equal(t, "parsi", sols[0].Answer)
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 5; j++ {
			assert.NoError(t, s.RebuildWordplayDictionaries(ctx))
			_ = s.Stats()
		}
	}()
	wg.Wait()

	assert.Equal(t, len(fixture.Words()), s.Stats().Words)
}

func TestSolveDuringReload(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wordlist.txt"),
		[]byte(strings.Join(fixture.Words(), "\n")+"\n"), 0644))
	cfg := config.DefaultConfig()
	cfg.Dict.DataDir = dir

	s, err := solver.Load(context.Background(), dictionary.NewStore(cfg.Dict), cfg.Solver)
	require.NoError(t, err)
	first := s.Snapshot()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				_, err := s.Solve(context.Background(), solver.Request{Text: "Punch a Rio Tinto official; find transport. (7)"})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 3; j++ {
			assert.NoError(t, s.Reload(context.Background()))
		}
	}()
	wg.Wait()

	assert.NotSame(t, first, s.Snapshot())
	assert.Equal(t, len(fixture.Words()), s.Stats().Words)
}
