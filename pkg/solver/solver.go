// Package solver ties the clue model, the lexical service and the wordplay
// engines together. A Solver holds an immutable snapshot of every loaded
// dictionary; reloads build a new snapshot and swap it in, so solves in
// flight finish against the dictionaries they started with.
package solver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bastiangx/cluesolve/internal/logger"
	"github.com/bastiangx/cluesolve/pkg/config"
	"github.com/bastiangx/cluesolve/pkg/dictionary"
	"github.com/bastiangx/cluesolve/pkg/lexicon"
	"github.com/bastiangx/cluesolve/pkg/wordplay"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// ErrNoStore is returned by operations that need dictionary files when the
// solver was built from in-memory parts.
var ErrNoStore = errors.New("solver has no dictionary store")

// Snapshot is one consistent set of dictionaries.
type Snapshot struct {
	Lexicon  *lexicon.Service
	Registry *wordplay.Registry
	Keywords wordplay.Keywords
	Loaded   time.Time
}

// Stats summarises a snapshot.
type Stats struct {
	Words       int                           `msgpack:"words"`
	Synsets     int                           `msgpack:"synsets"`
	AnagramKeys int                           `msgpack:"anagram_keys"`
	RunWords    int                           `msgpack:"run_words"`
	LoadedAt    time.Time                     `msgpack:"loaded_at"`
	Caches      map[string]lexicon.CacheStats `msgpack:"caches"`
}

// Solver answers clues. It is safe for concurrent use.
type Solver struct {
	cfg   config.SolverConfig
	store *dictionary.Store
	snap  atomic.Pointer[Snapshot]

	// mu serialises reloads and rebuilds; solves never take it.
	mu  sync.Mutex
	log *log.Logger
}

// New builds a solver from in-memory parts. A nil registry is compiled
// from the word list of lex.
func New(lex *lexicon.Service, reg *wordplay.Registry, kw wordplay.Keywords, cfg config.SolverConfig) *Solver {
	if reg == nil {
		reg = wordplay.NewRegistry(lex.WordList().Words())
	}
	s := newSolver(cfg, nil)
	s.snap.Store(&Snapshot{Lexicon: lex, Registry: reg, Keywords: kw, Loaded: time.Now()})
	return s
}

// Load builds a solver from the dictionary files of store.
func Load(ctx context.Context, store *dictionary.Store, cfg config.SolverConfig) (*Solver, error) {
	s := newSolver(cfg, store)
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func newSolver(cfg config.SolverConfig, store *dictionary.Store) *Solver {
	return &Solver{
		cfg:   cfg,
		store: store,
		log:   logger.NewWithConfig("solver", log.GetLevel(), false, true, log.TextFormatter),
	}
}

// Snapshot returns the dictionaries currently in use.
func (s *Solver) Snapshot() *Snapshot { return s.snap.Load() }

// Config returns the solver options.
func (s *Solver) Config() config.SolverConfig { return s.cfg }

// Reload rereads every dictionary from the store.
func (s *Solver) Reload(ctx context.Context) error {
	if s.store == nil {
		return ErrNoStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	words, err := s.store.WordList()
	if err != nil {
		return err
	}
	return s.load(ctx, words)
}

// RebuildLexicon regenerates the word list from its source lists, then
// recompiles every dictionary derived from it.
func (s *Solver) RebuildLexicon(ctx context.Context) error {
	if s.store == nil {
		return ErrNoStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	words, err := s.store.RebuildWordList()
	if err != nil {
		return err
	}
	return s.load(ctx, words)
}

// load builds a snapshot around words and swaps it in. Callers hold mu.
func (s *Solver) load(ctx context.Context, words *lexicon.WordList) error {
	start := time.Now()
	var (
		senses *lexicon.SenseGraph
		abbrs  lexicon.Abbreviations
		kw     wordplay.Keywords
		idx    wordplay.AnagramIndex
		runs   *wordplay.RunDictionary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		senses, err = s.store.SenseGraph()
		return err
	})
	g.Go(func() (err error) {
		abbrs, err = s.store.Abbreviations()
		return err
	})
	g.Go(func() (err error) {
		kw, err = s.store.Keywords()
		return err
	})
	g.Go(func() (err error) {
		idx, runs, err = s.store.WordplayDictionaries(gctx, words.Words())
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load dictionaries: %w", err)
	}

	lex := lexicon.NewService(words, senses, abbrs, lexicon.Options{
		SimCacheLimit: s.cfg.SimCacheLimit,
		SynCacheLimit: s.cfg.SynCacheLimit,
	})
	s.snap.Store(&Snapshot{
		Lexicon:  lex,
		Registry: wordplay.NewRegistryFrom(idx, runs),
		Keywords: kw,
		Loaded:   time.Now(),
	})
	s.log.Info("dictionaries loaded", "words", words.Len(), "senses", senses.Len(), "took", time.Since(start))
	return nil
}

// RebuildWordplayDictionaries recompiles the anagram and run dictionaries
// from the current word list and persists them when a store is attached.
func (s *Solver) RebuildWordplayDictionaries(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snap.Load()
	words := snap.Lexicon.WordList().Words()
	if err := snap.Registry.Rebuild(ctx, words); err != nil {
		return err
	}
	if s.store == nil {
		return nil
	}
	return s.store.SaveWordplay(ctx, snap.Registry.Anagram.Index(), snap.Registry.Run.Dictionary(), words)
}

// Stats describes the current snapshot.
func (s *Solver) Stats() Stats {
	snap := s.snap.Load()
	return Stats{
		Words:       snap.Lexicon.WordList().Len(),
		Synsets:     snap.Lexicon.SenseGraph().Len(),
		AnagramKeys: len(snap.Registry.Anagram.Index()),
		RunWords:    snap.Registry.Run.Dictionary().Len(),
		LoadedAt:    snap.Loaded,
		Caches:      snap.Lexicon.Stats(),
	}
}
