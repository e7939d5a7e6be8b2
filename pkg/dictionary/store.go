// Package dictionary owns the on-disk side of the solver: source word
// lists, the WordNet sense file and the msgpack artifacts compiled from them.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/bastiangx/cluesolve/internal/utils"
	"github.com/bastiangx/cluesolve/pkg/config"
	"github.com/bastiangx/cluesolve/pkg/lexicon"
	"github.com/bastiangx/cluesolve/pkg/wordplay"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

const (
	anagramArtifact = "anagram.mpk"
	runArtifact     = "runs.mpk"
	sensesArtifact  = "senses.mpk"
)

// Store resolves and loads every dictionary file named by a [dict] config.
type Store struct {
	cfg config.DictConfig
}

// NewStore creates a store over cfg. Nothing is read until asked for.
func NewStore(cfg config.DictConfig) *Store {
	return &Store{cfg: cfg}
}

// WordListPath returns the resolved word list file.
func (s *Store) WordListPath() string { return s.cfg.Resolve(s.cfg.WordListFile) }

// SensesPath returns the resolved WordNet JSON file.
func (s *Store) SensesPath() string { return s.cfg.Resolve(s.cfg.SensesFile) }

// CacheDir returns the directory holding compiled artifacts.
func (s *Store) CacheDir() string { return s.cfg.Resolve(s.cfg.CacheDir) }

func (s *Store) artifactPath(name string) string {
	return filepath.Join(s.CacheDir(), name)
}

// WordList loads the word list, rebuilding it from the source lists when
// the file does not exist yet.
func (s *Store) WordList() (*lexicon.WordList, error) {
	path := s.WordListPath()
	if !utils.FileExists(path) {
		log.Infof("word list %s not found, rebuilding from source lists", path)
		return s.RebuildWordList()
	}
	if err := ValidateFileFormat(path, FormatWordList); err != nil {
		return nil, err
	}
	lines, err := utils.ReadLines(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	words := lexicon.NewWordList(lines)
	log.Debugf("loaded %d words from %s", words.Len(), path)
	return words, nil
}

// RebuildWordList regenerates the word list file from the categorised and
// complete source directories.
func (s *Store) RebuildWordList() (*lexicon.WordList, error) {
	start := time.Now()
	words, err := RebuildWordList(s.cfg.Resolve(s.cfg.CategorisedDir), s.cfg.Resolve(s.cfg.CompleteDir))
	if err != nil {
		return nil, err
	}
	path := s.WordListPath()
	if err := WriteWordList(path, words); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	log.Infof("rebuilt word list %s with %d words in %v", path, len(words), time.Since(start))
	return lexicon.NewWordList(words), nil
}

// SenseGraph loads the compiled sense graph, parsing the WordNet JSON and
// caching the result when the artifact is missing or stale. Without a
// WordNet file every relatedness score is 0.
func (s *Store) SenseGraph() (*lexicon.SenseGraph, error) {
	src := s.SensesPath()
	if !utils.FileExists(src) {
		log.Warnf("sense file %s not found, similarity scores will be 0", src)
		return lexicon.EmptySenseGraph(), nil
	}
	fp, err := FileFingerprint(src)
	if err != nil {
		return nil, err
	}

	cached := s.artifactPath(sensesArtifact)
	var g lexicon.SenseGraph
	if _, err := ReadArtifact(cached, KindSenseGraph, fp, &g); err == nil {
		g.Finalize()
		log.Debugf("loaded %s from %s", g.String(), cached)
		return &g, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("discarding sense cache: %v", err)
	}

	if err := ValidateFileFormat(src, FormatWordNet); err != nil {
		return nil, err
	}
	start := time.Now()
	graph, err := lexicon.LoadWordNet(src)
	if err != nil {
		return nil, err
	}
	log.Infof("parsed %s from %s in %v", graph.String(), src, time.Since(start))
	if err := WriteArtifact(cached, KindSenseGraph, fp, graph.Len(), graph); err != nil {
		log.Warnf("could not cache sense graph: %v", err)
	}
	return graph, nil
}

// Abbreviations loads the configured table, or the embedded default when
// no file is present.
func (s *Store) Abbreviations() (lexicon.Abbreviations, error) {
	path := s.cfg.Resolve(s.cfg.AbbreviationsFile)
	if path == "" || !utils.FileExists(path) {
		return lexicon.DefaultAbbreviations(), nil
	}
	abbrs, err := lexicon.LoadAbbreviations(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return abbrs, nil
}

// Keywords loads indicator vocabularies, letting files in the keywords
// directory replace the embedded ones.
func (s *Store) Keywords() (wordplay.Keywords, error) {
	dir := s.cfg.Resolve(s.cfg.KeywordsDir)
	if !utils.DirExists(dir) {
		dir = ""
	}
	return wordplay.LoadKeywords(dir)
}

// WordplayDictionaries returns the anagram index and run dictionary for
// words. Artifacts compiled from the same word list are reused; anything
// missing, invalid or stale is rebuilt and persisted again.
func (s *Store) WordplayDictionaries(ctx context.Context, words []string) (wordplay.AnagramIndex, *wordplay.RunDictionary, error) {
	fp := Fingerprint(words)

	var idx wordplay.AnagramIndex
	if _, err := ReadArtifact(s.artifactPath(anagramArtifact), KindAnagramIndex, fp, &idx); err != nil {
		s.logArtifactMiss(anagramArtifact, err)
		idx = nil
	}
	var runWords []string
	var runs *wordplay.RunDictionary
	if _, err := ReadArtifact(s.artifactPath(runArtifact), KindRunWords, fp, &runWords); err != nil {
		s.logArtifactMiss(runArtifact, err)
	} else {
		runs = wordplay.BuildRunDictionary(runWords)
	}
	if idx != nil && runs != nil {
		log.Debugf("loaded wordplay dictionaries from %s", s.CacheDir())
		return idx, runs, nil
	}

	if idx == nil {
		idx = wordplay.BuildAnagramIndex(words)
	}
	if runs == nil {
		runs = wordplay.BuildRunDictionary(words)
	}
	if err := s.SaveWordplay(ctx, idx, runs, words); err != nil {
		log.Warnf("could not persist wordplay dictionaries: %v", err)
	}
	return idx, runs, nil
}

func (s *Store) logArtifactMiss(name string, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		log.Infof("artifact %s missing, rebuilding", name)
		return
	}
	log.Warnf("artifact %s unusable, rebuilding: %v", name, err)
}

// SaveWordplay persists both wordplay dictionaries in parallel, tagged with
// the fingerprint of the word list they were built from.
func (s *Store) SaveWordplay(ctx context.Context, idx wordplay.AnagramIndex, runs *wordplay.RunDictionary, words []string) error {
	fp := Fingerprint(words)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return WriteArtifact(s.artifactPath(anagramArtifact), KindAnagramIndex, fp, len(idx), idx)
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return WriteArtifact(s.artifactPath(runArtifact), KindRunWords, fp, runs.Len(), runs.Words())
	})
	return g.Wait()
}
