package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bastiangx/cluesolve/internal/utils"
	"github.com/bastiangx/cluesolve/pkg/lexicon"
	"github.com/charmbracelet/log"
)

// categorisedLists are the per part-of-speech source files. Nouns also
// contribute their plural inflections.
var categorisedLists = []string{"nouns.txt", "verbs.txt", "adjectives.txt", "adverbs.txt", "stopwords.txt"}

// RebuildWordList merges the categorised and complete source lists into one
// normalized, sorted, de-duplicated word list. Missing directories or files
// are skipped; an empty result is an error.
func RebuildWordList(categorisedDir, completeDir string) ([]string, error) {
	seen := utils.NewSeenFilter()
	var words []string
	add := func(line string) {
		if w := utils.NormalizeEntry(line); w != "" && seen.ShouldInclude(w) {
			words = append(words, w)
		}
	}

	for _, name := range categorisedLists {
		path := filepath.Join(categorisedDir, name)
		if categorisedDir == "" || !utils.FileExists(path) {
			continue
		}
		lines, err := utils.ReadLines(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		for _, line := range lines {
			add(line)
			if name == "nouns.txt" {
				add(lexicon.Pluralize(strings.TrimSpace(line)))
			}
		}
		log.Debugf("merged %d lines from %s", len(lines), path)
	}

	if completeDir != "" && utils.DirExists(completeDir) {
		entries, err := os.ReadDir(completeDir)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", completeDir, err)
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".txt" {
				continue
			}
			path := filepath.Join(completeDir, e.Name())
			lines, err := utils.ReadLines(path)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			for _, line := range lines {
				add(line)
			}
			log.Debugf("merged %d lines from %s", len(lines), path)
		}
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("no words found in %s or %s", categorisedDir, completeDir)
	}
	slices.Sort(words)
	return words, nil
}

// WriteWordList writes words one per line.
func WriteWordList(path string, words []string) error {
	var b strings.Builder
	for _, w := range words {
		b.WriteString(w)
		b.WriteByte('\n')
	}
	return utils.WriteFileAtomic(path, []byte(b.String()))
}
