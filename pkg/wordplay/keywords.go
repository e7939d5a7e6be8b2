package wordplay

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bastiangx/cluesolve/internal/utils"
	"github.com/bastiangx/cluesolve/pkg/lexicon"
	"github.com/charmbracelet/log"
)

//go:embed keywords/*.txt
var keywordFiles embed.FS

// keywordSources names the vocabulary file of each keyword-driven category.
var keywordSources = map[Category]string{
	Anagram: "anagram.txt",
	Run:     "run.txt",
	Initial: "initial.txt",
	Final:   "final.txt",
}

// Keywords holds the stemmed indicator vocabulary of each category.
type Keywords struct {
	sets map[Category]map[string]struct{}
}

// NewKeywords stems and indexes the given vocabularies.
func NewKeywords(vocab map[Category][]string) Keywords {
	k := Keywords{sets: make(map[Category]map[string]struct{}, len(vocab))}
	for cat, words := range vocab {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[lexicon.Stem(w)] = struct{}{}
		}
		k.sets[cat] = set
	}
	return k
}

// DefaultKeywords returns the vocabularies shipped with the binary.
func DefaultKeywords() Keywords {
	k, err := LoadKeywords("")
	if err != nil {
		panic(err)
	}
	return k
}

// LoadKeywords reads the vocabularies. A file with the same name in dir
// replaces the embedded one; an empty dir uses only embedded files.
func LoadKeywords(dir string) (Keywords, error) {
	vocab := make(map[Category][]string, len(keywordSources))
	for cat, name := range keywordSources {
		var (
			r   io.ReadCloser
			err error
		)
		override := filepath.Join(dir, name)
		if dir != "" && utils.FileExists(override) {
			r, err = os.Open(override)
			log.Debugf("keywords for %s loaded from %s", cat, override)
		} else {
			r, err = keywordFiles.Open("keywords/" + name)
		}
		if err != nil {
			return Keywords{}, fmt.Errorf("keywords %s: %w", name, err)
		}
		words, err := readKeywordList(r)
		r.Close()
		if err != nil {
			return Keywords{}, fmt.Errorf("keywords %s: %w", name, err)
		}
		vocab[cat] = words
	}
	return NewKeywords(vocab), nil
}

func readKeywordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, scanner.Err()
}

// Has reports whether stem indicates category c.
func (k Keywords) Has(c Category, stem string) bool {
	_, ok := k.sets[c][stem]
	return ok
}

// Len returns the vocabulary size of c.
func (k Keywords) Len(c Category) int { return len(k.sets[c]) }
