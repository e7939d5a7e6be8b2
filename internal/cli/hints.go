package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bastiangx/cluesolve/pkg/solver"
	"github.com/bastiangx/cluesolve/pkg/wordplay"
)

// hintSeparator splits the clue from inline hints.
const hintSeparator = "|"

// ParseLine reads a clue followed by optional hints:
//
//	Zoroastrian pairs dancing. | len=5 | cat=anagram | known=p???? | brute | depth=2
func ParseLine(line string) (solver.Request, error) {
	parts := strings.Split(line, hintSeparator)
	req := solver.Request{Text: strings.TrimSpace(parts[0])}
	if req.Text == "" {
		return req, fmt.Errorf("missing clue")
	}
	for _, hint := range parts[1:] {
		hint = strings.TrimSpace(hint)
		if hint == "" {
			continue
		}
		key, value, _ := strings.Cut(hint, "=")
		key, value = strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value)
		var err error
		switch key {
		case "len", "length":
			req.Length, err = positive(key, value)
		case "cat", "category":
			req.Category, err = wordplay.ParseCategory(value)
		case "known":
			req.KnownLetters = strings.ToLower(value)
		case "brute":
			req.BruteForce = true
		case "depth":
			req.SynonymDepth, err = positive(key, value)
		default:
			err = fmt.Errorf("unknown hint %q", key)
		}
		if err != nil {
			return req, err
		}
	}
	return req, nil
}

func positive(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", key, value)
	}
	return n, nil
}
