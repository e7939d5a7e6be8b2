package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bastiangx/cluesolve/internal/fixture"
	"github.com/bastiangx/cluesolve/pkg/config"
	"github.com/bastiangx/cluesolve/pkg/solver"
	"github.com/bastiangx/cluesolve/pkg/wordplay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want solver.Request
	}{
		{
			line: "Guide graphite",
			want: solver.Request{Text: "Guide graphite"},
		},
		{
			line: "Zoroastrian pairs dancing. | len=5 | cat=anagram",
			want: solver.Request{Text: "Zoroastrian pairs dancing.", Length: 5, Category: wordplay.Anagram},
		},
		{
			line: "A pint makes colour. |known=P???? | brute| depth=2 |",
			want: solver.Request{
				Text:         "A pint makes colour.",
				KnownLetters: "p????",
				Options:      solver.Options{BruteForce: true, SynonymDepth: 2},
			},
		},
		{
			line: "Guide graphite | category=double-definition",
			want: solver.Request{Text: "Guide graphite", Category: wordplay.DoubleDefinition},
		},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLineErrors(t *testing.T) {
	for _, line := range []string{
		"| len=5",
		"clue | len=five",
		"clue | len=0",
		"clue | cat=spoonerism",
		"clue | colour=blue",
	} {
		_, err := ParseLine(line)
		assert.Error(t, err, line)
	}
}

func TestInputHandler(t *testing.T) {
	s := solver.New(fixture.Service(), nil, wordplay.DefaultKeywords(), config.DefaultConfig().Solver)
	cfg := config.DefaultConfig().CLI
	cfg.DefaultLimit = 1

	var out bytes.Buffer
	in := strings.NewReader("Zoroastrian pairs dancing. | cat=anagram\n\nnot a clue | len=x\n")
	h := NewInputHandlerWithIO(s, cfg, in, &out)
	require.NoError(t, h.Start(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Found 2 solutions")
	assert.Contains(t, text, "PARSI")
	assert.NotContains(t, text, "Solution: PARIS", "limited to one solution")
}
