package clue

import (
	"testing"

	"github.com/bastiangx/cluesolve/pkg/wordplay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenizes(t *testing.T) {
	c, err := New("Punch a Rio Tinto official; find transport. (7)", Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"punch", "a", "rio", "tinto", "official", "find", "transport"}, c.Tokens())
	assert.Equal(t, 7, c.Length())
	assert.Equal(t, "Punch a Rio Tinto official; find transport.", c.Body())
}

func TestTokenizeDropsApostrophes(t *testing.T) {
	assert.Equal(t, []string{"book", "in", "habib", "lews", "handbag"}, Tokenize("Book in Habib Lew's handbag"))
}

func TestNewLengthSources(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		opts    Options
		wantLen int
		wantErr error
	}{
		{name: "annotation", text: "Guide graphite (4)", wantLen: 4},
		{name: "explicit", text: "Guide graphite", opts: Options{Length: 4}, wantLen: 4},
		{name: "agreeing", text: "Guide graphite (4)", opts: Options{Length: 4}, wantLen: 4},
		{name: "known letters", text: "Guide graphite", opts: Options{KnownLetters: "L??D"}, wantLen: 4},
		{name: "none", text: "Guide graphite", wantLen: 0},
		{name: "multi word", text: "Some clue (3,4)", wantErr: ErrUnsupportedClue},
		{name: "hyphenated", text: "Some clue (3-4)", wantErr: ErrUnsupportedClue},
		{name: "negative annotation", text: "Zoroastrian pairs dancing (-4)", wantErr: ErrUnsupportedClue},
		{name: "zero annotation", text: "Zoroastrian pairs dancing (0)", wantErr: ErrUnsupportedClue},
		{name: "annotation mismatch", text: "Guide graphite (4)", opts: Options{Length: 5}, wantErr: ErrLengthMismatch},
		{name: "known mismatch", text: "Guide graphite", opts: Options{Length: 5, KnownLetters: "l??d"}, wantErr: ErrLengthMismatch},
		{name: "bad known", text: "Guide graphite", opts: Options{KnownLetters: "l*d"}, wantErr: ErrUnsupportedClue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.text, tt.opts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, c.Length())
		})
	}
}

func TestCheckSolution(t *testing.T) {
	c, err := New("A pint makes colour.", Options{Length: 5})
	require.NoError(t, err)

	assert.True(t, c.CheckSolution("paint"))
	assert.False(t, c.CheckSolution("pint"), "wrong length")
	assert.False(t, c.CheckSolution("paints"), "wrong length")

	echo, err := New("Paint over the paint", Options{})
	require.NoError(t, err)
	assert.False(t, echo.CheckSolution("paint"), "echoes a clue token")
	assert.False(t, echo.CheckSolution("ab"), "too short")
	assert.True(t, echo.CheckSolution("living_thing"))
}

func TestCheckSolutionKnownLetters(t *testing.T) {
	c, err := New("Zoroastrian pairs dancing.", Options{KnownLetters: "P????", Category: wordplay.Anagram})
	require.NoError(t, err)

	assert.Equal(t, "p????", c.KnownLetters())
	assert.Equal(t, wordplay.Anagram, c.Category())
	assert.True(t, c.CheckSolution("parsi"))
	assert.False(t, c.CheckSolution("paris0"))
	assert.False(t, c.CheckSolution("pairs"), "echoes a clue token")
	assert.False(t, c.CheckSolution("lapse"))

	short, err := New("x", Options{KnownLetters: "a?"})
	require.NoError(t, err)
	assert.True(t, short.CheckSolution("ab"), "known letters override the minimum length")
}
