package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/bastiangx/cluesolve/internal/fixture"
	"github.com/bastiangx/cluesolve/pkg/config"
	"github.com/bastiangx/cluesolve/pkg/solver"
	"github.com/bastiangx/cluesolve/pkg/wordplay"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// reply is a superset of every response shape.
type reply struct {
	ID        string         `msgpack:"id"`
	Status    string         `msgpack:"status"`
	Solutions []SolutionItem `msgpack:"solutions"`
	Count     int            `msgpack:"count"`
	Partial   bool           `msgpack:"partial"`
	Error     string         `msgpack:"e"`
	Code      int            `msgpack:"c"`
}

func fixtureBackend() Backend {
	return solver.New(fixture.Service(), nil, wordplay.DefaultKeywords(), config.DefaultConfig().Solver)
}

// serve runs the server over the encoded requests and returns every reply
// after the ready message.
func serve(t *testing.T, backend Backend, requests ...any) ([]reply, error) {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		require.NoError(t, enc.Encode(r))
	}
	srv := NewServerWithIO(backend, config.DefaultConfig().Server, &in, &out)
	serveErr := srv.Start(context.Background())

	dec := msgpack.NewDecoder(&out)
	var ready reply
	require.NoError(t, dec.Decode(&ready))
	require.Equal(t, "ready", ready.Status)

	var replies []reply
	for {
		var r reply
		err := dec.Decode(&r)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		replies = append(replies, r)
	}
	return replies, serveErr
}

func TestSolve(t *testing.T) {
	replies, err := serve(t, fixtureBackend(), Request{
		ID:       "req_001",
		Action:   ActionSolve,
		Clue:     "Zoroastrian pairs dancing.",
		Category: "anagram",
		Limit:    1,
	})
	require.NoError(t, err)
	require.Len(t, replies, 1)

	r := replies[0]
	assert.Equal(t, "req_001", r.ID)
	assert.Zero(t, r.Code)
	assert.False(t, r.Partial)
	require.Equal(t, 1, r.Count)
	require.Len(t, r.Solutions, 1)
	assert.Equal(t, SolutionItem{
		Answer:     "parsi",
		Category:   "anagram",
		Definition: "zoroastrian",
		Wordplay:   "pairs dancing",
		Keyword:    "dancing",
		AppliedTo:  "pairs",
		Confidence: r.Solutions[0].Confidence,
	}, r.Solutions[0])
	assert.InDelta(t, 18.0/19.0, r.Solutions[0].Confidence, 1e-9)
}

func TestSolveWithoutActionOrID(t *testing.T) {
	replies, err := serve(t, fixtureBackend(), map[string]any{"clue": "Guide graphite"})
	require.NoError(t, err)
	require.Len(t, replies, 1)

	_, parseErr := uuid.Parse(replies[0].ID)
	assert.NoError(t, parseErr)
	require.NotEmpty(t, replies[0].Solutions)
	assert.Equal(t, "lead", replies[0].Solutions[0].Answer)
}

func TestValidationErrors(t *testing.T) {
	replies, err := serve(t, fixtureBackend(),
		Request{ID: "a", Action: ActionSolve, Clue: "Zoroastrian pairs dancing. (3,5)"},
		Request{ID: "b", Action: ActionSolve, Clue: "Zoroastrian pairs dancing.", Category: "spoonerism"},
		Request{ID: "c", Action: ActionSolve},
		Request{ID: "d", Action: ActionSolve, Clue: "Zoroastrian pairs dancing.", Brute: true},
		Request{ID: "e", Action: "shout"},
		Request{ID: "f", Action: ActionRebuild, Target: "everything"},
	)
	require.NoError(t, err)
	require.Len(t, replies, 6)
	for i, id := range []string{"a", "b", "c", "d", "e", "f"} {
		assert.Equal(t, id, replies[i].ID)
		assert.Equal(t, 400, replies[i].Code, "request %s", id)
		assert.NotEmpty(t, replies[i].Error)
	}
}

func TestHealthAndRebuild(t *testing.T) {
	replies, err := serve(t, fixtureBackend(),
		Request{ID: "h", Action: ActionHealth},
		Request{ID: "wp", Action: ActionRebuild, Target: TargetWordplay},
		Request{ID: "wl", Action: ActionRebuild, Target: TargetWordList},
	)
	require.NoError(t, err)
	require.Len(t, replies, 3)

	assert.Equal(t, "ok", replies[0].Status)
	assert.Equal(t, "ok", replies[1].Status)
	// the fixture solver has no dictionary files to rebuild from
	assert.Equal(t, 500, replies[2].Code)
	assert.Contains(t, replies[2].Error, solver.ErrNoStore.Error())
}

type slowBackend struct{ Backend }

func (slowBackend) Solve(ctx context.Context, _ solver.Request) ([]solver.Solution, error) {
	<-ctx.Done()
	return []solver.Solution{{Answer: "partial", Keyword: -1, Category: wordplay.Run, Confidence: 0.5}}, nil
}

func TestSolveTimeoutReturnsPartial(t *testing.T) {
	replies, err := serve(t, slowBackend{fixtureBackend()},
		Request{ID: "slow", Action: ActionSolve, Clue: "anything at all", TimeoutMs: 10},
	)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.True(t, replies[0].Partial)
	require.Len(t, replies[0].Solutions, 1)
	assert.Equal(t, "partial", replies[0].Solutions[0].Answer)
	assert.Equal(t, "run", replies[0].Solutions[0].Category)
}

func TestMalformedInput(t *testing.T) {
	var out bytes.Buffer
	srv := NewServerWithIO(fixtureBackend(), config.DefaultConfig().Server, bytes.NewReader([]byte{0xc1}), &out)
	err := srv.Start(context.Background())
	assert.Error(t, err)

	dec := msgpack.NewDecoder(&out)
	var ready, failure reply
	require.NoError(t, dec.Decode(&ready))
	require.NoError(t, dec.Decode(&failure))
	assert.Equal(t, 400, failure.Code)
}
