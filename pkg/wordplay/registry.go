package wordplay

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Registry is the fixed table of engines, one per category.
type Registry struct {
	Anagram *AnagramEngine
	Run     *RunEngine

	engines map[Category]Engine
}

// NewRegistry builds every engine, compiling the dictionaries of the
// anagram and run engines from words.
func NewRegistry(words []string) *Registry {
	return newRegistry(NewAnagramEngine(words), NewRunEngine(words))
}

// NewRegistryFrom uses prebuilt dictionaries, e.g. loaded from artifacts.
func NewRegistryFrom(idx AnagramIndex, runs *RunDictionary) *Registry {
	anagram, run := &AnagramEngine{}, &RunEngine{}
	anagram.Load(idx)
	run.Load(runs)
	return newRegistry(anagram, run)
}

func newRegistry(anagram *AnagramEngine, run *RunEngine) *Registry {
	r := &Registry{Anagram: anagram, Run: run}
	r.engines = map[Category]Engine{
		Anagram:          anagram,
		Run:              run,
		DoubleDefinition: DoubleDefinitionEngine{},
		Charade:          CharadeEngine{},
		Initial:          NewInitialEngine(),
		Final:            NewFinalEngine(),
	}
	return r
}

// Engine returns the engine of c.
func (r *Registry) Engine(c Category) (Engine, bool) {
	e, ok := r.engines[c]
	return e, ok
}

// Engines returns all engines in dispatch order.
func (r *Registry) Engines() []Engine {
	out := make([]Engine, 0, len(r.engines))
	for _, c := range Categories() {
		out = append(out, r.engines[c])
	}
	return out
}

// Rebuild recompiles every engine dictionary from words in parallel.
// In-flight solves keep the dictionaries they started with.
func (r *Registry) Rebuild(ctx context.Context, words []string) error {
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for _, e := range r.Engines() {
		rb, ok := e.(Rebuilder)
		if !ok {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rb.Rebuild(words)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Infof("wordplay dictionaries rebuilt from %d words in %s", len(words), time.Since(start))
	return nil
}
