package lexicon

import (
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleWords = []string{
	"zoroastrian", "parsi", "paris", "pairs", "chariot", "transport",
	"smell", "smelly", "odor", "minute", "minutes", "large", "huge",
	"cat", "cot", "cut", "coat", "Living Thing", "it's", "x-ray", "123",
}

func loadSample(t *testing.T) *SenseGraph {
	t.Helper()
	g, err := LoadWordNet(filepath.Join("testdata", "sample.json"))
	require.NoError(t, err)
	return g
}

func newSampleService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewWordList(sampleWords), loadSample(t), DefaultAbbreviations(), Options{})
}

func TestWordListNormalises(t *testing.T) {
	l := NewWordList(sampleWords)

	assert.True(t, l.Exists("living_thing"))
	assert.True(t, l.Exists("its"))
	assert.True(t, l.Exists("xray"))
	assert.False(t, l.Exists("123"))
	assert.False(t, l.Exists("Living Thing"))
	assert.True(t, isSorted(l.Words()))
}

func isSorted(words []string) bool {
	for i := 1; i < len(words); i++ {
		if words[i-1] >= words[i] {
			return false
		}
	}
	return true
}

func TestWordListWithPrefix(t *testing.T) {
	l := NewWordList(sampleWords)

	var got []string
	l.WithPrefix("c", func(w string) bool {
		got = append(got, w)
		return true
	})
	assert.ElementsMatch(t, []string{"cat", "chariot", "coat", "cot", "cut"}, got)

	count := 0
	l.WithPrefix("c", func(string) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count, "scan stops when fn returns false")
}

func TestWordsMatchingPattern(t *testing.T) {
	l := NewWordList(sampleWords)
	re := regexp.MustCompile(`^c[a-z]t$`)
	assert.Equal(t, []string{"cat", "cot", "cut"}, l.Matching(re))
}

func TestParseWordNet(t *testing.T) {
	g := loadSample(t)

	assert.True(t, g.HasLemma("physical_entity"))
	assert.True(t, g.HasLemma("parsee"))
	assert.NotEmpty(t, g.Senses("got"), "irregular form resolves to its lemma")
	assert.NotEmpty(t, g.Senses("cities"), "morphy strips ies")
	assert.Empty(t, g.Senses("nonsense"))
}

func TestParseWordNetRejectsGarbage(t *testing.T) {
	_, err := ParseWordNet(strings.NewReader("not json at all"))
	assert.Error(t, err)

	g, err := ParseWordNet(strings.NewReader(`{"@graph":[]}`))
	require.NoError(t, err)
	assert.Zero(t, g.Len())
}

func TestSimilarity(t *testing.T) {
	s := newSampleService(t)

	tests := []struct {
		a, b string
		want float64
	}{
		{"parsi", "zoroastrian", 18.0 / 19.0},
		{"paris", "zoroastrian", 6.0 / 15.0},
		{"chariot", "transport", 14.0 / 17.0},
		{"got", "purchased", 2.0 / 3.0},
		{"run", "get", 0.5},
		{"smelly", "odor", 1},
		{"run", "chariot", 0},
		{"large", "huge", 0},
		{"nonsense", "chariot", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.Similarity(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, s.Similarity(tt.b, tt.a), 1e-9)
		})
	}
}

func TestRelatednessIsSymmetric(t *testing.T) {
	g := loadSample(t)
	words := []string{"parsi", "paris", "chariot", "minute", "transport", "person"}
	for _, a := range words {
		for _, b := range words {
			assert.Equal(t, g.Relatedness(g.Senses(a), g.Senses(b)), g.Relatedness(g.Senses(b), g.Senses(a)), "%s/%s", a, b)
		}
	}
}

func TestSynonyms(t *testing.T) {
	s := newSampleService(t)

	assert.Equal(t, []string{"big", "huge", "immense", "large"}, s.Synonyms("large", 0))
	assert.Equal(t, []string{"chariot", "wheeled_vehicle"}, s.Synonyms("chariot", 1))
	assert.Equal(t, []string{"chariots", "wheeled_vehicles"}, s.Synonyms("chariots", 1))
	assert.Contains(t, s.Synonyms("believer", 1), "zoroastrian")
	assert.NotContains(t, s.Synonyms("believer", 1), "parsee")
	assert.Contains(t, s.Synonyms("believer", 2), "parsee")
	assert.Empty(t, s.Synonyms("nonsense", 2))

	before := s.Stats()["synonyms"].Hits
	s.Synonyms("large", 0)
	assert.Equal(t, before+1, s.Stats()["synonyms"].Hits, "second lookup served from cache")
}

func TestPlurality(t *testing.T) {
	s := newSampleService(t)

	assert.True(t, s.IsPlural("minutes"))
	assert.False(t, s.IsPlural("minute"))
	assert.False(t, s.IsPlural("sweat"))
	assert.True(t, s.IsPlural("lasts"))
	assert.Equal(t, "men", Pluralize("man"))
}

func TestLiteralStem(t *testing.T) {
	s := newSampleService(t)

	stem, ok := s.LiteralStem("smelly")
	assert.True(t, ok)
	assert.Equal(t, "smell", stem)

	_, ok = s.LiteralStem("smell")
	assert.False(t, ok)
}

func TestStem(t *testing.T) {
	assert.Equal(t, Stem("dance"), Stem("dancing"))
	assert.Equal(t, Stem("initially"), Stem("Initially"))
}

func TestAbbreviations(t *testing.T) {
	abbrs, err := ParseAbbreviations(strings.NewReader("n: north\ns: south *\nnw: north west +\nbroken line\n# comment\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"n"}, abbrs.Of("north"))
	assert.Equal(t, []string{"s"}, abbrs.Of("south"))
	assert.Equal(t, []string{"nw"}, abbrs.Of("north_west"))
	assert.Nil(t, abbrs.Of("east"))

	def := DefaultAbbreviations()
	assert.Contains(t, def.Of("north"), "n")
	assert.Contains(t, def.Of("hundred"), "c")
}

func TestFlushCacheFlushesAtLimit(t *testing.T) {
	c := newFlushCache[int]("test", 2)
	calls := 0
	compute := func() int { calls++; return calls }

	assert.Equal(t, 1, c.get("a", compute))
	assert.Equal(t, 1, c.get("a", compute))
	c.get("b", compute)
	c.get("c", compute)

	assert.Equal(t, 1, c.len(), "third distinct key flushed the cache")
	assert.EqualValues(t, 1, c.stats().Flushes)
}

func TestServiceConcurrentLookupsAcrossFlushes(t *testing.T) {
	s := NewService(NewWordList(sampleWords), loadSample(t), nil, Options{SimCacheLimit: 2, SynCacheLimit: 2})
	pairs := [][2]string{
		{"parsi", "zoroastrian"}, {"smell", "odor"}, {"large", "huge"},
		{"minute", "minutes"}, {"cat", "coat"},
	}
	sims := make([]float64, len(pairs))
	for i, p := range pairs {
		sims[i] = s.Similarity(p[0], p[1])
	}
	synWords := []string{"smell", "large", "parsi"}
	syns := make([][]string, len(synWords))
	for i, w := range synWords {
		syns[i] = append([]string(nil), s.Synonyms(w, 1)...)
	}

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				i := (g + j) % len(pairs)
				assert.InDelta(t, sims[i], s.Similarity(pairs[i][1], pairs[i][0]), 1e-12)
				k := (g + j) % len(synWords)
				assert.ElementsMatch(t, syns[k], s.Synonyms(synWords[k], 1))
			}
		}(g)
	}
	wg.Wait()

	stats := s.Stats()
	assert.Positive(t, stats["similarity"].Flushes)
	assert.Positive(t, stats["synonyms"].Flushes)
	assert.LessOrEqual(t, stats["similarity"].Entries, 2)
	assert.LessOrEqual(t, stats["synonyms"].Entries, 2)
}
