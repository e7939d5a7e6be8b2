// Package fixture builds a small lexicon for tests that need a realistic
// word list and sense graph without the WordNet files.
package fixture

import "github.com/bastiangx/cluesolve/pkg/lexicon"

var words = []string{
	"zoroastrian", "parsi", "paris", "pairs", "chariot", "transport",
	"tin", "into", "tint", "paint", "pint", "colour", "color",
	"guide", "graphite", "lead", "plumbago", "carbon", "black_lead",
	"purchased", "got", "get", "buy", "purchase",
}

// Words returns the fixture word list.
func Words() []string {
	return append([]string(nil), words...)
}

// SenseGraph returns the fixture sense graph.
func SenseGraph() *lexicon.SenseGraph {
	b := lexicon.NewGraphBuilder()
	noun := func(id, parent string, lemmas ...string) {
		b.AddSynset(id, lexicon.Noun, lemmas...)
		if parent != "" {
			b.Relate(id, lexicon.Hypernym, parent)
		}
	}

	noun("entity", "", "entity")
	noun("physical_entity", "entity", "physical_entity")
	noun("abstraction", "entity", "abstraction")

	noun("object", "physical_entity", "object")
	noun("whole", "object", "whole")
	noun("living_thing", "whole", "living_thing")
	noun("organism", "living_thing", "organism", "being")
	noun("person", "organism", "person", "individual")
	noun("believer", "person", "believer")
	noun("zoroastrian", "believer", "zoroastrian")
	noun("parsi", "zoroastrian", "parsi", "parsee")
	noun("location", "object", "location")
	noun("city", "location", "city")
	noun("paris", "city", "paris")

	noun("artifact", "whole", "artifact")
	noun("instrumentality", "artifact", "instrumentality")
	noun("conveyance", "instrumentality", "conveyance", "transport")
	noun("vehicle", "conveyance", "vehicle")
	noun("wheeled_vehicle", "vehicle", "wheeled_vehicle")
	noun("chariot", "wheeled_vehicle", "chariot")

	noun("attribute", "abstraction", "attribute")
	noun("property", "attribute", "property")
	noun("visual_property", "property", "visual_property")
	noun("color", "visual_property", "color", "colour")
	noun("paint", "color", "paint")

	noun("matter", "physical_entity", "matter")
	noun("substance", "matter", "substance")
	noun("element", "substance", "element")
	noun("carbon", "element", "carbon")
	noun("graphite", "carbon", "graphite", "plumbago", "black_lead")
	noun("pencil_lead", "graphite", "lead")

	b.AddSynset("guide", lexicon.Verb, "guide", "lead", "take", "direct", "conduct")
	b.AddSynset("get", lexicon.Verb, "get", "acquire")
	b.AddSynset("buy", lexicon.Verb, "buy", "purchase")
	b.Relate("buy", lexicon.Hypernym, "get")
	b.AddForm("got", "get")

	return b.Build()
}

// Service returns a lexical service over the fixture word list and graph
// with no abbreviations.
func Service() *lexicon.Service {
	return lexicon.NewService(lexicon.NewWordList(Words()), SenseGraph(), nil, lexicon.Options{})
}
