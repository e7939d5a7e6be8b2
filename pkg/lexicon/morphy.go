package lexicon

import "strings"

type substitution struct{ suffix, ending string }

// WordNet's detachment rules per part of speech.
var substitutions = map[PartOfSpeech][]substitution{
	Noun: {
		{"s", ""}, {"ses", "s"}, {"ves", "f"}, {"xes", "x"}, {"zes", "z"},
		{"ches", "ch"}, {"shes", "sh"}, {"men", "man"}, {"ies", "y"},
	},
	Verb: {
		{"s", ""}, {"ies", "y"}, {"es", "e"}, {"es", ""},
		{"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	},
	Adjective: {
		{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
	},
}

// detach applies each rule of pos once and returns the candidate base forms.
// Callers filter them against the lemma index.
func detach(word string, pos PartOfSpeech) []string {
	var out []string
	for _, sub := range substitutions[pos] {
		if strings.HasSuffix(word, sub.suffix) && len(word) > len(sub.suffix) {
			out = append(out, word[:len(word)-len(sub.suffix)]+sub.ending)
		}
	}
	return out
}
