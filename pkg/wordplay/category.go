package wordplay

import (
	"fmt"
	"strings"
)

// Category names a kind of wordplay.
type Category int

const (
	// AnyCategory means no category was requested.
	AnyCategory Category = iota
	Anagram
	Run
	DoubleDefinition
	Charade
	Initial
	Final
)

var categoryNames = [...]string{
	AnyCategory:      "any",
	Anagram:          "anagram",
	Run:              "run",
	DoubleDefinition: "double definition",
	Charade:          "charade",
	Initial:          "initial",
	Final:            "final",
}

// Categories lists every concrete category in dispatch order.
func Categories() []Category {
	return []Category{Anagram, Run, DoubleDefinition, Charade, Initial, Final}
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Valid reports whether c is a concrete category.
func (c Category) Valid() bool {
	return c > AnyCategory && int(c) < len(categoryNames)
}

// ParseCategory accepts a category name. Spaces, hyphens and underscores are
// interchangeable, so "double-definition" works. The empty string and "any"
// yield AnyCategory.
func ParseCategory(name string) (Category, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case '-', '_':
			return ' '
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
	if key == "" {
		return AnyCategory, nil
	}
	for i, n := range categoryNames {
		if n == key {
			return Category(i), nil
		}
	}
	return AnyCategory, fmt.Errorf("unknown wordplay category %q", name)
}
