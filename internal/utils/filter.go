package utils

// SeenFilter drops repeated keys while preserving first-seen order.
// Not safe for concurrent use.
type SeenFilter struct {
	seen map[string]struct{}
}

// NewSeenFilter creates a filter that already excludes the given keys.
func NewSeenFilter(exclude ...string) *SeenFilter {
	seen := make(map[string]struct{}, len(exclude))
	for _, k := range exclude {
		seen[k] = struct{}{}
	}
	return &SeenFilter{seen: seen}
}

// ShouldInclude checks if a key should be included in results (not a duplicate)
// Returns true if the key is new, false if it was already seen.
func (f *SeenFilter) ShouldInclude(key string) bool {
	if _, ok := f.seen[key]; ok {
		return false
	}
	f.seen[key] = struct{}{}
	return true
}
