package wordplay

import "strings"

// maxSubsetTokens caps the tokens fed to subset enumeration.
const maxSubsetTokens = 16

// subsets calls fn with every non-empty, order-preserving subset of tokens,
// smallest first. Subsets spelling the same token sequence are reported
// once. Enumeration stops when fn returns false.
func subsets(tokens []string, fn func(sub []string) bool) {
	if len(tokens) > maxSubsetTokens {
		tokens = tokens[:maxSubsetTokens]
	}
	seen := make(map[string]struct{})
	idx := make([]int, 0, len(tokens))
	sub := make([]string, 0, len(tokens))

	var walk func(start, size int) bool
	walk = func(start, size int) bool {
		if len(idx) == size {
			sub = sub[:0]
			for _, i := range idx {
				sub = append(sub, tokens[i])
			}
			key := strings.Join(sub, " ")
			if _, dup := seen[key]; dup {
				return true
			}
			seen[key] = struct{}{}
			return fn(append([]string(nil), sub...))
		}
		for i := start; i <= len(tokens)-(size-len(idx)); i++ {
			idx = append(idx, i)
			ok := walk(i+1, size)
			idx = idx[:len(idx)-1]
			if !ok {
				return false
			}
		}
		return true
	}
	for size := 1; size <= len(tokens); size++ {
		if !walk(0, size) {
			return
		}
	}
}

// contiguous calls fn with every contiguous, non-empty run of tokens.
func contiguous(tokens []string, fn func(sub []string)) {
	for i := range tokens {
		for j := i + 1; j <= len(tokens); j++ {
			fn(tokens[i:j])
		}
	}
}

// scaled returns max(floor, base-step*missing) for missing >= 0.
func scaled(floor, base, step float64, missing int) float64 {
	if missing < 0 {
		missing = 0
	}
	return max(floor, base-step*float64(missing))
}
