// Package fuzzy implements the subsequence matching used by the label pickers.
package fuzzy

import (
	"strings"

	sfuzzy "github.com/sahilm/fuzzy"
)

// IsSubsequence reports whether every rune of query appears in target in
// order. Matching ignores case and spaces in the query.
func IsSubsequence(query, target string) bool {
	q := []rune(strings.ReplaceAll(strings.ToLower(query), " ", ""))
	if len(q) == 0 {
		return true
	}
	i := 0
	for _, r := range strings.ToLower(target) {
		if r == q[i] {
			i++
			if i == len(q) {
				return true
			}
		}
	}
	return false
}

// Filter returns the options matching query, best matches first.
// An empty query returns a copy of options in their original order.
func Filter(query string, options []string) []string {
	if query == "" {
		return append([]string(nil), options...)
	}

	var candidates []string
	for _, o := range options {
		if IsSubsequence(query, o) {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) < 2 {
		return candidates
	}

	// Rank with sahilm/fuzzy; anything it declines to score keeps its
	// relative order after the ranked matches.
	pattern := strings.ReplaceAll(query, " ", "")
	ranked := sfuzzy.Find(pattern, candidates)
	out := make([]string, 0, len(candidates))
	seen := make([]bool, len(candidates))
	for _, m := range ranked {
		if !seen[m.Index] {
			seen[m.Index] = true
			out = append(out, candidates[m.Index])
		}
	}
	for i, c := range candidates {
		if !seen[i] {
			out = append(out, c)
		}
	}
	return out
}
