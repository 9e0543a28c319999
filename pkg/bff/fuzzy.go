package bff

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// tokenSetScore computes a 0-100 similarity between two strings that is
// insensitive to token order and to tokens shared by both sides. Shared
// tokens are factored out so "venta de pan" scores high against
// "pan, venta al por menor de".
func tokenSetScore(a, b string) int {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)

	var shared, onlyA, onlyB []string
	for tok := range tokensA {
		if tokensB[tok] {
			shared = append(shared, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range tokensB {
		if !tokensA[tok] {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(shared, " ")
	combinedA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	best := similarity(base, combinedA)
	if s := similarity(base, combinedB); s > best {
		best = s
	}
	if s := similarity(combinedA, combinedB); s > best {
		best = s
	}
	return best
}

func similarity(a, b string) int {
	if a == "" && b == "" {
		return 0
	}
	return int(levenshtein.Similarity(a, b, nil) * 100)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}
