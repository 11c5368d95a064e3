// Package catalog filters and selects vehicle blueprint candidates.
package catalog

import (
	"math/rand"
	"strings"

	"github.com/carlaops/carpark/pkg/core"
)

// twoWheelerKeywords excludes bikes, motorcycles and other models that
// cannot occupy a standard parking slot.
var twoWheelerKeywords = []string{
	"bike", "bicycle", "motorcycle", "gazelle", "harley", "yamaha",
	"kawasaki", "ninja", "vespa", "diamondback", "bh.crossbike",
	"european_hgv", "firetruck", "fusorosa", "rad",
}

// FourWheeled drops every candidate whose name matches the fixed
// two-wheeler blocklist. Returns the excluded count for reporting.
func FourWheeled(pool []core.Candidate) (filtered []core.Candidate, excluded int) {
	filtered = make([]core.Candidate, 0, len(pool))
	for _, c := range pool {
		if containsAny(strings.ToLower(c.ID), twoWheelerKeywords) {
			excluded++
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered, excluded
}

// ExcludeKeywords drops candidates whose name contains any of the given
// keywords, case-insensitively. Nil keywords returns the pool unchanged.
func ExcludeKeywords(pool []core.Candidate, keywords []string) []core.Candidate {
	if len(keywords) == 0 {
		return pool
	}
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	filtered := make([]core.Candidate, 0, len(pool))
	for _, c := range pool {
		if containsAny(strings.ToLower(c.ID), lowered) {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

// Pick draws one candidate uniformly at random. The pool must not be empty.
func Pick(pool []core.Candidate, rng *rand.Rand) core.Candidate {
	return pool[rng.Intn(len(pool))]
}

func containsAny(name string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}
