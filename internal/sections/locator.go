package sections

import (
	"fmt"
	"sort"
	"strings"
)

// Locator finds section header lines in normalized text.
// Implementations return matches sorted by Start with no two matches overlapping.
type Locator interface {
	Locate(text string) []Match
}

// Strategy selects a Locator backend
type Strategy string

const (
	// StrategyPattern matches headers with one anchored regex per definition
	StrategyPattern Strategy = "pattern"
	// StrategyToken matches headers by comparing line tokens to phrase word sequences
	StrategyToken Strategy = "token"
)

// NewLocator builds the Locator for a strategy over the given definitions
func NewLocator(strategy Strategy, defs []Definition) (Locator, error) {
	switch Strategy(strings.ToLower(string(strategy))) {
	case StrategyPattern, "":
		return NewPatternLocator(defs), nil
	case StrategyToken:
		return NewTokenLocator(defs), nil
	default:
		return nil, fmt.Errorf("unknown header strategy %q", strategy)
	}
}

// Characters allowed around and between header words. Both backends share these
// so they agree on what a header line looks like.
const (
	headerLead      = " \t#*•"
	headerSeparator = " \t-/&"

	headerLeadClass      = `[ \t#*•]`
	headerSeparatorClass = `[ \t/&-]`
)

// candidate is a match tagged with the index of the definition that produced it
type candidate struct {
	Match
	order int
}

// resolveOverlaps orders candidates by start offset, preferring the longer match and
// then the earlier definition on ties, and drops any candidate that overlaps one
// already kept.
func resolveOverlaps(cands []candidate) []Match {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if la, lb := a.End-a.Start, b.End-b.Start; la != lb {
			return la > lb
		}
		return a.order < b.order
	})

	matches := make([]Match, 0, len(cands))
	for _, c := range cands {
		if n := len(matches); n > 0 && c.Start < matches[n-1].End {
			continue
		}
		matches = append(matches, c.Match)
	}
	return matches
}
