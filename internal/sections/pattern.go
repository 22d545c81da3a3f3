package sections

import (
	"regexp"
	"sort"
	"strings"
)

// PatternLocator matches each definition with a single case-insensitive regex
// anchored to a whole line. Regexes are compiled once at construction.
type PatternLocator struct {
	patterns []compiledDefinition
}

type compiledDefinition struct {
	section Section
	re      *regexp.Regexp
}

// NewPatternLocator compiles a header regex for every definition with at least one phrase
func NewPatternLocator(defs []Definition) *PatternLocator {
	l := &PatternLocator{}
	for _, def := range defs {
		if re := headerRegexp(def.Phrases); re != nil {
			l.patterns = append(l.patterns, compiledDefinition{section: def.Section, re: re})
		}
	}
	return l
}

// Locate runs every definition's regex over the whole text and merges the results
func (l *PatternLocator) Locate(text string) []Match {
	var cands []candidate
	for i, p := range l.patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			cands = append(cands, candidate{
				Match: Match{Section: p.section, Start: loc[0], End: loc[1]},
				order: i,
			})
		}
	}
	return resolveOverlaps(cands)
}

// headerRegexp builds `(?im)^[lead]*(?:phrase|...)[ \t]*:?[ \t]*$` with longer phrases first
func headerRegexp(phrases []string) *regexp.Regexp {
	alts := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		words := phraseWords(phrase)
		if len(words) == 0 {
			continue
		}
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		alts = append(alts, strings.Join(words, headerSeparatorClass+"+"))
	}
	if len(alts) == 0 {
		return nil
	}
	sort.SliceStable(alts, func(i, j int) bool { return len(alts[i]) > len(alts[j]) })

	return regexp.MustCompile(`(?im)^` + headerLeadClass + `*(?:` + strings.Join(alts, "|") + `)[ \t]*:?[ \t]*$`)
}
