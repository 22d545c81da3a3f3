package sections

import (
	"strings"
)

// TokenLocator tokenizes each line and compares the lowercase token sequence
// against every phrase's words.
type TokenLocator struct {
	phrases []tokenPhrase
}

type tokenPhrase struct {
	section Section
	words   []string
	order   int
}

// NewTokenLocator indexes the phrase word sequences of defs
func NewTokenLocator(defs []Definition) *TokenLocator {
	l := &TokenLocator{}
	for i, def := range defs {
		for _, phrase := range def.Phrases {
			if words := phraseWords(phrase); len(words) > 0 {
				l.phrases = append(l.phrases, tokenPhrase{section: def.Section, words: words, order: i})
			}
		}
	}
	return l
}

// Locate scans text line by line and reports every line whose tokens equal a phrase
func (l *TokenLocator) Locate(text string) []Match {
	var cands []candidate
	start := 0
	for start <= len(text) {
		end := strings.IndexByte(text[start:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += start
		}

		if tokens := headerTokens(text[start:end]); len(tokens) > 0 {
			for _, p := range l.phrases {
				if equalWords(tokens, p.words) {
					cands = append(cands, candidate{
						Match: Match{Section: p.section, Start: start, End: end},
						order: p.order,
					})
				}
			}
		}
		start = end + 1
	}
	return resolveOverlaps(cands)
}

// headerTokens returns the lowercase words of a candidate header line, or nil when
// the line has content other than decoration, separators and words.
func headerTokens(line string) []string {
	line = strings.TrimLeft(line, headerLead)
	line = strings.TrimRight(line, " \t")
	line = strings.TrimSuffix(line, ":")
	line = strings.TrimRight(line, " \t")
	if line == "" {
		return nil
	}

	isSep := func(r rune) bool { return strings.ContainsRune(headerSeparator, r) }
	first, last := []rune(line)[0], []rune(line)[len([]rune(line))-1]
	if isSep(first) || isSep(last) {
		return nil
	}

	tokens := strings.FieldsFunc(line, isSep)
	for i, tok := range tokens {
		tokens[i] = strings.ToLower(tok)
	}
	return tokens
}

func equalWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
