package sections

import (
	"fmt"
	"strings"
)

// Parser runs the segmentation pipeline: normalize, locate headers, slice bodies,
// split entries and title them. A Parser holds no mutable state and is safe for
// concurrent use.
type Parser struct {
	definitions []Definition
	strategy    Strategy
	locator     Locator
	splitter    *Splitter
}

// Option configures a Parser
type Option func(*Parser)

// WithDefinitions replaces the header synonym table
func WithDefinitions(defs []Definition) Option {
	return func(p *Parser) {
		p.definitions = defs
	}
}

// WithStrategy selects the header matching backend built from the definitions
func WithStrategy(strategy Strategy) Option {
	return func(p *Parser) {
		p.strategy = strategy
	}
}

// WithLocator uses a caller-supplied Locator instead of building one from a strategy
func WithLocator(l Locator) Option {
	return func(p *Parser) {
		p.locator = l
	}
}

// WithSplitter replaces the entry splitter
func WithSplitter(s *Splitter) Option {
	return func(p *Parser) {
		p.splitter = s
	}
}

// NewParser builds a Parser. It fails only for an unknown strategy.
func NewParser(opts ...Option) (*Parser, error) {
	p := &Parser{
		definitions: DefaultDefinitions,
		strategy:    StrategyPattern,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.locator == nil {
		l, err := NewLocator(p.strategy, p.definitions)
		if err != nil {
			return nil, fmt.Errorf("failed to build header locator: %w", err)
		}
		p.locator = l
	}
	if p.splitter == nil {
		p.splitter = NewSplitter()
	}
	return p, nil
}

// MustNewParser is NewParser for option sets known to be valid
func MustNewParser(opts ...Option) *Parser {
	p, err := NewParser(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse segments text into a Result. Every reported section is present in the
// Result; sections without a header, or whose bodies are blank, map to an empty list.
func (p *Parser) Parse(text string) Result {
	text = Normalize(text)
	result := newResult(p.definitions)

	for _, span := range Slice(p.locator.Locate(text), len(text)) {
		for _, item := range p.splitter.Split(text[span.Start:span.End]) {
			result[span.Section] = append(result[span.Section], NewEntry(item))
		}
	}
	return result
}

var defaultParser = MustNewParser()

// Parse segments text with the default synonym table, pattern backend and heuristics
func Parse(text string) Result {
	return defaultParser.Parse(text)
}

// Normalize unifies CRLF and lone CR line endings to LF. Nothing else is rewritten,
// so entry texts remain substrings of the input.
func Normalize(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
