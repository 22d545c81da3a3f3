package sections

import (
	"regexp"
	"strings"
)

// Heuristic recognizes a line that starts a new entry
type Heuristic struct {
	Name  string
	Match func(line string) bool
}

var (
	pipeTitleRe  = regexp.MustCompile(`^[A-Z][A-Za-z0-9 \t&'./+#-]*\|`)
	roleAtRe     = regexp.MustCompile(`^[A-Z][A-Za-z \t]*[ \t]at[ \t]`)
	bulletDashRe = regexp.MustCompile(`^[ \t]*-`)
	blankLineRe  = regexp.MustCompile(`\n[ \t]*\n`)
)

var (
	// PipeTitle matches "Title | Subtitle" lines
	PipeTitle = Heuristic{Name: "pipe-title", Match: pipeTitleRe.MatchString}
	// RoleAt matches "Role at Organization" lines
	RoleAt = Heuristic{Name: "role-at", Match: roleAtRe.MatchString}
	// BulletDash matches lines that open with a dash bullet
	BulletDash = Heuristic{Name: "bullet-dash", Match: bulletDashRe.MatchString}
)

// DefaultHeuristics are the entry boundaries used unless a Splitter is configured otherwise
var DefaultHeuristics = []Heuristic{PipeTitle, RoleAt}

// Splitter breaks a section body into entries
type Splitter struct {
	heuristics []Heuristic
}

// SplitterOption configures a Splitter
type SplitterOption func(*Splitter)

// WithHeuristics replaces the entry boundary heuristics
func WithHeuristics(h ...Heuristic) SplitterOption {
	return func(s *Splitter) {
		s.heuristics = append([]Heuristic(nil), h...)
	}
}

// WithBulletSplit adds BulletDash to the configured heuristics
func WithBulletSplit() SplitterOption {
	return func(s *Splitter) {
		s.heuristics = append(s.heuristics, BulletDash)
	}
}

// NewSplitter returns a Splitter using DefaultHeuristics unless overridden
func NewSplitter(opts ...SplitterOption) *Splitter {
	s := &Splitter{heuristics: append([]Heuristic(nil), DefaultHeuristics...)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Heuristics returns the names of the configured heuristics in order
func (s *Splitter) Heuristics() []string {
	names := make([]string, len(s.heuristics))
	for i, h := range s.heuristics {
		names[i] = h.Name
	}
	return names
}

// Split returns the trimmed, non-empty entries of body in order.
// It cuts before every line (other than the first) that a heuristic matches. When
// that yields at most one entry and the body has a blank line, it splits on blank
// lines instead. This can over-split a single entry written as several paragraphs.
func (s *Splitter) Split(body string) []string {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	items := compact(s.splitOnHeuristics(body))
	if len(items) <= 1 && blankLineRe.MatchString(body) {
		items = compact(blankLineRe.Split(body, -1))
	}
	return items
}

func (s *Splitter) splitOnHeuristics(body string) []string {
	var items []string
	prev := 0
	lineStart := strings.IndexByte(body, '\n') + 1
	for lineStart > 0 && lineStart < len(body) {
		lineEnd := strings.IndexByte(body[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(body)
		} else {
			lineEnd += lineStart
		}

		if s.startsEntry(body[lineStart:lineEnd]) {
			items = append(items, body[prev:lineStart])
			prev = lineStart
		}
		lineStart = lineEnd + 1
	}
	return append(items, body[prev:])
}

func (s *Splitter) startsEntry(line string) bool {
	for _, h := range s.heuristics {
		if h.Match(line) {
			return true
		}
	}
	return false
}

// compact trims every item and drops the empty ones
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
