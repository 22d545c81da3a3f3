package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitter_Split(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{
			name:     "role at organization",
			body:     "Software Engineer at Google\nBuilt X\nSenior Engineer at Meta\nLed Y",
			expected: []string{"Software Engineer at Google\nBuilt X", "Senior Engineer at Meta\nLed Y"},
		},
		{
			name:     "pipe titles",
			body:     "\nAlpha | Go\nBuilt alpha\nBeta | Rust\nBuilt beta\n",
			expected: []string{"Alpha | Go\nBuilt alpha", "Beta | Rust\nBuilt beta"},
		},
		{
			name:     "blank line fallback",
			body:     "Item One text\n\nItem Two text",
			expected: []string{"Item One text", "Item Two text"},
		},
		{
			name:     "blank line with spaces",
			body:     "First para\n   \nSecond para\n\n\n\nThird para",
			expected: []string{"First para", "Second para", "Third para"},
		},
		{
			name:     "pattern result wins over fallback",
			body:     "Alpha | Go\nBuilt\n\nmore\nBeta | Rust\nBuilt",
			expected: []string{"Alpha | Go\nBuilt\n\nmore", "Beta | Rust\nBuilt"},
		},
		{
			name:     "single block",
			body:     "Go, Python, SQL",
			expected: []string{"Go, Python, SQL"},
		},
		{
			name:     "dash bullets are not boundaries by default",
			body:     "Engineer\n- did A\n- did B",
			expected: []string{"Engineer\n- did A\n- did B"},
		},
		{
			name:     "lowercase at is not a role line",
			body:     "Worked on infra\nlooked at logs daily",
			expected: []string{"Worked on infra\nlooked at logs daily"},
		},
	}

	s := NewSplitter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.Split(tt.body))
		})
	}
}

func TestSplitter_EmptyBody(t *testing.T) {
	s := NewSplitter()

	assert.Empty(t, s.Split(""))
	assert.Empty(t, s.Split("  \n\t\n  "))
}

func TestSplitter_BulletSplit(t *testing.T) {
	s := NewSplitter(WithBulletSplit())

	assert.Equal(t, []string{"- A", "- B", "- C"}, s.Split("- A\n- B\n- C"))
	assert.Equal(t, []string{"pipe-title", "role-at", "bullet-dash"}, s.Heuristics())
}

func TestSplitter_WithHeuristics(t *testing.T) {
	s := NewSplitter(WithHeuristics(RoleAt))

	assert.Equal(t, []string{"role-at"}, s.Heuristics())
	assert.Equal(t, []string{"Alpha | Go\nBeta | Rust"}, s.Split("Alpha | Go\nBeta | Rust"))
}

func TestHeuristics(t *testing.T) {
	tests := []struct {
		heuristic Heuristic
		line      string
		match     bool
	}{
		{PipeTitle, "Senior Engineer | Acme Corp", true},
		{PipeTitle, "C++ Compiler | 2021", true},
		{PipeTitle, "senior engineer | acme", false},
		{PipeTitle, "Tech: Go | Python", false},
		{RoleAt, "Role A at X", true},
		{RoleAt, "Data Scientist at Initech", true},
		{RoleAt, "Role A At X", false},
		{RoleAt, "Maintained TPS reports", false},
		{BulletDash, "- item", true},
		{BulletDash, "   -item", true},
		{BulletDash, "item - note", false},
	}

	for _, tt := range tests {
		t.Run(tt.heuristic.Name+"/"+tt.line, func(t *testing.T) {
			assert.Equal(t, tt.match, tt.heuristic.Match(tt.line))
		})
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		expected string
	}{
		{name: "pipe", item: "Senior Engineer | Acme Corp\nDid things.", expected: "Senior Engineer"},
		{name: "first line", item: "Role A at X\nDetails", expected: "Role A at X"},
		{name: "multiple pipes", item: "A | B | C", expected: "A"},
		{name: "empty before pipe", item: "| Acme\nbody", expected: "| Acme"},
		{name: "padding", item: "  Padded title  \nbody", expected: "Padded title"},
		{name: "single line", item: "Go, Rust", expected: "Go, Rust"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Title(tt.item))
		})
	}
}

func TestNewEntry_PreservesText(t *testing.T) {
	e := NewEntry("Senior Engineer | Acme Corp\nDid things.")

	assert.Equal(t, "Senior Engineer", e.Title)
	assert.Equal(t, "Senior Engineer | Acme Corp\nDid things.", e.Text)
}
