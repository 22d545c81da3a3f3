// Package sections splits résumé text into named sections and per-section entries.
// Segmentation is heuristic: header lines are located with a synonym table, the text
// between headers is carved into section bodies, and each body is split into entries.
package sections

import "sort"

// Section is a top-level résumé category
type Section string

// Reported sections
const (
	Projects        Section = "projects"
	Experience      Section = "experience"
	Education       Section = "education"
	Skills          Section = "skills"
	Extracurricular Section = "extracurricular"

	// Boundary marks a header that ends the preceding section without being reported
	Boundary Section = ""
)

// AllSections lists the reported sections in their canonical order
var AllSections = []Section{Projects, Experience, Education, Skills, Extracurricular}

// Entry is one item within a section: a single project, role, degree or skill group
type Entry struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Match is a located header line in normalized text
type Match struct {
	Section Section
	Start   int // offset of the header line start
	End     int // offset just past the header line, before its newline
}

// Span is the body of one section occurrence, [Start, End) in normalized text
type Span struct {
	Section Section
	Start   int
	End     int
}

// Result maps each section to its entries in document order
type Result map[Section][]Entry

// newResult returns a Result with an empty list for every reported section in defs
func newResult(defs []Definition) Result {
	result := make(Result, len(AllSections))
	for _, s := range AllSections {
		result[s] = []Entry{}
	}
	for _, def := range defs {
		if def.Section == Boundary {
			continue
		}
		if _, ok := result[def.Section]; !ok {
			result[def.Section] = []Entry{}
		}
	}
	return result
}

// Empty reports whether no section has any entries
func (r Result) Empty() bool {
	return r.Count() == 0
}

// Count returns the total number of entries across all sections
func (r Result) Count() int {
	n := 0
	for _, entries := range r {
		n += len(entries)
	}
	return n
}

// Sections returns the keys of r: canonical sections first, then any others sorted by name
func (r Result) Sections() []Section {
	out := make([]Section, 0, len(r))
	seen := make(map[Section]bool, len(r))
	for _, s := range AllSections {
		if _, ok := r[s]; ok {
			out = append(out, s)
			seen[s] = true
		}
	}

	var extra []Section
	for s := range r {
		if !seen[s] {
			extra = append(extra, s)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
