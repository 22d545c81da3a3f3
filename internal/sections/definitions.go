package sections

import "strings"

// Definition maps a section to the header phrases that announce it.
// Phrases are lowercase words separated by single spaces; in the source text the
// words may be separated by spaces, tabs, hyphens, slashes or ampersands.
// A Definition whose Section is Boundary terminates the preceding section only.
type Definition struct {
	Section Section
	Phrases []string
}

// DefaultDefinitions is the synonym table used when a Parser is not given its own.
var DefaultDefinitions = []Definition{
	{
		Section: Projects,
		Phrases: []string{"projects", "project", "personal projects", "academic projects", "side projects", "publications"},
	},
	{
		Section: Experience,
		Phrases: []string{
			"experience", "work experience", "professional experience", "relevant experience",
			"employment", "employment history", "work history", "internships",
		},
	},
	{
		Section: Education,
		Phrases: []string{"education", "academic background", "educational background", "qualifications"},
	},
	{
		Section: Skills,
		Phrases: []string{"skills", "skill", "technical skills", "core competencies", "skills and tools"},
	},
	{
		// Bare "leadership" and "position" are left out: they commonly appear as
		// a one-word line inside a skills list. "activities" and "positions" are
		// kept because they rarely stand alone outside a header.
		Section: Extracurricular,
		Phrases: []string{
			"extracurricular", "extracurriculars", "extra curricular", "extracurricular activities",
			"extra curricular activities", "activities", "positions", "positions of responsibility",
			"leadership experience", "leadership activities", "volunteering", "volunteer experience",
		},
	},
	{
		Section: Boundary,
		Phrases: []string{
			"summary", "professional summary", "profile", "objective", "career objective", "about me",
			"contact", "contact information", "personal information", "personal details",
			"languages", "interests", "hobbies", "references",
			"certifications", "certificates", "awards", "honors", "honours",
			"awards honors", "awards and honors", "achievements",
		},
	},
}

// phraseWords splits a table phrase into its lowercase words
func phraseWords(phrase string) []string {
	return strings.Fields(strings.ToLower(phrase))
}
