package sections

import "strings"

// Title derives an entry title from the first line of item. For "Title | Subtitle"
// lines it is the text before the first pipe; otherwise, or when that text is
// empty, it is the whole trimmed first line.
func Title(item string) string {
	first := strings.TrimSpace(item)
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	first = strings.TrimSpace(first)

	if before, _, ok := strings.Cut(first, "|"); ok {
		if title := strings.TrimSpace(before); title != "" {
			return title
		}
	}
	return first
}

// NewEntry builds an Entry from a raw item, keeping the trimmed item as its text
func NewEntry(item string) Entry {
	text := strings.TrimSpace(item)
	return Entry{Title: Title(text), Text: text}
}
