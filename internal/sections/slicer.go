package sections

// Slice turns sorted header matches into section body spans. A body runs from the
// end of its header to the start of the next header of any kind, or to textLen for
// the last header. Boundary headers end the previous body but produce no span.
func Slice(matches []Match, textLen int) []Span {
	spans := make([]Span, 0, len(matches))
	for i, m := range matches {
		if m.Section == Boundary {
			continue
		}
		end := textLen
		if i+1 < len(matches) {
			end = matches[i+1].Start
		}
		if end < m.End {
			end = m.End
		}
		spans = append(spans, Span{Section: m.Section, Start: m.End, End: end})
	}
	return spans
}
