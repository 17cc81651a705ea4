package domain

import "strings"

// FilterSubmissions returns the submissions that fall under tab and match
// query, in input order. An empty query matches everything; otherwise the
// query is matched case-insensitively as a substring of the title, the
// description or any tag.
func FilterSubmissions(subs []Submission, tab Tab, query string) []Submission {
	needle := foldCase(strings.TrimSpace(query))

	out := make([]Submission, 0, len(subs))
	for i := range subs {
		if !tab.Matches(subs[i].Category) {
			continue
		}
		if needle != "" && !matchesQuery(&subs[i], needle) {
			continue
		}
		out = append(out, subs[i])
	}
	return out
}

func matchesQuery(s *Submission, needle string) bool {
	if strings.Contains(foldCase(s.Title), needle) {
		return true
	}
	if strings.Contains(foldCase(s.Description), needle) {
		return true
	}
	for _, tag := range s.Tags {
		if strings.Contains(foldCase(tag), needle) {
			return true
		}
	}
	return false
}

// foldCase is the single case-folding rule shared by every text predicate.
func foldCase(s string) string {
	return strings.ToLower(s)
}
