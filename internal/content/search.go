package content

import "strings"

// Filter returns the articles matching a free-text query against
// title, summary, tags, and authors, case-insensitively. An empty
// query returns the input unchanged.
func Filter(articles []Article, q string) []Article {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return articles
	}
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if matchesQuery(a, q) {
			out = append(out, a)
		}
	}
	return out
}

func matchesQuery(a Article, q string) bool {
	if strings.Contains(strings.ToLower(a.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(a.Summary), q) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	for _, name := range a.Authors {
		if strings.Contains(strings.ToLower(name), q) {
			return true
		}
	}
	return false
}
