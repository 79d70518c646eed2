package format

import (
	"strings"
	"time"
)

// Date formats a timestamp in a locale-friendly short form for article
// bylines and listings.
func Date(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "ja":
		return t.Format("2006-01-02")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// Authors joins a byline author list the way the templates expect.
func Authors(names []string) string {
	return strings.Join(names, ", ")
}
