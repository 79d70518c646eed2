package sitemap

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// ChangeFreq is the sitemap change-frequency hint.
type ChangeFreq string

const (
	Always  ChangeFreq = "always"
	Hourly  ChangeFreq = "hourly"
	Daily   ChangeFreq = "daily"
	Weekly  ChangeFreq = "weekly"
	Monthly ChangeFreq = "monthly"
	Yearly  ChangeFreq = "yearly"
	Never   ChangeFreq = "never"
)

func (c ChangeFreq) valid() bool {
	switch c {
	case "", Always, Hourly, Daily, Weekly, Monthly, Yearly, Never:
		return true
	}
	return false
}

// Entry is one discoverable URL. Zero-value LastMod, ChangeFreq, and
// Priority are omitted from the output; entries carry no ordering
// requirement.
type Entry struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq ChangeFreq
	Priority   float64 // 0 means unset; valid range (0, 1]
}

// Validate reports the first contract violation in the entry.
func (e Entry) Validate() error {
	u, err := url.Parse(e.Loc)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("sitemap: loc %q is not an absolute URL", e.Loc)
	}
	if !e.ChangeFreq.valid() {
		return fmt.Errorf("sitemap: invalid changefreq %q for %s", e.ChangeFreq, e.Loc)
	}
	if e.Priority < 0 || e.Priority > 1 {
		return fmt.Errorf("sitemap: priority %v out of range for %s", e.Priority, e.Loc)
	}
	return nil
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Marshal validates every entry and serializes the set to sitemap XML,
// header included. LastMod uses the W3C date form.
func Marshal(entries []Entry) ([]byte, error) {
	set := urlSet{Xmlns: xmlns, URLs: make([]xmlURL, 0, len(entries))}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		u := xmlURL{Loc: e.Loc}
		if !e.LastMod.IsZero() {
			u.LastMod = e.LastMod.UTC().Format("2006-01-02")
		}
		u.ChangeFreq = string(e.ChangeFreq)
		if e.Priority > 0 {
			u.Priority = strconv.FormatFloat(e.Priority, 'f', 1, 64)
		}
		set.URLs = append(set.URLs, u)
	}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sitemap: marshal: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
