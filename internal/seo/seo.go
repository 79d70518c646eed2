package seo

import (
	"fmt"
	"net/url"
	"strings"
)

// OpenGraph holds the og:* properties emitted for link previews.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

// Twitter holds the twitter:* card properties.
type Twitter struct {
	Card    string
	Site    string
	Creator string
	Image   string
}

// Alternate is one hreflang alternate link for the page.
type Alternate struct {
	Href     string
	Hreflang string
}

// Meta is the complete head metadata record for a single page render.
// It is constructed once per request and handed to the template layer,
// which does the actual HTML serialization.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	Authors     []string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []string
}

// Site carries the site-wide defaults applied to every page record.
type Site struct {
	Name               string
	BaseURL            string
	DefaultDescription string
	DefaultImage       string
	TwitterSite        string
	Locale             string
}

// Page is the per-page input to the metadata mapping.
type Page struct {
	Title       string
	Description string
	Path        string
	Image       string
	Type        string // og:type; empty means "website"
	Authors     []string
	NoIndex     bool
}

// AbsURL resolves path against the site base URL. The request Host is
// never consulted; canonical URLs always use the configured base.
func (s Site) AbsURL(path string) string {
	base := strings.TrimRight(s.BaseURL, "/")
	if path == "" || path == "/" {
		return base + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := url.JoinPath(base, path)
	if err != nil {
		return base + path
	}
	return u
}

// Meta maps a page onto a full metadata record, filling gaps from the
// site defaults. A page with no title gets the bare site name; a titled
// page gets "Title | SiteName".
func (s Site) Meta(p Page) Meta {
	title := s.Name
	if t := strings.TrimSpace(p.Title); t != "" {
		title = t + " | " + s.Name
	}
	desc := strings.TrimSpace(p.Description)
	if desc == "" {
		desc = s.DefaultDescription
	}
	image := strings.TrimSpace(p.Image)
	if image == "" {
		image = s.DefaultImage
	}
	ogType := p.Type
	if ogType == "" {
		ogType = "website"
	}
	robots := "index,follow"
	if p.NoIndex {
		robots = "noindex,nofollow"
	}
	canonical := s.AbsURL(p.Path)

	card := "summary"
	if image != "" {
		card = "summary_large_image"
	}
	return Meta{
		Title:       title,
		Description: desc,
		Canonical:   canonical,
		Robots:      robots,
		Authors:     append([]string(nil), p.Authors...),
		OG: OpenGraph{
			Title:       title,
			Description: desc,
			Image:       image,
			Type:        ogType,
			URL:         canonical,
			SiteName:    s.Name,
			Locale:      s.Locale,
		},
		Twitter: Twitter{
			Card:  card,
			Site:  s.TwitterSite,
			Image: image,
		},
	}
}

// Validate reports metadata that would ship broken tags: an empty title
// or a canonical that is not an absolute http(s) URL.
func (m Meta) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("seo: empty title")
	}
	u, err := url.Parse(m.Canonical)
	if err != nil {
		return fmt.Errorf("seo: canonical %q: %w", m.Canonical, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("seo: canonical %q is not an absolute http(s) URL", m.Canonical)
	}
	return nil
}

// Tag is one head element for the template layer to serialize:
// El is "title", "meta", or "link".
type Tag struct {
	El      string
	Name    string // meta name="..."
	Prop    string // meta property="..."
	Rel     string // link rel="..."
	Href    string
	Lang    string // link hreflang="..."
	Content string
}

func metaTag(name, content string) (Tag, bool) {
	if content == "" {
		return Tag{}, false
	}
	return Tag{El: "meta", Name: name, Content: content}, true
}

func propTag(prop, content string) (Tag, bool) {
	if content == "" {
		return Tag{}, false
	}
	return Tag{El: "meta", Prop: prop, Content: content}, true
}

// HeadTags flattens the record into the ordered element list for the
// head template. Empty fields produce no tag.
func (m Meta) HeadTags() []Tag {
	tags := []Tag{{El: "title", Content: m.Title}}
	add := func(t Tag, ok bool) {
		if ok {
			tags = append(tags, t)
		}
	}
	add(metaTag("description", m.Description))
	add(metaTag("robots", m.Robots))
	for _, a := range m.Authors {
		add(metaTag("author", a))
	}
	if m.Canonical != "" {
		tags = append(tags, Tag{El: "link", Rel: "canonical", Href: m.Canonical})
	}
	for _, alt := range m.Alternates {
		if alt.Href == "" {
			continue
		}
		tags = append(tags, Tag{El: "link", Rel: "alternate", Href: alt.Href, Lang: alt.Hreflang})
	}
	add(propTag("og:title", m.OG.Title))
	add(propTag("og:description", m.OG.Description))
	add(propTag("og:type", m.OG.Type))
	add(propTag("og:url", m.OG.URL))
	add(propTag("og:image", m.OG.Image))
	add(propTag("og:site_name", m.OG.SiteName))
	add(propTag("og:locale", m.OG.Locale))
	add(metaTag("twitter:card", m.Twitter.Card))
	add(metaTag("twitter:site", m.Twitter.Site))
	add(metaTag("twitter:creator", m.Twitter.Creator))
	add(metaTag("twitter:image", m.Twitter.Image))
	return tags
}
