package handlers

import (
	"time"

	"finitefield.org/inkwave-web/internal/config"
	"finitefield.org/inkwave-web/internal/content"
	"finitefield.org/inkwave-web/internal/i18n"
	"finitefield.org/inkwave-web/internal/nav"
	"finitefield.org/inkwave-web/internal/robots"
	"finitefield.org/inkwave-web/internal/seo"
	"finitefield.org/inkwave-web/internal/sitemap"
)

// SiteFromConfig maps configuration onto the SEO site defaults.
func SiteFromConfig(cfg *config.Config) seo.Site {
	return seo.Site{
		Name:               cfg.SiteName,
		BaseURL:            cfg.BaseURL,
		DefaultDescription: cfg.DefaultDescription,
		DefaultImage:       cfg.DefaultOGImage,
		TwitterSite:        cfg.TwitterSite,
		Locale:             cfg.DefaultLocale,
	}
}

// alternates emits one hreflang link per supported locale plus
// x-default pointing at the language-neutral URL.
func alternates(site seo.Site, path string, locales []string) []seo.Alternate {
	if len(locales) < 2 {
		return nil
	}
	out := make([]seo.Alternate, 0, len(locales)+1)
	base := site.AbsURL(path)
	for _, l := range locales {
		out = append(out, seo.Alternate{Href: base + "?lang=" + l, Hreflang: l})
	}
	out = append(out, seo.Alternate{Href: base, Hreflang: "x-default"})
	return out
}

// crumbItems translates the breadcrumb trail for the BreadcrumbList block.
func crumbItems(site seo.Site, b *i18n.Bundle, lang string, crumbs []nav.Crumb) []seo.BreadcrumbItem {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = b.T(lang, c.LabelKey)
		}
		items = append(items, seo.BreadcrumbItem{Name: name, Item: site.AbsURL(c.Href)})
	}
	return items
}

// BuildHomeData assembles the landing page view model: site-default
// metadata plus the WebSite and Organization blocks.
func BuildHomeData(site seo.Site, b *i18n.Bundle, lang string, locales []string) PageData {
	m := site.Meta(seo.Page{Path: "/"})
	m.Alternates = alternates(site, "/", locales)
	m.JSONLD = []string{
		seo.JSON(seo.WebSite(site.Name, site.AbsURL("/"), site.AbsURL("/articles")+"?q=")),
		seo.JSON(seo.Organization(site.Name, site.AbsURL("/"), site.DefaultImage)),
	}
	d := newPageData(site.Name, lang, "/", m)
	d.Tagline = site.DefaultDescription
	return d
}

// BuildArticlesData assembles the article index view model.
func BuildArticlesData(site seo.Site, b *i18n.Bundle, lang string, locales []string, articles []content.Article) PageData {
	title := b.T(lang, "articles.title")
	m := site.Meta(seo.Page{Title: title, Path: "/articles"})
	m.Alternates = alternates(site, "/articles", locales)
	crumbs := nav.Breadcrumbs("/articles")
	m.JSONLD = []string{seo.JSON(seo.BreadcrumbList(crumbItems(site, b, lang, crumbs)))}
	d := newPageData(title, lang, "/articles", m)
	d.Articles = articles
	return d
}

// BuildArticleData assembles a single article view model: front-matter
// SEO overrides win over the mapped defaults, and the page carries an
// Article block plus its breadcrumb trail.
func BuildArticleData(site seo.Site, b *i18n.Bundle, lang string, locales []string, a content.Article) PageData {
	path := "/articles/" + a.Slug
	p := seo.Page{
		Title:       firstNonEmpty(a.SEO.Title, a.Title),
		Description: firstNonEmpty(a.SEO.Description, a.Summary),
		Path:        path,
		Image:       a.SEO.OGImage,
		Type:        "article",
		Authors:     a.Authors,
		NoIndex:     a.SEO.NoIndex,
	}
	m := site.Meta(p)
	m.Alternates = alternates(site, path, locales)
	crumbs := nav.Breadcrumbs(path)
	m.JSONLD = []string{
		seo.JSON(seo.Article(seo.ArticleInfo{
			Headline:    a.Title,
			Description: firstNonEmpty(a.SEO.Description, a.Summary),
			URL:         m.Canonical,
			Image:       a.SEO.OGImage,
			Authors:     a.Authors,
			Published:   a.PublishedAt,
			Modified:    a.UpdatedAt,
		})),
		seo.JSON(seo.BreadcrumbList(crumbItems(site, b, lang, crumbs))),
	}
	d := newPageData(a.Title, lang, path, m)
	d.Article = &a
	return d
}

// BuildContentPageData assembles a static content page view model.
func BuildContentPageData(site seo.Site, b *i18n.Bundle, lang string, locales []string, pg content.Article) PageData {
	path := "/pages/" + pg.Slug
	m := site.Meta(seo.Page{
		Title:       firstNonEmpty(pg.SEO.Title, pg.Title),
		Description: firstNonEmpty(pg.SEO.Description, pg.Summary),
		Path:        path,
		NoIndex:     pg.SEO.NoIndex,
	})
	m.Alternates = alternates(site, path, locales)
	m.JSONLD = []string{seo.JSON(seo.BreadcrumbList(crumbItems(site, b, lang, nav.Breadcrumbs(path))))}
	d := newPageData(pg.Title, lang, path, m)
	d.Page = &pg
	return d
}

// RoutePrefixes lists the path prefixes the site actually routes; the
// crawl policy may only reference these.
func RoutePrefixes() []string {
	return []string{"/", "/articles", "/pages", "/assets", "/healthz"}
}

// BuildPolicy returns the site crawl policy: open to all agents, with
// the health endpoint kept out of indexes and the sitemap advertised.
func BuildPolicy(site seo.Site) robots.Policy {
	p := robots.AllowAll(site.AbsURL("/sitemap.xml"))
	p.Groups[0].Disallow = []string{"/healthz"}
	return p
}

// sitemap defaults per page class
const (
	homePriority    = 1.0
	indexPriority   = 0.8
	articlePriority = 0.7
	pagePriority    = 0.5
)

// BuildSitemap maps the static routes and every published document
// onto sitemap entries. Canonical URLs are language-neutral, so the
// fallback locale's listing is used.
func BuildSitemap(site seo.Site, store *content.Store, fallbackLang string, now time.Time) ([]sitemap.Entry, error) {
	entries := []sitemap.Entry{
		{Loc: site.AbsURL("/"), ChangeFreq: sitemap.Daily, Priority: homePriority, LastMod: now},
		{Loc: site.AbsURL("/articles"), ChangeFreq: sitemap.Daily, Priority: indexPriority, LastMod: now},
	}
	articles, err := store.List("articles", fallbackLang)
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		if a.SEO.NoIndex {
			continue
		}
		entries = append(entries, sitemap.Entry{
			Loc:        site.AbsURL("/articles/" + a.Slug),
			LastMod:    a.UpdatedAt,
			ChangeFreq: sitemap.Weekly,
			Priority:   articlePriority,
		})
	}
	pages, err := store.List("pages", fallbackLang)
	if err != nil {
		return nil, err
	}
	for _, pg := range pages {
		if pg.SEO.NoIndex {
			continue
		}
		entries = append(entries, sitemap.Entry{
			Loc:        site.AbsURL("/pages/" + pg.Slug),
			LastMod:    pg.UpdatedAt,
			ChangeFreq: sitemap.Monthly,
			Priority:   pagePriority,
		})
	}
	return entries, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
