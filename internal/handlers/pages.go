package handlers

import (
	"finitefield.org/inkwave-web/internal/content"
	"finitefield.org/inkwave-web/internal/nav"
	"finitefield.org/inkwave-web/internal/seo"
)

// PageData is the shared view model for pages using the base layout.
type PageData struct {
	Title string
	Lang  string
	Path  string
	Meta  seo.Meta

	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	// Per-page payloads
	Tagline  string
	Articles []content.Article
	Article  *content.Article
	Page     *content.Article
}

func newPageData(title, lang, path string, m seo.Meta) PageData {
	return PageData{
		Title:       title,
		Lang:        lang,
		Path:        path,
		Meta:        m,
		Nav:         nav.Build(path),
		Breadcrumbs: nav.Breadcrumbs(path),
	}
}
