package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/inkwave-web/internal/content"
	"finitefield.org/inkwave-web/internal/handlers"
	mw "finitefield.org/inkwave-web/internal/middleware"
)

// HomeHandler renders the landing page.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r.Context())
	render(w, "home", handlers.BuildHomeData(site, i18nBundle, lang, cfg.Locales))
}

// ArticlesHandler renders the article index, filtered by ?q= — the
// endpoint the home page's WebSite SearchAction points at.
func ArticlesHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r.Context())
	list, err := store.List("articles", lang)
	if err != nil {
		logger.Error("list articles", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	list = content.Filter(list, r.URL.Query().Get("q"))
	render(w, "articles", handlers.BuildArticlesData(site, i18nBundle, lang, cfg.Locales, list))
}

// ArticleHandler renders one article by slug.
func ArticleHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r.Context())
	slug := chi.URLParam(r, "slug")
	a, err := store.Get("articles", slug, lang)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		logger.Error("get article", zap.String("slug", slug), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	render(w, "article", handlers.BuildArticleData(site, i18nBundle, lang, cfg.Locales, a))
}

// ContentPageHandler renders a static content page by slug.
func ContentPageHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r.Context())
	slug := chi.URLParam(r, "slug")
	pg, err := store.Get("pages", slug, lang)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		logger.Error("get page", zap.String("slug", slug), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	render(w, "page", handlers.BuildContentPageData(site, i18nBundle, lang, cfg.Locales, pg))
}
