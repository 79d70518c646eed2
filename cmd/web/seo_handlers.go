package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"finitefield.org/inkwave-web/internal/handlers"
	"finitefield.org/inkwave-web/internal/sitemap"
)

// RobotsHandler serves the static crawl policy. The policy is validated
// at startup, so rendering here cannot fail.
func RobotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(policy.Render()))
}

// SitemapHandler builds the sitemap from the content store per request
// so new articles show up without a restart.
func SitemapHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := handlers.BuildSitemap(site, store, i18nBundle.Fallback(), time.Now())
	if err != nil {
		logger.Error("build sitemap", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	body, err := sitemap.Marshal(entries)
	if err != nil {
		logger.Error("marshal sitemap", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(body)
}
