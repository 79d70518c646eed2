package middleware

import (
	"net/http"

	"finitefield.org/inkwave-web/internal/i18n"
)

// Locale resolves the request language (?lang override first, then
// Accept-Language) and stores it in the context.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := r.URL.Query().Get("lang"); q != "" {
				lang = bundle.Resolve(q)
			} else {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}

// VaryLocale marks responses as language-dependent for caches.
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}
