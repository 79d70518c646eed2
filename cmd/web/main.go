package main

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/inkwave-web/internal/config"
	"finitefield.org/inkwave-web/internal/content"
	"finitefield.org/inkwave-web/internal/format"
	"finitefield.org/inkwave-web/internal/handlers"
	"finitefield.org/inkwave-web/internal/i18n"
	mw "finitefield.org/inkwave-web/internal/middleware"
	"finitefield.org/inkwave-web/internal/robots"
	"finitefield.org/inkwave-web/internal/seo"
)

var (
	cfg        *config.Config
	site       seo.Site
	i18nBundle *i18n.Bundle
	store      *content.Store
	policy     robots.Policy
	logger     *zap.Logger

	templatesDir = "templates"
	devMode      bool
	tmplCache    *template.Template
)

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	if cfg.Dev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(fmt.Sprintf("logger: %v", err))
	}
	defer func() { _ = logger.Sync() }()

	devMode = cfg.Dev
	templatesDir = cfg.TemplatesDir

	i18nBundle, err = i18n.Load(cfg.LocalesDir, cfg.DefaultLocale, cfg.Locales)
	if err != nil {
		logger.Fatal("load locales", zap.Error(err))
	}
	store = content.NewStore(cfg.ContentDir, cfg.DefaultLocale)
	site = handlers.SiteFromConfig(cfg)

	policy = handlers.BuildPolicy(site)
	if err := policy.Validate(handlers.RoutePrefixes()); err != nil {
		logger.Fatal("crawl policy", zap.Error(err))
	}

	if !devMode {
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Info("web listening", zap.String("addr", srv.Addr), zap.Bool("dev", devMode))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("listen", zap.Error(err))
	}
}

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// Behind a trusted reverse proxy RealIP uses X-Forwarded-For for the
	// client IP. Only trusted proxies may set these headers in production.
	r.Use(chimw.RealIP)
	r.Use(mw.Locale(i18nBundle))
	r.Use(mw.VaryLocale)
	r.Use(mw.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(cfg.PublicDir, "assets"), "/assets"))
	r.Handle("/assets/*", assets)

	r.Get("/robots.txt", RobotsHandler)
	r.Get("/sitemap.xml", SitemapHandler)

	r.Get("/", HomeHandler)
	r.Get("/articles", ArticlesHandler)
	r.Get("/articles/{slug}", ArticleHandler)
	r.Get("/pages/{slug}", ContentPageHandler)
	return r
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now":     time.Now,
		"fmtDate": format.Date,
		"authors": format.Authors,
		"t": func(lang, key string) string {
			if i18nBundle == nil {
				return key
			}
			return i18nBundle.T(lang, key)
		},
		// JSON-LD blocks are pre-serialized, already-escaped JSON.
		"jsonld": func(s string) template.JS { return template.JS(s) },
	}
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

// render executes the named page template. In dev mode templates are
// reparsed on every request.
func render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	t := tmplCache
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return
		}
		t = tc
	}
	if t == nil {
		http.Error(w, "template not initialized", http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
	}
}
