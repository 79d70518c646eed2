package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the site configuration, read from INKWAVE_* environment
// variables. BaseURL is the scheme+host every canonical, sitemap, and
// robots URL is built from; the request Host is never trusted.
type Config struct {
	BaseURL            string   `envconfig:"BASE_URL" default:"http://localhost:8080"`
	SiteName           string   `envconfig:"SITE_NAME" default:"Inkwave"`
	DefaultDescription string   `envconfig:"DEFAULT_DESCRIPTION" default:"Essays and field notes from the Inkwave workshop."`
	DefaultOGImage     string   `envconfig:"DEFAULT_OG_IMAGE"`
	TwitterSite        string   `envconfig:"TWITTER_SITE"`
	ContentDir         string   `envconfig:"CONTENT_DIR" default:"content"`
	TemplatesDir       string   `envconfig:"TEMPLATES_DIR" default:"templates"`
	PublicDir          string   `envconfig:"PUBLIC_DIR" default:"public"`
	LocalesDir         string   `envconfig:"LOCALES_DIR" default:"locales"`
	Locales            []string `envconfig:"LOCALES" default:"en,ja"`
	DefaultLocale      string   `envconfig:"DEFAULT_LOCALE" default:"en"`
	Port               string   `envconfig:"PORT"`
	Dev                bool     `envconfig:"DEV"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Missing .env means production; only warn when the file exists
		// but could not be read.
		if _, statErr := os.Stat(".env"); statErr == nil {
			log.Printf("config: .env found but not loadable: %v", err)
		}
	}
	var cfg Config
	if err := envconfig.Process("inkwave", &cfg); err != nil {
		return nil, err
	}
	if cfg.Port == "" {
		// Cloud Run style fallback.
		cfg.Port = os.Getenv("PORT")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &cfg, nil
}
