package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no article exists for a slug in any
// candidate language.
var ErrNotFound = errors.New("content: not found")

// SEO holds the optional per-article metadata overrides from front matter.
type SEO struct {
	Title       string
	Description string
	OGImage     string
	NoIndex     bool
}

// Article is a localized markdown document after rendering. Body is
// sanitized HTML and safe to embed.
type Article struct {
	Section     string
	Slug        string
	Lang        string
	Title       string
	Summary     string
	Authors     []string
	Tags        []string
	Body        template.HTML
	PublishedAt time.Time
	UpdatedAt   time.Time
	SEO         SEO
}

type frontMatter struct {
	Title       string   `yaml:"title"`
	Summary     string   `yaml:"summary"`
	Lang        string   `yaml:"lang"`
	Authors     []string `yaml:"authors"`
	Tags        []string `yaml:"tags"`
	PublishedAt string   `yaml:"published_at"`
	UpdatedAt   string   `yaml:"updated_at"`
	SEO         struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		OGImage     string `yaml:"og_image"`
		NoIndex     bool   `yaml:"noindex"`
	} `yaml:"seo"`
}

const defaultTTL = 5 * time.Minute

// Store reads markdown documents from dir, laid out as
// <dir>/<section>/<lang>/<slug>.md, and caches rendered articles.
type Store struct {
	dir      string
	fallback string
	ttl      time.Duration
	md       goldmark.Markdown
	sanitize *bluemonday.Policy

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	article Article
	expires time.Time
}

// NewStore builds a store over dir with the given fallback language.
func NewStore(dir, fallback string) *Store {
	if strings.TrimSpace(dir) == "" {
		dir = "content"
	}
	if fallback == "" {
		fallback = "en"
	}
	return &Store{
		dir:      dir,
		fallback: fallback,
		ttl:      defaultTTL,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
		sanitize: bluemonday.UGCPolicy(),
		cache:    map[string]cacheEntry{},
	}
}

// SetTTL overrides the cache duration, primarily for tests.
func (s *Store) SetTTL(d time.Duration) {
	if d <= 0 {
		d = time.Second
	}
	s.ttl = d
}

// Get loads one article, trying lang first and then the fallback chain.
func (s *Store) Get(section, slug, lang string) (Article, error) {
	section = sanitizeSegment(section)
	slug = sanitizeSegment(slug)
	if section == "" || slug == "" {
		return Article{}, ErrNotFound
	}
	key := strings.Join([]string{section, lang, slug}, "|")
	if a, ok := s.cached(key); ok {
		return a, nil
	}
	for _, candidate := range s.langChain(lang) {
		a, err := s.read(section, slug, candidate)
		if err == nil {
			s.store(key, a)
			return a, nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return Article{}, err
	}
	return Article{}, ErrNotFound
}

// List returns every article in a section for lang, falling back per
// slug to the fallback language, newest first.
func (s *Store) List(section, lang string) ([]Article, error) {
	section = sanitizeSegment(section)
	if section == "" {
		return nil, ErrNotFound
	}
	slugs := map[string]struct{}{}
	for _, candidate := range s.langChain(lang) {
		entries, err := os.ReadDir(filepath.Join(s.dir, section, candidate))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("content: list %s/%s: %w", section, candidate, err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
				continue
			}
			slugs[strings.TrimSuffix(e.Name(), ".md")] = struct{}{}
		}
	}
	out := make([]Article, 0, len(slugs))
	for slug := range slugs {
		a, err := s.Get(section, slug, lang)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

func (s *Store) langChain(lang string) []string {
	chain := []string{}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang != "" {
		chain = append(chain, lang)
	}
	if lang != s.fallback {
		chain = append(chain, s.fallback)
	}
	return chain
}

func (s *Store) read(section, slug, lang string) (Article, error) {
	file := filepath.Join(s.dir, section, lang, slug+".md")
	raw, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Article{}, ErrNotFound
		}
		return Article{}, fmt.Errorf("content: read %s: %w", file, err)
	}
	fm, body := splitFrontMatter(string(raw))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Article{}, fmt.Errorf("content: front matter %s: %w", file, err)
		}
	}

	var buf bytes.Buffer
	if err := s.md.Convert([]byte(body), &buf); err != nil {
		return Article{}, fmt.Errorf("content: render %s: %w", file, err)
	}
	safe := s.sanitize.SanitizeBytes(buf.Bytes())

	a := Article{
		Section: section,
		Slug:    slug,
		Lang:    firstNonEmpty(strings.ToLower(strings.TrimSpace(front.Lang)), lang),
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Authors: trimAll(front.Authors),
		Tags:    trimAll(front.Tags),
		Body:    template.HTML(safe),
		SEO: SEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
			NoIndex:     front.SEO.NoIndex,
		},
	}
	a.PublishedAt = parseDate(front.PublishedAt)
	a.UpdatedAt = parseDate(front.UpdatedAt)
	if a.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			a.UpdatedAt = info.ModTime()
		}
	}
	if a.Title == "" {
		a.Title = prettifySlug(slug)
	}
	return a, nil
}

func (s *Store) cached(key string) (Article, bool) {
	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return Article{}, false
	}
	return entry.article, true
}

func (s *Store) store(key string, a Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cacheEntry{article: a, expires: time.Now().Add(s.ttl)}
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] -= 'a' - 'A'
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSegment(v string) string {
	v = strings.TrimSpace(strings.ToLower(v))
	v = strings.Trim(v, "/")
	if v == "" || strings.Contains(v, "..") || strings.ContainsRune(v, os.PathSeparator) {
		return ""
	}
	return v
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
