package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeDoc(t *testing.T, dir, section, lang, slug, body string) {
	t.Helper()
	path := filepath.Join(dir, section, lang)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(path, slug+".md"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

const sampleDoc = `---
title: Open Graph basics
summary: The properties previews actually use.
authors:
  - Mori Takeda
  - Lena Okafor
tags:
  - metadata
published_at: 2026-03-30
updated_at: 2026-04-02
seo:
  description: Override description.
  og_image: https://cdn.inkwave.example/og/basics.png
---

Most platforms read **four** properties.
`

func TestGetParsesFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "articles", "en", "open-graph-basics", sampleDoc)
	s := NewStore(dir, "en")

	a, err := s.Get("articles", "open-graph-basics", "en")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.Title != "Open Graph basics" {
		t.Fatalf("title = %q", a.Title)
	}
	if len(a.Authors) != 2 || a.Authors[1] != "Lena Okafor" {
		t.Fatalf("authors = %v", a.Authors)
	}
	if a.SEO.Description != "Override description." {
		t.Fatalf("seo description = %q", a.SEO.Description)
	}
	want := time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)
	if !a.PublishedAt.Equal(want) {
		t.Fatalf("published = %v", a.PublishedAt)
	}
	if !strings.Contains(string(a.Body), "<strong>four</strong>") {
		t.Fatalf("markdown not rendered: %s", a.Body)
	}
}

func TestGetSanitizesBody(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "articles", "en", "sneaky", "hello <script>alert(1)</script> world\n")
	s := NewStore(dir, "en")
	a, err := s.Get("articles", "sneaky", "en")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if strings.Contains(string(a.Body), "<script") {
		t.Fatalf("script survived sanitizing: %s", a.Body)
	}
}

func TestGetLanguageFallback(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "articles", "en", "only-english", "---\ntitle: Only English\n---\nbody\n")
	s := NewStore(dir, "en")
	a, err := s.Get("articles", "only-english", "ja")
	if err != nil {
		t.Fatalf("get with fallback: %v", err)
	}
	if a.Lang != "en" {
		t.Fatalf("lang = %q", a.Lang)
	}
}

func TestGetNotFound(t *testing.T) {
	s := NewStore(t.TempDir(), "en")
	_, err := s.Get("articles", "missing", "en")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// traversal attempts collapse to not found
	if _, err := s.Get("articles", "../secret", "en"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for traversal, got %v", err)
	}
}

func TestTitleFallsBackToSlug(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "pages", "en", "shipping-notes", "no front matter here\n")
	s := NewStore(dir, "en")
	pg, err := s.Get("pages", "shipping-notes", "en")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if pg.Title != "Shipping Notes" {
		t.Fatalf("title = %q", pg.Title)
	}
}

func TestListMergesLanguagesNewestFirst(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "articles", "en", "older", "---\ntitle: Older\npublished_at: 2026-01-01\n---\nx\n")
	writeDoc(t, dir, "articles", "en", "newer", "---\ntitle: Newer\npublished_at: 2026-06-01\n---\nx\n")
	writeDoc(t, dir, "articles", "ja", "older", "---\ntitle: 古い\npublished_at: 2026-01-01\n---\nx\n")
	s := NewStore(dir, "en")

	list, err := s.List("articles", "ja")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(list))
	}
	if list[0].Slug != "newer" {
		t.Fatalf("expected newest first, got %s", list[0].Slug)
	}
	// the ja copy wins for the slug that has one
	if list[1].Title != "古い" {
		t.Fatalf("expected localized copy, got %q", list[1].Title)
	}
}

func TestFilter(t *testing.T) {
	articles := []Article{
		{Slug: "a", Title: "Shipping a sitemap", Summary: "Crawl hints.", Tags: []string{"crawling"}},
		{Slug: "b", Title: "Open Graph basics", Summary: "Preview tags.", Authors: []string{"Lena Okafor"}},
	}
	if got := Filter(articles, ""); len(got) != 2 {
		t.Fatalf("empty query should return everything, got %d", len(got))
	}
	if got := Filter(articles, "SITEMAP"); len(got) != 1 || got[0].Slug != "a" {
		t.Fatalf("title match = %v", got)
	}
	if got := Filter(articles, "crawling"); len(got) != 1 || got[0].Slug != "a" {
		t.Fatalf("tag match = %v", got)
	}
	if got := Filter(articles, "okafor"); len(got) != 1 || got[0].Slug != "b" {
		t.Fatalf("author match = %v", got)
	}
	if got := Filter(articles, "nothing-matches"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestCacheServesUntilTTL(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "articles", "en", "cached", "---\ntitle: First\n---\nx\n")
	s := NewStore(dir, "en")
	s.SetTTL(time.Hour)

	if _, err := s.Get("articles", "cached", "en"); err != nil {
		t.Fatalf("get: %v", err)
	}
	writeDoc(t, dir, "articles", "en", "cached", "---\ntitle: Second\n---\nx\n")
	a, err := s.Get("articles", "cached", "en")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.Title != "First" {
		t.Fatalf("expected cached copy, got %q", a.Title)
	}
}
