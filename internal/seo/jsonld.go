package seo

import (
	"encoding/json"
	"time"
)

const schemaContext = "https://schema.org"

// JSON marshals a structured-data block to a compact JSON string. It
// returns an empty string on error so templates can skip the script tag.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal Organization block.
func Organization(name, siteURL, logoURL string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     name,
	}
	if siteURL != "" {
		m["url"] = siteURL
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	return m
}

// WebSite returns a WebSite block, with a SearchAction when a search
// endpoint is provided. The target gets the placeholder appended so
// crawlers know where the query term goes.
func WebSite(name, siteURL, searchURL string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "WebSite",
		"name":     name,
	}
	if siteURL != "" {
		m["url"] = siteURL
	}
	if searchURL != "" {
		m["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      searchURL + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return m
}

// BreadcrumbItem maps a crumb name to its absolute URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds a schema.org BreadcrumbList; positions are 1-based.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		entry := map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
		}
		if it.Item != "" {
			entry["item"] = it.Item
		}
		el = append(el, entry)
	}
	return map[string]any{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// ArticleInfo carries the fields of an Article block. Zero-value fields
// are omitted from the output.
type ArticleInfo struct {
	Headline    string
	Description string
	URL         string
	Image       string
	Authors     []string
	Published   time.Time
	Modified    time.Time
}

// Article builds a schema.org Article block from info.
func Article(info ArticleInfo) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Article",
		"headline": info.Headline,
	}
	if info.Description != "" {
		m["description"] = info.Description
	}
	if info.URL != "" {
		m["url"] = info.URL
		m["mainEntityOfPage"] = info.URL
	}
	if info.Image != "" {
		m["image"] = info.Image
	}
	if len(info.Authors) == 1 {
		m["author"] = person(info.Authors[0])
	} else if len(info.Authors) > 1 {
		authors := make([]map[string]any, 0, len(info.Authors))
		for _, a := range info.Authors {
			authors = append(authors, person(a))
		}
		m["author"] = authors
	}
	if !info.Published.IsZero() {
		m["datePublished"] = info.Published.Format(time.RFC3339)
	}
	if !info.Modified.IsZero() {
		m["dateModified"] = info.Modified.Format(time.RFC3339)
	}
	return m
}

func person(name string) map[string]any {
	return map[string]any{"@type": "Person", "name": name}
}

// Product builds a minimal Product block.
func Product(name, description, productURL, imageURL, sku string) map[string]any {
	m := map[string]any{
		"@context":    schemaContext,
		"@type":       "Product",
		"name":        name,
		"description": description,
	}
	if productURL != "" {
		m["url"] = productURL
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if sku != "" {
		m["sku"] = sku
	}
	return m
}
