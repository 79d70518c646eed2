package nav

import (
	"path"
	"strings"
)

// Item is one top-level navigation entry.
type Item struct {
	Path     string // e.g. "/articles"
	LabelKey string // i18n key, e.g. "nav.articles"
}

// RenderedItem is the template view of an item.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb is one breadcrumb entry. Label is used when LabelKey is empty.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/articles", LabelKey: "nav.articles"},
	{Path: "/pages/about", LabelKey: "nav.about"},
}

// Build renders the navigation with active state for the current path.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     it.Path,
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs derives the crumb trail from the current path: Home
// first, then one crumb per segment with a prettified label.
func Breadcrumbs(currentPath string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}
	clean := path.Clean(currentPath)
	if clean == "." {
		clean = "/"
	}
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	href := ""
	for i, part := range parts {
		if part == "" {
			continue
		}
		href += "/" + part
		crumb := Crumb{
			Href:   href,
			Label:  titleFromSegment(part),
			Active: i == len(parts)-1,
		}
		if i == 0 {
			for _, it := range Main {
				if it.Path == href {
					crumb.LabelKey = it.LabelKey
					break
				}
			}
		}
		crumbs = append(crumbs, crumb)
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
