package robots

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/temoto/robotstxt"
)

// Group is one User-agent block: the agent token and its Allow/Disallow
// path prefixes, emitted in declaration order.
type Group struct {
	Agent    string
	Allow    []string
	Disallow []string
}

// Policy is the site-wide crawl policy. It is static: the same value is
// rendered on every request.
type Policy struct {
	Groups   []Group
	Sitemaps []string
	Host     string
}

// Render serializes the policy to robots.txt plain text.
func (p Policy) Render() string {
	var b strings.Builder
	for i, g := range p.Groups {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "User-agent: %s\n", g.Agent)
		for _, path := range g.Allow {
			fmt.Fprintf(&b, "Allow: %s\n", path)
		}
		for _, path := range g.Disallow {
			fmt.Fprintf(&b, "Disallow: %s\n", path)
		}
	}
	if p.Host != "" {
		fmt.Fprintf(&b, "\nHost: %s\n", p.Host)
	}
	if len(p.Sitemaps) > 0 {
		b.WriteString("\n")
		for _, s := range p.Sitemaps {
			fmt.Fprintf(&b, "Sitemap: %s\n", s)
		}
	}
	return b.String()
}

// Validate checks the policy before it is ever served: agents must be
// non-empty, sitemap pointers absolute, rule paths rooted, and the
// rendered text must round-trip through a robots.txt parser. When
// knownPrefixes is non-empty, every Disallow must fall under one of
// them, so the file never discloses paths the site does not route.
func (p Policy) Validate(knownPrefixes []string) error {
	if len(p.Groups) == 0 {
		return fmt.Errorf("robots: policy has no groups")
	}
	for _, g := range p.Groups {
		if strings.TrimSpace(g.Agent) == "" {
			return fmt.Errorf("robots: group with empty user-agent")
		}
		for _, path := range append(append([]string(nil), g.Allow...), g.Disallow...) {
			if path != "" && !strings.HasPrefix(path, "/") {
				return fmt.Errorf("robots: rule path %q is not rooted", path)
			}
		}
		for _, path := range g.Disallow {
			if len(knownPrefixes) > 0 && !underAny(path, knownPrefixes) {
				return fmt.Errorf("robots: disallow %q does not match any site route", path)
			}
		}
	}
	for _, s := range p.Sitemaps {
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("robots: sitemap %q is not an absolute URL", s)
		}
	}
	if _, err := robotstxt.FromString(p.Render()); err != nil {
		return fmt.Errorf("robots: rendered policy does not parse: %w", err)
	}
	return nil
}

// Allowed answers whether agent may fetch path under this policy, using
// the same parser crawlers use rather than re-implementing matching.
func (p Policy) Allowed(agent, path string) bool {
	data, err := robotstxt.FromString(p.Render())
	if err != nil {
		return true
	}
	return data.TestAgent(path, agent)
}

func underAny(path string, prefixes []string) bool {
	for _, pre := range prefixes {
		if pre == "" {
			continue
		}
		// the root is the home route, not a catch-all prefix
		if pre == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if path == pre || strings.HasPrefix(path, strings.TrimRight(pre, "/")+"/") {
			return true
		}
	}
	return false
}

// AllowAll returns the default open policy: every agent may fetch
// everything, with the sitemap advertised.
func AllowAll(sitemapURL string) Policy {
	return Policy{
		Groups:   []Group{{Agent: "*", Allow: []string{"/"}}},
		Sitemaps: []string{sitemapURL},
	}
}
