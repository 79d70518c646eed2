package robots

import (
	"strings"
	"testing"
)

func testPolicy() Policy {
	return Policy{
		Groups: []Group{
			{Agent: "*", Allow: []string{"/"}, Disallow: []string{"/healthz"}},
			{Agent: "GPTBot", Disallow: []string{"/articles/"}},
		},
		Sitemaps: []string{"https://inkwave.example/sitemap.xml"},
	}
}

func TestRenderShape(t *testing.T) {
	out := testPolicy().Render()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "User-agent: *" {
		t.Fatalf("first line = %q", lines[0])
	}
	if !strings.Contains(out, "Disallow: /healthz") {
		t.Fatalf("missing disallow line:\n%s", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "Sitemap: https://inkwave.example/sitemap.xml") {
		t.Fatalf("sitemap should be last:\n%s", out)
	}
	// static record: identical output on every call
	if out != testPolicy().Render() {
		t.Fatal("render is not stable")
	}
}

func TestAllowedRoundTrip(t *testing.T) {
	p := testPolicy()
	if !p.Allowed("Googlebot", "/articles/open-graph-basics") {
		t.Fatal("generic agent should reach articles")
	}
	if p.Allowed("Googlebot", "/healthz") {
		t.Fatal("healthz should be disallowed for everyone")
	}
	if p.Allowed("GPTBot", "/articles/open-graph-basics") {
		t.Fatal("GPTBot should be kept out of articles")
	}
	if !p.Allowed("GPTBot", "/pages/about") {
		t.Fatal("GPTBot group only blocks articles")
	}
}

func TestValidateKnownPrefixes(t *testing.T) {
	known := []string{"/", "/articles", "/pages", "/healthz"}
	if err := testPolicy().Validate(known); err != nil {
		t.Fatalf("valid policy rejected: %v", err)
	}
	p := testPolicy()
	p.Groups[0].Disallow = append(p.Groups[0].Disallow, "/admin")
	if err := p.Validate([]string{"/articles"}); err == nil {
		t.Fatal("expected error for disallow outside site routes")
	}
}

func TestValidateRootPrefixIsNotCatchAll(t *testing.T) {
	// "/" in the prefix list covers the home route only; it must not
	// let arbitrary disallow paths through.
	known := []string{"/", "/articles", "/pages", "/healthz"}
	p := testPolicy()
	p.Groups[0].Disallow = append(p.Groups[0].Disallow, "/wp-admin")
	if err := p.Validate(known); err == nil {
		t.Fatal("expected error for /wp-admin against route list containing /")
	}

	p = testPolicy()
	p.Groups[0].Disallow = []string{"/"}
	if err := p.Validate(known); err != nil {
		t.Fatalf("disallowing the root itself should be accepted: %v", err)
	}
}

func TestValidateRejectsBadInput(t *testing.T) {
	p := testPolicy()
	p.Groups[0].Agent = " "
	if err := p.Validate(nil); err == nil {
		t.Fatal("expected error for empty agent")
	}

	p = testPolicy()
	p.Sitemaps = []string{"/sitemap.xml"}
	if err := p.Validate(nil); err == nil {
		t.Fatal("expected error for relative sitemap URL")
	}

	p = testPolicy()
	p.Groups[1].Disallow = []string{"articles"}
	if err := p.Validate(nil); err == nil {
		t.Fatal("expected error for unrooted rule path")
	}

	if err := (Policy{}).Validate(nil); err == nil {
		t.Fatal("expected error for empty policy")
	}
}

func TestAllowAll(t *testing.T) {
	p := AllowAll("https://inkwave.example/sitemap.xml")
	if err := p.Validate(nil); err != nil {
		t.Fatalf("default policy invalid: %v", err)
	}
	if !p.Allowed("anybot", "/anything/at/all") {
		t.Fatal("default policy should allow everything")
	}
}
