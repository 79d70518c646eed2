package sitemap

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func TestMarshalShape(t *testing.T) {
	mod := time.Date(2026, 7, 2, 15, 4, 5, 0, time.UTC)
	body, err := Marshal([]Entry{
		{Loc: "https://inkwave.example/", ChangeFreq: Daily, Priority: 1.0, LastMod: mod},
		{Loc: "https://inkwave.example/articles/shipping-a-sitemap", ChangeFreq: Weekly, Priority: 0.7, LastMod: mod},
		{Loc: "https://inkwave.example/pages/about"},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(body)
	if !strings.HasPrefix(out, xml.Header) {
		t.Fatal("missing XML header")
	}
	if !strings.Contains(out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
		t.Fatalf("missing urlset namespace:\n%s", out)
	}
	if !strings.Contains(out, "<lastmod>2026-07-02</lastmod>") {
		t.Fatalf("lastmod not in W3C date form:\n%s", out)
	}
	if !strings.Contains(out, "<priority>0.7</priority>") {
		t.Fatalf("priority missing:\n%s", out)
	}
	// the bare entry carries only its loc
	if strings.Count(out, "<lastmod>") != 2 {
		t.Fatalf("optional fields should be omitted:\n%s", out)
	}

	var parsed struct {
		URLs []struct {
			Loc string `xml:"loc"`
		} `xml:"url"`
	}
	if err := xml.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	if len(parsed.URLs) != 3 {
		t.Fatalf("expected 3 urls, got %d", len(parsed.URLs))
	}
}

func TestEntryValidate(t *testing.T) {
	good := Entry{Loc: "https://inkwave.example/", ChangeFreq: Monthly, Priority: 0.5}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}

	cases := []Entry{
		{Loc: "/relative"},
		{Loc: "https://inkwave.example/", ChangeFreq: "sometimes"},
		{Loc: "https://inkwave.example/", Priority: 1.5},
		{Loc: "https://inkwave.example/", Priority: -0.1},
	}
	for _, e := range cases {
		if err := e.Validate(); err == nil {
			t.Fatalf("expected error for %+v", e)
		}
	}
}

func TestMarshalRejectsInvalidEntry(t *testing.T) {
	_, err := Marshal([]Entry{{Loc: "https://inkwave.example/", Priority: 2}})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestChangeFreqEnum(t *testing.T) {
	for _, c := range []ChangeFreq{Always, Hourly, Daily, Weekly, Monthly, Yearly, Never, ""} {
		if !c.valid() {
			t.Fatalf("%q should be valid", c)
		}
	}
	if ChangeFreq("fortnightly").valid() {
		t.Fatal("unknown changefreq accepted")
	}
}
