package views

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kodaklens/kodaklens/story"
)

func TestClassNames(t *testing.T) {
	got := ClassNames("p-4 border", "", "border bg-white  p-4")
	if got != "p-4 border bg-white" {
		t.Fatalf("unexpected classes %q", got)
	}
}

func TestStoryJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "KodakLens", URL: "https://kodaklens.test"}
	s := story.DefaultStories()[0]

	var ld map[string]any
	if err := json.Unmarshal([]byte(StoryJsonLD(cfg, s)), &ld); err != nil {
		t.Fatal(err)
	}
	if ld["url"] != "https://kodaklens.test/story/sample-story/" {
		t.Fatalf("unexpected url %v", ld["url"])
	}
	if ld["keywords"] != "landscape, golden-hour, nature, photography" {
		t.Fatalf("unexpected keywords %v", ld["keywords"])
	}
}

func TestStoryEscapesContent(t *testing.T) {
	s := story.Story{Slug: "x", Title: `<script>alert(1)</script>`, Template: story.Classic}
	var buf bytes.Buffer
	if err := Story(StoryPage{Site: SiteConfig{Name: "KodakLens"}, Story: s}).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Fatalf("title was not escaped")
	}
}

func TestPagesRender(t *testing.T) {
	site := SiteConfig{Name: "KodakLens", URL: "https://kodaklens.test"}
	var buf bytes.Buffer
	if err := Home(HomePage{Site: site, Templates: story.Templates, Selected: story.Classic}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("home: %v", err)
	}
	buf.Reset()
	if err := NotFound(site).Render(context.Background(), &buf); err != nil {
		t.Fatalf("not found: %v", err)
	}
	if !strings.Contains(buf.String(), "<title>Story Not Found</title>") {
		t.Fatalf("unexpected not-found page")
	}
	buf.Reset()
	if err := ServerError(site).Render(context.Background(), &buf); err != nil {
		t.Fatalf("server error: %v", err)
	}
}
