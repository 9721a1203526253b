package article

import (
	"strings"
	"testing"
	"time"
)

func TestIsPublished(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	draft := Article{Title: "Draft"}
	if draft.IsPublished(now) {
		t.Error("Article without publication timestamp should not be published")
	}
	if !draft.IsDraft(now) {
		t.Error("Article without publication timestamp should be a draft")
	}

	past := now.Add(-time.Hour)
	published := Article{Title: "Published", PublishedAt: &past}
	if !published.IsPublished(now) {
		t.Error("Article published an hour ago should be published")
	}

	future := now.Add(time.Hour)
	scheduled := Article{Title: "Scheduled", PublishedAt: &future}
	if scheduled.IsPublished(now) {
		t.Error("Article scheduled in the future should not be published")
	}

	// Publication exactly at the evaluation instant counts as published
	exact := Article{Title: "Exact", PublishedAt: &now}
	if !exact.IsPublished(now) {
		t.Error("Article published exactly at evaluation time should be published")
	}
}

func TestReadTimeMinutes(t *testing.T) {
	fiftyWords := Article{Body: strings.Repeat("word ", 50)}
	if got := fiftyWords.ReadTimeMinutes(); got != 1 {
		t.Errorf("Expected 1 minute for a 50-word body, got %d", got)
	}

	empty := Article{Body: ""}
	if got := empty.ReadTimeMinutes(); got != 1 {
		t.Errorf("Expected 1 minute for an empty body, got %d", got)
	}

	sixHundredWords := Article{Body: strings.Repeat("word ", 600)}
	if got := sixHundredWords.ReadTimeMinutes(); got != 3 {
		t.Errorf("Expected 3 minutes for a 600-word body, got %d", got)
	}
}

func TestHasTag(t *testing.T) {
	a := Article{Tags: []Tag{
		{Slug: "go", Name: "Go"},
		{Slug: "databases", Name: "Databases"},
	}}

	if !a.HasTag("go") {
		t.Error("Expected article to have tag 'go'")
	}
	if a.HasTag("rust") {
		t.Error("Did not expect article to have tag 'rust'")
	}
	if a.HasTag("Go") {
		t.Error("Tag matching is by slug, not display name")
	}
}

func TestCanonicalURL(t *testing.T) {
	own := Article{Slug: "writing-middleware"}
	got := own.CanonicalURL("https://blog.example.com/")
	if got != "https://blog.example.com/articles/writing-middleware" {
		t.Errorf("Unexpected canonical URL: %s", got)
	}

	crossposted := Article{Slug: "writing-middleware", OriginalURL: "https://elsewhere.example.com/post"}
	if crossposted.CanonicalURL("https://blog.example.com") != "https://elsewhere.example.com/post" {
		t.Error("Crossposted article should prefer its original URL")
	}
}
