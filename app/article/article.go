package article

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const wordsPerMinute = 200

type Tag struct {
	ID   string
	Slug string
	Name string
}

type Series struct {
	ID    string
	Slug  string
	Title string
}

// Engagement holds like counts resolved from the like ledger at query time.
// Counts are derived, never stored on the article row.
type Engagement struct {
	Total    int
	Windowed int
}

type Article struct {
	ID          string
	Slug        string
	Title       string
	Body        string
	OriginalURL string
	PublishedAt *time.Time
	SeriesID    string
	// SeriesPosition orders articles within their series; zero means unset.
	SeriesPosition int
	Tags           []Tag
	Likes          Engagement
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsPublished reports whether the article is visible at the given instant.
// An article with no publication timestamp, or one scheduled in the future,
// is a draft.
func (a Article) IsPublished(now time.Time) bool {
	return a.PublishedAt != nil && !a.PublishedAt.After(now)
}

func (a Article) IsDraft(now time.Time) bool {
	return !a.IsPublished(now)
}

func (a Article) HasTag(slug string) bool {
	for _, tag := range a.Tags {
		if tag.Slug == slug {
			return true
		}
	}
	return false
}

// ReadTimeMinutes estimates reading time at 200 words per minute. Very short
// bodies still report one minute.
func (a Article) ReadTimeMinutes() int {
	words := len(strings.Fields(a.Body))
	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes == 0 {
		return 1
	}
	return minutes
}

// CanonicalURL prefers the original publication URL for crossposted articles
// and falls back to the article's own page.
func (a Article) CanonicalURL(baseURL string) string {
	if a.OriginalURL != "" {
		return a.OriginalURL
	}
	return fmt.Sprintf("%s/articles/%s", strings.TrimRight(baseURL, "/"), a.Slug)
}
