package article

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
)

const DefaultExcerptLength = 100

// Excerpt returns a plain-text preview of the body: markdown is rendered to
// HTML, markup is stripped, whitespace is collapsed and the result is
// truncated to limit characters with a trailing marker when cut.
func (a Article) Excerpt(limit int) string {
	if limit <= 0 {
		limit = DefaultExcerptLength
	}
	return truncate(PlainText(a.Body), limit)
}

// RenderHTML converts the markdown body to HTML for article pages.
func (a Article) RenderHTML() (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(a.Body), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PlainText strips all markup from a markdown document and collapses
// whitespace runs into single spaces.
func PlainText(markdown string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return strings.Join(strings.Fields(markdown), " ")
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return strings.Join(strings.Fields(markdown), " ")
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimRight(string(runes[:limit]), " ") + "..."
}
