package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"time"

	"github.com/pressfeed/pressfeed/app/article"
	"github.com/pressfeed/pressfeed/app/cfg"
)

// Generator renders the public RSS 2.0 feed of published articles. Items are
// expected in final display order (most recent first).
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Run(articles []article.Article) (string, error) {
	c := cfg.Get()

	baseURL := c.BaseUrl
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%s", c.Port)
	}

	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", c.SiteTitle, 4)
	g.writeElement(&buf, "link", baseURL, 4)
	g.writeElement(&buf, "description", c.SiteDescription, 4)

	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(baseURL+"/rss")))

	lastBuildDate := time.Now().In(time.Local)
	if len(articles) > 0 && articles[0].PublishedAt != nil {
		lastBuildDate = *articles[0].PublishedAt
	}
	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Pressfeed/%s", c.Version), 4)

	for _, a := range articles {
		if err := g.writeItem(&buf, a, baseURL, c.ExcerptLength); err != nil {
			return "", err
		}
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, a article.Article, baseURL string, excerptLength int) error {
	buf.WriteString("    <item>\n")

	buf.WriteString(`      <guid isPermaLink="false">`)
	xml.EscapeText(buf, []byte(a.ID))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", a.Title, 6)
	g.writeElement(buf, "link", a.CanonicalURL(baseURL), 6)
	g.writeElement(buf, "description", a.Excerpt(excerptLength), 6)

	body, err := a.RenderHTML()
	if err != nil {
		return fmt.Errorf("failed to render article %s: %w", a.Slug, err)
	}
	buf.WriteString("      <content:encoded><![CDATA[")
	buf.WriteString(body)
	buf.WriteString("]]></content:encoded>\n")

	if a.PublishedAt != nil {
		g.writeElement(buf, "pubDate", a.PublishedAt.Format(time.RFC1123Z), 6)
	}

	for _, tag := range a.Tags {
		g.writeElement(buf, "category", tag.Name, 6)
	}

	buf.WriteString("    </item>\n")

	return nil
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
