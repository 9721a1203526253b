package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pressfeed/pressfeed/app/article"
	"github.com/pressfeed/pressfeed/app/cfg"
	"github.com/pressfeed/pressfeed/app/feed"
)

const sessionCookie = "feed_session"

func NewHandler(articleRepo ArticleRepository, tagRepo TagRepository,
	ledger feed.LikeLedger, builder *feed.Builder, sessions *Sessions) *Handler {
	return &Handler{
		articleRepo: articleRepo,
		tagRepo:     tagRepo,
		ledger:      ledger,
		builder:     builder,
		sessions:    sessions,
		generator:   feed.NewGenerator(),
	}
}

// GetFeed returns the session's current feed view without mutating state
func (h *Handler) GetFeed(c *gin.Context) {
	view, err := h.controller(c).Current()
	if err != nil {
		slog.Error("Feed query failed", "operation", "current", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Feed unavailable"})
		return
	}

	c.JSON(http.StatusOK, h.renderFeed(view))
}

// ToggleTag selects or clears the tag filter for the session
func (h *Handler) ToggleTag(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing tag slug"})
		return
	}

	view, err := h.controller(c).ToggleTag(slug)
	if err != nil {
		slog.Error("Feed query failed", "operation", "toggle_tag", "tag", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Feed unavailable"})
		return
	}

	c.JSON(http.StatusOK, h.renderFeed(view))
}

// SortBy switches the session's ranking mode
func (h *Handler) SortBy(c *gin.Context) {
	mode, err := feed.ParseSortMode(c.Param("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown sort mode"})
		return
	}

	view, err := h.controller(c).SortBy(mode)
	if err != nil {
		slog.Error("Feed query failed", "operation", "sort_by", "mode", string(mode), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Feed unavailable"})
		return
	}

	c.JSON(http.StatusOK, h.renderFeed(view))
}

// GoToPage moves the session to another page of the current filter context
func (h *Handler) GoToPage(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page number"})
		return
	}

	view, err := h.controller(c).GoToPage(n)
	if err != nil {
		if errors.Is(err, feed.ErrInvalidPage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Page out of range"})
			return
		}
		slog.Error("Feed query failed", "operation", "go_to_page", "page", n, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Feed unavailable"})
		return
	}

	c.JSON(http.StatusOK, h.renderFeed(view))
}

// ListTags returns the tags that currently have published articles,
// alphabetically, for rendering the filter controls
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.tagRepo.ListWithPublishedArticles(time.Now())
	if err != nil {
		slog.Error("Database error", "operation", "list_tags", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	views := make([]tagView, 0, len(tags))
	for _, tag := range tags {
		views = append(views, tagView{Slug: tag.Slug, Name: tag.Name})
	}

	c.JSON(http.StatusOK, gin.H{"tags": views, "total": len(views)})
}

// GetArticle returns one article page. Drafts 404 like unknown slugs, so
// unpublished work is indistinguishable from absent.
func (h *Handler) GetArticle(c *gin.Context) {
	slug := c.Param("slug")

	a, err := h.articleRepo.GetBySlug(slug)
	if err != nil {
		slog.Error("Database error", "operation", "get_article", "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if a == nil || !a.IsPublished(time.Now()) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	body, err := a.RenderHTML()
	if err != nil {
		slog.Error("Markdown rendering failed", "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rendering failed"})
		return
	}

	likeCount, err := h.ledger.CountAll(a.ID)
	if err != nil {
		slog.Error("Database error", "operation", "count_likes", "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	tags := make([]tagView, 0, len(a.Tags))
	for _, tag := range a.Tags {
		tags = append(tags, tagView{Slug: tag.Slug, Name: tag.Name})
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                a.ID,
		"slug":              a.Slug,
		"title":             a.Title,
		"body_html":         body,
		"read_time_minutes": a.ReadTimeMinutes(),
		"published_at":      a.PublishedAt,
		"tags":              tags,
		"like_count":        likeCount,
		"canonical_url":     a.CanonicalURL(baseURL()),
	})
}

// GetRSS serves the public RSS feed of the most recent published articles
func (h *Handler) GetRSS(c *gin.Context) {
	result, err := h.builder.Run(feed.Filter{Sort: feed.SortRecent}, 1)
	if err != nil {
		slog.Error("Feed query failed", "operation", "rss", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	rss, err := h.generator.Run(result.Items)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if articleCount, err := h.articleRepo.GetArticleCount(); err == nil {
		health["articles"] = articleCount
	}

	health["active_sessions"] = h.sessions.Count()

	c.JSON(http.StatusOK, health)
}

// controller resolves the feed controller for the request's session,
// assigning a session cookie on first contact.
func (h *Handler) controller(c *gin.Context) *feed.Controller {
	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		id = uuid.NewString()
		c.SetCookie(sessionCookie, id, cfg.Get().SessionTTL, "/", "", false, true)
	}
	return h.sessions.Get(id)
}

func (h *Handler) renderFeed(view feed.View) feedView {
	excerptLength := cfg.Get().ExcerptLength
	base := baseURL()

	items := make([]articleView, 0, len(view.Result.Items))
	for _, a := range view.Result.Items {
		items = append(items, renderArticle(a, excerptLength, base))
	}

	return feedView{
		State: stateView{
			SelectedTag: view.State.SelectedTag,
			Sort:        string(view.State.Sort),
			Page:        view.State.Page,
		},
		Items:      items,
		TotalCount: view.Result.TotalCount,
		TotalPages: view.Result.TotalPages(),
		PageSize:   view.Result.PageSize,
	}
}

func renderArticle(a article.Article, excerptLength int, base string) articleView {
	tags := make([]tagView, 0, len(a.Tags))
	for _, tag := range a.Tags {
		tags = append(tags, tagView{Slug: tag.Slug, Name: tag.Name})
	}

	view := articleView{
		ID:              a.ID,
		Slug:            a.Slug,
		Title:           a.Title,
		Excerpt:         a.Excerpt(excerptLength),
		ReadTimeMinutes: a.ReadTimeMinutes(),
		Tags:            tags,
		LikeCount:       a.Likes.Total,
		CanonicalURL:    a.CanonicalURL(base),
	}
	if a.PublishedAt != nil {
		view.PublishedAt = *a.PublishedAt
	}

	return view
}

func baseURL() string {
	c := cfg.Get()
	if c.BaseUrl != "" {
		return c.BaseUrl
	}
	return "http://localhost:" + c.Port
}
