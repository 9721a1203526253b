package api

import (
	"time"

	"github.com/pressfeed/pressfeed/app/article"
	"github.com/pressfeed/pressfeed/app/feed"
)

// ArticleRepository is the read surface the HTTP layer needs from storage
type ArticleRepository interface {
	FindPublished(now time.Time) ([]article.Article, error)
	GetBySlug(slug string) (*article.Article, error)
	GetArticleCount() (int, error)
}

// TagRepository lists the tag catalog for the filter controls
type TagRepository interface {
	ListWithPublishedArticles(now time.Time) ([]article.Tag, error)
}

type GeneratorInterface interface {
	Run(articles []article.Article) (string, error)
}

var _ GeneratorInterface = (*feed.Generator)(nil)

type Handler struct {
	articleRepo ArticleRepository
	tagRepo     TagRepository
	ledger      feed.LikeLedger
	builder     *feed.Builder
	sessions    *Sessions
	generator   GeneratorInterface
}

// JSON views exposed to the rendering layer. Items arrive in final display
// order and already paginated; the renderer never sorts or slices.

type tagView struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type articleView struct {
	ID              string    `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Excerpt         string    `json:"excerpt"`
	ReadTimeMinutes int       `json:"read_time_minutes"`
	PublishedAt     time.Time `json:"published_at"`
	Tags            []tagView `json:"tags"`
	LikeCount       int       `json:"like_count"`
	CanonicalURL    string    `json:"canonical_url"`
}

type stateView struct {
	SelectedTag string `json:"selected_tag"`
	Sort        string `json:"sort"`
	Page        int    `json:"page"`
}

type feedView struct {
	State      stateView     `json:"state"`
	Items      []articleView `json:"items"`
	TotalCount int           `json:"total_count"`
	TotalPages int           `json:"total_pages"`
	PageSize   int           `json:"page_size"`
}
