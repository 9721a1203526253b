package content

import (
	"time"

	"github.com/pressfeed/pressfeed/app/article"
)

// File is one authored article on disk. The file name is the article's stable
// identity across re-imports; the slug is derived from the title.
type File struct {
	Title       string      `yaml:"title"`
	Body        string      `yaml:"body"`
	OriginalURL string      `yaml:"original_url"`
	PublishedAt *time.Time  `yaml:"published_at"`
	Tags        []string    `yaml:"tags"`
	Series      *SeriesRef  `yaml:"series"`
	Likes       []time.Time `yaml:"likes"`
}

type SeriesRef struct {
	Title    string `yaml:"title"`
	Position int    `yaml:"position"`
}

// ArticleStore is the write surface of the article storage used by imports
type ArticleStore interface {
	UpsertArticle(a article.Article) error
	SetTags(articleID string, tagIDs []string) error
	UpsertSeries(id, slug, title string) (string, error)
}

type TagStore interface {
	UpsertTag(id, slug, name string) (string, error)
}

type LikeStore interface {
	ReplaceForArticle(articleID string, likedAt []time.Time) error
}
