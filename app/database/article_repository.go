package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pressfeed/pressfeed/app/article"
)

// ArticleRepository handles database operations for articles and series
type ArticleRepository struct {
	db *DB
}

func NewArticleRepository(db *DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// FindPublished returns every article visible at the given instant, with tags
// attached. Ordering is left to the caller; rows come back in id order so the
// result is stable for a fixed snapshot.
func (r *ArticleRepository) FindPublished(now time.Time) ([]article.Article, error) {
	rows, err := r.db.Query(`
		SELECT id, slug, title, body, original_url, COALESCE(series_id, ''),
		       COALESCE(series_position, 0), published_at, created_at, updated_at
		FROM articles
		WHERE published_at IS NOT NULL
		  AND published_at <= ?
		ORDER BY id
	`, formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("failed to query published articles: %w", err)
	}
	defer rows.Close()

	articles, err := r.scanArticles(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachTags(articles); err != nil {
		return nil, err
	}

	return articles, nil
}

// GetBySlug returns the article with the given slug, or nil if it does not
// exist. Publication status is not checked here; callers gate visibility.
func (r *ArticleRepository) GetBySlug(slug string) (*article.Article, error) {
	rows, err := r.db.Query(`
		SELECT id, slug, title, body, original_url, COALESCE(series_id, ''),
		       COALESCE(series_position, 0), published_at, created_at, updated_at
		FROM articles
		WHERE slug = ?
	`, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to query article by slug: %w", err)
	}
	defer rows.Close()

	articles, err := r.scanArticles(rows)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, nil
	}

	if err := r.attachTags(articles); err != nil {
		return nil, err
	}

	return &articles[0], nil
}

// UpsertArticle inserts or updates an article row keyed by id. The slug is
// covered by a unique index, so an import that maps two titles to one slug
// fails loudly instead of silently overwriting.
func (r *ArticleRepository) UpsertArticle(a article.Article) error {
	_, err := r.db.Exec(`
		INSERT INTO articles (id, slug, title, body, original_url, series_id, series_position, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, 0), ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			slug = excluded.slug,
			title = excluded.title,
			body = excluded.body,
			original_url = excluded.original_url,
			series_id = excluded.series_id,
			series_position = excluded.series_position,
			published_at = excluded.published_at,
			updated_at = excluded.updated_at
	`, a.ID, a.Slug, a.Title, a.Body, a.OriginalURL, a.SeriesID, a.SeriesPosition,
		formatNullTime(a.PublishedAt), formatTime(a.CreatedAt), formatTime(a.UpdatedAt))

	if err != nil {
		return fmt.Errorf("failed to upsert article: %w", err)
	}

	return nil
}

// SetTags replaces the tag set of an article
func (r *ArticleRepository) SetTags(articleID string, tagIDs []string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM article_tags WHERE article_id = ?`, articleID); err != nil {
		return fmt.Errorf("failed to clear article tags: %w", err)
	}

	for _, tagID := range tagIDs {
		if _, err := tx.Exec(`INSERT INTO article_tags (article_id, tag_id) VALUES (?, ?)`, articleID, tagID); err != nil {
			return fmt.Errorf("failed to attach tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit article tags: %w", err)
	}

	return nil
}

// UpsertSeries inserts or updates a series keyed by slug and returns its id
func (r *ArticleRepository) UpsertSeries(id, slug, title string) (string, error) {
	var seriesID string
	err := r.db.QueryRow(`
		INSERT INTO series (id, slug, title)
		VALUES (?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET title = excluded.title
		RETURNING id
	`, id, slug, title).Scan(&seriesID)
	if err != nil {
		return "", fmt.Errorf("failed to upsert series: %w", err)
	}
	return seriesID, nil
}

// GetArticleCount returns the total number of articles, drafts included
func (r *ArticleRepository) GetArticleCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}

func (r *ArticleRepository) scanArticles(rows *sql.Rows) ([]article.Article, error) {
	var articles []article.Article
	for rows.Next() {
		var a article.Article
		var publishedAt sql.NullString
		var createdAt, updatedAt string

		err := rows.Scan(&a.ID, &a.Slug, &a.Title, &a.Body, &a.OriginalURL,
			&a.SeriesID, &a.SeriesPosition, &publishedAt, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}

		if a.PublishedAt, err = parseNullTime(publishedAt); err != nil {
			return nil, err
		}
		if a.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}

		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}

// attachTags loads the tag sets for the given articles in one query. Tags are
// attached in name order, which is the stable order the rendering layer shows.
func (r *ArticleRepository) attachTags(articles []article.Article) error {
	if len(articles) == 0 {
		return nil
	}

	placeholders := make([]string, len(articles))
	args := make([]any, len(articles))
	index := make(map[string]*article.Article, len(articles))
	for i := range articles {
		placeholders[i] = "?"
		args[i] = articles[i].ID
		index[articles[i].ID] = &articles[i]
	}

	rows, err := r.db.Query(fmt.Sprintf(`
		SELECT at.article_id, t.id, t.slug, t.name
		FROM article_tags at
		JOIN tags t ON t.id = at.tag_id
		WHERE at.article_id IN (%s)
		ORDER BY t.name COLLATE NOCASE
	`, strings.Join(placeholders, ", ")), args...)
	if err != nil {
		return fmt.Errorf("failed to query article tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var articleID string
		var tag article.Tag
		if err := rows.Scan(&articleID, &tag.ID, &tag.Slug, &tag.Name); err != nil {
			return fmt.Errorf("failed to scan tag row: %w", err)
		}
		if a, ok := index[articleID]; ok {
			a.Tags = append(a.Tags, tag)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating tag rows: %w", err)
	}

	return nil
}
