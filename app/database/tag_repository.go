package database

import (
	"fmt"
	"time"

	"github.com/pressfeed/pressfeed/app/article"
)

// TagRepository handles database operations for tags
type TagRepository struct {
	db *DB
}

func NewTagRepository(db *DB) *TagRepository {
	return &TagRepository{db: db}
}

// ListWithPublishedArticles returns the tags that have at least one article
// visible at the given instant, alphabetically by name. This feeds the filter
// controls; the feed query itself never consults it.
func (r *TagRepository) ListWithPublishedArticles(now time.Time) ([]article.Tag, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT t.id, t.slug, t.name
		FROM tags t
		JOIN article_tags at ON at.tag_id = t.id
		JOIN articles a ON a.id = at.article_id
		WHERE a.published_at IS NOT NULL
		  AND a.published_at <= ?
		ORDER BY t.name COLLATE NOCASE
	`, formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []article.Tag
	for rows.Next() {
		var tag article.Tag
		if err := rows.Scan(&tag.ID, &tag.Slug, &tag.Name); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}

	return tags, nil
}

// UpsertTag inserts or updates a tag keyed by slug and returns its id
func (r *TagRepository) UpsertTag(id, slug, name string) (string, error) {
	var tagID string
	err := r.db.QueryRow(`
		INSERT INTO tags (id, slug, name)
		VALUES (?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET name = excluded.name
		RETURNING id
	`, id, slug, name).Scan(&tagID)
	if err != nil {
		return "", fmt.Errorf("failed to upsert tag: %w", err)
	}
	return tagID, nil
}
