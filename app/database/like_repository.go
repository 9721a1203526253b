package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LikeRepository is the like ledger: one row per engagement event, timestamped
type LikeRepository struct {
	db *DB
}

func NewLikeRepository(db *DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// CountAll returns the all-time like count for an article
func (r *LikeRepository) CountAll(articleID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM likes WHERE article_id = ?`, articleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// CountSince returns the like count for an article with event time at or
// after the given instant (inclusive bound).
func (r *LikeRepository) CountSince(articleID string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM likes
		WHERE article_id = ?
		  AND liked_at >= ?
	`, articleID, formatTime(since)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes since %s: %w", since.Format(time.RFC3339), err)
	}
	return count, nil
}

// Record appends a like event to the ledger
func (r *LikeRepository) Record(articleID string, likedAt time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO likes (id, article_id, liked_at)
		VALUES (?, ?, ?)
	`, uuid.NewString(), articleID, formatTime(likedAt))
	if err != nil {
		return fmt.Errorf("failed to record like: %w", err)
	}
	return nil
}

// ReplaceForArticle rewrites the ledger for one article. Used by the content
// importer, which owns the full event history for seeded articles.
func (r *LikeRepository) ReplaceForArticle(articleID string, likedAt []time.Time) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM likes WHERE article_id = ?`, articleID); err != nil {
		return fmt.Errorf("failed to clear likes: %w", err)
	}

	for _, at := range likedAt {
		if _, err := tx.Exec(`
			INSERT INTO likes (id, article_id, liked_at)
			VALUES (?, ?, ?)
		`, uuid.NewString(), articleID, formatTime(at)); err != nil {
			return fmt.Errorf("failed to insert like: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit likes: %w", err)
	}

	return nil
}
