package database

import (
	"testing"
	"time"

	"github.com/pressfeed/pressfeed/app/article"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func testArticle(id, slug string, publishedAt *time.Time) article.Article {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return article.Article{
		ID:          id,
		Slug:        slug,
		Title:       "Title " + slug,
		Body:        "Some body text.",
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestArticleRepositoryFindPublished(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)

	now := time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	for _, a := range []article.Article{
		testArticle("a1", "published", &past),
		testArticle("a2", "scheduled", &future),
		testArticle("a3", "draft", nil),
		testArticle("a4", "published-on-boundary", &now),
	} {
		if err := repo.UpsertArticle(a); err != nil {
			t.Fatalf("Failed to upsert article %s: %v", a.ID, err)
		}
	}

	articles, err := repo.FindPublished(now)
	if err != nil {
		t.Fatalf("FindPublished failed: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("Expected 2 published articles, got %d", len(articles))
	}
	if articles[0].ID != "a1" || articles[1].ID != "a4" {
		t.Errorf("Expected articles a1, a4 in id order, got %s, %s", articles[0].ID, articles[1].ID)
	}
}

func TestArticleRepositoryUpsertIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)

	publishedAt := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	a := testArticle("a1", "first-slug", &publishedAt)

	if err := repo.UpsertArticle(a); err != nil {
		t.Fatalf("Failed to insert article: %v", err)
	}

	a.Title = "Updated Title"
	a.Slug = "updated-slug"
	if err := repo.UpsertArticle(a); err != nil {
		t.Fatalf("Failed to update article: %v", err)
	}

	count, err := repo.GetArticleCount()
	if err != nil {
		t.Fatalf("GetArticleCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 article after re-upsert, got %d", count)
	}

	got, err := repo.GetBySlug("updated-slug")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected article under updated slug, got nil")
	}
	if got.Title != "Updated Title" {
		t.Errorf("Expected updated title, got %q", got.Title)
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(publishedAt) {
		t.Errorf("Expected published_at to round-trip, got %v", got.PublishedAt)
	}

	if old, _ := repo.GetBySlug("first-slug"); old != nil {
		t.Error("Expected old slug to be gone after update")
	}
}

func TestArticleRepositoryGetBySlugMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)

	got, err := repo.GetBySlug("no-such-article")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for unknown slug, got %+v", got)
	}
}

func TestArticleTagsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	articleRepo := NewArticleRepository(db)
	tagRepo := NewTagRepository(db)

	now := time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	if err := articleRepo.UpsertArticle(testArticle("a1", "tagged", &past)); err != nil {
		t.Fatalf("Failed to upsert article: %v", err)
	}

	goID, err := tagRepo.UpsertTag("t1", "go", "Go")
	if err != nil {
		t.Fatalf("Failed to upsert tag: %v", err)
	}
	archID, err := tagRepo.UpsertTag("t2", "architecture", "Architecture")
	if err != nil {
		t.Fatalf("Failed to upsert tag: %v", err)
	}

	if err := articleRepo.SetTags("a1", []string{goID, archID}); err != nil {
		t.Fatalf("Failed to set tags: %v", err)
	}

	articles, err := articleRepo.FindPublished(now)
	if err != nil {
		t.Fatalf("FindPublished failed: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(articles))
	}

	tags := articles[0].Tags
	if len(tags) != 2 {
		t.Fatalf("Expected 2 tags attached, got %d", len(tags))
	}
	if tags[0].Name != "Architecture" || tags[1].Name != "Go" {
		t.Errorf("Expected tags in name order, got %q, %q", tags[0].Name, tags[1].Name)
	}

	// Replacing the set drops tags no longer present
	if err := articleRepo.SetTags("a1", []string{goID}); err != nil {
		t.Fatalf("Failed to replace tags: %v", err)
	}
	got, err := articleRepo.GetBySlug("tagged")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0].Slug != "go" {
		t.Errorf("Expected single go tag after replacement, got %+v", got.Tags)
	}
}

func TestTagRepositoryListWithPublishedArticles(t *testing.T) {
	db := setupTestDB(t)
	articleRepo := NewArticleRepository(db)
	tagRepo := NewTagRepository(db)

	now := time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	if err := articleRepo.UpsertArticle(testArticle("a1", "live", &past)); err != nil {
		t.Fatalf("Failed to upsert article: %v", err)
	}
	if err := articleRepo.UpsertArticle(testArticle("a2", "draft", nil)); err != nil {
		t.Fatalf("Failed to upsert article: %v", err)
	}

	liveID, _ := tagRepo.UpsertTag("t1", "go", "Go")
	draftOnlyID, _ := tagRepo.UpsertTag("t2", "secret", "Secret")

	if err := articleRepo.SetTags("a1", []string{liveID}); err != nil {
		t.Fatalf("Failed to set tags: %v", err)
	}
	if err := articleRepo.SetTags("a2", []string{draftOnlyID}); err != nil {
		t.Fatalf("Failed to set tags: %v", err)
	}

	tags, err := tagRepo.ListWithPublishedArticles(now)
	if err != nil {
		t.Fatalf("ListWithPublishedArticles failed: %v", err)
	}

	if len(tags) != 1 {
		t.Fatalf("Expected only tags with published articles, got %d", len(tags))
	}
	if tags[0].Slug != "go" {
		t.Errorf("Expected go tag, got %q", tags[0].Slug)
	}
}

func TestTagRepositoryUpsertKeepsIDOnConflict(t *testing.T) {
	db := setupTestDB(t)
	tagRepo := NewTagRepository(db)

	first, err := tagRepo.UpsertTag("t1", "go", "go")
	if err != nil {
		t.Fatalf("Failed to upsert tag: %v", err)
	}

	second, err := tagRepo.UpsertTag("t-other", "go", "Go")
	if err != nil {
		t.Fatalf("Failed to re-upsert tag: %v", err)
	}

	if first != second {
		t.Errorf("Expected same tag id on slug conflict, got %q and %q", first, second)
	}
}

func TestLikeRepositoryCounts(t *testing.T) {
	db := setupTestDB(t)
	articleRepo := NewArticleRepository(db)
	likeRepo := NewLikeRepository(db)

	now := time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	if err := articleRepo.UpsertArticle(testArticle("a1", "liked", &past)); err != nil {
		t.Fatalf("Failed to upsert article: %v", err)
	}

	windowStart := now.AddDate(0, 0, -7)
	events := []time.Time{
		now.AddDate(0, 0, -10),
		windowStart, // exactly on the window boundary
		now.AddDate(0, 0, -1),
	}
	for _, at := range events {
		if err := likeRepo.Record("a1", at); err != nil {
			t.Fatalf("Failed to record like: %v", err)
		}
	}

	total, err := likeRepo.CountAll("a1")
	if err != nil {
		t.Fatalf("CountAll failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected 3 total likes, got %d", total)
	}

	windowed, err := likeRepo.CountSince("a1", windowStart)
	if err != nil {
		t.Fatalf("CountSince failed: %v", err)
	}
	if windowed != 2 {
		t.Errorf("Expected 2 likes in window (boundary inclusive), got %d", windowed)
	}

	if count, _ := likeRepo.CountAll("missing"); count != 0 {
		t.Errorf("Expected 0 likes for unknown article, got %d", count)
	}
}

func TestLikeRepositoryReplaceForArticle(t *testing.T) {
	db := setupTestDB(t)
	articleRepo := NewArticleRepository(db)
	likeRepo := NewLikeRepository(db)

	now := time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	if err := articleRepo.UpsertArticle(testArticle("a1", "reseeded", &past)); err != nil {
		t.Fatalf("Failed to upsert article: %v", err)
	}

	if err := likeRepo.ReplaceForArticle("a1", []time.Time{past, past, past}); err != nil {
		t.Fatalf("Failed to seed likes: %v", err)
	}
	if err := likeRepo.ReplaceForArticle("a1", []time.Time{past}); err != nil {
		t.Fatalf("Failed to reseed likes: %v", err)
	}

	count, err := likeRepo.CountAll("a1")
	if err != nil {
		t.Fatalf("CountAll failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected ledger replaced with 1 event, got %d", count)
	}
}

func TestUpsertSeriesKeepsIDOnConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)

	first, err := repo.UpsertSeries("s1", "scaling-go", "Scaling Go")
	if err != nil {
		t.Fatalf("Failed to upsert series: %v", err)
	}

	second, err := repo.UpsertSeries("s-other", "scaling-go", "Scaling Go, Revisited")
	if err != nil {
		t.Fatalf("Failed to re-upsert series: %v", err)
	}

	if first != second {
		t.Errorf("Expected same series id on slug conflict, got %q and %q", first, second)
	}
}
