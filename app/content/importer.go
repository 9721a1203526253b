package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/pressfeed/pressfeed/app/article"
)

// contentNamespace seeds deterministic ids, so re-importing a file updates
// the same rows instead of duplicating them.
var contentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("pressfeed/content"))

// Importer synchronizes the content directory into storage. It is the local
// stand-in for the external authoring workflow: everything downstream of it
// (the feed engine) only reads.
type Importer struct {
	contentDir  string
	articleRepo ArticleStore
	tagRepo     TagStore
	likeRepo    LikeStore
}

func NewImporter(contentDir string, articleRepo ArticleStore, tagRepo TagStore, likeRepo LikeStore) *Importer {
	return &Importer{
		contentDir:  contentDir,
		articleRepo: articleRepo,
		tagRepo:     tagRepo,
		likeRepo:    likeRepo,
	}
}

// Run imports every content file and returns the number imported. A broken
// file is logged and skipped; it never aborts the rest of the import.
func (im *Importer) Run() (int, error) {
	if _, err := os.Stat(im.contentDir); os.IsNotExist(err) {
		return 0, nil
	}

	files, err := filepath.Glob(filepath.Join(im.contentDir, "*.yml"))
	if err != nil {
		return 0, fmt.Errorf("failed to find content files: %w", err)
	}

	// Deterministic file order keeps slug collision suffixes stable
	sort.Strings(files)

	imported := 0
	takenSlugs := make(map[string]string)
	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".yml")

		if err := im.importFile(name, file, takenSlugs); err != nil {
			slog.Warn("Failed to import content file", "file", file, "error", err)
			continue
		}

		imported++
	}

	return imported, nil
}

func (im *Importer) importFile(name, path string, takenSlugs map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validate(&f); err != nil {
		return err
	}

	id := uuid.NewSHA1(contentNamespace, []byte("article/"+name)).String()
	slug, err := uniqueSlug(f.Title, id, takenSlugs)
	if err != nil {
		return err
	}

	a := article.Article{
		ID:          id,
		Slug:        slug,
		Title:       f.Title,
		Body:        f.Body,
		OriginalURL: f.OriginalURL,
		PublishedAt: f.PublishedAt,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if f.Series != nil {
		seriesSlug := article.Slugify(f.Series.Title)
		seriesID, err := im.articleRepo.UpsertSeries(
			uuid.NewSHA1(contentNamespace, []byte("series/"+seriesSlug)).String(),
			seriesSlug, f.Series.Title)
		if err != nil {
			return err
		}
		a.SeriesID = seriesID
		a.SeriesPosition = f.Series.Position
	}

	if err := im.articleRepo.UpsertArticle(a); err != nil {
		return err
	}

	tagIDs := make([]string, 0, len(f.Tags))
	for _, tagName := range f.Tags {
		tagSlug := article.Slugify(tagName)
		if tagSlug == "" {
			return fmt.Errorf("tag %q produces an empty slug", tagName)
		}
		tagID, err := im.tagRepo.UpsertTag(
			uuid.NewSHA1(contentNamespace, []byte("tag/"+tagSlug)).String(),
			tagSlug, tagName)
		if err != nil {
			return err
		}
		tagIDs = append(tagIDs, tagID)
	}
	if err := im.articleRepo.SetTags(a.ID, tagIDs); err != nil {
		return err
	}

	if err := im.likeRepo.ReplaceForArticle(a.ID, f.Likes); err != nil {
		return err
	}

	slog.Debug("Content imported", "article", slug, "tags", len(tagIDs), "published", a.PublishedAt != nil)

	return nil
}

func validate(f *File) error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(f.Body) == "" {
		return fmt.Errorf("body is required")
	}
	return nil
}

// uniqueSlug derives the slug from the title and appends a numeric suffix
// when another article already claimed it within this import.
func uniqueSlug(title, articleID string, taken map[string]string) (string, error) {
	base := article.Slugify(title)
	if base == "" {
		return "", fmt.Errorf("title %q produces an empty slug", title)
	}

	slug := base
	for i := 2; ; i++ {
		owner, exists := taken[slug]
		if !exists || owner == articleID {
			break
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}

	taken[slug] = articleID
	return slug, nil
}
