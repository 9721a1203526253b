package feed

import (
	"errors"
	"fmt"
	"time"

	"github.com/pressfeed/pressfeed/app/article"
)

type SortMode string

const (
	SortRecent   SortMode = "recent"
	SortPopular  SortMode = "popular"
	SortTrending SortMode = "trending"
)

var (
	// ErrInvalidSortMode reports a sort mode outside the closed set. The
	// controller is the sole producer of modes, so hitting this is a
	// programming error, never a soft fallback to a default ordering.
	ErrInvalidSortMode = errors.New("invalid sort mode")

	// ErrInvalidPage reports a page request outside [1, last page]. The
	// transition is rejected and prior state kept.
	ErrInvalidPage = errors.New("page out of range")
)

func ParseSortMode(s string) (SortMode, error) {
	switch mode := SortMode(s); mode {
	case SortRecent, SortPopular, SortTrending:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortMode, s)
	}
}

// Filter is the ranking-relevant subset of feed state
type Filter struct {
	SelectedTag string
	Sort        SortMode
}

// State is the full interactive feed state owned by a Controller
type State struct {
	SelectedTag string
	Sort        SortMode
	Page        int
}

// Result is one computed feed page. Items carry hydrated engagement counts
// and are in final display order; callers never re-sort or re-slice.
type Result struct {
	Items       []article.Article
	TotalCount  int
	CurrentPage int
	PageSize    int
}

// TotalPages returns the number of valid pages; zero when the filtered set is
// empty.
func (r *Result) TotalPages() int {
	if r.TotalCount == 0 {
		return 0
	}
	return (r.TotalCount + r.PageSize - 1) / r.PageSize
}

// ArticleStore is the read contract against the article storage. FindPublished
// must return only articles visible at the given instant.
type ArticleStore interface {
	FindPublished(now time.Time) ([]article.Article, error)
}

// LikeLedger exposes aggregate counts over engagement events
type LikeLedger interface {
	CountAll(articleID string) (int, error)
	CountSince(articleID string, since time.Time) (int, error)
}
