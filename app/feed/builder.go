package feed

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pressfeed/pressfeed/app/article"
	"github.com/pressfeed/pressfeed/app/cfg"
)

// Builder computes one feed page from filter state. It is a pure read over a
// snapshot of the article store and like ledger: no writes, no locks, safe to
// call concurrently from independent sessions.
type Builder struct {
	store    ArticleStore
	ledger   LikeLedger
	pageSize int
	window   time.Duration
	clock    func() time.Time
}

func NewBuilder(store ArticleStore, ledger LikeLedger) *Builder {
	c := cfg.Get()
	return &Builder{
		store:    store,
		ledger:   ledger,
		pageSize: c.PageSize,
		window:   time.Duration(c.TrendingWindowDays) * 24 * time.Hour,
		clock:    time.Now,
	}
}

// Run resolves the filtered, ranked, paginated result set. The evaluation
// instant is taken once so publication and window boundaries cannot flicker
// within a single query. A page beyond the last valid one yields empty items
// with the correct total count.
func (b *Builder) Run(filter Filter, page int) (*Result, error) {
	if _, err := ParseSortMode(string(filter.Sort)); err != nil {
		return nil, err
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}

	clock := b.clock
	if clock == nil {
		clock = time.Now
	}
	now := clock()

	articles, err := b.store.FindPublished(now)
	if err != nil {
		return nil, fmt.Errorf("article store unavailable: %w", err)
	}

	filtered := make([]article.Article, 0, len(articles))
	for _, a := range articles {
		// Re-checked against the single snapshot even though the store
		// contract already excludes drafts.
		if !a.IsPublished(now) {
			continue
		}
		if filter.SelectedTag != "" && !a.HasTag(filter.SelectedTag) {
			continue
		}
		filtered = append(filtered, a)
	}

	since := now.Add(-b.window)
	for i := range filtered {
		total, err := b.ledger.CountAll(filtered[i].ID)
		if err != nil {
			return nil, fmt.Errorf("like ledger unavailable: %w", err)
		}
		windowed, err := b.ledger.CountSince(filtered[i].ID, since)
		if err != nil {
			return nil, fmt.Errorf("like ledger unavailable: %w", err)
		}
		filtered[i].Likes = article.Engagement{Total: total, Windowed: windowed}
	}

	slices.SortFunc(filtered, rankComparator(filter.Sort))

	total := len(filtered)
	items := []article.Article{}
	if start := (page - 1) * b.pageSize; start < total {
		items = filtered[start:min(start+b.pageSize, total)]
	}

	return &Result{
		Items:       items,
		TotalCount:  total,
		CurrentPage: page,
		PageSize:    b.pageSize,
	}, nil
}

// rankComparator returns a total order for the given mode. Every mode falls
// through to publication time descending and then id ascending, so a fixed
// snapshot always produces identical ordering and pagination stays
// reproducible across calls.
func rankComparator(mode SortMode) func(a, b article.Article) int {
	return func(a, b article.Article) int {
		switch mode {
		case SortPopular:
			if c := cmp.Compare(b.Likes.Total, a.Likes.Total); c != 0 {
				return c
			}
		case SortTrending:
			if c := cmp.Compare(b.Likes.Windowed, a.Likes.Windowed); c != 0 {
				return c
			}
		}

		// Only published articles reach ranking, so PublishedAt is set.
		if c := b.PublishedAt.Compare(*a.PublishedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	}
}
