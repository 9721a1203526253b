package database

import (
	"github.com/pressfeed/pressfeed/app/content"
	"github.com/pressfeed/pressfeed/app/feed"
)

// Compile-time checks that the repositories satisfy the read contracts of the
// feed engine and the write contracts of the content importer.
var (
	_ feed.ArticleStore = (*ArticleRepository)(nil)
	_ feed.LikeLedger   = (*LikeRepository)(nil)

	_ content.ArticleStore = (*ArticleRepository)(nil)
	_ content.TagStore     = (*TagRepository)(nil)
	_ content.LikeStore    = (*LikeRepository)(nil)
)
