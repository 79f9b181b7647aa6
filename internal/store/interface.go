package store

import (
	"context"
	"errors"

	"petskub/internal/model"
)

var (
	ErrNotFound = errors.New("article not found")
)

// ArticleStore reads published article summaries. Implementations must be
// safe for concurrent use and hold no per-request state.
type ArticleStore interface {
	GetPublished(ctx context.Context, id string) (*model.ArticleSummary, error)
}

// Columns is the projection every backend reads.
var Columns = []string{
	"id", "slug", "title", "meta_title", "meta_description",
	"og_title", "og_description", "og_image", "image_url", "image_alt",
	"content", "published",
}

const articleTable = "knowledge_articles"
