package store

import (
	"context"
	"errors"
	"fmt"

	"petskub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the part of *pgxpool.Pool the store uses. pgxmock pools
// satisfy it in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

const selectPublishedArticle = `
	SELECT id::text, COALESCE(slug, ''), COALESCE(title, ''),
	       COALESCE(meta_title, ''), COALESCE(meta_description, ''),
	       COALESCE(og_title, ''), COALESCE(og_description, ''),
	       COALESCE(og_image, ''), COALESCE(image_url, ''), COALESCE(image_alt, ''),
	       COALESCE(content, ''), published
	FROM knowledge_articles
	WHERE id = $1 AND published = true`

// PostgresStore reads articles straight from the Postgres database behind
// the managed service.
type PostgresStore struct {
	pool Querier
}

// NewPostgresStore wraps an existing pool.
func NewPostgresStore(pool Querier) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// OpenPostgresStore connects a pool to databaseURL.
func OpenPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return NewPostgresStore(pool), nil
}

// Close releases the pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// GetPublished fetches one published article by id. The id column is a
// uuid, so anything else cannot match and is not sent to the database.
func (s *PostgresStore) GetPublished(ctx context.Context, id string) (*model.ArticleSummary, error) {
	if s == nil || s.pool == nil {
		return nil, errors.New("database connection not available")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var a model.ArticleSummary
	err := s.pool.QueryRow(ctx, selectPublishedArticle, id).Scan(
		&a.ID,
		&a.Slug,
		&a.Title,
		&a.MetaTitle,
		&a.MetaDescription,
		&a.OGTitle,
		&a.OGDescription,
		&a.OGImage,
		&a.ImageURL,
		&a.ImageAlt,
		&a.Content,
		&a.Published,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}
	return &a, nil
}
