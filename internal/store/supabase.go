package store

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"petskub/internal/model"

	"github.com/supabase-community/postgrest-go"
)

// SupabaseStore reads articles through the PostgREST API of a Supabase project.
type SupabaseStore struct {
	restURL string
	key     string
	client  *http.Client
}

// NewSupabaseStore builds a store for projectURL authenticated with key.
// Requests go through client's transport and honor its timeout.
func NewSupabaseStore(projectURL, key string, client *http.Client) (*SupabaseStore, error) {
	if projectURL == "" {
		return nil, fmt.Errorf("supabase url is empty")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &SupabaseStore{
		restURL: strings.TrimSuffix(projectURL, "/") + "/rest/v1",
		key:     key,
		client:  client,
	}, nil
}

// ctxTransport binds every request sent by a postgrest client to ctx.
type ctxTransport struct {
	ctx  context.Context
	next http.RoundTripper
}

func (t ctxTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.next.RoundTrip(req.WithContext(t.ctx))
}

// rest returns a PostgREST client scoped to one lookup.
func (s *SupabaseStore) rest(ctx context.Context) *postgrest.Client {
	headers := map[string]string{}
	if s.key != "" {
		headers["apikey"] = s.key
	}
	c := postgrest.NewClient(s.restURL, "", headers)
	if s.key != "" {
		c.SetAuthToken(s.key)
	}

	next := s.client.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	c.Transport.Parent = ctxTransport{ctx: ctx, next: next}
	return c
}

// GetPublished fetches one published article by id.
func (s *SupabaseStore) GetPublished(ctx context.Context, id string) (*model.ArticleSummary, error) {
	if s.client.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.client.Timeout)
		defer cancel()
	}

	var rows []model.ArticleSummary
	_, err := s.rest(ctx).
		From(articleTable).
		Select(strings.Join(Columns, ","), "", false).
		Eq("id", id).
		Eq("published", "true").
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("supabase query failed: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
