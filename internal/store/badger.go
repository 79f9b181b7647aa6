package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"petskub/internal/model"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore is an on-disk article store for local development. It is
// filled by `petskub seed` and read the same way as the managed store.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a Badger directory at path.
// Pass path="" for an in-memory store.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Silence default logger

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close cleans up the database handle
func (s *BadgerStore) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

func articleKey(id string) []byte {
	return []byte("article:" + id)
}

// Put stores an article, replacing any previous version.
func (s *BadgerStore) Put(_ context.Context, article *model.ArticleSummary) error {
	if article.ID == "" {
		return fmt.Errorf("article id is empty")
	}
	data, err := json.Marshal(article)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(articleKey(article.ID), data)
	})
}

// GetPublished returns the article only when it is published.
func (s *BadgerStore) GetPublished(_ context.Context, id string) (*model.ArticleSummary, error) {
	var article model.ArticleSummary
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(articleKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &article)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !article.Published {
		return nil, ErrNotFound
	}
	return &article, nil
}
