// Package repository loads the reference dataset and serves it read-only.
package repository

import (
	"context"

	"github.com/okian/horsepower/internal/domain/model"
)

// Store provides read access to the reference dataset.
type Store interface {
	// Dataset returns the immutable dataset loaded at startup.
	Dataset(ctx context.Context) *model.Dataset

	// Count returns the number of rows in the dataset.
	Count(ctx context.Context) int

	// CompleteCount returns the number of rows eligible for nearest-match search.
	CompleteCount(ctx context.Context) int

	// Source describes where the dataset came from.
	Source() string
}

// MemoryStore holds a dataset in memory. It is safe for concurrent readers
// because nothing mutates it after construction.
type MemoryStore struct {
	ds       *model.Dataset
	source   string
	complete int
}

// NewMemoryStore wraps ds. source is informational.
func NewMemoryStore(ds *model.Dataset, source string) *MemoryStore {
	if ds == nil {
		ds = model.NewDataset(nil)
	}
	return &MemoryStore{ds: ds, source: source, complete: ds.CompleteCount()}
}

// Open loads path and wraps it in a MemoryStore.
func Open(ctx context.Context, path string, opts ...Option) (*MemoryStore, error) {
	ds, err := Load(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	return NewMemoryStore(ds, path), nil
}

// Dataset implements Store.
func (s *MemoryStore) Dataset(_ context.Context) *model.Dataset { return s.ds }

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int { return s.ds.Len() }

// CompleteCount implements Store.
func (s *MemoryStore) CompleteCount(_ context.Context) int { return s.complete }

// Source implements Store.
func (s *MemoryStore) Source() string { return s.source }
