package repository

import "context"

// RecordStore persists a whole collection of records. Load returns the stored
// collection in its stored order, or an empty one when nothing was saved yet.
// Save replaces the stored collection.
type RecordStore[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, records []T) error
}
