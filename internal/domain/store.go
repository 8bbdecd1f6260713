package domain

import "context"

// BlobStore abstracts raw byte storage keyed by collection name.
// The file backend keeps one file per key; SQLite and Redis keep one
// row or string per key.
type BlobStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// RecordStore loads and rewrites a whole record collection at once.
type RecordStore[T any] interface {
	Load(ctx context.Context) ([]T, error)
	SaveAll(ctx context.Context, records []T) error
}
