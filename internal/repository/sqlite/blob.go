package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/domain"
)

// BlobStore implements domain.BlobStore using the record_blobs table.
type BlobStore struct {
	db *sql.DB
}

func (s *BlobStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO record_blobs (storage_key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(storage_key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save record blob: %w", err)
	}
	return nil
}

func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM record_blobs WHERE storage_key = ?", key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get record blob: %w", err)
	}
	return data, nil
}

func (s *BlobStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM record_blobs WHERE storage_key = ?", key,
	)
	if err != nil {
		return fmt.Errorf("delete record blob: %w", err)
	}
	return nil
}
