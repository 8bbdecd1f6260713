// Package records implements load-all / save-all persistence of a record
// collection encoded as a JSON array inside a domain.BlobStore.
package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/domain"
)

// CorruptPolicy decides what Load does with a collection that fails to parse.
type CorruptPolicy string

const (
	// PolicyBackup copies the corrupt bytes aside and starts empty.
	PolicyBackup CorruptPolicy = "backup"
	// PolicyReset starts empty and leaves the corrupt bytes untouched.
	PolicyReset CorruptPolicy = "reset"
	// PolicyFail returns domain.ErrCorruptStore.
	PolicyFail CorruptPolicy = "fail"
)

// ParsePolicy validates a policy name. The empty string selects PolicyBackup.
func ParsePolicy(s string) (CorruptPolicy, error) {
	switch CorruptPolicy(s) {
	case "":
		return PolicyBackup, nil
	case PolicyBackup, PolicyReset, PolicyFail:
		return CorruptPolicy(s), nil
	}
	return "", fmt.Errorf("%w: unknown corruption policy %q", domain.ErrInvalidInput, s)
}

// Collection implements domain.RecordStore[T] for one key of a blob store.
type Collection[T any] struct {
	blobs  domain.BlobStore
	key    string
	policy CorruptPolicy
	now    func() time.Time
}

// New creates a Collection stored under key.
func New[T any](blobs domain.BlobStore, key string, policy CorruptPolicy) *Collection[T] {
	if policy == "" {
		policy = PolicyBackup
	}
	return &Collection[T]{
		blobs:  blobs,
		key:    key,
		policy: policy,
		now:    time.Now,
	}
}

// Key returns the blob key the collection is stored under.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load reads the whole collection. A missing collection is created empty.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	data, err := c.blobs.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if err := c.SaveAll(ctx, nil); err != nil {
				return nil, fmt.Errorf("create empty collection %s: %w", c.key, err)
			}
			return []T{}, nil
		}
		return nil, fmt.Errorf("read collection %s: %w", c.key, err)
	}

	var out []T
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return c.recover(ctx, data, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (c *Collection[T]) recover(ctx context.Context, data []byte, parseErr error) ([]T, error) {
	switch c.policy {
	case PolicyFail:
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptStore, c.key, parseErr)
	case PolicyReset:
		slog.Warn("failed to parse collection, starting empty", "key", c.key, "error", parseErr)
		return []T{}, nil
	}

	backupKey := fmt.Sprintf("%s.corrupt-%s", c.key, c.now().UTC().Format("20060102T150405Z"))
	if err := c.blobs.Save(ctx, backupKey, data); err != nil {
		return nil, fmt.Errorf("back up corrupt collection %s: %w", c.key, err)
	}
	slog.Warn("failed to parse collection, backed up and starting empty",
		"key", c.key, "backup", backupKey, "error", parseErr)
	return []T{}, nil
}

// SaveAll overwrites the collection with records.
func (c *Collection[T]) SaveAll(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", c.key, err)
	}
	if err := c.blobs.Save(ctx, c.key, data); err != nil {
		return fmt.Errorf("save collection %s: %w", c.key, err)
	}
	return nil
}
