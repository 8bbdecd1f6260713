package domain

import "context"

// Database defines lifecycle operations for a blob backend that needs
// schema setup or a live connection. Each implementation (SQLite, Redis)
// owns its own setup strategy so the backend stays swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
