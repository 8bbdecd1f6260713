package redis_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/domain"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/repository/redis"
)

var (
	_ domain.BlobStore = (*redis.Store)(nil)
	_ domain.Database  = (*redis.Store)(nil)
)

// newTestStore connects to the Redis named by TRAINBOOK_TEST_REDIS_ADDR and
// isolates the test under a random key prefix.
func newTestStore(t *testing.T) *redis.Store {
	t.Helper()
	addr := os.Getenv("TRAINBOOK_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TRAINBOOK_TEST_REDIS_ADDR not set")
	}
	s, err := redis.New(redis.Options{Addr: addr, Prefix: "trainbook-test:" + uuid.NewString() + ":"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveGetDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "trains.json"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Save(ctx, "trains.json", []byte(`[]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Get(ctx, "trains.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `[]` {
		t.Fatalf("expected [], got %s", got)
	}
	if err := s.Delete(ctx, "trains.json"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "trains.json"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestNew_Unreachable(t *testing.T) {
	_, err := redis.New(redis.Options{Addr: "127.0.0.1:1"})
	if err == nil {
		t.Fatal("expected connection error")
	}
}
