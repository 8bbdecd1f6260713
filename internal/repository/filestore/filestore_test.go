package filestore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/domain"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/repository/filestore"
)

var _ domain.BlobStore = (*filestore.Store)(nil)

func TestStore_SaveCreatesParentDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "local", "db")
	s := filestore.New(dir)

	if err := s.Save(context.Background(), "users.json", []byte("[]")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "users.json"))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected [], got %q", data)
	}
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := filestore.New(dir)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.Save(ctx, "trains.json", []byte("[]")); err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only trains.json, got %v", names)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := filestore.New(t.TempDir())

	_, err := s.Get(context.Background(), "trains.json")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_RejectsPathKeys(t *testing.T) {
	s := filestore.New(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"", "..", "../escape.json", "a/b.json"} {
		t.Run(key, func(t *testing.T) {
			if err := s.Save(ctx, key, []byte("x")); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestStore_DeleteAndList(t *testing.T) {
	s := filestore.New(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"trains.json", "trains.json.corrupt-1", "users.json"} {
		if err := s.Save(ctx, key, []byte("[]")); err != nil {
			t.Fatalf("Save %s: %v", key, err)
		}
	}

	keys, err := s.List(ctx, "trains.json")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %v", keys)
	}

	if err := s.Delete(ctx, "trains.json"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "trains.json"); err != nil {
		t.Fatalf("Delete missing should be a no-op: %v", err)
	}
	if _, err := s.Get(ctx, "trains.json"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
