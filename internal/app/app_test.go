package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/app"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/config"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/domain"
)

func testConfig(t *testing.T, backend string) config.Config {
	t.Helper()
	cfg := config.Default()
	dir := t.TempDir()
	cfg.Backend = backend
	cfg.DataDir = filepath.Join(dir, "localDb")
	cfg.SQLitePath = filepath.Join(dir, "trainbook.db")
	cfg.BcryptCost = 4
	cfg.TokenSecret = "test-secret-key-for-unit-tests-0123456789"
	return cfg
}

func TestNew_FileBackendCreatesCollections(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	for _, name := range []string{app.TrainsKey, app.UsersKey} {
		if _, err := os.Stat(filepath.Join(cfg.DataDir, name)); err != nil {
			t.Fatalf("expected %s to be created: %v", name, err)
		}
	}
}

func TestNew_SQLiteBackendPersistsAcrossInstances(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)
	ctx := context.Background()

	first, err := app.New(ctx, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	train := domain.Train{ID: "T1", Stations: []string{"A", "B"}, Seats: [][]int{{0}}}
	if err := first.Trains.Upsert(ctx, train); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := first.Booking.BookSeat(ctx, "T1", 0, 0); err != nil {
		t.Fatalf("BookSeat: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := app.New(ctx, cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	seats, err := second.Trains.Seats("T1")
	if err != nil {
		t.Fatalf("Seats: %v", err)
	}
	if seats[0][0] != domain.SeatBooked {
		t.Fatalf("expected booked seat to persist, got %v", seats)
	}
}

func TestNew_FailPolicyRefusesCorruptStore(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)
	cfg.CorruptPolicy = "fail"
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfg.DataDir, app.TrainsKey), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	_, err := app.New(context.Background(), cfg)
	if !errors.Is(err, domain.ErrCorruptStore) {
		t.Fatalf("expected ErrCorruptStore, got %v", err)
	}
}
