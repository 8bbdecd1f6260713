package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/domain"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/repository/filestore"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/repository/records"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/service"
)

const testTokenSecret = "test-secret-key-for-unit-tests-0123456789"

// testEnv holds services sharing one data directory.
type testEnv struct {
	blobs   *filestore.Store
	trains  *service.TrainDirectory
	users   *service.UserDirectory
	booking *service.BookingEngine
}

func newTestEnv(t *testing.T, seed ...domain.Train) *testEnv {
	t.Helper()
	ctx := context.Background()
	blobs := filestore.New(t.TempDir())

	trainStore := records.New[domain.Train](blobs, "trains.json", records.PolicyFail)
	if len(seed) > 0 {
		if err := trainStore.SaveAll(ctx, seed); err != nil {
			t.Fatalf("seed trains: %v", err)
		}
	}

	trains, err := service.NewTrainDirectory(ctx, trainStore)
	if err != nil {
		t.Fatalf("NewTrainDirectory: %v", err)
	}

	// Use cost 4 for fast tests.
	users, err := service.NewUserDirectory(ctx,
		records.New[domain.User](blobs, "users.json", records.PolicyFail),
		service.NewPasswordHasher(4),
		service.NewTokenIssuer(testTokenSecret, 0),
		nil,
	)
	if err != nil {
		t.Fatalf("NewUserDirectory: %v", err)
	}

	return &testEnv{
		blobs:   blobs,
		trains:  trains,
		users:   users,
		booking: service.NewBookingEngine(trains, users),
	}
}

// reloadTrains opens a second directory on the same data, as a new process would.
func (e *testEnv) reloadTrains(t *testing.T) *service.TrainDirectory {
	t.Helper()
	d, err := service.NewTrainDirectory(context.Background(),
		records.New[domain.Train](e.blobs, "trains.json", records.PolicyFail))
	if err != nil {
		t.Fatalf("reload trains: %v", err)
	}
	return d
}

func (e *testEnv) reloadUsers(t *testing.T) *service.UserDirectory {
	t.Helper()
	d, err := service.NewUserDirectory(context.Background(),
		records.New[domain.User](e.blobs, "users.json", records.PolicyFail),
		service.NewPasswordHasher(4), nil, nil)
	if err != nil {
		t.Fatalf("reload users: %v", err)
	}
	return d
}

func scenarioTrain() domain.Train {
	return domain.Train{
		ID:           "T1",
		Number:       "12951",
		Stations:     []string{"A", "B", "C"},
		StationTimes: map[string]string{"A": "08:00", "B": "09:15", "C": "11:40"},
		Seats:        [][]int{{0, 0}, {0, 1}},
	}
}

var errDiskFull = errors.New("disk full")

// failingStore loads what it was given and fails every save.
type failingStore[T any] struct {
	records []T
}

func (s *failingStore[T]) Load(ctx context.Context) ([]T, error) {
	return append([]T(nil), s.records...), nil
}

func (s *failingStore[T]) SaveAll(ctx context.Context, records []T) error {
	return errDiskFull
}

func trainIDs(trains []domain.Train) []string {
	ids := make([]string, len(trains))
	for i, t := range trains {
		ids[i] = t.ID
	}
	return ids
}
