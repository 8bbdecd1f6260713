package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/domain"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/service"
)

func TestTrainDirectory_Search(t *testing.T) {
	env := newTestEnv(t,
		scenarioTrain(),
		domain.Train{ID: "T2", Stations: []string{"C", "B", "A"}, Seats: [][]int{{0}}},
		domain.Train{ID: "T3", Stations: nil, Seats: [][]int{{0}}},
		domain.Train{ID: "T4", Stations: []string{"a", "x", "c"}, Seats: [][]int{{0}}},
	)

	tests := []struct {
		name        string
		source      string
		destination string
		want        []string
	}{
		{"forward", "A", "C", []string{"T1", "T4"}},
		{"reverse direction", "C", "A", []string{"T2"}},
		{"adjacent", "A", "B", []string{"T1"}},
		{"case insensitive", "b", "c", []string{"T1"}},
		{"trims input", "  A ", " C", []string{"T1", "T4"}},
		{"same station", "A", "A", []string{}},
		{"unknown source", "Z", "C", []string{}},
		{"blank source", "", "C", []string{}},
		{"blank destination", "A", "   ", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := trainIDs(env.trains.Search(tc.source, tc.destination))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Search(%q, %q) = %v, want %v", tc.source, tc.destination, got, tc.want)
			}
		})
	}
}

func TestTrainDirectory_SearchReturnsCopies(t *testing.T) {
	env := newTestEnv(t, scenarioTrain())

	found := env.trains.Search("A", "C")
	found[0].Seats[0][0] = domain.SeatBooked

	seats, err := env.trains.Seats("T1")
	if err != nil {
		t.Fatalf("Seats: %v", err)
	}
	if seats[0][0] != domain.SeatFree {
		t.Fatal("mutating a search result must not change the directory")
	}
}

func TestTrainDirectory_UpsertInsertAndReplace(t *testing.T) {
	env := newTestEnv(t, scenarioTrain())
	ctx := context.Background()

	added := domain.Train{ID: "T9", Number: "900", Stations: []string{"X", "Y"}, Seats: [][]int{{0, 0}}}
	if err := env.trains.Upsert(ctx, added); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}

	replaced := scenarioTrain()
	replaced.ID = "t1" // case-insensitive match
	replaced.Number = "99999"
	if err := env.trains.Upsert(ctx, replaced); err != nil {
		t.Fatalf("Upsert replace: %v", err)
	}

	reloaded := env.reloadTrains(t).List()
	if got := trainIDs(reloaded); !reflect.DeepEqual(got, []string{"t1", "T9"}) {
		t.Fatalf("expected [t1 T9] with T1 replaced in place, got %v", got)
	}
	if reloaded[0].Number != "99999" {
		t.Fatalf("expected replaced train number, got %s", reloaded[0].Number)
	}
	if got := trainIDs(env.reloadTrains(t).Search("x", "y")); !reflect.DeepEqual(got, []string{"T9"}) {
		t.Fatalf("expected inserted train to be searchable after reload, got %v", got)
	}
}

func TestTrainDirectory_UpsertRejectsBlankID(t *testing.T) {
	env := newTestEnv(t)

	err := env.trains.Upsert(context.Background(), domain.Train{ID: "  ", Number: "1"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(env.trains.List()) != 0 {
		t.Fatal("rejected train must not be stored")
	}
}

func TestTrainDirectory_UpsertSaveFailureLeavesState(t *testing.T) {
	ctx := context.Background()
	store := &failingStore[domain.Train]{records: []domain.Train{scenarioTrain()}}
	trains, err := service.NewTrainDirectory(ctx, store)
	if err != nil {
		t.Fatalf("NewTrainDirectory: %v", err)
	}

	err = trains.Upsert(ctx, domain.Train{ID: "T2", Stations: []string{"A", "B"}})
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("expected save error to surface, got %v", err)
	}
	if got := trainIDs(trains.List()); !reflect.DeepEqual(got, []string{"T1"}) {
		t.Fatalf("expected directory unchanged, got %v", got)
	}
}

func TestTrainDirectory_GetNotFound(t *testing.T) {
	env := newTestEnv(t, scenarioTrain())

	if _, err := env.trains.Get("nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, err := env.trains.Get("t1")
	if err != nil {
		t.Fatalf("Get case-insensitive: %v", err)
	}
	if got.ID != "T1" {
		t.Fatalf("expected T1, got %s", got.ID)
	}
}

func TestServesRoute(t *testing.T) {
	train := scenarioTrain()

	if !service.ServesRoute(train, "a", "C") {
		t.Fatal("expected A -> C to be served")
	}
	if service.ServesRoute(train, "C", "A") {
		t.Fatal("expected C -> A not to be served")
	}
	if service.ServesRoute(domain.Train{}, "A", "C") {
		t.Fatal("train without stations serves nothing")
	}
}
