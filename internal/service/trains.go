package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/domain"
)

// TrainDirectory owns the in-memory train collection for the process and
// rewrites the whole collection through its store on every change.
type TrainDirectory struct {
	mu     sync.RWMutex
	store  domain.TrainStore
	trains []domain.Train
}

// NewTrainDirectory creates a TrainDirectory and loads its snapshot.
func NewTrainDirectory(ctx context.Context, store domain.TrainStore) (*TrainDirectory, error) {
	d := &TrainDirectory{store: store}
	if err := d.Reload(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload replaces the in-memory snapshot with the stored collection.
func (d *TrainDirectory) Reload(ctx context.Context) error {
	trains, err := d.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load trains: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.trains = trains
	return nil
}

// List returns copies of all trains in storage order.
func (d *TrainDirectory) List() []domain.Train {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]domain.Train, len(d.trains))
	for i, t := range d.trains {
		out[i] = t.Clone()
	}
	return out
}

// Get returns a copy of the train with the given id (case-insensitive).
func (d *TrainDirectory) Get(id string) (*domain.Train, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i := d.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("train %q: %w", id, domain.ErrNotFound)
	}
	t := d.trains[i].Clone()
	return &t, nil
}

// Seats returns a copy of a train's seat grid.
func (d *TrainDirectory) Seats(id string) ([][]int, error) {
	t, err := d.Get(id)
	if err != nil {
		return nil, err
	}
	if t.Seats == nil {
		return [][]int{}, nil
	}
	return t.Seats, nil
}

// Search returns the trains that stop at source and later at destination.
// Station names match case-insensitively; blank input yields no trains.
func (d *TrainDirectory) Search(source, destination string) []domain.Train {
	source = strings.TrimSpace(source)
	destination = strings.TrimSpace(destination)
	if source == "" || destination == "" {
		return []domain.Train{}
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	out := []domain.Train{}
	for _, t := range d.trains {
		if ServesRoute(t, source, destination) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// ServesRoute reports whether t stops at source strictly before destination.
func ServesRoute(t domain.Train, source, destination string) bool {
	if len(t.Stations) == 0 {
		return false
	}
	from := stationIndex(t.Stations, strings.TrimSpace(source))
	to := stationIndex(t.Stations, strings.TrimSpace(destination))
	return from != -1 && to != -1 && from < to
}

func stationIndex(stations []string, name string) int {
	return slices.IndexFunc(stations, func(s string) bool {
		return strings.EqualFold(s, name)
	})
}

// Upsert replaces the train with the same id (case-insensitive) in place,
// or appends it, and persists the collection.
func (d *TrainDirectory) Upsert(ctx context.Context, train domain.Train) error {
	if strings.TrimSpace(train.ID) == "" {
		slog.Warn("rejecting train without id", "train_no", train.Number)
		return fmt.Errorf("%w: train id is required", domain.ErrInvalidInput)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	next := slices.Clone(d.trains)
	if i := d.indexOf(train.ID); i >= 0 {
		next[i] = train.Clone()
	} else {
		next = append(next, train.Clone())
	}

	if err := d.store.SaveAll(ctx, next); err != nil {
		slog.Error("failed to save trains", "train_id", train.ID, "error", err)
		return fmt.Errorf("save trains: %w", err)
	}
	d.trains = next
	return nil
}

// Update runs fn on a copy of the train with the given id and persists the
// result while holding the directory lock. When fn or the save fails the
// directory is left unchanged. The train id cannot be changed by fn.
func (d *TrainDirectory) Update(ctx context.Context, id string, fn func(*domain.Train) error) (*domain.Train, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("train %q: %w", id, domain.ErrNotFound)
	}

	work := d.trains[i].Clone()
	if err := fn(&work); err != nil {
		return nil, err
	}
	work.ID = d.trains[i].ID

	next := slices.Clone(d.trains)
	next[i] = work
	if err := d.store.SaveAll(ctx, next); err != nil {
		slog.Error("failed to save trains", "train_id", work.ID, "error", err)
		return nil, fmt.Errorf("save trains: %w", err)
	}
	d.trains = next

	out := work.Clone()
	return &out, nil
}

// indexOf must be called with d.mu held.
func (d *TrainDirectory) indexOf(id string) int {
	id = strings.TrimSpace(id)
	return slices.IndexFunc(d.trains, func(t domain.Train) bool {
		return strings.EqualFold(t.ID, id)
	})
}
