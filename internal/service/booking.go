package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/domain"
)

// BookingEngine reserves seats on trains and issues tickets to users.
type BookingEngine struct {
	trains *TrainDirectory
	users  *UserDirectory
	now    func() time.Time
}

// NewBookingEngine creates a new BookingEngine.
func NewBookingEngine(trains *TrainDirectory, users *UserDirectory) *BookingEngine {
	return &BookingEngine{trains: trains, users: users, now: time.Now}
}

// BookSeat flips the seat at (row, col) from free to booked and persists
// the train. The check and the write happen under the train directory lock.
func (e *BookingEngine) BookSeat(ctx context.Context, trainID string, row, col int) error {
	_, err := e.trains.Update(ctx, trainID, func(t *domain.Train) error {
		if t.Seats == nil {
			return fmt.Errorf("%w: train %s has no seat grid", domain.ErrInvalidInput, t.ID)
		}
		if row < 0 || row >= len(t.Seats) {
			return fmt.Errorf("%w: row %d (train has %d rows)", domain.ErrSeatOutOfRange, row, len(t.Seats))
		}
		if col < 0 || col >= len(t.Seats[row]) {
			return fmt.Errorf("%w: seat %d (row %d has %d seats)", domain.ErrSeatOutOfRange, col, row, len(t.Seats[row]))
		}
		if t.Seats[row][col] != domain.SeatFree {
			return fmt.Errorf("%w: row %d seat %d", domain.ErrSeatTaken, row, col)
		}
		t.Seats[row][col] = domain.SeatBooked
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("seat booked", "train_id", trainID, "row", row, "seat", col)
	return nil
}

// Book authenticates the session, reserves the seat and records a ticket
// on the user's list. Source and destination must be served by the train
// in that order. The seat stays booked if the ticket cannot be saved.
func (e *BookingEngine) Book(ctx context.Context, sess domain.Session, trainID, source, destination string, row, col int) (*domain.Ticket, error) {
	user, err := e.users.Authenticate(ctx, sess)
	if err != nil {
		return nil, err
	}

	train, err := e.trains.Get(trainID)
	if err != nil {
		return nil, err
	}
	source = strings.TrimSpace(source)
	destination = strings.TrimSpace(destination)
	if !ServesRoute(*train, source, destination) {
		return nil, fmt.Errorf("%w: train %s does not run from %q to %q",
			domain.ErrInvalidInput, train.ID, source, destination)
	}

	if err := e.BookSeat(ctx, train.ID, row, col); err != nil {
		return nil, err
	}

	bookedAt := e.now().UTC()
	ticket := domain.Ticket{
		ID:          uuid.NewString(),
		Info:        fmt.Sprintf("Train %s (%s) %s -> %s, row %d seat %d", train.Number, train.ID, source, destination, row, col),
		UserID:      user.ID,
		TrainID:     train.ID,
		Source:      source,
		Destination: destination,
		Row:         row,
		Seat:        col,
		BookedAt:    &bookedAt,
	}

	if err := e.users.AddTicket(ctx, user.ID, ticket); err != nil {
		slog.Error("seat booked but ticket not saved",
			"train_id", train.ID, "row", row, "seat", col, "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("record ticket: %w", err)
	}

	return &ticket, nil
}
