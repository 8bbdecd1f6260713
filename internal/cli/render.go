package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/domain"
)

func printTrains(w io.Writer, trains []domain.Train) {
	for i, t := range trains {
		fmt.Fprintf(w, "%d. Train ID: %s  Train No: %s\n", i+1, t.ID, t.Number)
		for _, station := range t.Stations {
			fmt.Fprintf(w, "   Station: %s, Time: %s\n", station, stationTime(t, station))
		}
	}
}

// stationTime looks a station up in StationTimes, falling back to a
// case-insensitive match and then "-".
func stationTime(t domain.Train, station string) string {
	if v, ok := t.StationTimes[station]; ok {
		return v
	}
	for k, v := range t.StationTimes {
		if strings.EqualFold(k, station) {
			return v
		}
	}
	return "-"
}

func printSeats(w io.Writer, seats [][]int) {
	fmt.Fprintln(w, "Available seats (0 = available, 1 = booked):")
	for i, row := range seats {
		cells := make([]string, len(row))
		for j, s := range row {
			cells[j] = fmt.Sprint(s)
		}
		fmt.Fprintf(w, "Row %d: %s\n", i, strings.Join(cells, " "))
	}
}

func printTickets(w io.Writer, tickets []domain.Ticket) {
	if len(tickets) == 0 {
		fmt.Fprintln(w, "No tickets booked.")
		return
	}
	for _, t := range tickets {
		fmt.Fprintf(w, "%s  %s\n", t.ID, t.Info)
	}
}

// describe turns a service error into the message shown to the user.
// Unexpected errors are logged and reported generically.
func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "user not found or invalid credentials"
	case errors.Is(err, domain.ErrDuplicateName):
		return "user already exists"
	case errors.Is(err, domain.ErrSeatTaken):
		return "seat is already booked"
	case errors.Is(err, domain.ErrSeatOutOfRange):
		return "invalid row or seat number"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidInput):
		return err.Error()
	}
	slog.Error("command failed", "error", err)
	return "something went wrong, check the logs"
}

// userError wraps err in a message fit for the terminal.
func userError(action string, err error) error {
	return fmt.Errorf("%s: %s", action, describe(err))
}
