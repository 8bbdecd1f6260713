package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBookCmd(tb *Trainbook) *cobra.Command {
	var (
		sf        sessionFlags
		trainID   string
		from, to  string
		row, seat int
	)
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a seat and issue a ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ticket, err := tb.app.Booking.Book(cmd.Context(), sf.session(tb), trainID, from, to, row, seat)
			if err != nil {
				return userError("can't book this seat", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Booked! Enjoy your journey!\nTicket ID: %s\n%s\n", ticket.ID, ticket.Info)
			return nil
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&trainID, "train", "", "Train ID")
	cmd.Flags().StringVar(&from, "from", "", "Boarding station")
	cmd.Flags().StringVar(&to, "to", "", "Destination station")
	cmd.Flags().IntVar(&row, "row", 0, "Seat row (0-based)")
	cmd.Flags().IntVar(&seat, "seat", 0, "Seat number within the row (0-based)")
	for _, name := range []string{"train", "from", "to", "row", "seat"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}
