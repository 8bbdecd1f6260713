package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/domain"
)

func newSearchCmd(tb *Trainbook) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find trains that stop at --from before --to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trains := tb.app.Trains.Search(from, to)
			if len(trains) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No trains found.")
				return nil
			}
			printTrains(cmd.OutOrStdout(), trains)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Source station")
	cmd.Flags().StringVar(&to, "to", "", "Destination station")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}

func newSeatsCmd(tb *Trainbook) *cobra.Command {
	var trainID string
	cmd := &cobra.Command{
		Use:   "seats",
		Short: "Show the seat grid of a train",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seats, err := tb.app.Trains.Seats(trainID)
			if err != nil {
				return userError("seats", err)
			}
			printSeats(cmd.OutOrStdout(), seats)
			return nil
		},
	}
	cmd.Flags().StringVar(&trainID, "train", "", "Train ID")
	cmd.MarkFlagRequired("train")
	return cmd
}

func newTrainsCmd(tb *Trainbook) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trains",
		Short: "Inspect and maintain the train collection",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every train",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trains := tb.app.Trains.List()
			if len(trains) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No trains found.")
				return nil
			}
			printTrains(cmd.OutOrStdout(), trains)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file.json>",
		Short: "Insert or replace trains from a JSON array file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read trains file: %w", err)
			}
			var trains []domain.Train
			if err := json.Unmarshal(data, &trains); err != nil {
				return fmt.Errorf("parse trains file: %w", err)
			}
			for _, t := range trains {
				if err := tb.app.Trains.Upsert(cmd.Context(), t); err != nil {
					return userError("import train "+t.ID, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d trains.\n", len(trains))
			return nil
		},
	})

	return cmd
}
