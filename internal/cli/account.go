package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSignUpCmd(tb *Trainbook) *cobra.Command {
	var name, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a user account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := tb.app.Users.SignUp(cmd.Context(), name, password)
			if err != nil {
				return userError("sign up failed", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sign up successful! User ID: %s\n", user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "User name")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(tb *Trainbook) *cobra.Command {
	var name, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify credentials and print a session token",
		Long: "Verify credentials. When a token secret is configured the session token is\n" +
			"printed and can be passed to other commands with --token or TRAINBOOK_TOKEN.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := tb.app.Users.Login(cmd.Context(), name, password)
			if err != nil {
				return userError("login failed", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Login successful!")
			if token != "" {
				fmt.Fprintln(out, token)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "User name")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newBookingsCmd(tb *Trainbook) *cobra.Command {
	var sf sessionFlags
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "List the tickets booked by a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tickets, err := tb.app.Users.FetchBookings(cmd.Context(), sf.session(tb))
			if err != nil {
				return userError("fetch bookings failed", err)
			}
			printTickets(cmd.OutOrStdout(), tickets)
			return nil
		},
	}
	sf.register(cmd)
	return cmd
}

func newCancelCmd(tb *Trainbook) *cobra.Command {
	var sf sessionFlags
	var ticketID string
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel one of a user's tickets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tb.app.Users.CancelBooking(cmd.Context(), sf.session(tb), ticketID); err != nil {
				return userError("cancel failed", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ticket %s cancelled.\n", ticketID)
			return nil
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&ticketID, "ticket", "", "Ticket ID to cancel")
	cmd.MarkFlagRequired("ticket")
	return cmd
}
