package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/app"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/domain"
)

const menu = `Choose option
1. Sign up
2. Login
3. Fetch Bookings
4. Search Trains
5. Book a Seat
6. Cancel my Booking
7. Exit the App`

func newShellCmd(tb *Trainbook) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive booking menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := &shell{
				app: tb.app,
				in:  bufio.NewScanner(cmd.InOrStdin()),
				out: cmd.OutOrStdout(),
			}
			return sh.run(cmd.Context())
		},
	}
}

// shell is one interactive session. The logged-in user and the train
// picked by the last search carry over between menu choices.
type shell struct {
	app *app.App
	in  *bufio.Scanner
	out io.Writer

	sess     *domain.Session
	train    string
	from, to string
}

func (s *shell) run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Running Train Booking System")
	for {
		fmt.Fprintln(s.out, menu)
		line, ok := s.readLine()
		if !ok {
			return s.in.Err()
		}
		option, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(s.out, "Please enter a number between 1 and 7.")
			continue
		}
		switch option {
		case 1:
			s.signUp(ctx)
		case 2:
			s.login(ctx)
		case 3:
			s.fetchBookings(ctx)
		case 4:
			s.search()
		case 5:
			s.book(ctx)
		case 6:
			s.cancel(ctx)
		case 7:
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, "Please enter a number between 1 and 7.")
		}
	}
}

func (s *shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *shell) prompt(label string) string {
	fmt.Fprintln(s.out, label)
	line, _ := s.readLine()
	return line
}

func (s *shell) promptInt(label string) (int, bool) {
	n, err := strconv.Atoi(s.prompt(label))
	if err != nil {
		fmt.Fprintln(s.out, "Please enter a number.")
		return 0, false
	}
	return n, true
}

func (s *shell) signUp(ctx context.Context) {
	name := s.prompt("Enter the username to signup")
	password := s.prompt("Enter the password to signup")
	if _, err := s.app.Users.SignUp(ctx, name, password); err != nil {
		fmt.Fprintf(s.out, "Sign up failed: %s\n", describe(err))
		return
	}
	fmt.Fprintln(s.out, "Sign up successful!")
}

func (s *shell) login(ctx context.Context) {
	name := s.prompt("Enter the username to Login")
	password := s.prompt("Enter the password to Login")
	token, err := s.app.Users.Login(ctx, name, password)
	if err != nil {
		fmt.Fprintf(s.out, "Login failed: %s\n", describe(err))
		return
	}
	sess := domain.Session{Name: name, Password: password}
	if token != "" {
		sess = domain.Session{Name: name, Token: token}
	}
	s.sess = &sess
	fmt.Fprintln(s.out, "Login successful!")
}

func (s *shell) requireLogin() bool {
	if s.sess == nil {
		fmt.Fprintln(s.out, "Please login first.")
		return false
	}
	return true
}

func (s *shell) fetchBookings(ctx context.Context) {
	if !s.requireLogin() {
		return
	}
	fmt.Fprintln(s.out, "Fetching your bookings")
	tickets, err := s.app.Users.FetchBookings(ctx, *s.sess)
	if err != nil {
		fmt.Fprintf(s.out, "Fetch bookings failed: %s\n", describe(err))
		return
	}
	printTickets(s.out, tickets)
}

func (s *shell) search() {
	from := s.prompt("Type your source station")
	to := s.prompt("Type your destination station")
	trains := s.app.Trains.Search(from, to)
	if len(trains) == 0 {
		fmt.Fprintln(s.out, "No trains found.")
		return
	}
	printTrains(s.out, trains)

	choice, ok := s.promptInt("Select a train by typing 1,2,3...")
	if !ok {
		return
	}
	if choice < 1 || choice > len(trains) {
		fmt.Fprintln(s.out, "Invalid train selection.")
		return
	}
	s.train, s.from, s.to = trains[choice-1].ID, from, to
	fmt.Fprintf(s.out, "Selected train %s.\n", s.train)
}

func (s *shell) book(ctx context.Context) {
	if !s.requireLogin() {
		return
	}
	if s.train == "" {
		fmt.Fprintln(s.out, "Please search and select a train first.")
		return
	}
	fmt.Fprintln(s.out, "Select a seat out of these seats")
	seats, err := s.app.Trains.Seats(s.train)
	if err != nil {
		fmt.Fprintf(s.out, "Can't load seats: %s\n", describe(err))
		return
	}
	printSeats(s.out, seats)

	fmt.Fprintln(s.out, "Select the seat by typing the row and column")
	row, ok := s.promptInt("Enter the row")
	if !ok {
		return
	}
	col, ok := s.promptInt("Enter the column")
	if !ok {
		return
	}
	fmt.Fprintln(s.out, "Booking your seat....")
	ticket, err := s.app.Booking.Book(ctx, *s.sess, s.train, s.from, s.to, row, col)
	if err != nil {
		fmt.Fprintf(s.out, "Can't book this seat: %s\n", describe(err))
		return
	}
	fmt.Fprintf(s.out, "Booked! Enjoy your journey! Ticket ID: %s\n", ticket.ID)
}

func (s *shell) cancel(ctx context.Context) {
	if !s.requireLogin() {
		return
	}
	id := s.prompt("Enter the ticket id to cancel")
	if err := s.app.Users.CancelBooking(ctx, *s.sess, id); err != nil {
		fmt.Fprintf(s.out, "Cancel failed: %s\n", describe(err))
		return
	}
	fmt.Fprintln(s.out, "Booking cancelled.")
}
