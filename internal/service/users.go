package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/domain"
)

// UserDirectory owns the in-memory user collection for the process.
// Session-bound operations re-verify the caller's credential proof against
// the current snapshot on every call; nothing is cached between calls.
type UserDirectory struct {
	mu      sync.RWMutex
	store   domain.UserStore
	users   []domain.User
	hasher  *PasswordHasher
	tokens  *TokenIssuer
	limiter *TokenBucket
}

// NewUserDirectory creates a UserDirectory and loads its snapshot.
// tokens and limiter may be nil: token proofs are then rejected and
// logins are not throttled.
func NewUserDirectory(ctx context.Context, store domain.UserStore, hasher *PasswordHasher, tokens *TokenIssuer, limiter *TokenBucket) (*UserDirectory, error) {
	d := &UserDirectory{
		store:   store,
		hasher:  hasher,
		tokens:  tokens,
		limiter: limiter,
	}
	if err := d.Reload(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload replaces the in-memory snapshot with the stored collection.
func (d *UserDirectory) Reload(ctx context.Context) error {
	users, err := d.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = users
	return nil
}

// SignUp registers a new user. Names are unique; the plaintext password is
// only hashed, never stored.
func (d *UserDirectory) SignUp(ctx context.Context, name, password string) (*domain.User, error) {
	if strings.TrimSpace(name) == "" || password == "" {
		return nil, fmt.Errorf("%w: name and password are required", domain.ErrInvalidInput)
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := d.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if slices.ContainsFunc(d.users, func(u domain.User) bool { return u.Name == name }) {
		return nil, fmt.Errorf("user %q: %w", name, domain.ErrDuplicateName)
	}

	user := domain.User{
		ID:             uuid.NewString(),
		Name:           name,
		HashedPassword: hash,
		TicketsBooked:  []domain.Ticket{},
	}

	next := append(slices.Clone(d.users), user)
	if err := d.store.SaveAll(ctx, next); err != nil {
		slog.Error("failed to save user", "name", name, "error", err)
		return nil, fmt.Errorf("save users: %w", err)
	}
	d.users = next

	out := user.Clone()
	return &out, nil
}

// Authenticate returns the user whose credentials match the session.
// An unknown name and a wrong proof both yield domain.ErrUnauthorized.
func (d *UserDirectory) Authenticate(ctx context.Context, sess domain.Session) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i, err := d.match(sess)
	if err != nil {
		return nil, err
	}
	u := d.users[i].Clone()
	return &u, nil
}

// Login checks a name and password and returns a session token.
// The token is empty when no token issuer is configured.
func (d *UserDirectory) Login(ctx context.Context, name, password string) (string, error) {
	if d.limiter != nil && !d.limiter.Allow(name) {
		slog.Warn("login throttled", "name", name)
		return "", fmt.Errorf("%w: too many login attempts", domain.ErrUnauthorized)
	}

	user, err := d.Authenticate(ctx, domain.Session{Name: name, Password: password})
	if err != nil {
		return "", err
	}
	if d.tokens == nil {
		return "", nil
	}
	return d.tokens.Issue(user)
}

// FetchBookings returns the tickets of the session's user.
func (d *UserDirectory) FetchBookings(ctx context.Context, sess domain.Session) ([]domain.Ticket, error) {
	user, err := d.Authenticate(ctx, sess)
	if err != nil {
		return nil, err
	}
	if user.TicketsBooked == nil {
		return []domain.Ticket{}, nil
	}
	return user.TicketsBooked, nil
}

// CancelBooking removes every ticket with the given id from the session
// user's list and persists the change. domain.ErrNotFound is returned when
// no ticket matched; the list is then unchanged.
func (d *UserDirectory) CancelBooking(ctx context.Context, sess domain.Session, ticketID string) error {
	ticketID = strings.TrimSpace(ticketID)
	if ticketID == "" {
		return fmt.Errorf("%w: ticket id cannot be empty", domain.ErrInvalidInput)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.match(sess)
	if err != nil {
		return err
	}

	user := d.users[i].Clone()
	before := len(user.TicketsBooked)
	user.TicketsBooked = slices.DeleteFunc(user.TicketsBooked, func(t domain.Ticket) bool {
		return t.ID == ticketID
	})
	if len(user.TicketsBooked) == before {
		return fmt.Errorf("ticket %q: %w", ticketID, domain.ErrNotFound)
	}

	if err := d.replace(ctx, i, user); err != nil {
		return err
	}
	slog.Info("ticket cancelled", "user_id", user.ID, "ticket_id", ticketID)
	return nil
}

// AddTicket appends a ticket to a user's list and persists the change.
// Callers are expected to have authenticated the user already.
func (d *UserDirectory) AddTicket(ctx context.Context, userID string, ticket domain.Ticket) error {
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	i := slices.IndexFunc(d.users, func(u domain.User) bool { return u.ID == userID })
	if i < 0 {
		return fmt.Errorf("user %q: %w", userID, domain.ErrNotFound)
	}

	user := d.users[i].Clone()
	user.TicketsBooked = append(user.TicketsBooked, ticket)
	return d.replace(ctx, i, user)
}

// replace swaps in user at index i and persists; must hold d.mu.
func (d *UserDirectory) replace(ctx context.Context, i int, user domain.User) error {
	next := slices.Clone(d.users)
	next[i] = user
	if err := d.store.SaveAll(ctx, next); err != nil {
		slog.Error("failed to save users", "user_id", user.ID, "error", err)
		return fmt.Errorf("save users: %w", err)
	}
	d.users = next
	return nil
}

// match finds the user the session proves to be; must hold d.mu.
func (d *UserDirectory) match(sess domain.Session) (int, error) {
	if sess.Token != "" {
		return d.matchToken(sess)
	}
	if sess.Name == "" || sess.Password == "" {
		return -1, domain.ErrUnauthorized
	}
	for i, u := range d.users {
		if u.Name == sess.Name && d.hasher.Verify(sess.Password, u.HashedPassword) {
			return i, nil
		}
	}
	return -1, domain.ErrUnauthorized
}

func (d *UserDirectory) matchToken(sess domain.Session) (int, error) {
	if d.tokens == nil {
		return -1, domain.ErrUnauthorized
	}
	claims, err := d.tokens.Validate(sess.Token)
	if err != nil {
		return -1, domain.ErrUnauthorized
	}
	if sess.Name != "" && sess.Name != claims.Name {
		return -1, domain.ErrUnauthorized
	}
	i := slices.IndexFunc(d.users, func(u domain.User) bool {
		return u.ID == claims.UserID && u.Name == claims.Name
	})
	if i < 0 {
		return -1, domain.ErrUnauthorized
	}
	return i, nil
}
