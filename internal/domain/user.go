package domain

import "time"

// User represents a registered passenger.
type User struct {
	ID             string   `json:"user_id"`
	Name           string   `json:"name"`
	Password       string   `json:"password,omitempty"` // never written; tolerated on read
	HashedPassword string   `json:"hashed_password"`
	TicketsBooked  []Ticket `json:"tickets_booked"`
}

// Clone returns a copy of the user with its own ticket slice.
func (u User) Clone() User {
	c := u
	if u.TicketsBooked != nil {
		c.TicketsBooked = append([]Ticket(nil), u.TicketsBooked...)
	}
	return c
}

// Ticket is a booked seat held by a user. Only ID and Info are required;
// the remaining fields are filled when the booking flow issues the ticket.
type Ticket struct {
	ID          string     `json:"ticket_id"`
	Info        string     `json:"ticket_info"`
	UserID      string     `json:"user_id,omitempty"`
	TrainID     string     `json:"train_id,omitempty"`
	Source      string     `json:"source,omitempty"`
	Destination string     `json:"destination,omitempty"`
	Row         int        `json:"row"`
	Seat        int        `json:"seat"`
	BookedAt    *time.Time `json:"booked_at,omitempty"`
}

// Session is the credential proof a caller presents on every
// user-bound operation. Exactly one of Password or Token is expected.
type Session struct {
	Name     string
	Password string
	Token    string
}

// UserStore persists the user collection.
type UserStore = RecordStore[User]
