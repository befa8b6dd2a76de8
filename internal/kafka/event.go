package kafka

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTicketIssued   = "ticket_issued"
	EventSessionCreated = "session_created"
	EventSessionDeleted = "session_deleted"
)

// Event is the payload published for box-office changes. Fields that do not
// apply to the event type are left empty.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	SessionID  int64     `json:"session_id"`
	MovieID    int64     `json:"movie_id,omitempty"`
	Room       int       `json:"room,omitempty"`
	StartTime  string    `json:"start_time,omitempty"`
	TicketID   int64     `json:"ticket_id,omitempty"`
	CustomerID int64     `json:"customer_id,omitempty"`
	SeatNumber int       `json:"seat_number,omitempty"`
	Price      float64   `json:"price,omitempty"`
}

func NewEvent(eventType string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
	}
}
