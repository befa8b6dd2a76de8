package receipt

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/boxoffice/internal/kafka"
)

// Sender delivers a receipt for every ticket sold. Other events are
// acknowledged and skipped.
type Sender struct {
	logger *slog.Logger
}

func NewSender(logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.Event) error {
	if event.Type != kafka.EventTicketIssued {
		s.logger.DebugContext(ctx, "no receipt for event", "type", event.Type, "event_id", event.ID)
		return nil
	}
	if event.TicketID <= 0 || event.CustomerID <= 0 {
		return fmt.Errorf("ticket_issued event %s without ticket or customer", event.ID)
	}

	s.logger.InfoContext(ctx, "receipt sent",
		"event_id", event.ID,
		"ticket_id", event.TicketID,
		"customer_id", event.CustomerID,
		"session_id", event.SessionID,
		"seat", event.SeatNumber,
		"price", fmt.Sprintf("%.2f", event.Price),
	)
	return nil
}
