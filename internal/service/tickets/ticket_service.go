package tickets

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/Domenick1991/boxoffice/internal/domain"
	"github.com/Domenick1991/boxoffice/internal/kafka"
	"github.com/Domenick1991/boxoffice/internal/repository"
)

type TicketUseCase interface {
	IssueTicket(ctx context.Context, input IssueTicketInput) (*domain.Ticket, domain.Outcome, error)
	ListTicketsForCustomer(ctx context.Context, customerID int64) ([]domain.Ticket, bool)
	ListTicketsForSession(ctx context.Context, sessionID int64) []domain.Ticket
	List(ctx context.Context) []domain.Ticket
}

type CustomerLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, bool)
}

// SeatAllocator is the session store. It alone decides whether a seat can be
// claimed.
type SeatAllocator interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, bool)
	ClaimSeat(ctx context.Context, sessionID int64, seat int) (domain.Outcome, error)
}

// SeatLocker holds a seat while a sale is in progress.
type SeatLocker interface {
	AcquireSeatLock(ctx context.Context, sessionID int64, seatNumber int, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, sessionID int64, seatNumber int) error
}

// Producer delivers ticket_issued events, trying up to maxRetries times.
type Producer interface {
	PublishWithRetry(ctx context.Context, topic, key string, value interface{}, maxRetries int) error
}

type IssueTicketInput struct {
	CustomerID int64   `json:"customer_id"`
	SessionID  int64   `json:"session_id"`
	SeatNumber int     `json:"seat_number"`
	Price      float64 `json:"price"`
}

func (in IssueTicketInput) valid() bool {
	return in.CustomerID > 0 && in.SessionID > 0 && in.SeatNumber > 0 &&
		in.Price >= 0 && !math.IsInf(in.Price, 0) && !math.IsNaN(in.Price)
}

// TicketService is the append-only ticket ledger. A ticket is recorded only
// after the session store accepted the seat claim.
type TicketService struct {
	mu        sync.Mutex
	tickets   []domain.Ticket
	store     repository.RecordStore[domain.Ticket]
	customers CustomerLookup
	sessions  SeatAllocator
	locker    SeatLocker
	holdTTL   time.Duration
	producer  Producer
	topic     string
	retries   int
	logger    *slog.Logger
}

type TicketServiceOption func(*TicketService)

func WithSeatLocker(locker SeatLocker, holdTTL time.Duration) TicketServiceOption {
	return func(s *TicketService) {
		s.locker = locker
		s.holdTTL = holdTTL
	}
}

func WithProducer(producer Producer, topic string) TicketServiceOption {
	return func(s *TicketService) {
		s.producer = producer
		s.topic = topic
	}
}

// WithPublishRetries sets how many attempts a ticket_issued event gets.
// Values below 1 mean a single attempt.
func WithPublishRetries(retries int) TicketServiceOption {
	return func(s *TicketService) {
		s.retries = retries
	}
}

func WithLogger(logger *slog.Logger) TicketServiceOption {
	return func(s *TicketService) {
		s.logger = logger
	}
}

func NewTicketService(
	ctx context.Context,
	store repository.RecordStore[domain.Ticket],
	customers CustomerLookup,
	sessions SeatAllocator,
	opts ...TicketServiceOption,
) (*TicketService, error) {
	s := &TicketService{
		store:     store,
		customers: customers,
		sessions:  sessions,
		retries:   1,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.retries < 1 {
		s.retries = 1
	}

	tickets, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tickets: %w", err)
	}
	s.tickets = tickets
	s.logger.Debug("tickets loaded", "count", len(tickets))
	return s, nil
}

// IssueTicket sells a seat. The seat claim outcome is returned unchanged; the
// ledger only grows when the claim succeeded.
func (s *TicketService) IssueTicket(ctx context.Context, input IssueTicketInput) (*domain.Ticket, domain.Outcome, error) {
	if !input.valid() {
		return nil, domain.InvalidArgument, nil
	}
	if _, ok := s.customers.GetByID(ctx, input.CustomerID); !ok {
		return nil, domain.NotFound, nil
	}
	session, ok := s.sessions.GetByID(ctx, input.SessionID)
	if !ok {
		return nil, domain.NotFound, nil
	}

	// A seat outside the room is never held; the session store reports it.
	if s.locker != nil && input.SeatNumber <= session.Capacity {
		held, err := s.locker.AcquireSeatLock(ctx, input.SessionID, input.SeatNumber, s.holdTTL)
		if err != nil {
			return nil, "", fmt.Errorf("acquire seat lock: %w", err)
		}
		if !held {
			s.logger.Info("seat is held by another sale", "session_id", input.SessionID, "seat", input.SeatNumber)
			return nil, domain.AlreadyExists, nil
		}
		defer func() {
			if err := s.locker.ReleaseSeatLock(ctx, input.SessionID, input.SeatNumber); err != nil {
				s.logger.Warn("failed to release seat lock", "session_id", input.SessionID, "seat", input.SeatNumber, "error", err)
			}
		}()
	}

	ticket, outcome, err := s.record(ctx, input)
	if err != nil || outcome != domain.Success {
		return nil, outcome, err
	}

	s.publish(ctx, ticket)
	return ticket, domain.Success, nil
}

// record claims the seat and appends the ticket while holding the ledger lock,
// so ticket ids follow the order seats were claimed in.
func (s *TicketService) record(ctx context.Context, input IssueTicketInput) (*domain.Ticket, domain.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome, err := s.sessions.ClaimSeat(ctx, input.SessionID, input.SeatNumber)
	if err != nil {
		return nil, "", fmt.Errorf("claim seat: %w", err)
	}
	if outcome != domain.Success {
		s.logger.Info("seat claim refused", "session_id", input.SessionID, "seat", input.SeatNumber, "outcome", outcome)
		return nil, outcome, nil
	}

	ticket := domain.Ticket{
		ID:         s.nextID(),
		CustomerID: input.CustomerID,
		SessionID:  input.SessionID,
		SeatNumber: input.SeatNumber,
		Price:      input.Price,
	}
	next := make([]domain.Ticket, len(s.tickets), len(s.tickets)+1)
	copy(next, s.tickets)
	next = append(next, ticket)
	if err := s.store.Save(ctx, next); err != nil {
		// The seat stays claimed: the session store never gives seats back.
		s.logger.Error("ticket not recorded after seat claim", "session_id", input.SessionID, "seat", input.SeatNumber, "error", err)
		return nil, "", fmt.Errorf("save tickets: %w", err)
	}
	s.tickets = next

	s.logger.Info("ticket issued", "ticket_id", ticket.ID, "customer_id", ticket.CustomerID, "session_id", ticket.SessionID, "seat", ticket.SeatNumber)
	return &ticket, domain.Success, nil
}

// ListTicketsForCustomer returns false when the id is invalid or the customer
// does not exist, and the customer's tickets (possibly none) otherwise.
func (s *TicketService) ListTicketsForCustomer(ctx context.Context, customerID int64) ([]domain.Ticket, bool) {
	if customerID <= 0 {
		return nil, false
	}
	if _, ok := s.customers.GetByID(ctx, customerID); !ok {
		return nil, false
	}
	return s.filter(func(t domain.Ticket) bool { return t.CustomerID == customerID }), true
}

// ListTicketsForSession never returns nil; an invalid or unknown session
// yields an empty slice.
func (s *TicketService) ListTicketsForSession(ctx context.Context, sessionID int64) []domain.Ticket {
	if sessionID <= 0 {
		return []domain.Ticket{}
	}
	if _, ok := s.sessions.GetByID(ctx, sessionID); !ok {
		return []domain.Ticket{}
	}
	return s.filter(func(t domain.Ticket) bool { return t.SessionID == sessionID })
}

func (s *TicketService) List(ctx context.Context) []domain.Ticket {
	return s.filter(func(domain.Ticket) bool { return true })
}

func (s *TicketService) filter(keep func(domain.Ticket) bool) []domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Ticket, 0)
	for _, t := range s.tickets {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *TicketService) publish(ctx context.Context, ticket *domain.Ticket) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.NewEvent(kafka.EventTicketIssued)
	event.TicketID = ticket.ID
	event.CustomerID = ticket.CustomerID
	event.SessionID = ticket.SessionID
	event.SeatNumber = ticket.SeatNumber
	event.Price = ticket.Price
	if err := s.producer.PublishWithRetry(ctx, s.topic, strconv.FormatInt(ticket.SessionID, 10), event, s.retries); err != nil {
		s.logger.Warn("failed to publish ticket_issued event", "ticket_id", ticket.ID, "error", err)
	}
}

func (s *TicketService) nextID() int64 {
	var last int64
	for _, t := range s.tickets {
		if t.ID > last {
			last = t.ID
		}
	}
	return last + 1
}

var _ TicketUseCase = (*TicketService)(nil)
