package reports

import (
	"context"
	"log/slog"

	"github.com/Domenick1991/boxoffice/internal/domain"
)

type ReportUseCase interface {
	MovieRevenue(ctx context.Context, movieID int64) (*Revenue, bool)
	MostWatched(ctx context.Context, sessions []domain.Session) (*MostWatched, bool)
	SessionRevenue(ctx context.Context, sessionID int64) (*SessionRevenue, bool)
	CountTickets(ctx context.Context, sessions []domain.Session) int
}

type MovieLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Movie, bool)
}

type SessionLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, bool)
}

type TicketSource interface {
	List(ctx context.Context) []domain.Ticket
	ListTicketsForSession(ctx context.Context, sessionID int64) []domain.Ticket
}

type Revenue struct {
	Revenue     float64 `json:"revenue"`
	TicketsSold int     `json:"tickets_sold"`
}

type MostWatched struct {
	Title   string `json:"title"`
	Tickets int    `json:"tickets"`
}

type SessionRevenue struct {
	Revenue          float64 `json:"revenue"`
	OccupancyPercent float64 `json:"occupancy_percent"`
}

// ReportService aggregates sales. It only reads from the stores it is given.
type ReportService struct {
	movies   MovieLookup
	sessions SessionLookup
	tickets  TicketSource
	logger   *slog.Logger
}

type ReportServiceOption func(*ReportService)

func WithLogger(logger *slog.Logger) ReportServiceOption {
	return func(s *ReportService) {
		s.logger = logger
	}
}

func NewReportService(movies MovieLookup, sessions SessionLookup, tickets TicketSource, opts ...ReportServiceOption) *ReportService {
	s := &ReportService{
		movies:   movies,
		sessions: sessions,
		tickets:  tickets,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MovieRevenue sums every ticket sold for sessions of the movie. It is absent
// for an invalid or unknown movie and for a movie with no sales.
func (s *ReportService) MovieRevenue(ctx context.Context, movieID int64) (*Revenue, bool) {
	if movieID <= 0 {
		return nil, false
	}
	if _, ok := s.movies.GetByID(ctx, movieID); !ok {
		return nil, false
	}

	movieOf := make(map[int64]int64)
	var revenue Revenue
	for _, ticket := range s.tickets.List(ctx) {
		id, seen := movieOf[ticket.SessionID]
		if !seen {
			if session, ok := s.sessions.GetByID(ctx, ticket.SessionID); ok {
				id = session.MovieID
			}
			movieOf[ticket.SessionID] = id
		}
		if id != movieID {
			continue
		}
		revenue.TicketsSold++
		revenue.Revenue += ticket.Price
	}

	if revenue.TicketsSold == 0 {
		return nil, false
	}
	s.logger.Debug("movie revenue computed", "movie_id", movieID, "tickets", revenue.TicketsSold)
	return &revenue, true
}

// MostWatched picks the movie with the most tickets across the given
// sessions. Ties go to the movie whose session came first.
func (s *ReportService) MostWatched(ctx context.Context, sessions []domain.Session) (*MostWatched, bool) {
	if len(sessions) == 0 {
		return nil, false
	}

	var order []int64
	counts := make(map[int64]int)
	for _, session := range sessions {
		if _, ok := counts[session.MovieID]; !ok {
			order = append(order, session.MovieID)
		}
		counts[session.MovieID] += len(s.tickets.ListTicketsForSession(ctx, session.ID))
	}

	best := order[0]
	for _, id := range order[1:] {
		if counts[id] > counts[best] {
			best = id
		}
	}

	movie, ok := s.movies.GetByID(ctx, best)
	if !ok {
		s.logger.Warn("most watched movie no longer exists", "movie_id", best)
		return nil, false
	}
	return &MostWatched{Title: movie.Title, Tickets: counts[best]}, true
}

// SessionRevenue reports takings and occupancy as a percentage of capacity.
func (s *ReportService) SessionRevenue(ctx context.Context, sessionID int64) (*SessionRevenue, bool) {
	if sessionID <= 0 {
		return nil, false
	}
	session, ok := s.sessions.GetByID(ctx, sessionID)
	if !ok {
		return nil, false
	}

	tickets := s.tickets.ListTicketsForSession(ctx, sessionID)
	report := &SessionRevenue{}
	for _, ticket := range tickets {
		report.Revenue += ticket.Price
	}
	if session.Capacity > 0 {
		report.OccupancyPercent = float64(len(tickets)) / float64(session.Capacity) * 100
	}
	return report, true
}

func (s *ReportService) CountTickets(ctx context.Context, sessions []domain.Session) int {
	var total int
	for _, session := range sessions {
		total += len(s.tickets.ListTicketsForSession(ctx, session.ID))
	}
	return total
}

var _ ReportUseCase = (*ReportService)(nil)
