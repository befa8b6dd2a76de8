package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/boxoffice/internal/domain"
	"github.com/Domenick1991/boxoffice/internal/service/customers"
	"github.com/Domenick1991/boxoffice/internal/service/movies"
	"github.com/Domenick1991/boxoffice/internal/service/reports"
	"github.com/Domenick1991/boxoffice/internal/service/sessions"
	"github.com/Domenick1991/boxoffice/internal/service/tickets"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMovieUseCase is a mock implementation of movies.MovieUseCase
type MockMovieUseCase struct {
	mock.Mock
}

func (m *MockMovieUseCase) CreateMovie(ctx context.Context, input movies.CreateMovieInput) (*domain.Movie, domain.Outcome, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.Outcome), args.Error(2)
	}
	return args.Get(0).(*domain.Movie), args.Get(1).(domain.Outcome), args.Error(2)
}

func (m *MockMovieUseCase) GetByID(ctx context.Context, id int64) (*domain.Movie, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Movie), args.Bool(1)
}

func (m *MockMovieUseCase) List(ctx context.Context) []domain.Movie {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Movie)
}

func (m *MockMovieUseCase) UpdateMovie(ctx context.Context, id int64, input movies.UpdateMovieInput) (domain.Outcome, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(domain.Outcome), args.Error(1)
}

func (m *MockMovieUseCase) RemoveMovie(ctx context.Context, id int64) (domain.Outcome, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Outcome), args.Error(1)
}

// MockCustomerUseCase is a mock implementation of customers.CustomerUseCase
type MockCustomerUseCase struct {
	mock.Mock
}

func (m *MockCustomerUseCase) RegisterCustomer(ctx context.Context, input customers.RegisterCustomerInput) (*domain.Customer, domain.Outcome, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.Outcome), args.Error(2)
	}
	return args.Get(0).(*domain.Customer), args.Get(1).(domain.Outcome), args.Error(2)
}

func (m *MockCustomerUseCase) GetByID(ctx context.Context, id int64) (*domain.Customer, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Customer), args.Bool(1)
}

func (m *MockCustomerUseCase) List(ctx context.Context) []domain.Customer {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Customer)
}

func (m *MockCustomerUseCase) RemoveCustomer(ctx context.Context, id int64) (domain.Outcome, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Outcome), args.Error(1)
}

// MockSessionUseCase is a mock implementation of sessions.SessionUseCase
type MockSessionUseCase struct {
	mock.Mock
}

func (m *MockSessionUseCase) CreateSession(ctx context.Context, input sessions.CreateSessionInput) (*domain.Session, domain.Outcome, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.Outcome), args.Error(2)
	}
	return args.Get(0).(*domain.Session), args.Get(1).(domain.Outcome), args.Error(2)
}

func (m *MockSessionUseCase) GetByID(ctx context.Context, id int64) (*domain.Session, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Session), args.Bool(1)
}

func (m *MockSessionUseCase) AvailableSeats(ctx context.Context, id int64) int {
	args := m.Called(ctx, id)
	return args.Int(0)
}

func (m *MockSessionUseCase) ClaimSeat(ctx context.Context, sessionID int64, seat int) (domain.Outcome, error) {
	args := m.Called(ctx, sessionID, seat)
	return args.Get(0).(domain.Outcome), args.Error(1)
}

func (m *MockSessionUseCase) DeleteSession(ctx context.Context, id int64) (domain.Outcome, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Outcome), args.Error(1)
}

func (m *MockSessionUseCase) ListSessions(ctx context.Context, filter sessions.Filter) []domain.Session {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Session)
}

// MockTicketUseCase is a mock implementation of tickets.TicketUseCase
type MockTicketUseCase struct {
	mock.Mock
}

func (m *MockTicketUseCase) IssueTicket(ctx context.Context, input tickets.IssueTicketInput) (*domain.Ticket, domain.Outcome, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.Outcome), args.Error(2)
	}
	return args.Get(0).(*domain.Ticket), args.Get(1).(domain.Outcome), args.Error(2)
}

func (m *MockTicketUseCase) ListTicketsForCustomer(ctx context.Context, customerID int64) ([]domain.Ticket, bool) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]domain.Ticket), args.Bool(1)
}

func (m *MockTicketUseCase) ListTicketsForSession(ctx context.Context, sessionID int64) []domain.Ticket {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]domain.Ticket)
}

func (m *MockTicketUseCase) List(ctx context.Context) []domain.Ticket {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Ticket)
}

// MockReportUseCase is a mock implementation of reports.ReportUseCase
type MockReportUseCase struct {
	mock.Mock
}

func (m *MockReportUseCase) MovieRevenue(ctx context.Context, movieID int64) (*reports.Revenue, bool) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*reports.Revenue), args.Bool(1)
}

func (m *MockReportUseCase) MostWatched(ctx context.Context, list []domain.Session) (*reports.MostWatched, bool) {
	args := m.Called(ctx, list)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*reports.MostWatched), args.Bool(1)
}

func (m *MockReportUseCase) SessionRevenue(ctx context.Context, sessionID int64) (*reports.SessionRevenue, bool) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*reports.SessionRevenue), args.Bool(1)
}

func (m *MockReportUseCase) CountTickets(ctx context.Context, list []domain.Session) int {
	args := m.Called(ctx, list)
	return args.Int(0)
}

type envelope struct {
	Outcome domain.Outcome  `json:"outcome"`
	Code    int             `json:"code"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
