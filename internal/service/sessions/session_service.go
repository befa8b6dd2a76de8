package sessions

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/Domenick1991/boxoffice/internal/domain"
	"github.com/Domenick1991/boxoffice/internal/kafka"
	"github.com/Domenick1991/boxoffice/internal/repository"
)

type SessionUseCase interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*domain.Session, domain.Outcome, error)
	GetByID(ctx context.Context, id int64) (*domain.Session, bool)
	AvailableSeats(ctx context.Context, id int64) int
	ClaimSeat(ctx context.Context, sessionID int64, seat int) (domain.Outcome, error)
	DeleteSession(ctx context.Context, id int64) (domain.Outcome, error)
	ListSessions(ctx context.Context, filter Filter) []domain.Session
}

type MovieLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Movie, bool)
}

// Cache holds a snapshot of every session for readers. A nil result from
// GetSessions is a miss.
type Cache interface {
	GetSessions(ctx context.Context) ([]domain.Session, error)
	SetSessions(ctx context.Context, sessions []domain.Session) error
	InvalidateSessions(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateSessionInput struct {
	MovieID   int64         `json:"movie_id"`
	Room      int           `json:"room"`
	StartTime string        `json:"start_time"`
	Capacity  int           `json:"capacity"`
	Format    domain.Format `json:"format"`
}

// Filter narrows ListSessions. Zero fields match every session; MinStartTime
// keeps sessions starting at or after it.
type Filter struct {
	MovieID      int64
	Format       domain.Format
	MinStartTime string
}

func (f Filter) match(s domain.Session) bool {
	if f.MovieID != 0 && s.MovieID != f.MovieID {
		return false
	}
	if f.Format != "" && s.Format != f.Format {
		return false
	}
	if f.MinStartTime != "" && s.StartTime < f.MinStartTime {
		return false
	}
	return true
}

// SessionService owns sessions and their occupied seats. Seats are only
// added through ClaimSeat.
type SessionService struct {
	mu       sync.Mutex
	sessions []domain.Session
	store    repository.RecordStore[domain.Session]
	movies   MovieLookup
	cache    Cache
	producer Producer
	topic    string
	order    CheckOrder
	logger   *slog.Logger
}

type SessionServiceOption func(*SessionService)

func WithCheckOrder(order CheckOrder) SessionServiceOption {
	return func(s *SessionService) {
		s.order = order
	}
}

func WithCache(cache Cache) SessionServiceOption {
	return func(s *SessionService) {
		s.cache = cache
	}
}

func WithProducer(producer Producer, topic string) SessionServiceOption {
	return func(s *SessionService) {
		s.producer = producer
		s.topic = topic
	}
}

func WithLogger(logger *slog.Logger) SessionServiceOption {
	return func(s *SessionService) {
		s.logger = logger
	}
}

func NewSessionService(ctx context.Context, store repository.RecordStore[domain.Session], movies MovieLookup, opts ...SessionServiceOption) (*SessionService, error) {
	s := &SessionService{
		store:  store,
		movies: movies,
		order:  SpecificFirst,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	sessions, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	for i := range sessions {
		sessions[i] = sessions[i].Clone()
	}
	s.sessions = sessions
	s.logger.Debug("sessions loaded", "count", len(sessions), "check_order", s.order)
	return s, nil
}

func (s *SessionService) CreateSession(ctx context.Context, input CreateSessionInput) (*domain.Session, domain.Outcome, error) {
	if input.MovieID <= 0 || input.Room <= 0 || input.Capacity <= 0 || !input.Format.Valid() {
		return nil, domain.InvalidArgument, nil
	}
	if !validStartTime(input.StartTime) {
		s.logger.Debug("rejected start time", "start_time", input.StartTime)
		return nil, domain.InvalidArgument, nil
	}
	if _, ok := s.movies.GetByID(ctx, input.MovieID); !ok {
		return nil, domain.NotFound, nil
	}

	created, outcome, err := s.create(ctx, input)
	if err != nil || outcome != domain.Success {
		return nil, outcome, err
	}

	event := kafka.NewEvent(kafka.EventSessionCreated)
	event.SessionID = created.ID
	event.MovieID = created.MovieID
	event.Room = created.Room
	event.StartTime = created.StartTime
	s.publish(ctx, event)

	return created, domain.Success, nil
}

func (s *SessionService) create(ctx context.Context, input CreateSessionInput) (*domain.Session, domain.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.sessions {
		if existing.Room != input.Room || existing.StartTime != input.StartTime {
			continue
		}
		if existing.MovieID == input.MovieID && existing.Format == input.Format {
			s.logger.Debug("duplicate session", "session_id", existing.ID)
		} else {
			s.logger.Debug("room already booked", "session_id", existing.ID, "room", input.Room, "start_time", input.StartTime)
		}
		return nil, domain.AlreadyExists, nil
	}

	session := domain.Session{
		ID:            s.nextID(),
		MovieID:       input.MovieID,
		Room:          input.Room,
		StartTime:     input.StartTime,
		Capacity:      input.Capacity,
		Format:        input.Format,
		OccupiedSeats: []int{},
	}
	next := append(cloneSessions(s.sessions), session)
	if err := s.commit(ctx, next); err != nil {
		return nil, "", err
	}

	s.logger.Info("session created", "session_id", session.ID, "movie_id", session.MovieID, "room", session.Room, "start_time", session.StartTime)
	created := session.Clone()
	return &created, domain.Success, nil
}

// GetByID returns a copy of the session; false for a non-positive id or an
// unknown session.
func (s *SessionService) GetByID(ctx context.Context, id int64) (*domain.Session, bool) {
	if id <= 0 {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return nil, false
	}
	session := s.sessions[i].Clone()
	return &session, true
}

// AvailableSeats returns capacity minus occupied seats, or -1 for an unknown
// session.
func (s *SessionService) AvailableSeats(ctx context.Context, id int64) int {
	session, ok := s.GetByID(ctx, id)
	if !ok {
		return -1
	}
	return session.AvailableSeats()
}

func (s *SessionService) ClaimSeat(ctx context.Context, sessionID int64, seat int) (domain.Outcome, error) {
	if sessionID <= 0 || seat <= 0 {
		return domain.InvalidArgument, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(sessionID)
	if i < 0 {
		return domain.NotFound, nil
	}
	if outcome := s.order.check(s.sessions[i], seat); outcome != domain.Success {
		return outcome, nil
	}

	next := cloneSessions(s.sessions)
	next[i].OccupiedSeats = append(next[i].OccupiedSeats, seat)
	if err := s.commit(ctx, next); err != nil {
		return "", err
	}

	s.logger.Info("seat claimed", "session_id", sessionID, "seat", seat, "available", next[i].AvailableSeats())
	return domain.Success, nil
}

// DeleteSession removes a session with no occupied seats. A session with sold
// seats is refused with AlreadyExists.
func (s *SessionService) DeleteSession(ctx context.Context, id int64) (domain.Outcome, error) {
	if id <= 0 {
		return domain.InvalidArgument, nil
	}

	deleted, outcome, err := s.delete(ctx, id)
	if err != nil || outcome != domain.Success {
		return outcome, err
	}

	event := kafka.NewEvent(kafka.EventSessionDeleted)
	event.SessionID = deleted.ID
	event.MovieID = deleted.MovieID
	event.Room = deleted.Room
	event.StartTime = deleted.StartTime
	s.publish(ctx, event)

	return domain.Success, nil
}

func (s *SessionService) delete(ctx context.Context, id int64) (domain.Session, domain.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return domain.Session{}, domain.NotFound, nil
	}
	session := s.sessions[i]
	if len(session.OccupiedSeats) > 0 {
		return domain.Session{}, domain.AlreadyExists, nil
	}

	next := make([]domain.Session, 0, len(s.sessions)-1)
	next = append(next, cloneSessions(s.sessions[:i])...)
	next = append(next, cloneSessions(s.sessions[i+1:])...)
	if err := s.commit(ctx, next); err != nil {
		return domain.Session{}, "", err
	}

	s.logger.Info("session deleted", "session_id", id)
	return session, domain.Success, nil
}

// ListSessions returns matching sessions in insertion order, never nil.
func (s *SessionService) ListSessions(ctx context.Context, filter Filter) []domain.Session {
	result := make([]domain.Session, 0)
	for _, session := range s.snapshot(ctx) {
		if filter.match(session) {
			result = append(result, session)
		}
	}
	return result
}

func (s *SessionService) snapshot(ctx context.Context) []domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache == nil {
		return cloneSessions(s.sessions)
	}
	cached, err := s.cache.GetSessions(ctx)
	if err == nil && cached != nil {
		return cached
	}
	if err != nil {
		s.logger.Warn("sessions cache read failed", "error", err)
	}

	sessions := cloneSessions(s.sessions)
	if err := s.cache.SetSessions(ctx, sessions); err != nil {
		s.logger.Warn("sessions cache write failed", "error", err)
	}
	return sessions
}

// commit persists next and makes it current. Callers hold s.mu.
func (s *SessionService) commit(ctx context.Context, next []domain.Session) error {
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	s.sessions = next
	if s.cache != nil {
		if err := s.cache.InvalidateSessions(ctx); err != nil {
			s.logger.Warn("sessions cache invalidation failed", "error", err)
		}
	}
	return nil
}

func (s *SessionService) publish(ctx context.Context, event kafka.Event) {
	if s.producer == nil || s.topic == "" {
		return
	}
	if err := s.producer.Publish(ctx, s.topic, strconv.FormatInt(event.SessionID, 10), event); err != nil {
		s.logger.Warn("failed to publish event", "type", event.Type, "session_id", event.SessionID, "error", err)
	}
}

func (s *SessionService) indexByID(id int64) int {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *SessionService) nextID() int64 {
	var last int64
	for _, session := range s.sessions {
		if session.ID > last {
			last = session.ID
		}
	}
	return last + 1
}

func cloneSessions(in []domain.Session) []domain.Session {
	out := make([]domain.Session, len(in), len(in)+1)
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

var _ SessionUseCase = (*SessionService)(nil)
