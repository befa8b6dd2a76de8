package movies

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/boxoffice/internal/domain"
	"github.com/Domenick1991/boxoffice/internal/repository"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type MovieUseCase interface {
	CreateMovie(ctx context.Context, input CreateMovieInput) (*domain.Movie, domain.Outcome, error)
	GetByID(ctx context.Context, id int64) (*domain.Movie, bool)
	List(ctx context.Context) []domain.Movie
	UpdateMovie(ctx context.Context, id int64, input UpdateMovieInput) (domain.Outcome, error)
	RemoveMovie(ctx context.Context, id int64) (domain.Outcome, error)
}

type CreateMovieInput struct {
	Title           string  `json:"title"`
	Synopsis        string  `json:"synopsis"`
	Genre           string  `json:"genre"`
	DurationMinutes float64 `json:"duration_minutes"`
	AgeRating       int     `json:"age_rating"`
	ReleaseDate     string  `json:"release_date"`
}

// UpdateMovieInput changes the fields that are not nil.
type UpdateMovieInput struct {
	Title *string `json:"title"`
	Genre *string `json:"genre"`
}

type MovieService struct {
	mu     sync.RWMutex
	movies []domain.Movie
	store  repository.RecordStore[domain.Movie]
	logger *slog.Logger
}

type MovieServiceOption func(*MovieService)

func WithLogger(logger *slog.Logger) MovieServiceOption {
	return func(s *MovieService) {
		s.logger = logger
	}
}

// NewMovieService loads the catalog from store.
func NewMovieService(ctx context.Context, store repository.RecordStore[domain.Movie], opts ...MovieServiceOption) (*MovieService, error) {
	s := &MovieService{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	movies, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}
	s.movies = movies
	s.logger.Debug("movies loaded", "count", len(movies))
	return s, nil
}

func (s *MovieService) CreateMovie(ctx context.Context, input CreateMovieInput) (*domain.Movie, domain.Outcome, error) {
	title := titleCase(input.Title)
	genre := titleCase(input.Genre)
	release := strings.TrimSpace(input.ReleaseDate)
	if title == "" || genre == "" || input.DurationMinutes <= 0 || input.AgeRating < 0 {
		return nil, domain.InvalidArgument, nil
	}
	if release != "" {
		if _, err := time.Parse(time.DateOnly, release); err != nil {
			return nil, domain.InvalidArgument, nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexByTitle(title) >= 0 {
		return nil, domain.AlreadyExists, nil
	}

	movie := domain.Movie{
		ID:              s.nextID(),
		Title:           title,
		Synopsis:        strings.TrimSpace(input.Synopsis),
		Genre:           genre,
		DurationMinutes: input.DurationMinutes,
		AgeRating:       input.AgeRating,
		ReleaseDate:     release,
	}
	next := append(cloneMovies(s.movies), movie)
	if err := s.store.Save(ctx, next); err != nil {
		return nil, "", fmt.Errorf("save movies: %w", err)
	}
	s.movies = next

	s.logger.Info("movie created", "movie_id", movie.ID, "title", movie.Title)
	return &movie, domain.Success, nil
}

func (s *MovieService) GetByID(ctx context.Context, id int64) (*domain.Movie, bool) {
	if id <= 0 {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexByID(id)
	if i < 0 {
		return nil, false
	}
	movie := s.movies[i]
	return &movie, true
}

func (s *MovieService) List(ctx context.Context) []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMovies(s.movies)
}

func (s *MovieService) UpdateMovie(ctx context.Context, id int64, input UpdateMovieInput) (domain.Outcome, error) {
	if id <= 0 {
		return domain.InvalidArgument, nil
	}
	var title, genre string
	if input.Title != nil {
		if title = titleCase(*input.Title); title == "" {
			return domain.InvalidArgument, nil
		}
	}
	if input.Genre != nil {
		if genre = titleCase(*input.Genre); genre == "" {
			return domain.InvalidArgument, nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return domain.NotFound, nil
	}
	if title != "" {
		if j := s.indexByTitle(title); j >= 0 && j != i {
			return domain.AlreadyExists, nil
		}
	}

	next := cloneMovies(s.movies)
	if title != "" {
		next[i].Title = title
	}
	if genre != "" {
		next[i].Genre = genre
	}
	if err := s.store.Save(ctx, next); err != nil {
		return "", fmt.Errorf("save movies: %w", err)
	}
	s.movies = next

	s.logger.Info("movie updated", "movie_id", id)
	return domain.Success, nil
}

func (s *MovieService) RemoveMovie(ctx context.Context, id int64) (domain.Outcome, error) {
	if id <= 0 {
		return domain.InvalidArgument, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return domain.NotFound, nil
	}
	next := append(cloneMovies(s.movies[:i]), s.movies[i+1:]...)
	if err := s.store.Save(ctx, next); err != nil {
		return "", fmt.Errorf("save movies: %w", err)
	}
	s.movies = next

	s.logger.Info("movie removed", "movie_id", id)
	return domain.Success, nil
}

func (s *MovieService) indexByID(id int64) int {
	for i := range s.movies {
		if s.movies[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *MovieService) indexByTitle(title string) int {
	for i := range s.movies {
		if s.movies[i].Title == title {
			return i
		}
	}
	return -1
}

func (s *MovieService) nextID() int64 {
	var last int64
	for _, m := range s.movies {
		if m.ID > last {
			last = m.ID
		}
	}
	return last + 1
}

// titleCase trims and title-cases catalog names. A Caser is not safe for
// concurrent use, so one is built per call.
func titleCase(v string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(v))
}

func cloneMovies(in []domain.Movie) []domain.Movie {
	out := make([]domain.Movie, len(in), len(in)+1)
	copy(out, in)
	return out
}

var _ MovieUseCase = (*MovieService)(nil)
